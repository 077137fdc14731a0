package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/engine/turn"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
	"github.com/KirkDiggler/ringside/internal/redis"
)

const keyPrefix = "match:"

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	client, err := redis.NewClient(redisURL, nil)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	if err := redis.Ping(ctx, client, 5*time.Second); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning saved matches for snapshots that no longer restore...")

	scenario := config.DefaultScenario()

	iter := client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		if reason := check(ctx, scenario, strings.TrimPrefix(key, keyPrefix), data); reason != "" {
			fmt.Printf("✗ %s: %s\n", key, reason)
			corruptedKeys = append(corruptedKeys, key)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d snapshots, found %d corrupted\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted snapshots found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these snapshots? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// check returns why a snapshot cannot be loaded, or "" when it restores
func check(ctx context.Context, scenario *config.Scenario, matchID string, data []byte) string {
	var snap turn.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return "not valid json"
	}
	if snap.ID != matchID {
		return fmt.Sprintf("belongs to match %q", snap.ID)
	}

	cfg, err := scenario.MatchConfig(&config.MatchInput{ID: matchID, Roller: rng.NewSeeded(1)})
	if err != nil {
		return err.Error()
	}
	if _, err := turn.FromSnapshot(ctx, &snap, cfg); err != nil {
		return err.Error()
	}
	return ""
}
