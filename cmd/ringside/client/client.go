// Package client provides commands that drive a running ringside server
package client

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/handlers/match/v1alpha1"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Play a match on a ringside server",
	Long:  `Client commands make real gRPC requests against a running ringside server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(createCmd)
	ClientCmd.AddCommand(showCmd)
	ClientCmd.AddCommand(selectCardCmd)
	ClientCmd.AddCommand(targetCmd)
	ClientCmd.AddCommand(confirmCmd)
	ClientCmd.AddCommand(endTurnCmd)
	ClientCmd.AddCommand(saveCmd)
	ClientCmd.AddCommand(loadCmd)
	ClientCmd.AddCommand(deleteCmd)
}

// createMatchClient dials the server
func createMatchClient() (*v1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewClient(conn), cleanup, nil
}

// withClient runs fn with a connected client and a request deadline
func withClient(fn func(ctx context.Context, c *v1alpha1.Client) error) error {
	c, cleanup, err := createMatchClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := fn(ctx, c); err != nil {
		if reason := errors.GetReason(err); reason != "" {
			return fmt.Errorf("%s: %s (%s)", errors.GetCode(err), errors.GetMessage(err), reason)
		}
		return err
	}
	return nil
}

func printResponse(resp *v1alpha1.MatchResponse) {
	if len(resp.Outcomes) > 0 {
		fmt.Println("Actions:")
		for _, o := range resp.Outcomes {
			printOutcome(o)
		}
		fmt.Println()
	}
	Render(os.Stdout, resp.Match)
}

func printOutcome(o *match.OutcomeView) {
	mark := "✓"
	if !o.Applied {
		mark = "✗"
	}
	fmt.Printf("  %s %s\n", mark, o.Message)
}
