package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ringside/internal/handlers/match/v1alpha1"
)

var (
	createSeed     uint64
	createScenario string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new match",
	Long: `Start a match with the server's scenario, or upload one:

  create
  create --seed 7 --scenario scenarios/cage.yaml`,
	Args: cobra.NoArgs,
	RunE: createMatch,
}

var showCmd = &cobra.Command{
	Use:   "show [match-id]",
	Short: "Show the board, roster and hand",
	Args:  cobra.ExactArgs(1),
	RunE:  showMatch,
}

var saveCmd = &cobra.Command{
	Use:   "save [match-id]",
	Short: "Save the match",
	Args:  cobra.ExactArgs(1),
	RunE:  saveMatch,
}

var loadCmd = &cobra.Command{
	Use:   "load [match-id]",
	Short: "Restore the last save of a match",
	Args:  cobra.ExactArgs(1),
	RunE:  loadMatch,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [match-id]",
	Short: "Drop a match and its save",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteMatch,
}

func init() {
	createCmd.Flags().Uint64Var(&createSeed, "seed", 0, "random seed (0 lets the server pick)")
	createCmd.Flags().StringVar(&createScenario, "scenario", "", "scenario file to upload")
}

func createMatch(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.CreateMatchRequest{Seed: createSeed}
	if createScenario != "" {
		data, err := os.ReadFile(createScenario)
		if err != nil {
			return fmt.Errorf("failed to read scenario: %w", err)
		}
		req.ScenarioYAML = string(data)
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.CreateMatch(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		fmt.Printf("Created match %s (seed %d)\n\n", resp.Match.ID, resp.Match.Seed)
		printResponse(resp)
		return nil
	})
}

func showMatch(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.GetMatch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get match: %w", err)
		}
		printResponse(resp)
		return nil
	})
}

func saveMatch(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.SaveMatch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to save match: %w", err)
		}
		fmt.Printf("Saved match %s at turn %d (%d bytes)\n", args[0], resp.Turn, resp.Bytes)
		return nil
	})
}

func loadMatch(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.LoadMatch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load match: %w", err)
		}
		if resp.FreshStart {
			fmt.Println("The save was unreadable; a new match has started.")
		}
		printResponse(resp)
		return nil
	})
}

func deleteMatch(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.DeleteMatch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete match: %w", err)
		}
		fmt.Printf("Deleted match %s (live: %t, saved: %t)\n", args[0], resp.Live, resp.Saved)
		return nil
	})
}
