package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ringside/cmd/ringside/client"
	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
	"github.com/KirkDiggler/ringside/internal/pkg/idgen"
	"github.com/KirkDiggler/ringside/internal/repositories/matches"
)

var (
	simSeed     uint64
	simScenario string
	simMaxTurns int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play an all-AI match locally",
	Long: `Run a match in-process with every wrestler under AI control and print the
action log and final board. The same seed always produces the same match.

  ringside simulate --seed 7
  ringside simulate --scenario scenarios/cage.yaml --max-turns 50`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "random seed")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "scenario file (default: the classic four corner ring)")
	simulateCmd.Flags().IntVar(&simMaxTurns, "max-turns", match.DefaultMaxAutoTurns, "stop after this many actions")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	scenario := config.DefaultScenario()
	if simScenario != "" {
		loaded, err := config.LoadScenario(simScenario)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		scenario = loaded
	}
	for i := range scenario.Wrestlers {
		scenario.Wrestlers[i].Controller = ring.ControllerAI
	}

	svc, err := match.NewOrchestrator(&match.Config{
		Repository:   matches.NewInMemory(),
		IDGenerator:  idgen.NewSequential("sim"),
		Scenario:     scenario,
		MaxAutoTurns: simMaxTurns,
	})
	if err != nil {
		return err
	}

	out, err := svc.CreateMatch(context.Background(), &match.CreateMatchInput{Seed: simSeed})
	if err != nil {
		return fmt.Errorf("failed to run match: %w", err)
	}

	fmt.Printf("Simulating %q with seed %d\n\n", scenario.Name, out.Match.Seed)
	for i, o := range out.Outcomes {
		fmt.Printf("%4d. %s\n", i+1, o.Message)
	}
	fmt.Println()

	client.Render(os.Stdout, out.Match)

	if !out.Match.GameOver {
		fmt.Printf("\nNo winner after %d actions.\n", len(out.Outcomes))
	}
	return nil
}
