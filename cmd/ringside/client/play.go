package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/handlers/match/v1alpha1"
)

var selectCardCmd = &cobra.Command{
	Use:   "select-card [match-id] [index]",
	Short: "Pick a card from the active hand",
	Args:  cobra.ExactArgs(2),
	RunE:  selectCard,
}

var targetCmd = &cobra.Command{
	Use:   "target [match-id] (wrestler-id | x y)",
	Short: "Aim the selected card at a wrestler or a cell",
	Long: `Aim the selected card. With no target the server picks one on confirm.

  target match_1 la-pantera
  target match_1 2 3`,
	Args: cobra.RangeArgs(1, 3),
	RunE: selectTarget,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm [match-id]",
	Short: "Play the selected card",
	Args:  cobra.ExactArgs(1),
	RunE:  confirmAction,
}

var endTurnCmd = &cobra.Command{
	Use:   "end-turn [match-id]",
	Short: "Pass the active turn",
	Args:  cobra.ExactArgs(1),
	RunE:  endTurn,
}

func selectCard(_ *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("card index must be a number: %w", err)
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.SelectCard(ctx, &v1alpha1.SelectCardRequest{MatchID: args[0], CardIndex: index})
		if err != nil {
			return fmt.Errorf("failed to select card: %w", err)
		}
		printResponse(resp)
		return nil
	})
}

func selectTarget(_ *cobra.Command, args []string) error {
	req := &v1alpha1.SelectTargetRequest{MatchID: args[0]}
	switch len(args) {
	case 2:
		req.EntityID = args[1]
	case 3:
		x, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("x must be a number: %w", err)
		}
		y, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("y must be a number: %w", err)
		}
		req.Cell = &ring.Position{X: x, Y: y}
	}

	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.SelectTarget(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to select target: %w", err)
		}
		printResponse(resp)
		return nil
	})
}

func confirmAction(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.ConfirmAction(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to confirm action: %w", err)
		}
		printResponse(resp)
		return nil
	})
}

func endTurn(_ *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, c *v1alpha1.Client) error {
		resp, err := c.EndTurn(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to end turn: %w", err)
		}
		printResponse(resp)
		return nil
	})
}
