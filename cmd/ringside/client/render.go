package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
)

var terrainGlyph = map[ring.Terrain]string{
	ring.TerrainNormal:    ".",
	ring.TerrainObstacle:  "o",
	ring.TerrainWall:      "#",
	ring.TerrainTrap:      "^",
	ring.TerrainBonus:     "+",
	ring.TerrainEquipment: "*",
}

// Render prints the board, roster, active hand and recent messages
func Render(w io.Writer, view *match.MatchView) {
	marks := make(map[string]string, len(view.Wrestlers))
	for i, wr := range view.Wrestlers {
		marks[wr.ID] = fmt.Sprintf("%d", i+1)
	}

	grid := make([][]string, view.Height)
	for y := range grid {
		grid[y] = make([]string, view.Width)
	}
	for _, c := range view.Cells {
		glyph := terrainGlyph[c.Terrain]
		if c.Occupant != "" {
			glyph = marks[c.Occupant]
		}
		grid[c.Position.Y][c.Position.X] = glyph
	}

	fmt.Fprintf(w, "Match %s  turn %d  %s\n", view.ID, view.Turn, view.State)
	for _, row := range grid {
		fmt.Fprintf(w, "  %s\n", strings.Join(row, " "))
	}
	fmt.Fprintln(w)

	for _, wr := range view.Wrestlers {
		status := fmt.Sprintf("%d/%d hp", wr.HP, wr.MaxHP)
		if !wr.Alive {
			status = "eliminated"
		}
		active := " "
		if wr.ID == view.ActiveID {
			active = ">"
		}
		fmt.Fprintf(w, "%s %s %-14s %-6s %-12s %s%s\n",
			active, marks[wr.ID], wr.Name, wr.Controller, status, wr.Position, effects(wr.Effects))
	}

	if view.GameOver {
		if view.Winner != "" {
			fmt.Fprintf(w, "\nWinner: %s\n", view.Winner)
		} else {
			fmt.Fprintln(w, "\nNobody is left standing.")
		}
	}

	if len(view.Hand) > 0 {
		fmt.Fprintln(w, "\nHand:")
		for i, c := range view.Hand {
			selected := " "
			if i == view.SelectedCard {
				selected = "*"
			}
			fmt.Fprintf(w, " %s[%d] %-12s %s\n", selected, i, c.Name, c.Kind)
		}
	}

	if len(view.Messages) > 0 {
		fmt.Fprintln(w, "\nLog:")
		for _, m := range view.Messages {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
}

func effects(list []ring.StatusEffect) string {
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, fmt.Sprintf("%s+%d(%d)", e.Kind, e.Magnitude, e.Remaining))
	}
	return "  " + strings.Join(parts, " ")
}
