package turn

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
)

// Scheduler states
const (
	StateAwaitingAction = "awaiting_action"
	StateResolving      = "resolving"
	StateTurnEnd        = "turn_end"
	StateGameOver       = "game_over"
)

// Scheduler transitions
const (
	eventConfirm  = "confirm"
	eventResolved = "resolved"
	eventSkip     = "skip"
	eventAdvance  = "advance"
	eventFinish   = "finish"
)

func newMachine(matchID, initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: eventConfirm, Src: []string{StateAwaitingAction}, Dst: StateResolving},
			{Name: eventResolved, Src: []string{StateResolving}, Dst: StateTurnEnd},
			{Name: eventSkip, Src: []string{StateAwaitingAction}, Dst: StateTurnEnd},
			{Name: eventAdvance, Src: []string{StateTurnEnd}, Dst: StateAwaitingAction},
			{Name: eventFinish, Src: []string{StateTurnEnd}, Dst: StateGameOver},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("Scheduler transition",
					"match_id", matchID,
					"event", e.Event,
					"from", e.Src,
					"to", e.Dst)
			},
		},
	)
}
