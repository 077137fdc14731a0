// Package policy picks actions for computer controlled wrestlers. Choices
// depend only on the hand order, the roster order and a row-major scan of
// the board, so replays stay deterministic.
package policy

import (
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

// Decision is the policy's choice for one turn
type Decision struct {
	CardIndex int
	Selection ring.Selection
	// Waste discards CardIndex without resolving it
	Waste bool
	// Pass ends the turn without playing, only when the hand is empty
	Pass bool
}

// Targeter is the read-only part of the resolver the policy relies on
type Targeter interface {
	Targets(actor *roster.Wrestler, card ring.Card) []*roster.Wrestler
	Destinations(actor *roster.Wrestler) []ring.Position
}

var _ Targeter = (*resolver.Resolver)(nil)

// Choose plays the first offensive card that has an opponent in reach,
// aimed at the first such opponent in roster order. Failing that it plays
// the first move card to the first free destination. Otherwise the first
// card is wasted.
func Choose(t Targeter, actor *roster.Wrestler, hand []ring.Card) Decision {
	if len(hand) == 0 {
		return Decision{CardIndex: -1, Selection: ring.NoSelection{}, Pass: true}
	}

	for i, card := range hand {
		if !card.Kind.Offensive() {
			continue
		}
		if targets := t.Targets(actor, card); len(targets) > 0 {
			return Decision{
				CardIndex: i,
				Selection: ring.EntitySelection{ID: targets[0].GetID()},
			}
		}
	}

	for i, card := range hand {
		if card.Kind != ring.ActionMove {
			continue
		}
		if dests := t.Destinations(actor); len(dests) > 0 {
			return Decision{
				CardIndex: i,
				Selection: ring.CellSelection{Position: dests[0]},
			}
		}
		break
	}

	return Decision{CardIndex: 0, Selection: ring.NoSelection{}, Waste: true}
}
