package roster

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

// EntityType is reported by every wrestler through core.Entity
const EntityType = "wrestler"

// Wrestler is a combatant. Its mutable state is only changed through the
// Registry that owns it.
type Wrestler struct {
	id         string
	name       string
	hp         int
	maxHP      int
	position   ring.Position
	alive      bool
	controller ring.Controller
	strength   int
	speed      int
	hand       []ring.CardID
	effects    map[ring.StatusKind]ring.StatusEffect
	equipment  []int
}

var _ core.Entity = (*Wrestler)(nil)

// GetID implements core.Entity
func (w *Wrestler) GetID() string { return w.id }

// GetType implements core.Entity
func (w *Wrestler) GetType() string { return EntityType }

// Name is the display name used in log messages
func (w *Wrestler) Name() string { return w.name }

// HP is the current hit points
func (w *Wrestler) HP() int { return w.hp }

// MaxHP caps healing
func (w *Wrestler) MaxHP() int { return w.maxHP }

// Position is the cell the wrestler stands on, or last stood on if eliminated
func (w *Wrestler) Position() ring.Position { return w.position }

// Alive is false once the wrestler has been eliminated
func (w *Wrestler) Alive() bool { return w.alive }

// Controller says whether a human or the policy picks actions
func (w *Wrestler) Controller() ring.Controller { return w.controller }

// Strength is the base bonus added to attack damage
func (w *Wrestler) Strength() int { return w.strength }

// Speed is the wrestler's base movement range. Zero defers to the rules.
func (w *Wrestler) Speed() int { return w.speed }

// Hand returns a copy of the current hand
func (w *Wrestler) Hand() []ring.CardID {
	return slices.Clone(w.hand)
}

// SetHand replaces the hand
func (w *Wrestler) SetHand(hand []ring.CardID) {
	w.hand = slices.Clone(hand)
}

// TakeCard removes and returns the card at index
func (w *Wrestler) TakeCard(index int) (ring.CardID, error) {
	if index < 0 || index >= len(w.hand) {
		return "", ring.ErrInvalidIndex(index, len(w.hand))
	}
	id := w.hand[index]
	w.hand = slices.Delete(w.hand, index, index+1)
	return id, nil
}

// Equipment returns the ids of items picked up so far
func (w *Wrestler) Equipment() []int {
	return slices.Clone(w.equipment)
}

// StatusMagnitude is the magnitude of the active effect of kind, or 0
func (w *Wrestler) StatusMagnitude(kind ring.StatusKind) int {
	return w.effects[kind].Magnitude
}

// Status returns the active effect of kind
func (w *Wrestler) Status(kind ring.StatusKind) (ring.StatusEffect, bool) {
	e, ok := w.effects[kind]
	return e, ok
}

// Effects returns the active effects sorted by kind
func (w *Wrestler) Effects() []ring.StatusEffect {
	out := make([]ring.StatusEffect, 0, len(w.effects))
	for _, e := range w.effects {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b ring.StatusEffect) int {
		switch {
		case a.Kind < b.Kind:
			return -1
		case a.Kind > b.Kind:
			return 1
		}
		return 0
	})
	return out
}
