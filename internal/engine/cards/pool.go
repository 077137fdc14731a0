// Package cards holds the static card pool and samples each wrestler's hand.
package cards

import (
	"slices"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Card ids of the default pool
const (
	PowerPunch ring.CardID = "power-punch"
	QuickStep  ring.CardID = "quick-step"
	ShieldUp   ring.CardID = "shield-up"
	ThrowSlam  ring.CardID = "throw-slam"
	SecondWind ring.CardID = "second-wind"
	Adrenaline ring.CardID = "adrenaline"
	Piledriver ring.CardID = "piledriver"
)

// DefaultCards is the card set every match uses unless a scenario says
// otherwise.
func DefaultCards() []ring.Card {
	return []ring.Card{
		{ID: PowerPunch, Name: "Power Punch", Description: "Deal 3 damage to an adjacent opponent.", Kind: ring.ActionAttack, Damage: 3, Range: 1},
		{ID: QuickStep, Name: "Quick Step", Description: "Move to a nearby free cell.", Kind: ring.ActionMove},
		{ID: ShieldUp, Name: "Shield Up", Description: "Reduce incoming damage by 2 for 2 turns.", Kind: ring.ActionShieldBuff, Magnitude: 2, Duration: 2},
		{ID: ThrowSlam, Name: "Throw Slam", Description: "Throw an adjacent opponent one cell away.", Kind: ring.ActionPush, Range: 1},
		{ID: SecondWind, Name: "Second Wind", Description: "Recover 3 HP.", Kind: ring.ActionHeal, Amount: 3},
		{ID: Adrenaline, Name: "Adrenaline", Description: "+1 movement for 2 turns.", Kind: ring.ActionSpeedBuff, Magnitude: 1, Duration: 2},
		{ID: Piledriver, Name: "Piledriver", Description: "Deal 6 damage to an adjacent opponent.", Kind: ring.ActionFinisher, Damage: 6, Range: 1},
	}
}

var knownKinds = []ring.ActionKind{
	ring.ActionMove,
	ring.ActionAttack,
	ring.ActionPush,
	ring.ActionHeal,
	ring.ActionSpeedBuff,
	ring.ActionShieldBuff,
	ring.ActionFinisher,
}

// Pool maps card ids to definitions. It is never mutated after creation
// and can be shared by any number of matches.
type Pool struct {
	ids  []ring.CardID
	byID map[ring.CardID]ring.Card
}

// NewPool validates and indexes a card set. Order is kept for sampling.
func NewPool(set []ring.Card) (*Pool, error) {
	vb := errors.NewValidationBuilder()
	if len(set) == 0 {
		vb.Field("Cards", "at least one card is required")
	}

	p := &Pool{byID: make(map[ring.CardID]ring.Card, len(set))}
	for i, c := range set {
		switch {
		case c.ID == "":
			vb.Fieldf("Cards", "card %d has no id", i)
			continue
		case !slices.Contains(knownKinds, c.Kind):
			vb.Fieldf("Cards", "card %s has unknown kind %q", c.ID, c.Kind)
		case c.Kind.Offensive() && c.Range <= 0:
			vb.Fieldf("Cards", "card %s needs a positive range", c.ID)
		}
		if _, dup := p.byID[c.ID]; dup {
			vb.Fieldf("Cards", "duplicate card %s", c.ID)
			continue
		}
		p.ids = append(p.ids, c.ID)
		p.byID[c.ID] = c
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultPool builds the pool from DefaultCards
func DefaultPool() *Pool {
	p, err := NewPool(DefaultCards())
	if err != nil {
		panic(err)
	}
	return p
}

// Lookup returns the card registered under id
func (p *Pool) Lookup(id ring.CardID) (ring.Card, bool) {
	c, ok := p.byID[id]
	return c, ok
}

// Resolve returns the card for id, or an inert placeholder when the pool
// no longer knows it.
func (p *Pool) Resolve(id ring.CardID) ring.Card {
	if c, ok := p.byID[id]; ok {
		return c
	}
	return ring.InertCard(id)
}

// IDs lists card ids in pool order
func (p *Pool) IDs() []ring.CardID {
	return slices.Clone(p.ids)
}

// Len is the number of distinct cards
func (p *Pool) Len() int { return len(p.ids) }
