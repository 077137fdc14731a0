// Package resolver validates and applies action cards. Each action kind has
// its own handler in a dispatch table; a handler checks legality against the
// current state before it mutates anything.
package resolver

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Config holds the dependencies of a Resolver
type Config struct {
	Registry *roster.Registry
	Rules    Rules
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if err := c.Rules.Validate(); err != nil {
		vb.Field("Rules", errors.GetMessage(err))
	}

	return vb.Build()
}

// Action is one card played by an actor with an optional target
type Action struct {
	Actor     *roster.Wrestler
	Card      ring.Card
	Selection ring.Selection
}

// Outcome reports what a resolved action did. A wasted action carries the
// legality error that declined it and changed nothing.
type Outcome struct {
	ActorID    string
	Card       ring.CardID
	Kind       ring.ActionKind
	Applied    bool
	Message    string
	Reason     string
	Err        error
	TargetID   string
	From       ring.Position
	To         ring.Position
	Damage     int
	Healed     int
	Eliminated []string
}

// Wasted reports whether the card was consumed without effect
func (o Outcome) Wasted() bool { return !o.Applied }

type handler func(ctx context.Context, a Action) (Outcome, error)

// Resolver applies actions to one match
type Resolver struct {
	registry *roster.Registry
	board    *board.Board
	rules    Rules
	handlers map[ring.ActionKind]handler
}

// New creates a resolver
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid resolver config")
	}

	r := &Resolver{
		registry: cfg.Registry,
		board:    cfg.Registry.Board(),
		rules:    cfg.Rules,
	}
	r.handlers = map[ring.ActionKind]handler{
		ring.ActionMove:       r.resolveMove,
		ring.ActionAttack:     r.resolveStrike,
		ring.ActionFinisher:   r.resolveStrike,
		ring.ActionPush:       r.resolvePush,
		ring.ActionHeal:       r.resolveHeal,
		ring.ActionSpeedBuff:  r.resolveBuff,
		ring.ActionShieldBuff: r.resolveBuff,
	}
	return r, nil
}

// Rules returns the rules in force
func (r *Resolver) Rules() Rules { return r.rules }

// Resolve applies a single action. Legality failures are never returned as
// errors: they come back as a wasted Outcome with an explanatory message.
func (r *Resolver) Resolve(ctx context.Context, a Action) Outcome {
	if a.Selection == nil {
		a.Selection = ring.NoSelection{}
	}

	before := r.livingIDs()

	var (
		out Outcome
		err error
	)
	switch {
	case a.Actor == nil || !a.Actor.Alive():
		err = ring.ErrIllegalMove("the actor is not in the match")
	default:
		h, ok := r.handlers[a.Card.Kind]
		if !ok {
			out = Outcome{Message: fmt.Sprintf("%s played %s, but nothing happened.", a.Actor.Name(), a.Card.Name)}
			err = ring.ErrNoLegalTarget("card %s has no effect", a.Card.ID)
			break
		}
		out, err = h(ctx, a)
	}

	if a.Actor != nil {
		out.ActorID = a.Actor.GetID()
	}
	out.Card = a.Card.ID
	out.Kind = a.Card.Kind

	if err != nil {
		out.Applied = false
		out.Err = err
		out.Reason = errors.GetReason(err)
		if out.Message == "" {
			out.Message = wastedMessage(a, err)
		}
		return out
	}

	out.Applied = true
	for _, id := range before {
		if w, ok := r.registry.Get(id); ok && !w.Alive() {
			out.Eliminated = append(out.Eliminated, id)
		}
	}
	return out
}

func (r *Resolver) livingIDs() []string {
	var ids []string
	for w := range r.registry.Living() {
		ids = append(ids, w.GetID())
	}
	return ids
}

func wastedMessage(a Action, err error) string {
	name := "Nobody"
	if a.Actor != nil {
		name = a.Actor.Name()
	}
	return fmt.Sprintf("%s played %s: %s. Card lost.", name, a.Card.Name, errors.GetMessage(err))
}
