package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

func (r *Resolver) resolveMove(ctx context.Context, a Action) (Outcome, error) {
	options := r.Destinations(a.Actor)
	if len(options) == 0 {
		return Outcome{}, ring.ErrIllegalMove("no free cell to move to")
	}

	var dest ring.Position
	switch sel := a.Selection.(type) {
	case ring.CellSelection:
		if !r.board.InBounds(sel.Position) {
			return Outcome{}, ring.ErrOutOfBounds(sel.Position)
		}
		if !slices.Contains(options, sel.Position) {
			return Outcome{}, ring.ErrIllegalMove("%s cannot reach %s", a.Actor.Name(), sel.Position)
		}
		dest = sel.Position
	case ring.EntitySelection:
		return Outcome{}, ring.ErrIllegalMove("a move needs a cell, not a wrestler")
	default:
		dest = options[0]
	}

	from := a.Actor.Position()
	if err := r.registry.MoveTo(a.Actor, dest); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		From:    from,
		To:      dest,
		Message: fmt.Sprintf("%s moved to %s.", a.Actor.Name(), dest),
	}
	if extra := r.applyPickup(ctx, a.Actor, &out); extra != "" {
		out.Message += " " + extra
	}
	return out, nil
}

// applyPickup consumes whatever lies on the actor's new cell
func (r *Resolver) applyPickup(ctx context.Context, w *roster.Wrestler, out *Outcome) string {
	p := w.Position()
	terrain, err := r.board.TerrainAt(p)
	if err != nil {
		return ""
	}
	pickup, ok := r.board.PickupAt(p)
	if !ok {
		return ""
	}
	r.board.ClearPickup(p)

	switch terrain {
	case ring.TerrainTrap:
		lost := r.registry.ApplyDamage(ctx, w, r.rules.TrapDamage)
		out.Damage = lost
		if !w.Alive() {
			return fmt.Sprintf("A trap! %s took %d damage and is out!", w.Name(), lost)
		}
		return fmt.Sprintf("A trap! %s took %d damage.", w.Name(), lost)

	case ring.TerrainBonus:
		switch pickup.Bonus {
		case ring.BonusHeal:
			out.Healed = r.registry.Heal(w, pickup.Value)
			return fmt.Sprintf("Bonus! %s recovered %d HP.", w.Name(), out.Healed)
		case ring.BonusSpeed:
			r.registry.ApplyStatus(w, ring.StatusSpeed, pickup.Value, pickup.Duration)
			return fmt.Sprintf("Bonus! %s gained +%d speed.", w.Name(), pickup.Value)
		case ring.BonusShield:
			r.registry.ApplyStatus(w, ring.StatusShield, pickup.Value, pickup.Duration)
			return fmt.Sprintf("Bonus! %s gained a %d point shield.", w.Name(), pickup.Value)
		}

	case ring.TerrainEquipment:
		eq, ok := ring.EquipmentByID(pickup.EquipmentID)
		if !ok {
			return ""
		}
		r.registry.PickUp(w, eq.ID)
		if eq.Heal > 0 {
			out.Healed = r.registry.Heal(w, eq.Heal)
		}
		if eq.Status != "" {
			r.registry.ApplyStatus(w, eq.Status, eq.Magnitude, eq.Duration)
		}
		return fmt.Sprintf("%s picked up %s.", w.Name(), eq.Name)
	}
	return ""
}

// resolveStrike handles attacks and finishers
func (r *Resolver) resolveStrike(ctx context.Context, a Action) (Outcome, error) {
	target, err := r.selectTarget(a)
	if err != nil {
		return Outcome{}, err
	}

	base := a.Card.Damage + a.Actor.StatusMagnitude(ring.StatusStrength)
	lost := r.registry.ApplyDamage(ctx, target, base)

	var msg strings.Builder
	fmt.Fprintf(&msg, "%s used %s on %s for %d damage!", a.Actor.Name(), a.Card.Name, target.Name(), lost)
	if !target.Alive() {
		fmt.Fprintf(&msg, " %s is knocked out!", target.Name())
	}

	return Outcome{
		TargetID: target.GetID(),
		Damage:   lost,
		Message:  msg.String(),
	}, nil
}

func (r *Resolver) resolvePush(ctx context.Context, a Action) (Outcome, error) {
	target, err := r.selectTarget(a)
	if err != nil {
		return Outcome{}, err
	}
	dest, err := r.pushDestination(a.Actor, target)
	if err != nil {
		return Outcome{}, err
	}

	from := target.Position()
	if err := r.registry.MoveTo(target, dest); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		TargetID: target.GetID(),
		From:     from,
		To:       dest,
		Message:  fmt.Sprintf("%s threw %s to %s!", a.Actor.Name(), target.Name(), dest),
	}
	if r.rules.RingOutElimination && r.board.IsEdge(dest) {
		r.registry.Eliminate(ctx, target, ring.CauseRingOut)
		out.Message += fmt.Sprintf(" %s is out of the ring!", target.Name())
	}
	return out, nil
}

func (r *Resolver) resolveHeal(_ context.Context, a Action) (Outcome, error) {
	healed := r.registry.Heal(a.Actor, a.Card.Amount)
	return Outcome{
		TargetID: a.Actor.GetID(),
		Healed:   healed,
		Message:  fmt.Sprintf("%s used %s and recovered %d HP.", a.Actor.Name(), a.Card.Name, healed),
	}, nil
}

// resolveBuff handles speed and shield buffs
func (r *Resolver) resolveBuff(_ context.Context, a Action) (Outcome, error) {
	kind := ring.StatusShield
	if a.Card.Kind == ring.ActionSpeedBuff {
		kind = ring.StatusSpeed
	}
	r.registry.ApplyStatus(a.Actor, kind, a.Card.Magnitude, a.Card.Duration)

	return Outcome{
		TargetID: a.Actor.GetID(),
		Message: fmt.Sprintf("%s used %s: %s +%d for %d turns.",
			a.Actor.Name(), a.Card.Name, kind, a.Card.Magnitude, a.Card.Duration),
	}, nil
}
