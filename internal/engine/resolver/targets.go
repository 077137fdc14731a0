package resolver

import (
	"slices"

	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

var (
	kingSteps = []ring.Position{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 1, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
	}
	cardinalSteps = []ring.Position{
		{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	}
)

// MoveRange is how far a free-roam move can carry actor this turn
func (r *Resolver) MoveRange(actor *roster.Wrestler) int {
	base := actor.Speed()
	if base <= 0 {
		base = r.rules.BaseMoveRange
	}
	return base + actor.StatusMagnitude(ring.StatusSpeed)
}

// Destinations lists the cells a move card could take actor to, in
// row-major order.
func (r *Resolver) Destinations(actor *roster.Wrestler) []ring.Position {
	if actor == nil || !actor.Alive() {
		return nil
	}

	start := actor.Position()
	var out []ring.Position

	if r.rules.Movement == MovementCardinal {
		for _, step := range cardinalSteps {
			p := start.Add(step)
			if r.board.IsFree(p) {
				out = append(out, p)
			}
		}
		sortRowMajor(out)
		return out
	}

	// breadth-first over free cells so that walls and wrestlers block paths
	limit := r.MoveRange(actor)
	dist := map[ring.Position]int{start: 0}
	queue := []ring.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if dist[cur] == limit {
			continue
		}
		for _, step := range kingSteps {
			next := cur.Add(step)
			if _, seen := dist[next]; seen || !r.board.IsFree(next) {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
			out = append(out, next)
		}
	}
	sortRowMajor(out)
	return out
}

// Targets lists the living opponents card could legally hit, in roster order
func (r *Resolver) Targets(actor *roster.Wrestler, card ring.Card) []*roster.Wrestler {
	if actor == nil || !actor.Alive() || !card.Kind.Offensive() {
		return nil
	}

	var out []*roster.Wrestler
	for w := range r.registry.Living() {
		if w == actor {
			continue
		}
		if r.checkTarget(actor, card, w) == nil {
			out = append(out, w)
		}
	}
	return out
}

// checkTarget is the legality predicate shared by offensive kinds
func (r *Resolver) checkTarget(actor *roster.Wrestler, card ring.Card, target *roster.Wrestler) error {
	if target == nil || !target.Alive() {
		return ring.ErrNoLegalTarget("the target is not in the match")
	}
	if target == actor {
		return ring.ErrNoLegalTarget("%s cannot target themselves", actor.Name())
	}

	distance := ring.Chebyshev(actor.Position(), target.Position())
	if card.Kind == ring.ActionPush {
		if distance != 1 {
			return ring.ErrNoLegalTarget("%s is not adjacent", target.Name())
		}
		_, err := r.pushDestination(actor, target)
		return err
	}

	if distance > card.Range {
		return ring.ErrNoLegalTarget("%s is out of range", target.Name())
	}
	return nil
}

func (r *Resolver) pushDestination(actor, target *roster.Wrestler) (ring.Position, error) {
	delta := target.Position().Sub(actor.Position())
	dest := target.Position().Add(delta)

	switch {
	case !r.board.InBounds(dest):
		return dest, ring.ErrIllegalMove("%s cannot be thrown off the board", target.Name())
	case !r.board.IsPassable(dest):
		return dest, ring.ErrIllegalMove("%s would be thrown into a wall", target.Name())
	case r.board.IsOccupied(dest):
		return dest, ring.ErrIllegalMove("%s would land on another wrestler", target.Name())
	}
	return dest, nil
}

// selectTarget resolves a selection into an opponent. No selection picks
// the first legal opponent in roster order.
func (r *Resolver) selectTarget(a Action) (*roster.Wrestler, error) {
	switch sel := a.Selection.(type) {
	case ring.EntitySelection:
		target, ok := r.registry.Get(sel.ID)
		if !ok {
			return nil, ring.ErrNoLegalTarget("no wrestler %s", sel.ID)
		}
		return target, r.checkTarget(a.Actor, a.Card, target)
	case ring.CellSelection:
		if !r.board.InBounds(sel.Position) {
			return nil, ring.ErrOutOfBounds(sel.Position)
		}
		target, ok := r.registry.EntityAt(sel.Position)
		if !ok {
			return nil, ring.ErrNoLegalTarget("nobody stands on %s", sel.Position)
		}
		return target, r.checkTarget(a.Actor, a.Card, target)
	default:
		targets := r.Targets(a.Actor, a.Card)
		if len(targets) == 0 {
			return nil, ring.ErrNoLegalTarget("no targets")
		}
		return targets[0], nil
	}
}

func sortRowMajor(ps []ring.Position) {
	slices.SortFunc(ps, func(a, b ring.Position) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}
