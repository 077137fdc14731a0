package match

import (
	"slices"

	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/turn"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

func buildView(session *turn.Session) *MatchView {
	b := session.Board()
	registry := session.Registry()

	view := &MatchView{
		ID:           session.ID(),
		Seed:         session.Seed(),
		State:        session.State(),
		Turn:         session.Turn(),
		GameOver:     session.GameOver(),
		Width:        b.Width(),
		Height:       b.Height(),
		Deadline:     session.Deadline(),
		Messages:     session.Messages(),
		SelectedCard: -1,
	}

	if winner, ok := session.Winner(); ok {
		view.Winner = winner
	}

	if !view.GameOver {
		if active := session.Active(); active != nil {
			view.ActiveID = active.GetID()
		}
		view.Hand = session.ActiveHand()

		index, sel := session.Selection()
		view.SelectedCard = index
		view.Target = targetOf(sel)
	}

	for c := range b.Cells() {
		cell := &CellView{
			Position: c.Position,
			Terrain:  c.Terrain,
			Pickup:   c.Pickup,
		}
		if id, ok := b.OccupantAt(c.Position); ok {
			cell.Occupant = id
		}
		view.Cells = append(view.Cells, cell)
	}

	for w := range registry.All() {
		view.Wrestlers = append(view.Wrestlers, &WrestlerView{
			ID:         w.GetID(),
			Name:       w.Name(),
			HP:         w.HP(),
			MaxHP:      w.MaxHP(),
			Position:   w.Position(),
			Alive:      w.Alive(),
			Controller: w.Controller(),
			Strength:   w.Strength(),
			Speed:      w.Speed(),
			Effects:    w.Effects(),
			Equipment:  slices.Clone(w.Equipment()),
			HandSize:   len(w.Hand()),
		})
	}

	return view
}

func buildOutcome(out resolver.Outcome) *OutcomeView {
	return &OutcomeView{
		ActorID:    out.ActorID,
		Card:       out.Card,
		Kind:       out.Kind,
		Applied:    out.Applied,
		Message:    out.Message,
		Reason:     out.Reason,
		TargetID:   out.TargetID,
		From:       out.From,
		To:         out.To,
		Damage:     out.Damage,
		Healed:     out.Healed,
		Eliminated: slices.Clone(out.Eliminated),
	}
}

func targetOf(sel ring.Selection) Target {
	switch v := sel.(type) {
	case ring.CellSelection:
		p := v.Position
		return Target{Cell: &p}
	case ring.EntitySelection:
		return Target{EntityID: v.ID}
	}
	return Target{}
}

func (t Target) selection() ring.Selection {
	switch {
	case t.Cell != nil:
		return ring.CellSelection{Position: *t.Cell}
	case t.EntityID != "":
		return ring.EntitySelection{ID: t.EntityID}
	}
	return ring.NoSelection{}
}
