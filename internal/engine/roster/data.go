package roster

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
)

// WrestlerData is the persisted form of a wrestler. Cards are stored by id.
type WrestlerData struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	HP         int                 `json:"hp"`
	MaxHP      int                 `json:"max_hp"`
	Position   ring.Position       `json:"position"`
	Alive      bool                `json:"alive"`
	Controller ring.Controller     `json:"controller"`
	Strength   int                 `json:"strength"`
	Speed      int                 `json:"speed"`
	Hand       []ring.CardID       `json:"hand"`
	Effects    []ring.StatusEffect `json:"effects,omitempty"`
	Equipment  []int               `json:"equipment,omitempty"`
}

// ToData captures every wrestler in turn order
func (r *Registry) ToData() []WrestlerData {
	out := make([]WrestlerData, 0, len(r.order))
	for _, w := range r.order {
		out = append(out, WrestlerData{
			ID:         w.id,
			Name:       w.name,
			HP:         w.hp,
			MaxHP:      w.maxHP,
			Position:   w.position,
			Alive:      w.alive,
			Controller: w.controller,
			Strength:   w.strength,
			Speed:      w.speed,
			Hand:       w.Hand(),
			Effects:    w.Effects(),
			Equipment:  w.Equipment(),
		})
	}
	return out
}

// FromData rebuilds a registry on b. Living wrestlers are placed back on
// the board; any data a live registry could not hold is reported as a
// corrupt snapshot.
func FromData(b *board.Board, bus events.EventBus, data []WrestlerData) (*Registry, error) {
	r, err := New(&Config{Board: b, Bus: bus})
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ring.ErrCorruptSnapshot(nil, "roster is empty")
	}

	for i, d := range data {
		switch {
		case d.ID == "":
			return nil, ring.ErrCorruptSnapshot(nil, "wrestler %d has no id", i)
		case r.byID[d.ID] != nil:
			return nil, ring.ErrCorruptSnapshot(nil, "duplicate wrestler %s", d.ID)
		case d.MaxHP <= 0 || d.HP < 0 || d.HP > d.MaxHP:
			return nil, ring.ErrCorruptSnapshot(nil, "wrestler %s has hp %d/%d", d.ID, d.HP, d.MaxHP)
		case d.Alive != (d.HP > 0):
			return nil, ring.ErrCorruptSnapshot(nil, "wrestler %s liveness does not match hp", d.ID)
		case !b.InBounds(d.Position):
			return nil, ring.ErrCorruptSnapshot(nil, "wrestler %s stands outside the board", d.ID)
		}

		if d.Alive {
			if err := b.Place(d.Position, d.ID); err != nil {
				return nil, ring.ErrCorruptSnapshot(err, "wrestler %s cannot stand on %s", d.ID, d.Position)
			}
		}

		controller := d.Controller
		if controller == "" {
			controller = ring.ControllerAI
		}
		w := &Wrestler{
			id:         d.ID,
			name:       d.Name,
			hp:         d.HP,
			maxHP:      d.MaxHP,
			position:   d.Position,
			alive:      d.Alive,
			controller: controller,
			strength:   d.Strength,
			speed:      d.Speed,
			hand:       slices.Clone(d.Hand),
			effects:    make(map[ring.StatusKind]ring.StatusEffect, len(d.Effects)),
			equipment:  slices.Clone(d.Equipment),
		}
		for _, e := range d.Effects {
			if !e.Kind.Valid() {
				return nil, ring.ErrCorruptSnapshot(nil, "wrestler %s has unknown status %q", d.ID, e.Kind)
			}
			if e.Magnitude < 0 {
				return nil, ring.ErrCorruptSnapshot(nil, "wrestler %s has %s magnitude %d", d.ID, e.Kind, e.Magnitude)
			}
			if e.Remaining > 0 {
				w.effects[e.Kind] = e
			}
		}
		r.order = append(r.order, w)
		r.byID[w.id] = w
	}

	return r, nil
}
