// Package roster owns the combatants of a match and every mutation of their
// combat state: damage, healing, status effects, movement and elimination.
package roster

import (
	"context"
	"iter"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Config holds the dependencies of a Registry
type Config struct {
	Board *board.Board
	// Bus receives elimination events. Optional.
	Bus events.EventBus
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Board == nil {
		vb.RequiredField("Board")
	}

	return vb.Build()
}

// Spec describes a wrestler entering the match
type Spec struct {
	ID         string
	Name       string
	HP         int
	MaxHP      int
	Position   ring.Position
	Controller ring.Controller
	Strength   int
	Speed      int
}

// Registry is the roster in turn order
type Registry struct {
	board *board.Board
	bus   events.EventBus
	order []*Wrestler
	byID  map[string]*Wrestler
}

// New creates an empty registry bound to a board
func New(cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid roster config")
	}

	return &Registry{
		board: cfg.Board,
		bus:   cfg.Bus,
		byID:  make(map[string]*Wrestler),
	}, nil
}

// Add places a new living wrestler on the board at the end of turn order
func (r *Registry) Add(spec Spec) (*Wrestler, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", spec.ID, vb)
	errors.ValidateRequired("Name", spec.Name, vb)
	if spec.MaxHP <= 0 {
		vb.Field("MaxHP", "must be positive")
	}
	if spec.HP <= 0 || spec.HP > spec.MaxHP {
		vb.Fieldf("HP", "must be in [1,%d]", spec.MaxHP)
	}
	if _, dup := r.byID[spec.ID]; dup {
		vb.Fieldf("ID", "duplicate wrestler %s", spec.ID)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if err := r.board.Place(spec.Position, spec.ID); err != nil {
		return nil, errors.Wrapf(err, "failed to place %s", spec.ID)
	}

	controller := spec.Controller
	if controller == "" {
		controller = ring.ControllerAI
	}
	w := &Wrestler{
		id:         spec.ID,
		name:       spec.Name,
		hp:         spec.HP,
		maxHP:      spec.MaxHP,
		position:   spec.Position,
		alive:      true,
		controller: controller,
		strength:   spec.Strength,
		speed:      spec.Speed,
		effects:    make(map[ring.StatusKind]ring.StatusEffect),
	}
	r.order = append(r.order, w)
	r.byID[w.id] = w
	return w, nil
}

// Board returns the board the roster stands on
func (r *Registry) Board() *board.Board { return r.board }

// Get looks up a wrestler by id, dead or alive
func (r *Registry) Get(id string) (*Wrestler, bool) {
	w, ok := r.byID[id]
	return w, ok
}

// At returns the wrestler in turn order slot i
func (r *Registry) At(i int) (*Wrestler, error) {
	if i < 0 || i >= len(r.order) {
		return nil, ring.ErrInvalidIndex(i, len(r.order))
	}
	return r.order[i], nil
}

// Len is the roster size including eliminated wrestlers
func (r *Registry) Len() int { return len(r.order) }

// All yields every wrestler in turn order
func (r *Registry) All() iter.Seq[*Wrestler] {
	return func(yield func(*Wrestler) bool) {
		for _, w := range r.order {
			if !yield(w) {
				return
			}
		}
	}
}

// Living yields the living wrestlers in turn order. The sequence is lazy
// and can be ranged over any number of times.
func (r *Registry) Living() iter.Seq[*Wrestler] {
	return func(yield func(*Wrestler) bool) {
		for _, w := range r.order {
			if w.alive && !yield(w) {
				return
			}
		}
	}
}

// LivingCount counts wrestlers still in the match
func (r *Registry) LivingCount() int {
	n := 0
	for range r.Living() {
		n++
	}
	return n
}

// EntityAt returns the living wrestler on p
func (r *Registry) EntityAt(p ring.Position) (*Wrestler, bool) {
	id, ok := r.board.OccupantAt(p)
	if !ok {
		return nil, false
	}
	w, ok := r.byID[id]
	if !ok || !w.alive {
		return nil, false
	}
	return w, true
}

// ApplyDamage subtracts amount reduced by the target's shield and returns
// the hp actually lost. Damage to a dead wrestler is ignored.
func (r *Registry) ApplyDamage(ctx context.Context, w *Wrestler, amount int) int {
	if !w.alive {
		return 0
	}

	effective := max(0, amount-w.StatusMagnitude(ring.StatusShield))
	lost := min(effective, w.hp)
	w.hp -= lost

	if w.hp == 0 {
		r.eliminate(ctx, w, ring.CauseKnockout)
	}
	return lost
}

// Heal restores up to amount hp, capped at max hp, and returns the gain
func (r *Registry) Heal(w *Wrestler, amount int) int {
	if !w.alive || amount <= 0 {
		return 0
	}
	gained := min(amount, w.maxHP-w.hp)
	w.hp += gained
	return gained
}

// ApplyStatus sets an effect, replacing any active effect of the same kind
func (r *Registry) ApplyStatus(w *Wrestler, kind ring.StatusKind, magnitude, duration int) {
	if !w.alive || duration <= 0 {
		return
	}
	w.effects[kind] = ring.StatusEffect{
		Kind:      kind,
		Magnitude: magnitude,
		Remaining: duration,
	}
}

// DecayStatus ticks every effect on w once and returns the kinds that
// expired.
func (r *Registry) DecayStatus(w *Wrestler) []ring.StatusKind {
	var expired []ring.StatusKind
	for kind, e := range w.effects {
		e.Remaining--
		if e.Remaining <= 0 {
			delete(w.effects, kind)
			expired = append(expired, kind)
			continue
		}
		w.effects[kind] = e
	}
	return expired
}

// MoveTo relocates w. Occupancy and position change together or not at all.
func (r *Registry) MoveTo(w *Wrestler, p ring.Position) error {
	if !w.alive {
		return ring.ErrIllegalMove("%s is eliminated", w.name)
	}
	if err := r.board.Relocate(w.id, w.position, p); err != nil {
		return err
	}
	w.position = p
	return nil
}

// Eliminate removes a living wrestler from play regardless of hp
func (r *Registry) Eliminate(ctx context.Context, w *Wrestler, cause string) {
	if !w.alive {
		return
	}
	w.hp = 0
	r.eliminate(ctx, w, cause)
}

// PickUp records an equipment item as carried
func (r *Registry) PickUp(w *Wrestler, equipmentID int) {
	w.equipment = append(w.equipment, equipmentID)
}

func (r *Registry) eliminate(ctx context.Context, w *Wrestler, cause string) {
	w.alive = false
	w.hand = nil
	r.board.Vacate(w.position, w.id)

	if r.bus == nil {
		return
	}
	event := events.NewGameEvent(ring.EventEliminated, w, nil)
	event.Context().Set(ring.EventKeyCause, cause)
	if err := r.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish elimination",
			"wrestler_id", w.id,
			"error", err)
	}
}
