package turn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ringside/internal/engine/board"
	"github.com/KirkDiggler/ringside/internal/engine/cards"
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

// SnapshotVersion is written into every snapshot
const SnapshotVersion = 1

// Snapshot is the persisted form of a session. Cards are stored by id and
// resolved against the pool again on restore.
type Snapshot struct {
	Version      int                   `json:"version"`
	ID           string                `json:"id"`
	Seed         uint64                `json:"seed,string,omitempty"`
	Board        board.Data            `json:"board"`
	Wrestlers    []roster.WrestlerData `json:"wrestlers"`
	Turn         int                   `json:"turn"`
	ActiveIndex  int                   `json:"active_index"`
	State        string                `json:"state"`
	Winner       string                `json:"winner,omitempty"`
	SelectedCard int                   `json:"selected_card"`
	Selection    ring.SelectionData    `json:"selection"`
	Rules        resolver.Rules        `json:"rules"`
	HandSize     int                   `json:"hand_size"`
	Messages     []string              `json:"messages,omitempty"`
	RNG          []byte                `json:"rng,omitempty"`
}

// Snapshot captures the session
func (s *Session) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{
		Version:      SnapshotVersion,
		ID:           s.id,
		Seed:         s.seed,
		Board:        s.board.ToData(),
		Wrestlers:    s.registry.ToData(),
		Turn:         s.turn,
		ActiveIndex:  s.index,
		State:        s.State(),
		Winner:       s.winner,
		SelectedCard: s.selectedCard,
		Selection:    ring.ToSelectionData(s.selection),
		Rules:        s.resolver.Rules(),
		HandSize:     s.hands.HandSize(),
		Messages:     s.log.list(),
	}

	if stateful, ok := s.roller.(rng.Stateful); ok {
		state, err := stateful.State()
		if err != nil {
			return nil, err
		}
		snap.RNG = state
	}
	return snap, nil
}

// Save serialises the session
func (s *Session) Save(ctx context.Context) ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal snapshot")
	}

	s.record(ctx, ring.EventMessage, nil, "Game saved.")
	return data, nil
}

// Restore rebuilds a session from Save output. Any inconsistency is
// reported as a corrupt snapshot and nothing is built.
func Restore(ctx context.Context, data []byte, cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if cfg.Pool == nil || cfg.Roller == nil {
		return nil, errors.InvalidArgument("pool and roller are required")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, ring.ErrCorruptSnapshot(err, "snapshot is not valid json")
	}
	return FromSnapshot(ctx, &snap, cfg)
}

// FromSnapshot rebuilds a session from a decoded snapshot
func FromSnapshot(ctx context.Context, snap *Snapshot, cfg *Config) (*Session, error) {
	if err := checkSnapshot(snap); err != nil {
		return nil, err
	}

	b, err := board.FromData(snap.Board)
	if err != nil {
		return nil, err
	}

	bus := cfg.Bus
	if bus == nil {
		bus = events.NewBus()
	}
	registry, err := roster.FromData(b, bus, snap.Wrestlers)
	if err != nil {
		return nil, err
	}
	if snap.ActiveIndex >= registry.Len() {
		return nil, ring.ErrCorruptSnapshot(nil, "active index %d is outside the roster", snap.ActiveIndex)
	}

	over := snap.State == StateGameOver
	if living := registry.LivingCount(); over != (living <= 1) {
		return nil, ring.ErrCorruptSnapshot(nil, "state %s does not fit %d living wrestlers", snap.State, living)
	}
	active, _ := registry.At(snap.ActiveIndex)
	if !over && !active.Alive() {
		return nil, ring.ErrCorruptSnapshot(nil, "active wrestler %s is eliminated", active.GetID())
	}
	if snap.Winner != "" {
		if w, ok := registry.Get(snap.Winner); !ok || !w.Alive() {
			return nil, ring.ErrCorruptSnapshot(nil, "winner %s is not a living wrestler", snap.Winner)
		}
	}

	if stateful, ok := cfg.Roller.(rng.Stateful); ok && len(snap.RNG) > 0 {
		if err := stateful.Restore(snap.RNG); err != nil {
			return nil, ring.ErrCorruptSnapshot(err, "roller state is invalid")
		}
	}

	restoreCfg := *cfg
	restoreCfg.ID = snap.ID
	restoreCfg.Seed = snap.Seed
	restoreCfg.Rules = snap.Rules
	restoreCfg.HandSize = snap.HandSize
	s, err := assemble(&restoreCfg, b, registry, bus, snap.State)
	if err != nil {
		return nil, ring.ErrCorruptSnapshot(err, "snapshot settings are invalid")
	}

	s.turn = snap.Turn
	s.index = snap.ActiveIndex
	s.winner = snap.Winner
	s.log.reset(snap.Messages)

	hand := active.Hand()
	if !over && snap.SelectedCard >= 0 && snap.SelectedCard < len(hand) {
		s.selectedCard = snap.SelectedCard
		s.selection = ring.FromSelectionData(snap.Selection)
	}
	if !over && s.timeout > 0 {
		s.deadline = s.clock.Now().Add(s.timeout)
	}

	s.record(ctx, ring.EventMessage, nil, fmt.Sprintf("Game loaded at turn %d.", s.turn))
	return s, nil
}

func checkSnapshot(snap *Snapshot) error {
	switch {
	case snap.Version == 0:
		return ring.ErrCorruptSnapshot(nil, "snapshot has no version")
	case snap.Version > SnapshotVersion:
		return ring.ErrCorruptSnapshot(nil, "snapshot version %d is newer than %d", snap.Version, SnapshotVersion)
	case snap.ID == "":
		return ring.ErrCorruptSnapshot(nil, "snapshot has no match id")
	case snap.Turn < 1:
		return ring.ErrCorruptSnapshot(nil, "turn %d is invalid", snap.Turn)
	case snap.ActiveIndex < 0:
		return ring.ErrCorruptSnapshot(nil, "active index %d is invalid", snap.ActiveIndex)
	case snap.State != StateAwaitingAction && snap.State != StateGameOver:
		return ring.ErrCorruptSnapshot(nil, "state %q cannot be restored", snap.State)
	case snap.HandSize < 1 || snap.HandSize > cards.MaxHandSize:
		return ring.ErrCorruptSnapshot(nil, "hand size %d is outside [1,%d]", snap.HandSize, cards.MaxHandSize)
	case snap.Board.Width < 1 || snap.Board.Width > board.MaxDimension ||
		snap.Board.Height < 1 || snap.Board.Height > board.MaxDimension:
		return ring.ErrCorruptSnapshot(nil, "board %dx%d is outside the supported size", snap.Board.Width, snap.Board.Height)
	}
	return nil
}
