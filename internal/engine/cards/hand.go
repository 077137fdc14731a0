package cards

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ringside/internal/engine/roster"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

// Hand sizes
const (
	// DefaultHandSize is the number of cards drawn each turn
	DefaultHandSize = 3
	MaxHandSize     = 12
)

// Config holds the dependencies of a hand Manager
type Config struct {
	Pool     *Pool
	Roller   dice.Roller
	HandSize int
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Pool == nil {
		vb.RequiredField("Pool")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	errors.ValidateRange("HandSize", c.HandSize, 0, MaxHandSize, vb)

	return vb.Build()
}

// Manager deals hands from a pool
type Manager struct {
	pool     *Pool
	roller   dice.Roller
	handSize int
}

// NewManager creates a hand manager. A zero hand size means DefaultHandSize.
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid hand config")
	}

	size := cfg.HandSize
	if size == 0 {
		size = DefaultHandSize
	}

	return &Manager{
		pool:     cfg.Pool,
		roller:   cfg.Roller,
		handSize: size,
	}, nil
}

// Pool returns the pool hands are drawn from
func (m *Manager) Pool() *Pool { return m.pool }

// HandSize is the number of cards in a fresh hand
func (m *Manager) HandSize() int { return m.handSize }

// DrawHand replaces the hand of w with cards drawn uniformly, with
// replacement.
func (m *Manager) DrawHand(w *roster.Wrestler) error {
	ids := m.pool.IDs()
	hand := make([]ring.CardID, 0, m.handSize)
	for range m.handSize {
		idx, err := rng.Index(m.roller, len(ids))
		if err != nil {
			return errors.Wrapf(err, "failed to draw card for %s", w.GetID())
		}
		hand = append(hand, ids[idx])
	}
	w.SetHand(hand)
	return nil
}

// PlayCard removes the card at index from the hand of w and resolves it
// against the pool.
func (m *Manager) PlayCard(w *roster.Wrestler, index int) (ring.Card, error) {
	id, err := w.TakeCard(index)
	if err != nil {
		return ring.Card{}, err
	}
	return m.pool.Resolve(id), nil
}

// Peek resolves the card at index without removing it
func (m *Manager) Peek(w *roster.Wrestler, index int) (ring.Card, error) {
	hand := w.Hand()
	if index < 0 || index >= len(hand) {
		return ring.Card{}, ring.ErrInvalidIndex(index, len(hand))
	}
	return m.pool.Resolve(hand[index]), nil
}
