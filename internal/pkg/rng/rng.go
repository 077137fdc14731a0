// Package rng provides seeded dice rollers so that board generation and hand
// sampling replay identically for a given seed.
package rng

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ringside/internal/errors"
)

// Stateful is implemented by rollers whose position in the random stream
// can be captured and restored.
type Stateful interface {
	State() ([]byte, error)
	Restore(state []byte) error
}

// Roller is a deterministic dice.Roller backed by a PCG source
type Roller struct {
	mu   sync.Mutex
	pcg  *rand.PCG
	rand *rand.Rand
}

var (
	_ dice.Roller = (*Roller)(nil)
	_ Stateful    = (*Roller)(nil)
)

// NewSeeded creates a roller whose sequence depends only on seed
func NewSeeded(seed uint64) *Roller {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Roller{
		pcg:  pcg,
		rand: rand.New(pcg),
	}
}

// Roll returns a value in [1, size]
func (r *Roller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive: %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rand.IntN(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *Roller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("dice count must not be negative: %d", count)
	}

	results := make([]int, count)
	for i := range results {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// State captures the current position in the random stream
func (r *Roller) State() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.pcg.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture roller state")
	}
	return state, nil
}

// Restore rewinds the roller to a captured state
func (r *Roller) Restore(state []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.pcg.UnmarshalBinary(state); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid roller state")
	}
	return nil
}

// Index draws a uniform index in [0, n) from any dice.Roller
func Index(roller dice.Roller, n int) (int, error) {
	v, err := roller.Roll(n)
	if err != nil {
		return 0, err
	}
	return v - 1, nil
}
