package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/pkg/rng"
)

func TestSeededRollerIsDeterministic(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	rollsA, err := a.RollN(50, 6)
	require.NoError(t, err)
	rollsB, err := b.RollN(50, 6)
	require.NoError(t, err)

	assert.Equal(t, rollsA, rollsB)
	for _, v := range rollsA {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 6)
	}
}

func TestRollRejectsNonPositiveSize(t *testing.T) {
	r := rng.NewSeeded(1)

	_, err := r.Roll(0)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = r.RollN(-1, 6)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestStateRestoreReplaysStream(t *testing.T) {
	r := rng.NewSeeded(7)
	_, err := r.RollN(5, 20)
	require.NoError(t, err)

	state, err := r.State()
	require.NoError(t, err)

	first, err := r.RollN(10, 20)
	require.NoError(t, err)

	restored := rng.NewSeeded(999)
	require.NoError(t, restored.Restore(state))
	second, err := restored.RollN(10, 20)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIndex(t *testing.T) {
	r := rng.NewSeeded(3)
	for range 100 {
		idx, err := rng.Index(r, 4)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 4)
	}
}
