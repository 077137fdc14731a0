package resolver

import (
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Movement selects how move cards find destinations
type Movement string

// Movement rules
const (
	// MovementFreeRoam allows any cell within range reachable through
	// free cells by king moves.
	MovementFreeRoam Movement = "free_roam"
	// MovementCardinal allows exactly one step up, down, left or right.
	MovementCardinal Movement = "cardinal"
)

// Rule defaults
const (
	DefaultBaseMoveRange = 2
	DefaultTrapDamage    = 2
)

// Rules are the tunable parts of action resolution
type Rules struct {
	Movement      Movement `json:"movement"`
	BaseMoveRange int      `json:"base_move_range"`
	// RingOutElimination eliminates a wrestler pushed onto an edge cell
	RingOutElimination bool `json:"ring_out_elimination"`
	TrapDamage         int  `json:"trap_damage"`
}

// DefaultRules reproduces the classic ring
func DefaultRules() Rules {
	return Rules{
		Movement:           MovementFreeRoam,
		BaseMoveRange:      DefaultBaseMoveRange,
		RingOutElimination: false,
		TrapDamage:         DefaultTrapDamage,
	}
}

// Validate checks the rule values
func (r Rules) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("Movement", string(r.Movement),
		[]string{string(MovementFreeRoam), string(MovementCardinal)}, vb)
	if r.BaseMoveRange < 0 {
		vb.Field("BaseMoveRange", "must not be negative")
	}
	if r.TrapDamage < 0 {
		vb.Field("TrapDamage", "must not be negative")
	}

	return vb.Build()
}
