package ring

import (
	"github.com/KirkDiggler/ringside/internal/errors"
)

// Reasons attached to engine errors
const (
	ReasonOutOfBounds     = "out_of_bounds"
	ReasonIllegalMove     = "illegal_move"
	ReasonInvalidIndex    = "invalid_index"
	ReasonNoLegalTarget   = "no_legal_target"
	ReasonCorruptSnapshot = "corrupt_snapshot"
)

// ErrOutOfBounds reports a coordinate outside the board
func ErrOutOfBounds(p Position) *errors.Error {
	return errors.OutOfRangef("cell %s is outside the board", p).
		WithReason(ReasonOutOfBounds).
		WithMeta("x", p.X).
		WithMeta("y", p.Y)
}

// ErrIllegalMove reports a destination that is blocked, taken or unreachable
func ErrIllegalMove(format string, args ...any) *errors.Error {
	return errors.FailedPreconditionf(format, args...).WithReason(ReasonIllegalMove)
}

// ErrInvalidIndex reports a hand or turn index outside [0, size)
func ErrInvalidIndex(index, size int) *errors.Error {
	return errors.OutOfRangef("index %d is out of range [0,%d)", index, size).
		WithReason(ReasonInvalidIndex).
		WithMeta("index", index)
}

// ErrNoLegalTarget reports an action whose candidate targets all fail
func ErrNoLegalTarget(format string, args ...any) *errors.Error {
	return errors.FailedPreconditionf(format, args...).WithReason(ReasonNoLegalTarget)
}

// ErrCorruptSnapshot reports snapshot data that cannot be restored
func ErrCorruptSnapshot(cause error, format string, args ...any) *errors.Error {
	if cause == nil {
		return errors.DataLossf(format, args...).WithReason(ReasonCorruptSnapshot)
	}
	return errors.WrapWithCodef(cause, errors.CodeDataLoss, format, args...).
		WithReason(ReasonCorruptSnapshot)
}
