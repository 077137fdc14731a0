// Package matches stores serialized match snapshots
package matches

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=matchesmock github.com/KirkDiggler/ringside/internal/repositories/matches Repository

// SaveInput contains the snapshot to persist
type SaveInput struct {
	MatchID  string
	Snapshot []byte
}

// SaveOutput is empty; a nil error means the snapshot is durable
type SaveOutput struct{}

// GetInput identifies the snapshot to load
type GetInput struct {
	MatchID string
}

// GetOutput carries the stored snapshot bytes untouched
type GetOutput struct {
	Snapshot []byte
}

// DeleteInput identifies the snapshot to remove
type DeleteInput struct {
	MatchID string
}

// DeleteOutput reports whether anything was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository is the single-slot store per match. Save overwrites.
type Repository interface {
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

const (
	errInputRequired   = "input is required"
	errMatchIDRequired = "match ID is required"
	errSnapshotEmpty   = "snapshot cannot be empty"
)
