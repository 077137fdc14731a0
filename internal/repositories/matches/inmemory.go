package matches

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/ringside/internal/errors"
)

// InMemoryRepository implements Repository without any external store.
// Snapshots do not expire.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Save stores a copy of the snapshot
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}
	if len(input.Snapshot) == 0 {
		return nil, errors.InvalidArgument(errSnapshotEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.MatchID] = slices.Clone(input.Snapshot)
	return &SaveOutput{}, nil
}

// Get returns a copy of the stored snapshot
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.store[input.MatchID]
	if !ok {
		return nil, errors.NotFoundf("no saved game for match %s", input.MatchID)
	}

	// Return a copy to prevent external modification
	return &GetOutput{Snapshot: slices.Clone(data)}, nil
}

// Delete removes the snapshot if present
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.store[input.MatchID]
	delete(r.store, input.MatchID)
	return &DeleteOutput{Deleted: ok}, nil
}
