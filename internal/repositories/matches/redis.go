package matches

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ringside/internal/errors"
	redisclient "github.com/KirkDiggler/ringside/internal/redis"
)

const (
	// Key pattern: match:{match_id}
	matchKeyPrefix = "match:"

	// DefaultTTL keeps a saved match around for a day
	DefaultTTL = 24 * time.Hour
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "cannot be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis backed snapshot store
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid matches repository config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save writes the snapshot, replacing any earlier one and resetting the TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}
	if len(input.Snapshot) == 0 {
		return nil, errors.InvalidArgument(errSnapshotEmpty)
	}

	if err := r.client.Set(ctx, buildKey(input.MatchID), input.Snapshot, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store match %s in Redis", input.MatchID)
	}

	return &SaveOutput{}, nil
}

// Get returns the stored snapshot or NotFound
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}

	data, err := r.client.Get(ctx, buildKey(input.MatchID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("no saved game for match %s", input.MatchID)
		}
		return nil, errors.Wrapf(err, "failed to get match %s from Redis", input.MatchID)
	}

	return &GetOutput{Snapshot: data}, nil
}

// Delete removes the snapshot; a missing key is not an error
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.MatchID == "" {
		return nil, errors.InvalidArgument(errMatchIDRequired)
	}

	n, err := r.client.Del(ctx, buildKey(input.MatchID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete match %s from Redis", input.MatchID)
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func buildKey(matchID string) string {
	return fmt.Sprintf("%s%s", matchKeyPrefix, matchID)
}
