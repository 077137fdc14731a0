package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/ringside/internal/errors"
)

// Server is the runtime configuration of the gRPC server
type Server struct {
	GRPCPort int `env:"RINGSIDE_GRPC_PORT" envDefault:"50051"`

	// RedisAddr selects redis snapshot storage, as host:port or a redis://
	// URL. Empty keeps snapshots in memory.
	RedisAddr     string        `env:"RINGSIDE_REDIS_ADDR"`
	RedisPoolSize int           `env:"RINGSIDE_REDIS_POOL_SIZE" envDefault:"0"`
	RedisTLS      bool          `env:"RINGSIDE_REDIS_TLS" envDefault:"false"`
	SnapshotTTL   time.Duration `env:"RINGSIDE_SNAPSHOT_TTL" envDefault:"24h"`

	// TurnTimeout overrides the scenario's timeout when positive
	TurnTimeout  time.Duration `env:"RINGSIDE_TURN_TIMEOUT" envDefault:"0s"`
	TimeoutSweep time.Duration `env:"RINGSIDE_TIMEOUT_SWEEP" envDefault:"1s"`

	ScenarioPath string `env:"RINGSIDE_SCENARIO"`
}

// LoadServer reads the server configuration from the environment
func LoadServer() (*Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges of the server settings
func (c *Server) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("RINGSIDE_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	if c.RedisPoolSize < 0 {
		vb.Field("RINGSIDE_REDIS_POOL_SIZE", "must not be negative")
	}
	if c.SnapshotTTL < 0 {
		vb.Field("RINGSIDE_SNAPSHOT_TTL", "must not be negative")
	}
	if c.TurnTimeout < 0 {
		vb.Field("RINGSIDE_TURN_TIMEOUT", "must not be negative")
	}
	if c.TimeoutSweep <= 0 {
		vb.Field("RINGSIDE_TIMEOUT_SWEEP", "must be positive")
	}

	return vb.Build()
}

// Scenario loads the configured scenario, or the default one
func (c *Server) Scenario() (*Scenario, error) {
	sc := DefaultScenario()
	if c.ScenarioPath != "" {
		loaded, err := LoadScenario(c.ScenarioPath)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}
	if c.TurnTimeout > 0 {
		sc.Rules.TurnTimeout = c.TurnTimeout
	}
	return sc, nil
}
