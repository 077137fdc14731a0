package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/handlers/match/v1alpha1"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
	"github.com/KirkDiggler/ringside/internal/pkg/clock"
	"github.com/KirkDiggler/ringside/internal/pkg/idgen"
	"github.com/KirkDiggler/ringside/internal/redis"
	"github.com/KirkDiggler/ringside/internal/repositories/matches"
)

var (
	grpcPort     int
	redisAddr    string
	scenarioPath string
	debug        bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the ringside gRPC server. Settings come from RINGSIDE_* environment
variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides RINGSIDE_GRPC_PORT)")
	serverCmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for saved matches (overrides RINGSIDE_REDIS_ADDR)")
	serverCmd.Flags().StringVar(&scenarioPath, "scenario", "", "scenario file (overrides RINGSIDE_SCENARIO)")
	serverCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func runServer(cmd *cobra.Command, _ []string) error {
	if debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	if scenarioPath != "" {
		cfg.ScenarioPath = scenarioPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	scenario, err := cfg.Scenario()
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	repo, cleanup, err := newRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	matchService, err := match.NewOrchestrator(&match.Config{
		Repository:  repo,
		IDGenerator: idgen.NewUUID("match"),
		Clock:       clock.New(),
		Scenario:    scenario,
	})
	if err != nil {
		return fmt.Errorf("failed to create match service: %w", err)
	}

	matchHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		MatchService: matchService,
	})
	if err != nil {
		return fmt.Errorf("failed to create match handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
	)

	v1alpha1.RegisterMatchServiceServer(srv, matchHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go sweepTimeouts(ctx, matchService, cfg.TimeoutSweep)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting",
			"port", cfg.GRPCPort,
			"scenario", scenario.Name,
			"redis", cfg.RedisAddr != "")
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

// newRepository picks redis when an address is configured
func newRepository(ctx context.Context, cfg *config.Server) (matches.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("Saved matches are kept in memory")
		return matches.NewInMemory(), func() {}, nil
	}

	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		PoolSize: cfg.RedisPoolSize,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	if err := redis.Ping(ctx, client, 5*time.Second); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	repo, err := matches.NewRedis(&matches.Config{
		Client: client,
		TTL:    cfg.SnapshotTTL,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return repo, cleanup, nil
}

// sweepTimeouts expires overdue turns until ctx is done
func sweepTimeouts(ctx context.Context, svc match.Service, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out, err := svc.ExpireTurns(ctx, &match.ExpireTurnsInput{})
			if err != nil {
				slog.Error("Timeout sweep failed", "error", err)
				continue
			}
			if len(out.Expired) > 0 {
				slog.Debug("Expired turns", "matches", out.Expired)
			}
		}
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
