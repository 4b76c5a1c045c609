// Command seeder brings a fresh e-commerce MongoDB database to its initial
// state: platform configuration, collection indexes and the admin account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/engineeringdigest/ecommerce-seeder/internal/api/metrics"
	"github.com/engineeringdigest/ecommerce-seeder/internal/core/domain"
	"github.com/engineeringdigest/ecommerce-seeder/internal/core/ports"
	"github.com/engineeringdigest/ecommerce-seeder/internal/core/service"
	mongodb "github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/db/mongo"
	redisdb "github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/db/redis"
	statushttp "github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/http"
	"github.com/engineeringdigest/ecommerce-seeder/internal/infrastructure/http/handlers"
	"github.com/engineeringdigest/ecommerce-seeder/internal/pkg/config"
	"github.com/engineeringdigest/ecommerce-seeder/pkg/logger"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2
	exitAuth         = 3
	exitDuplicateKey = 4
	exitWrite        = 5
	exitLocked       = 6
	exitVerification = 7

	shutdownTimeout = 5 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("seeder", flag.ContinueOnError)
	verifyOnly := fs.Bool("verify-only", false, "only check that every declared index exists; write nothing")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeder: %v\n", err)
		return exitUsage
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "ecommerce-seeder",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, mongodb.Config{
		URI:        cfg.Mongo.URI,
		Username:   cfg.Mongo.Username,
		Password:   cfg.Mongo.Password,
		AuthSource: cfg.Mongo.AuthSource,
		Timeout:    cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create mongo client")
		return exitFailure
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	session := mongodb.NewSession(client, cfg.Mongo.Timeout)

	pingers := map[string]handlers.Pinger{"mongodb": session}

	var lock ports.SeedLock
	if cfg.LockEnabled() {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
			return exitFailure
		}
		defer rdb.Close()
		lock = redisdb.NewSeedLock(rdb, cfg.Seed.LockTTL)
		pingers["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	admin, err := service.NewAdminUser(service.AdminOptions{
		Username:     cfg.Seed.AdminUsername,
		Email:        cfg.Seed.AdminEmail,
		Password:     cfg.Seed.AdminPassword,
		PasswordHash: cfg.Seed.AdminPasswordHash,
		BcryptCost:   cfg.Seed.BcryptCost,
	})
	if err != nil {
		log.Error().Err(err).Msg("invalid admin credentials")
		return exitFailure
	}

	seeder := service.NewSeeder(session, service.DefaultFixtures(admin), service.Options{
		Database: cfg.Mongo.Database,
		Mode:     cfg.SeedMode(),
		Verify:   cfg.Seed.Verify,
	}, lock, log)

	if cfg.Seed.StatusAddr != "" {
		e := statushttp.NewRouter(seeder, pingers, metrics.Registry, log)
		shutdown := statushttp.Serve(e, cfg.Seed.StatusAddr, log)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			shutdown(sctx)
		}()
	}

	if *verifyOnly {
		return verify(ctx, session, seeder, log)
	}

	report, err := seeder.Run(ctx)

	if cfg.Seed.PushgatewayURL != "" {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		if perr := metrics.Push(pctx, cfg.Seed.PushgatewayURL, cfg.Mongo.Database); perr != nil {
			log.Warn().Err(perr).Str("url", cfg.Seed.PushgatewayURL).Msg("failed to push metrics")
		}
		cancel()
	}

	if err != nil {
		log.Error().
			Err(err).
			Int("config_inserted", report.ConfigInserted).
			Int("indexes_created", len(report.IndexesCreated)).
			Strs("missing_indexes", report.MissingIndexes).
			Msg("seed run failed")
		return exitCode(err)
	}

	log.Info().
		Str("database", report.Database).
		Str("mode", string(report.Mode)).
		Bool("verified", report.Verified).
		Msg("database seeded")
	return exitOK
}

type authenticator interface {
	Authenticate(ctx context.Context) error
}

type indexVerifier interface {
	Verify(ctx context.Context) ([]string, error)
}

// verify backs -verify-only: authenticate, then report missing indexes.
func verify(ctx context.Context, session authenticator, seeder indexVerifier, log zerolog.Logger) int {
	if err := session.Authenticate(ctx); err != nil {
		log.Error().Err(err).Msg("authentication failed")
		return exitCode(err)
	}

	missing, err := seeder.Verify(ctx)
	if err != nil {
		log.Error().Err(err).Msg("index verification failed")
		return exitCode(err)
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: missing indexes %s", domain.ErrVerification, strings.Join(missing, ", "))
		log.Error().Err(err).Strs("missing_indexes", missing).Msg("database is not fully seeded")
		return exitCode(err)
	}

	log.Info().Msg("all declared indexes present")
	return exitOK
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrAuthentication):
		return exitAuth
	case errors.Is(err, domain.ErrWrite):
		return exitWrite
	case errors.Is(err, domain.ErrDuplicateKey):
		return exitDuplicateKey
	case errors.Is(err, domain.ErrSeedInProgress):
		return exitLocked
	case errors.Is(err, domain.ErrVerification):
		return exitVerification
	default:
		return exitFailure
	}
}
