// Command seed loads the partner service catalog into Postgres.
//
// Usage:
//
//	seed migrate
//	seed partners --file cmd/seed/partners.json [--truncate] [--force]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"subtrack/internal/cache"
	"subtrack/internal/repository"
	"subtrack/pkg/config"
	"subtrack/pkg/logger"
	"subtrack/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "Prepare the subtrack database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			return logger.Init(c.String("log-level"))
		},
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			migrateCommand(),
			partnersCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Action: func(c *cli.Context) error {
			return withDatabase(c.Context, func(ctx context.Context, db *pgxpool.Pool, _ *config.Config) error {
				return postgres.Migrate(ctx, db, logger.Get())
			})
		},
	}
}

func partnersCommand() *cli.Command {
	return &cli.Command{
		Name:  "partners",
		Usage: "Upsert partner services from a JSON catalog file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   filepath.Join("cmd", "seed", "partners.json"),
				Usage:   "Path to the catalog JSON",
			},
			&cli.BoolFlag{
				Name:  "truncate",
				Usage: "Delete the existing catalog before loading",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Load even if the file has not changed since the last run",
			},
		},
		Action: func(c *cli.Context) error {
			return withDatabase(c.Context, func(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
				appLogger := logger.Get()
				partnerRepo := repository.NewPartnerRepository(db, appLogger)

				opts := seedOptions{
					File:      c.String("file"),
					StateFile: filepath.Join(filepath.Dir(c.String("file")), ".seed_state.json"),
					Truncate:  c.Bool("truncate"),
					Force:     c.Bool("force"),
				}
				loaded, err := seedPartners(ctx, partnerRepo, opts, appLogger)
				if err != nil || loaded == 0 {
					return err
				}

				// the API serves the catalog through Redis, drop the stale copy
				redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis, appLogger)
				if err != nil {
					appLogger.Warn("Could not invalidate catalog cache", zap.Error(err))
					return nil
				}
				if redisClient == nil {
					return nil
				}
				defer redisClient.Close()

				catalog := cache.NewCatalogCache(redisClient, partnerRepo, cfg.Redis.Prefix, cfg.Redis.CatalogTTL, appLogger)
				if err := catalog.Invalidate(ctx); err != nil {
					appLogger.Warn("Could not invalidate catalog cache", zap.Error(err))
				}
				return nil
			})
		},
	}
}

func withDatabase(ctx context.Context, fn func(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, logger.Get())
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(ctx, db, cfg)
}
