// Command motosense is the operational CLI: serve runs the full process,
// migrate manages per-module bun migrations.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	"github.com/jbcre8iv/MotoSense-sub001/app"
	leaderboardmigrations "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/repositories/migrations"
	scoringmigrations "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories/migrations"
	"github.com/jbcre8iv/MotoSense-sub001/config"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

func main() {
	cliApp := &cli.App{
		Name:  "motosense",
		Usage: "race prediction scoring and leaderboard engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the scoring engine, event handlers, and read API",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			obs := observability.New(observability.Config{
				ServiceName:    "motosense",
				Environment:    cfg.Observability.Environment,
				MetricsAddress: cfg.Observability.MetricsAddress,
			})

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application := &app.App{}
			if err := application.Initialize(ctx, cfg, obs); err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer application.Close()

			return application.Run(ctx)
		},
	}
}

func openDB(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(moduleName string, migrator *migrate.Migrator) error {
						fmt.Printf("Initializing migrations for module: %s\n", moduleName)
						return migrator.Init(c.Context)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(moduleName string, migrator *migrate.Migrator) error {
						group, err := migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", moduleName)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(moduleName string, migrator *migrate.Migrator) error {
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", moduleName)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", moduleName, group)
						}
						return nil
					})
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration for a module",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					db := openDB(cfg)
					defer db.Close()

					migrators := buildMigrators(db)
					moduleName := c.Args().First()
					migrator, ok := migrators[moduleName]
					if !ok {
						return fmt.Errorf("invalid module name: %s", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(moduleName string, migrator *migrate.Migrator) error {
						ms, err := migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", moduleName)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						return nil
					})
				},
			},
		},
	}
}

func buildMigrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"scoring":     migrate.NewMigrator(db, scoringmigrations.Migrations),
		"leaderboard": migrate.NewMigrator(db, leaderboardmigrations.Migrations),
	}
}

func withMigrators(c *cli.Context, fn func(moduleName string, migrator *migrate.Migrator) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db := openDB(cfg)
	defer db.Close()

	for moduleName, migrator := range buildMigrators(db) {
		if err := fn(moduleName, migrator); err != nil {
			return fmt.Errorf("module %s: %w", moduleName, err)
		}
	}
	return nil
}
