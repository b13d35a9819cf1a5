package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tunevault/internal/repositories"
	"github.com/desertthunder/tunevault/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file if needed, then initializes the database, runs migrations and seeds the default account.
//
// It prints the schema version and the stored accounts.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); os.IsNotExist(err) {
			r.logger.Info("config file not found, creating from template", "path", r.configPath)
			if err := shared.CreateConfigFile(r.configPath); err != nil {
				r.logger.Warn("failed to create config file, using defaults", "error", err)
			} else {
				r.logger.Info("config file created", "path", r.configPath)
			}
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	store, err := r.openStore()
	if err != nil {
		return err
	}

	m, err := shared.NewMigrator(store.DB())
	if err != nil {
		return err
	}
	version, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	users, err := repositories.NewUserRepository(store).List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	if err := r.writePlain("✓ database %s ready (schema version %d)\n", r.config.Database.Path, version); err != nil {
		return err
	}
	for _, u := range users {
		if err := r.writePlain("  account: %s\n", u.Username()); err != nil {
			return err
		}
	}
	return nil
}

// SetupRollback reverts the most recent migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	dbc := r.config.Database

	db, err := shared.NewDatabase(dbc.Path, dbc.BusyTimeoutMS)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbc.Path, err)
	}
	defer db.Close()

	version, err := shared.RollbackMigration(db)
	if err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}

	r.logger.Info("rolled back migration", "version", version, "path", dbc.Path)
	return r.writePlain("✓ rolled back migration %04d\n", version)
}
