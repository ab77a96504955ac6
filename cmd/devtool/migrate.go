package main

import (
	"context"
	"fmt"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/database"
)

var migrateSubcommands = map[string]bool{
	"up": true, "up-by-one": true, "down": true, "status": true,
	"version": true, "redo": true, "reset": true, "up-to": true, "down-to": true,
}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Run embedded database migrations (up, down, status, version, redo, reset)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, version, redo, reset")
	}
	subcmd := args[0]
	if !migrateSubcommands[subcmd] {
		return fmt.Errorf("unknown migrate subcommand %q", subcmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Migrate %s (%s@%s/%s)", subcmd, cfg.DBUser, cfg.DBHost, cfg.DBName))

	pool, err := database.NewPool(cfg.GetDBConnString(), 2, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrationCommand(context.Background(), pool, subcmd, args[1:]...); err != nil {
		return err
	}
	PrintSuccess("migrate %s complete", subcmd)
	return nil
}
