package main

import (
	"github.com/moniyo/financequest/internal/config"
)

type CheckConfigCommand struct{}

func (c *CheckConfigCommand) Name() string {
	return "check-config"
}

func (c *CheckConfigCommand) Description() string {
	return "Validate environment configuration and list warnings"
}

func (c *CheckConfigCommand) Run(args []string) error {
	PrintHeader("Checking configuration")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	PrintInfo("storage: %s, port: %d, daily cap zone: %s", cfg.StorageBackend, cfg.Port, cfg.DailyCapTimezone)
	warnings := cfg.Warnings()
	for _, w := range warnings {
		PrintWarning("%s", w)
	}
	if len(warnings) == 0 {
		PrintSuccess("Configuration is valid")
	} else {
		PrintSuccess("Configuration is valid with %d warning(s)", len(warnings))
	}
	return nil
}
