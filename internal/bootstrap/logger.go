package bootstrap

import (
	"io"
	"log/slog"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/logger"
)

// SetupLogger installs the default slog logger described by cfg and logs the
// startup banner. Source locations are included in development.
func SetupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	addSource := logger.IsDevelopment(cfg.Environment)

	log := logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	), w)

	log.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageBackend,
		"auth_enabled", cfg.AuthEnabled())
	log.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"daily_cap_timezone", cfg.DailyCapTimezone,
		"quest_catalog", cfg.QuestCatalogPath)

	for _, warning := range cfg.Warnings() {
		log.Warn(LogMsgConfigWarning, "detail", warning)
	}
	return log
}
