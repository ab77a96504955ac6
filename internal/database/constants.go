package database

const (
	// DefaultMinConnections is kept open even when the service is idle
	DefaultMinConnections = 2

	MigrationDialect = "postgres"
)

const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgGooseSetup              = "failed to prepare migrator"
)

const (
	LogMsgConnected         = "connected to postgres"
	LogMsgMigrationsApplied = "migrations applied"
)
