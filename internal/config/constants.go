package config

import "time"

// Storage backends
const (
	StorageMemory    = "memory"
	StoragePostgres  = "postgres"
	StorageFirestore = "firestore"
)

// Defaults applied when a variable is unset
const (
	DefaultPort                  = 8080
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultEnvironment           = "dev"
	DefaultServiceName           = "financequest"
	DefaultVersion               = "dev"
	DefaultStorageBackend        = StorageMemory
	DefaultDBMaxConns            = 20
	DefaultDBMaxConnIdleTime     = 5 * time.Minute
	DefaultDBMaxConnLifetime     = 30 * time.Minute
	DefaultQuestCatalogPath      = "configs/quests/catalog.json"
	DefaultDailyCapTimezone      = "UTC"
	DefaultDeadLetterPath        = "logs/dead_letter.jsonl"
	DefaultEventLogRetentionDays = 90
	DefaultEventLogCleanupEvery  = 24 * time.Hour
	DefaultProgressCacheSize     = 1000
	DefaultProgressCacheTTL      = 30 * time.Second
	DefaultMaxBodyBytes          = 1 << 20
)

// Example values shipped in .env.example that must not reach production
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
