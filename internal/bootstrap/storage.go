package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/database"
	"github.com/moniyo/financequest/internal/database/firestore"
	"github.com/moniyo/financequest/internal/database/memory"
	"github.com/moniyo/financequest/internal/database/postgres"
	"github.com/moniyo/financequest/internal/repository"
)

// OpenStore opens the storage backend selected by STORAGE_BACKEND. PostgreSQL
// schemas are migrated before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.StorageBackend {
	case config.StorageMemory:
		store = memory.NewStore()
	case config.StoragePostgres:
		store, err = openPostgres(ctx, cfg)
	case config.StorageFirestore:
		store, err = firestore.Open(ctx, cfg.FirestoreProjectID, cfg.FirestoreDatabase)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageBackend, cfg.StorageBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
	}

	slog.Info(LogMsgStorageOpened, "backend", cfg.StorageBackend)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info(LogMsgMigrationsApplied)
	return postgres.NewStore(pool), nil
}
