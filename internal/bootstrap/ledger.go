package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/moniyo/financequest/internal/config"
	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/worker"
)

// Ledger is the daily cap ledger chosen at startup. Pruner is set for
// in-process ledgers only; Redis keys expire on their own. Close releases the
// Redis client when there is one.
type Ledger struct {
	dailycap.Ledger
	Pruner worker.Pruner
	Close  func() error
}

// NewLedger connects to Redis when REDIS_URL is set and falls back to an
// in-process ledger otherwise
func NewLedger(ctx context.Context, cfg *config.Config) (*Ledger, error) {
	if cfg.RedisURL == "" {
		mem := dailycap.NewMemoryLedger()
		slog.Info(LogMsgLedgerSelected, "ledger", "memory")
		return &Ledger{Ledger: mem, Pruner: mem, Close: func() error { return nil }}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedParseRedisURL, err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedPingRedis, err)
	}

	slog.Info(LogMsgLedgerSelected, "ledger", "redis", "addr", opts.Addr)
	return &Ledger{Ledger: dailycap.NewRedisLedger(rdb), Close: rdb.Close}, nil
}
