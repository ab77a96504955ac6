package database

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/moniyo/financequest/internal/testing/leaktest"
)

// One container serves every integration test in the package. It is started
// on first use and torn down in TestMain.
var shared struct {
	once      sync.Once
	connStr   string
	err       error
	container *postgres.PostgresContainer
}

func TestMain(m *testing.M) {
	code := m.Run()
	if shared.container != nil {
		_ = shared.container.Terminate(context.Background())
	}
	os.Exit(code)
}

func startPostgres() {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			shared.err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	c, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("financequest_test"),
		postgres.WithUsername("fq"),
		postgres.WithPassword("fq"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		shared.err = err
		return
	}
	shared.container = c
	shared.connStr, shared.err = c.ConnectionString(ctx, "sslmode=disable")
}

// newTestPool returns a pool against the shared container, skipping when
// Docker is not available
func newTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test, skipped with -short")
	}
	shared.once.Do(startPostgres)
	if shared.err != nil {
		t.Skipf("postgres container unavailable: %v", shared.err)
	}

	pool, err := NewPool(shared.connStr, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestApplyPoolLimits(t *testing.T) {
	base, err := pgxpool.ParseConfig("postgres://fq:fq@localhost:5432/fq")
	require.NoError(t, err)
	pgxDefault := base.MaxConns

	tests := []struct {
		name     string
		maxConns int
		wantMax  int32
		wantMin  int32
	}{
		{"keeps pgx default", 0, pgxDefault, min(DefaultMinConnections, pgxDefault)},
		{"single connection", 1, 1, 1},
		{"explicit", 25, 25, DefaultMinConnections},
		{"clamped to int32", math.MaxInt32 + 10, math.MaxInt32, DefaultMinConnections},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base.Copy()
			applyPoolLimits(cfg, tt.maxConns, 2*time.Minute, 30*time.Minute)

			assert.Equal(t, tt.wantMax, cfg.MaxConns)
			assert.Equal(t, tt.wantMin, cfg.MinConns)
			assert.Equal(t, 2*time.Minute, cfg.MaxConnIdleTime)
			assert.Equal(t, 30*time.Minute, cfg.MaxConnLifetime)
		})
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool("postgres://%%%", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestPool_ReturnsConnections(t *testing.T) {
	pool := newTestPool(t, 4)
	ctx := context.Background()

	queries := map[string]struct {
		sql     string
		wantErr bool
	}{
		"successful query": {sql: "SELECT 1"},
		"failing query":    {sql: "SELECT * FROM no_such_table", wantErr: true},
	}
	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 8; i++ {
				conn, err := pool.Acquire(ctx)
				require.NoError(t, err)

				var n int
				err = conn.QueryRow(ctx, q.sql).Scan(&n)
				conn.Release()
				if q.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			}
			assert.Zero(t, pool.Stat().AcquiredConns())
		})
	}
}

func TestPool_WaitsAtMaxConns(t *testing.T) {
	const maxConns = 2
	pool := newTestPool(t, maxConns)
	ctx := context.Background()

	held := make([]*pgxpool.Conn, 0, maxConns)
	for range maxConns {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}
	assert.Equal(t, int32(maxConns), pool.Stat().AcquiredConns())

	shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	_, err := pool.Acquire(shortCtx)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// A release wakes a waiting acquirer
	waiting := make(chan error, 1)
	go func() {
		conn, err := pool.Acquire(ctx)
		if err == nil {
			conn.Release()
		}
		waiting <- err
	}()
	held[0].Release()

	select {
	case err := <-waiting:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("acquire did not proceed after a release")
	}
	held[1].Release()
}

func TestPool_ConcurrentQueries(t *testing.T) {
	pool := newTestPool(t, 5)
	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var got int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", i).Scan(&got); err != nil {
				t.Errorf("query %d: %v", i, err)
				return
			}
			if got != i {
				t.Errorf("query %d returned %d", i, got)
			}
		}(i)
	}
	wg.Wait()

	assert.Zero(t, pool.Stat().AcquiredConns())
	// pgxpool keeps a health check goroutine running
	checker.Check(2)
}

func TestMigrate_CreatesSchema(t *testing.T) {
	pool := newTestPool(t, 4)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run must be a no-op")

	columns := func(table string) []string {
		rows, err := pool.Query(ctx,
			`SELECT column_name FROM information_schema.columns
			 WHERE table_name = $1 ORDER BY ordinal_position`, table)
		require.NoError(t, err)
		defer rows.Close()

		var names []string
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			names = append(names, name)
		}
		require.NoError(t, rows.Err())
		return names
	}

	assert.NotEmpty(t, columns("user_progress"))
	assert.NotEmpty(t, columns("savings_events"))
	assert.Equal(t,
		[]string{"id", "user_id", "event_type", "source", "payload", "occurred_at"},
		columns("user_activity"))
}

func TestRunMigrationCommand(t *testing.T) {
	pool := newTestPool(t, 4)
	ctx := context.Background()

	require.NoError(t, RunMigrationCommand(ctx, pool, "up"))
	// redo rolls back the newest migration and applies it again
	require.NoError(t, RunMigrationCommand(ctx, pool, "redo"))
	require.NoError(t, RunMigrationCommand(ctx, pool, "status"))
	require.NoError(t, RunMigrationCommand(ctx, pool, "version"))

	var exists bool
	require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass('user_activity') IS NOT NULL").Scan(&exists))
	assert.True(t, exists)

	err := RunMigrationCommand(ctx, pool, "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goose sideways")
}
