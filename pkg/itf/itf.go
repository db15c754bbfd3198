// Package itf holds the shared postgres fixtures for integration tests.
package itf

import (
	"context"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/rangepicker/pkg/composables"
	"github.com/iota-uz/rangepicker/pkg/configuration"
)

// IsCI reports whether tests run in CI, where an unreachable database is a
// failure instead of a skip.
func IsCI() bool {
	return strings.TrimSpace(os.Getenv("CI")) != "" ||
		strings.EqualFold(strings.TrimSpace(os.Getenv("GITHUB_ACTIONS")), "true")
}

// CanDial probes host:port with a short timeout.
func CanDial(host, port string) bool {
	if strings.TrimSpace(host) == "" {
		host = "localhost"
	}
	if strings.TrimSpace(port) == "" {
		port = "5432"
	}
	dialer := &net.Dialer{Timeout: 250 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func NewPool(ctx context.Context, dbOpts string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dbOpts)
	if err != nil {
		return nil, err
	}
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Minute * 5
	config.MaxConnIdleTime = time.Second * 30

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func unreachable(tb testing.TB, reason string) {
	tb.Helper()
	if IsCI() {
		tb.Fatalf("postgres is not reachable (DB_HOST/DB_PORT): %s", reason)
	}
	tb.Skipf("postgres is not reachable; skipping integration test: %s", reason)
}

// TxContext connects using the DB_* environment and returns a context
// carrying a transaction that is rolled back when tb finishes. Without a
// reachable database the test is skipped, or failed in CI.
func TxContext(tb testing.TB) context.Context {
	tb.Helper()

	cfg, err := configuration.Parse()
	if err != nil {
		tb.Fatalf("parse configuration: %v", err)
	}
	if !CanDial(cfg.Database.Host, cfg.Database.Port) {
		unreachable(tb, "dial failed")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, cfg.Database.Opts)
	if err != nil {
		unreachable(tb, err.Error())
	}
	tb.Cleanup(pool.Close)

	tx, err := pool.Begin(ctx)
	if err != nil {
		tb.Fatalf("begin: %v", err)
	}
	tb.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return composables.WithTx(composables.WithPool(ctx, pool), tx)
}
