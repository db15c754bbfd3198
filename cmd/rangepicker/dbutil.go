package main

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/rangepicker/pkg/configuration"
)

func connectDB(ctx context.Context, cfg *configuration.Configuration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, cfg.Database.Opts)
	if err != nil {
		return nil, withCode(exitDB, errors.Wrap(err, "db connect failed"))
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, withCode(exitDB, errors.Wrap(err, "db ping failed"))
	}
	return pool, nil
}
