package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres through the pgx stdlib driver and waits for it to
// accept connections, retrying the ping with exponential backoff.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 15 * time.Second

	ping := func() error {
		return db.PingContext(ctx)
	}
	if err := backoff.Retry(ping, backoff.WithContext(b, ctx)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
