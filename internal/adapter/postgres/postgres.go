// Package postgres implements the fitness repository on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping checks the connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			age INTEGER NOT NULL CHECK (age > 0),
			height DOUBLE PRECISION NOT NULL CHECK (height > 0),
			starting_weight DOUBLE PRECISION NOT NULL CHECK (starting_weight > 0),
			target_weight DOUBLE PRECISION NOT NULL CHECK (target_weight > 0),
			start_date TEXT NOT NULL,
			goal_date TEXT NOT NULL,
			daily_step_goal INTEGER NOT NULL CHECK (daily_step_goal >= 0),
			daily_calorie_goal INTEGER NOT NULL CHECK (daily_calorie_goal >= 0)
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			day TEXT PRIMARY KEY,
			weight DOUBLE PRECISION,
			steps INTEGER CHECK (steps >= 0),
			calories_burned INTEGER CHECK (calories_burned >= 0),
			updated_at BIGINT NOT NULL
		);`,
		"CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value BIGINT NOT NULL);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
