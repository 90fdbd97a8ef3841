// Package sqlite implements the fitness repository on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"fittrack/internal/domain"
)

var _ domain.FitnessRepository = (*DB)(nil)

const lastSavedKey = "last_saved"

// DB implements domain.FitnessRepository using SQLite.
type DB struct {
	db *sql.DB
}

// Open creates the parent directory of path if needed, opens the database
// and runs migrations.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" databases
	// shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// Ping checks the connection.
func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load reads the profile, all entries and the last save time.
func (s *DB) Load(ctx context.Context) (domain.FitnessData, error) {
	var data domain.FitnessData

	var (
		p                 domain.UserProfile
		startDay, goalDay string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT age, height, starting_weight, target_weight, start_date, goal_date, daily_step_goal, daily_calorie_goal FROM profile WHERE id = 1",
	).Scan(&p.Age, &p.Height, &p.StartingWeight, &p.TargetWeight, &startDay, &goalDay, &p.DailyStepGoal, &p.DailyCalorieGoal)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return data, fmt.Errorf("failed to get profile: %w", err)
	default:
		if p.StartDate, err = domain.ParseDate(startDay); err != nil {
			return data, fmt.Errorf("failed to get profile: %w", err)
		}
		if p.GoalDate, err = domain.ParseDate(goalDay); err != nil {
			return data, fmt.Errorf("failed to get profile: %w", err)
		}
		data.Profile = &p
	}

	rows, err := s.db.QueryContext(ctx, "SELECT day, weight, steps, calories_burned, updated_at FROM entries ORDER BY day")
	if err != nil {
		return data, fmt.Errorf("failed to get entries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var (
			day      string
			weight   sql.NullFloat64
			steps    sql.NullInt64
			calories sql.NullInt64
			e        domain.DailyEntry
		)
		if err := rows.Scan(&day, &weight, &steps, &calories, &e.Timestamp); err != nil {
			return data, fmt.Errorf("failed to scan entry: %w", err)
		}
		if e.Date, err = domain.ParseDate(day); err != nil {
			return data, fmt.Errorf("failed to scan entry: %w", err)
		}
		if weight.Valid {
			e.Weight = &weight.Float64
		}
		if steps.Valid {
			n := int(steps.Int64)
			e.Steps = &n
		}
		if calories.Valid {
			n := int(calories.Int64)
			e.CaloriesBurned = &n
		}
		data.Entries = append(data.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("failed to iterate entries: %w", err)
	}

	var saved int64
	err = s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", lastSavedKey).Scan(&saved)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return data, fmt.Errorf("failed to get last saved: %w", err)
	default:
		data.LastSaved = &saved
	}
	return data, nil
}

// Save replaces the stored state with data in one transaction.
func (s *DB) Save(ctx context.Context, data domain.FitnessData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if p := data.Profile; p != nil {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO profile (id, age, height, starting_weight, target_weight, start_date, goal_date, daily_step_goal, daily_calorie_goal) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)",
			p.Age, p.Height, p.StartingWeight, p.TargetWeight, p.StartDate.String(), p.GoalDate.String(), p.DailyStepGoal, p.DailyCalorieGoal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	for _, e := range data.Entries {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO entries (day, weight, steps, calories_burned, updated_at) VALUES (?, ?, ?, ?, ?)",
			e.Date.String(), nullFloat(e.Weight), nullInt(e.Steps), nullInt(e.CaloriesBurned), e.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.Date, err)
		}
	}

	if data.LastSaved != nil {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			lastSavedKey, *data.LastSaved,
		)
		if err != nil {
			return fmt.Errorf("failed to save last saved: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Clear deletes every row.
func (s *DB) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"profile", "entries", "meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
