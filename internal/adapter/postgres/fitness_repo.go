package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fittrack/internal/domain"
)

var _ domain.FitnessRepository = (*DB)(nil)

const lastSavedKey = "last_saved"

// Load reads the profile, all entries and the last save time.
func (d *DB) Load(ctx context.Context) (domain.FitnessData, error) {
	var data domain.FitnessData

	var (
		p                 domain.UserProfile
		startDay, goalDay string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT age, height, starting_weight, target_weight, start_date, goal_date, daily_step_goal, daily_calorie_goal FROM profile WHERE id=1;",
	).Scan(&p.Age, &p.Height, &p.StartingWeight, &p.TargetWeight, &startDay, &goalDay, &p.DailyStepGoal, &p.DailyCalorieGoal)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return data, fmt.Errorf("load profile: %w", err)
	default:
		if p.StartDate, err = domain.ParseDate(startDay); err != nil {
			return data, fmt.Errorf("load profile: %w", err)
		}
		if p.GoalDate, err = domain.ParseDate(goalDay); err != nil {
			return data, fmt.Errorf("load profile: %w", err)
		}
		data.Profile = &p
	}

	rows, err := d.sql.QueryContext(ctx, "SELECT day, weight, steps, calories_burned, updated_at FROM entries ORDER BY day;")
	if err != nil {
		return data, fmt.Errorf("load entries: %w", err)
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
			return data, fmt.Errorf("scan entry: %w", err)
		}
		if e.Date, err = domain.ParseDate(day); err != nil {
			return data, fmt.Errorf("scan entry: %w", err)
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
		return data, fmt.Errorf("load entries: %w", err)
	}

	var saved int64
	err = d.sql.QueryRowContext(ctx, "SELECT value FROM meta WHERE key=$1;", lastSavedKey).Scan(&saved)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return data, fmt.Errorf("load last saved: %w", err)
	default:
		data.LastSaved = &saved
	}
	return data, nil
}

// Save replaces the stored state with data in one transaction.
func (d *DB) Save(ctx context.Context, data domain.FitnessData) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profile;"); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if p := data.Profile; p != nil {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO profile(id, age, height, starting_weight, target_weight, start_date, goal_date, daily_step_goal, daily_calorie_goal) VALUES(1, $1, $2, $3, $4, $5, $6, $7, $8);",
			p.Age, p.Height, p.StartingWeight, p.TargetWeight, p.StartDate.String(), p.GoalDate.String(), p.DailyStepGoal, p.DailyCalorieGoal,
		)
		if err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries;"); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	for _, e := range data.Entries {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO entries(day, weight, steps, calories_burned, updated_at) VALUES($1, $2, $3, $4, $5);",
			e.Date.String(), nullFloat(e.Weight), nullInt(e.Steps), nullInt(e.CaloriesBurned), e.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("save entry %s: %w", e.Date, err)
		}
	}

	if data.LastSaved != nil {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO meta(key, value) VALUES($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;",
			lastSavedKey, *data.LastSaved,
		)
		if err != nil {
			return fmt.Errorf("save last saved: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Clear deletes every row.
func (d *DB) Clear(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "TRUNCATE profile, entries, meta;")
	if err != nil {
		return fmt.Errorf("clear: %w", err)
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
