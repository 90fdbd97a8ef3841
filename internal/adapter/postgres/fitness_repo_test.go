package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
)

// openTestDB connects to TEST_DATABASE_URL and empties the tables. Tests are
// skipped when it is not set.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := Open(url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Clear(context.Background())
		_ = db.Close()
	})
	require.NoError(t, db.Clear(context.Background()))
	return db
}

func TestFitnessRepo_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	empty, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.Profile)
	assert.Empty(t, empty.Entries)
	assert.Nil(t, empty.LastSaved)

	w, steps, saved := 82.3, 9000, int64(1736150400000)
	in := domain.FitnessData{
		Profile: &domain.UserProfile{
			Age: 41, Height: 178, StartingWeight: 90, TargetWeight: 80,
			StartDate: domain.NewDate(2025, time.January, 6), GoalDate: domain.NewDate(2025, time.April, 30),
			DailyStepGoal: 10000, DailyCalorieGoal: 500,
		},
		Entries: []domain.DailyEntry{
			{Date: domain.NewDate(2025, time.January, 6), Weight: &w, Timestamp: 1},
			{Date: domain.NewDate(2025, time.January, 7), Steps: &steps, Timestamp: 2},
		},
		LastSaved: &saved,
	}
	require.NoError(t, db.Save(ctx, in))

	got, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	// Saving again replaces rather than appends
	in.Entries = in.Entries[:1]
	in.Profile = nil
	require.NoError(t, db.Save(ctx, in))
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got.Profile)
	assert.Len(t, got.Entries, 1)

	require.NoError(t, db.Clear(ctx))
	got, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
	assert.Nil(t, got.LastSaved)
}
