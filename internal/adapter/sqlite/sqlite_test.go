package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fittrack/internal/domain"
)

func TestSQLiteRepository(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "fittrack.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()

	t.Run("empty database loads empty data", func(t *testing.T) {
		data, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if data.Profile != nil || len(data.Entries) != 0 || data.LastSaved != nil {
			t.Errorf("Expected empty data, got %+v", data)
		}
	})

	w, cal, saved := 88.8, 410, int64(1738000000000)
	in := domain.FitnessData{
		Profile: &domain.UserProfile{
			Age: 29, Height: 165.5, StartingWeight: 70, TargetWeight: 63,
			StartDate: domain.NewDate(2025, time.January, 6), GoalDate: domain.NewDate(2025, time.March, 31),
			DailyStepGoal: 8000, DailyCalorieGoal: 400,
		},
		Entries: []domain.DailyEntry{
			{Date: domain.NewDate(2025, time.January, 8), CaloriesBurned: &cal, Timestamp: 20},
			{Date: domain.NewDate(2025, time.January, 7), Weight: &w, Timestamp: 10},
		},
		LastSaved: &saved,
	}

	t.Run("save and load round trip", func(t *testing.T) {
		if err := store.Save(ctx, in); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got.Profile == nil || *got.Profile != *in.Profile {
			t.Errorf("Expected profile %+v, got %+v", in.Profile, got.Profile)
		}
		if len(got.Entries) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(got.Entries))
		}
		first := got.Entries[0]
		if first.Date.String() != "2025-01-07" || first.Weight == nil || *first.Weight != w || first.Steps != nil {
			t.Errorf("Unexpected first entry %+v", first)
		}
		second := got.Entries[1]
		if second.CaloriesBurned == nil || *second.CaloriesBurned != cal || second.Timestamp != 20 {
			t.Errorf("Unexpected second entry %+v", second)
		}
		if got.LastSaved == nil || *got.LastSaved != saved {
			t.Errorf("Expected lastSaved %d, got %v", saved, got.LastSaved)
		}
	})

	t.Run("save replaces previous state", func(t *testing.T) {
		next := in.Clone()
		next.Profile = nil
		next.Entries = next.Entries[:1]
		if err := store.Save(ctx, next); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, _ := store.Load(ctx)
		if got.Profile != nil || len(got.Entries) != 1 {
			t.Errorf("Expected replaced state, got %+v", got)
		}
	})

	t.Run("data survives reopen", func(t *testing.T) {
		store.Close()
		reopened, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		store = reopened
		got, _ := store.Load(ctx)
		if len(got.Entries) != 1 {
			t.Errorf("Expected 1 entry after reopen, got %d", len(got.Entries))
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := store.Clear(ctx); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		got, _ := store.Load(ctx)
		if len(got.Entries) != 0 || got.LastSaved != nil {
			t.Errorf("Expected empty data, got %+v", got)
		}
	})
}
