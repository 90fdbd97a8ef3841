package app_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"fittrack/internal/app"
	"fittrack/internal/domain"
	"fittrack/internal/fitness"
)

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		Age:              35,
		Height:           175,
		StartingWeight:   80,
		TargetWeight:     75,
		StartDate:        domain.NewDate(2025, time.January, 6),
		GoalDate:         domain.NewDate(2025, time.April, 21),
		DailyStepGoal:    10000,
		DailyCalorieGoal: 500,
	}
}

func TestDashboard_NoProfile(t *testing.T) {
	svc := app.NewDashboardService(newStore(&mockRepo{}))
	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, app.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDashboard_NoEntries(t *testing.T) {
	svc := app.NewDashboardService(newStore(&mockRepo{data: domain.FitnessData{Profile: testProfile()}}))

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.CurrentWeight != 80 {
		t.Errorf("expected current weight to fall back to starting weight, got %v", d.CurrentWeight)
	}
	if d.MovingAverage != nil {
		t.Errorf("expected no moving average, got %v", *d.MovingAverage)
	}
	if d.Projection.Status != fitness.GettingStarted {
		t.Errorf("expected getting started, got %+v", d.Projection.Status)
	}
	if !strings.HasPrefix(d.Projection.Insight, "Start logging") {
		t.Errorf("unexpected insight %q", d.Projection.Insight)
	}
	if d.Streak != 0 || d.TodayEntry != nil {
		t.Errorf("expected empty streak and no entry, got %d %v", d.Streak, d.TodayEntry)
	}
}

func TestDashboard_WithEntries(t *testing.T) {
	today := domain.NewDate(2025, time.February, 10)
	repo := &mockRepo{data: domain.FitnessData{
		Profile: testProfile(),
		Entries: []domain.DailyEntry{
			{Date: today.AddDays(-7), Weight: ptr(79.0)},
			{Date: today.AddDays(-1), Weight: ptr(78.6), Steps: ptr(8000)},
			{Date: today, Weight: ptr(78.5), Steps: ptr(5000), CaloriesBurned: ptr(250)},
		},
	}}
	svc := app.NewDashboardService(newStore(repo))

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.CurrentWeight != 78.5 {
		t.Errorf("expected current weight 78.5, got %v", d.CurrentWeight)
	}
	if math.Abs(d.WeightLost-1.5) > 1e-9 {
		t.Errorf("expected 1.5 kg lost, got %v", d.WeightLost)
	}
	if math.Abs(d.ProgressPercent-30) > 1e-9 {
		t.Errorf("expected 30%% progress, got %v", d.ProgressPercent)
	}
	if d.Streak != 2 {
		t.Errorf("expected streak 2, got %d", d.Streak)
	}
	if d.Rings.Steps.Progress != 0.5 || d.Rings.Calories.Progress != 0.5 {
		t.Errorf("unexpected rings %+v", d.Rings)
	}
	if d.Projection.WeeklyRate == nil || math.Abs(*d.Projection.WeeklyRate-0.5) > 1e-9 {
		t.Errorf("expected weekly rate 0.5, got %v", d.Projection.WeeklyRate)
	}
	if d.BMICategory.Class != fitness.BMIOverweight && d.BMICategory.Class != fitness.BMINormal {
		t.Errorf("unexpected bmi category %+v", d.BMICategory)
	}
}

func TestBuildDashboard_InvalidHeight(t *testing.T) {
	p := *testProfile()
	p.Height = 0
	_, err := app.BuildDashboard(p, nil, domain.NewDate(2025, time.February, 10))
	if !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDashboard_LoadError(t *testing.T) {
	repo := &mockRepo{loadFn: func(context.Context) (domain.FitnessData, error) {
		return domain.FitnessData{}, errors.New("db down")
	}}
	if _, err := app.NewDashboardService(newStore(repo)).Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
