package app

import (
	"context"
	"fmt"
	"math"

	"fittrack/internal/domain"
	"fittrack/internal/fitness"
)

// Dashboard is every derived value the main screen shows. It is recomputed
// from the stored data on each call and never persisted.
type Dashboard struct {
	Profile         domain.UserProfile    `json:"profile"`
	Today           domain.Date           `json:"today"`
	TodayEntry      *domain.DailyEntry    `json:"todayEntry"`
	CurrentWeight   float64               `json:"currentWeight"`
	BMI             float64               `json:"bmi"`
	BMICategory     fitness.BMICategory   `json:"bmiCategory"`
	BodyFat         float64               `json:"bodyFat"`
	MovingAverage   *float64              `json:"movingAverage"`
	WeightLost      float64               `json:"weightLost"`
	ProgressPercent float64               `json:"progressPercent"`
	Streak          int                   `json:"streak"`
	Rings           fitness.ActivityRings `json:"rings"`
	Projection      fitness.Projection    `json:"projection"`
}

// DashboardService derives the dashboard from the store.
type DashboardService struct {
	store *Store
}

// NewDashboardService creates a DashboardService over store.
func NewDashboardService(store *Store) *DashboardService {
	return &DashboardService{store: store}
}

// Dashboard computes the dashboard for today. It fails with
// ErrProfileNotFound before onboarding.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if data.Profile == nil {
		return Dashboard{}, ErrProfileNotFound
	}
	return BuildDashboard(*data.Profile, data.Entries, s.store.Today())
}

// BuildDashboard is the pure part of Dashboard.
func BuildDashboard(p domain.UserProfile, entries []domain.DailyEntry, today domain.Date) (Dashboard, error) {
	current := p.StartingWeight
	if w, ok := (domain.FitnessData{Entries: entries}).LatestWeight(); ok {
		current = w
	}

	bmi := fitness.CalculateBMI(current, p.Height)
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return Dashboard{}, fmt.Errorf("%w: cannot compute BMI from height %v", ErrInvalidInput, p.Height)
	}

	d := Dashboard{
		Profile:         p,
		Today:           today,
		CurrentWeight:   current,
		BMI:             bmi,
		BMICategory:     fitness.CategorizeBMI(bmi),
		BodyFat:         fitness.EstimateBodyFat(bmi, p.Age, true),
		WeightLost:      fitness.WeightLost(p.StartingWeight, current),
		ProgressPercent: fitness.ProgressPercent(p.StartingWeight, current, p.TargetWeight),
		Streak:          fitness.Streak(entries, today),
	}
	if avg, ok := fitness.MovingAverage(entries, fitness.DefaultWindow); ok {
		d.MovingAverage = &avg
	}

	var todayEntry domain.DailyEntry
	if e, ok := (domain.FitnessData{Entries: entries}).EntryFor(today); ok {
		todayEntry = e
		d.TodayEntry = &e
	}
	d.Rings = fitness.Rings(todayEntry, p, d.Streak)

	var rate *float64
	if r, ok := fitness.WeeklyLossRate(entries); ok {
		rate = &r
	}
	d.Projection = fitness.Project(fitness.Goal{
		CurrentWeight: current,
		TargetWeight:  p.TargetWeight,
		GoalDate:      p.GoalDate,
	}, rate, today)
	return d, nil
}
