package app

import (
	"context"
	"fmt"

	"fittrack/internal/domain"
)

// Onboarding defaults for goals left unset.
const (
	DefaultDailyStepGoal    = 10000
	DefaultDailyCalorieGoal = 500
)

// ProfileInput is the onboarding / profile edit payload. The goal date can be
// given directly or as a "YYYY-MM" goal month; StartDate defaults to today and
// the daily goals to DefaultDailyStepGoal and DefaultDailyCalorieGoal.
type ProfileInput struct {
	Age              int          `json:"age"`
	Height           float64      `json:"height"`
	StartingWeight   float64      `json:"startingWeight"`
	TargetWeight     float64      `json:"targetWeight"`
	StartDate        *domain.Date `json:"startDate,omitempty"`
	GoalDate         *domain.Date `json:"goalDate,omitempty"`
	GoalMonth        string       `json:"goalMonth,omitempty"`
	DailyStepGoal    *int         `json:"dailyStepGoal,omitempty"`
	DailyCalorieGoal *int         `json:"dailyCalorieGoal,omitempty"`
}

// Profile resolves the input into a validated UserProfile.
func (in ProfileInput) Profile(today domain.Date) (domain.UserProfile, error) {
	p := domain.UserProfile{
		Age:              in.Age,
		Height:           in.Height,
		StartingWeight:   in.StartingWeight,
		TargetWeight:     in.TargetWeight,
		StartDate:        today,
		DailyStepGoal:    DefaultDailyStepGoal,
		DailyCalorieGoal: DefaultDailyCalorieGoal,
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	switch {
	case in.GoalDate != nil:
		p.GoalDate = *in.GoalDate
	case in.GoalMonth != "":
		d, err := domain.GoalDateForMonth(in.GoalMonth)
		if err != nil {
			return domain.UserProfile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		p.GoalDate = d
	default:
		return domain.UserProfile{}, fmt.Errorf("%w: goalDate or goalMonth is required", ErrInvalidInput)
	}
	if in.DailyStepGoal != nil {
		p.DailyStepGoal = *in.DailyStepGoal
	}
	if in.DailyCalorieGoal != nil {
		p.DailyCalorieGoal = *in.DailyCalorieGoal
	}
	if err := ValidateProfile(p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

// ValidateProfile checks the field ranges and that the goal date is not
// before the start date.
func ValidateProfile(p domain.UserProfile) error {
	switch {
	case p.Age <= 0:
		return fmt.Errorf("%w: age must be > 0", ErrInvalidInput)
	case p.Height <= 0:
		return fmt.Errorf("%w: height must be > 0", ErrInvalidInput)
	case p.StartingWeight <= 0:
		return fmt.Errorf("%w: startingWeight must be > 0", ErrInvalidInput)
	case p.TargetWeight <= 0:
		return fmt.Errorf("%w: targetWeight must be > 0", ErrInvalidInput)
	case p.DailyStepGoal < 0:
		return fmt.Errorf("%w: dailyStepGoal must be >= 0", ErrInvalidInput)
	case p.DailyCalorieGoal < 0:
		return fmt.Errorf("%w: dailyCalorieGoal must be >= 0", ErrInvalidInput)
	case p.StartDate.IsZero() || p.GoalDate.IsZero():
		return fmt.Errorf("%w: startDate and goalDate are required", ErrInvalidInput)
	case p.GoalDate.Before(p.StartDate):
		return fmt.Errorf("%w: goalDate must not be before startDate", ErrInvalidInput)
	}
	return nil
}

// ValidateEntryUpdate rejects empty updates and out-of-range values.
func ValidateEntryUpdate(u domain.EntryUpdate) error {
	switch {
	case u.Empty():
		return fmt.Errorf("%w: at least one of weight, steps or caloriesBurned is required", ErrInvalidInput)
	case u.Weight != nil && *u.Weight <= 0:
		return fmt.Errorf("%w: weight must be > 0", ErrInvalidInput)
	case u.Steps != nil && *u.Steps < 0:
		return fmt.Errorf("%w: steps must be >= 0", ErrInvalidInput)
	case u.CaloriesBurned != nil && *u.CaloriesBurned < 0:
		return fmt.Errorf("%w: caloriesBurned must be >= 0", ErrInvalidInput)
	}
	return nil
}

func validateEntry(e domain.DailyEntry) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", ErrInvalidInput)
	}
	if e.Weight == nil && e.Steps == nil && e.CaloriesBurned == nil {
		return nil
	}
	return ValidateEntryUpdate(domain.EntryUpdate{Weight: e.Weight, Steps: e.Steps, CaloriesBurned: e.CaloriesBurned})
}

// TrackerService encapsulates the profile and daily-log use cases.
type TrackerService struct {
	store *Store
}

// NewTrackerService creates a TrackerService over store.
func NewTrackerService(store *Store) *TrackerService {
	return &TrackerService{store: store}
}

// Profile returns the stored profile, or ErrProfileNotFound before onboarding.
func (s *TrackerService) Profile(ctx context.Context) (domain.UserProfile, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if data.Profile == nil {
		return domain.UserProfile{}, ErrProfileNotFound
	}
	return *data.Profile, nil
}

// UpdateProfile validates in and replaces the stored profile with it.
func (s *TrackerService) UpdateProfile(ctx context.Context, in ProfileInput) (domain.UserProfile, error) {
	p, err := in.Profile(s.store.Today())
	if err != nil {
		return domain.UserProfile{}, err
	}
	_, err = s.store.Update(ctx, func(d *domain.FitnessData) error {
		d.Profile = &p
		return nil
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

// ResetProfile removes the profile so onboarding runs again. Logged entries
// are kept.
func (s *TrackerService) ResetProfile(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(d *domain.FitnessData) error {
		d.Profile = nil
		return nil
	})
	return err
}

// Today is the calendar date entries for "today" are filed under.
func (s *TrackerService) Today() domain.Date { return s.store.Today() }

// TodayEntry returns today's entry, or nil when nothing was logged today.
func (s *TrackerService) TodayEntry(ctx context.Context) (*domain.DailyEntry, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := data.EntryFor(s.store.Today())
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// UpdateTodayEntry merges u into today's entry.
func (s *TrackerService) UpdateTodayEntry(ctx context.Context, u domain.EntryUpdate) (domain.DailyEntry, error) {
	return s.UpdateEntry(ctx, s.store.Today(), u)
}

// UpdateEntry merges u into the entry for date, creating it if needed, and
// stamps its timestamp.
func (s *TrackerService) UpdateEntry(ctx context.Context, date domain.Date, u domain.EntryUpdate) (domain.DailyEntry, error) {
	if date.IsZero() {
		return domain.DailyEntry{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := ValidateEntryUpdate(u); err != nil {
		return domain.DailyEntry{}, err
	}
	var out domain.DailyEntry
	_, err := s.store.Update(ctx, func(d *domain.FitnessData) error {
		existing, ok := d.EntryFor(date)
		if !ok {
			existing = domain.DailyEntry{Date: date}
		}
		out = u.Apply(existing, s.store.Now().UnixMilli())
		d.Upsert(out)
		return nil
	})
	if err != nil {
		return domain.DailyEntry{}, err
	}
	return out, nil
}

// Entries returns every logged entry, oldest first.
func (s *TrackerService) Entries(ctx context.Context) ([]domain.DailyEntry, error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SortEntriesAsc(data.Entries), nil
}

// LatestWeight returns the most recently logged weight. ok is false when no
// weight has been logged.
func (s *TrackerService) LatestWeight(ctx context.Context) (w float64, ok bool, err error) {
	data, err := s.store.Snapshot(ctx)
	if err != nil {
		return 0, false, err
	}
	w, ok = data.LatestWeight()
	return w, ok, nil
}

// ClearAll deletes the profile and every entry.
func (s *TrackerService) ClearAll(ctx context.Context) error {
	return s.store.Clear(ctx)
}
