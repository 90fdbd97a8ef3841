// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"slices"
)

// UserProfile holds the onboarding answers and goals. Weights are in kg and
// height in cm.
type UserProfile struct {
	Age              int     `json:"age"`
	Height           float64 `json:"height"`
	StartingWeight   float64 `json:"startingWeight"`
	TargetWeight     float64 `json:"targetWeight"`
	StartDate        Date    `json:"startDate"`
	GoalDate         Date    `json:"goalDate"`
	DailyStepGoal    int     `json:"dailyStepGoal"`
	DailyCalorieGoal int     `json:"dailyCalorieGoal"`
}

// FitnessData is the complete persisted state: the profile (nil until
// onboarding), the entry log, and the time of the last write in Unix
// milliseconds.
type FitnessData struct {
	Profile   *UserProfile `json:"profile"`
	Entries   []DailyEntry `json:"entries"`
	LastSaved *int64       `json:"lastSaved"`
}

// Clone returns a deep copy so callers can mutate it without touching a
// snapshot held elsewhere.
func (f FitnessData) Clone() FitnessData {
	out := FitnessData{Entries: make([]DailyEntry, 0, len(f.Entries))}
	if f.Profile != nil {
		p := *f.Profile
		out.Profile = &p
	}
	if f.LastSaved != nil {
		ls := *f.LastSaved
		out.LastSaved = &ls
	}
	for _, e := range f.Entries {
		out.Entries = append(out.Entries, e.Clone())
	}
	return out
}

// EntryFor returns the entry logged on d, if any.
func (f FitnessData) EntryFor(d Date) (DailyEntry, bool) {
	i := slices.IndexFunc(f.Entries, func(e DailyEntry) bool { return e.Date.Equal(d) })
	if i < 0 {
		return DailyEntry{}, false
	}
	return f.Entries[i], true
}

// Upsert replaces the entry with the same date as e, or appends e.
func (f *FitnessData) Upsert(e DailyEntry) {
	i := slices.IndexFunc(f.Entries, func(x DailyEntry) bool { return x.Date.Equal(e.Date) })
	if i < 0 {
		f.Entries = append(f.Entries, e)
		return
	}
	f.Entries[i] = e
}

// LatestWeight returns the weight of the most recent weight-bearing entry.
func (f FitnessData) LatestWeight() (float64, bool) {
	for _, e := range SortEntriesDesc(f.Entries) {
		if e.Weight != nil {
			return *e.Weight, true
		}
	}
	return 0, false
}

// FitnessRepository is the persistence port for the whole tracker state.
// Load returns an empty FitnessData (not an error) when nothing is stored.
type FitnessRepository interface {
	Load(ctx context.Context) (FitnessData, error)
	Save(ctx context.Context, data FitnessData) error
	Clear(ctx context.Context) error
}
