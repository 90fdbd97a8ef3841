package domain

import (
	"cmp"
	"slices"
)

// DailyEntry is one calendar day's recorded measurements. Date is unique
// within a FitnessData entry collection.
type DailyEntry struct {
	Date           Date     `json:"date"`
	Weight         *float64 `json:"weight,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	CaloriesBurned *int     `json:"caloriesBurned,omitempty"`
	Timestamp      int64    `json:"timestamp"`
}

// HasWeight reports whether the entry carries a weight measurement.
func (e DailyEntry) HasWeight() bool { return e.Weight != nil }

// HasActivity reports whether the entry counts towards a logging streak.
func (e DailyEntry) HasActivity() bool { return e.Weight != nil || e.Steps != nil }

// Clone returns a copy of e that shares no pointers with it.
func (e DailyEntry) Clone() DailyEntry {
	return EntryUpdate{Weight: e.Weight, Steps: e.Steps, CaloriesBurned: e.CaloriesBurned}.Apply(DailyEntry{Date: e.Date}, e.Timestamp)
}

// EntryUpdate is a partial write to a day's entry. Nil fields are left as they
// are on the stored entry.
type EntryUpdate struct {
	Weight         *float64 `json:"weight,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	CaloriesBurned *int     `json:"caloriesBurned,omitempty"`
}

// Empty reports whether the update carries no fields.
func (u EntryUpdate) Empty() bool {
	return u.Weight == nil && u.Steps == nil && u.CaloriesBurned == nil
}

// Apply merges u into e and stamps the write time.
func (u EntryUpdate) Apply(e DailyEntry, timestamp int64) DailyEntry {
	if u.Weight != nil {
		w := *u.Weight
		e.Weight = &w
	}
	if u.Steps != nil {
		s := *u.Steps
		e.Steps = &s
	}
	if u.CaloriesBurned != nil {
		c := *u.CaloriesBurned
		e.CaloriesBurned = &c
	}
	e.Timestamp = timestamp
	return e
}

// SortEntriesAsc returns a copy of entries ordered by date, oldest first.
func SortEntriesAsc(entries []DailyEntry) []DailyEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b DailyEntry) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}

// SortEntriesDesc returns a copy of entries ordered by date, newest first.
func SortEntriesDesc(entries []DailyEntry) []DailyEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b DailyEntry) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})
	return out
}
