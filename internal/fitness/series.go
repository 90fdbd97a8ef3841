package fitness

import (
	"math"

	"fittrack/internal/domain"
)

// DefaultWindow is the moving-average window used by the dashboard and chart.
const DefaultWindow = 7

func weightEntries(entries []domain.DailyEntry) []domain.DailyEntry {
	out := make([]domain.DailyEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasWeight() {
			out = append(out, e)
		}
	}
	return out
}

// MovingAverage averages the weights of the window most recent weight-bearing
// entries. It counts entries, not calendar days, so logging gaps are not
// back-filled. A window <= 0 means DefaultWindow. ok is false when no entry
// carries a weight.
func MovingAverage(entries []domain.DailyEntry, window int) (avg float64, ok bool) {
	if window <= 0 {
		window = DefaultWindow
	}
	weighted := domain.SortEntriesDesc(weightEntries(entries))
	if len(weighted) == 0 {
		return 0, false
	}
	if len(weighted) > window {
		weighted = weighted[:window]
	}
	var sum float64
	for _, e := range weighted {
		sum += *e.Weight
	}
	return sum / float64(len(weighted)), true
}

// WeeklyLossRate is the endpoint slope between the earliest and the latest
// weight, scaled to seven days. Positive means losing. ok is false with fewer
// than two weights or when they span less than a day.
func WeeklyLossRate(entries []domain.DailyEntry) (rate float64, ok bool) {
	weighted := domain.SortEntriesAsc(weightEntries(entries))
	if len(weighted) < 2 {
		return 0, false
	}
	first, last := weighted[0], weighted[len(weighted)-1]
	span := first.Date.DaysUntil(last.Date)
	if span < 1 {
		return 0, false
	}
	return (*first.Weight - *last.Weight) / float64(span) * 7, true
}

// Streak counts consecutive logged days (weight or steps) ending today. When
// today has no entry yet, an entry for yesterday may open the streak, so it
// survives until the current day is over.
func Streak(entries []domain.DailyEntry, today domain.Date) int {
	logged := make([]domain.DailyEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasActivity() {
			logged = append(logged, e)
		}
	}

	streak := 0
	cursor := today
	for _, e := range domain.SortEntriesDesc(logged) {
		switch gap := e.Date.DaysUntil(cursor); {
		case gap == 0:
			streak++
			cursor = cursor.AddDays(-1)
		case gap == 1 && streak == 0:
			streak++
			cursor = e.Date.AddDays(-1)
		default:
			return streak
		}
	}
	return streak
}

// TrendPoint is one weight reading with its trailing average, for charting.
type TrendPoint struct {
	Date    domain.Date `json:"date"`
	Weight  float64     `json:"weight"`
	Average float64     `json:"average"`
}

// Trend returns every weight-bearing entry oldest first, each with the mean of
// itself and up to DefaultWindow-1 preceding weights, rounded to 2 decimals.
func Trend(entries []domain.DailyEntry) []TrendPoint {
	return TrendIn(entries, func(kg float64) float64 { return kg })
}

// TrendIn is Trend with every weight passed through conv before the average
// is rounded. conv must be linear, like a unit conversion.
func TrendIn(entries []domain.DailyEntry, conv func(kg float64) float64) []TrendPoint {
	weighted := domain.SortEntriesAsc(weightEntries(entries))
	points := make([]TrendPoint, 0, len(weighted))
	for i, e := range weighted {
		window := weighted[max(0, i-DefaultWindow+1) : i+1]
		var sum float64
		for _, w := range window {
			sum += *w.Weight
		}
		points = append(points, TrendPoint{
			Date:    e.Date,
			Weight:  conv(*e.Weight),
			Average: round2(conv(sum / float64(len(window)))),
		})
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
