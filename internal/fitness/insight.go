package fitness

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"fittrack/internal/domain"
)

// Roughly 7000 extra steps per week buy 0.1 kg/week of loss.
const (
	stepsPerRateUnit = 7000
	rateUnit         = 0.1
)

// largeShortfall (kg/week) is where small step nudges stop being useful advice.
const largeShortfall = 0.5

// InsightInput is what the insight text is derived from. Nil pointers mean
// the value is unavailable.
type InsightInput struct {
	CurrentWeight float64
	TargetWeight  float64
	WeeklyRate    *float64
	RequiredRate  *float64
	ProjectedDate *domain.Date
	GoalDate      domain.Date
}

// Insight picks the first message that applies: goal reached, no usable pace,
// ahead of schedule, behind schedule, then a generic nudge.
func Insight(in InsightInput) string {
	if in.CurrentWeight <= in.TargetWeight {
		return "Congratulations! You've reached your goal weight. Time to maintain!"
	}
	if in.WeeklyRate == nil || *in.WeeklyRate <= 0 {
		return "Start logging your weight daily to see your projected progress."
	}

	if in.ProjectedDate != nil && !in.ProjectedDate.After(in.GoalDate) {
		daysAhead := in.ProjectedDate.DaysUntil(in.GoalDate)
		if daysAhead > 7 {
			return fmt.Sprintf("Great momentum! At this pace, you'll reach your goal %d days early.", daysAhead)
		}
		return "You're on track! Keep up the consistent effort."
	}

	if in.RequiredRate != nil {
		shortfall := *in.RequiredRate - *in.WeeklyRate
		switch {
		case shortfall > largeShortfall:
			return fmt.Sprintf("You're %.1f kg/week behind target. Consider adding more activity or adjusting your calorie intake.", shortfall)
		case shortfall > 0:
			steps := int64(math.Round(shortfall / rateUnit * stepsPerRateUnit))
			return fmt.Sprintf("You're slightly behind, adding ~%s steps per week could get you back on track.", humanize.Comma(steps))
		}
	}

	return "Keep logging daily to track your progress accurately."
}
