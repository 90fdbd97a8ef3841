package fitness

import (
	"math"

	"fittrack/internal/domain"
)

// Status classifies the current pace against the pace the goal requires.
type Status string

const (
	StatusAhead   Status = "ahead"
	StatusOnTrack Status = "on-track"
	StatusBehind  Status = "behind"
)

// Tone is the presentation hint that goes with a Status.
type Tone string

const (
	ToneSuccess Tone = "success"
	TonePrimary Tone = "primary"
	ToneWarning Tone = "warning"
)

// ProgressStatus is a Status with its display label.
type ProgressStatus struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Tone   Tone   `json:"tone"`
}

// GettingStarted is reported instead of a classification while either pace
// is unknown.
var GettingStarted = ProgressStatus{Status: StatusOnTrack, Label: "Getting started", Tone: TonePrimary}

// paceTolerance is how far (kg/week) the actual pace may sit from the
// required pace and still count as on track.
const paceTolerance = 0.1

// maxProjectionDays bounds projections so that a near-zero pace does not
// overflow date arithmetic.
const maxProjectionDays = 100 * 365

// Goal is what the projector works towards.
type Goal struct {
	CurrentWeight float64
	TargetWeight  float64
	GoalDate      domain.Date
}

// WeightRemaining is how much is left to lose, never negative.
func WeightRemaining(current, target float64) float64 {
	return math.Max(0, current-target)
}

// WeeksRemaining counts started weeks from today until goal, or 0 when the
// goal date is today or has passed.
func WeeksRemaining(today, goal domain.Date) int {
	days := today.DaysUntil(goal)
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}

// RequiredWeeklyRate is the pace (kg/week, 2 decimals) needed to lose
// remaining within weeks. ok is false when the goal is already met or no
// weeks are left.
func RequiredWeeklyRate(remaining float64, weeks int) (rate float64, ok bool) {
	if remaining <= 0 || weeks <= 0 {
		return 0, false
	}
	return round2(remaining / float64(weeks)), true
}

// ProjectedGoalDate extrapolates when target is reached at weeklyRate. A goal
// already reached projects to today. ok is false for a non-positive pace.
func ProjectedGoalDate(current, target, weeklyRate float64, today domain.Date) (domain.Date, bool) {
	if weeklyRate <= 0 {
		return domain.Date{}, false
	}
	remaining := current - target
	if remaining <= 0 {
		return today, true
	}
	days := remaining / weeklyRate * 7
	if days > maxProjectionDays {
		return domain.Date{}, false
	}
	return today.AddDays(int(days)), true
}

// ClassifyPace compares the actual pace with the required one.
func ClassifyPace(weeklyRate, requiredRate float64) ProgressStatus {
	diff := weeklyRate - requiredRate
	switch {
	case diff > paceTolerance:
		return ProgressStatus{Status: StatusAhead, Label: "Ahead of schedule", Tone: ToneSuccess}
	case diff > -paceTolerance:
		return ProgressStatus{Status: StatusOnTrack, Label: "On track", Tone: TonePrimary}
	default:
		return ProgressStatus{Status: StatusBehind, Label: "Behind schedule", Tone: ToneWarning}
	}
}

// Projection is everything the projection card shows.
type Projection struct {
	WeightRemaining    float64        `json:"weightRemaining"`
	WeeksRemaining     int            `json:"weeksRemaining"`
	WeeklyRate         *float64       `json:"weeklyRate"`
	RequiredWeeklyRate *float64       `json:"requiredWeeklyRate"`
	ProjectedDate      *domain.Date   `json:"projectedDate"`
	Status             ProgressStatus `json:"status"`
	Insight            string         `json:"insight"`
}

// Project combines the goal with the observed pace (nil when unknown).
func Project(g Goal, weeklyRate *float64, today domain.Date) Projection {
	p := Projection{
		WeightRemaining: WeightRemaining(g.CurrentWeight, g.TargetWeight),
		WeeksRemaining:  WeeksRemaining(today, g.GoalDate),
		Status:          GettingStarted,
	}
	if weeklyRate != nil {
		r := *weeklyRate
		p.WeeklyRate = &r
	}
	if req, ok := RequiredWeeklyRate(p.WeightRemaining, p.WeeksRemaining); ok {
		p.RequiredWeeklyRate = &req
	}
	if p.WeeklyRate != nil {
		if d, ok := ProjectedGoalDate(g.CurrentWeight, g.TargetWeight, *p.WeeklyRate, today); ok {
			p.ProjectedDate = &d
		}
	}
	if p.WeeklyRate != nil && p.RequiredWeeklyRate != nil {
		p.Status = ClassifyPace(*p.WeeklyRate, *p.RequiredWeeklyRate)
	}
	p.Insight = Insight(InsightInput{
		CurrentWeight: g.CurrentWeight,
		TargetWeight:  g.TargetWeight,
		WeeklyRate:    p.WeeklyRate,
		RequiredRate:  p.RequiredWeeklyRate,
		ProjectedDate: p.ProjectedDate,
		GoalDate:      g.GoalDate,
	})
	return p
}
