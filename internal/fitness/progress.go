package fitness

import (
	"math"

	"fittrack/internal/domain"
)

// StreakGoal is the streak length that fills the streak ring.
const StreakGoal = 7

// WeightLost is positive when current is below the starting weight.
func WeightLost(start, current float64) float64 {
	return start - current
}

// ProgressPercent is the share of the planned loss achieved, in [0, 100].
// With nothing planned to lose it is 100 once current is at or below target.
func ProgressPercent(start, current, target float64) float64 {
	planned := start - target
	if planned <= 0 {
		if current <= target {
			return 100
		}
		return 0
	}
	pct := WeightLost(start, current) / planned * 100
	return math.Max(0, math.Min(100, pct))
}

// RingProgress is value/goal capped at 1. A non-positive goal or value fills
// nothing.
func RingProgress(value, goal float64) float64 {
	if goal <= 0 || value <= 0 {
		return 0
	}
	return math.Min(value/goal, 1)
}

// Ring is one activity ring.
type Ring struct {
	Value    float64 `json:"value"`
	Goal     float64 `json:"goal"`
	Progress float64 `json:"progress"`
}

// ActivityRings are today's steps, calories and the logging streak.
type ActivityRings struct {
	Steps    Ring `json:"steps"`
	Calories Ring `json:"calories"`
	Streak   Ring `json:"streak"`
}

// Rings builds the activity rings from today's entry (zero value if nothing
// was logged) and the profile goals.
func Rings(today domain.DailyEntry, p domain.UserProfile, streak int) ActivityRings {
	var steps, calories float64
	if today.Steps != nil {
		steps = float64(*today.Steps)
	}
	if today.CaloriesBurned != nil {
		calories = float64(*today.CaloriesBurned)
	}
	ring := func(v, goal float64) Ring {
		return Ring{Value: v, Goal: goal, Progress: RingProgress(v, goal)}
	}
	return ActivityRings{
		Steps:    ring(steps, float64(p.DailyStepGoal)),
		Calories: ring(calories, float64(p.DailyCalorieGoal)),
		Streak:   ring(float64(streak), StreakGoal),
	}
}
