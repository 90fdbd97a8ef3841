package fitness_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
	"fittrack/internal/fitness"
)

func TestProject_OnTrack(t *testing.T) {
	today := day("2025-01-01")
	goal := fitness.Goal{CurrentWeight: 80, TargetWeight: 75, GoalDate: today.AddDays(70)}

	p := fitness.Project(goal, ptr(0.5), today)

	assert.Equal(t, 5.0, p.WeightRemaining)
	assert.Equal(t, 10, p.WeeksRemaining)
	require.NotNil(t, p.RequiredWeeklyRate)
	assert.Equal(t, 0.5, *p.RequiredWeeklyRate)
	assert.Equal(t, fitness.StatusOnTrack, p.Status.Status)
	require.NotNil(t, p.ProjectedDate)
	assert.Equal(t, goal.GoalDate, *p.ProjectedDate)
	assert.Equal(t, "You're on track! Keep up the consistent effort.", p.Insight)
}

func TestProject_NoRate(t *testing.T) {
	today := day("2025-01-01")
	p := fitness.Project(fitness.Goal{CurrentWeight: 80, TargetWeight: 75, GoalDate: today.AddDays(30)}, nil, today)

	assert.Nil(t, p.WeeklyRate)
	assert.Nil(t, p.ProjectedDate)
	assert.NotNil(t, p.RequiredWeeklyRate)
	assert.Equal(t, fitness.GettingStarted, p.Status)
	assert.True(t, strings.HasPrefix(p.Insight, "Start logging"))
}

func TestProject_GoalPassed(t *testing.T) {
	today := day("2025-06-01")
	p := fitness.Project(fitness.Goal{CurrentWeight: 80, TargetWeight: 75, GoalDate: day("2025-05-01")}, ptr(0.2), today)

	assert.Equal(t, 0, p.WeeksRemaining)
	assert.Nil(t, p.RequiredWeeklyRate)
	assert.Equal(t, fitness.GettingStarted, p.Status)
	assert.Equal(t, "Keep logging daily to track your progress accurately.", p.Insight)
}

func TestWeeksRemaining(t *testing.T) {
	today := day("2025-01-01")
	assert.Equal(t, 0, fitness.WeeksRemaining(today, today))
	assert.Equal(t, 0, fitness.WeeksRemaining(today, today.AddDays(-3)))
	assert.Equal(t, 1, fitness.WeeksRemaining(today, today.AddDays(1)))
	assert.Equal(t, 1, fitness.WeeksRemaining(today, today.AddDays(7)))
	assert.Equal(t, 2, fitness.WeeksRemaining(today, today.AddDays(8)))
}

func TestRequiredWeeklyRate(t *testing.T) {
	rate, ok := fitness.RequiredWeeklyRate(5, 3)
	require.True(t, ok)
	assert.Equal(t, 1.67, rate)

	_, ok = fitness.RequiredWeeklyRate(0, 3)
	assert.False(t, ok)
	_, ok = fitness.RequiredWeeklyRate(5, 0)
	assert.False(t, ok)
}

func TestProjectedGoalDate(t *testing.T) {
	today := day("2025-01-01")

	d, ok := fitness.ProjectedGoalDate(80, 75, 1, today)
	require.True(t, ok)
	assert.Equal(t, today.AddDays(35), d)

	// 3 / 0.75 * 7 = 28 days
	d, ok = fitness.ProjectedGoalDate(78, 75, 0.75, today)
	require.True(t, ok)
	assert.Equal(t, today.AddDays(28), d)

	d, ok = fitness.ProjectedGoalDate(74, 75, 0.5, today)
	require.True(t, ok)
	assert.Equal(t, today, d)

	_, ok = fitness.ProjectedGoalDate(80, 75, 0, today)
	assert.False(t, ok)
	_, ok = fitness.ProjectedGoalDate(80, 75, -0.3, today)
	assert.False(t, ok)
	_, ok = fitness.ProjectedGoalDate(200, 75, 0.0001, today)
	assert.False(t, ok)
}

func TestClassifyPace(t *testing.T) {
	tests := []struct {
		rate, required float64
		want           fitness.Status
		tone           fitness.Tone
	}{
		{1.0, 0.5, fitness.StatusAhead, fitness.ToneSuccess},
		{0.55, 0.5, fitness.StatusOnTrack, fitness.TonePrimary},
		{0.45, 0.5, fitness.StatusOnTrack, fitness.TonePrimary},
		{0.2, 0.5, fitness.StatusBehind, fitness.ToneWarning},
		{0.1, 0, fitness.StatusOnTrack, fitness.TonePrimary},
		{0, 0.1, fitness.StatusBehind, fitness.ToneWarning},
	}
	for _, tc := range tests {
		got := fitness.ClassifyPace(tc.rate, tc.required)
		assert.Equal(t, tc.want, got.Status, "rate %v required %v", tc.rate, tc.required)
		assert.Equal(t, tc.tone, got.Tone)
	}
}

func TestProjectIsDeterministic(t *testing.T) {
	today := day("2025-01-01")
	goal := fitness.Goal{CurrentWeight: 90, TargetWeight: 80, GoalDate: domain.NewDate(2025, 6, 30)}
	assert.Equal(t, fitness.Project(goal, ptr(0.3), today), fitness.Project(goal, ptr(0.3), today))
}
