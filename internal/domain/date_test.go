package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/domain"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", d.String())
	assert.Equal(t, domain.NewDate(2025, time.January, 6), d)

	_, err = domain.ParseDate("06/01/2025")
	assert.Error(t, err)
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2025, 3, 9, 23, 59, 0, 0, loc)
	assert.Equal(t, "2025-03-09", domain.DateOf(late).String())
}

func TestDaysUntil(t *testing.T) {
	a := domain.NewDate(2025, time.January, 1)
	b := domain.NewDate(2025, time.March, 1)
	assert.Equal(t, 59, a.DaysUntil(b))
	assert.Equal(t, -59, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
	assert.True(t, a.AddDays(59).Equal(b))

	first := domain.NewDate(1, time.January, 1)
	last := domain.NewDate(9999, time.December, 31)
	assert.Equal(t, 3652058, first.DaysUntil(last))
	assert.Equal(t, -3652058, last.DaysUntil(first))
}

func TestGoalDateForMonth(t *testing.T) {
	tests := []struct {
		month string
		want  string
	}{
		{"2025-04", "2025-04-30"},
		{"2024-02", "2024-02-29"},
		{"2025-12", "2025-12-31"},
	}
	for _, tc := range tests {
		t.Run(tc.month, func(t *testing.T) {
			d, err := domain.GoalDateForMonth(tc.month)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.String())
		})
	}

	_, err := domain.GoalDateForMonth("April")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(domain.NewDate(2025, time.May, 3))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-05-03"`, string(b))

	var d domain.Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-05-03T10:00:00.000Z"`), &d))
	assert.Equal(t, "2025-05-03", d.String())

	assert.Error(t, json.Unmarshal([]byte(`12345`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
}
