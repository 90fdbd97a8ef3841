package app_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/app"
	"fittrack/internal/domain"
)

func seededRepo() *mockRepo {
	return &mockRepo{data: domain.FitnessData{
		Profile: testProfile(),
		Entries: []domain.DailyEntry{
			{Date: domain.NewDate(2025, time.February, 2), Steps: ptr(7000), Timestamp: 2},
			{Date: domain.NewDate(2025, time.February, 1), Weight: ptr(80.4), CaloriesBurned: ptr(320), Timestamp: 1},
		},
	}}
}

func TestExportCSV_EmptyCellsForAbsentFields(t *testing.T) {
	svc := app.NewTransferService(newStore(seededRepo()))
	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	want := "date,weight,steps,caloriesBurned\n" +
		"2025-02-01,80.4,,320\n" +
		"2025-02-02,,7000,\n"
	assert.Equal(t, want, buf.String())
}

func TestExportImportJSON_RoundTrip(t *testing.T) {
	src := seededRepo()
	var buf bytes.Buffer
	require.NoError(t, app.NewTransferService(newStore(src)).ExportJSON(context.Background(), &buf))

	dst := &mockRepo{data: domain.FitnessData{Entries: []domain.DailyEntry{
		{Date: domain.NewDate(2025, time.February, 1), Weight: ptr(99.0), Timestamp: 9},
	}}}
	res, err := app.NewTransferService(newStore(dst)).ImportJSON(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
	assert.True(t, res.ProfileReplaced)

	require.Len(t, dst.data.Entries, 2, "dates must stay unique")
	assert.Equal(t, *src.data.Profile, *dst.data.Profile)
	assert.ElementsMatch(t, src.data.Entries, dst.data.Entries)
}

func TestImportJSON_InvalidLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing entries", `{"profile": null}`},
		{"entries not an array", `{"entries": {"date": "2025-01-01"}}`},
		{"entry without date", `{"entries": [{"weight": 80}]}`},
		{"entry with bad date", `{"entries": [{"date": "01/02/2025"}]}`},
		{"negative steps", `{"entries": [{"date": "2025-01-01", "steps": -4}]}`},
		{"bad profile", `{"profile": {"age": 0}, "entries": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo()
			before := repo.data.Clone()

			_, err := app.NewTransferService(newStore(repo)).ImportJSON(context.Background(), strings.NewReader(tc.body))
			require.ErrorIs(t, err, app.ErrInvalidBackup)
			assert.Equal(t, 0, repo.saves)
			assert.Equal(t, before, repo.data)
		})
	}
}

func TestImportJSON_TimestampedDates(t *testing.T) {
	repo := &mockRepo{}
	body := `{"entries": [{"date": "2025-03-04T00:00:00.000Z", "weight": 77.7}]}`
	_, err := app.NewTransferService(newStore(repo)).ImportJSON(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, repo.data.Entries, 1)
	assert.Equal(t, "2025-03-04", repo.data.Entries[0].Date.String())
	assert.Equal(t, fixedNow.UnixMilli(), repo.data.Entries[0].Timestamp)
	assert.Nil(t, repo.data.Profile)
}

func TestImportCSV(t *testing.T) {
	repo := seededRepo()
	body := "date,weight,steps,caloriesBurned\n2025-02-02,79.9,,\n2025-02-03,,1200,90\n"

	res, err := app.NewTransferService(newStore(repo)).ImportCSV(context.Background(), strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Entries)
	assert.False(t, res.ProfileReplaced)
	require.Len(t, repo.data.Entries, 3)

	e, ok := repo.data.EntryFor(domain.NewDate(2025, time.February, 2))
	require.True(t, ok)
	assert.Equal(t, 79.9, *e.Weight)
	assert.Nil(t, e.Steps, "an imported entry replaces the stored one")
}

func TestImportCSV_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"wrong header", "day,kg,steps,kcal\n"},
		{"bad weight", "date,weight,steps,caloriesBurned\n2025-01-01,abc,,\n"},
		{"bad date", "date,weight,steps,caloriesBurned\n2025-13-01,80,,\n"},
		{"short row", "date,weight,steps,caloriesBurned\n2025-01-01,80\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := seededRepo()
			_, err := app.NewTransferService(newStore(repo)).ImportCSV(context.Background(), strings.NewReader(tc.body))
			if !errors.Is(err, app.ErrInvalidBackup) {
				t.Fatalf("expected ErrInvalidBackup, got %v", err)
			}
			if repo.saves != 0 {
				t.Errorf("expected no save, got %d", repo.saves)
			}
		})
	}
}

func TestImportJSON_ReadErrorIsInvalidBackup(t *testing.T) {
	repo := seededRepo()
	svc := app.NewTransferService(newStore(repo))
	cause := errors.New("body too large")

	_, err := svc.ImportJSON(context.Background(), iotest.ErrReader(cause))
	require.ErrorIs(t, err, app.ErrInvalidBackup)
	require.ErrorIs(t, err, cause)
	assert.Zero(t, repo.saves)
}
