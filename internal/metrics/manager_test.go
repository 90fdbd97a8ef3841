package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Registers(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterImports.WithLabelValues("csv", Result(errors.New("bad row"))).Inc()
	m.CounterBackups.WithLabelValues(Result(nil)).Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterImports.WithLabelValues("csv", ResultError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterBackups.WithLabelValues(ResultOK)))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "fittrack_test_server_requests_total")
	assert.Contains(t, names, "fittrack_test_server_backups_total")
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}
