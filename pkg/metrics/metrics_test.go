package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gimnasio-api/pkg/metrics"
)

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	m.Observe("GET", "/api/clients", 200, 5*time.Millisecond)
	m.Observe("GET", "/api/clients", 200, 7*time.Millisecond)
	m.Observe("POST", "", 400, time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestJobMetrics_Track(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewJobMetrics(reg)

	m.Track("backup", time.Now(), nil)
	m.Track("backup", time.Now(), errors.New("disco lleno"))
	m.Track("backup", time.Now(), nil)

	n, err := testutil.GatherAndCount(reg, "job_success_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_NilSeguro(t *testing.T) {
	var h *metrics.HTTPMetrics
	var j *metrics.JobMetrics
	assert.NotPanics(t, func() {
		h.Observe("GET", "/", 200, time.Millisecond)
		j.Track("backup", time.Now(), nil)
		metrics.NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
	})
}
