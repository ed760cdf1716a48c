package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveComputation(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	collector.ObserveComputation("initial_bearing", nil)
	collector.ObserveComputation("initial_bearing", nil)
	collector.ObserveComputation("initial_bearing", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Computations.WithLabelValues("initial_bearing", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Computations.WithLabelValues("initial_bearing", "error")))
}

func TestObserveRequestAndStreams(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)

	collector.ObserveRequest("/api/qibla/direction.json", http.StatusOK, 3*time.Millisecond)
	collector.StreamOpened()
	collector.StreamOpened()
	collector.StreamClosed()
	collector.ReadingSent()

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/api/qibla/direction.json", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.StreamSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.StreamReadings))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *Collector
	assert.NotPanics(t, func() {
		collector.ObserveComputation("display_rotation", nil)
		collector.ObserveRequest("/", http.StatusOK, time.Millisecond)
		collector.StreamOpened()
		collector.StreamClosed()
		collector.ReadingSent()
	})
}

func TestRegisteringTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	require.NoError(t, err)
	second, err := NewCollector(reg)
	require.NoError(t, err)

	first.ObserveComputation("normalize_angle", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Computations.WithLabelValues("normalize_angle", "ok")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewCollector(reg)
	require.NoError(t, err)
	collector.ObserveComputation("initial_bearing", nil)

	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `qibla_computations_total{operation="initial_bearing",outcome="ok"} 1`)

	names, err := collector.Gather()
	require.NoError(t, err)
	assert.Contains(t, names, "qibla_computations_total")
}
