package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/core/model"
)

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineRecorder) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		l.mu.Lock()
		l.lines = append(l.lines, strings.TrimSpace(string(data)))
		l.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (l *lineRecorder) last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

func newTestInflux(t *testing.T) (*InfluxSink, *lineRecorder) {
	t.Helper()
	rec := &lineRecorder{}
	srv := httptest.NewServer(rec.handler())
	t.Cleanup(srv.Close)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	t.Cleanup(sink.Close)
	return sink, rec
}

func TestInfluxSink_RecordAnalytics(t *testing.T) {
	sink, rec := newTestInflux(t)
	require.NoError(t, sink.RecordAnalytics(sampleRecord()))

	line := rec.last()
	assert.True(t, strings.HasPrefix(line, MeasurementAnalytics+","), line)
	for _, want := range []string{
		"truck_id=7821",
		"status=en_route",
		"feasibility=medium",
		"risk_level=high",
		"has_traffic=true",
		"fuel_cost=659.294",
		"safety_score=70i",
		"eco_score=80i",
		"eta_hours=18.596",
		"weather_safety=85",
	} {
		assert.Contains(t, line, want)
	}
	assert.True(t, strings.HasSuffix(line, " 1780315200000000000"), line)
}

func TestInfluxSink_NotApplicableETAOmitted(t *testing.T) {
	sink, rec := newTestInflux(t)
	r := sampleRecord()
	r.Analytics.ETA = model.NotApplicableETA()
	require.NoError(t, sink.RecordAnalytics(r))
	assert.NotContains(t, rec.last(), "eta_hours")
}

func TestInfluxSink_OptionalRecorders(t *testing.T) {
	sink, rec := newTestInflux(t)

	require.NoError(t, sink.RecordCacheLookup(coremetrics.CacheLookup{Location: "chicago", Hit: true, Time: recordTime}))
	assert.True(t, strings.HasPrefix(rec.last(), MeasurementCache+","))
	assert.Contains(t, rec.last(), "location=chicago")
	assert.Contains(t, rec.last(), "hit=true")

	require.NoError(t, sink.RecordProviderFailure(coremetrics.ProviderFailure{Provider: "traffic", TruckID: "7821", Error: "timeout", Time: recordTime}))
	assert.Contains(t, rec.last(), `error="timeout"`)

	require.NoError(t, sink.RecordFleetStats(model.FleetStats{
		SimulatedFleetKPIs: model.SimulatedFleetKPIs{Simulated: true, Utilization: 90},
		Observed:           model.ObservedFleetKPIs{Trucks: 3},
		GeneratedAt:        recordTime,
	}))
	assert.Contains(t, rec.last(), "trucks=3i")
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	assert.True(t, called)
	assert.IsType(t, coremetrics.NopSink{}, sink)
}
