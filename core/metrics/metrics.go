package metrics

import (
	"time"

	"github.com/kilianp07/adaptivelog/core/model"
)

// AnalyticsRecord is one computed truck analytics result.
type AnalyticsRecord struct {
	TruckID   string
	Status    model.TruckStatus
	Analytics model.Analytics
	// WeatherSafety is the weather impact safety score, 0 when unknown.
	WeatherSafety float64
	HasTraffic    bool
	Duration      time.Duration
	Time          time.Time
}

// MetricsSink records analytics results.
type MetricsSink interface {
	RecordAnalytics(rec AnalyticsRecord) error
}

// CacheLookup is a weather cache hit or miss.
type CacheLookup struct {
	Location string
	Hit      bool
	Time     time.Time
}

// CacheRecorder records weather cache lookups.
type CacheRecorder interface {
	RecordCacheLookup(ev CacheLookup) error
}

// ProviderFailure is an observation provider error.
type ProviderFailure struct {
	Provider string
	TruckID  string
	Error    string
	Time     time.Time
}

// ProviderFailureRecorder records provider errors.
type ProviderFailureRecorder interface {
	RecordProviderFailure(ev ProviderFailure) error
}

// FleetStatsRecorder records dashboard summaries.
type FleetStatsRecorder interface {
	RecordFleetStats(stats model.FleetStats) error
}

// NopSink implements every recorder and does nothing.
type NopSink struct{}

func (NopSink) RecordAnalytics(AnalyticsRecord) error       { return nil }
func (NopSink) RecordCacheLookup(CacheLookup) error         { return nil }
func (NopSink) RecordProviderFailure(ProviderFailure) error { return nil }
func (NopSink) RecordFleetStats(model.FleetStats) error     { return nil }
