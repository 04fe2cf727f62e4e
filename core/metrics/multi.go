package metrics

import (
	"errors"

	"github.com/kilianp07/adaptivelog/core/model"
)

// MultiSink fans records out to several sinks. Every sink is called even
// when an earlier one fails; the errors are joined.
type MultiSink struct {
	Sinks []MetricsSink
}

func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

func (m *MultiSink) RecordAnalytics(rec AnalyticsRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordAnalytics(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordCacheLookup forwards to sinks implementing CacheRecorder.
func (m *MultiSink) RecordCacheLookup(ev CacheLookup) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(CacheRecorder); ok {
			if err := r.RecordCacheLookup(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordProviderFailure forwards to sinks implementing ProviderFailureRecorder.
func (m *MultiSink) RecordProviderFailure(ev ProviderFailure) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(ProviderFailureRecorder); ok {
			if err := r.RecordProviderFailure(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordFleetStats forwards to sinks implementing FleetStatsRecorder.
func (m *MultiSink) RecordFleetStats(stats model.FleetStats) error {
	var errs []error
	for _, s := range m.Sinks {
		if r, ok := s.(FleetStatsRecorder); ok {
			if err := r.RecordFleetStats(stats); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
