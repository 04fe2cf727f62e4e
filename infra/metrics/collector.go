package metrics

import (
	"context"

	"github.com/kilianp07/adaptivelog/core/events"
	coremetrics "github.com/kilianp07/adaptivelog/core/metrics"
	"github.com/kilianp07/adaptivelog/infra/logger"
	"github.com/kilianp07/adaptivelog/internal/eventbus"
)

// StartEventCollector subscribes to bus and records each event on sink until
// ctx is cancelled or the bus is closed. The returned channel is closed when
// the collector has stopped.
func StartEventCollector(ctx context.Context, bus eventbus.Bus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Warnf("record %s event: %v", ev.Kind(), err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.AnalyticsEvent:
		return sink.RecordAnalytics(AnalyticsRecordFromBundle(e))
	case events.CacheEvent:
		if r, ok := sink.(coremetrics.CacheRecorder); ok {
			return r.RecordCacheLookup(coremetrics.CacheLookup{Location: e.Location, Hit: e.Hit, Time: e.Time})
		}
	case events.ProviderErrorEvent:
		if r, ok := sink.(coremetrics.ProviderFailureRecorder); ok {
			msg := ""
			if e.Err != nil {
				msg = e.Err.Error()
			}
			return r.RecordProviderFailure(coremetrics.ProviderFailure{Provider: e.Provider, TruckID: e.TruckID, Error: msg, Time: e.Time})
		}
	}
	return nil
}

// AnalyticsRecordFromBundle flattens an analytics event for the sinks.
func AnalyticsRecordFromBundle(e events.AnalyticsEvent) coremetrics.AnalyticsRecord {
	b := e.Bundle
	rec := coremetrics.AnalyticsRecord{
		TruckID:    b.ID,
		Status:     b.Status,
		Analytics:  b.Analytics,
		HasTraffic: b.Traffic != nil,
		Duration:   e.Duration,
		Time:       e.Time,
	}
	if b.Weather != nil {
		rec.WeatherSafety = b.Weather.Impact.SafetyScore
	}
	return rec
}
