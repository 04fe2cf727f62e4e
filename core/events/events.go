package events

import (
	"time"

	"github.com/kilianp07/adaptivelog/core/model"
)

// Event is implemented by every event published by the service.
type Event interface {
	Kind() string
	OccurredAt() time.Time
}

// AnalyticsEvent carries a freshly computed bundle.
type AnalyticsEvent struct {
	Bundle   model.AnalyticsBundle
	Duration time.Duration
	Time     time.Time
}

func (AnalyticsEvent) Kind() string            { return "analytics" }
func (e AnalyticsEvent) OccurredAt() time.Time { return e.Time }

// CacheEvent reports a weather cache lookup.
type CacheEvent struct {
	Location string
	Hit      bool
	Time     time.Time
}

func (CacheEvent) Kind() string            { return "cache" }
func (e CacheEvent) OccurredAt() time.Time { return e.Time }

// Provider names used in ProviderErrorEvent.
const (
	ProviderWeather = "weather"
	ProviderTraffic = "traffic"
)

// ProviderErrorEvent is published when an observation could not be fetched.
// The analytics were still computed without it.
type ProviderErrorEvent struct {
	Provider string
	TruckID  string
	Err      error
	Time     time.Time
}

func (ProviderErrorEvent) Kind() string            { return "provider_error" }
func (e ProviderErrorEvent) OccurredAt() time.Time { return e.Time }
