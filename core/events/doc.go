// Package events defines what the analytics service publishes on the event
// bus.
//
// Available event types:
//   - AnalyticsEvent: a truck analytics bundle was computed
//   - CacheEvent: a weather cache lookup hit or missed
//   - ProviderErrorEvent: a weather or traffic provider failed
package events
