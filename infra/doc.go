// Package infra contains technical adapters: metrics sinks, the MQTT
// reporter and state ingestor, simulated providers and Sentry monitoring.
// These packages depend only on the interfaces defined in core.
package infra
