// Package metrics defines the sinks analytics results are recorded to.
//
// Every sink implements MetricsSink. Sinks may also implement the optional
// recorder interfaces; MultiSink forwards to those sinks that do. Concrete
// sinks (Prometheus, InfluxDB) live in infra/metrics and register themselves
// by type name so NewMetricsSink can build them from configuration.
package metrics
