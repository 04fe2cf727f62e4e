// Package signals isolates the ambient inputs the scoring code depends on:
// wall-clock time, pseudo-random sampling and simulated driver/route
// telemetry. Production code wires the system clock and a seeded sampler;
// tests inject fixed values so scores are reproducible.
package signals
