// Package simulated provides stand-in weather and traffic sources.
//
// The "simulated" providers draw readings from a seeded sampler within
// realistic ranges. The "static" providers return one observation decoded
// from configuration, which is handy for demos and tests. Both are
// registered with core/provider on import.
package simulated
