// Package analytics implements the truck scoring engine: load feasibility,
// arrival estimate, fuel cost, penalty risk, safety and eco scores.
//
// All functions are pure with respect to their inputs. Simulated telemetry
// (driver hours, detour efficiency) and the time of day are read from
// injected signal sources so that results are reproducible under test.
package analytics
