package signals

import "github.com/kilianp07/adaptivelog/core/model"

const (
	MinDriverHours = 4
	MaxDriverHours = 12

	MinDetourEfficiency = 70
	MaxDetourEfficiency = 95
)

// Telemetry supplies per-truck readings that are not part of the truck record.
type Telemetry interface {
	// DriverHours is the number of hours the driver has been on duty.
	DriverHours(t model.Truck) int
	// DetourEfficiency rates how direct the current route is, in percent.
	DetourEfficiency(t model.Truck) int
}

// SampledTelemetry draws readings from a Sampler within the simulated ranges.
type SampledTelemetry struct {
	Sampler Sampler
}

// NewSampledTelemetry wraps s.
func NewSampledTelemetry(s Sampler) SampledTelemetry {
	return SampledTelemetry{Sampler: s}
}

func (s SampledTelemetry) DriverHours(model.Truck) int {
	return s.Sampler.Between(MinDriverHours, MaxDriverHours)
}

func (s SampledTelemetry) DetourEfficiency(model.Truck) int {
	return s.Sampler.Between(MinDetourEfficiency, MaxDetourEfficiency)
}

// FixedTelemetry returns the same readings for every truck.
type FixedTelemetry struct {
	Hours  int
	Detour int
}

func (f FixedTelemetry) DriverHours(model.Truck) int      { return f.Hours }
func (f FixedTelemetry) DetourEfficiency(model.Truck) int { return f.Detour }
