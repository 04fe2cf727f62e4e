package metrics

import (
	"fmt"

	"github.com/kilianp07/adaptivelog/core/factory"
)

// Config selects the metrics sinks and where Prometheus is exposed.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is the listen address of the /metrics endpoint. Empty
	// disables the endpoint.
	PrometheusAddr string `json:"prometheus_addr"`
}

func (c *Config) SetDefaults() {}

func (c *Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}
