package telemetry

import "strings"

// Config enables truck state ingestion over the MQTT connection.
type Config struct {
	Enabled bool `json:"enabled"`
	// StatePrefix is subscribed as <prefix>/+; the last topic level is the
	// truck id when the payload omits it.
	StatePrefix string `json:"state_prefix"`
	QoS         byte   `json:"qos"`
}

func (c *Config) SetDefaults() {
	if c.StatePrefix == "" {
		c.StatePrefix = "adaptivelog/state"
	}
}

// Topic returns the wildcard subscription topic.
func (c Config) Topic() string {
	return strings.TrimSuffix(c.StatePrefix, "/") + "/+"
}
