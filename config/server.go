package config

import (
	"errors"
	"time"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr"`
	// RequestTimeoutSeconds bounds each API request, provider calls included.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 10
	}
}

func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}

// RequestTimeout returns RequestTimeoutSeconds as a duration.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
