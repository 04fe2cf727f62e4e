// Package monitoring reports errors and panics to an external tracker.
//
// A process wide Monitor is installed with Init; until then every call is a
// no-op.
package monitoring

import (
	"sync"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	CapturePanic(v any, tags map[string]string)
	Flush(timeout time.Duration) bool
}

type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any, map[string]string)       {}
func (NopMonitor) Flush(time.Duration) bool                  { return true }

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. Nil is ignored.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Current returns the installed monitor.
func Current() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records err with optional tags. Nil errors are ignored.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// Flush waits for buffered events to be delivered.
func Flush(d time.Duration) bool {
	return Current().Flush(d)
}

// RecoverAndReport reports a recovered panic value and re-panics. Use it
// from a deferred closure:
//
//	defer func() { monitoring.RecoverAndReport(recover(), nil) }()
func RecoverAndReport(v any, tags map[string]string) {
	if v == nil {
		return
	}
	m := Current()
	m.CapturePanic(v, tags)
	m.Flush(2 * time.Second)
	panic(v)
}
