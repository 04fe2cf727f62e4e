package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingMonitor struct {
	errs    []error
	tags    []map[string]string
	panics  []any
	flushes int
}

func (r *recordingMonitor) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func (r *recordingMonitor) CapturePanic(v any, _ map[string]string) { r.panics = append(r.panics, v) }

func (r *recordingMonitor) Flush(time.Duration) bool {
	r.flushes++
	return true
}

func install(t *testing.T) *recordingMonitor {
	t.Helper()
	prev := Current()
	rec := &recordingMonitor{}
	Init(rec)
	t.Cleanup(func() { Init(prev) })
	return rec
}

func TestCaptureException(t *testing.T) {
	rec := install(t)
	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"provider": "weather"})

	assert.Len(t, rec.errs, 1)
	assert.Equal(t, "weather", rec.tags[0]["provider"])
	assert.True(t, Flush(time.Second))
	assert.Equal(t, 1, rec.flushes)
}

func TestInitIgnoresNil(t *testing.T) {
	rec := install(t)
	Init(nil)
	assert.Same(t, rec, Current())
}

func TestRecoverAndReport(t *testing.T) {
	rec := install(t)
	assert.PanicsWithValue(t, "kaboom", func() {
		defer func() { RecoverAndReport(recover(), nil) }()
		panic("kaboom")
	})
	assert.Equal(t, []any{"kaboom"}, rec.panics)

	assert.NotPanics(t, func() {
		defer func() { RecoverAndReport(recover(), nil) }()
	})
}
