// internal/status/tracker.go
package status

import (
	"errors"
	"sync"
	"time"

	"github.com/tamzrod/mpr121d/internal/mpr121"
	"github.com/tamzrod/mpr121d/internal/touch"
)

// Tracker owns the live Snapshot. Poll results and the 1 Hz clock feed it.
type Tracker struct {
	mu         sync.Mutex
	snap       Snapshot
	latest     touch.Sample
	haveSample bool
	staleAfter time.Duration
	now        func() time.Time
}

// NewTracker returns a tracker that reports HealthStale when a running
// sensor produced no sample for staleAfter (0 disables).
func NewTracker(staleAfter time.Duration) *Tracker {
	return &Tracker{
		snap:       Snapshot{Health: HealthUnknown},
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Latest returns the last successful sample, if any.
func (t *Tracker) Latest() (touch.Sample, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest, t.haveSample
}

// ObserveSample records a successful step. Recovery resets error state.
func (t *Tracker) ObserveSample(s touch.Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest, t.haveSample = s, true

	t.snap.Health = HealthOK
	t.snap.LastErrorCode = ErrorNone
	t.snap.SecondsInError = 0
	t.snap.LastError = ""
	t.snap.TouchedMask = s.TouchedMask()
	t.snap.Samples++
	t.snap.LastSample = s.At
	if t.snap.LastSample.IsZero() {
		t.snap.LastSample = t.now()
	}
}

// ObserveError records a failed step.
// seconds_in_error only increments on Tick.
func (t *Tracker) ObserveError(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.Health = HealthError
	t.snap.LastErrorCode = ErrorCode(err)
	t.snap.LastError = err.Error()
}

// Tick advances the 1 Hz clock. running is the driver's current state.
// It reports whether the snapshot changed.
func (t *Tracker) Tick(running bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.snap

	switch {
	case !running:
		if t.snap.Health != HealthError {
			t.snap.Health = HealthDisabled
		}
	case t.snap.Health == HealthDisabled:
		t.snap.Health = HealthUnknown
	case t.staleAfter > 0 && t.snap.Health == HealthOK &&
		t.now().Sub(t.snap.LastSample) > t.staleAfter:
		t.snap.Health = HealthStale
	}

	// must not wrap
	if t.snap.Health == HealthError && t.snap.SecondsInError < 65535 {
		t.snap.SecondsInError++
	}

	return t.snap != before
}

// ErrorCode maps a driver error to its status code.
func ErrorCode(err error) uint16 {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, mpr121.ErrAddressUnknown):
		return ErrorAddressUnknown
	case errors.Is(err, mpr121.ErrReadbackFail):
		return ErrorReadbackFail
	case errors.Is(err, mpr121.ErrOvercurrent):
		return ErrorOvercurrent
	case errors.Is(err, mpr121.ErrOutOfRange):
		return ErrorOutOfRange
	case errors.Is(err, mpr121.ErrNotInited):
		return ErrorNotInited
	}

	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ErrorGeneric
}
