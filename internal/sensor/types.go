// internal/sensor/types.go
package sensor

import (
	"time"

	"github.com/tamzrod/mpr121d/internal/touch"
)

// DefaultInterval is the poll cadence used when none is configured.
const DefaultInterval = 10 * time.Millisecond

// Handle is the driver surface the adapter depends on.
// The adapter adds no semantics to any of these calls.
type Handle interface {
	Step() (touch.Sample, error)

	IsRunning() bool
	IsInited() bool

	Run() error
	Stop() error
	Reset() error

	SetTouchThreshold(threshold uint8) error
	SetReleaseThreshold(threshold uint8) error
	SetElectrodeTouchThreshold(electrode, threshold uint8) error
	SetElectrodeReleaseThreshold(electrode, threshold uint8) error

	// SetSamplePeriod takes the encoded period (0..7), not milliseconds.
	SetSamplePeriod(encoded uint8) error
}

// OpenFunc creates the one handle a Sensor owns.
// An empty address means the driver default.
type OpenFunc func(address string) (Handle, error)

// Config is the poll configuration. Zero values take defaults.
type Config struct {
	Interval time.Duration
}

// Listener receives every published sample.
type Listener func(touch.Sample)

// PollResult is what one tick produced.
type PollResult struct {
	// Polled is false when the driver was not running at tick time.
	Polled bool
	Sample touch.Sample
	Err    error
}
