// internal/sensor/sensor.go
package sensor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrAlreadyStarted = errors.New("sensor: already started")
	ErrClosed         = errors.New("sensor: closed")
)

// Sensor owns one driver handle, polls it on a fixed interval and publishes
// every sample to its data subscribers.
type Sensor struct {
	cfg     Config
	address string
	logger  *zap.SugaredLogger
	onError func(error)

	// mu serializes every call into the handle.
	mu       sync.Mutex
	handle   Handle
	released bool // handle closed; polling must not touch it

	events   emitter
	emitting atomic.Bool // poll goroutine is inside a listener

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// Option configures optional Sensor collaborators.
type Option func(*Sensor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Sensor) { s.logger = l }
}

// WithErrorHandler is called with every failed step.
// Step failures never stop polling.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Sensor) { s.onError = fn }
}

// New opens the handle and returns a Sensor that is not yet polling.
// An empty address lets the driver pick its default.
func New(open OpenFunc, address string, cfg Config, opts ...Option) (*Sensor, error) {
	if open == nil {
		return nil, errors.New("sensor: open func required")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("sensor: interval must be > 0")
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}

	s := &Sensor{
		cfg:     cfg,
		address: address,
		logger:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.Named("sensor")

	h, err := open(address)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("sensor: open %q returned no handle", address)
	}
	s.handle = h

	s.logger.Debugw("Opened sensor handle", "address", address, "interval", cfg.Interval)
	return s, nil
}

// Interval is the configured poll cadence.
func (s *Sensor) Interval() time.Duration { return s.cfg.Interval }

// Address is the bus address the handle was opened with ("" = driver default).
func (s *Sensor) Address() string { return s.address }

// Subscribe registers fn for the data event and returns a func that removes it.
func (s *Sensor) Subscribe(fn Listener) (unsubscribe func()) {
	return s.events.subscribe(fn)
}

// ---- forwarded driver operations ----

func (s *Sensor) SetTouchThreshold(threshold uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.SetTouchThreshold(threshold)
}

func (s *Sensor) SetReleaseThreshold(threshold uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.SetReleaseThreshold(threshold)
}

func (s *Sensor) SetElectrodeTouchThreshold(electrode, threshold uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.SetElectrodeTouchThreshold(electrode, threshold)
}

func (s *Sensor) SetElectrodeReleaseThreshold(electrode, threshold uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.SetElectrodeReleaseThreshold(electrode, threshold)
}

func (s *Sensor) Run() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.Run()
}

func (s *Sensor) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.Stop()
}

func (s *Sensor) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.Reset()
}

func (s *Sensor) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.IsRunning()
}

func (s *Sensor) IsInited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.IsInited()
}

// SetSamplePeriod snaps target (ms) up to the next power of two and sends
// the matching encoding to the driver.
//
// Periods above 128 are ignored without error. A resulting period of 1 is
// also ignored: its encoding is 0, which is treated as "no entry".
func (s *Sensor) SetSamplePeriod(target float64) error {
	enc, ok := encodePeriod(target)
	if !ok {
		s.logger.Debugw("Ignoring sample period", "target", target)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle.SetSamplePeriod(enc)
}

// Close stops polling, waits for the loop to exit and releases the handle
// if it can be closed. Close is idempotent. A data listener may call Close;
// the loop then exits once the listener returns.
func (s *Sensor) Close() error {
	s.lifeMu.Lock()
	if s.closed {
		s.lifeMu.Unlock()
		return nil
	}
	s.closed = true
	cancel, done := s.cancel, s.done
	s.lifeMu.Unlock()

	if cancel != nil {
		cancel()
		if !s.emitting.Load() {
			<-done
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	if c, ok := s.handle.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
