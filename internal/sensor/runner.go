// internal/sensor/runner.go
package sensor

import (
	"context"
	"time"
)

// PollOnce performs exactly one tick: sample if and only if the driver
// reports itself running. It does not publish.
func (s *Sensor) PollOnce() PollResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released || !s.handle.IsRunning() {
		return PollResult{}
	}

	sample, err := s.handle.Step()
	if err != nil {
		return PollResult{Polled: true, Err: err}
	}
	if sample.At.IsZero() {
		sample.At = time.Now()
	}
	return PollResult{Polled: true, Sample: sample}
}

// tick runs one poll and publishes the outcome.
func (s *Sensor) tick() {
	res := s.PollOnce()
	if !res.Polled {
		return
	}
	if res.Err != nil {
		s.logger.Warnw("Step failed", "address", s.address, "error", res.Err)
		if s.onError != nil {
			s.onError(res.Err)
		}
		return
	}
	s.emitting.Store(true)
	defer s.emitting.Store(false)
	s.events.emit(res.Sample)
}

// Poll runs the poll loop until ctx is done. Ticks never overlap: a slow
// step makes the ticker drop ticks rather than queue them.
func (s *Sensor) Poll(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.tick()
		}
	}
}

// Start runs the poll loop in its own goroutine until ctx is done or Close
// is called.
func (s *Sensor) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go func() {
		defer close(done)
		s.Poll(ctx)
	}()

	s.logger.Infow("Polling started", "address", s.address, "interval", s.cfg.Interval)
	return nil
}
