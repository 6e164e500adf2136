// internal/sensor/builder.go
package sensor

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/mpr121d/internal/config"
)

// Build opens a Sensor from normalized config and applies the initial
// device settings. Polling is not started.
// On any settings failure the handle is released.
func Build(sc cfg.SensorConfig, open OpenFunc, opts ...Option) (*Sensor, error) {
	s, err := New(
		open,
		sc.Address,
		Config{Interval: time.Duration(sc.IntervalMs) * time.Millisecond},
		opts...,
	)
	if err != nil {
		return nil, err
	}

	if err := apply(s, sc); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func apply(s *Sensor, sc cfg.SensorConfig) error {
	if sc.TouchThreshold != nil {
		if err := s.SetTouchThreshold(*sc.TouchThreshold); err != nil {
			return fmt.Errorf("sensor: touch threshold: %w", err)
		}
	}
	if sc.ReleaseThreshold != nil {
		if err := s.SetReleaseThreshold(*sc.ReleaseThreshold); err != nil {
			return fmt.Errorf("sensor: release threshold: %w", err)
		}
	}
	if sc.SamplePeriodMs > 0 {
		if err := s.SetSamplePeriod(sc.SamplePeriodMs); err != nil {
			return fmt.Errorf("sensor: sample period: %w", err)
		}
	}
	if sc.Autostart != nil && *sc.Autostart {
		if err := s.Run(); err != nil {
			return fmt.Errorf("sensor: run: %w", err)
		}
	}
	return nil
}
