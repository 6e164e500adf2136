// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/tamzrod/mpr121d/internal/mpr121"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// SENSOR
	// ------------------------------------------------------------

	s := cfg.Sensor

	if s.Address != "" {
		if _, err := mpr121.ParseAddress(s.Address); err != nil {
			return fmt.Errorf("sensor: %w", err)
		}
	}

	if s.IntervalMs < 0 {
		return fmt.Errorf("sensor: interval_ms must be > 0, got %d", s.IntervalMs)
	}

	if s.SamplePeriodMs < 0 {
		return fmt.Errorf("sensor: sample_period_ms must be > 0, got %v", s.SamplePeriodMs)
	}

	if s.TouchThreshold != nil && s.ReleaseThreshold != nil &&
		*s.ReleaseThreshold > *s.TouchThreshold {
		return fmt.Errorf(
			"sensor: release_threshold (%d) must not exceed touch_threshold (%d)",
			*s.ReleaseThreshold,
			*s.TouchThreshold,
		)
	}

	// ------------------------------------------------------------
	// MQTT (OPT-IN)
	// ------------------------------------------------------------

	if cfg.MQTT.Broker != "" {
		u, err := url.Parse(cfg.MQTT.Broker)
		if err != nil {
			return fmt.Errorf("mqtt: broker: %w", err)
		}
		switch u.Scheme {
		case "mqtt", "tcp", "ssl", "tls", "ws", "wss":
		default:
			return fmt.Errorf("mqtt: unsupported broker scheme %q", u.Scheme)
		}
		if strings.ContainsAny(cfg.MQTT.Topic, "+#") {
			return fmt.Errorf("mqtt: topic %q must not contain wildcards", cfg.MQTT.Topic)
		}
	}

	// ------------------------------------------------------------
	// MODBUS (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Modbus.Endpoint != "" {
		if cfg.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("modbus: timeout_ms must be > 0, got %d", cfg.Modbus.TimeoutMs)
		}

		for i := 0; i < len(cfg.Modbus.DeviceName); i++ {
			if cfg.Modbus.DeviceName[i] > 0x7F {
				return fmt.Errorf("modbus: device_name must contain ASCII characters only")
			}
		}
	} else if cfg.Modbus.StatusSlot != nil {
		return fmt.Errorf("modbus: status_slot is set but no endpoint is defined")
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	if cfg.Log.Level != "" {
		if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("log: %w", err)
		}
	}

	return nil
}
