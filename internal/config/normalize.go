// internal/config/normalize.go
package config

const (
	DefaultIntervalMs    = 10
	DefaultMQTTTopic     = "mpr121"
	DefaultModbusTimeout = 1000
	DefaultLogLevel      = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Sensor.IntervalMs == 0 {
		cfg.Sensor.IntervalMs = DefaultIntervalMs
	}
	if cfg.Sensor.Autostart == nil {
		on := true
		cfg.Sensor.Autostart = &on
	}

	if cfg.MQTT.Broker != "" && cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = DefaultMQTTTopic
	}

	if cfg.Modbus.Endpoint != "" && cfg.Modbus.TimeoutMs == 0 {
		cfg.Modbus.TimeoutMs = DefaultModbusTimeout
	}

	// device_name: ASCII already validated, truncate to 16 characters
	if len(cfg.Modbus.DeviceName) > 16 {
		cfg.Modbus.DeviceName = cfg.Modbus.DeviceName[:16]
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
