// internal/config/config.go
package config

type Config struct {
	Sensor SensorConfig `yaml:"sensor"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Modbus ModbusConfig `yaml:"modbus"`
	HTTP   HTTPConfig   `yaml:"http"`
	Log    LogConfig    `yaml:"log"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Bus     string `yaml:"bus"`     // host I2C bus name; empty = first available
	Address string `yaml:"address"` // hex, e.g. "0x5C"; empty = driver default

	IntervalMs int `yaml:"interval_ms"`

	TouchThreshold   *uint8  `yaml:"touch_threshold"`
	ReleaseThreshold *uint8  `yaml:"release_threshold"`
	SamplePeriodMs   float64 `yaml:"sample_period_ms"` // 0 = leave device default

	Autostart *bool `yaml:"autostart"`
}

// ---- MQTT (optional) ----

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // empty disables MQTT
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
	Retain   bool   `yaml:"retain"`
}

// ---- MODBUS (optional) ----

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"` // empty disables Modbus replication
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	CoilAddress     uint16  `yaml:"coil_address"`
	RegisterAddress uint16  `yaml:"register_address"`
	StatusSlot      *uint16 `yaml:"status_slot"` // opt-in device status block
	DeviceName      string  `yaml:"device_name"`
}

// ---- HTTP (optional) ----

type HTTPConfig struct {
	Listen string `yaml:"listen"` // empty disables the HTTP API
}

// ---- LOG ----

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}
