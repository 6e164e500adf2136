// internal/config/validate_test.go
package config

import "testing"

func u8(v uint8) *uint8    { return &v }
func u16(v uint16) *uint16 { return &v }

// ---- tests ----

func TestValidate_Empty(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AddressForms(t *testing.T) {
	for _, a := range []string{"0x5A", "5b", "0X5c", " 0x5D "} {
		cfg := &Config{Sensor: SensorConfig{Address: a}}
		if err := Validate(cfg); err != nil {
			t.Fatalf("address %q: unexpected error: %v", a, err)
		}
	}
}

func TestValidate_AddressRejected(t *testing.T) {
	for _, a := range []string{"0x20", "zz", "0x5E"} {
		cfg := &Config{Sensor: SensorConfig{Address: a}}
		if err := Validate(cfg); err == nil {
			t.Fatalf("address %q: expected error, got nil", a)
		}
	}
}

func TestValidate_NegativeInterval(t *testing.T) {
	cfg := &Config{Sensor: SensorConfig{IntervalMs: -1}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_ReleaseAboveTouch(t *testing.T) {
	cfg := &Config{Sensor: SensorConfig{TouchThreshold: u8(6), ReleaseThreshold: u8(12)}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected threshold error, got nil")
	}
}

func TestValidate_MQTTScheme(t *testing.T) {
	cfg := &Config{MQTT: MQTTConfig{Broker: "http://localhost:1883"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected scheme error, got nil")
	}

	cfg.MQTT.Broker = "tcp://localhost:1883"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MQTTTopicWildcard(t *testing.T) {
	cfg := &Config{MQTT: MQTTConfig{Broker: "tcp://localhost:1883", Topic: "touch/#"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected topic error, got nil")
	}
}

func TestValidate_StatusSlotRequiresEndpoint(t *testing.T) {
	cfg := &Config{Modbus: ModbusConfig{StatusSlot: u16(0)}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected status_slot error, got nil")
	}
}

func TestValidate_DeviceNameASCII(t *testing.T) {
	cfg := &Config{Modbus: ModbusConfig{Endpoint: "127.0.0.1:502", DeviceName: "pad-é"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected device_name error, got nil")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "loud"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log level error, got nil")
	}
}
