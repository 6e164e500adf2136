// internal/sensor/builder_test.go
package sensor

import (
	"errors"
	"testing"
	"time"

	cfg "github.com/tamzrod/mpr121d/internal/config"
)

func u8(v uint8) *uint8 { return &v }
func yes() *bool { v := true; return &v }

func TestBuild_AppliesSettings(t *testing.T) {
	h := &fakeHandle{}
	sc := cfg.SensorConfig{
		Address:          "0x5B",
		IntervalMs:       20,
		TouchThreshold:   u8(12),
		ReleaseThreshold: u8(6),
		SamplePeriodMs:   13,
		Autostart:        yes(),
	}

	var addr string
	s, err := Build(sc, openWith(h, &addr))
	if err != nil {
		t.Fatalf("Build err=%v", err)
	}
	if addr != "0x5B" {
		t.Fatalf("address got=%q", addr)
	}
	if s.Interval() != 20*time.Millisecond {
		t.Fatalf("interval got=%v", s.Interval())
	}
	if c := h.callsNamed("SetTouchThreshold"); len(c) != 1 || c[0].args[0] != 12 {
		t.Fatalf("touch threshold not applied: %v", c)
	}
	if c := h.callsNamed("SetReleaseThreshold"); len(c) != 1 || c[0].args[0] != 6 {
		t.Fatalf("release threshold not applied: %v", c)
	}
	if c := h.callsNamed("SetSamplePeriod"); len(c) != 1 || c[0].args[0] != 4 {
		t.Fatalf("sample period not applied: %v", c)
	}
	if !h.IsRunning() {
		t.Fatalf("autostart should run the device")
	}
}

func TestBuild_FailureClosesHandle(t *testing.T) {
	h := &fakeHandle{opErr: errDriver}
	_, err := Build(cfg.SensorConfig{TouchThreshold: u8(1)}, openWith(h, nil))
	if !errors.Is(err, errDriver) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
	if !h.closed {
		t.Fatalf("handle should be released on failure")
	}
}
