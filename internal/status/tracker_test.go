// internal/status/tracker_test.go
package status

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tamzrod/mpr121d/internal/mpr121"
	"github.com/tamzrod/mpr121d/internal/touch"
)

func TestTracker_SampleThenError(t *testing.T) {
	tr := NewTracker(0)

	if h := tr.Snapshot().Health; h != HealthUnknown {
		t.Fatalf("initial health got=%d", h)
	}
	if _, ok := tr.Latest(); ok {
		t.Fatalf("no sample expected yet")
	}

	var s touch.Sample
	s.Electrodes[2].Touched = true
	s.At = time.Unix(100, 0)
	tr.ObserveSample(s)

	if _, ok := tr.Latest(); !ok {
		t.Fatalf("latest sample not kept")
	}

	snap := tr.Snapshot()
	if snap.Health != HealthOK || snap.TouchedMask != 1<<2 || snap.Samples != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	tr.ObserveError(fmt.Errorf("step: %w", mpr121.ErrOvercurrent))
	snap = tr.Snapshot()
	if snap.Health != HealthError || snap.LastErrorCode != ErrorOvercurrent {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.SecondsInError != 0 {
		t.Fatalf("seconds_in_error must only move on Tick")
	}

	tr.Tick(true)
	tr.Tick(true)
	if got := tr.Snapshot().SecondsInError; got != 2 {
		t.Fatalf("seconds_in_error got=%d want=2", got)
	}

	tr.ObserveSample(s)
	snap = tr.Snapshot()
	if snap.Health != HealthOK || snap.SecondsInError != 0 || snap.LastErrorCode != 0 || snap.LastError != "" {
		t.Fatalf("recovery did not reset error state: %+v", snap)
	}
}

func TestTracker_StoppedAndStale(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := NewTracker(time.Second)
	tr.now = func() time.Time { return now }

	if !tr.Tick(false) || tr.Snapshot().Health != HealthDisabled {
		t.Fatalf("stopped sensor should be disabled")
	}
	if tr.Tick(false) {
		t.Fatalf("no change expected on repeated stopped tick")
	}

	tr.Tick(true)
	if h := tr.Snapshot().Health; h != HealthUnknown {
		t.Fatalf("restart should return to unknown, got %d", h)
	}

	tr.ObserveSample(touch.Sample{At: now})
	now = now.Add(3 * time.Second)
	tr.Tick(true)
	if h := tr.Snapshot().Health; h != HealthStale {
		t.Fatalf("expected stale, got %s", HealthName(h))
	}
}

func TestTracker_SecondsInErrorSaturates(t *testing.T) {
	tr := NewTracker(0)
	tr.ObserveError(errors.New("x"))
	tr.snap.SecondsInError = 65535
	tr.Tick(true)
	if got := tr.Snapshot().SecondsInError; got != 65535 {
		t.Fatalf("seconds_in_error wrapped: %d", got)
	}
}

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() uint16  { return 42 }

func TestErrorCode(t *testing.T) {
	cases := []struct {
		err  error
		want uint16
	}{
		{nil, ErrorNone},
		{mpr121.ErrReadbackFail, ErrorReadbackFail},
		{fmt.Errorf("wrap: %w", mpr121.ErrNotInited), ErrorNotInited},
		{mpr121.ErrAddressUnknown, ErrorAddressUnknown},
		{mpr121.ErrOutOfRange, ErrorOutOfRange},
		{codedErr{}, 42},
		{errors.New("other"), ErrorGeneric},
	}
	for _, tc := range cases {
		if got := ErrorCode(tc.err); got != tc.want {
			t.Fatalf("ErrorCode(%v) got=%d want=%d", tc.err, got, tc.want)
		}
	}
}

func TestEncode(t *testing.T) {
	regs := Encode(Snapshot{Health: HealthOK, TouchedMask: 0x0F0, Samples: 0x00010002})
	if len(regs) != SlotsPerDevice {
		t.Fatalf("block size got=%d", len(regs))
	}
	if regs[SlotHealthCode] != HealthOK || regs[SlotTouchedMask] != 0x0F0 {
		t.Fatalf("unexpected regs: %v", regs)
	}
	if regs[SlotSamplesHi] != 1 || regs[SlotSamplesLo] != 2 {
		t.Fatalf("sample counter split wrong: %v", regs[SlotSamplesHi:SlotSamplesLo+1])
	}
}

func TestEncodeDeviceName(t *testing.T) {
	regs := EncodeDeviceName("AB\x01")
	if regs[0] != uint16('A')<<8|uint16('B') {
		t.Fatalf("first register got=%#x", regs[0])
	}
	if regs[1] != uint16('?')<<8 {
		t.Fatalf("non-printable not sanitized: %#x", regs[1])
	}
	for _, r := range regs[2:] {
		if r != 0 {
			t.Fatalf("padding not zero: %v", regs)
		}
	}
}
