// internal/sensor/fake_test.go
package sensor

import (
	"errors"
	"sync"

	"github.com/tamzrod/mpr121d/internal/touch"
)

type call struct {
	name string
	args []uint8
}

// fakeHandle records every call it receives.
type fakeHandle struct {
	mu      sync.Mutex
	running bool
	inited  bool
	stepErr error
	opErr   error
	steps   int
	calls   []call
	closed  bool
}

func (f *fakeHandle) record(name string, args ...uint8) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.opErr
}

func (f *fakeHandle) Step() (touch.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps++
	if f.stepErr != nil {
		return touch.Sample{}, f.stepErr
	}
	var s touch.Sample
	s.Electrodes[0].Touched = true
	s.Electrodes[0].Filtered = uint16(f.steps)
	return s, nil
}

func (f *fakeHandle) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeHandle) IsInited() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inited
}

func (f *fakeHandle) Run() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	return f.record("Run")
}

func (f *fakeHandle) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	return f.record("Stop")
}

func (f *fakeHandle) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("Reset")
}

func (f *fakeHandle) SetTouchThreshold(v uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("SetTouchThreshold", v)
}

func (f *fakeHandle) SetReleaseThreshold(v uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("SetReleaseThreshold", v)
}

func (f *fakeHandle) SetElectrodeTouchThreshold(e, v uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("SetElectrodeTouchThreshold", e, v)
}

func (f *fakeHandle) SetElectrodeReleaseThreshold(e, v uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("SetElectrodeReleaseThreshold", e, v)
}

func (f *fakeHandle) SetSamplePeriod(enc uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("SetSamplePeriod", enc)
}

func (f *fakeHandle) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeHandle) stepCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps
}

func (f *fakeHandle) callsNamed(name string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeHandle) setRunning(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = v
}

var errDriver = errors.New("driver: boom")

// openWith returns an OpenFunc handing out h and remembering the address.
func openWith(h *fakeHandle, gotAddr *string) OpenFunc {
	return func(address string) (Handle, error) {
		if gotAddr != nil {
			*gotAddr = address
		}
		return h, nil
	}
}
