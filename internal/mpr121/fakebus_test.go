package mpr121

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// fakeBus emulates the MPR121 register file with auto-increment access.
type fakeBus struct {
	addr uint16
	regs [256]byte

	// noReset keeps CONFIG2 away from its reset value.
	noReset bool
	failTx  error
	writes  [][2]byte
	closed  bool
}

func newFakeBus(addr uint16) *fakeBus {
	return &fakeBus{addr: addr}
}

func (f *fakeBus) String() string { return "fake" }

func (f *fakeBus) SetSpeed(physic.Frequency) error { return nil }

func (f *fakeBus) Close() error {
	f.closed = true
	return nil
}

func (f *fakeBus) Tx(addr uint16, w, r []byte) error {
	if f.failTx != nil {
		return f.failTx
	}
	if addr != f.addr {
		return fmt.Errorf("fake: nack from %#x", addr)
	}
	if len(w) == 0 {
		return errors.New("fake: empty write")
	}

	reg := int(w[0])
	for i, v := range w[1:] {
		f.store(reg+i, v)
	}
	for i := range r {
		r[i] = f.regs[(reg+i)&0xFF]
	}
	return nil
}

func (f *fakeBus) store(reg int, v byte) {
	reg &= 0xFF
	f.writes = append(f.writes, [2]byte{byte(reg), v})

	if reg == regSoftReset && v == softResetValue {
		f.regs = [256]byte{}
		f.regs[regConfig1] = 0x10
		if !f.noReset {
			f.regs[regConfig2] = config2ResetValue
		}
		return
	}
	f.regs[reg] = v
}

// setTouched sets the touch status bits.
func (f *fakeBus) setTouched(mask uint16) {
	f.regs[regTouchStatusL] = byte(mask)
	f.regs[regTouchStatusH] = byte(mask>>8) & 0x1F
}

func (f *fakeBus) writesTo(reg byte) []byte {
	var out []byte
	for _, w := range f.writes {
		if w[0] == reg {
			out = append(out, w[1])
		}
	}
	return out
}
