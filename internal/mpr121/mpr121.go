// Package mpr121 provides a driver for the MPR121 capacitive touch sensor.
//
// Datasheet: https://cdn-shop.adafruit.com/datasheets/MPR121.pdf
package mpr121

import (
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/tamzrod/mpr121d/internal/touch"
)

const (
	DefaultTouchThreshold   = 40
	DefaultReleaseThreshold = 20
)

// Device wraps an I2C connection to an MPR121.
// It is not safe for concurrent use.
type Device struct {
	dev    *i2c.Dev
	closer io.Closer

	inited  bool
	running bool

	touchThreshold   [touch.NumElectrodes]uint8
	releaseThreshold [touch.NumElectrodes]uint8
	samplePeriod     uint8 // ESI encoding, restored by begin

	lastTouched uint16
}

// New resets and configures the device at address on bus. The device is
// left stopped; call Run to start sampling.
func New(bus i2c.Bus, address uint16) (*Device, error) {
	if address < AddressGND || address > AddressSCL {
		return nil, fmt.Errorf("%w %#x", ErrAddressUnknown, address)
	}

	d := &Device{
		dev:          &i2c.Dev{Addr: address, Bus: bus},
		samplePeriod: config2ResetValue & esiMask,
	}
	for i := range d.touchThreshold {
		d.touchThreshold[i] = DefaultTouchThreshold
		d.releaseThreshold[i] = DefaultReleaseThreshold
	}

	if err := d.begin(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open is New with a hex address string ("" = DefaultAddress). If bus is an
// io.Closer it is closed together with the device.
func Open(bus i2c.Bus, address string) (*Device, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	d, err := New(bus, addr)
	if err != nil {
		return nil, err
	}
	if c, ok := bus.(io.Closer); ok {
		d.closer = c
	}
	return d, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("mpr121(%s@%#x)", d.dev.Bus, d.dev.Addr)
}

// Close releases the bus if the device owns it.
func (d *Device) Close() error {
	d.running = false
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

func (d *Device) IsInited() bool  { return d.inited }
func (d *Device) IsRunning() bool { return d.running }

// Run enables all electrodes.
func (d *Device) Run() error {
	if !d.inited {
		return ErrNotInited
	}
	if err := d.write(regECR, ecrRunAll); err != nil {
		return err
	}
	d.running = true
	return nil
}

// Stop puts the device in stop mode. Register contents are kept.
func (d *Device) Stop() error {
	if !d.inited {
		return ErrNotInited
	}
	if err := d.write(regECR, 0x00); err != nil {
		return err
	}
	d.running = false
	return nil
}

// Reset soft-resets the chip and re-applies the configuration, including
// the current thresholds. The device is left stopped.
func (d *Device) Reset() error {
	d.running = false
	d.lastTouched = 0
	return d.begin()
}

// ---- thresholds ----

// SetTouchThreshold sets the touch threshold of every electrode.
func (d *Device) SetTouchThreshold(threshold uint8) error {
	for e := uint8(0); e < touch.NumElectrodes; e++ {
		if err := d.SetElectrodeTouchThreshold(e, threshold); err != nil {
			return err
		}
	}
	return nil
}

// SetReleaseThreshold sets the release threshold of every electrode.
func (d *Device) SetReleaseThreshold(threshold uint8) error {
	for e := uint8(0); e < touch.NumElectrodes; e++ {
		if err := d.SetElectrodeReleaseThreshold(e, threshold); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) SetElectrodeTouchThreshold(electrode, threshold uint8) error {
	if electrode >= touch.NumElectrodes {
		return ErrOutOfRange
	}
	if !d.inited {
		return ErrNotInited
	}
	if err := d.writeConfig(regTouchTh0+2*electrode, threshold); err != nil {
		return err
	}
	d.touchThreshold[electrode] = threshold
	return nil
}

func (d *Device) SetElectrodeReleaseThreshold(electrode, threshold uint8) error {
	if electrode >= touch.NumElectrodes {
		return ErrOutOfRange
	}
	if !d.inited {
		return ErrNotInited
	}
	if err := d.writeConfig(regReleaseTh0+2*electrode, threshold); err != nil {
		return err
	}
	d.releaseThreshold[electrode] = threshold
	return nil
}

// SetSamplePeriod writes the electrode sample interval (ESI) encoding:
// period = 1ms << encoded.
func (d *Device) SetSamplePeriod(encoded uint8) error {
	if encoded > esiMask {
		return fmt.Errorf("mpr121: sample period encoding %d out of range 0-7", encoded)
	}
	if !d.inited {
		return ErrNotInited
	}
	cur, err := d.read8(regConfig2)
	if err != nil {
		return err
	}
	if err := d.writeConfig(regConfig2, cur&^esiMask|encoded); err != nil {
		return err
	}
	d.samplePeriod = encoded
	return nil
}

// ---- sampling ----

// Step reads touch status, filtered data and baseline for every electrode.
func (d *Device) Step() (touch.Sample, error) {
	var s touch.Sample
	if !d.inited {
		return s, ErrNotInited
	}

	status := make([]byte, 2)
	if err := d.dev.Tx([]byte{regTouchStatusL}, status); err != nil {
		return s, fmt.Errorf("mpr121: read touch status: %w", err)
	}
	if status[1]&ovcfBit != 0 {
		return s, ErrOvercurrent
	}

	// filtered data is 10 bits, LSB first
	filt := make([]byte, 2*touch.NumElectrodes)
	if err := d.dev.Tx([]byte{regFiltData0L}, filt); err != nil {
		return s, fmt.Errorf("mpr121: read filtered data: %w", err)
	}

	// baseline registers hold the upper 8 of 10 bits
	base := make([]byte, touch.NumElectrodes)
	if err := d.dev.Tx([]byte{regBaseline0}, base); err != nil {
		return s, fmt.Errorf("mpr121: read baseline: %w", err)
	}

	touched := (uint16(status[0]) | uint16(status[1])<<8) & 0x0FFF

	for i := range s.Electrodes {
		bit := uint16(1) << uint(i)
		now := touched&bit != 0
		was := d.lastTouched&bit != 0

		s.Electrodes[i] = touch.Electrode{
			Touched:          now,
			NewTouch:         now && !was,
			NewRelease:       !now && was,
			Filtered:         uint16(filt[2*i]) | uint16(filt[2*i+1]&0x03)<<8,
			Baseline:         uint16(base[i]) << 2,
			TouchThreshold:   d.touchThreshold[i],
			ReleaseThreshold: d.releaseThreshold[i],
		}
	}

	d.lastTouched = touched
	s.At = time.Now()
	return s, nil
}

// ---- setup ----

func (d *Device) begin() error {
	d.inited = false

	if err := d.write(regSoftReset, softResetValue); err != nil {
		return fmt.Errorf("mpr121: soft reset: %w", err)
	}
	time.Sleep(time.Millisecond)

	cfg2, err := d.read8(regConfig2)
	if err != nil {
		return fmt.Errorf("mpr121: readback: %w", err)
	}
	if cfg2 != config2ResetValue {
		return ErrReadbackFail
	}

	hi, err := d.read8(regTouchStatusH)
	if err != nil {
		return fmt.Errorf("mpr121: read touch status: %w", err)
	}
	if hi&ovcfBit != 0 {
		return ErrOvercurrent
	}

	settings := []struct{ reg, val byte }{
		{regMHDR, 0x01},
		{regNHDR, 0x01},
		{regNCLR, 0x0E},
		{regFDLR, 0x00},

		{regMHDF, 0x01},
		{regNHDF, 0x05},
		{regNCLF, 0x01},
		{regFDLF, 0x00},

		{regNHDT, 0x00},
		{regNCLT, 0x00},
		{regFDLT, 0x00},

		{regDebounce, 0x00},
		// FFI 6 samples, 16uA; 0.5us, 4 samples, last ESI
		{regConfig1, 0x10},
		{regConfig2, config2ResetValue&^esiMask | d.samplePeriod},

		// auto-config, values for 3.3V
		{regAutoConfig0, 0x0B},
		{regUpLimit, 200},     // ((vdd - 0.7) / vdd) * 256
		{regTargetLimit, 180}, // UPLIMIT * 0.9
		{regLowLimit, 130},    // UPLIMIT * 0.65
	}
	for _, s := range settings {
		if err := d.write(s.reg, s.val); err != nil {
			return fmt.Errorf("mpr121: configure %#x: %w", s.reg, err)
		}
	}

	for i := 0; i < touch.NumElectrodes; i++ {
		if err := d.write(regTouchTh0+2*byte(i), d.touchThreshold[i]); err != nil {
			return fmt.Errorf("mpr121: touch threshold: %w", err)
		}
		if err := d.write(regReleaseTh0+2*byte(i), d.releaseThreshold[i]); err != nil {
			return fmt.Errorf("mpr121: release threshold: %w", err)
		}
	}

	d.inited = true
	return nil
}

// ---- register access ----

func (d *Device) read8(reg byte) (byte, error) {
	b := []byte{0}
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Device) write(reg, val byte) error {
	return d.dev.Tx([]byte{reg, val}, nil)
}

// writeConfig writes a register that may only change in stop mode.
// ECR and GPIO registers are written directly; anything else stops the
// device for the duration of the write.
func (d *Device) writeConfig(reg, val byte) error {
	if reg == regECR || (reg >= regGPIOFirst && reg <= regGPIOLast) || !d.running {
		return d.write(reg, val)
	}

	if err := d.write(regECR, 0x00); err != nil {
		return err
	}
	if err := d.write(reg, val); err != nil {
		return err
	}
	return d.write(regECR, ecrRunAll)
}
