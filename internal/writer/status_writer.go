// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tamzrod/mpr121d/internal/status"
)

// StatusWriter is the delivery-only contract for sensor status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter keeps the target's status block in sync with the
// snapshots it is handed.
type deviceStatusWriter struct {
	unitID   uint8
	plan     *StatusPlan
	cli      endpointClient
	nameRegs []uint16

	mu       sync.Mutex
	needFull bool
	last     []uint16
}

// NewDeviceStatusWriter builds a status writer if plan.Status is set.
func NewDeviceStatusWriter(plan Plan, endpoint string, clients map[string]endpointClient) (*deviceStatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	return &deviceStatusWriter{
		unitID:   plan.UnitID,
		plan:     plan.Status,
		cli:      clients[endpoint],
		nameRegs: status.EncodeDeviceName(plan.Status.DeviceName),
		needFull: true, // full re-assert on first write
	}, true
}

// WriteStatus writes the whole block (with device name) on first use and
// after any failure; otherwise only the slots that changed.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return errors.New("status writer: missing client")
	}

	sw.mu.Lock()
	defer sw.mu.Unlock()

	regs := status.Encode(s)
	copy(regs[status.SlotDeviceNameStart:], sw.nameRegs)

	base := sw.plan.BaseSlot * status.SlotsPerDevice

	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.unitID, base, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = regs
		return nil
	}

	var errs []string

	// live slots only; the name never changes after the full assert
	for slot := 0; slot < status.SlotDeviceNameStart; slot++ {
		if regs[slot] == sw.last[slot] {
			continue
		}
		if err := sw.cli.WriteRegisters(sw.unitID, base+uint16(slot), regs[slot:slot+1]); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", slot, err))
			continue
		}
		sw.last[slot] = regs[slot]
	}

	if len(errs) > 0 {
		// partial failure: re-assert everything on the next call
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}
	return nil
}
