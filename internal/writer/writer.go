// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tamzrod/mpr121d/internal/touch"
)

// endpointClient is the exact contract the writers use.
type endpointClient interface {
	WriteCoils(unitID uint8, addr uint16, bits []bool) error
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type modbusWriter struct {
	plan    Plan
	clients map[string]endpointClient
	ep      string

	mu       sync.Mutex
	haveMask bool
	lastMask uint16
}

// New returns a Writer for plan using the client registered for endpoint.
func New(plan Plan, endpoint string, clients map[string]endpointClient) Writer {
	return &modbusWriter{
		plan:    plan,
		clients: clients,
		ep:      endpoint,
	}
}

// Write replicates one sample. Coils are only written when the touched
// mask changes (or after a failed coil write); registers every time.
func (w *modbusWriter) Write(s touch.Sample) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cli := w.clients[w.ep]
	if cli == nil {
		return fmt.Errorf("writer: missing client for endpoint %s", w.ep)
	}

	var errs []string

	// ------------------------------------------------------------
	// TOUCH COILS (on change)
	// ------------------------------------------------------------

	mask := s.TouchedMask()
	if !w.haveMask || mask != w.lastMask {
		bits := make([]bool, touch.NumElectrodes)
		for i, e := range s.Electrodes {
			bits[i] = e.Touched
		}

		if err := cli.WriteCoils(w.plan.UnitID, w.plan.CoilAddress, bits); err != nil {
			w.haveMask = false
			errs = append(errs, fmt.Sprintf(
				"writer: ep=%s unit=%d coils addr=%d err=%v",
				w.ep, w.plan.UnitID, w.plan.CoilAddress, err,
			))
		} else {
			w.haveMask = true
			w.lastMask = mask
		}
	}

	// ------------------------------------------------------------
	// FILTERED + BASELINE REGISTERS
	// ------------------------------------------------------------

	regs := make([]uint16, 2*touch.NumElectrodes)
	for i, e := range s.Electrodes {
		regs[i] = e.Filtered
		regs[touch.NumElectrodes+i] = e.Baseline
	}

	if err := cli.WriteRegisters(w.plan.UnitID, w.plan.RegisterAddress, regs); err != nil {
		errs = append(errs, fmt.Sprintf(
			"writer: ep=%s unit=%d registers addr=%d err=%v",
			w.ep, w.plan.UnitID, w.plan.RegisterAddress, err,
		))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}
