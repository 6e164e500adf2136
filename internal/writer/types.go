// internal/writer/types.go
package writer

import "github.com/tamzrod/mpr121d/internal/touch"

// StatusPlan places the device status block in the target's holding registers.
type StatusPlan struct {
	BaseSlot   uint16
	DeviceName string
}

// Plan is the fully-built write plan for one sensor.
//
// Layout on the target unit:
//
//	coils     CoilAddress     + 0..11   touched flag per electrode
//	holding   RegisterAddress + 0..11   filtered data per electrode
//	holding   RegisterAddress + 12..23  baseline per electrode
//	holding   BaseSlot*20     + 0..19   status block (optional)
type Plan struct {
	UnitID          uint8
	CoilAddress     uint16
	RegisterAddress uint16
	Status          *StatusPlan
}

// Writer delivers samples to a target.
type Writer interface {
	Write(s touch.Sample) error
}
