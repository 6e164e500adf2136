// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/mpr121d/internal/config"
	wmodbus "github.com/tamzrod/mpr121d/internal/writer/modbus"
)

// BuildPlan converts the modbus config section into a write Plan.
// Assumes config has already been validated and normalized.
func BuildPlan(m cfg.ModbusConfig) (Plan, error) {
	if m.Endpoint == "" {
		return Plan{}, errors.New("writer: modbus endpoint required")
	}

	plan := Plan{
		UnitID:          m.UnitID,
		CoilAddress:     m.CoilAddress,
		RegisterAddress: m.RegisterAddress,
	}
	if m.StatusSlot != nil {
		plan.Status = &StatusPlan{
			BaseSlot:   *m.StatusSlot,
			DeviceName: m.DeviceName,
		}
	}
	return plan, nil
}

// Build connects to the endpoint and returns the data writer, the status
// writer (nil when disabled) and a closer for the connection.
func Build(m cfg.ModbusConfig) (Writer, StatusWriter, func() error, error) {
	plan, err := BuildPlan(m)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: m.Endpoint,
		Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	clients := map[string]endpointClient{m.Endpoint: c}

	var sw StatusWriter
	if dsw, ok := NewDeviceStatusWriter(plan, m.Endpoint, clients); ok {
		sw = dsw
	}

	return New(plan, m.Endpoint, clients), sw, c.Close, nil
}
