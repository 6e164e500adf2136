// Package bus opens host I2C buses through periph.
package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Open initializes the host drivers once and opens the named I2C bus.
// An empty name opens the first bus available.
func Open(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bus: host init: %w", err)
	}

	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bus: open %q: %w (available: %v)", name, err, Names())
	}
	return b, nil
}

// Names lists registered I2C buses, for error messages and logs.
func Names() []string {
	var out []string
	for _, ref := range i2creg.All() {
		out = append(out, ref.Name)
	}
	return out
}
