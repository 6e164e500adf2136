// internal/writer/modbus/client_test.go
package modbus

import (
	"bytes"
	"testing"
)

func TestPackBits(t *testing.T) {
	bits := make([]bool, 12)
	bits[0], bits[3], bits[8], bits[11] = true, true, true, true

	got := PackBits(bits)
	if want := []byte{0x09, 0x09}; !bytes.Equal(got, want) {
		t.Fatalf("got=%x want=%x", got, want)
	}
}

func TestPackRegisters(t *testing.T) {
	got := PackRegisters([]uint16{0x0102, 0xA0B0})
	if want := []byte{0x01, 0x02, 0xA0, 0xB0}; !bytes.Equal(got, want) {
		t.Fatalf("got=%x want=%x", got, want)
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
