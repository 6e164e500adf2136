package mpr121

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddress parses a hex bus address such as "5c" or "0x5C".
// An empty string yields DefaultAddress.
func ParseAddress(s string) (uint16, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if h == "" {
		return DefaultAddress, nil
	}
	v, err := strconv.ParseUint(h, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrAddressUnknown, s, err)
	}
	if v < AddressGND || v > AddressSCL {
		return 0, fmt.Errorf("%w %#x: want 0x5a-0x5d", ErrAddressUnknown, v)
	}
	return uint16(v), nil
}
