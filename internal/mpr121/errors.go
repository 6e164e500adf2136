package mpr121

import "errors"

var (
	ErrAddressUnknown = errors.New("mpr121: incorrect address")
	ErrReadbackFail   = errors.New("mpr121: readback failure")
	ErrOvercurrent    = errors.New("mpr121: overcurrent on REXT pin")
	ErrOutOfRange     = errors.New("mpr121: electrode out of range")
	ErrNotInited      = errors.New("mpr121: not initialised")
)
