package mpr121

// Bus addresses selectable with the ADDR pin.
const (
	AddressGND = 0x5A
	AddressVDD = 0x5B
	AddressSDA = 0x5C
	AddressSCL = 0x5D

	DefaultAddress = AddressSDA
)

const (
	regTouchStatusL = 0x00
	regTouchStatusH = 0x01
	regFiltData0L   = 0x04
	regBaseline0    = 0x1E

	// baseline filter, rising / falling / touched
	regMHDR = 0x2B
	regNHDR = 0x2C
	regNCLR = 0x2D
	regFDLR = 0x2E
	regMHDF = 0x2F
	regNHDF = 0x30
	regNCLF = 0x31
	regFDLF = 0x32
	regNHDT = 0x33
	regNCLT = 0x34
	regFDLT = 0x35

	regTouchTh0   = 0x41
	regReleaseTh0 = 0x42
	regDebounce   = 0x5B
	regConfig1    = 0x5C
	regConfig2    = 0x5D
	regECR        = 0x5E

	regGPIOFirst = 0x73
	regGPIOLast  = 0x7A

	regAutoConfig0 = 0x7B
	regUpLimit     = 0x7D
	regLowLimit    = 0x7E
	regTargetLimit = 0x7F

	regSoftReset = 0x80
)

const (
	softResetValue = 0x63

	// CONFIG2 reads back 0x24 after a soft reset.
	config2ResetValue = 0x24

	// ESI bits of CONFIG2.
	esiMask = 0x07

	// over current flag, bit 7 of the high touch status byte
	ovcfBit = 0x80

	// baseline tracking on, all 12 electrodes enabled
	ecrRunAll = 0x80 | 12
)
