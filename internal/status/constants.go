// internal/status/constants.go
package status

// Device Status Block layout constants.
// These values define the register layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the sensor health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last driver error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds how long (in seconds) the sensor has been in error.
const SlotSecondsInError = 2

// SlotTouchedMask holds the touched bitmask of the last sample.
const SlotTouchedMask = 3

// SlotSamplesHi and SlotSamplesLo hold the 32-bit sample counter.
const SlotSamplesHi = 4
const SlotSamplesLo = 5

// Slots 6-10 are reserved.

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

const (
	HealthUnknown  uint16 = 0 // boot, no sample yet
	HealthOK       uint16 = 1
	HealthError    uint16 = 2
	HealthStale    uint16 = 3 // running, but no sample for a while
	HealthDisabled uint16 = 4 // driver stopped
)

// ---- ERROR CODES ----

const (
	ErrorNone           uint16 = 0
	ErrorGeneric        uint16 = 1
	ErrorAddressUnknown uint16 = 2
	ErrorReadbackFail   uint16 = 3
	ErrorOvercurrent    uint16 = 4
	ErrorOutOfRange     uint16 = 5
	ErrorNotInited      uint16 = 6
)
