// internal/sensor/period.go
package sensor

import "math"

// samplePeriods maps sample periods (ms) to the driver's ESI encoding.
// Read-only.
var samplePeriods = map[int]uint8{
	1:   0,
	2:   1,
	4:   2,
	8:   3,
	16:  4,
	32:  5,
	64:  6,
	128: 7,
}

// snapPeriod rounds target up to the next power of two (13 -> 16, 3 -> 4).
// ok is false when target cannot be expressed as a table key.
func snapPeriod(target float64) (int, bool) {
	if math.IsNaN(target) || target <= 0 {
		return 0, false
	}
	p := math.Pow(2, math.Ceil(math.Log2(target)))
	if math.IsInf(p, 0) || p > math.MaxInt32 {
		return 0, false
	}
	return int(p), true
}

// encodePeriod returns the encoding to send for target, and whether the
// driver should be called at all.
//
// Encoding 0 (period 1) is treated the same as a missing entry, so a request
// for period 1 never reaches the driver. Existing callers depend on this.
func encodePeriod(target float64) (uint8, bool) {
	p, ok := snapPeriod(target)
	if !ok {
		return 0, false
	}
	enc, ok := samplePeriods[p]
	if !ok || enc == 0 {
		return 0, false
	}
	return enc, true
}
