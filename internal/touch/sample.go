// internal/touch/sample.go
package touch

import "time"

// NumElectrodes is the number of sensing electrodes on an MPR121.
const NumElectrodes = 12

// Electrode is the state of one electrode at sample time.
// JSON keys match the event payload consumers already expect.
type Electrode struct {
	Touched          bool   `json:"isTouched"`
	NewTouch         bool   `json:"isNewTouch"`
	NewRelease       bool   `json:"isNewRelease"`
	Filtered         uint16 `json:"filtered"`
	Baseline         uint16 `json:"baseline"`
	TouchThreshold   uint8  `json:"touchThreshold"`
	ReleaseThreshold uint8  `json:"releaseThreshold"`
}

// Sample is the result of one step.
type Sample struct {
	At         time.Time                `json:"at"`
	Electrodes [NumElectrodes]Electrode `json:"electrodes"`
}

// TouchedMask packs the touched flags, bit i = electrode i.
func (s Sample) TouchedMask() uint16 {
	var m uint16
	for i, e := range s.Electrodes {
		if e.Touched {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Transitions returns the indices of electrodes that were newly touched and
// newly released in this sample.
func (s Sample) Transitions() (touched, released []int) {
	for i, e := range s.Electrodes {
		if e.NewTouch {
			touched = append(touched, i)
		}
		if e.NewRelease {
			released = append(released, i)
		}
	}
	return touched, released
}
