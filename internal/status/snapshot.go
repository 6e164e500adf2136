// internal/status/snapshot.go
package status

import "time"

// Snapshot is the sensor status at one point in time.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16 `json:"health"`
	LastErrorCode  uint16 `json:"lastErrorCode"`
	SecondsInError uint16 `json:"secondsInError"`
	TouchedMask    uint16 `json:"touchedMask"`
	Samples        uint32 `json:"samples"`

	LastError  string    `json:"lastError,omitempty"`
	LastSample time.Time `json:"lastSample"`
}

// HealthName is the human readable form of a health code.
func HealthName(h uint16) string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthError:
		return "error"
	case HealthStale:
		return "stale"
	case HealthDisabled:
		return "stopped"
	default:
		return "unknown"
	}
}
