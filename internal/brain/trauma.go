package brain

import "strings"

// Trauma-state labels emitted by the backend. The set is open: the ring
// renderer matches substrings, not exact labels, so new backend phrasings
// still trip the alert branch.
const (
	TraumaStable      = "STABLE"
	TraumaEscalating  = "ESCALATING"
	TraumaFirefighter = "🔥 FIREFIGHTER"
	TraumaRecovering  = "RECOVERING"
)

// alertMarkers are matched case-insensitively anywhere in the label.
var alertMarkers = []string{"escalat", "firefight", "critical"}

// TraumaAlert reports whether a trauma label should drive the red alert
// ramp. Checked before the entropy threshold, so an alerting label wins
// even at low entropy.
func TraumaAlert(label string) bool {
	if label == "" {
		return false
	}
	l := strings.ToLower(label)
	for _, m := range alertMarkers {
		if strings.Contains(l, m) {
			return true
		}
	}
	return false
}
