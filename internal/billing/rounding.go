// Package billing holds the billable-time arithmetic shared by the
// timer stop and manual entry paths.
package billing

import (
	"fmt"
	"math"
)

// Increments a firm may choose from, in hours.
var validIncrements = []float64{0.1, 0.25, 0.5, 1.0}

// ValidIncrement reports whether h is an allowed billing increment.
func ValidIncrement(h float64) bool {
	for _, v := range validIncrements {
		if h == v {
			return true
		}
	}
	return false
}

// RoundToBillingIncrement rounds exact minutes up to the nearest billing
// increment. Any fraction of an increment bills as a full increment
// (legal-billing convention: ceiling, never floor or nearest).
// e.g. 13 minutes at 0.1hr (6 min) increments -> ceil(13/6)*0.1 = 0.3 hours.
// The result is rounded to two decimals so every multiple of the valid
// increments stays exact (0.25, 0.75) instead of drifting into float
// artifacts like 0.30000000000000004.
func RoundToBillingIncrement(exactMinutes, incrementHours float64) float64 {
	incrementMinutes := incrementHours * 60
	increments := math.Ceil(exactMinutes / incrementMinutes)
	return math.Round(increments*incrementHours*100) / 100
}

// FormatDuration renders minutes as "Xh Ym" or "Ym".
func FormatDuration(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", int(math.Round(minutes)))
	}
	h := int(minutes) / 60
	m := int(math.Round(math.Mod(minutes, 60)))
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatElapsed renders elapsed seconds as "H:MM:SS", or "M:SS" under
// an hour.
func FormatElapsed(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
