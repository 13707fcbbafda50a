// internal/booking/timeslot.go
package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotLabelError reports an invalid slot label selection.
type SlotLabelError struct {
	Reason string
}

func (e SlotLabelError) Error() string {
	return fmt.Sprintf("invalid time slots: %s", e.Reason)
}

// SlotRange translates a calendar date plus an ordered list of hour labels
// ("14:00", "15:00", ...) into a half-open [start, end) range: start is the
// first label's hour, end is the last label's hour plus one, minutes and
// seconds zeroed. Each label stands for one full hour.
//
// Labels must be well formed, on the hour, and contiguous ascending. A gap in
// the selection would otherwise be silently absorbed into the range and
// mis-price the reservation, so it is rejected here.
func SlotRange(date time.Time, labels []string) (time.Time, time.Time, error) {
	if len(labels) == 0 {
		return time.Time{}, time.Time{}, SlotLabelError{Reason: "at least one time slot is required"}
	}

	hours := make([]int, len(labels))
	for i, label := range labels {
		hour, err := parseHourLabel(label)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		hours[i] = hour
	}

	for i := 1; i < len(hours); i++ {
		if hours[i] != hours[i-1]+1 {
			return time.Time{}, time.Time{}, SlotLabelError{
				Reason: fmt.Sprintf("slots must be contiguous ascending hours, got %q after %q", labels[i], labels[i-1]),
			}
		}
	}

	year, month, day := date.Date()
	start := time.Date(year, month, day, hours[0], 0, 0, 0, date.Location())
	end := time.Date(year, month, day, hours[len(hours)-1]+1, 0, 0, 0, date.Location())
	return start, end, nil
}

// parseHourLabel parses "HH:MM" where MM must be "00": slots are hour-aligned.
func parseHourLabel(label string) (int, error) {
	parts := strings.Split(strings.TrimSpace(label), ":")
	if len(parts) != 2 {
		return 0, SlotLabelError{Reason: fmt.Sprintf("%q is not an HH:MM label", label)}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, SlotLabelError{Reason: fmt.Sprintf("%q has an invalid hour", label)}
	}
	if parts[1] != "00" {
		return 0, SlotLabelError{Reason: fmt.Sprintf("%q is not aligned to the hour", label)}
	}
	return hour, nil
}
