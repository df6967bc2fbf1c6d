package scheduling

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// SplitStartTime validates a naive "2006-01-02T15:04" value and returns its
// date and clock components.
func SplitStartTime(startTime string) (date string, clock string, err error) {
	parts := strings.SplitN(startTime, "T", 2)
	if len(parts) != 2 {
		return "", "", NewValidationError(fmt.Sprintf("invalid startTime %q, expected YYYY-MM-DDTHH:mm", startTime))
	}
	date, clock = parts[0], parts[1]
	if _, perr := time.Parse(dateLayout, date); perr != nil {
		return "", "", NewValidationError(fmt.Sprintf("invalid date %q", date))
	}
	if _, perr := time.Parse(clockLayout, clock); perr != nil {
		return "", "", NewValidationError(fmt.Sprintf("invalid time %q", clock))
	}
	return date, clock, nil
}

// minutesOfDay converts a valid "HH:MM" clock to minutes since midnight.
func minutesOfDay(clock string) int {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// CalculateEndTime adds durationMinutes to a naive local (date, clock) pair
// using pure component arithmetic. The day rollover is handled explicitly on
// the date component; no timezone-aware datetime is ever constructed, so the
// result cannot be shifted by DST or a double-applied offset.
func CalculateEndTime(date string, clock string, durationMinutes int) (endDate string, endClock string, err error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", "", NewValidationError(fmt.Sprintf("invalid date %q", date))
	}
	start := minutesOfDay(clock)
	if start < 0 {
		return "", "", NewValidationError(fmt.Sprintf("invalid time %q", clock))
	}

	total := start + durationMinutes
	days := total / (24 * 60)
	rem := total % (24 * 60)
	if rem < 0 {
		rem += 24 * 60
		days--
	}

	if days != 0 {
		d = d.AddDate(0, 0, days)
	}
	return d.Format(dateLayout), fmt.Sprintf("%02d:%02d", rem/60, rem%60), nil
}

// NormalizeDateTime appends ":00" seconds to a "YYYY-MM-DDTHH:mm" value when
// absent, the form the calendar API expects for a civil dateTime.
func NormalizeDateTime(dateTime string) string {
	if len(dateTime) == len("2006-01-02T15:04") {
		return dateTime + ":00"
	}
	return dateTime
}
