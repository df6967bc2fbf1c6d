package scheduling

import (
	"fmt"
	"sort"

	"bookline/models"
)

// ValidateWeeklyAvailability checks an owner-submitted template: known day
// names, well-formed HH:MM bounds, start < end, and no overlapping ranges
// within a day. Violations come back verbatim as ValidationErrors for the
// owner surface to display.
func ValidateWeeklyAvailability(days []models.DayAvailability) error {
	seen := map[models.Weekday]bool{}
	for _, d := range days {
		if !models.IsValidWeekday(d.Day) {
			return NewValidationError(fmt.Sprintf("unknown day name %q", d.Day))
		}
		if seen[d.Day] {
			return NewValidationError(fmt.Sprintf("duplicate entry for %s", d.Day))
		}
		seen[d.Day] = true

		ranges := make([]models.TimeRange, len(d.Ranges))
		copy(ranges, d.Ranges)
		for _, r := range ranges {
			start, end := minutesOfDay(r.Start), minutesOfDay(r.End)
			if start < 0 || end < 0 {
				return NewValidationError(fmt.Sprintf("%s: invalid range %s-%s, expected HH:MM", d.Day, r.Start, r.End))
			}
			if start >= end {
				return NewValidationError(fmt.Sprintf("%s: range %s-%s must start before it ends", d.Day, r.Start, r.End))
			}
		}
		sort.Slice(ranges, func(i, j int) bool {
			return minutesOfDay(ranges[i].Start) < minutesOfDay(ranges[j].Start)
		})
		for i := 1; i < len(ranges); i++ {
			if minutesOfDay(ranges[i].Start) < minutesOfDay(ranges[i-1].End) {
				return NewValidationError(fmt.Sprintf("%s: ranges %s-%s and %s-%s overlap",
					d.Day, ranges[i-1].Start, ranges[i-1].End, ranges[i].Start, ranges[i].End))
			}
		}
	}
	return nil
}

// ValidateServices checks an owner-submitted catalog and fills defaults:
// capacity 1 when unset, opaque ids assigned by the caller.
func ValidateServices(services []models.Service) error {
	names := map[string]bool{}
	for _, svc := range services {
		if svc.Name == "" {
			return NewValidationError("service name is required")
		}
		if names[svc.Name] {
			return NewValidationError(fmt.Sprintf("duplicate service name %q", svc.Name))
		}
		names[svc.Name] = true
		if svc.DurationMinutes <= 0 {
			return NewValidationError(fmt.Sprintf("service %q: duration must be positive", svc.Name))
		}
		if svc.MaxCapacity < 0 {
			return NewValidationError(fmt.Sprintf("service %q: capacity cannot be negative", svc.Name))
		}
	}
	return nil
}
