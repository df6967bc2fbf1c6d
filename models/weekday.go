package models

import (
	"fmt"
	"time"
)

// Weekday is the fixed day-name enumeration used by weekly availability
// templates. Schedules are matched against these constants, never against
// runtime locale output, so weekday resolution cannot drift between
// environments.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// weekdayByTime maps time.Weekday onto the fixed enumeration.
var weekdayByTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// AllWeekdays lists the enumeration in template order, Monday first.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOfDate resolves a calendar date ("2006-01-02") to its Weekday.
func WeekdayOfDate(date string) (Weekday, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return weekdayByTime[t.Weekday()], nil
}

// IsValidWeekday reports whether name is part of the enumeration.
func IsValidWeekday(name Weekday) bool {
	for _, d := range AllWeekdays {
		if d == name {
			return true
		}
	}
	return false
}
