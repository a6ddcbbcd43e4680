package util

import (
	"fmt"
	"time"
)

// AddMonths returns the first day of the month that is months after start's month
func AddMonths(start time.Time, months int) time.Time {
	return time.Date(start.Year(), start.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
}

// FormatMonthYear formats a date the way payoff dates are shown, e.g. "Mar 2031"
func FormatMonthYear(t time.Time) string {
	return t.Format("Jan 2006")
}

// FirstOfMonth returns the first day of the given year/month, or nil when month is unset
func FirstOfMonth(year, month int) *time.Time {
	if month < 1 || month > 12 || year <= 0 {
		return nil
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// FormatYearsMonths renders a duration as "3 years and 4 months".
// The months part is omitted when it is zero.
func FormatYearsMonths(years, months int) string {
	s := fmt.Sprintf("%d %s", years, plural(years, "year"))
	if months > 0 {
		s += fmt.Sprintf(" and %d %s", months, plural(months, "month"))
	}
	return s
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
