package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// Date returns midnight UTC of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FirstDay returns January 1st of year at midnight UTC
func FirstDay(year int) time.Time {
	return Date(year, time.January, 1)
}

// DayOfYear returns the date offset days after January 1st of year
func DayOfYear(year, offset int) time.Time {
	return FirstDay(year).AddDate(0, 0, offset)
}

// DaysBetween returns the number of whole calendar days from -> to.
// The result is negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	f := Date(from.Year(), from.Month(), from.Day())
	t := Date(to.Year(), to.Month(), to.Day())
	return int(t.Sub(f).Hours() / 24)
}

// InYear reports whether date falls inside the calendar year
func InYear(date time.Time, year int) bool {
	return date.Year() == year
}
