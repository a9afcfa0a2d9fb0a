package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/excusedex/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, strings.TrimSpace(dateStr))
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseMonth parses a YYYY-MM month into the first day of that month.
func ParseMonth(monthStr string) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, strings.TrimSpace(monthStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", monthStr)
	}
	return t, nil
}

// MonthKey returns the YYYY-MM prefix shared by every date in t's month.
func MonthKey(t time.Time) string {
	return t.Format(constants.MonthFormat)
}

// StartOfMonth returns midnight on the first day of t's month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts t by n calendar months, anchored to the first of the month
// so that e.g. Mar 31 minus one month is February, not March 3.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeOfDay splits an HH:MM string into hour and minute.
func ParseTimeOfDay(timeStr string) (hour, minute int, err error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", timeStr, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
