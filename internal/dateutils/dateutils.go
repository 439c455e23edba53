// Package dateutils parses the date and time fragments found in Indian
// bank notification text.
package dateutils

import (
	"strconv"
	"strings"
	"time"
)

// Notification dates arrive as DD-MM-YYYY and times as 24-hour HHMM
// with no separator.
const (
	DateLayoutNotification = "02-01-2006"
	DateLayoutISO          = "2006-01-02"
)

// ParseNotificationDate parses a DD-MM-YYYY date string. The boolean is
// false when the string does not match the layout or names an
// impossible calendar date.
func ParseNotificationDate(dateStr string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayoutNotification, strings.TrimSpace(dateStr), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ComposeTimestamp combines a DD-MM-YYYY date and an HHMM time into a
// single local instant. Either part failing to parse fails the whole
// composition.
func ComposeTimestamp(dateStr, timeStr string) (time.Time, bool) {
	day, ok := ParseNotificationDate(dateStr)
	if !ok {
		return time.Time{}, false
	}
	hour, minute, ok := parseClock(timeStr)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), true
}

func parseClock(timeStr string) (hour, minute int, ok bool) {
	timeStr = strings.TrimSpace(timeStr)
	if len(timeStr) != 4 {
		return 0, 0, false
	}
	hour, errH := strconv.Atoi(timeStr[:2])
	minute, errM := strconv.Atoi(timeStr[2:])
	if errH != nil || errM != nil || hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}
