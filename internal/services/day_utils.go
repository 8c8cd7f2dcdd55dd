package services

import (
	"strings"
	"time"
)

const DayKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// EndOfDay returns 23:59:59 of the given day, the timestamp used to close an
// attack at the day boundary. It steps to the next calendar day and backs off
// one second, so DST transitions do not push the stop onto the wrong day.
func EndOfDay(value time.Time, location *time.Location) time.Time {
	start := DateAtLocation(value, location)
	return start.AddDate(0, 0, 1).Add(-time.Second)
}

func DayKey(value time.Time) string {
	return value.Format(DayKeyLayout)
}

func SameCalendarDay(a time.Time, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

func ParseDayKey(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	return time.ParseInLocation(DayKeyLayout, strings.TrimSpace(raw), location)
}
