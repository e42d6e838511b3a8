package medicine

import (
	"errors"
	"fmt"
	"time"
)

var ErrParseClockTime = errors.New("invalid clock time, expected HH:MM")

// CLOCK_TIME_LAYOUT is the single canonical 24-hour format schedule times
// are stored and compared in. Conversion happens at ingress points only;
// two ClockTime values always compare as plain equality.
const CLOCK_TIME_LAYOUT = "15:04"

type ClockTime struct {
	hour   int
	minute int
}

func NewClockTime(hour int, minute int) (ct ClockTime, err error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ct, ErrParseClockTime
	}
	return ClockTime{hour: hour, minute: minute}, nil
}

// ParseClockTime accepts the canonical form only. Values like "8:00" or
// "08:00 AM" are rejected rather than normalized, so entries created under
// another convention can never silently enter the store.
func ParseClockTime(value string) (ct ClockTime, err error) {
	parsed, err := time.Parse(CLOCK_TIME_LAYOUT, value)
	if err != nil {
		return ct, ErrParseClockTime
	}
	ct = ClockTime{hour: parsed.Hour(), minute: parsed.Minute()}
	if ct.String() != value {
		return ct, ErrParseClockTime
	}
	return ct, nil
}

// ClockTimeOf computes the due key for an instant.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{hour: t.Hour(), minute: t.Minute()}
}

func (ct ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", ct.hour, ct.minute)
}
