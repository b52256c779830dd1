package timewindow

import (
	"fmt"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"

	minutesPerDay = 24 * 60
)

// Clock is a time of day in the venue's local timezone.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a HH:MM string
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ClockOf returns the local time of day of an absolute instant
func ClockOf(t time.Time, loc *time.Location) Clock {
	local := t.In(loc)
	return Clock{Hour: local.Hour(), Minute: local.Minute()}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the clock as minutes since midnight
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is strictly earlier in the day than o
func (c Clock) Before(o Clock) bool {
	return c.Minutes() < o.Minutes()
}

// AddMinutes returns the clock shifted by m minutes, wrapping at midnight
func (c Clock) AddMinutes(m int) Clock {
	total := ((c.Minutes()+m)%minutesPerDay + minutesPerDay) % minutesPerDay
	return Clock{Hour: total / 60, Minute: total % 60}
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats an instant as its local YYYY-MM-DD date
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// ToAbsolute combines a local calendar day and a time of day into an
// absolute instant using the venue's timezone rules. This is the single
// source of truth for local-to-absolute conversion: during a DST spring
// gap the instant is normalized forward by the Go time package.
func ToAbsolute(day time.Time, c Clock, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc)
}
