package timecalc

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Display layouts shared by the store and the presentation layer.
const (
	ClockLayout       = "3:04 PM"
	DateLayout        = "Jan 2, 2006"
	DisplayDateLayout = "Mon | Jan 2, 2006"
)

// Clock is the single source of wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock, optionally converted to Location.
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time.
func (c SystemClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// GenerateID creates a unique entry ID.
func GenerateID() string {
	return uuid.New().String()
}

// FormatClock formats t as a 12-hour time of day like "9:05 AM".
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// ParseClock parses a 12-hour time of day. Leading zeros ("09:05 AM") and a
// lowercase designator are accepted.
func ParseClock(s string) (time.Time, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{ClockLayout, "03:04 PM", "3:04PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q (want e.g. %q)", s, "9:30 AM")
}

// FormatDate formats t as the date key used to group entries.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date key such as "Jun 15, 2020".
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want e.g. %q)", s, "Jun 15, 2020")
	}
	return t, nil
}

// FormatDisplayDate formats t for headers, e.g. "Mon | Jun 15, 2020".
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// IntervalMinutes returns the minutes between start and end, rounded to the
// nearest minute. The result is negative when end precedes start.
func IntervalMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// Greeting returns the greeting for the half of the day t falls in.
func Greeting(t time.Time) string {
	if t.Format("PM") == "AM" {
		return "Good morning!"
	}
	return "Good afternoon!"
}

// FormatDuration formats minutes as a human-readable string like "1h 40m" or "45m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// SortDates sorts date keys chronologically in place. Keys that do not parse
// keep their relative order after all parsable ones.
func SortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		a, errA := ParseDate(dates[i])
		b, errB := ParseDate(dates[j])
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.Before(b)
	})
}
