package optimizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout    = "2006-01-02"
	minutesPerDay = 24 * 60
)

// ParseTimeToMinutes converts an "HH:MM" clock time to minutes since
// midnight (0-1439).
func ParseTimeToMinutes(text string) (int, error) {
	hh, mm, ok := strings.Cut(text, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", text)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", text)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", text)
	}
	return hours*60 + minutes, nil
}

// DurationHours computes a shift's whole-hour duration from its start and
// end clock offsets. An end before the start means the shift wraps past
// midnight; ending exactly at midnight yields a full positive duration.
func DurationHours(startMinutes, endMinutes int) int {
	d := endMinutes - startMinutes
	if d < 0 {
		d += minutesPerDay
	}
	return d / 60
}

// WeekKey maps a YYYY-MM-DD date to an identifier shared by all dates in
// the same ISO calendar week.
func WeekKey(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), nil
}
