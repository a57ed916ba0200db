package board

import (
	"strings"
	"time"
)

// Day is the unit used for all day counts.
const Day = 24 * time.Hour

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate parses the date strings found in snapshots. Bare dates and
// timestamps without an offset are read as UTC. It reports false for empty
// or unparsable input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// DaysBetween returns floor((to - from) / 24h). The result is negative when
// to is before from.
func DaysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / Day)

	if d < 0 && d%Day != 0 {
		days--
	}

	return days
}
