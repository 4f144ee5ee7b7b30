package common

import (
	"strings"
	"time"
)

// monthFirstLayouts are tried before dayFirstLayouts so that an ambiguous
// date like 03/04/2024 reads as March 4th.
var monthFirstLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01/02/06",
	"1/2/06",
	"01/02/06 15:04",
	"1/2/06 15:04",
	"01-02-06",
	"1-2-06",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
}

// ParseDate parses a calendar date, trying month-first layouts and then
// falling back to day-first layouts. The time of day is discarded.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if t, ok := parseWith(raw, monthFirstLayouts); ok {
		return t, true
	}
	return parseWith(raw, dayFirstLayouts)
}

func parseWith(raw string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
