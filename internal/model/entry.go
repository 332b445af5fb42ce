package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry represents a single logged activity interval. Times, duration and
// date are kept in their display form; see the timecalc package for parsing.
type Entry struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Tag      string `json:"tag"`
}

// Minutes parses the stored duration. The returned error is a *strconv.NumError
// so callers can wrap it with their own context.
func (e Entry) Minutes() (int, error) {
	return strconv.Atoi(strings.TrimSpace(e.Duration))
}

// IsMorning reports whether the start time carries the AM designator.
func (e Entry) IsMorning() bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(e.Start)), "AM")
}

// Interval returns the row text shown under an entry's title.
func (e Entry) Interval() string {
	return fmt.Sprintf("%s - %s (%s min)", e.Start, e.End, e.Duration)
}

// Matches reports whether text occurs in any of the entry's display fields.
// An empty search matches everything.
func (e Entry) Matches(text string) bool {
	if text == "" {
		return true
	}
	for _, field := range []string{e.Start, e.End, e.Duration, e.Date, e.Title, e.Tag} {
		if strings.Contains(field, text) {
			return true
		}
	}
	return false
}
