package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/store"
)

const (
	morningMark = "☀"
	eveningMark = "☾"
)

// dayMark returns the sun or moon marker for an entry's start time.
func dayMark(e model.Entry) string {
	if e.IsMorning() {
		return morningMark
	}
	return eveningMark
}

// printHeader writes the greeting line shown above every entry view.
func printHeader(w io.Writer, s *store.Store) {
	fmt.Fprintln(w, s.DisplayDate())
	total, err := s.TotalMinutes()
	if err != nil {
		fmt.Fprintf(w, "%s    total unavailable: %v\n", s.Greeting(), err)
		return
	}
	fmt.Fprintf(w, "%s    %d min logged total\n", s.Greeting(), total)
}

// printEntries writes one aligned row per entry.
func printEntries(w io.Writer, entries []model.Entry) {
	titleWidth, intervalWidth := 0, 0
	for _, e := range entries {
		titleWidth = max(titleWidth, runewidth.StringWidth(e.Title))
		intervalWidth = max(intervalWidth, runewidth.StringWidth(e.Interval()))
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %s %s  %s  %s\n",
			dayMark(e),
			runewidth.FillRight(e.Title, titleWidth),
			runewidth.FillRight(e.Interval(), intervalWidth),
			e.Tag,
		)
	}
}

// printList groups entries by date, in order of each date's first appearance.
func printList(w io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var dates []string
	byDate := map[string][]model.Entry{}
	for _, e := range entries {
		if _, ok := byDate[e.Date]; !ok {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	for _, d := range dates {
		fmt.Fprintln(w, d)
		printEntries(w, byDate[d])
	}
}

// exitCode maps an error to the process status: 1 for rejected input,
// 2 for everything else.
func exitCode(err error) int {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return 1
	}
	return 2
}
