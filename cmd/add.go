package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/model"
	"github.com/Tiliavir/time-master/internal/store"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

var (
	addStart    string
	addEnd      string
	addTitle    string
	addTag      string
	addOther    string
	addDuration string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an activity for today",
	Long: `Add logs an interval for today and prints today's entries.

The duration is computed from --start and --end unless --duration is given,
in which case the times are stored as typed. Pick the "Other" tag together
with --other to use a tag outside the known set.`,
	Example: `  tm add --start "9:00 AM" --end "10:30 AM" --title Reading --tag Mind
  tm add --start "6:00 PM" --end "7:00 PM" --tag Other --other Gardening`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", `Start time, e.g. "9:00 AM"`)
	addCmd.Flags().StringVar(&addEnd, "end", "", `End time, e.g. "10:30 AM"`)
	addCmd.Flags().StringVar(&addTitle, "title", "", "What you did")
	addCmd.Flags().StringVar(&addTag, "tag", "", "One of the known tags (see tm tags --known)")
	addCmd.Flags().StringVar(&addOther, "other", "", "Free-text tag used when --tag is Other")
	addCmd.Flags().StringVar(&addDuration, "duration", "", "Duration in minutes, overriding the computed one")
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := logEntry(cmd.OutOrStdout(), newStore()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	return nil
}

// logEntry adds the entry described by the add flags to s, then prints a
// confirmation and today's entries to out.
func logEntry(out io.Writer, s *store.Store) error {
	if addTag != "" && !slices.Contains(s.Tags(), addTag) {
		return &store.ValidationError{
			Field:  "tag",
			Value:  addTag,
			Reason: fmt.Sprintf("unknown; use --tag %s --other %q for a custom tag", s.OtherTag(), addTag),
		}
	}

	unsubscribe := s.Subscribe(func(ev store.Event) {
		if ev.Kind == store.EntryAdded {
			fmt.Fprintf(out, "Logged %q (%s) %s\n\n", ev.Entry.Title, ev.Entry.Tag, ev.Entry.Interval())
		}
	})
	defer unsubscribe()

	if _, err := addEntry(s); err != nil {
		return err
	}

	printToday(out, s)
	return nil
}

func addEntry(s *store.Store) (model.Entry, error) {
	if addDuration != "" {
		tag := addTag
		if tag == s.OtherTag() {
			tag = addOther
		}
		return s.AddValidated(addStart, addEnd, addDuration, "", addTitle, tag)
	}

	start, err := timecalc.ParseClock(addStart)
	if err != nil {
		return model.Entry{}, &store.ValidationError{Field: "start", Value: addStart, Reason: "not a 12-hour time"}
	}
	end, err := timecalc.ParseClock(addEnd)
	if err != nil {
		return model.Entry{}, &store.ValidationError{Field: "end", Value: addEnd, Reason: "not a 12-hour time"}
	}
	return s.Record(start, end, addTitle, addTag, addOther)
}
