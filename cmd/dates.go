package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/timecalc"
)

var (
	datesSorted bool
	tagsKnown   bool
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List the dates that have entries",
	Args:  cobra.NoArgs,
	RunE:  runDates,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags that have entries",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	datesCmd.Flags().BoolVar(&datesSorted, "sorted", false, "Sort chronologically instead of by first entry")
	tagsCmd.Flags().BoolVar(&tagsKnown, "known", false, "List the tag set offered for new entries")
}

func runDates(cmd *cobra.Command, args []string) error {
	s := newStore()

	dates := s.DistinctDates()
	if datesSorted {
		timecalc.SortDates(dates)
	}
	for _, d := range dates {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s%d\n", d, len(s.ByDate(d)))
	}
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	s := newStore()

	if tagsKnown {
		for _, t := range s.Tags() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	}
	for _, t := range s.DistinctTags() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s%d\n", t, len(s.ByTag(t)))
	}
	return nil
}
