package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/store"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entries",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func runToday(cmd *cobra.Command, args []string) error {
	printToday(cmd.OutOrStdout(), newStore())
	return nil
}

// printToday writes the header followed by today's entries.
func printToday(out io.Writer, s *store.Store) {
	printHeader(out, s)
	fmt.Fprintln(out)

	entries := s.TodayEntries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Nothing logged today.")
		return
	}
	printEntries(out, entries)
}
