package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find entries containing text in any field",
	Long: `Search matches the text, case-sensitively, against the start and end
times, duration, date, title and tag of every entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	s := newStore()

	entries := s.Search(args[0])
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No entries match %q.\n", args[0])
		return nil
	}
	printList(cmd.OutOrStdout(), entries)
	return nil
}
