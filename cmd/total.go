package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/timecalc"
)

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the total time logged",
	Args:  cobra.NoArgs,
	RunE:  runTotal,
}

func runTotal(cmd *cobra.Command, args []string) error {
	s := newStore()

	total, err := s.TotalMinutes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d min logged total (%s)\n", total, timecalc.FormatDuration(total))
	return nil
}
