package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/store"
	"github.com/Tiliavir/time-master/internal/timecalc"
)

var reportFormat string

const reportTagWidth = 20

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time logged per tag",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

// tagReport is the JSON shape of a report.
type tagReport struct {
	Date         string           `json:"date"`
	Tags         []store.TagTotal `json:"tags"`
	TotalMinutes int              `json:"total_minutes"`
}

func runReport(cmd *cobra.Command, args []string) error {
	s := newStore()

	totals, err := s.TagTotals()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	if err := writeReport(cmd.OutOrStdout(), reportFormat, s.CurrentDate(), totals); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

func writeReport(w io.Writer, format, date string, totals []store.TagTotal) error {
	grandTotal := 0
	for _, t := range totals {
		grandTotal += t.Minutes
	}

	switch format {
	case "csv":
		fmt.Fprintln(w, "tag,duration_minutes")
		for _, t := range totals {
			fmt.Fprintf(w, "%s,%d\n", csvEscape(t.Tag), t.Minutes)
		}
	case "json":
		if totals == nil {
			totals = []store.TagTotal{}
		}
		data, err := sonic.ConfigStd.MarshalIndent(tagReport{Date: date, Tags: totals, TotalMinutes: grandTotal}, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md":
		fmt.Fprintf(w, "Tags as of %s\n", date)
		fmt.Fprintln(w, "--------------------------------")
		for _, t := range totals {
			fmt.Fprintln(w, runewidth.FillRight(t.Tag, reportTagWidth)+timecalc.FormatDuration(t.Minutes))
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintln(w, runewidth.FillRight("Total", reportTagWidth)+timecalc.FormatDuration(grandTotal))
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", format)
	}
	return nil
}
