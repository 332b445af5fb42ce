package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	s := newStore()

	if err := writeExport(cmd.OutOrStdout(), exportFormat, s.Entries()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

func writeExport(w io.Writer, format string, entries []model.Entry) error {
	switch format {
	case "json":
		if entries == nil {
			entries = []model.Entry{}
		}
		data, err := sonic.ConfigStd.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md":
		printList(w, entries)
	case "csv":
		printCSV(w, entries)
	default:
		return fmt.Errorf("unknown format %q (want csv, json or md)", format)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.Entry) {
	fmt.Fprintln(w, "date,start,end,duration_minutes,title,tag")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s\n",
			csvEscape(e.Date),
			csvEscape(e.Start),
			csvEscape(e.End),
			csvEscape(e.Duration),
			csvEscape(e.Title),
			csvEscape(e.Tag),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
