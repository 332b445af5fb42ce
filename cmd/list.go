package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-master/internal/model"
)

var (
	listDate string
	listTag  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries grouped by date",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", `Only entries logged on this date (e.g. "Jun 15, 2020")`)
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only entries with this tag")
}

func runList(cmd *cobra.Command, args []string) error {
	s := newStore()

	entries := s.Filter(func(e model.Entry) bool {
		return (listDate == "" || e.Date == listDate) && (listTag == "" || e.Tag == listTag)
	})

	printList(cmd.OutOrStdout(), entries)
	return nil
}
