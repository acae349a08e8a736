package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored seasons",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	overviews, err := db.SeasonOverviews()
	if err != nil {
		return fmt.Errorf("season overviews: %w", err)
	}
	if len(overviews) == 0 {
		fmt.Fprintln(os.Stdout, "No seasons stored yet. Run 'pwhlmetrics scrape' to add them.")
		return nil
	}
	report.PrintSeasonOverviews(os.Stdout, overviews)
	return nil
}
