package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display row counts for every table plus a per-season breakdown of stored
games, shots and stat rows.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := db.TableCounts()
	if err != nil {
		return fmt.Errorf("table counts: %w", err)
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		fmt.Fprintln(os.Stdout, "Database is empty. Run 'pwhlmetrics scrape' to populate it.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	report.PrintTableCounts(os.Stdout, counts)

	overviews, err := db.SeasonOverviews()
	if err != nil {
		return fmt.Errorf("season overviews: %w", err)
	}
	if len(overviews) > 0 {
		fmt.Fprintf(os.Stdout, "\n--- Seasons ---\n\n")
		report.PrintSeasonOverviews(os.Stdout, overviews)
	}
	return nil
}
