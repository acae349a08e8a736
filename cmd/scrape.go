package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/ingest"
)

var (
	scrapeSeason int
	scrapeRate   float64
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape league data from the HockeyTech feed",
	Long: `Fetch seasons, teams, rosters, schedules and season stat tables from the
HockeyTech feed and store them locally. By default every season is scraped;
use --season to restrict to one.

Season stat rows overwrite existing ones and reset derived columns, so
re-run 'xg', 'gsax', 'advanced' and 'analytics' after scraping.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeSeason, "season", 0, "season id to scrape (0 = all)")
	scrapeCmd.Flags().Float64Var(&scrapeRate, "rate", 5, "max feed requests per second")
}

func runScrape(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	fc := feedClient(scrapeRate)

	seasonReport, err := ingest.Seasons(ctx, fc, db)
	if err != nil {
		return fmt.Errorf("scrape seasons: %w", err)
	}
	fmt.Fprintf(os.Stdout, "seasons: %s\n", seasonReport.Summary())

	seasonIDs, err := db.SeasonIDs()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	if scrapeSeason != 0 {
		seasonIDs = []int{scrapeSeason}
	}

	for _, id := range seasonIDs {
		slog.Info("scraping season", "season_id", id)
		report, err := ingest.Season(ctx, fc, db, id)
		if err != nil {
			return fmt.Errorf("scrape season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "season %d: %s\n", id, report.Summary())
	}
	return nil
}
