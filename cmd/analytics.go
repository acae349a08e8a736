package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/analytics"
)

var analyticsSeason int

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Compute schedule splits, head-to-head and venue records",
	Long: `Tag games with their day of week, compute team home/away records, rebuild
season head-to-head matchup records and per-venue home records, and estimate
skater scoring-streak figures from season totals.`,
	Args: cobra.NoArgs,
	RunE: runAnalytics,
}

func init() {
	analyticsCmd.Flags().IntVar(&analyticsSeason, "season", 0, "season id (0 = all)")
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	seasonIDs, err := db.SeasonIDs()
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}
	if analyticsSeason != 0 {
		seasonIDs = []int{analyticsSeason}
	}

	for _, id := range seasonIDs {
		res, err := analytics.ComputeScheduleSplits(db, id)
		if err != nil {
			return fmt.Errorf("schedule splits season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "season %d: tagged %d games, streak estimates for %d skaters\n",
			id, res.GamesTagged, res.StreakPlayers)
	}

	matchups, err := analytics.ComputeHeadToHead(db)
	if err != nil {
		return fmt.Errorf("head-to-head: %w", err)
	}
	fmt.Fprintf(os.Stdout, "head-to-head: %d matchups\n", matchups)

	venues, err := analytics.ComputeVenueStats(db)
	if err != nil {
		return fmt.Errorf("venue stats: %w", err)
	}
	fmt.Fprintf(os.Stdout, "venue stats: %d rows\n", venues)
	return nil
}
