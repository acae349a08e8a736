package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/analytics"
)

var advancedSeason int

var advancedCmd = &cobra.Command{
	Use:   "advanced",
	Short: "Compute advanced skater and team metrics",
	Long: `Compute the derived metric set for each season: estimated ice time and
per-60 rates, composite game score, faceoff and shot-block totals from
play-by-play, clutch goals, and team possession metrics (Corsi, Fenwick,
PDO).`,
	Args: cobra.NoArgs,
	RunE: runAdvanced,
}

func init() {
	advancedCmd.Flags().IntVar(&advancedSeason, "season", 0, "season id (0 = all with skater stats)")
}

func runAdvanced(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	seasonIDs, err := db.SeasonsWithSkaterStats()
	if err != nil {
		return fmt.Errorf("list stat seasons: %w", err)
	}
	if advancedSeason != 0 {
		seasonIDs = []int{advancedSeason}
	}

	for _, id := range seasonIDs {
		res, err := analytics.ComputeAdvanced(db, id)
		if err != nil {
			return fmt.Errorf("advanced season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout,
			"season %d: ice time for %d skaters, faceoffs %d, blocks %d, clutch %d, teams %d\n",
			id, res.IceTimeEstimated, res.FaceoffPlayers, res.BlockPlayers,
			res.ClutchPlayers, res.TeamsUpdated)
	}
	return nil
}
