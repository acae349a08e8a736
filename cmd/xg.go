package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/analytics"
	"github.com/hockeystats/pwhl-metrics/internal/xg"
)

var xgCmd = &cobra.Command{
	Use:   "xg",
	Short: "Score shots and compute skater expected goals",
	Long: `Score every stored shot with the expected-goals model, aggregate per-shot
xG into skater season totals, and estimate xG for seasons that have no
play-by-play coverage using a shooting-profile model trained on the seasons
that do.`,
	Args: cobra.NoArgs,
	RunE: runXG,
}

func runXG(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	scored, err := analytics.ScoreShots(db, xg.DefaultParams())
	if err != nil {
		return fmt.Errorf("score shots: %w", err)
	}
	fmt.Fprintf(os.Stdout, "scored %d shots\n", scored)

	agg, err := analytics.AggregateSkaterXG(db)
	if err != nil {
		return fmt.Errorf("aggregate xg: %w", err)
	}
	fmt.Fprintf(os.Stdout, "aggregated %d player-season combinations (%d matched stat rows)\n",
		agg.Combinations, agg.Updated)

	est, trainSeasons, err := analytics.TrainEstimator(db)
	if err != nil {
		return fmt.Errorf("train estimator: %w", err)
	}
	if est == nil {
		fmt.Fprintln(os.Stdout, "no shot data to train the estimator; skipping estimated seasons")
		return nil
	}

	covered := make(map[int]bool, len(trainSeasons))
	for _, id := range trainSeasons {
		covered[id] = true
	}

	statSeasons, err := db.SeasonsWithSkaterStats()
	if err != nil {
		return fmt.Errorf("list stat seasons: %w", err)
	}
	for _, id := range statSeasons {
		if covered[id] {
			continue
		}
		n, err := analytics.EstimateSeasonXG(db, est, id)
		if err != nil {
			return fmt.Errorf("estimate season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "season %d: estimated xG for %d skaters (no play-by-play)\n", id, n)
	}
	return nil
}
