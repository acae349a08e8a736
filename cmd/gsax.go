package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/analytics"
)

var gsaxCmd = &cobra.Command{
	Use:   "gsax",
	Short: "Compute goalie goals saved above expected",
	Long: `Compute GSAx for every goalie season. Seasons with play-by-play shots use
the shot-level xG totals against each goalie; seasons without fall back to
an estimate against the league-average save percentage.

Run 'xg' first so shots carry their xG scores.`,
	Args: cobra.NoArgs,
	RunE: runGSAx,
}

func runGSAx(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	shotSeasons, err := db.SeasonsWithShots()
	if err != nil {
		return fmt.Errorf("list shot seasons: %w", err)
	}
	covered := make(map[int]bool, len(shotSeasons))
	for _, id := range shotSeasons {
		covered[id] = true
		n, err := analytics.ComputeGSAx(db, id)
		if err != nil {
			return fmt.Errorf("gsax season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "season %d: computed GSAx for %d goalies\n", id, n)
	}

	statSeasons, err := db.SeasonsWithSkaterStats()
	if err != nil {
		return fmt.Errorf("list stat seasons: %w", err)
	}
	for _, id := range statSeasons {
		if covered[id] {
			continue
		}
		n, leagueAvg, err := analytics.EstimateSeasonGSAx(db, id, shotSeasons)
		if err != nil {
			return fmt.Errorf("estimate gsax season %d: %w", id, err)
		}
		fmt.Fprintf(os.Stdout, "season %d: estimated GSAx for %d goalies (league avg SV%% %.3f)\n",
			id, n, leagueAvg)
	}
	return nil
}
