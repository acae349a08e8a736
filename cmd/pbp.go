package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/ingest"
	"github.com/hockeystats/pwhl-metrics/internal/pbp"
)

var (
	pbpSeason int
	pbpFeed   int
	pbpRate   float64
)

var pbpCmd = &cobra.Command{
	Use:   "pbp",
	Short: "Ingest play-by-play events from the CSV mirror",
	Long: `Download shot, goal, penalty, faceoff, hit and blocked-shot events plus the
player reference file from the community CSV mirror and store them locally.
Events keep their feed event ids, so re-running is idempotent.

For a season the CSV mirror does not cover, --feed pulls shots game by game
from the feed's playbyplay view instead. Games that already have shot rows
are left alone.

Run 'xg' afterwards to score the ingested shots.`,
	Args: cobra.NoArgs,
	RunE: runPBP,
}

func init() {
	pbpCmd.Flags().IntVar(&pbpSeason, "season", 0, "season id to keep (0 = all)")
	pbpCmd.Flags().IntVar(&pbpFeed, "feed", 0, "season id to backfill from the feed's playbyplay view")
	pbpCmd.Flags().Float64Var(&pbpRate, "rate", 5, "feed requests per second")
}

func runPBP(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	client := pbp.NewClient(envOr("PWHL_PBP_URL", pbp.DefaultBaseURL), slog.Default())
	res, err := ingest.PlayByPlay(cmd.Context(), client, db, pbpSeason)
	if err != nil {
		return fmt.Errorf("ingest play-by-play: %w", err)
	}

	fmt.Fprintf(os.Stdout, "shots:         %s\n", res.Shots.Summary())
	fmt.Fprintf(os.Stdout, "goals:         %s\n", res.Goals.Summary())
	fmt.Fprintf(os.Stdout, "penalties:     %s\n", res.Penalties.Summary())
	fmt.Fprintf(os.Stdout, "faceoffs:      %s\n", res.Faceoffs.Summary())
	fmt.Fprintf(os.Stdout, "hits:          %s\n", res.Hits.Summary())
	fmt.Fprintf(os.Stdout, "blocked shots: %s\n", res.Blocks.Summary())
	fmt.Fprintf(os.Stdout, "players:       %s\n", res.Players.Summary())

	if pbpFeed != 0 {
		slog.Info("backfilling shots from feed", "season_id", pbpFeed)
		report, err := ingest.FeedShots(cmd.Context(), feedClient(pbpRate), db, pbpFeed)
		if err != nil {
			return fmt.Errorf("feed backfill: %w", err)
		}
		fmt.Fprintf(os.Stdout, "feed shots:    %s\n", report.Summary())
	}
	return nil
}
