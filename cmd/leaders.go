package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/report"
)

var (
	leadersSeason   int
	leadersStat     string
	leadersLimit    int
	leadersMinGames int
)

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "Show a leaderboard for a season",
	Long: `Print a season leaderboard. Available stats:

  xg         expected goals
  finishing  goals above expected (min 1.0 xG)
  gamescore  composite game score
  p60        points per 60 minutes (estimated ice time)
  gsax       goalie goals saved above expected
  teams      team standings with possession metrics
  h2h        head-to-head matchup records
  venues     per-venue home records

Run the derive commands ('xg', 'gsax', 'advanced', 'analytics') first.`,
	Args: cobra.NoArgs,
	RunE: runLeaders,
}

func init() {
	leadersCmd.Flags().IntVar(&leadersSeason, "season", 0, "season id (required)")
	leadersCmd.Flags().StringVar(&leadersStat, "stat", "xg", "leaderboard to show")
	leadersCmd.Flags().IntVar(&leadersLimit, "limit", 15, "max rows")
	leadersCmd.Flags().IntVar(&leadersMinGames, "min-games", 5, "min games played for rate stats")
	leadersCmd.MarkFlagRequired("season")
}

func runLeaders(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	name, err := db.GetSeasonName(leadersSeason)
	if err != nil {
		return fmt.Errorf("season name: %w", err)
	}
	report.PrintSeasonHeader(os.Stdout, leadersSeason, name)

	switch leadersStat {
	case "xg":
		leaders, err := db.XGLeaders(leadersSeason, leadersLimit)
		if err != nil {
			return err
		}
		report.PrintXGLeaders(os.Stdout, leaders)
	case "finishing":
		leaders, err := db.FinishingLeaders(leadersSeason, leadersLimit, 1.0)
		if err != nil {
			return err
		}
		report.PrintFinishingLeaders(os.Stdout, leaders)
	case "gamescore":
		leaders, err := db.GameScoreLeaders(leadersSeason, leadersMinGames, leadersLimit)
		if err != nil {
			return err
		}
		report.PrintGameScoreLeaders(os.Stdout, leaders)
	case "p60":
		leaders, err := db.PointsPer60Leaders(leadersSeason, leadersMinGames, leadersLimit)
		if err != nil {
			return err
		}
		report.PrintPointsPer60Leaders(os.Stdout, leaders)
	case "gsax":
		leaders, err := db.GSAxLeaders(leadersSeason, leadersMinGames, leadersLimit)
		if err != nil {
			return err
		}
		report.PrintGSAxLeaders(os.Stdout, leaders)
	case "teams":
		rows, err := db.TeamTable(leadersSeason)
		if err != nil {
			return err
		}
		report.PrintTeamTable(os.Stdout, rows)
	case "h2h":
		records, err := db.ListHeadToHead(leadersSeason)
		if err != nil {
			return err
		}
		names, err := db.TeamNames()
		if err != nil {
			return err
		}
		report.PrintHeadToHead(os.Stdout, records, names)
	case "venues":
		rows, err := db.ListVenueStats(leadersSeason)
		if err != nil {
			return err
		}
		names, err := db.TeamNames()
		if err != nil {
			return err
		}
		report.PrintVenueStats(os.Stdout, rows, names)
	default:
		return fmt.Errorf("unknown stat %q", leadersStat)
	}
	return nil
}
