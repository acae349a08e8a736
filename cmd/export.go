package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

var (
	exportSeason int
	exportKind   string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export season stats as CSV",
	Long: `Write a season's skater, goalie or team stat rows, including the derived
metric columns, as CSV to a file or stdout.

Example:
  pwhlmetrics export --season 5 --type skaters --out skaters-2024.csv
  pwhlmetrics export --season 5 --type teams`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportSeason, "season", 0, "season id (required)")
	exportCmd.Flags().StringVar(&exportKind, "type", "skaters", "what to export: skaters, goalies or teams")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.MarkFlagRequired("season")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var out io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	var rowCount int
	switch exportKind {
	case "skaters":
		rows, err := db.ExportSkaterRows(exportSeason)
		if err != nil {
			return fmt.Errorf("export skaters: %w", err)
		}
		if err := writeSkaterCSV(w, rows); err != nil {
			return err
		}
		rowCount = len(rows)
	case "goalies":
		rows, err := db.ExportGoalieRows(exportSeason)
		if err != nil {
			return fmt.Errorf("export goalies: %w", err)
		}
		if err := writeGoalieCSV(w, rows); err != nil {
			return err
		}
		rowCount = len(rows)
	case "teams":
		rows, err := db.ExportTeamRows(exportSeason)
		if err != nil {
			return fmt.Errorf("export teams: %w", err)
		}
		if err := writeTeamCSV(w, rows); err != nil {
			return err
		}
		rowCount = len(rows)
	default:
		return fmt.Errorf("unknown export type %q", exportKind)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", rowCount, exportOut)
	}
	return nil
}

func writeSkaterCSV(w *csv.Writer, rows []storage.ExportSkaterRow) error {
	header := []string{
		"player_id", "name", "position", "team", "season_id",
		"gp", "g", "a", "pts", "sog", "sh_pct",
		"xg", "goals_above_xg", "game_score", "pts_per_60", "g_per_60",
		"faceoff_pct", "blocks", "clutch_goals",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.PlayerID), r.Name, r.Position, r.TeamCode,
			strconv.Itoa(r.SeasonID),
			strconv.Itoa(r.GamesPlayed), strconv.Itoa(r.Goals),
			strconv.Itoa(r.Assists), strconv.Itoa(r.Points), strconv.Itoa(r.Shots),
			fmtFloat(r.ShootingPct),
			fmtFloat(r.XG), fmtFloat(r.GoalsAboveXG), fmtFloat(r.GameScore),
			fmtFloat(r.PointsPer60), fmtFloat(r.GoalsPer60),
			fmtFloat(r.FaceoffPct), strconv.Itoa(r.Blocks), strconv.Itoa(r.ClutchGoals),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeGoalieCSV(w *csv.Writer, rows []storage.ExportGoalieRow) error {
	header := []string{
		"player_id", "name", "team", "season_id",
		"gp", "w", "l", "otl", "so", "sa", "ga", "sv_pct", "gaa", "gsax",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.PlayerID), r.Name, r.TeamCode, strconv.Itoa(r.SeasonID),
			strconv.Itoa(r.GamesPlayed), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses),
			strconv.Itoa(r.OTLosses), strconv.Itoa(r.Shutouts),
			strconv.Itoa(r.ShotsAgainst), strconv.Itoa(r.GoalsAgainst),
			fmtFloat(r.SavePct), fmtFloat(r.GAA), fmtFloat(r.GSAx),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func writeTeamCSV(w *csv.Writer, rows []storage.ExportTeamRow) error {
	header := []string{
		"team_id", "name", "season_id",
		"gp", "w", "l", "otl", "pts", "gf", "ga",
		"corsi_pct", "fenwick_pct", "pdo",
		"home_w", "home_l", "away_w", "away_l",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.TeamID), r.Name, strconv.Itoa(r.SeasonID),
			strconv.Itoa(r.GamesPlayed), strconv.Itoa(r.Wins), strconv.Itoa(r.Losses),
			strconv.Itoa(r.OTLosses), strconv.Itoa(r.Points),
			strconv.Itoa(r.GoalsFor), strconv.Itoa(r.GoalsAgainst),
			fmtFloat(r.CorsiPct), fmtFloat(r.FenwickPct), fmtFloat(r.PDO),
			strconv.Itoa(r.HomeWins), strconv.Itoa(r.HomeLosses),
			strconv.Itoa(r.AwayWins), strconv.Itoa(r.AwayLosses),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
