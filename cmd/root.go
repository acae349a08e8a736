package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/hockeytech"
	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

var (
	dbPath  string
	verbose bool
)

// The feed key and client code are the public ones the league's own site
// uses; env vars override them.
const (
	defaultFeedKey    = "446521baf8c38984"
	defaultClientCode = "pwhl"
)

var rootCmd = &cobra.Command{
	Use:   "pwhlmetrics",
	Short: "PWHL stats scraper and analytics tool",
	Long: "Scrape PWHL league data and play-by-play events into a local SQLite\n" +
		"database and compute derived analytics: expected goals, goalie GSAx,\n" +
		"rate stats, possession metrics and schedule splits.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()

	defaultDB := filepath.Join(mustUserHome(), ".pwhlmetrics", "pwhl.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(pbpCmd)
	rootCmd.AddCommand(xgCmd)
	rootCmd.AddCommand(gsaxCmd)
	rootCmd.AddCommand(advancedCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dropCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// openDB opens the store, creating the parent directory on first use.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func feedClient(requestsPerSecond float64) *hockeytech.Client {
	return hockeytech.NewClient(
		envOr("PWHL_FEED_URL", hockeytech.DefaultBaseURL),
		envOr("PWHL_FEED_KEY", defaultFeedKey),
		envOr("PWHL_CLIENT_CODE", defaultClientCode),
		requestsPerSecond,
		slog.Default(),
	)
}
