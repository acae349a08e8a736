// Package pbp fetches and parses the play-by-play CSV exports that cover the
// seasons the feed's own play-by-play view does not. Each file is a
// header-declared CSV; rows missing required fields are skipped, not fatal.
package pbp

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the published data mirror holding the CSV exports.
const DefaultBaseURL = "https://raw.githubusercontent.com/IsabelleLefebvre97/PWHL-Data-Reference/main/data"

// CSV files under games/play_by_play/.
const (
	ShotsFile        = "games/play_by_play/shots.csv"
	GoalsFile        = "games/play_by_play/goals.csv"
	PenaltiesFile    = "games/play_by_play/penalties.csv"
	FaceoffsFile     = "games/play_by_play/faceoffs.csv"
	HitsFile         = "games/play_by_play/hits.csv"
	BlockedShotsFile = "games/play_by_play/blocked_shots.csv"
)

// PlayersFile is the league-wide player reference CSV.
const PlayersFile = "players/all_players.csv"

// Client fetches CSV exports over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a CSV client for the given mirror base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Fetch downloads one CSV file and parses it into rows. The second return
// counts syntactically malformed rows dropped during parsing.
func (c *Client) Fetch(ctx context.Context, file string) ([]Row, int, error) {
	url := c.baseURL + "/" + file
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetch %s: HTTP %d", file, resp.StatusCode)
	}

	rows, malformed, err := Parse(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", file, err)
	}
	c.logger.Debug("fetched csv", "file", file, "rows", len(rows), "malformed", malformed)
	return rows, malformed, nil
}

// Row is one CSV record with access to columns by header name.
type Row struct {
	header map[string]int
	fields []string
}

// Get returns the value of a column, empty string when the column is absent
// or the row is short.
func (r Row) Get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// Parse reads a header-declared CSV stream into rows. A UTF-8 BOM on the
// first header cell is stripped. Rows may have fewer fields than the header.
// Syntactically malformed rows are dropped and counted in malformed; only
// I/O errors are fatal.
func Parse(r io.Reader) (rows []Row, malformed int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headerRec, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	header := make(map[string]int, len(headerRec))
	for i, name := range headerRec {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[name] = i
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			malformed++
			continue
		}
		if err != nil {
			return nil, malformed, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, Row{header: header, fields: rec})
	}
	return rows, malformed, nil
}
