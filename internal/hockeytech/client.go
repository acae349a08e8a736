// Package hockeytech provides a minimal client for the HockeyTech/LeagueStat
// feed API (lscluster.hockeytech.com). The feed authenticates with a key and
// client code passed as query parameters and wraps every payload in a
// "SiteKit" envelope keyed by view name.
//
// Numeric values arrive as JSON strings; records are exposed as-is and
// converted at the ingest boundary.
package hockeytech

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production feed endpoint.
const DefaultBaseURL = "https://lscluster.hockeytech.com/feed/"

// Client is a rate-limited HockeyTech feed client.
type Client struct {
	baseURL    string
	key        string
	clientCode string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient returns a feed client. requestsPerSecond bounds the call rate;
// the feed tolerates roughly 5-10 req/s.
func NewClient(baseURL, key, clientCode string, requestsPerSecond float64, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		key:        key,
		clientCode: clientCode,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     logger,
	}
}

// envelope is the feed's response wrapper. The payload sits under SiteKit,
// keyed by the capitalized view name.
type envelope struct {
	SiteKit map[string]json.RawMessage `json:"SiteKit"`
}

// get performs a rate-limited GET for a modulekit view and decodes the
// SiteKit payload under payloadKey into out.
func (c *Client) get(ctx context.Context, view, payloadKey string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("feed", "modulekit")
	q.Set("view", view)
	q.Set("key", c.key)
	q.Set("client_code", c.clientCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feed request %s: %w", view, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed %s returned %d: %s", view, resp.StatusCode, truncate(body, 200))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", view, err)
	}
	raw, ok := env.SiteKit[payloadKey]
	if !ok {
		// A few views key the payload in lower case.
		raw, ok = env.SiteKit[strings.ToLower(payloadKey)]
	}
	if !ok {
		return fmt.Errorf("feed %s: no %s payload", view, payloadKey)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s payload: %w", view, err)
	}

	c.logger.Debug("feed call", "view", view)
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Seasons fetches every season the league has played.
func (c *Client) Seasons(ctx context.Context) ([]FeedSeason, error) {
	var out []FeedSeason
	err := c.get(ctx, "seasons", "Seasons", nil, &out)
	return out, err
}

// TeamsBySeason fetches the teams active in a season.
func (c *Client) TeamsBySeason(ctx context.Context, seasonID int) ([]FeedTeam, error) {
	params := url.Values{"season_id": {strconv.Itoa(seasonID)}}
	var out []FeedTeam
	err := c.get(ctx, "teamsbyseason", "Teamsbyseason", params, &out)
	return out, err
}

// Roster fetches one team's roster for a season. The feed occasionally
// returns non-object entries in the roster array; those are dropped.
func (c *Client) Roster(ctx context.Context, teamID, seasonID int) ([]FeedRosterPlayer, error) {
	params := url.Values{
		"team_id":   {strconv.Itoa(teamID)},
		"season_id": {strconv.Itoa(seasonID)},
	}
	var raw []json.RawMessage
	if err := c.get(ctx, "roster", "Roster", params, &raw); err != nil {
		return nil, err
	}

	players := make([]FeedRosterPlayer, 0, len(raw))
	for _, m := range raw {
		var p FeedRosterPlayer
		if err := json.Unmarshal(m, &p); err != nil {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

// Schedule fetches the full game schedule for a season.
func (c *Client) Schedule(ctx context.Context, seasonID int) ([]FeedGame, error) {
	params := url.Values{"season_id": {strconv.Itoa(seasonID)}}
	var out []FeedGame
	err := c.get(ctx, "schedule", "Schedule", params, &out)
	return out, err
}

// SkaterStats fetches league-wide skater season stats.
func (c *Client) SkaterStats(ctx context.Context, seasonID int) ([]FeedSkaterStat, error) {
	params := url.Values{
		"type":      {"skaters"},
		"league_id": {"1"},
		"team_id":   {"0"},
		"season_id": {strconv.Itoa(seasonID)},
	}
	var out []FeedSkaterStat
	err := c.get(ctx, "statviewtype", "Statviewtype", params, &out)
	return out, err
}

// GoalieStats fetches league-wide goalie season stats.
func (c *Client) GoalieStats(ctx context.Context, seasonID int) ([]FeedGoalieStat, error) {
	params := url.Values{
		"type":      {"goalies"},
		"league_id": {"1"},
		"team_id":   {"0"},
		"season_id": {strconv.Itoa(seasonID)},
	}
	var out []FeedGoalieStat
	err := c.get(ctx, "statviewtype", "Statviewtype", params, &out)
	return out, err
}

// PlayByPlay fetches the event stream for one game. Entries that fail to
// decode as objects are dropped, as with Roster.
func (c *Client) PlayByPlay(ctx context.Context, gameID, seasonID int) ([]FeedPlay, error) {
	params := url.Values{
		"game_id":   {strconv.Itoa(gameID)},
		"season_id": {strconv.Itoa(seasonID)},
	}
	var raw []json.RawMessage
	if err := c.get(ctx, "playbyplay", "Plays", params, &raw); err != nil {
		return nil, err
	}

	plays := make([]FeedPlay, 0, len(raw))
	for _, m := range raw {
		var p FeedPlay
		if err := json.Unmarshal(m, &p); err != nil {
			continue
		}
		plays = append(plays, p)
	}
	return plays, nil
}

// Standings fetches team standings rows. Header rows without a team_id are
// included; callers skip entries with an empty TeamID.
func (c *Client) Standings(ctx context.Context, seasonID int) ([]FeedStandingsRow, error) {
	params := url.Values{
		"stat":      {"conference"},
		"type":      {"standings"},
		"season_id": {strconv.Itoa(seasonID)},
	}
	var out []FeedStandingsRow
	err := c.get(ctx, "statviewtype", "Statviewtype", params, &out)
	return out, err
}
