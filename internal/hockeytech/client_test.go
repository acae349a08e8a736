package hockeytech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSeasonsDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("feed") != "modulekit" || q.Get("view") != "seasons" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("key") != "k" || q.Get("client_code") != "pwhl" {
			t.Errorf("credentials not passed: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"SiteKit":{"Seasons":[
			{"season_id":"5","season_name":"2024-25 Regular Season","shortname":"2024-25","career":"1","playoff":"0"}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "pwhl", 100, nil)
	seasons, err := c.Seasons(context.Background())
	if err != nil {
		t.Fatalf("Seasons: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("expected 1 season, got %d", len(seasons))
	}
	if seasons[0].SeasonID != "5" || seasons[0].SeasonName != "2024-25 Regular Season" {
		t.Errorf("unexpected season %+v", seasons[0])
	}
}

func TestGetNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feed unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "pwhl", 100, nil)
	if _, err := c.Seasons(context.Background()); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestGetMissingPayloadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SiteKit":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "pwhl", 100, nil)
	if _, err := c.Seasons(context.Background()); err == nil {
		t.Fatal("expected error when payload key absent")
	}
}

func TestRosterSkipsNonObjectEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SiteKit":{"Roster":[
			{"player_id":"42","first_name":"Test","last_name":"Player","position":"D"},
			["not","a","player"],
			{"player_id":"43","first_name":"Other","last_name":"Player","position":"F"}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "pwhl", 100, nil)
	roster, err := c.Roster(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 players, got %d", len(roster))
	}
	if roster[0].PlayerID != "42" || roster[1].PlayerID != "43" {
		t.Errorf("unexpected roster %+v", roster)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SiteKit":{"Seasons":[]}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "k", "pwhl", 100, nil)
	if _, err := c.Seasons(ctx); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
