package projections

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/logging"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/resilience"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

const feedBody = `{
  "data": [
    {
      "player_id": "feed-judge",
      "name": "Aaron Judge",
      "position": "of",
      "team": "NYY",
      "age": 34,
      "adp": 3.1,
      "stats": {"HR": 48, "OBP": 0.405, "RUNS": 110, "RBI": 115, "SB": 8}
    },
    {
      "player_id": "feed-skubal",
      "name": "Tarik Skubal",
      "position": "SP",
      "team": "DET",
      "adp": 10.5,
      "stats": {"W": 15, "QS": 24, "SO": 230, "ERA": 2.80, "WHIP": 1.02, "IP": 195}
    },
    {
      "player_id": "feed-closer",
      "name": "Emmanuel Clase",
      "position": "RP",
      "team": "CLE",
      "stats": {"S": 42, "HLD": 2, "K": 70, "ERA": 1.90, "WHIP": 0.95, "IP": 70}
    },
    {
      "player_id": "",
      "name": "Broken Row",
      "position": "OF",
      "stats": {"HR": 10}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.Handler, mutate func(*ClientConfig)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		Timeout: 2 * time.Second,
		Logger:  logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClient_FetchPlayers(t *testing.T) {
	var gotPath, gotToken string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("api_token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}), nil)

	players, err := client.FetchPlayers(t.Context())
	if err != nil {
		t.Fatalf("fetch players: %v", err)
	}
	if gotPath != playersFeedPath {
		t.Fatalf("unexpected feed path %s", gotPath)
	}
	if gotToken != "secret-token" {
		t.Fatalf("token not forwarded, got %q", gotToken)
	}

	if len(players) != 3 {
		t.Fatalf("expected 3 usable players (invalid row skipped), got %d", len(players))
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	judge := byID["feed-judge"]
	if judge.Position != player.PositionOutfield {
		t.Fatalf("position not normalized: %s", judge.Position)
	}
	if judge.Projection.HomeRuns == nil || *judge.Projection.HomeRuns != 48 {
		t.Fatalf("HR not mapped: %+v", judge.Projection)
	}
	if judge.Projection.Runs == nil || *judge.Projection.Runs != 110 {
		t.Fatalf("legacy RUNS key not mapped: %+v", judge.Projection)
	}
	if judge.ADP == nil || *judge.ADP != 3.1 {
		t.Fatalf("adp not mapped: %+v", judge.ADP)
	}

	skubal := byID["feed-skubal"]
	if skubal.Projection.QualityStarts == nil || *skubal.Projection.QualityStarts != 24 {
		t.Fatalf("QS must map to raw quality starts: %+v", skubal.Projection)
	}
	if skubal.Projection.Wins == nil || *skubal.Projection.Wins != 15 {
		t.Fatalf("W not mapped: %+v", skubal.Projection)
	}
	if skubal.Projection.Strikeouts == nil || *skubal.Projection.Strikeouts != 230 {
		t.Fatalf("SO not mapped to strikeouts: %+v", skubal.Projection)
	}

	closer := byID["feed-closer"]
	if closer.Projection.Saves == nil || *closer.Projection.Saves != 42 {
		t.Fatalf("legacy S key must map to saves: %+v", closer.Projection)
	}
	if closer.Projection.Holds == nil || *closer.Projection.Holds != 2 {
		t.Fatalf("HLD not mapped: %+v", closer.Projection)
	}
}

func TestClient_FetchPlayers_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream flake", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(feedBody))
	}), func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})

	players, err := client.FetchPlayers(t.Context())
	if err != nil {
		t.Fatalf("fetch players after retry: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected one retry, got %d calls", got)
	}
}

func TestClient_FetchPlayers_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad token", http.StatusUnauthorized)
	}), func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	if _, err := client.FetchPlayers(t.Context()); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", got)
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}), nil)

	ctx := t.Context()
	for i := 0; i < 2; i++ {
		if _, err := client.FetchPlayers(ctx); err == nil {
			t.Fatal("expected feed failure")
		}
	}

	_, err := client.FetchPlayers(ctx)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open breaker should surface dependency unavailable, got %v", err)
	}
}

func TestSanitizeSensitiveText(t *testing.T) {
	got := sanitizeSensitiveText(`Get "https://feeds.example/v1/projections/players?api_token=secret-token": dial tcp: timeout`, "secret-token")
	if strings.Contains(got, "secret-token") {
		t.Fatalf("token leaked: %s", got)
	}
	if !strings.Contains(got, "api_token=REDACTED") {
		t.Fatalf("token param not redacted: %s", got)
	}
}

func TestRedactFeedURL(t *testing.T) {
	got := redactFeedURL("https://feeds.example/v1/projections/players?api_token=secret&format=json")
	if strings.Contains(got, "secret") {
		t.Fatalf("token leaked: %s", got)
	}
	if !strings.Contains(got, "api_token=REDACTED") {
		t.Fatalf("expected redacted token param: %s", got)
	}
}
