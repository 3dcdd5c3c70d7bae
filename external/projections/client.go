package projections

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/player"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/domain/roto"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/logging"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/platform/resilience"
	"github.com/nolen4242/fantasy-baseball-draft-helper/internal/usecase"
)

const (
	defaultBaseURL    = "https://feeds.draft-helper.dev/v1"
	playersFeedPath   = "/projections/players"
	maxResponseBytes  = 6 << 20
	defaultHTTPExpiry = 20 * time.Second
)

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errFeedTransient = crerr.New("projections feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls the unified player pool from the projections feed. It
// implements usecase.ProjectionsSource.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultHTTPExpiry
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type feedEnvelope struct {
	Data []feedPlayer `json:"data"`
}

type feedPlayer struct {
	ID       string             `json:"player_id"`
	Name     string             `json:"name"`
	Position string             `json:"position"`
	Team     string             `json:"team"`
	Age      *int               `json:"age"`
	ADP      *float64           `json:"adp"`
	Stats    map[string]float64 `json:"stats"`
	Risk     player.Risk        `json:"risk"`
	Statcast player.Statcast    `json:"statcast"`
	Park     player.ParkFactors `json:"park_factors"`
}

// FetchPlayers pulls every projected player from the feed and maps the stat
// lines onto the domain model. Rows that fail validation are skipped with a
// warning rather than poisoning the whole refresh.
func (c *Client) FetchPlayers(ctx context.Context) ([]player.Player, error) {
	var envelope feedEnvelope
	if err := c.doJSON(ctx, playersFeedPath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch projected players: %w", err)
	}

	out := make([]player.Player, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		p := mapFeedPlayer(item)
		if err := p.Validate(); err != nil {
			c.logger.WarnContext(ctx, "skip invalid feed player", "player_id", item.ID, "error", err)
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: feed returned no usable players", errFeedTransient)
	}
	return out, nil
}

func mapFeedPlayer(item feedPlayer) player.Player {
	p := player.Player{
		ID:       strings.TrimSpace(item.ID),
		Name:     strings.TrimSpace(item.Name),
		Position: player.Position(strings.ToUpper(strings.TrimSpace(item.Position))),
		MLBTeam:  strings.TrimSpace(item.Team),
		Age:      item.Age,
		ADP:      item.ADP,
		Risk:     item.Risk,
		Statcast: item.Statcast,
		Park:     item.Park,
	}
	for name, value := range item.Stats {
		applyStat(&p.Projection, name, value)
	}
	return p
}

// applyStat maps one feed stat onto the projection. Raw pitching components
// are matched before roto.Canonical so a feed "QS" lands on quality starts,
// not the WQS composite.
func applyStat(projection *player.Projection, name string, value float64) {
	v := value
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "W", "WINS":
		projection.Wins = &v
		return
	case "QS":
		projection.QualityStarts = &v
		return
	case "SV", "S", "SAVES":
		projection.Saves = &v
		return
	case "HLD", "HOLDS":
		projection.Holds = &v
		return
	case "IP":
		projection.InningsPitched = &v
		return
	}

	category, ok := roto.Canonical(name)
	if !ok {
		return
	}
	switch category {
	case roto.CatHomeRuns:
		projection.HomeRuns = &v
	case roto.CatOBP:
		projection.OBP = &v
	case roto.CatRuns:
		projection.Runs = &v
	case roto.CatRBI:
		projection.RBI = &v
	case roto.CatStolenBases:
		projection.StolenBases = &v
	case roto.CatStrikeouts:
		projection.Strikeouts = &v
	case roto.CatERA:
		projection.ERA = &v
	case roto.CatWHIP:
		projection.WHIP = &v
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "projections circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: projections feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.token != "" {
		values.Set("api_token", c.token)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFeedCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFeedTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errFeedTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "projections request failed", "url", redactFeedURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isFeedCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFeedTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactFeedURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
