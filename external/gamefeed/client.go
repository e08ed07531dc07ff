package gamefeed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/platform/resilience"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultFeedPath = "/v1/game-rows"
	maxFeedBytes    = 256 << 20
)

var errFeedTransient = crerr.New("game feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Path           string
	Token          string
	Seasons        []string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client streams game rows from the HTTP feed. One request is issued per
// configured season, or a single unfiltered request when none is set.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	path           string
	token          string
	seasons        []string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	decoder        *decoder
	backoff        func(attempt int) time.Duration
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
		httpClient.Timeout = 60 * time.Second
	}

	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = defaultFeedPath
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	onBreakerChange := func(from, to resilience.CircuitState) {
		logger.Warn("game feed circuit breaker state changed", "from", from, "to", to)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		path:           "/" + strings.TrimLeft(path, "/"),
		token:          strings.TrimSpace(cfg.Token),
		seasons:        append([]string(nil), cfg.Seasons...),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg, onBreakerChange),
		circuitEnabled: breakerCfg.Enabled,
		decoder:        newDecoder(logger),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) Stream(ctx context.Context, fn func(profile.GameRow) error) error {
	if c.baseURL == "" {
		return crerr.New("game feed base url is required")
	}

	seasons := c.seasons
	if len(seasons) == 0 {
		seasons = []string{""}
	}
	for _, season := range seasons {
		fullURL := c.feedURL(season)
		raw, err := c.fetch(ctx, fullURL)
		if err != nil {
			return fmt.Errorf("fetch game feed season=%q: %w", season, err)
		}
		if err := c.decoder.decode(ctx, fullURL, bytes.NewReader(raw), fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) Stats() Stats {
	return c.decoder.stats()
}

func (c *Client) feedURL(season string) string {
	fullURL := c.baseURL + c.path
	if season = strings.TrimSpace(season); season != "" {
		fullURL += "?" + url.Values{"season": []string{season}}.Encode()
	}
	return fullURL
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "game feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: game feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			c.breaker.Record(reqErr, isTransient)
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected feed payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, status, err := c.do(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errFeedTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("feed status=%d body=%s", status, abbreviateBody(raw)), errFeedTransient)
		default:
			return nil, crerr.Newf("feed status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "game feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/x-ndjson")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxFeedBytes)); err != nil {
		return nil, 0, crerr.Wrap(err, "read response body")
	}
	// The pooled buffer is reused after return.
	return append([]byte(nil), buf.B...), resp.StatusCode, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errFeedTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
