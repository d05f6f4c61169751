package api

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

const (
	defaultBaseURL  = "https://api.metaart.store"
	defaultTimeout  = 10 * time.Second
	defaultRequests = 5
	defaultBurst    = 5

	// Business code the backend uses for an expired or missing session
	codeUnauthorized = 401
)

// RequestRecorder receives per-request metrics. Implemented by the metrics adapter.
type RequestRecorder interface {
	RecordAPIRequest(method, endpoint string, code int, duration float64)
	RecordAPIError(endpoint, class string)
	RecordRateLimitWait(method, endpoint string, duration float64)
}

// ClientConfig holds the connection settings of the game backend
type ClientConfig struct {
	BaseURL           string
	SignKey           string
	Timeout           time.Duration
	RequestsPerSecond int
	Burst             int
}

// ClientOption customises a Client
type ClientOption func(*Client)

// WithClock overrides the clock used for request timestamps
func WithClock(clock shared.Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// WithRecorder attaches a metrics recorder
func WithRecorder(recorder RequestRecorder) ClientOption {
	return func(c *Client) { c.recorder = recorder }
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// Client implements the GameClient port over the backend's signed JSON API.
// Requests are never retried: a failed call is reported once to the caller.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	signKey     string
	clock       shared.Clock
	recorder    RequestRecorder
}

// NewClient creates a new game backend client
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequests
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		baseURL:     cfg.BaseURL,
		signKey:     cfg.SignKey,
		clock:       shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the wrapper every backend response uses
type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Sign computes the request signature: lowercase hex md5 of payload, timestamp and key
func Sign(payload, timestamps, signKey string) string {
	sum := md5.Sum([]byte(payload + timestamps + signKey))
	return hex.EncodeToString(sum[:])
}

// request performs one signed call and decodes envelope data into result.
// POSTs with a query string sign the query; other POSTs sign the JSON body;
// GETs sign the encoded query parameters.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body interface{}, token string, result interface{}) error {
	// Wait for rate limiter
	waitStart := time.Now()
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return shared.NewNetworkError(fmt.Errorf("rate limiter: %w", err))
	}
	if c.recorder != nil {
		c.recorder.RecordRateLimitWait(method, path, time.Since(waitStart).Seconds())
	}

	// Prepare request body
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	encodedQuery := query.Encode()
	payload := encodedQuery
	if method == http.MethodPost && encodedQuery == "" {
		payload = string(bodyBytes)
	}

	fullURL := c.baseURL + path
	if encodedQuery != "" {
		fullURL += "?" + encodedQuery
	}

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	timestamps := strconv.FormatInt(c.clock.Now().UnixMilli(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("businessType", "customer")
	req.Header.Set("os", "h5")
	req.Header.Set("timestamps", timestamps)
	if token != "" {
		req.Header.Set("token", token)
	}
	req.Header.Set("sign", Sign(payload, timestamps, c.signKey))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordError(path, "network")
		return shared.NewNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordError(path, "network")
		return shared.NewNetworkError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.record(method, path, resp.StatusCode, start)
		c.recordError(path, "auth")
		return shared.NewAuthError("")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.record(method, path, resp.StatusCode, start)
		c.recordError(path, "network")
		return shared.NewNetworkError(fmt.Errorf("unexpected HTTP status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.recordError(path, "network")
		return shared.NewNetworkError(fmt.Errorf("failed to decode response: %w", err))
	}
	c.record(method, path, env.Code, start)

	if env.Code == codeUnauthorized {
		c.recordError(path, "auth")
		return shared.NewAuthError(env.Message)
	}

	if env.Code < 0 {
		c.recordError(path, "api")
		return shared.NewAPIError(env.Code, env.Message)
	}

	if result == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}

	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}

	return nil
}

// requestFlag performs a call whose data is the backend's success flag.
// Any truthy data counts as success; false, null, 0 and "" do not.
func (c *Client) requestFlag(ctx context.Context, method, path string, query url.Values, body interface{}, token string) (bool, error) {
	var data json.RawMessage
	if err := c.request(ctx, method, path, query, body, token, &data); err != nil {
		return false, err
	}
	return truthy(data), nil
}

func truthy(data json.RawMessage) bool {
	switch string(bytes.TrimSpace(data)) {
	case "", "null", "false", "0", `""`:
		return false
	default:
		return true
	}
}

func (c *Client) record(method, path string, code int, start time.Time) {
	if c.recorder != nil {
		c.recorder.RecordAPIRequest(method, path, code, time.Since(start).Seconds())
	}
}

func (c *Client) recordError(path, class string) {
	if c.recorder != nil {
		c.recorder.RecordAPIError(path, class)
	}
}
