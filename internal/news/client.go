// Package news wraps the upstream news search endpoint.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultQuery replaces an empty or blank search term.
	DefaultQuery = "world"

	defaultBaseURL = "https://newsapi.org/v2/everything"
	defaultTimeout = 15 * time.Second
	pageSize       = 10
	language       = "en"
	sortBy         = "publishedAt"
)

// ErrMissingAPIKey is returned when no upstream API key is configured.
var ErrMissingAPIKey = errors.New("news api key is not configured")

// GatewayError reports a failed upstream call. StatusCode is zero when no
// response was received.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("news api returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Result is a successful upstream response, forwarded as received.
type Result struct {
	StatusCode   int
	Body         []byte
	ArticleCount int
}

// Config configures the gateway client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Searcher is implemented by Client.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*Result, error)
}

// Client calls the upstream everything endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NormalizeQuery trims the term and substitutes DefaultQuery when nothing is left.
func NormalizeQuery(query string) string {
	if q := strings.TrimSpace(query); q != "" {
		return q
	}
	return DefaultQuery
}

// Search performs one upstream request for the most recent English articles
// matching query. It never retries.
func (c *Client) Search(ctx context.Context, query string, page int) (*Result, error) {
	if c.apiKey == "" {
		return nil, &GatewayError{Message: ErrMissingAPIKey.Error(), Err: ErrMissingAPIKey}
	}
	if page < 1 {
		page = 1
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	params := req.URL.Query()
	params.Set("apiKey", c.apiKey)
	params.Set("q", NormalizeQuery(query))
	params.Set("language", language)
	params.Set("sortBy", sortBy)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: redact(err.Error(), c.apiKey), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{Message: fmt.Sprintf("read news response: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}

	var payload struct {
		Articles []json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &GatewayError{Message: fmt.Sprintf("decode news response: %v", err), Err: err}
	}

	return &Result{
		StatusCode:   resp.StatusCode,
		Body:         body,
		ArticleCount: len(payload.Articles),
	}, nil
}

func upstreamMessage(body []byte) string {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return "empty response"
	}
	return text
}

// redact strips the api key from transport errors, which quote the request URL.
func redact(message, apiKey string) string {
	if apiKey == "" {
		return message
	}
	return strings.ReplaceAll(message, apiKey, "REDACTED")
}

var _ Searcher = (*Client)(nil)
