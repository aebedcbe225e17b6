package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.AnsweringService = (*Client)(nil)
	_ driven.ArtifactSource   = (*Client)(nil)
	_ driven.MetricsSource    = (*Client)(nil)
)

// Service endpoints.
const (
	pathConsult   = "/api/consulta"
	pathArtifacts = "/api/arquivos-txt"
	pathDownload  = "/api/download-txt/"
	pathMetrics   = "/api/metricas"
)

// maxErrorBody bounds how much of an error response is kept for logging.
const maxErrorBody = 512

// Config holds configuration for the remote client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8001).
	BaseURL string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the rate limiter.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the IA-JUR answering service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// consultRequest is the /api/consulta request body.
type consultRequest struct {
	Question string `json:"pergunta"`
}

// artifactsResponse is the /api/arquivos-txt response body.
type artifactsResponse struct {
	Artifacts []domain.Artifact `json:"arquivos"`
}

// NewClient creates a new remote client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// NewClientFromSettings creates a client from application settings.
func NewClientFromSettings(s domain.ServerSettings) *Client {
	return NewClient(Config{
		BaseURL:           s.BaseURL,
		Timeout:           s.Timeout(),
		RequestsPerSecond: s.RateLimit,
		Burst:             s.Burst,
	})
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Consult submits a question.
func (c *Client) Consult(ctx context.Context, question string) (*domain.AnswerResponse, error) {
	body, err := json.Marshal(consultRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var out domain.AnswerResponse
	if err := c.doJSON(ctx, http.MethodPost, pathConsult, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListArtifacts returns the service's persisted answer files.
func (c *Client) ListArtifacts(ctx context.Context) ([]domain.Artifact, error) {
	var out artifactsResponse
	if err := c.doJSON(ctx, http.MethodGet, pathArtifacts, nil, &out); err != nil {
		return nil, err
	}
	if out.Artifacts == nil {
		return []domain.Artifact{}, nil
	}
	return out.Artifacts, nil
}

// DownloadArtifact returns the raw bytes of one persisted answer file.
func (c *Client) DownloadArtifact(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: artifact name is empty", domain.ErrInvalidInput)
	}

	resp, err := c.do(ctx, http.MethodGet, pathDownload+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("read artifact: %w", err)}
	}
	return data, nil
}

// FetchMetrics returns the remote metrics snapshot.
func (c *Client) FetchMetrics(ctx context.Context) (*domain.RemoteMetrics, error) {
	var out domain.RemoteMetrics
	if err := c.doJSON(ctx, http.MethodGet, pathMetrics, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs a request and decodes a JSON success body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do performs a rate-limited request. The caller closes the body of a
// successful response; non-2xx responses are consumed and returned as errors.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("%s %s", method, path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Debug("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))

		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))
		}
		return nil, &domain.TransportError{StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
