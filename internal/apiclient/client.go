// Package apiclient is the single chokepoint for calls to the SGPJ REST
// backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/tokenstore"
)

// DefaultTimeout aborts hung requests.
const DefaultTimeout = 15 * time.Second

type Config struct {
	// BaseURL already includes the /api/v1 prefix.
	BaseURL string
	Timeout time.Duration
	Tokens  tokenstore.Store
	// OnUnauthorized runs once for every request answered with 401.
	OnUnauthorized func()
	HTTPClient     *http.Client
	Logger         *logging.Logger
}

type Client struct {
	baseURL        string
	timeout        time.Duration
	tokens         tokenstore.Store
	onUnauthorized func()
	httpClient     *http.Client
	logger         *logging.Logger
}

func New(cfg Config) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        cfg.Timeout,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
		httpClient:     cfg.HTTPClient,
		logger:         cfg.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.tokens == nil {
		c.tokens = tokenstore.NewMemoryStore("")
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	c.logger.Debugf("API client initialized with baseURL: %s", c.baseURL)
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out)
}

// Do sends one request to baseURL+endpoint. A non-nil body is sent as
// JSON and a non-nil out receives the decoded response. Requests are
// never retried.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	return c.send(ctx, method, c.baseURL+endpoint, body, out)
}

func (c *Client) send(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, url, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	log := c.logger.WithField("request_id", requestID)
	log.Debugf("%s %s (token: %t)", method, url, token != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			log.Warnf("%s %s cancelled: %v", method, url, ctx.Err())
			return ErrRequestCancelled
		}
		return fmt.Errorf("failed to call %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	log.Debugf("Response status: %d", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.handleUnauthorized()
		return ErrNotAuthenticated
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ErrRequestCancelled
		}
		return fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf("API error response %d: %s", resp.StatusCode, string(data))
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	c.logger.Warnf("Error 401: not authenticated, clearing session token")
	if err := c.tokens.Clear(); err != nil {
		c.logger.Errorf("Failed to clear session token: %v", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// Token returns the stored token, or "" when none is stored or the store
// cannot be read.
func (c *Client) Token() string {
	token, err := c.tokens.Get()
	if err != nil {
		c.logger.Warnf("Failed to read session token: %v", err)
		return ""
	}
	return token
}

func (c *Client) SetToken(token string) error {
	return c.tokens.Set(token)
}

func (c *Client) ClearToken() error {
	return c.tokens.Clear()
}

func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health calls the backend health endpoint, which lives outside /api/v1.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	root := strings.TrimSuffix(c.baseURL, "/api/v1")
	if err := c.send(ctx, http.MethodGet, root+"/health", nil, &status); err != nil {
		return HealthStatus{}, err
	}
	return status, nil
}
