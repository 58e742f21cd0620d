// Package apiclient provides the authenticated JSON REST client shared by the
// Asana and Coda integrations.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "pmctl/0.1"

	limiterRatePerSecond = 5
	limiterBurstTokens   = 10
)

// MessageExtractor pulls a human-readable message out of a service error
// payload. It returns "" when the payload is not in the service's format.
type MessageExtractor func(body []byte) string

// Config configures a Client.
type Config struct {
	HTTPClient   *http.Client
	Limiter      *rate.Limiter
	Logger       *slog.Logger
	ErrorMessage MessageExtractor
	Service      string
	BaseURL      string
	Token        string
	UserAgent    string
}

// Client performs authenticated requests against one REST service.
// It never retries.
type Client struct {
	http         *http.Client
	baseURL      *url.URL
	limiter      *rate.Limiter
	log          *slog.Logger
	errorMessage MessageExtractor
	cfg          Config
}

// New constructs a Client. A missing token or base URL is rejected before any
// request can be issued.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("api token cannot be empty")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}

	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(limiterRatePerSecond), limiterBurstTokens)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = userAgent
	}
	extract := cfg.ErrorMessage
	if extract == nil {
		extract = func([]byte) string { return "" }
	}

	return &Client{
		http:         httpClient,
		baseURL:      parsed,
		limiter:      limiter,
		log:          logging.WithService(cfg.Logger, cfg.Service),
		errorMessage: extract,
		cfg:          cfg,
	}, nil
}

// Do sends one authenticated request. A non-nil body is encoded as JSON; a
// 2xx response is decoded into out unless out is nil or the status is 204.
// Every failure is returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.prepareRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			"method", method, "path", req.URL.Path, logging.Err(err))
		return &Error{Service: c.cfg.Service, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // body is fully consumed below

	c.log.Debug("api request",
		"method", method,
		"path", req.URL.Path,
		"token", logging.SanitizeToken(c.cfg.Token),
		logging.KeyStatus, resp.StatusCode,
		logging.KeyDuration, time.Since(started))

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Service: c.cfg.Service,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
			Err:     err,
		}
	}
	return nil
}

// Download fetches a pre-signed URL. No Authorization header is sent: such
// URLs carry their own credentials and reject extra ones.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Service: c.cfg.Service, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Service: c.cfg.Service, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &Error{Service: c.cfg.Service, Status: resp.StatusCode, Message: statusText(resp, data)}
	}
	c.log.Debug("download complete", logging.KeyStatus, resp.StatusCode, "bytes", len(data))
	return data, nil
}

func (c *Client) prepareRequest(
	ctx context.Context,
	method string,
	requestPath string,
	query url.Values,
	body any,
) (*http.Request, error) {
	target, err := c.resolve(requestPath, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) resolve(requestPath string, query url.Values) (string, error) {
	target, err := c.baseURL.Parse(strings.TrimPrefix(requestPath, "/"))
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", requestPath, err)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String(), nil
}
