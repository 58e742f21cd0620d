// Package asana is a typed client for the Asana REST API.
package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/apiclient"
)

// DefaultBaseURL is the Asana API root.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// ClientConfig configures the Asana client.
type ClientConfig struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Logger     *slog.Logger
	Token      string
	BaseURL    string
}

// Client calls Asana endpoints and unwraps the "data" envelope.
type Client struct {
	api *apiclient.Client
}

// NewClient builds an Asana client.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	api, err := apiclient.New(apiclient.Config{
		HTTPClient:   cfg.HTTPClient,
		Limiter:      cfg.Limiter,
		Logger:       cfg.Logger,
		ErrorMessage: errorMessage,
		Service:      "asana",
		BaseURL:      base,
		Token:        cfg.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("build asana client: %w", err)
	}
	return &Client{api: api}, nil
}

// do sends body wrapped as {"data": body} and decodes the response's data
// field into out. It returns the continuation offset, if any.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (string, error) {
	var payload any
	if body != nil {
		payload = requestEnvelope{Data: body}
	}

	var env envelope[json.RawMessage]
	if err := c.api.Do(ctx, method, path, query, payload, &env); err != nil {
		return "", err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decode asana data: %w", err)
		}
	}
	if env.NextPage == nil {
		return "", nil
	}
	return env.NextPage.Offset, nil
}

// errorMessage extracts {"errors":[{"message":...}]}.
func errorMessage(body []byte) string {
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(payload.Errors))
	for _, e := range payload.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}
