// Package coda is a typed client for the Coda REST API.
package coda

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/apiclient"
	"github.com/yourorg/pmctl/internal/export"
)

// DefaultBaseURL is the Coda API root.
const DefaultBaseURL = "https://coda.io/apis/v1"

// ClientConfig configures the Coda client. A nil Poller uses the default
// export budget.
type ClientConfig struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Logger     *slog.Logger
	Poller     *export.Poller
	Token      string
	BaseURL    string
}

// Client calls Coda endpoints.
type Client struct {
	api    *apiclient.Client
	poller *export.Poller
	log    *slog.Logger
}

// NewClient builds a Coda client.
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
		Service:      "coda",
		BaseURL:      base,
		Token:        cfg.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("build coda client: %w", err)
	}

	poller := cfg.Poller
	if poller == nil {
		poller = export.NewPoller(cfg.Logger)
	}
	return &Client{api: api, poller: poller, log: cfg.Logger}, nil
}

// errorMessage extracts {"message": ...}, falling back to statusMessage.
func errorMessage(body []byte) string {
	var payload struct {
		Message       string `json:"message"`
		StatusMessage string `json:"statusMessage"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.StatusMessage)
}

func endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}
