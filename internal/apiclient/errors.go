package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the single failure value produced by Client. Status is zero for
// transport failures, in which case Message is the transport error text.
type Error struct {
	Err     error
	Service string
	Message string
	Status  int
}

func (e *Error) Error() string {
	prefix := "api error"
	if e.Service != "" {
		prefix = e.Service + " api error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return fmt.Sprintf("%s (status %d): %s", prefix, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// decodeError materializes an *Error from a non-2xx response, preferring the
// service-specific message over the raw body.
func (c *Client) decodeError(resp *http.Response) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &Error{
			Service: c.cfg.Service,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("read error response: %v", readErr),
			Err:     readErr,
		}
	}

	msg := c.errorMessage(body)
	if msg == "" {
		msg = statusText(resp, body)
	}
	return &Error{Service: c.cfg.Service, Status: resp.StatusCode, Message: msg}
}

func statusText(resp *http.Response, body []byte) string {
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return resp.Status
}
