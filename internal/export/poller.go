// Package export drives server-side asynchronous export jobs to a downloaded
// artifact.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/pmctl/internal/logging"
)

const (
	// DefaultMaxAttempts is the number of status queries before giving up.
	DefaultMaxAttempts = 60
	// DefaultInterval separates consecutive status queries.
	DefaultInterval = 500 * time.Millisecond
)

// Job statuses reported by the export endpoints.
const (
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

var (
	// ErrTimeout is returned when no terminal status arrives within the attempt budget.
	ErrTimeout = errors.New("export timed out")
	// ErrMissingDownloadLink is returned for a complete job without a download location.
	ErrMissingDownloadLink = errors.New("export completed but no download link provided")
	// ErrNotStarted is returned when the export request yields no job ID.
	ErrNotStarted = errors.New("failed to initiate export")
)

// FailedError reports a job the server marked as failed. Message is the
// server's text, unmodified.
type FailedError struct {
	Message string
}

func (e *FailedError) Error() string {
	return "export failed: " + e.Message
}

// Job is the state of an export request.
type Job struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	DownloadLink string `json:"downloadLink,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Source queries job status and fetches finished artifacts.
type Source interface {
	Status(ctx context.Context, jobID string) (Job, error)
	Download(ctx context.Context, link string) ([]byte, error)
}

// Poller waits for an export job with a fixed interval and attempt budget.
type Poller struct {
	Sleep       func(ctx context.Context, d time.Duration) error
	Logger      *slog.Logger
	MaxAttempts int
	Interval    time.Duration
}

// NewPoller returns a Poller with the default budget.
func NewPoller(logger *slog.Logger) *Poller {
	return &Poller{
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
		Sleep:       sleepContext,
		Logger:      logger,
	}
}

// Await returns the artifact for started. A job that already carries a
// download link is fetched without polling.
func (p *Poller) Await(ctx context.Context, src Source, started Job) ([]byte, error) {
	if started.DownloadLink != "" {
		return download(ctx, src, started.DownloadLink)
	}
	if started.ID == "" {
		return nil, ErrNotStarted
	}

	link, err := p.poll(ctx, src, started.ID)
	if err != nil {
		return nil, err
	}
	return download(ctx, src, link)
}

func (p *Poller) poll(ctx context.Context, src Source, jobID string) (string, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}
	log := logging.WithOperation(p.Logger, "export.poll")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		job, err := src.Status(ctx, jobID)
		switch {
		case err != nil:
			if attempt == maxAttempts {
				return "", fmt.Errorf("query export status: %w", err)
			}
			log.Debug("status query failed, retrying", "attempt", attempt, logging.Err(err))
		case job.Status == StatusComplete:
			if job.DownloadLink == "" {
				return "", ErrMissingDownloadLink
			}
			return job.DownloadLink, nil
		case job.Status == StatusFailed:
			msg := job.Error
			if msg == "" {
				msg = "Unknown error"
			}
			return "", &FailedError{Message: msg}
		default:
			log.Debug("export pending", "attempt", attempt, logging.KeyStatus, job.Status)
		}

		if err := sleep(ctx, p.Interval); err != nil {
			return "", fmt.Errorf("wait for export: %w", err)
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrTimeout, maxAttempts)
}

func download(ctx context.Context, src Source, link string) ([]byte, error) {
	data, err := src.Download(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("download export: %w", err)
	}
	return data, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
