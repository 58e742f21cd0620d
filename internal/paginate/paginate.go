// Package paginate materializes cursor-paginated listings.
package paginate

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxPages bounds a single listing. Real listings end far earlier; the
// cap only stops a server that keeps returning a continuation token.
const DefaultMaxPages = 10000

// ErrTooManyPages is returned when a listing exceeds its page budget.
var ErrTooManyPages = errors.New("paginate: page limit exceeded")

// Page is one response of a paginated listing. An empty NextToken means the
// listing is exhausted.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// Fetcher requests one page. The empty token denotes the initial request.
type Fetcher[T any] func(ctx context.Context, token string) (Page[T], error)

type options struct {
	maxPages int
}

// Option tunes All.
type Option func(*options)

// WithMaxPages overrides DefaultMaxPages. Values below 1 are ignored.
func WithMaxPages(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPages = n
		}
	}
}

// All follows continuation tokens until a page arrives without one and
// returns every item in server order. Duplicates are kept.
func All[T any](ctx context.Context, fetch Fetcher[T], opts ...Option) ([]T, error) {
	cfg := options{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		all   []T
		token string
	)
	for page := 0; ; page++ {
		if page >= cfg.maxPages {
			return nil, fmt.Errorf("%w (%d pages)", ErrTooManyPages, cfg.maxPages)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("paginate: %w", err)
		}

		resp, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Items...)

		if resp.NextToken == "" {
			return all, nil
		}
		token = resp.NextToken
	}
}
