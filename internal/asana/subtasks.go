package asana

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yourorg/pmctl/internal/logging"
)

// DefaultConcurrency fetches subtasks one parent at a time.
const DefaultConcurrency = 1

// SubtaskLister is the subset of Client used to expand subtasks.
type SubtaskLister interface {
	ListSubtasks(ctx context.Context, gid string) ([]Task, error)
}

// FetchSubtasks returns the subtasks of each task keyed by parent GID. Parents
// without subtasks are absent. A failed lookup for one parent is logged and
// skipped; only context cancellation aborts the fan-out.
func FetchSubtasks(
	ctx context.Context,
	client SubtaskLister,
	tasks []Task,
	concurrency int,
	logger *slog.Logger,
) (map[string][]Task, error) {
	log := logging.OrDiscard(logger)
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu     sync.Mutex
		result = make(map[string][]Task, len(tasks))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, task := range tasks {
		gid := task.GID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			subtasks, err := client.ListSubtasks(gctx, gid)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Debug("skipping subtasks", "task", gid, logging.Err(err))
				return nil
			}
			if len(subtasks) == 0 {
				return nil
			}
			mu.Lock()
			result[gid] = subtasks
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
