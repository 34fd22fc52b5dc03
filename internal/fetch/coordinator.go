package fetch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kakarot0105/JobBot/internal/model"
)

// Coordinator runs every registered source concurrently and merges their
// results. A failed source contributes an empty slice; the merge order is
// registration order, never completion order, so the output is reproducible
// across runs regardless of which provider answers first.
type Coordinator struct {
	sources []model.Source
	logger  *slog.Logger
}

// NewCoordinator creates a coordinator over the given sources. Order matters:
// it fixes the merge order and, downstream, the ranking tie-break.
func NewCoordinator(sources []model.Source, logger *slog.Logger) *Coordinator {
	return &Coordinator{sources: sources, logger: logger}
}

// Sources returns the registered sources in registration order.
func (c *Coordinator) Sources() []model.Source {
	return c.sources
}

// FetchAll launches all sources, waits for the whole batch, and concatenates
// the per-source results. Errors and panics from individual sources are
// logged and absorbed; total outage of every provider yields an empty slice,
// never an error.
func (c *Coordinator) FetchAll(ctx context.Context, keywords []string, location string) []model.Job {
	results := make([][]model.Job, len(c.sources))

	var wg sync.WaitGroup
	for i, src := range c.sources {
		wg.Add(1)
		go func(i int, src model.Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("source panicked", "source", src.Name(), "panic", r)
				}
			}()

			jobs, err := src.Fetch(ctx, keywords, location)
			if err != nil {
				c.logger.Warn("source failed", "source", src.Name(), "error", err)
				return
			}
			results[i] = jobs
			c.logger.Debug("source fetched", "source", src.Name(), "jobs", len(jobs))
		}(i, src)
	}
	wg.Wait()

	var merged []model.Job
	for _, jobs := range results {
		merged = append(merged, jobs...)
	}

	c.logger.Info("fetch complete", "sources", len(c.sources), "jobs", len(merged))
	return merged
}
