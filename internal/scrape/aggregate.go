package scrape

import (
	"context"
	"log/slog"
	"sync"

	"stocknews/internal/domain"
	"stocknews/internal/metrics"
	"stocknews/internal/ports"
)

// Aggregator runs every adapter concurrently and flattens whatever settled
// successfully. A failed adapter contributes nothing for this cycle; the
// next scheduled run retries naturally.
type Aggregator struct {
	sources []Source
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ ports.ArticleSource = (*Aggregator)(nil)

// NewAggregator wires the adapters in flattening order.
func NewAggregator(sources []Source, m *metrics.Metrics, log *slog.Logger) *Aggregator {
	return &Aggregator{sources: sources, metrics: m, logger: log}
}

// FetchAll waits for all adapters to settle and returns the union of the
// fulfilled results, minus entries without a title or url. The returned
// error is always nil; partial failure is not an error state here.
func (a *Aggregator) FetchAll(ctx context.Context) ([]domain.RawArticle, error) {
	results := make([][]domain.RawArticle, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			// A panicking adapter settles like a failed one; drifted
			// markup must never take the whole cycle down.
			defer func() {
				if r := recover(); r != nil {
					a.warn("source panicked", "source", src.Name(), "panic", r)
					if a.metrics != nil {
						a.metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
					}
				}
			}()
			items, err := src.Fetch(ctx)
			if err != nil {
				a.warn("source failed", "source", src.Name(), "error", err)
				if a.metrics != nil {
					a.metrics.SourceFailures.WithLabelValues(src.Name()).Inc()
				}
				return
			}
			a.debug("source settled", "source", src.Name(), "count", len(items))
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	var flat []domain.RawArticle
	for _, items := range results {
		for _, item := range items {
			if !item.Valid() {
				continue
			}
			flat = append(flat, item)
		}
	}

	a.debug("aggregation done", "sources", len(a.sources), "total", len(flat))
	return flat, nil
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *Aggregator) warn(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
