package usecase

import (
	"context"
	"log/slog"

	"stocknews/internal/domain"
	"stocknews/internal/metrics"
	"stocknews/internal/ports"
)

// Selector picks the bounded subset of new candidates worth the cost of
// enrichment. It never fails: any oracle trouble degrades to the first-k
// candidates in scrape order.
type Selector struct {
	oracle  ports.SelectionOracle
	topK    int
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewSelector wires the oracle; topK values below 1 are clamped to 1.
func NewSelector(oracle ports.SelectionOracle, topK int, m *metrics.Metrics, log *slog.Logger) *Selector {
	if topK < 1 {
		topK = 1
	}
	return &Selector{oracle: oracle, topK: topK, metrics: m, logger: log}
}

// Select returns at most topK candidates. Indices coming back from the
// oracle are truncated to topK, then out-of-range and duplicate entries
// are dropped silently.
func (s *Selector) Select(ctx context.Context, candidates []domain.RawArticle) []domain.RawArticle {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) <= s.topK {
		return candidates
	}

	if s.oracle != nil {
		indices, err := s.oracle.SelectTop(ctx, candidates, s.topK)
		if err == nil {
			if selected := s.mapIndices(indices, candidates); len(selected) > 0 {
				return selected
			}
			s.warn("oracle returned no usable indices, falling back to scrape order")
		} else {
			s.warn("oracle failed, falling back to scrape order", "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.OracleFallbacks.Inc()
	}
	return candidates[:s.topK]
}

func (s *Selector) mapIndices(indices []int, candidates []domain.RawArticle) []domain.RawArticle {
	if len(indices) > s.topK {
		indices = indices[:s.topK]
	}

	seen := make(map[int]bool, len(indices))
	var selected []domain.RawArticle
	for _, idx := range indices {
		if idx < 0 || idx >= len(candidates) || seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, candidates[idx])
	}
	return selected
}

func (s *Selector) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
