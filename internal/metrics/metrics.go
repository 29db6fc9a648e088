package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline counters. Registered once per process and
// injected, not global.
type Metrics struct {
	CyclesTotal     prometheus.Counter
	ScrapedTotal    prometheus.Counter
	SavedTotal      prometheus.Counter
	SkippedContent  prometheus.Counter
	FallbackImages  prometheus.Counter
	SourceFailures  *prometheus.CounterVec
	OracleFallbacks prometheus.Counter
}

// New creates and registers the counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_cycles_total",
			Help: "Completed pipeline cycles.",
		}),
		ScrapedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_scraped_articles_total",
			Help: "Raw articles aggregated across all sources.",
		}),
		SavedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_saved_articles_total",
			Help: "Enriched articles persisted.",
		}),
		SkippedContent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_skipped_content_total",
			Help: "Candidates skipped because content generation produced nothing usable.",
		}),
		FallbackImages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_fallback_images_total",
			Help: "Articles persisted with the fallback image.",
		}),
		SourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocknews_source_failures_total",
			Help: "Source adapter failures by source name.",
		}, []string{"source"}),
		OracleFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocknews_oracle_fallbacks_total",
			Help: "Selection cycles that fell back to scrape order.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.CyclesTotal, m.ScrapedTotal, m.SavedTotal,
			m.SkippedContent, m.FallbackImages, m.SourceFailures, m.OracleFallbacks)
	}

	return m
}
