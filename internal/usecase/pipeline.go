package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"stocknews/internal/domain"
	"stocknews/internal/infrastructure/objectstore"
	"stocknews/internal/metrics"
	"stocknews/internal/ports"
	"stocknews/internal/sanitize"
)

// ErrCycleRunning is returned when a trigger arrives while another cycle
// holds the run lease.
var ErrCycleRunning = errors.New("a pipeline cycle is already running")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source        ports.ArticleSource
	Repository    ports.ArticleRepository
	Selector      *Selector
	Content       ports.ContentGenerator
	Images        ports.ImageGenerator
	Uploader      ports.ObjectUploader
	Sanitizer     *sanitize.Sanitizer
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	Location      *time.Location
	FallbackImage string
}

// Pipeline implements one aggregate-dedup-select-enrich-persist cycle.
type Pipeline struct {
	source        ports.ArticleSource
	repository    ports.ArticleRepository
	selector      *Selector
	content       ports.ContentGenerator
	images        ports.ImageGenerator
	uploader      ports.ObjectUploader
	sanitizer     *sanitize.Sanitizer
	metrics       *metrics.Metrics
	logger        *slog.Logger
	location      *time.Location
	fallbackImage string

	runMu sync.Mutex
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Pipeline{
		source:        deps.Source,
		repository:    deps.Repository,
		selector:      deps.Selector,
		content:       deps.Content,
		images:        deps.Images,
		uploader:      deps.Uploader,
		sanitizer:     deps.Sanitizer,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		location:      loc,
		fallbackImage: deps.FallbackImage,
	}
}

// RunCycle executes one full cycle. Candidate-level failures are logged
// and skipped; only a failure before enrichment starts (sources
// unavailable is not one — that just means fewer candidates) surfaces as
// an error. Overlapping runs are rejected with ErrCycleRunning.
func (p *Pipeline) RunCycle(ctx context.Context) (domain.CycleResult, error) {
	if !p.runMu.TryLock() {
		return domain.CycleResult{}, ErrCycleRunning
	}
	defer p.runMu.Unlock()

	if p.source == nil || p.repository == nil {
		return domain.CycleResult{}, fmt.Errorf("pipeline is not fully wired")
	}

	scraped, err := p.source.FetchAll(ctx)
	if err != nil {
		return domain.CycleResult{}, fmt.Errorf("aggregate sources: %w", err)
	}

	result := domain.CycleResult{TotalScraped: len(scraped), Data: scraped}

	fresh, err := p.filterKnown(ctx, scraped)
	if err != nil {
		return domain.CycleResult{}, err
	}
	p.info("dedup done", "scraped", len(scraped), "new", len(fresh))

	selected := fresh
	if p.selector != nil {
		selected = p.selector.Select(ctx, fresh)
	}

	for _, cand := range selected {
		if err := p.processCandidate(ctx, cand); err != nil {
			p.error("candidate failed", "title", cand.Title, "error", err)
			continue
		}
		result.SavedNew++
		p.info("saved new article", "title", cand.Title, "source", cand.Source)
	}

	if p.metrics != nil {
		p.metrics.CyclesTotal.Inc()
		p.metrics.ScrapedTotal.Add(float64(result.TotalScraped))
		p.metrics.SavedTotal.Add(float64(result.SavedNew))
	}

	return result, nil
}

// filterKnown drops candidates whose title already exists in the store,
// and collapses duplicate titles within the batch so one cycle never
// tries to insert the same title twice.
func (p *Pipeline) filterKnown(ctx context.Context, scraped []domain.RawArticle) ([]domain.RawArticle, error) {
	if len(scraped) == 0 {
		return nil, nil
	}

	titles := make([]string, len(scraped))
	for i, art := range scraped {
		titles[i] = art.Title
	}

	existing, err := p.repository.ExistingTitles(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("load existing titles: %w", err)
	}

	seen := make(map[string]bool)
	var fresh []domain.RawArticle
	for _, art := range scraped {
		if existing[art.Title] || seen[art.Title] {
			continue
		}
		seen[art.Title] = true
		fresh = append(fresh, art)
	}
	return fresh, nil
}

// processCandidate runs full enrichment and persistence for one candidate
// as a unit of work. Content failure aborts the candidate before anything
// is written; image failure degrades to the fallback reference.
func (p *Pipeline) processCandidate(ctx context.Context, cand domain.RawArticle) error {
	if p.content == nil {
		return fmt.Errorf("content generator is not configured")
	}

	content, err := p.content.Generate(ctx, cand.Title, cand.Description)
	if err != nil || content == nil {
		if p.metrics != nil {
			p.metrics.SkippedContent.Inc()
		}
		if err == nil {
			err = fmt.Errorf("no usable content")
		}
		return fmt.Errorf("content generation for %q: %w", cand.Title, err)
	}

	blogHTML := content.BlogHTML
	if p.sanitizer != nil {
		blogHTML = p.sanitizer.HTML(blogHTML)
	}

	now := time.Now().In(p.location)
	aiImage := p.acquireImage(ctx, cand, now)

	article := domain.BlogArticle{
		Title:           cand.Title,
		Description:     cand.Description,
		NewsImage:       cand.ImageURL,
		AIImage:         aiImage,
		Source:          cand.Source,
		MetaTitle:       content.MetaTitle,
		MetaDescription: content.MetaDescription,
		BlogHTML:        blogHTML,
		Time:            now.Format("15:04:05"),
		CreatedAt:       now.Format("2006-01-02"),
	}

	if _, err := p.repository.Create(ctx, article); err != nil {
		return fmt.Errorf("persist %q: %w", cand.Title, err)
	}
	return nil
}

// acquireImage generates and uploads the candidate's image, substituting
// the configured fallback on any failure along the way.
func (p *Pipeline) acquireImage(ctx context.Context, cand domain.RawArticle, now time.Time) string {
	if p.images == nil || p.uploader == nil {
		return p.fallback(cand)
	}

	localPath, err := p.images.Generate(ctx, cand.Title, cand.Description, cand.ImageURL)
	if err != nil || localPath == "" {
		p.warn("image generation failed", "title", cand.Title, "error", err)
		return p.fallback(cand)
	}

	remoteURL, err := p.uploader.Upload(ctx, localPath, objectstore.ObjectKey(cand.Title, now))
	if err != nil {
		p.warn("image upload failed", "title", cand.Title, "error", err)
		return p.fallback(cand)
	}

	return remoteURL
}

func (p *Pipeline) fallback(cand domain.RawArticle) string {
	if p.metrics != nil {
		p.metrics.FallbackImages.Inc()
	}
	p.warn("using fallback image", "title", cand.Title)
	return p.fallbackImage
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
