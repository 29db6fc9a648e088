package ports

import (
	"context"
	"time"

	"stocknews/internal/domain"
)

// ArticleSource aggregates fresh candidates from all configured adapters.
type ArticleSource interface {
	FetchAll(ctx context.Context) ([]domain.RawArticle, error)
}

// ArticleRepository is the durable store of enriched articles. Title is the
// natural dedup key; ExistingTitles answers the batch membership question.
type ArticleRepository interface {
	ExistingTitles(ctx context.Context, titles []string) (map[string]bool, error)
	Create(ctx context.Context, article domain.BlogArticle) (domain.BlogArticle, error)
	ListAll(ctx context.Context) ([]domain.BlogArticle, error)
	FindByID(ctx context.Context, id int64) (*domain.BlogArticle, error)
	FindByTitle(ctx context.Context, title string) (*domain.BlogArticle, error)
	FindByMetaTitle(ctx context.Context, metaTitle string) (*domain.BlogArticle, error)
	SearchByTitle(ctx context.Context, query string) ([]domain.BlogArticle, error)
}

// ContentGenerator produces the blog body and SEO fields for one candidate.
// A nil result with nil error means the model produced nothing usable and
// the candidate must be skipped.
type ContentGenerator interface {
	Generate(ctx context.Context, title, description string) (*domain.GeneratedContent, error)
}

// SelectionOracle ranks new candidates and returns at most k indices into
// the candidate slice, highest impact first.
type SelectionOracle interface {
	SelectTop(ctx context.Context, candidates []domain.RawArticle, k int) ([]int, error)
}

// ImageGenerator produces a local image asset for a candidate. An empty
// path with nil error means no image could be produced.
type ImageGenerator interface {
	Generate(ctx context.Context, title, description, referenceImageURL string) (string, error)
}

// ObjectUploader pushes a local asset to durable object storage and
// returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}

// Scheduler controls when pipeline cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
