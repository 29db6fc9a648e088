package domain

// RawArticle is a single listing entry extracted by a source adapter.
// Values are immutable once produced; the aggregator folds them into one
// candidate list and discards the per-source slices.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// Valid reports whether the entry carries enough identity to enter the
// pipeline: a non-empty title (the dedup key) and a non-empty url.
func (a RawArticle) Valid() bool {
	return a.Title != "" && a.URL != ""
}

// GeneratedContent is the usable result of one content-generation call.
type GeneratedContent struct {
	BlogHTML        string
	MetaTitle       string
	MetaDescription string
}

// BlogArticle is the persisted shape of an enriched article, one row of
// stock_news_blog. Time and CreatedAt are recorded separately, both in the
// pipeline's fixed timezone.
type BlogArticle struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	NewsImage       string `json:"news_image"`
	AIImage         string `json:"ai_image"`
	Source          string `json:"source"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	BlogHTML        string `json:"ai_generated"`
	Time            string `json:"time"`
	CreatedAt       string `json:"created_at"`
}

// CycleResult summarizes one full aggregate-select-enrich run.
type CycleResult struct {
	TotalScraped int          `json:"totalScraped"`
	SavedNew     int          `json:"savedNew"`
	Data         []RawArticle `json:"data"`
}
