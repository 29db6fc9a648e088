package sources

import (
	"context"

	"github.com/mmcdole/gofeed"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// ETMarketsRSS reads the ET Markets RSS feed. It backstops the HTML
// adapters: feed markup is stable while listing markup drifts.
type ETMarketsRSS struct {
	parser  *gofeed.Parser
	feedURL string
	limit   int
}

var _ scrape.Source = (*ETMarketsRSS)(nil)

// NewETMarketsRSS wires the adapter; limit caps extracted entries.
func NewETMarketsRSS(limit int) *ETMarketsRSS {
	return &ETMarketsRSS{
		parser:  gofeed.NewParser(),
		feedURL: "https://economictimes.indiatimes.com/markets/stocks/rssfeeds/2146842.cms",
		limit:   limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *ETMarketsRSS) Name() string { return "etmarkets-rss" }

// Fetch parses the feed and maps its items to raw articles.
func (s *ETMarketsRSS) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var items []domain.RawArticle
	for _, item := range feed.Items {
		if len(items) >= s.limit {
			break
		}

		image := ""
		if item.Image != nil {
			image = item.Image.URL
		} else if len(item.Enclosures) > 0 {
			image = item.Enclosures[0].URL
		}

		items = append(items, domain.RawArticle{
			Title:       cleanText(item.Title),
			Description: cleanText(item.Description),
			ImageURL:    image,
			URL:         item.Link,
			Source:      "ET Markets",
		})
	}

	return items, nil
}
