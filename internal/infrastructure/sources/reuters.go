package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// Reuters scrapes the India section of reuters.com. Listings carry no
// images, so missing ones are resolved from the article pages.
type Reuters struct {
	fetcher *Fetcher
	listing string
	limit   int
}

var _ scrape.Source = (*Reuters)(nil)

// NewReuters wires the adapter; limit caps extracted entries.
func NewReuters(f *Fetcher, limit int) *Reuters {
	return &Reuters{
		fetcher: f,
		listing: "https://www.reuters.com/world/india/",
		limit:   limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *Reuters) Name() string { return "reuters" }

// Fetch reads the single section page.
func (s *Reuters) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	doc, err := s.fetcher.Document(ctx, s.listing)
	if err != nil {
		s.fetcher.warn("section failed", "source", s.Name(), "url", s.listing, "error", err)
		return nil, nil
	}

	var items []domain.RawArticle
	doc.Find(`li[class*="story-collection"]`).EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find(`a[data-testid="Heading"]`).First()
		if titleEl.Length() == 0 {
			return true
		}

		items = append(items, domain.RawArticle{
			Title:  cleanText(titleEl.Text()),
			URL:    resolveURL(s.listing, firstAttr(titleEl, "href")),
			Source: "Reuters India",
		})
		return true
	})

	s.fetcher.fillMetaImages(ctx, items)
	return items, nil
}
