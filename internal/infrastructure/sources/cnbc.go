package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// CNBC scrapes the asia-markets section of cnbc.com, the closest static
// section covering Indian markets.
type CNBC struct {
	fetcher *Fetcher
	listing string
	limit   int
}

var _ scrape.Source = (*CNBC)(nil)

// NewCNBC wires the adapter; limit caps extracted entries.
func NewCNBC(f *Fetcher, limit int) *CNBC {
	return &CNBC{
		fetcher: f,
		listing: "https://www.cnbc.com/asia-markets/",
		limit:   limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *CNBC) Name() string { return "cnbc" }

// Fetch reads the single section page.
func (s *CNBC) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	doc, err := s.fetcher.Document(ctx, s.listing)
	if err != nil {
		s.fetcher.warn("section failed", "source", s.Name(), "url", s.listing, "error", err)
		return nil, nil
	}

	var items []domain.RawArticle
	doc.Find(".Card-titleContainer").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("a").First()
		href := firstAttr(titleEl, "href")
		if href == "" {
			return true
		}

		items = append(items, domain.RawArticle{
			Title:  cleanText(titleEl.Text()),
			URL:    resolveURL(s.listing, href),
			Source: "CNBC Asia",
		})
		return true
	})

	return items, nil
}
