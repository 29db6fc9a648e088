package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// Investing scrapes the stock-market and commodities news listings of
// in.investing.com.
type Investing struct {
	fetcher  *Fetcher
	sections []string
	limit    int
}

var _ scrape.Source = (*Investing)(nil)

// NewInvesting wires the adapter; limit caps entries per section.
func NewInvesting(f *Fetcher, limit int) *Investing {
	return &Investing{
		fetcher: f,
		sections: []string{
			"https://in.investing.com/news/stock-market-news",
			"https://in.investing.com/news/commodities-news",
		},
		limit: limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *Investing) Name() string { return "investing" }

// Fetch walks both listing sections. A failed section contributes nothing.
func (s *Investing) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	var items []domain.RawArticle
	for _, section := range s.sections {
		doc, err := s.fetcher.Document(ctx, section)
		if err != nil {
			s.fetcher.warn("section failed", "source", s.Name(), "url", section, "error", err)
			continue
		}
		items = append(items, s.extract(doc, section)...)
	}
	return items, nil
}

func (s *Investing) extract(doc *goquery.Document, sectionURL string) []domain.RawArticle {
	var items []domain.RawArticle

	doc.Find("article").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("a.title").First()
		if titleEl.Length() == 0 {
			return true
		}

		items = append(items, domain.RawArticle{
			Title:    cleanText(titleEl.Text()),
			ImageURL: firstAttr(el.Find("img").First(), "src"),
			URL:      resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source:   "Investing.com India",
		})
		return true
	})

	return items
}
