package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// BusinessStandard scrapes the markets category pages of
// business-standard.com. Listings carry no images, so missing ones are
// resolved from the article pages' og:image tags.
type BusinessStandard struct {
	fetcher  *Fetcher
	sections []string
	limit    int
}

var _ scrape.Source = (*BusinessStandard)(nil)

// NewBusinessStandard wires the adapter; limit caps entries per section.
func NewBusinessStandard(f *Fetcher, limit int) *BusinessStandard {
	return &BusinessStandard{
		fetcher: f,
		sections: []string{
			"https://www.business-standard.com/category/markets-news-1060101.htm",
			"https://www.business-standard.com/category/markets-commodities-1060601.htm",
		},
		limit: limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *BusinessStandard) Name() string { return "businessstandard" }

// Fetch walks both listing sections. A failed section contributes nothing.
func (s *BusinessStandard) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	var items []domain.RawArticle
	for _, section := range s.sections {
		doc, err := s.fetcher.Document(ctx, section)
		if err != nil {
			s.fetcher.warn("section failed", "source", s.Name(), "url", section, "error", err)
			continue
		}
		items = append(items, s.extract(doc, section)...)
	}

	s.fetcher.fillMetaImages(ctx, items)
	return items, nil
}

func (s *BusinessStandard) extract(doc *goquery.Document, sectionURL string) []domain.RawArticle {
	var items []domain.RawArticle

	doc.Find(".listing-txt").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("h2 a").First()

		items = append(items, domain.RawArticle{
			Title:       cleanText(titleEl.Text()),
			Description: cleanText(el.Find("p").First().Text()),
			URL:         resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source:      "Business Standard",
		})
		return true
	})

	return items
}
