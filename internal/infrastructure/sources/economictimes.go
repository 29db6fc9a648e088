package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// EconomicTimes scrapes the markets sections of
// economictimes.indiatimes.com.
type EconomicTimes struct {
	fetcher  *Fetcher
	sections []string
	limit    int
}

var _ scrape.Source = (*EconomicTimes)(nil)

// NewEconomicTimes wires the adapter; limit caps entries per section.
func NewEconomicTimes(f *Fetcher, limit int) *EconomicTimes {
	return &EconomicTimes{
		fetcher: f,
		sections: []string{
			"https://economictimes.indiatimes.com/markets/stocks/news",
			"https://economictimes.indiatimes.com/markets/commodities/news",
		},
		limit: limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *EconomicTimes) Name() string { return "economictimes" }

// Fetch walks both listing sections. A failed section contributes nothing.
func (s *EconomicTimes) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
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

func (s *EconomicTimes) extract(doc *goquery.Document, sectionURL string) []domain.RawArticle {
	var items []domain.RawArticle

	doc.Find("div.eachStory").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("h3 a").First()
		imgEl := el.Find("span.imgContainer img").First()

		items = append(items, domain.RawArticle{
			Title:       cleanText(titleEl.Text()),
			Description: cleanText(el.Find("p").First().Text()),
			ImageURL:    firstAttr(imgEl, "data-original", "src"),
			URL:         resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source:      "Economic Times",
		})
		return true
	})

	return items
}
