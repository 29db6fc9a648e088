package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// LiveMint scrapes the market sections of livemint.com. Mint alternates
// between a list view and a card view, so extraction falls back to the
// card selectors when the list view yields nothing.
type LiveMint struct {
	fetcher  *Fetcher
	sections []string
	limit    int
}

var _ scrape.Source = (*LiveMint)(nil)

// NewLiveMint wires the adapter; limit caps entries per section.
func NewLiveMint(f *Fetcher, limit int) *LiveMint {
	return &LiveMint{
		fetcher: f,
		sections: []string{
			"https://www.livemint.com/market/stock-market-news",
			"https://www.livemint.com/market/commodities",
		},
		limit: limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *LiveMint) Name() string { return "livemint" }

// Fetch walks both listing sections. A failed section contributes nothing.
func (s *LiveMint) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
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

func (s *LiveMint) extract(doc *goquery.Document, sectionURL string) []domain.RawArticle {
	var items []domain.RawArticle

	doc.Find("#listView .listtostory").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find(".headline a").First()
		imgEl := el.Find(".thumbnail img").First()

		items = append(items, domain.RawArticle{
			Title:       cleanText(titleEl.Text()),
			Description: cleanText(el.Find("h2.intro").First().Text()),
			ImageURL:    firstAttr(imgEl, "data-src", "src"),
			URL:         resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source:      "LiveMint",
		})
		return true
	})

	if len(items) > 0 {
		return items
	}

	// Card view fallback.
	doc.Find(".listingSec .listing").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("h2 a").First()
		items = append(items, domain.RawArticle{
			Title:  cleanText(titleEl.Text()),
			URL:    resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source: "LiveMint",
		})
		return true
	})

	return items
}
