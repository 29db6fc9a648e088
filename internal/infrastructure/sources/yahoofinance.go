package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// YahooFinance scrapes the stock-market topic stream of
// in.finance.yahoo.com.
type YahooFinance struct {
	fetcher *Fetcher
	listing string
	limit   int
}

var _ scrape.Source = (*YahooFinance)(nil)

// NewYahooFinance wires the adapter; limit caps extracted entries.
func NewYahooFinance(f *Fetcher, limit int) *YahooFinance {
	return &YahooFinance{
		fetcher: f,
		listing: "https://in.finance.yahoo.com/topic/stock-market-news",
		limit:   limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *YahooFinance) Name() string { return "yahoofinance" }

// Fetch reads the single topic stream.
func (s *YahooFinance) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
	doc, err := s.fetcher.Document(ctx, s.listing)
	if err != nil {
		s.fetcher.warn("section failed", "source", s.Name(), "url", s.listing, "error", err)
		return nil, nil
	}

	var items []domain.RawArticle
	doc.Find("li.js-stream-content").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("h3 a").First()
		if titleEl.Length() == 0 {
			return true
		}

		items = append(items, domain.RawArticle{
			Title:       cleanText(titleEl.Text()),
			Description: cleanText(el.Find("p").First().Text()),
			URL:         resolveURL(s.listing, firstAttr(titleEl, "href")),
			Source:      "Yahoo Finance India",
		})
		return true
	})

	return items, nil
}
