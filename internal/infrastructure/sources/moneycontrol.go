package sources

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"stocknews/internal/domain"
	"stocknews/internal/scrape"
)

// MoneyControl scrapes the stocks and commodities listings of
// moneycontrol.com.
type MoneyControl struct {
	fetcher  *Fetcher
	sections []string
	limit    int
}

var _ scrape.Source = (*MoneyControl)(nil)

// NewMoneyControl wires the adapter; limit caps entries per section.
func NewMoneyControl(f *Fetcher, limit int) *MoneyControl {
	return &MoneyControl{
		fetcher: f,
		sections: []string{
			"https://www.moneycontrol.com/news/business/stocks/",
			"https://www.moneycontrol.com/news/business/commodities/",
		},
		limit: limit,
	}
}

// Name identifies the adapter inside the registry.
func (s *MoneyControl) Name() string { return "moneycontrol" }

// Fetch walks both listing sections. A failed section contributes nothing.
func (s *MoneyControl) Fetch(ctx context.Context) ([]domain.RawArticle, error) {
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

func (s *MoneyControl) extract(doc *goquery.Document, sectionURL string) []domain.RawArticle {
	var items []domain.RawArticle

	doc.Find("li.clearfix").EachWithBreak(func(i int, el *goquery.Selection) bool {
		if len(items) >= s.limit {
			return false
		}

		titleEl := el.Find("h2 a").First()
		imgEl := el.Find("img").First()

		title := cleanText(firstAttr(titleEl, "title"))
		if title == "" {
			title = cleanText(titleEl.Text())
		}

		items = append(items, domain.RawArticle{
			Title:       title,
			Description: cleanText(el.Find("p").First().Text()),
			ImageURL:    firstAttr(imgEl, "data-src", "src"),
			URL:         resolveURL(sectionURL, firstAttr(titleEl, "href")),
			Source:      "MoneyControl",
		})
		return true
	})

	return items
}
