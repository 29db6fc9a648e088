package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"stocknews/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// metaImageConcurrency bounds secondary article-page fetches; these multiply
// request volume and must stay rate-respectful.
const metaImageConcurrency = 4

var whitespaceExpr = regexp.MustCompile(`\s+`)

// Fetcher is the shared HTTP layer of all adapters: one client, one
// user-agent, one timeout policy.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewFetcher wires an HTTP client; a nil client gets a 10s timeout default.
func NewFetcher(client *http.Client, userAgent string, log *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Fetcher{client: client, userAgent: userAgent, logger: log}
}

// Document fetches one page and parses it. Callers treat any error as an
// empty contribution for that section.
func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// metaImage fetches the article page and reads its og:image (falling back
// to twitter:image). Empty string when nothing usable is found.
func (f *Fetcher) metaImage(ctx context.Context, articleURL string) string {
	doc, err := f.Document(ctx, articleURL)
	if err != nil {
		return ""
	}

	if img, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && img != "" {
		return img
	}
	if img, ok := doc.Find(`meta[name="twitter:image"]`).First().Attr("content"); ok && img != "" {
		return img
	}
	return ""
}

// fillMetaImages resolves missing images via bounded concurrent
// article-page fetches. Failures leave the field empty.
func (f *Fetcher) fillMetaImages(ctx context.Context, items []domain.RawArticle) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metaImageConcurrency)

	for i := range items {
		if items[i].ImageURL != "" || items[i].URL == "" {
			continue
		}
		g.Go(func() error {
			items[i].ImageURL = f.metaImage(gctx, items[i].URL)
			return nil
		})
	}
	_ = g.Wait()
}

func (f *Fetcher) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}

// cleanText collapses runs of whitespace and trims the result.
func cleanText(text string) string {
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " "))
}

// resolveURL turns a relative href into an absolute URL against the origin
// of the listing page it was found on.
func resolveURL(pageURL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// firstAttr returns the first non-empty attribute value among names.
func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := sel.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}
