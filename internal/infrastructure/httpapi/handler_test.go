package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocknews/internal/domain"
	"stocknews/internal/infrastructure/httpapi"
	"stocknews/internal/usecase"
)

type stubRepo struct {
	articles []domain.BlogArticle
	err      error
}

func (s *stubRepo) ExistingTitles(ctx context.Context, titles []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (s *stubRepo) Create(ctx context.Context, article domain.BlogArticle) (domain.BlogArticle, error) {
	s.articles = append(s.articles, article)
	return article, nil
}

func (s *stubRepo) ListAll(ctx context.Context) ([]domain.BlogArticle, error) {
	return s.articles, s.err
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*domain.BlogArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.articles {
		if s.articles[i].ID == id {
			return &s.articles[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) FindByTitle(ctx context.Context, title string) (*domain.BlogArticle, error) {
	return nil, nil
}

func (s *stubRepo) FindByMetaTitle(ctx context.Context, metaTitle string) (*domain.BlogArticle, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.articles {
		if s.articles[i].MetaTitle == metaTitle {
			return &s.articles[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) SearchByTitle(ctx context.Context, query string) ([]domain.BlogArticle, error) {
	return s.articles, s.err
}

type blockingSource struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSource) FetchAll(ctx context.Context) ([]domain.RawArticle, error) {
	close(b.started)
	<-b.release
	return nil, nil
}

func newHandler(repo *stubRepo, pipeline *usecase.Pipeline) *httpapi.Handler {
	return httpapi.NewHandler(repo, pipeline, slog.Default())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListNews(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{articles: []domain.BlogArticle{
		{ID: 1, Title: "Sensex rallies"},
		{ID: 2, Title: "Nifty slips"},
	}}
	h := newHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListNews(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Len(t, body["data"], 2)
}

func TestListNewsEmptyStoreReturnsEmptyArray(t *testing.T) {
	e := echo.New()
	h := newHandler(&stubRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListNews(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestGetNewsByID(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{articles: []domain.BlogArticle{{ID: 7, Title: "Gold hits record"}}}
	h := newHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/news/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.GetNewsByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gold hits record")
}

func TestGetNewsByIDNotFound(t *testing.T) {
	e := echo.New()
	h := newHandler(&stubRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/news/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, h.GetNewsByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNewsByIDInvalid(t *testing.T) {
	e := echo.New()
	h := newHandler(&stubRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/news/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.GetNewsByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNewsByMetaTitle(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{articles: []domain.BlogArticle{{ID: 1, MetaTitle: "Sensex Today"}}}
	h := newHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news/by-meta-title?meta_title=Sensex+Today", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetNewsByMetaTitle(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sensex Today")
}

func TestSearchNewsRequiresQuery(t *testing.T) {
	e := echo.New()
	h := newHandler(&stubRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SearchNews(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListNewsRepositoryError(t *testing.T) {
	e := echo.New()
	h := newHandler(&stubRepo{err: errors.New("connection refused")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListNews(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "error", body["status"])
}

func TestTriggerScrape(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{}
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     &blockingSource{started: make(chan struct{}), release: closedChan()},
		Repository: repo,
		Selector:   usecase.NewSelector(nil, 1, nil, nil),
	})
	h := newHandler(repo, pipeline)

	req := httptest.NewRequest(http.MethodGet, "/api/news/scrape", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.TriggerScrape(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "success", body["status"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "totalScraped")
	assert.Contains(t, data, "savedNew")
}

func TestTriggerScrapeConflict(t *testing.T) {
	e := echo.New()
	repo := &stubRepo{}
	src := &blockingSource{started: make(chan struct{}), release: make(chan struct{})}
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     src,
		Repository: repo,
		Selector:   usecase.NewSelector(nil, 1, nil, nil),
	})
	h := newHandler(repo, pipeline)

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodGet, "/api/news/scrape", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		_ = h.TriggerScrape(c)
	}()
	<-src.started

	req := httptest.NewRequest(http.MethodGet, "/api/news/scrape", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.TriggerScrape(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(src.release)
	<-done
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
