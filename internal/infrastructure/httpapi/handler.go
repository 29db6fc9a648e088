package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"stocknews/internal/domain"
	"stocknews/internal/ports"
	"stocknews/internal/usecase"
)

// apiResponse is the common envelope returned by every endpoint.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, apiResponse{Status: "success", Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, apiResponse{Status: "error", Message: message})
}

// Handler exposes the stored articles and the manual cycle trigger.
type Handler struct {
	repo     ports.ArticleRepository
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

func NewHandler(repo ports.ArticleRepository, pipeline *usecase.Pipeline, log *slog.Logger) *Handler {
	return &Handler{repo: repo, pipeline: pipeline, logger: log}
}

// ListNews returns every stored article, newest first.
func (h *Handler) ListNews(c echo.Context) error {
	articles, err := h.repo.ListAll(c.Request().Context())
	if err != nil {
		h.logger.Error("list articles", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to fetch news")
	}
	if articles == nil {
		articles = []domain.BlogArticle{}
	}
	return ok(c, "news fetched successfully", articles)
}

// GetNewsByID returns one article by numeric id.
func (h *Handler) GetNewsByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	article, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("find article by id", "id", id, "error", err)
		return fail(c, http.StatusInternalServerError, "failed to fetch news")
	}
	if article == nil {
		return fail(c, http.StatusNotFound, "news not found")
	}
	return ok(c, "news fetched successfully", article)
}

// GetNewsByMetaTitle resolves an article by its exact SEO title, the key
// the rendered blog pages link with.
func (h *Handler) GetNewsByMetaTitle(c echo.Context) error {
	metaTitle := c.QueryParam("meta_title")
	if metaTitle == "" {
		return fail(c, http.StatusBadRequest, "meta_title is required")
	}
	article, err := h.repo.FindByMetaTitle(c.Request().Context(), metaTitle)
	if err != nil {
		h.logger.Error("find article by meta title", "error", err)
		return fail(c, http.StatusInternalServerError, "failed to fetch news")
	}
	if article == nil {
		return fail(c, http.StatusNotFound, "news not found")
	}
	return ok(c, "news fetched successfully", article)
}

// SearchNews matches stored articles by title substring.
func (h *Handler) SearchNews(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return fail(c, http.StatusBadRequest, "q is required")
	}
	articles, err := h.repo.SearchByTitle(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("search articles", "query", query, "error", err)
		return fail(c, http.StatusInternalServerError, "failed to search news")
	}
	if articles == nil {
		articles = []domain.BlogArticle{}
	}
	return ok(c, "news fetched successfully", articles)
}

// TriggerScrape runs one full aggregation cycle on demand.
func (h *Handler) TriggerScrape(c echo.Context) error {
	result, err := h.pipeline.RunCycle(c.Request().Context())
	if err != nil {
		if errors.Is(err, usecase.ErrCycleRunning) {
			return fail(c, http.StatusConflict, "a scrape cycle is already running")
		}
		h.logger.Error("manual cycle failed", "error", err)
		return fail(c, http.StatusInternalServerError, "scrape cycle failed")
	}
	return ok(c, "scraping completed", result)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
