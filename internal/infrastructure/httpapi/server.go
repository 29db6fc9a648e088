package httpapi

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the echo instance and its route table.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// NewServer registers all routes on a fresh echo instance.
func NewServer(addr string, h *Handler, reg *prometheus.Registry, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.GET("/news", h.ListNews)
	api.GET("/news/scrape", h.TriggerScrape)
	api.GET("/news/search", h.SearchNews)
	api.GET("/news/by-meta-title", h.GetNewsByMetaTitle)
	api.GET("/news/:id", h.GetNewsByID)

	return &Server{echo: e, addr: addr, logger: log}
}

// Start blocks serving until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
