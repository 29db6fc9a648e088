package imagegen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"stocknews/internal/config"
	"stocknews/internal/ports"
)

// Service produces one local image asset per candidate: Imagen first,
// Pexels photo search as fallback, watermark applied to whichever
// succeeded. An empty path with nil error means no asset could be
// produced and the caller should substitute the configured fallback URL.
type Service struct {
	imagen      *ImagenClient
	pexels      *PexelsClient
	watermarker *Watermarker
	logger      *slog.Logger
}

var _ ports.ImageGenerator = (*Service)(nil)

// NewService wires the image pipeline from configuration.
func NewService(cfg config.ImagesConfig, geminiAPIKey string, log *slog.Logger) *Service {
	return &Service{
		imagen:      NewImagenClient(cfg.ImagenURL, geminiAPIKey, cfg.SaveDir),
		pexels:      NewPexelsClient(cfg.PexelsAPIKey, cfg.SaveDir),
		watermarker: NewWatermarker(cfg.LogoPath),
		logger:      log,
	}
}

// Generate returns the path of a watermarked local asset for the
// candidate, or "" when neither provider produced one.
func (s *Service) Generate(ctx context.Context, title, description, referenceImageURL string) (string, error) {
	filename := fmt.Sprintf("article_%s.png", uuid.NewString())
	prompt := SynthesizePrompt(title, description)

	path, err := s.imagen.Generate(ctx, prompt, filename)
	if err != nil {
		s.warn("imagen generation failed", "title", title, "error", err)

		path, err = s.pexels.Fetch(ctx, extractVisualEntity(title, description), filename)
		if err != nil {
			s.warn("pexels fallback failed", "title", title, "error", err)
			return "", nil
		}
	}

	watermarked, err := s.watermarker.Apply(path)
	if err != nil {
		s.warn("watermarking failed, keeping plain asset", "path", path, "error", err)
		return path, nil
	}

	return watermarked, nil
}

func (s *Service) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
