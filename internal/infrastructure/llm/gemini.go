package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"stocknews/internal/config"
)

const defaultCallTimeout = 60 * time.Second

// Client wraps the Gemini API for content generation and candidate
// selection. One client per process, injected into the pipeline. Every
// model call carries its own deadline; a scheduled cycle must never block
// on a hung upstream.
type Client struct {
	genai          *genai.Client
	contentModel   string
	selectionModel string
	timeout        time.Duration
	logger         *slog.Logger
}

// NewClient builds the Gemini client from configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	return &Client{
		genai:          client,
		contentModel:   cfg.ContentModel,
		selectionModel: cfg.SelectionModel,
		timeout:        timeout,
		logger:         log,
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() {
	if c.genai != nil {
		_ = c.genai.Close()
	}
}

// generateText runs one prompt against the named model and returns the
// concatenated text parts of the first candidate.
func (c *Client) generateText(ctx context.Context, modelName, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.genai.GenerativeModel(modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from %s", modelName)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("no text parts in response from %s", modelName)
	}
	return out, nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
