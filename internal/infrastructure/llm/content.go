package llm

import (
	"context"
	"fmt"

	"stocknews/internal/domain"
	"stocknews/internal/ports"
)

var _ ports.ContentGenerator = (*Client)(nil)

const contentPromptTemplate = `You are an expert financial stock market analyst and blogger.
Write a detailed, engaging blog post (approximately 500 words) based on the following news:

News Title: %s
News Description: %s

Format the blog body specifically as HTML.
- Use <h1> for the main title.
- Use <h2> for subheadings.
- Use <p> for paragraphs.
- Use <ul> or <ol> if listing points.
- Do not include <html>, <head>, or <body> tags, just the content structure.
- Make it SEO friendly and professional.

OUTPUT FORMAT:
Return a JSON object with exactly these keys:
{"blog_html": "<h1>...</h1>...", "meta_title": "...", "meta_description": "..."}

meta_title must be at most 60 characters, meta_description at most 160.
Return ONLY valid JSON.`

type contentPayload struct {
	BlogHTML        string `json:"blog_html"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

// Generate asks Gemini for the blog body and SEO fields of one candidate.
// Any malformed or incomplete payload is an error; the caller skips the
// candidate rather than persisting a partial record.
func (c *Client) Generate(ctx context.Context, title, description string) (*domain.GeneratedContent, error) {
	prompt := fmt.Sprintf(contentPromptTemplate, title, description)

	raw, err := c.generateText(ctx, c.contentModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	var payload contentPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	if payload.BlogHTML == "" || payload.MetaTitle == "" || payload.MetaDescription == "" {
		return nil, fmt.Errorf("content generation: incomplete payload for %q", title)
	}

	c.debug("content generated", "title", title, "blog_bytes", len(payload.BlogHTML))
	return &domain.GeneratedContent{
		BlogHTML:        payload.BlogHTML,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
	}, nil
}
