package llm

import (
	"context"
	"fmt"
	"strings"

	"stocknews/internal/domain"
	"stocknews/internal/ports"
)

var _ ports.SelectionOracle = (*Client)(nil)

const selectionPromptTemplate = `You are an expert Indian Stock Market Analyst.
Your task is to review the following list of news articles and identify exactly %d of them that are the MOST impactful for an Indian stock market trader right now.

Criteria for selection:
1. Material Impact: News that will move specific stocks or sectors immediately.
2. Credibility: Prefer reliable sources and factual developments over opinion.
3. Market Relevance: Prioritize earnings results, regulatory changes, macro data, or major corporate actions.

INPUT NEWS LIST:
%s

OUTPUT FORMAT:
Return a JSON object containing an array of the %d selected Article IDs.
Example: {"selected_ids": [0]}

Return ONLY valid JSON.`

type selectionPayload struct {
	SelectedIDs []int `json:"selected_ids"`
}

// SelectTop submits a compact candidate listing to Gemini and returns the
// selected indices, unvalidated. Bounds checking and the first-k fallback
// are the caller's concern.
func (c *Client) SelectTop(ctx context.Context, candidates []domain.RawArticle, k int) ([]int, error) {
	var listing strings.Builder
	for i, cand := range candidates {
		fmt.Fprintf(&listing, "Article ID: %d\nTitle: %s\nSource: %s\nDescription: %s\n-------------------\n",
			i, cand.Title, cand.Source, cand.Description)
	}

	prompt := fmt.Sprintf(selectionPromptTemplate, k, listing.String(), k)

	raw, err := c.generateText(ctx, c.selectionModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("selection oracle: %w", err)
	}

	var payload selectionPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, fmt.Errorf("selection oracle: %w", err)
	}

	c.debug("oracle selection", "candidates", len(candidates), "selected", payload.SelectedIDs)
	return payload.SelectedIDs, nil
}
