package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Generative models return JSON wrapped in markdown fences and, at times,
// with trailing commas. Those two defects are normalized away; anything
// else unparseable is a ParseError. No other coercion happens on this
// channel.

var (
	fenceExpr         = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")
	trailingCommaExpr = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseError reports an unusable model payload.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// normalizePayload strips a surrounding markdown code fence and trailing
// commas before closing brackets.
func normalizePayload(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fenceExpr.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return trailingCommaExpr.ReplaceAllString(s, "$1")
}

// decodeStrict normalizes raw and unmarshals it into v, rejecting unknown
// fields so a drifting response shape surfaces instead of silently passing.
func decodeStrict(raw string, v any) error {
	payload := normalizePayload(raw)

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
