package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from AI-generated blog HTML before it is
// persisted. The model is prompted for a fixed structural subset, but its
// output is untrusted like any other wire input.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds the policy for blog bodies.
func New() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowElements("h1", "h2", "h3")
	p.RequireNoFollowOnLinks(true)

	return &Sanitizer{policy: p}
}

// HTML sanitizes and trims the given markup.
func (s *Sanitizer) HTML(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
