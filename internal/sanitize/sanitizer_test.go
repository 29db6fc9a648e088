package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLKeepsBlogStructure(t *testing.T) {
	t.Parallel()

	s := New()
	in := "<h1>Sensex rallies</h1><h2>Why it matters</h2><p>Banks led gains.</p><ul><li>HDFC</li></ul>"
	got := s.HTML(in)

	for _, tag := range []string{"<h1>", "<h2>", "<p>", "<ul>", "<li>"} {
		if !strings.Contains(got, tag) {
			t.Fatalf("expected %s to survive, got %q", tag, got)
		}
	}
}

func TestHTMLStripsScripts(t *testing.T) {
	t.Parallel()

	s := New()
	got := s.HTML(`<p>ok</p><script>alert(1)</script><p onclick="x()">click</p>`)

	if strings.Contains(got, "script") || strings.Contains(got, "alert") {
		t.Fatalf("script content must be stripped: %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("event handlers must be stripped: %q", got)
	}
}

func TestHTMLForcesNoFollowLinks(t *testing.T) {
	t.Parallel()

	s := New()
	got := s.HTML(`<p><a href="https://example.com">src</a></p>`)

	if !strings.Contains(got, `rel="nofollow"`) {
		t.Fatalf("expected nofollow on links, got %q", got)
	}
}

func TestHTMLTrimsWhitespace(t *testing.T) {
	t.Parallel()

	s := New()
	if got := s.HTML("\n  <p>x</p>  \n"); got != "<p>x</p>" {
		t.Fatalf("expected trimmed output, got %q", got)
	}
}
