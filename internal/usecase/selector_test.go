package usecase

import (
	"context"
	"errors"
	"testing"

	"stocknews/internal/domain"
)

type fakeOracle struct {
	indices []int
	err     error
	calls   int
	gotK    int
}

func (f *fakeOracle) SelectTop(ctx context.Context, candidates []domain.RawArticle, k int) ([]int, error) {
	f.calls++
	f.gotK = k
	return f.indices, f.err
}

func candidateList(titles ...string) []domain.RawArticle {
	out := make([]domain.RawArticle, len(titles))
	for i, title := range titles {
		out[i] = domain.RawArticle{Title: title, URL: "https://example.com/" + title}
	}
	return out
}

func TestSelectEmptyCandidates(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{}
	s := NewSelector(oracle, 1, nil, nil)

	if got := s.Select(context.Background(), nil); got != nil {
		t.Fatalf("expected nil for empty candidates, got %v", got)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle must not be consulted for empty input")
	}
}

func TestSelectPassthroughWhenFewCandidates(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{}
	s := NewSelector(oracle, 3, nil, nil)

	cands := candidateList("a", "b")
	got := s.Select(context.Background(), cands)
	if len(got) != 2 {
		t.Fatalf("expected all candidates back, got %d", len(got))
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle must not be consulted when candidates fit within k")
	}
}

func TestSelectUsesOracleIndices(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{indices: []int{2}}
	s := NewSelector(oracle, 1, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b", "c"))
	if len(got) != 1 || got[0].Title != "c" {
		t.Fatalf("expected oracle pick c, got %v", got)
	}
	if oracle.gotK != 1 {
		t.Fatalf("expected k=1 passed to oracle, got %d", oracle.gotK)
	}
}

func TestSelectTruncatesOracleOverflow(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{indices: []int{1, 0, 2}}
	s := NewSelector(oracle, 2, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b", "c"))
	if len(got) != 2 {
		t.Fatalf("expected at most 2 picks, got %d", len(got))
	}
	if got[0].Title != "b" || got[1].Title != "a" {
		t.Fatalf("expected oracle order b,a, got %v", got)
	}
}

func TestSelectDropsInvalidAndDuplicateIndices(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{indices: []int{7, -1, 1, 1}}
	s := NewSelector(oracle, 4, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b", "c", "d", "e"))
	if len(got) != 1 || got[0].Title != "b" {
		t.Fatalf("expected only the valid unique pick b, got %v", got)
	}
}

func TestSelectFallsBackOnOracleError(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{err: errors.New("deadline exceeded")}
	s := NewSelector(oracle, 2, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b", "c"))
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "b" {
		t.Fatalf("expected first-k fallback a,b, got %v", got)
	}
}

func TestSelectFallsBackOnUnusableIndices(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{indices: []int{99}}
	s := NewSelector(oracle, 1, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b", "c"))
	if len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("expected first-k fallback a, got %v", got)
	}
}

func TestSelectWithoutOracle(t *testing.T) {
	t.Parallel()

	s := NewSelector(nil, 1, nil, nil)

	got := s.Select(context.Background(), candidateList("a", "b"))
	if len(got) != 1 || got[0].Title != "a" {
		t.Fatalf("expected deterministic first pick, got %v", got)
	}
}

func TestNewSelectorClampsTopK(t *testing.T) {
	t.Parallel()

	s := NewSelector(nil, 0, nil, nil)
	got := s.Select(context.Background(), candidateList("a", "b"))
	if len(got) != 1 {
		t.Fatalf("topK below 1 must clamp to 1, got %d picks", len(got))
	}
}
