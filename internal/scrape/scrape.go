package scrape

import (
	"context"
	"fmt"

	"stocknews/internal/domain"
)

// Source is a single upstream site adapter. URLs and selectors are internal
// to the adapter; Fetch returns a bounded list of raw entries or an error
// covering the whole adapter.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawArticle, error)
}

// Registry keeps adapters in registration order. Order matters: it fixes
// the flattening order of the candidate list, which the selection fallback
// depends on.
type Registry struct {
	order   []string
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces an adapter. Replacing keeps the original slot.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	if _, ok := r.sources[src.Name()]; !ok {
		r.order = append(r.order, src.Name())
	}
	r.sources[src.Name()] = src
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}

// All returns adapters in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sources[name])
	}
	return out
}
