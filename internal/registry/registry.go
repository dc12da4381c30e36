package registry

import (
	"log/slog"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vk/bindery/internal/bundle"
)

// Pack is the interface that independently authored packs implement to
// contribute their bundles during startup.
type Pack interface {
	Register(r *Registry)
}

// Registry maps bundle names to bundles for a single application instance.
// All operations are concurrency-safe.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]*bundle.Bundle
	order   []string
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		bundles: make(map[string]*bundle.Bundle),
	}
}

// Register stores b under its name, silently overwriting any bundle already
// registered there. A re-registered name keeps its original position in the
// enumeration order. Registering a nil bundle is a no-op.
func (r *Registry) Register(b *bundle.Bundle) {
	if b == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bundles[b.Name]; !exists {
		r.order = append(r.order, b.Name)
	}
	slog.Debug("Registering bundle.", "name", b.Name)
	r.bundles[b.Name] = b
}

// Lookup returns the bundle registered under name. The second return value
// reports whether the name is registered; an unknown name is a normal
// outcome, not an error.
func (r *Registry) Lookup(name string) (*bundle.Bundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bundles[name]
	return b, ok
}

// Names returns the registered bundle names in insertion order. The result
// is a snapshot; mutating it does not affect the registry.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered bundles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bundles)
}

// Suggest returns the registered name nearest to name by edit distance,
// for "did you mean" diagnostics on lookup misses. It reports false when
// the registry is empty or no candidate is plausibly close.
func (r *Registry) Suggest(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := ""
	bestDist := -1
	for _, candidate := range r.order {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist == -1 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist == -1 || bestDist > (len(name)+1)/2 {
		return "", false
	}
	return best, true
}
