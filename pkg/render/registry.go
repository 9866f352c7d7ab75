package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the record renderers by name ("card" for the list item,
// "detail" for the full view, plus any deployment-specific additions). The
// HTTP layer resolves renderers through it instead of holding concrete
// types.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Renderer)}
}

// Register adds a renderer under its Name. A name can only be claimed once;
// replacing a renderer requires a fresh registry.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.entries[name]; taken {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.entries[name] = renderer
	return nil
}

// MustRegister panics on registration failure, for construction-time wiring
// of the built-in renderers.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get resolves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("render: no renderer named %q", name)
	}
	return renderer, nil
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// List returns the registered names, sorted for stable display.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
