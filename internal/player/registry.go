package player

import "sync"

// Factory builds a fresh instance of a registered graphic.
type Factory func() *Instance

// Registry maps custom-element tags to instance factories. It mirrors the
// browser's customElements registry: Define is register-if-absent, so
// regenerating and reloading the same artifact never double-registers.
type Registry struct {
	mu   sync.Mutex
	defs map[string]Factory
	tags []string
}

func NewRegistry() *Registry {
	return &Registry{defs: map[string]Factory{}}
}

// Define registers factory under tag unless the tag is already taken. It
// reports whether the registration was applied.
func (r *Registry) Define(tag string, factory Factory) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[tag]; ok {
		return false
	}
	r.defs[tag] = factory
	r.tags = append(r.tags, tag)
	return true
}

// Redefine replaces an existing registration (or adds a new one). The editor
// uses it when a template mutation produces a new artifact for a tag that is
// already live.
func (r *Registry) Redefine(tag string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[tag]; !ok {
		r.tags = append(r.tags, tag)
	}
	r.defs[tag] = factory
}

// Get returns the factory registered under tag.
func (r *Registry) Get(tag string) (Factory, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.defs[tag]
	return f, ok
}

// Remove drops a registration; unknown tags are a no-op.
func (r *Registry) Remove(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[tag]; !ok {
		return
	}
	delete(r.defs, tag)
	for i, t := range r.tags {
		if t == tag {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			break
		}
	}
}

// Tags lists registered tags in registration order.
func (r *Registry) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}
