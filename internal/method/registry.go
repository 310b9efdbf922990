package method

import "sync"

// Registry maps a method key (e.g. "card") to its strategy. Refund
// capability is discovered by interface satisfaction; a single Register call
// covers both.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Payment
}

func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]Payment)}
}

func (r *Registry) Register(key string, p Payment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[key] = p
}

// Resolve returns the strategy for key, or false when unregistered.
func (r *Registry) Resolve(key string) (Payment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.methods[key]
	return p, ok
}

// ResolveRefundable returns the refund capability for key, or false when the
// key is unregistered or the strategy cannot refund.
func (r *Registry) ResolveRefundable(key string) (Refunder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.methods[key]
	if !ok {
		return nil, false
	}
	ref, ok := p.(Refunder)
	return ref, ok
}

// Keys lists the registered method keys.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.methods))
	for k := range r.methods {
		keys = append(keys, k)
	}
	return keys
}
