package ingest

import (
	"sort"
	"sync"
)

// Registry is a thread-safe in-memory map of built retrievers by
// collection name. Re-ingesting a collection replaces its entry, the
// same way the persisted dense index is overwritten.
type Registry struct {
	mu          sync.Mutex
	collections map[string]*Result
}

func NewRegistry() *Registry {
	return &Registry{
		collections: make(map[string]*Result),
	}
}

func (r *Registry) Put(res *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[res.Collection] = res
}

func (r *Registry) Get(name string) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collections[name]
}

// Delete removes a collection from the registry. The persisted dense
// index is left in place; the next ingest under the same name
// overwrites it.
func (r *Registry) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.collections[name]; !ok {
		return false
	}
	delete(r.collections, name)
	return true
}

// Names lists registered collections in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
