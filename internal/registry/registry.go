// Package registry manages the available vendor adapters: the pairing of a
// document parser and an enrichment client for one eyewear supplier.
package registry

import (
	"sort"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/enrich"
	"github.com/Cloud-payto/optical-sub002/internal/parse"
)

// Adapter is one vendor's parser/enricher pair. Both halves report the same
// vendor identifier.
type Adapter struct {
	Parser   parse.Parser
	Enricher enrich.Enricher
}

// Registry maps vendor identifiers to adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its parser's vendor identifier. It rejects
// half-wired adapters and parser/enricher pairs that disagree on the vendor.
func (r *Registry) Register(a Adapter) error {
	if a.Parser == nil || a.Enricher == nil {
		return eris.New("registry: adapter needs both a parser and an enricher")
	}
	if a.Parser.Vendor() != a.Enricher.Vendor() {
		return eris.Errorf("registry: parser vendor %q does not match enricher vendor %q",
			a.Parser.Vendor(), a.Enricher.Vendor())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Parser.Vendor()] = a
	return nil
}

// Get returns the adapter for a vendor.
func (r *Registry) Get(vendor string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[vendor]
	return a, ok
}

// Vendors returns all registered vendor identifiers, sorted.
func (r *Registry) Vendors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
