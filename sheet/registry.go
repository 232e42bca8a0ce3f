package sheet

import (
	"fmt"
	"sort"
	"sync"
)

// AdapterRegistry maps format identifiers to adapters. It is an explicit
// object owned by the engine, not ambient global state, so renders stay
// independently testable.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters map[Format]Adapter
}

// NewAdapterRegistry creates an empty registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{adapters: make(map[Format]Adapter)}
}

// Register adds an adapter for a format.
func (r *AdapterRegistry) Register(format Format, adapter Adapter) error {
	if format == "" {
		return NewError(KindValidation, "adapter format is required", nil)
	}
	if adapter == nil {
		return NewError(KindValidation, "adapter is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.adapters[format]; exists {
		return NewError(KindValidation, fmt.Sprintf("adapter for %q already registered", format), nil)
	}
	r.adapters[format] = adapter
	return nil
}

// Resolve returns the adapter for the format.
func (r *AdapterRegistry) Resolve(format Format) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[format]
	return adapter, ok
}

// Formats lists the registered format identifiers, sorted.
func (r *AdapterRegistry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formats := make([]Format, 0, len(r.adapters))
	for f := range r.adapters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
