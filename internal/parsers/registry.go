// Package parsers turns fetched source payloads into proxy records.
//
// Parsers self-register through init(), mirroring how feed providers
// register themselves in a central registry.
package parsers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lepinkainen/config-forge/internal/proxy"
)

// Parser converts one source payload into zero or more records. Parsing is
// record-granular: a malformed element yields a warning for that element
// only, never discards the whole payload.
type Parser interface {
	// Name identifies the parser ("json", "yaml", "keyvalue").
	Name() string
	// Detect reports whether the payload looks like this parser's format.
	Detect(data []byte) bool
	// Parse extracts records. Warnings describe skipped malformed records.
	Parse(data []byte) (records []proxy.Record, warnings []error)
}

// Registry manages registered payload parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
	// priority orders format detection; JSON must be probed before YAML
	// because every JSON document is also valid YAML.
	priority map[string]int
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers:  make(map[string]Parser),
		priority: make(map[string]int),
	}
}

// Register adds a parser with the given detection priority (lower runs first).
func (r *Registry) Register(p Parser, priority int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[p.Name()]; exists {
		return fmt.Errorf("parser %s is already registered", p.Name())
	}

	r.parsers[p.Name()] = p
	r.priority[p.Name()] = priority
	return nil
}

// Get retrieves a parser by name.
func (r *Registry) Get(name string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.parsers[name]
	if !exists {
		return nil, fmt.Errorf("parser %s not found", name)
	}
	return p, nil
}

// List returns all registered parser names in detection order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.priority[names[i]] != r.priority[names[j]] {
			return r.priority[names[i]] < r.priority[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// ForContent returns the first parser, in detection order, whose Detect
// accepts the payload.
func (r *Registry) ForContent(data []byte) (Parser, error) {
	for _, name := range r.List() {
		p, err := r.Get(name)
		if err != nil {
			continue
		}
		if p.Detect(data) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no parser recognizes the payload")
}

// Parse detects the payload format and extracts its records.
func (r *Registry) Parse(data []byte) ([]proxy.Record, []error, error) {
	p, err := r.ForContent(data)
	if err != nil {
		return nil, nil, err
	}

	records, warnings := p.Parse(data)
	return records, warnings, nil
}

// DefaultRegistry is the global registry parsers register into.
var DefaultRegistry = NewRegistry()

// mustRegister registers into the default registry and panics on conflict.
// Called from init() only.
func mustRegister(p Parser, priority int) {
	if err := DefaultRegistry.Register(p, priority); err != nil {
		panic(err)
	}
}
