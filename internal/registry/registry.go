// Package registry maps handler names used in graph definitions to the Go
// factories that build their work functions.
package registry

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/graph"
)

// NoopHandler is the reserved handler name for structural nodes. An empty
// handler means the same thing.
const NoopHandler = "noop"

// Factory builds a work function from an operation's decoded arguments. It
// runs once at graph build time, so argument validation errors surface
// before any evaluation starts.
type Factory func(args map[string]cty.Value) (graph.WorkFunc, error)

// Module is the interface all handler modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the handler factories for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterHandler adds a factory under the given name, replacing any
// previous registration.
func (r *Registry) RegisterHandler(name string, f Factory) {
	r.factories[name] = f
}

// Handler looks up a factory by name.
func (r *Registry) Handler(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Handlers returns the names of all registered factories.
func (r *Registry) Handlers() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
