package analyses

import (
	"fmt"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
	"github.com/custodia-labs/slumber-cli/internal/core/ports/driven"
)

// BuilderFunc creates an Analysis from the run configuration.
type BuilderFunc func(cfg domain.RunConfig) (driven.Analysis, error)

// Registry maps analysis names to their builders.
// Names keep registration order, which is also report order.
type Registry struct {
	builders map[string]BuilderFunc
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds an analysis builder.
// Name should match the analysis's Name() return value. Registering a
// name again replaces its builder but keeps its position.
func (r *Registry) Register(name string, builder BuilderFunc) {
	if _, ok := r.builders[name]; !ok {
		r.order = append(r.order, name)
	}
	r.builders[name] = builder
}

// Build creates an analysis by name.
func (r *Registry) Build(name string, cfg domain.RunConfig) (driven.Analysis, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: analysis %q", domain.ErrNotFound, name)
	}
	return builder(cfg)
}

// BuildAll creates every registered analysis in registration order.
func (r *Registry) BuildAll(cfg domain.RunConfig) ([]driven.Analysis, error) {
	out := make([]driven.Analysis, 0, len(r.order))
	for _, name := range r.order {
		a, err := r.Build(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Has returns true if an analysis with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
