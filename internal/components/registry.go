package components

import (
	"fmt"
	"sort"

	"github.com/DriesVerstraete/openconcept/internal/graph"
)

// Builder constructs a ready-to-use component.
type Builder func() (graph.Component, error)

// Registry maps component names to builders so hosts can assemble a model
// from configuration instead of wiring constructors by hand.
type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.Register("power_split", func() (graph.Component, error) {
		return NewPowerSplit(DefaultSplitterConfig())
	})
	return r
}

func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

func (r *Registry) Get(name string) (graph.Component, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown component: %s", name)
	}
	return b()
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
