package builder

import (
	"context"
	"fmt"

	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/registry"
)

// Build constructs a graph from the model. Handler factories run here, so
// bad arguments fail the build, never a pass.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	g := graph.New()

	entities := make(map[string]*graph.Entity, len(model.Entities))
	for _, e := range model.Entities {
		if _, exists := entities[e.Name]; exists {
			return nil, fmt.Errorf("duplicate entity %q", e.Name)
		}
		entities[e.Name] = g.AddEntity(e.Name, layerMask(e.Layers))
	}

	for _, op := range model.Operations {
		owner, ok := entities[op.Entity]
		if !ok {
			return nil, fmt.Errorf("operation %q references unknown entity %q", op.Name, op.Entity)
		}

		var work graph.WorkFunc
		if op.Handler != "" && op.Handler != registry.NoopHandler {
			factory, ok := reg.Handler(op.Handler)
			if !ok {
				return nil, fmt.Errorf("operation %q references unknown handler %q", op.Name, op.Handler)
			}
			var err error
			work, err = factory(op.Arguments)
			if err != nil {
				return nil, fmt.Errorf("building handler for operation %q: %w", op.Name, err)
			}
		}

		n, err := g.AddOperation(owner, op.Name, work)
		if err != nil {
			return nil, err
		}
		if op.TimeDependent {
			g.DependOnTime(n)
		}
	}

	// Second pass: every operation exists, dependencies can be resolved.
	for _, op := range model.Operations {
		to, _ := g.Operation(op.Name)
		for _, depName := range op.DependsOn {
			from, ok := g.Operation(depName)
			if !ok {
				return nil, fmt.Errorf("operation %q depends on unknown operation %q", op.Name, depName)
			}
			if _, err := g.Connect(from, to, false); err != nil {
				return nil, err
			}
		}
	}

	for _, rel := range model.Relations {
		from, ok := g.Operation(rel.From)
		if !ok {
			return nil, fmt.Errorf("relation references unknown operation %q", rel.From)
		}
		to, ok := g.Operation(rel.To)
		if !ok {
			return nil, fmt.Errorf("relation references unknown operation %q", rel.To)
		}
		if _, err := g.Connect(from, to, rel.Cyclic); err != nil {
			return nil, err
		}
	}

	logger.Debug("Graph built.",
		"entities", len(g.Entities()),
		"operations", len(g.Operations()))
	return g, nil
}

// layerMask converts a list of layer indexes into a mask. An entity with no
// layers listed lands on layer zero.
func layerMask(layers []int) graph.LayerMask {
	if len(layers) == 0 {
		return graph.Layer(0)
	}
	var m graph.LayerMask
	for _, i := range layers {
		m |= graph.Layer(i)
	}
	return m
}
