package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/config"
	"github.com/vk/depsflow/internal/schema"
)

// translateEntity converts an HCL entity block into the agnostic model.
func translateEntity(e *schema.Entity) *config.Entity {
	return &config.Entity{
		Name:   e.Name,
		Layers: e.Layers,
	}
}

// translateOperation converts an HCL operation block. Handler arguments are
// evaluated eagerly to cty values; definitions carry no variables, so every
// argument must be a constant expression.
func translateOperation(op *schema.Operation) (*config.Operation, error) {
	out := &config.Operation{
		Name:          op.Name,
		Entity:        op.Entity,
		Handler:       op.Handler,
		DependsOn:     op.DependsOn,
		TimeDependent: op.TimeDependent,
	}

	if op.Arguments != nil {
		attrs, diags := op.Arguments.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("arguments of operation %q: %w", op.Name, diags)
		}
		out.Arguments = make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("argument %q of operation %q: %w", name, op.Name, diags)
			}
			out.Arguments[name] = val
		}
	}
	return out, nil
}

// translateRelation converts an explicit relation block.
func translateRelation(r *schema.Relation) *config.Relation {
	return &config.Relation{
		From:   r.From,
		To:     r.To,
		Cyclic: r.Cyclic,
	}
}
