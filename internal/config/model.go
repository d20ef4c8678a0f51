package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified representation of a graph definition, independent of
// the format it was loaded from.
type Model struct {
	Entities   []*Entity
	Operations []*Operation
	Relations  []*Relation
}

// Entity describes an owning entity and the layer indexes it belongs to.
type Entity struct {
	Name   string
	Layers []int
}

// Operation describes one operation node. An empty or "noop" handler makes
// a structural node with no executable work.
type Operation struct {
	Name          string
	Entity        string
	Handler       string
	Arguments     map[string]cty.Value
	DependsOn     []string
	TimeDependent bool
}

// Relation describes an explicit edge; Cyclic edges are excluded from
// readiness accounting by the evaluator.
type Relation struct {
	From   string
	To     string
	Cyclic bool
}
