// Package schema holds the HCL block structures a graph definition file
// decodes into. It stays close to the wire format; translation into the
// agnostic config model happens in the hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// Args captures the raw body of an 'arguments' block so handler-specific
// attributes can be decoded later without a fixed schema.
type Args struct {
	Body hcl.Body `hcl:",remain"`
}

// Entity represents an `entity` block: an owner of operations with a set of
// layer indexes.
type Entity struct {
	Name   string `hcl:"name,label"`
	Layers []int  `hcl:"layers,optional"`
}

// Operation represents an `operation` block. depends_on names operations
// this one must run after; time_dependent operations are re-tagged on every
// frame change.
type Operation struct {
	Name          string   `hcl:"name,label"`
	Entity        string   `hcl:"entity"`
	Handler       string   `hcl:"handler,optional"`
	DependsOn     []string `hcl:"depends_on,optional"`
	TimeDependent bool     `hcl:"time_dependent,optional"`
	Arguments     *Args    `hcl:"arguments,block"`
}

// Relation represents an explicit `relation "from" "to"` block, the only
// way to declare a cyclic edge.
type Relation struct {
	From   string `hcl:"from,label"`
	To     string `hcl:"to,label"`
	Cyclic bool   `hcl:"cyclic,optional"`
}

// Root is the top-level structure of a definition file; any block type may
// appear in any file.
type Root struct {
	Entities   []*Entity    `hcl:"entity,block"`
	Operations []*Operation `hcl:"operation,block"`
	Relations  []*Relation  `hcl:"relation,block"`
	Body       hcl.Body     `hcl:",remain"`
}
