package graph

import (
	"fmt"
	"sync"
)

// Graph is the arena owning all entities, operation nodes and relations.
// Construction (AddEntity, AddOperation, Connect) must finish before the
// graph is evaluated; tag state is guarded by a mutex because tagging can
// race with a pass's defensive tag clear.
type Graph struct {
	entities   []*Entity
	operations []*Node
	byName     map[string]*Node

	timeSource *TimeSource

	tagMu     sync.Mutex
	entryTags map[*Node]struct{}
}

// New creates an empty graph with an initialized time source.
func New() *Graph {
	return &Graph{
		byName:     make(map[string]*Node),
		timeSource: &TimeSource{},
		entryTags:  make(map[*Node]struct{}),
	}
}

// AddEntity registers a new owning entity with the given layer mask.
func (g *Graph) AddEntity(name string, layers LayerMask) *Entity {
	e := &Entity{name: name, layers: layers}
	g.entities = append(g.entities, e)
	return e
}

// AddOperation creates an operation node owned by entity. A nil work func
// produces a NOOP node. Node names must be unique within the graph.
func (g *Graph) AddOperation(owner *Entity, name string, work WorkFunc) (*Node, error) {
	if owner == nil {
		return nil, fmt.Errorf("operation %q has no owning entity", name)
	}
	if _, exists := g.byName[name]; exists {
		return nil, fmt.Errorf("duplicate operation name %q", name)
	}
	n := &Node{name: name, owner: owner, work: work}
	g.operations = append(g.operations, n)
	g.byName[name] = n
	return n, nil
}

// Connect adds a directed relation meaning "to depends on from". Cyclic
// relations shape the graph but are ignored by readiness accounting.
func (g *Graph) Connect(from, to *Node, cyclic bool) (*Relation, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("relation endpoint is nil")
	}
	if from == to {
		return nil, fmt.Errorf("self-referential relation on %q", from.name)
	}
	r := &Relation{from: from, to: to, cyclic: cyclic}
	from.outgoing = append(from.outgoing, r)
	to.incoming = append(to.incoming, r)
	return r, nil
}

// Operation looks up a node by name.
func (g *Graph) Operation(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// Operations returns all operation nodes in insertion order. The slice is
// the graph's own; callers must not mutate it.
func (g *Graph) Operations() []*Node {
	return g.operations
}

// Entities returns all registered entities in insertion order.
func (g *Graph) Entities() []*Entity {
	return g.entities
}

// Layers returns the union of every entity's layer mask: the widest mask a
// pass over this graph can use.
func (g *Graph) Layers() LayerMask {
	var m LayerMask
	for _, e := range g.entities {
		m |= e.layers
	}
	return m
}

// TimeSource returns the graph's time source node.
func (g *Graph) TimeSource() *TimeSource {
	return g.timeSource
}
