package graph

import (
	"context"
	"fmt"
	"sync/atomic"
)

// LayerMask is a bitmask of layer indexes. An evaluation pass only touches
// operations whose owning entity shares at least one bit with the pass mask.
type LayerMask uint64

// AllLayers selects every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Layer returns the mask for a single layer index (0..63).
func Layer(i int) LayerMask {
	return LayerMask(1) << uint(i)
}

// Entity is the owner of one or more operation nodes. Its layer mask decides
// whether those nodes participate in a given pass.
type Entity struct {
	name   string
	layers LayerMask
}

// Name returns the entity's identifier.
func (e *Entity) Name() string { return e.name }

// Layers returns the entity's layer mask.
func (e *Entity) Layers() LayerMask { return e.layers }

// WorkFunc is the executable payload of an operation node. A nil WorkFunc
// marks the node as a NOOP: purely structural, never submitted to the pool.
type WorkFunc func(ctx context.Context, ec *EvalContext)

// Node is a single schedulable operation. Scheduling state (pending counter
// and claimed flag) is reset by the evaluator at the start of every pass and
// mutated only through the atomic methods below.
type Node struct {
	name  string
	owner *Entity
	work  WorkFunc

	needsUpdate bool

	pending atomic.Int32
	claimed atomic.Bool

	incoming []*Relation
	outgoing []*Relation
}

// Name returns the node's identifier, unique within the graph.
func (n *Node) Name() string { return n.name }

// Owner returns the entity owning this node.
func (n *Node) Owner() *Entity { return n.owner }

// IsNoop reports whether the node carries no executable work.
func (n *Node) IsNoop() bool { return n.work == nil }

// NeedsUpdate reports whether the node is tagged for re-evaluation.
func (n *Node) NeedsUpdate() bool { return n.needsUpdate }

// Incoming returns the node's inbound relations in insertion order.
func (n *Node) Incoming() []*Relation { return n.incoming }

// Outgoing returns the node's outbound relations in insertion order.
func (n *Node) Outgoing() []*Relation { return n.outgoing }

// ResetScheduling clears the pending counter and the claimed flag. Called
// for every node before a pass seeds any work.
func (n *Node) ResetScheduling() {
	n.pending.Store(0)
	n.claimed.Store(false)
}

// IncPending adds one unsatisfied dependency. Only the readiness pre-pass
// calls this; during the pass itself the counter only ever decrements.
func (n *Node) IncPending() {
	n.pending.Add(1)
}

// DecPending atomically consumes one satisfied dependency and returns the
// remaining count. Decrementing a counter that is already zero means the
// scheduling protocol double-counted a relation; that is a corrupted pass,
// not a recoverable condition.
func (n *Node) DecPending() int32 {
	v := n.pending.Add(-1)
	if v < 0 {
		panic(fmt.Sprintf("graph: pending counter underflow on %q", n.name))
	}
	return v
}

// PendingCount returns the current number of unsatisfied dependencies.
func (n *Node) PendingCount() int32 {
	return n.pending.Load()
}

// Claim attempts the exactly-once claim transition. It returns true for the
// single caller that wins; every concurrent or later caller gets false and
// must back off. This single atomic swap is what guarantees a node runs at
// most once per pass.
func (n *Node) Claim() bool {
	return n.claimed.CompareAndSwap(false, true)
}

// Claimed reports whether some execution path already owns this node.
func (n *Node) Claimed() bool {
	return n.claimed.Load()
}

// Run executes the node's work function. Calling Run on a NOOP node is a
// scheduler bug: NOOPs must be skipped at scheduling time.
func (n *Node) Run(ctx context.Context, ec *EvalContext) {
	if n.work == nil {
		panic(fmt.Sprintf("graph: NOOP node %q submitted for execution", n.name))
	}
	if n.owner == nil {
		panic(fmt.Sprintf("graph: node %q has no owning entity", n.name))
	}
	n.work(ctx, ec)
}

// Relation is a directed dependency edge: To depends on From. A cyclic
// relation never participates in pending-count accounting.
type Relation struct {
	from   *Node
	to     *Node
	cyclic bool
}

// From returns the dependency side of the edge.
func (r *Relation) From() *Node { return r.from }

// To returns the dependent side of the edge.
func (r *Relation) To() *Node { return r.to }

// Cyclic reports whether the edge is excluded from readiness counting.
func (r *Relation) Cyclic() bool { return r.cyclic }
