package graph

import (
	"context"

	"github.com/vk/depsflow/internal/ctxlog"
)

// TagUpdate marks a node as needing re-evaluation and records it as an
// entry point for the next flush.
func (g *Graph) TagUpdate(n *Node) {
	g.tagMu.Lock()
	n.needsUpdate = true
	g.entryTags[n] = struct{}{}
	g.tagMu.Unlock()
}

// HasPendingUpdates reports whether anything has been tagged since the last
// clear. A pass over a graph with no pending updates is a no-op.
func (g *Graph) HasPendingUpdates() bool {
	g.tagMu.Lock()
	defer g.tagMu.Unlock()
	return len(g.entryTags) > 0
}

// FlushUpdates propagates the needs-update flag from every entry-tagged
// node to everything downstream of it, so that a change to one operation
// re-evaluates its whole dependent subtree. Cyclic relations are followed
// too; the visited set keeps the walk finite.
func (g *Graph) FlushUpdates(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	g.tagMu.Lock()
	queue := make([]*Node, 0, len(g.entryTags))
	for n := range g.entryTags {
		queue = append(queue, n)
	}
	g.tagMu.Unlock()

	visited := make(map[*Node]struct{}, len(queue))
	flushed := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if _, seen := visited[n]; seen {
			continue
		}
		visited[n] = struct{}{}
		if !n.needsUpdate {
			n.needsUpdate = true
			flushed++
		}
		for _, rel := range n.outgoing {
			queue = append(queue, rel.to)
		}
	}
	logger.Debug("Flushed update tags through graph.",
		"entry_tags", len(visited), "newly_tagged", flushed)
}

// ClearTags drops the needs-update flag from every node and empties the
// entry tag set. The evaluator calls this defensively at the end of each
// pass so a partial or early-out pass cannot leave stale tags behind.
func (g *Graph) ClearTags() {
	g.tagMu.Lock()
	for _, n := range g.operations {
		n.needsUpdate = false
	}
	g.entryTags = make(map[*Node]struct{})
	g.tagMu.Unlock()
}
