package eval

import (
	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/taskpool"
)

// parallelPendingThreshold is the node count below which the readiness
// pre-pass runs sequentially; spinning up goroutines for a handful of nodes
// costs more than it saves.
const parallelPendingThreshold = 256

// calculatePending recomputes every node's pending-dependency counter and
// clears its claimed flag. Each node's result depends only on its own
// incoming relations, which are read-only here, so the per-node work needs
// no cross-node synchronization and parallelizes freely. Sequential and
// parallel execution produce identical state.
func calculatePending(g *graph.Graph, layers graph.LayerMask) {
	ops := g.Operations()
	taskpool.ParallelRange(len(ops), parallelPendingThreshold, func(i int) {
		n := ops[i]
		n.ResetScheduling()

		if n.Owner().Layers()&layers == 0 || !n.NeedsUpdate() {
			// Outside the pass or already up to date: stays at zero,
			// scheduling treats it as satisfied.
			return
		}
		for _, rel := range n.Incoming() {
			if rel.Cyclic() {
				continue
			}
			from := rel.From()
			if from.Owner().Layers()&layers != 0 && from.NeedsUpdate() {
				n.IncPending()
			}
		}
	})
}
