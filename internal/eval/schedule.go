package eval

import (
	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/taskpool"
)

// scheduleNode attempts to make n runnable. depSatisfied is true when the
// call represents one more incoming dependency having completed, false for
// the initial whole-graph seeding. Exactly one caller ever wins the claim;
// everyone else backs off silently, which is the expected outcome on
// diamond and cyclic convergence.
func scheduleNode(p *taskpool.Pool, st *evalState, n *graph.Node, depSatisfied bool, threadID int) {
	if !st.inLayers(n) || !n.NeedsUpdate() {
		return
	}

	pending := n.PendingCount()
	if depSatisfied {
		// DecPending panics on underflow: a double-counted relation means
		// the pass is corrupt.
		pending = n.DecPending()
	}
	if pending != 0 {
		// Some other dependency still has to complete; its completion will
		// re-enter this routine.
		return
	}
	if !n.Claim() {
		return
	}

	if n.IsNoop() {
		// Structural node: nothing to execute, its children become
		// schedulable immediately.
		scheduleChildren(p, st, n, threadID)
		return
	}
	st.submitted.Add(1)
	p.Push(runNodeTask, n, taskpool.PriorityLow, threadID)
}

// scheduleGraph seeds the pass: every operation gets one non-satisfaction
// scheduling attempt. Most return immediately; only true roots (pending
// count zero) submit work.
func scheduleGraph(p *taskpool.Pool, st *evalState) {
	for _, n := range st.graph.Operations() {
		scheduleNode(p, st, n, false, taskpool.MainThread)
	}
}

// scheduleChildren fans out to every outgoing relation of a completed (or
// NOOP) node. A cyclic relation was never counted, so it does not count as
// dependency satisfaction either; the child is only re-examined for
// readiness.
func scheduleChildren(p *taskpool.Pool, st *evalState, n *graph.Node, threadID int) {
	for _, rel := range n.Outgoing() {
		child := rel.To()
		if child.Claimed() {
			// Another path already owns the child. Happens with cyclic
			// relations.
			continue
		}
		scheduleNode(p, st, child, !rel.Cyclic(), threadID)
	}
}
