package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/taskpool"
)

// runNodeTask is the unit of work submitted to the pool: execute one claimed
// node, then chain into its only successor for as long as one is ready.
// The chain may pass through NOOP nodes, which are claimed but not executed.
func runNodeTask(ctx context.Context, p *taskpool.Pool, taskdata any, threadID int) {
	st := p.Userdata().(*evalState)
	n := taskdata.(*graph.Node)
	if n.IsNoop() {
		panic(fmt.Sprintf("eval: NOOP node %q submitted to the pool", n.Name()))
	}

	for {
		if !n.IsNoop() {
			start := time.Now()
			st.sink.TaskStarted(n)
			n.Run(ctx, st.ec)
			st.sink.TaskCompleted(n, time.Since(start))
		}

		out := n.Outgoing()
		if len(out) != 1 {
			// Branch point (or leaf): fan out through the scheduler and
			// leave the thread. Chaining never crosses a branch.
			scheduleChildren(p, st, n, threadID)
			return
		}

		rel := out[0]
		child := rel.To()
		if child.Claimed() {
			// Single child already owned by another path; happens with
			// cyclic relations. Nothing left for this thread.
			return
		}
		if !st.inLayers(child) || !child.NeedsUpdate() {
			// Child takes no part in this pass, the chain ends here. Node
			// eligibility is fixed by the readiness pre-pass snapshot, so
			// this mirrors the check scheduleNode already made.
			return
		}

		pending := child.PendingCount()
		if !rel.Cyclic() {
			pending = child.DecPending()
		}
		if pending != 0 {
			// Other dependencies still outstanding; their completion will
			// schedule the child.
			return
		}
		if !child.Claim() {
			// Lost the claim race; the winner runs it.
			return
		}
		n = child
	}
}
