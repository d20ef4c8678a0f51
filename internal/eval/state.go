package eval

import (
	"sync/atomic"

	"github.com/vk/depsflow/internal/debug"
	"github.com/vk/depsflow/internal/graph"
)

// evalState is the pass-scoped userdata carried by the worker pool: the
// shared context, the graph under evaluation, the active layer mask and the
// instrumentation sink. It lives for exactly one Evaluate call.
type evalState struct {
	ec     *graph.EvalContext
	graph  *graph.Graph
	layers graph.LayerMask
	sink   debug.Sink

	// submitted counts independent pool submissions; chained executions do
	// not increment it. Reported at pass end.
	submitted atomic.Int64
}

// inLayers reports whether a node's owning entity intersects the pass mask.
func (st *evalState) inLayers(n *graph.Node) bool {
	return n.Owner().Layers()&st.layers != 0
}
