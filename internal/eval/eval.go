package eval

import (
	"context"

	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/debug"
	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/taskpool"
)

// Evaluator drives evaluation passes over a graph. The zero value is usable:
// GOMAXPROCS workers and no instrumentation.
type Evaluator struct {
	// Workers is the pool size; zero means GOMAXPROCS.
	Workers int
	// SingleThreaded forces the pool to one thread. Results must be
	// identical to the parallel run; the flag exists for debugging and for
	// the equivalence tests that hold the scheduler to that promise.
	SingleThreaded bool
	// Sink receives debug events; nil discards them.
	Sink debug.Sink
}

// New creates an evaluator with the given pool size and sink.
func New(workers int, sink debug.Sink) *Evaluator {
	return &Evaluator{Workers: workers, Sink: sink}
}

func (e *Evaluator) sink() debug.Sink {
	if e.Sink == nil {
		return debug.NopSink{}
	}
	return e.Sink
}

// Evaluate runs one full pass over g restricted to layers: recompute
// readiness, seed every ready root, drain the pool, clear tags. The call
// blocks until every scheduled operation has completed; the calling
// goroutine itself executes work while waiting.
func (e *Evaluator) Evaluate(ctx context.Context, ec *graph.EvalContext, g *graph.Graph, layers graph.LayerMask) {
	logger := ctxlog.FromContext(ctx)

	if !g.HasPendingUpdates() {
		logger.Debug("Nothing tagged for update, skipping pass.")
		return
	}

	ec.Time = g.TimeSource().Frame()

	st := &evalState{ec: ec, graph: g, layers: layers, sink: e.sink()}
	pool := taskpool.New(ctx, st)
	if e.Workers > 0 {
		pool.SetNumThreads(e.Workers)
	}
	if e.SingleThreaded {
		pool.SetNumThreads(1)
	}

	calculatePending(g, layers)

	st.sink.EvalBegin(ec)
	logger.Debug("Evaluation pass starting.",
		"operations", len(g.Operations()), "threads", pool.NumThreads(), "time", ec.Time)

	scheduleGraph(pool, st)
	pool.WorkAndWait()

	st.sink.EvalEnd(ec)
	logger.Debug("Evaluation pass finished.", "tasks_submitted", st.submitted.Load())

	// A pass can legitimately leave tags behind (nodes outside the layer
	// mask); drop them so the next pass starts clean.
	g.ClearTags()
}

// EvaluateForScene runs a pass pulling the current time from the scene and
// using the graph's full layer mask.
func (e *Evaluator) EvaluateForScene(ctx context.Context, ec *graph.EvalContext, g *graph.Graph, scene graph.Scene) {
	g.TimeSource().SetFrame(scene.CurrentFrame())
	e.Evaluate(ctx, ec, g, g.Layers())
}

// EvaluateOnFrameChange moves the graph's time source to newTime, tags every
// time-dependent operation, flushes the tags downstream and runs a full
// pass over layers.
func (e *Evaluator) EvaluateOnFrameChange(ctx context.Context, ec *graph.EvalContext, g *graph.Graph, newTime float64, layers graph.LayerMask) {
	g.TimeSource().SetFrame(newTime)
	g.TagTimeUpdate()
	g.FlushUpdates(ctx)
	e.Evaluate(ctx, ec, g, layers)
}

// NeedsEvaluation reports whether g has anything tagged for update; false
// immediately after a completed pass.
func NeedsEvaluation(g *graph.Graph) bool {
	return g.HasPendingUpdates()
}
