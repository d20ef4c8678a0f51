package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/depsflow/internal/graph"
)

func TestEvaluateNothingTagged(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	b := mustOp(t, g, e, "b", rec.work("b"))
	mustConnect(t, g, a, b, false)

	New(4, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	assert.Zero(t, rec.total(), "untagged graph must be a no-op pass")
	assert.False(t, NeedsEvaluation(g))
}

func TestEvaluateRunsEachTaggedNodeOnce(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	names := []string{"a", "b", "c", "d", "e"}
	nodes := make(map[string]*graph.Node, len(names))
	for _, name := range names {
		nodes[name] = mustOp(t, g, e, name, rec.work(name))
	}
	mustConnect(t, g, nodes["a"], nodes["b"], false)
	mustConnect(t, g, nodes["a"], nodes["c"], false)
	mustConnect(t, g, nodes["b"], nodes["d"], false)
	mustConnect(t, g, nodes["c"], nodes["d"], false)
	mustConnect(t, g, nodes["d"], nodes["e"], false)
	tagAll(g)

	New(4, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	for _, name := range names {
		assert.Equal(t, 1, rec.count(name), "node %s", name)
	}
}

func TestEvaluateRespectsDependencyOrder(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	b := mustOp(t, g, e, "b", rec.work("b"))
	c := mustOp(t, g, e, "c", rec.work("c"))
	d := mustOp(t, g, e, "d", rec.work("d"))
	mustConnect(t, g, a, b, false)
	mustConnect(t, g, a, c, false)
	mustConnect(t, g, b, d, false)
	mustConnect(t, g, c, d, false)
	tagAll(g)

	New(8, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	// A dependent is never scheduled before its dependency's work function
	// returned, so completion order is a witness for scheduling order.
	for _, n := range g.Operations() {
		for _, rel := range n.Outgoing() {
			require.Less(t, rec.indexOf(rel.From().Name()), rec.indexOf(rel.To().Name()),
				"%s must complete before %s", rel.From().Name(), rel.To().Name())
		}
	}
}

func TestDiamondConvergesExactlyOnce(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	b := mustOp(t, g, e, "b", rec.work("b"))
	c := mustOp(t, g, e, "c", rec.work("c"))
	d := mustOp(t, g, e, "d", rec.work("d"))
	mustConnect(t, g, a, b, false)
	mustConnect(t, g, a, c, false)
	mustConnect(t, g, b, d, false)
	mustConnect(t, g, c, d, false)
	tagAll(g)

	New(8, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	assert.Equal(t, 1, rec.count("d"), "converging node must run exactly once")
	assert.Greater(t, rec.indexOf("d"), rec.indexOf("b"))
	assert.Greater(t, rec.indexOf("d"), rec.indexOf("c"))
}

func TestCyclicPairTerminates(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	b := mustOp(t, g, e, "b", rec.work("b"))
	mustConnect(t, g, a, b, true)
	mustConnect(t, g, b, a, true)
	tagAll(g)

	// Both relations are cyclic so neither counts toward readiness; the
	// pass must complete with each node running once, in either order.
	New(4, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	assert.Equal(t, 1, rec.count("a"))
	assert.Equal(t, 1, rec.count("b"))
}

func TestLayerMaskExcludesNodes(t *testing.T) {
	g := graph.New()
	visible := g.AddEntity("visible", graph.Layer(0))
	hidden := g.AddEntity("hidden", graph.Layer(5))
	rec := newRecorder()
	mustOp(t, g, visible, "shown", rec.work("shown"))
	mustOp(t, g, hidden, "masked", rec.work("masked"))
	tagAll(g)

	New(4, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, graph.Layer(0))

	assert.Equal(t, 1, rec.count("shown"))
	assert.Zero(t, rec.count("masked"), "node outside the layer mask must never execute")
}

func TestSingleThreadMatchesParallel(t *testing.T) {
	build := func() (*graph.Graph, *recorder) {
		g := graph.New()
		e := g.AddEntity("main", graph.Layer(0))
		rec := newRecorder()
		a := mustOp(t, g, e, "a", rec.work("a"))
		b := mustOp(t, g, e, "b", rec.work("b"))
		c := mustOp(t, g, e, "c", rec.work("c"))
		d := mustOp(t, g, e, "d", rec.work("d"))
		f := mustOp(t, g, e, "f", rec.work("f"))
		mustConnect(t, g, a, b, false)
		mustConnect(t, g, a, c, false)
		mustConnect(t, g, b, d, false)
		mustConnect(t, g, c, d, false)
		mustConnect(t, g, d, f, true)
		mustConnect(t, g, f, d, true)
		tagAll(g)
		return g, rec
	}

	gPar, recPar := build()
	New(8, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), gPar, gPar.Layers())

	gSeq, recSeq := build()
	seq := New(8, nil)
	seq.SingleThreaded = true
	seq.Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), gSeq, gSeq.Layers())

	for _, name := range []string{"a", "b", "c", "d", "f"} {
		assert.Equal(t, recSeq.count(name), recPar.count(name), "node %s", name)
		assert.Equal(t, 1, recSeq.count(name), "node %s", name)
	}
}

func TestNoopNodesNeverExecuteButUnblock(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	gate, err := g.AddOperation(e, "gate", nil)
	require.NoError(t, err)
	b := mustOp(t, g, e, "b", rec.work("b"))
	c := mustOp(t, g, e, "c", rec.work("c"))
	mustConnect(t, g, a, gate, false)
	mustConnect(t, g, gate, b, false)
	mustConnect(t, g, gate, c, false)
	tagAll(g)

	New(4, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())

	assert.True(t, gate.IsNoop())
	assert.Equal(t, 1, rec.count("b"))
	assert.Equal(t, 1, rec.count("c"))
	assert.Greater(t, rec.indexOf("b"), rec.indexOf("a"))
	assert.Greater(t, rec.indexOf("c"), rec.indexOf("a"))
}

func TestTagsClearedAfterPass(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	mustOp(t, g, e, "a", rec.work("a"))
	tagAll(g)

	require.True(t, NeedsEvaluation(g))
	New(2, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, g.Layers())
	assert.False(t, NeedsEvaluation(g), "tags must be cleared at pass end")
}

func TestTagsClearedEvenForMaskedNodes(t *testing.T) {
	g := graph.New()
	hidden := g.AddEntity("hidden", graph.Layer(3))
	rec := newRecorder()
	mustOp(t, g, hidden, "masked", rec.work("masked"))
	tagAll(g)

	// The node is outside the mask and never runs, but the defensive clear
	// still wipes its tag.
	New(2, nil).Evaluate(context.Background(), graph.NewEvalContext(graph.ModeInteractive), g, graph.Layer(0))

	assert.Zero(t, rec.count("masked"))
	assert.False(t, NeedsEvaluation(g))
}

type stubScene struct{ frame float64 }

func (s stubScene) CurrentFrame() float64 { return s.frame }

func TestEvaluateForScene(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	mustOp(t, g, e, "a", rec.work("a"))
	tagAll(g)

	ec := graph.NewEvalContext(graph.ModeBatch)
	New(2, nil).EvaluateForScene(context.Background(), ec, g, stubScene{frame: 42.5})

	assert.Equal(t, 1, rec.count("a"))
	assert.Equal(t, 42.5, ec.Time, "context time must come from the scene")
	assert.Equal(t, 42.5, g.TimeSource().Frame())
}

func TestEvaluateOnFrameChange(t *testing.T) {
	g := graph.New()
	e := g.AddEntity("main", graph.Layer(0))
	rec := newRecorder()
	a := mustOp(t, g, e, "a", rec.work("a"))
	b := mustOp(t, g, e, "b", rec.work("b"))
	c := mustOp(t, g, e, "c", rec.work("c"))
	mustConnect(t, g, a, b, false)
	g.DependOnTime(a)
	_ = c // not time dependent and not downstream: must stay untouched

	ec := graph.NewEvalContext(graph.ModeInteractive)
	ev := New(4, nil)

	// A frame change tags the time-dependent root and flushes the tag to
	// its dependents; unrelated nodes stay clean.
	ev.EvaluateOnFrameChange(context.Background(), ec, g, 7, g.Layers())

	assert.Equal(t, 1, rec.count("a"))
	assert.Equal(t, 1, rec.count("b"))
	assert.Zero(t, rec.count("c"))
	assert.Equal(t, 7.0, ec.Time)
	assert.False(t, NeedsEvaluation(g))
}
