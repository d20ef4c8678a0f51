package eval

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/depsflow/internal/graph"
)

// recorder observes work function executions across goroutines.
type recorder struct {
	mu     sync.Mutex
	order  []string
	counts map[string]int
}

func newRecorder() *recorder {
	return &recorder{counts: make(map[string]int)}
}

func (r *recorder) work(name string) graph.WorkFunc {
	return func(ctx context.Context, ec *graph.EvalContext) {
		r.mu.Lock()
		r.order = append(r.order, name)
		r.counts[name]++
		r.mu.Unlock()
	}
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *recorder) indexOf(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range r.order {
		if v == name {
			return i
		}
	}
	return -1
}

func mustOp(t *testing.T, g *graph.Graph, e *graph.Entity, name string, w graph.WorkFunc) *graph.Node {
	t.Helper()
	n, err := g.AddOperation(e, name, w)
	require.NoError(t, err)
	return n
}

func mustConnect(t *testing.T, g *graph.Graph, from, to *graph.Node, cyclic bool) {
	t.Helper()
	_, err := g.Connect(from, to, cyclic)
	require.NoError(t, err)
}

func tagAll(g *graph.Graph) {
	for _, n := range g.Operations() {
		g.TagUpdate(n)
	}
}
