package graph

import "sync"

// TimeSource is the single clock node of a graph. Operations registered as
// time-dependent get tagged for update whenever the frame changes.
type TimeSource struct {
	mu         sync.Mutex
	frame      float64
	dependents []*Node
}

// SetFrame stores the current scene time.
func (t *TimeSource) SetFrame(frame float64) {
	t.mu.Lock()
	t.frame = frame
	t.mu.Unlock()
}

// Frame returns the current scene time.
func (t *TimeSource) Frame() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// DependOnTime registers n as time-dependent: a frame change tags it for
// re-evaluation.
func (g *Graph) DependOnTime(n *Node) {
	t := g.timeSource
	t.mu.Lock()
	t.dependents = append(t.dependents, n)
	t.mu.Unlock()
}

// TagTimeUpdate tags every time-dependent operation. Called on frame change
// before updates are flushed through the graph.
func (g *Graph) TagTimeUpdate() {
	t := g.timeSource
	t.mu.Lock()
	deps := append([]*Node(nil), t.dependents...)
	t.mu.Unlock()
	for _, n := range deps {
		g.TagUpdate(n)
	}
}
