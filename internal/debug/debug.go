// Package debug defines the instrumentation sink the evaluator reports to.
// Every hook is fire-and-forget: the scheduler never consumes a return value
// and never blocks on a sink.
package debug

import (
	"context"
	"time"

	"github.com/petermattis/goid"

	"github.com/vk/depsflow/internal/ctxlog"
	"github.com/vk/depsflow/internal/graph"
)

// Sink receives evaluation lifecycle events. Implementations must be safe
// for concurrent use; TaskStarted and TaskCompleted fire from arbitrary
// worker goroutines.
type Sink interface {
	TaskStarted(n *graph.Node)
	TaskCompleted(n *graph.Node, d time.Duration)
	EvalBegin(ec *graph.EvalContext)
	EvalEnd(ec *graph.EvalContext)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) TaskStarted(*graph.Node)                  {}
func (NopSink) TaskCompleted(*graph.Node, time.Duration) {}
func (NopSink) EvalBegin(*graph.EvalContext)             {}
func (NopSink) EvalEnd(*graph.EvalContext)               {}

// LogSink writes every event to the context logger at debug level. Task
// events carry the id of the executing goroutine so interleaved workers can
// be told apart in the log stream.
type LogSink struct {
	ctx context.Context
}

// NewLogSink creates a sink logging through the logger carried by ctx.
func NewLogSink(ctx context.Context) *LogSink {
	return &LogSink{ctx: ctx}
}

func (s *LogSink) TaskStarted(n *graph.Node) {
	ctxlog.FromContext(s.ctx).Debug("Task started.",
		"op", n.Name(), "entity", n.Owner().Name(), "goid", goid.Get())
}

func (s *LogSink) TaskCompleted(n *graph.Node, d time.Duration) {
	ctxlog.FromContext(s.ctx).Debug("Task completed.",
		"op", n.Name(), "entity", n.Owner().Name(), "goid", goid.Get(), "duration", d)
}

func (s *LogSink) EvalBegin(ec *graph.EvalContext) {
	ctxlog.FromContext(s.ctx).Debug("Evaluation begin.",
		"mode", ec.Mode.String(), "time", ec.Time)
}

func (s *LogSink) EvalEnd(ec *graph.EvalContext) {
	ctxlog.FromContext(s.ctx).Debug("Evaluation end.",
		"mode", ec.Mode.String(), "time", ec.Time)
}
