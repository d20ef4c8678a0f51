package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/depsflow/internal/graph"
	"github.com/vk/depsflow/internal/registry"
)

// ExecutionRecord holds the observed execution window of one operation.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// RecorderModule registers a 'record' handler that tracks how often and in
// what order operations run. It is the shared observer for scheduler
// integration tests.
type RecorderModule struct {
	mu     sync.Mutex
	order  []string
	counts map[string]int
	times  map[string]*ExecutionRecord
}

// NewRecorderModule creates a fresh recorder.
func NewRecorderModule() *RecorderModule {
	return &RecorderModule{
		counts: make(map[string]int),
		times:  make(map[string]*ExecutionRecord),
	}
}

// Register registers the 'record' handler. It requires an 'id' argument.
func (m *RecorderModule) Register(r *registry.Registry) {
	r.RegisterHandler("record", func(args map[string]cty.Value) (graph.WorkFunc, error) {
		idVal, ok := args["id"]
		if !ok || idVal.Type() != cty.String {
			return nil, fmt.Errorf("record handler requires a string 'id' argument")
		}
		id := idVal.AsString()
		return func(ctx context.Context, ec *graph.EvalContext) {
			start := time.Now()
			m.mu.Lock()
			m.order = append(m.order, id)
			m.counts[id]++
			m.times[id] = &ExecutionRecord{Start: start, End: time.Now()}
			m.mu.Unlock()
		}, nil
	})
}

// Order returns the completion order observed so far.
func (m *RecorderModule) Order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Count returns how many times the given id ran.
func (m *RecorderModule) Count(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[id]
}

// IndexOf returns the first position of id in the completion order, or -1.
func (m *RecorderModule) IndexOf(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.order {
		if v == id {
			return i
		}
	}
	return -1
}
