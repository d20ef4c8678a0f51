package taskpool

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkAndWaitDrainsAllTasks(t *testing.T) {
	p := New(context.Background(), nil)
	var ran atomic.Int32
	for i := 0; i < 100; i++ {
		p.Push(func(ctx context.Context, p *Pool, data any, threadID int) {
			ran.Add(1)
		}, nil, PriorityLow, MainThread)
	}
	p.WorkAndWait()
	assert.EqualValues(t, 100, ran.Load())
}

func TestRecursivePushesAreDrained(t *testing.T) {
	p := New(context.Background(), nil)
	var ran atomic.Int32

	// Each task spawns two more until depth is exhausted: WorkAndWait must
	// not return while recursively pushed work remains.
	var spawn RunFunc
	spawn = func(ctx context.Context, p *Pool, data any, threadID int) {
		ran.Add(1)
		depth := data.(int)
		if depth > 0 {
			p.Push(spawn, depth-1, PriorityLow, threadID)
			p.Push(spawn, depth-1, PriorityLow, threadID)
		}
	}
	p.Push(spawn, 5, PriorityLow, MainThread)
	p.WorkAndWait()
	assert.EqualValues(t, 63, ran.Load(), "2^6-1 tasks for depth 5")
}

func TestSingleThreadRunsEverythingOnCaller(t *testing.T) {
	p := New(context.Background(), nil)
	p.SetNumThreads(1)
	require.Equal(t, 1, p.NumThreads())

	var order []int
	var task RunFunc
	task = func(ctx context.Context, p *Pool, data any, threadID int) {
		n := data.(int)
		order = append(order, n) // no mutex: single worker, no races
		if n < 4 {
			p.Push(task, n+1, PriorityLow, threadID)
		}
	}
	p.Push(task, 0, PriorityLow, MainThread)
	p.WorkAndWait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSetNumThreadsClampsToOne(t *testing.T) {
	p := New(context.Background(), nil)
	p.SetNumThreads(0)
	assert.Equal(t, 1, p.NumThreads())
	p.SetNumThreads(-3)
	assert.Equal(t, 1, p.NumThreads())
}

func TestHighPriorityRunsFirst(t *testing.T) {
	p := New(context.Background(), nil)
	p.SetNumThreads(1)

	var order []string
	record := func(name string) RunFunc {
		return func(ctx context.Context, p *Pool, data any, threadID int) {
			order = append(order, name)
		}
	}
	p.Push(record("low"), nil, PriorityLow, MainThread)
	p.Push(record("high"), nil, PriorityHigh, MainThread)
	p.WorkAndWait()
	assert.Equal(t, []string{"high", "low"}, order)
}

func TestUserdataRoundTrip(t *testing.T) {
	type state struct{ hits atomic.Int32 }
	st := &state{}
	p := New(context.Background(), st)

	p.Push(func(ctx context.Context, p *Pool, data any, threadID int) {
		p.Userdata().(*state).hits.Add(1)
	}, nil, PriorityLow, MainThread)
	p.WorkAndWait()
	assert.EqualValues(t, 1, st.hits.Load())
}

func TestWorkAndWaitOnEmptyPoolReturns(t *testing.T) {
	p := New(context.Background(), nil)
	p.WorkAndWait() // must not hang
}
