// Package taskpool implements the worker pool the evaluation scheduler runs
// on: a fixed set of goroutines draining a shared queue of tasks, where tasks
// may push further tasks while executing. The pool is created per run, filled
// with seed work, drained with WorkAndWait and then discarded.
package taskpool

import (
	"context"
	"runtime"
	"sync"
)

// Priority selects which queue a task lands in. High-priority tasks are
// always popped before low-priority ones.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityHigh
)

// MainThread is the thread id to use for pushes that do not originate from a
// pool worker.
const MainThread = 0

// RunFunc is the signature of a unit of work. threadID identifies the worker
// executing it and may be passed back to Push for locality.
type RunFunc func(ctx context.Context, p *Pool, taskdata any, threadID int)

type task struct {
	fn   RunFunc
	data any
}

// Pool is a drainable work queue executed by a fixed number of goroutines.
// All methods are safe for concurrent use; tasks may Push new tasks from any
// worker.
type Pool struct {
	ctx      context.Context
	userdata any

	mu      sync.Mutex
	cond    *sync.Cond
	threads int

	high []task
	low  []task
	// local holds per-worker LIFO queues fed by Push calls carrying a
	// worker's own thread id. Idle workers steal from these.
	local [][]task

	// pending counts tasks that are queued or currently running. The pool
	// is drained when it reaches zero.
	pending int
}

// New creates a pool bound to ctx and an opaque userdata value that tasks
// can retrieve with Userdata. The thread count defaults to GOMAXPROCS.
func New(ctx context.Context, userdata any) *Pool {
	p := &Pool{
		ctx:      ctx,
		userdata: userdata,
		threads:  runtime.GOMAXPROCS(0),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Userdata returns the value the pool was created with.
func (p *Pool) Userdata() any {
	return p.userdata
}

// SetNumThreads forces the number of worker goroutines used by WorkAndWait.
// Values below one are clamped to one.
func (p *Pool) SetNumThreads(n int) {
	if n < 1 {
		n = 1
	}
	p.mu.Lock()
	p.threads = n
	p.mu.Unlock()
}

// NumThreads reports the number of workers WorkAndWait will run with.
func (p *Pool) NumThreads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.threads
}

// Push queues a task. threadID should be the id handed to the pushing
// RunFunc, or MainThread when pushing from outside the pool; pushes from a
// worker go onto that worker's LIFO queue so freshly unlocked work keeps
// cache locality with its producer.
func (p *Pool) Push(fn RunFunc, taskdata any, priority Priority, threadID int) {
	p.mu.Lock()
	t := task{fn: fn, data: taskdata}
	if threadID > 0 && threadID <= len(p.local) {
		p.local[threadID-1] = append(p.local[threadID-1], t)
	} else if priority == PriorityHigh {
		p.high = append(p.high, t)
	} else {
		p.low = append(p.low, t)
	}
	p.pending++
	p.mu.Unlock()
	p.cond.Signal()
}

// pop removes the next runnable task, preferring the worker's own local
// queue, then the shared queues, then stealing from other workers. Returns
// false when nothing is queued.
func (p *Pool) pop(worker int) (task, bool) {
	if q := p.local[worker]; len(q) > 0 {
		t := q[len(q)-1]
		p.local[worker] = q[:len(q)-1]
		return t, true
	}
	if len(p.high) > 0 {
		t := p.high[0]
		p.high = p.high[1:]
		return t, true
	}
	if len(p.low) > 0 {
		t := p.low[0]
		p.low = p.low[1:]
		return t, true
	}
	for i, q := range p.local {
		if i != worker && len(q) > 0 {
			t := q[0]
			p.local[i] = q[1:]
			return t, true
		}
	}
	return task{}, false
}

// WorkAndWait runs workers until every queued task, including tasks pushed
// recursively while draining, has completed. The calling goroutine
// participates as worker zero, so a single-threaded pool executes everything
// on the caller.
func (p *Pool) WorkAndWait() {
	p.mu.Lock()
	threads := p.threads
	p.local = make([][]task, threads)
	p.mu.Unlock()

	var wg sync.WaitGroup
	for i := 1; i < threads; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			p.work(worker)
		}(i)
	}
	p.work(0)
	wg.Wait()
}

// work is the loop run by each worker. Worker indexes are zero-based
// internally; the thread id handed to tasks is one-based so that zero can
// mean "no thread hint".
func (p *Pool) work(worker int) {
	for {
		p.mu.Lock()
		t, ok := p.pop(worker)
		for !ok && p.pending > 0 {
			p.cond.Wait()
			t, ok = p.pop(worker)
		}
		if !ok {
			// Drained: wake everyone else up so they can exit too.
			p.cond.Broadcast()
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()

		t.fn(p.ctx, p, t.data, worker+1)

		p.mu.Lock()
		p.pending--
		drained := p.pending == 0
		p.mu.Unlock()
		if drained {
			p.cond.Broadcast()
		}
	}
}
