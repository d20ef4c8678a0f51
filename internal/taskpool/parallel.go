package taskpool

import (
	"runtime"
	"sync"
)

// ParallelRange invokes fn for every index in [0, n) using one goroutine per
// available CPU. Below threshold the range runs sequentially on the caller:
// for small inputs the goroutine overhead costs more than it saves. fn must
// not depend on any cross-index ordering.
func ParallelRange(n, threshold int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < threshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
