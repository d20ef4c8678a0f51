package taskpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelRangeCoversEveryIndex(t *testing.T) {
	for _, size := range []int{0, 1, 7, 100, 5000} {
		hits := make([]atomic.Int32, size)
		ParallelRange(size, 256, func(i int) {
			hits[i].Add(1)
		})
		for i := range hits {
			assert.EqualValues(t, 1, hits[i].Load(), "index %d at size %d", i, size)
		}
	}
}

func TestParallelRangeSequentialBelowThreshold(t *testing.T) {
	// Below the threshold the callback runs on the calling goroutine in
	// order, so an unsynchronized slice append is safe.
	var seen []int
	ParallelRange(10, 256, func(i int) {
		seen = append(seen, i)
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, seen)
}

func TestParallelRangeEquivalence(t *testing.T) {
	const n = 1000
	seq := make([]int, n)
	par := make([]int, n)
	ParallelRange(n, n+1, func(i int) { seq[i] = i * i })
	ParallelRange(n, 1, func(i int) { par[i] = i * i })
	assert.Equal(t, seq, par)
}
