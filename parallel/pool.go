// SPDX-License-Identifier: EPL-2.0

// Package parallel runs order-preserving, data-parallel loops over indexed
// collections.
//
// Every helper here splits an index range into contiguous blocks and hands
// each block to exactly one goroutine. Callers must only write to the output
// positions of their own block, which is what makes the result identical to a
// sequential loop regardless of how many workers run.
//
// A nil *Pool is valid and runs everything on the calling goroutine.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinItems is the smallest input that gets split across workers. Below it the
// goroutine hand-off costs more than the work itself.
const MinItems = 4096

// Pool bounds how many goroutines a single loop may use.
type Pool struct {
	workers  int
	minItems int
}

// New returns a pool with the given worker count. A count <= 0 selects the
// available hardware concurrency.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pool{
		workers:  workers,
		minItems: MinItems,
	}
}

// Workers reports the worker count, 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// For calls fn over [0, n) split into contiguous [lo, hi) blocks and waits for
// all of them.
func (p *Pool) For(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}

	if p == nil || p.workers <= 1 || n < p.minItems {
		fn(0, n)
		return
	}

	blocks := min(p.workers, n)
	size := (n + blocks - 1) / blocks

	var g errgroup.Group
	g.SetLimit(p.workers)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// Map applies fn to every element of in and returns the results in input
// order. An empty input yields an empty, non-nil slice.
func Map[In, Out any](p *Pool, in []In, fn func(In) Out) []Out {
	out := make([]Out, len(in))
	p.For(len(in), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = fn(in[i])
		}
	})
	return out
}
