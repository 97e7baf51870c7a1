package sph

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// ParallelFor splits [0,n) into GOMAXPROCS contiguous chunks and runs fn
// once per chunk on its own goroutine, with a barrier before returning.
// This is the fork-join work-sharing construct used between pipeline
// passes: each invocation of fn owns a disjoint index range, so callers
// writing only particles in [lo,hi) never race with another chunk's writer.
func ParallelFor(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	nw := runtime.GOMAXPROCS(0)
	if nw > n {
		nw = n
	}
	if nw <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + nw - 1) / nw
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// MinReduce runs fn(lo,hi) -> per-chunk minimum into a per-goroutine slot,
// then merges the slots into a single global minimum. fn must return
// math.Inf(1) for chunks with no contributing candidate so they do not
// win the reduction.
func MinReduce(n int, fn func(lo, hi int) float64) float64 {
	if n <= 0 {
		return 0
	}
	nw := runtime.GOMAXPROCS(0)
	if nw > n {
		nw = n
	}
	if nw <= 1 {
		return fn(0, n)
	}
	chunk := (n + nw - 1) / nw
	locals := make([]float64, 0, nw)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			m := fn(lo, hi)
			mu.Lock()
			locals = append(locals, m)
			mu.Unlock()
		}(lo, hi)
	}
	wg.Wait()
	return floats.Min(locals)
}
