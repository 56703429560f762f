package reference

import (
	"runtime"
	"sync"
)

// parallelRows splits [0, n) into per-CPU partitions and runs fn on each
// concurrently. Partitions are disjoint and every row is written by
// exactly one goroutine, so results are identical to a serial pass.
func parallelRows(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()

	// Parallel overhead isn't worth it for small row counts.
	if n < workers*2 {
		fn(0, n)
		return
	}

	part := n / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * part
		end := start + part
		if i == workers-1 {
			end = n
		}
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
