package render

import "sync"

// minRowsPerWorker keeps tiny frames on a single goroutine.
const minRowsPerWorker = 4

// parallelRows calls fn over [0, n) split into at most workers contiguous,
// disjoint chunks and waits for all of them.
func parallelRows(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minRowsPerWorker {
		fn(0, n)
		return
	}

	if n/minRowsPerWorker < workers {
		workers = n / minRowsPerWorker
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
