package tonks

import (
	"runtime"
	"sync"
)

// minChunk is the smallest slice a worker is handed; shorter inputs are
// evaluated on the calling goroutine.
const minChunk = 32

// parallelFor executes fn over [0, n) split into contiguous chunks.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// mapLengths evaluates f independently for every length in ls. The first
// failing element, by index, is returned as an *ElementError.
func mapLengths(ls []float64, f func(L float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(ls))
	errs := make([]error, len(ls))

	parallelFor(len(ls), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			out[i], errs[i] = f(ls[i])
		}
	})

	for i, err := range errs {
		if err != nil {
			return nil, &ElementError{Index: i, L: ls[i], Err: err}
		}
	}
	return out, nil
}
