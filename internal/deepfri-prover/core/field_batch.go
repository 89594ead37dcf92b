package core

import (
	"fmt"
	"sync"
)

// BatchInversion inverts a slice of field elements using Montgomery's trick:
// a single modular inversion plus O(n) multiplications instead of n
// inversions. Returns an error if any element is zero.
func (f *Field) BatchInversion(elements []*FieldElement) ([]*FieldElement, error) {
	n := len(elements)
	if n == 0 {
		return []*FieldElement{}, nil
	}

	prefix := make([]*FieldElement, n)
	acc := f.One()
	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("cannot batch-invert: element %d is zero", i)
		}
		prefix[i] = acc
		acc = acc.Mul(e)
	}

	accInv, err := acc.Inv()
	if err != nil {
		return nil, fmt.Errorf("batch inversion failed: %w", err)
	}

	results := make([]*FieldElement, n)
	for i := n - 1; i >= 0; i-- {
		results[i] = accInv.Mul(prefix[i])
		accInv = accInv.Mul(elements[i])
	}

	return results, nil
}

// ParallelBatchInversion is BatchInversion split across numWorkers
// independent chunks: each chunk runs Montgomery's trick on its own slice,
// so the result for element i depends only on the chunk containing i,
// matching BatchInversion's output exactly. Below 1000 elements, or with
// numWorkers <= 1, it falls back to the sequential path — chunking only
// pays off once the per-goroutine overhead is amortized.
func (f *Field) ParallelBatchInversion(elements []*FieldElement, numWorkers int) ([]*FieldElement, error) {
	n := len(elements)
	if n < 1000 || numWorkers <= 1 {
		return f.BatchInversion(elements)
	}

	chunkSize := (n + numWorkers - 1) / numWorkers
	results := make([]*FieldElement, n)
	errs := make([]error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			inverted, err := f.BatchInversion(elements[start:end])
			if err != nil {
				errs[w] = fmt.Errorf("worker %d: %w", w, err)
				return
			}
			copy(results[start:end], inverted)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
