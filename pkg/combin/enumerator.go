// Package combin enumerates position-based combinations of n items.
package combin

// Enumerator streams every combination of item positions, largest size
// first. Within one size, combinations come in lexicographic order of
// positions, so items keep their original relative order.
//
// The enumeration is exhaustive: n items with no size limit produce
// 2^n - 1 combinations.
type Enumerator struct {
	n       int
	minSize int
	maxSize int

	k       int
	idx     []int
	started bool
	done    bool
}

// NewEnumerator creates an enumerator over n items for sizes maxSize down
// to 1. A maxSize <= 0 or larger than n means n.
func NewEnumerator(n, maxSize int) *Enumerator {
	if maxSize <= 0 || maxSize > n {
		maxSize = n
	}
	return newEnumerator(n, 1, maxSize)
}

// NewSizeClass creates an enumerator yielding only combinations of size k.
func NewSizeClass(n, k int) *Enumerator {
	if k > n {
		// empty class
		return newEnumerator(n, 1, 0)
	}
	return newEnumerator(n, k, k)
}

func newEnumerator(n, minSize, maxSize int) *Enumerator {
	if minSize < 1 {
		minSize = 1
	}
	return &Enumerator{
		n:       n,
		minSize: minSize,
		maxSize: maxSize,
		idx:     make([]int, 0, max(maxSize, 0)),
	}
}

// Next advances to the next combination. Returns false when exhausted.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}

	if !e.started {
		e.started = true
		e.k = e.maxSize
		return e.startSize()
	}

	// Advance within the current size
	k := e.k
	i := k - 1
	for i >= 0 && e.idx[i] == e.n-k+i {
		i--
	}
	if i >= 0 {
		e.idx[i]++
		for j := i + 1; j < k; j++ {
			e.idx[j] = e.idx[j-1] + 1
		}
		return true
	}

	e.k--
	return e.startSize()
}

// startSize positions the enumerator on the first combination of size e.k.
func (e *Enumerator) startSize() bool {
	if e.k < e.minSize || e.k <= 0 {
		e.done = true
		e.idx = e.idx[:0]
		return false
	}
	e.idx = e.idx[:0]
	for i := 0; i < e.k; i++ {
		e.idx = append(e.idx, i)
	}
	return true
}

// Indices returns the positions of the current combination. The slice is
// reused by Next and must not be modified or retained.
func (e *Enumerator) Indices() []int {
	return e.idx
}

// Size returns the size of the current combination.
func (e *Enumerator) Size() int {
	return len(e.idx)
}

// Reset rewinds the enumerator to its first combination.
func (e *Enumerator) Reset() {
	e.started = false
	e.done = false
	e.k = 0
	e.idx = e.idx[:0]
}

// Sizes returns the combination sizes an enumerator over n items with the
// given maxSize visits, in visiting order.
func Sizes(n, maxSize int) []int {
	if maxSize <= 0 || maxSize > n {
		maxSize = n
	}
	sizes := make([]int, 0, maxSize)
	for k := maxSize; k >= 1; k-- {
		sizes = append(sizes, k)
	}
	return sizes
}

// Binomial returns n choose k. It saturates instead of overflowing.
func Binomial(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var c uint64 = 1
	for i := 1; i <= k; i++ {
		num := uint64(n - k + i)
		if c > ^uint64(0)/num {
			return ^uint64(0)
		}
		c = c * num / uint64(i)
	}
	return c
}

// Count returns the number of combinations NewEnumerator(n, maxSize) yields.
func Count(n, maxSize int) uint64 {
	var total uint64
	for _, k := range Sizes(n, maxSize) {
		b := Binomial(n, k)
		if total > ^uint64(0)-b {
			return ^uint64(0)
		}
		total += b
	}
	return total
}
