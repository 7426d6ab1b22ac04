package sort

import (
	"math/rand"
	"slices"
	"testing"
)

func ascending(a, b int32) bool { return a < b }

func TestHeapSortFunc(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 7, 16, 31, 100, 1000}
	for _, n := range sizes {
		h := make([]int32, n)
		for i := range h {
			h[i] = int32(i)
		}
		rand.Shuffle(n, func(i, j int) { h[i], h[j] = h[j], h[i] })

		HeapSortFunc(h, ascending)
		if !slices.IsSorted(h) {
			t.Errorf("HeapSortFunc size %d: not sorted: %v", n, h)
		}
	}
}

func TestHeapSortFuncByKey(t *testing.T) {
	// Sort indices by a value table, descending, ties by lower index.
	values := []float32{5, 1, 4, 2, 8, 4}
	less := func(a, b int32) bool {
		if values[a] != values[b] {
			return values[a] > values[b]
		}
		return a < b
	}
	h := []int32{0, 1, 2, 3, 4, 5}
	HeapSortFunc(h, less)

	want := []int32{4, 0, 2, 5, 3, 1}
	if !slices.Equal(h, want) {
		t.Errorf("HeapSortFunc by key = %v, want %v", h, want)
	}
}

func TestHeapifyFunc(t *testing.T) {
	h := make([]int32, 50)
	for i := range h {
		h[i] = int32(rand.Intn(20))
	}
	HeapifyFunc(h, ascending)
	if !IsHeapFunc(h, ascending) {
		t.Errorf("HeapifyFunc did not produce a heap: %v", h)
	}
	if h[0] != slices.Max(h) {
		t.Errorf("heap root = %d, want max %d", h[0], slices.Max(h))
	}
}

func TestSiftDownFuncReplaceRoot(t *testing.T) {
	h := []int32{3, 9, 4, 1, 7}
	HeapifyFunc(h, ascending)
	h[0] = 0
	SiftDownFunc(h, 0, len(h), ascending)
	if !IsHeapFunc(h, ascending) {
		t.Errorf("SiftDownFunc broke the heap: %v", h)
	}
}

func TestIsHeapFunc(t *testing.T) {
	if !IsHeapFunc([]int32{9, 5, 7, 1}, ascending) {
		t.Error("IsHeapFunc rejected a valid heap")
	}
	if IsHeapFunc([]int32{1, 5, 7}, ascending) {
		t.Error("IsHeapFunc accepted an invalid heap")
	}
}

func BenchmarkHeapSortFunc(b *testing.B) {
	src := make([]int32, 4096)
	for i := range src {
		src[i] = rand.Int31()
	}
	h := make([]int32, len(src))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(h, src)
		HeapSortFunc(h, ascending)
	}
}
