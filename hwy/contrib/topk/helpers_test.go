package topk

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-topk/hwy"
	"github.com/ajroetker/go-topk/hwy/contrib/vec"
)

// bruteForce sorts every column of row with Less and keeps the first k.
func bruteForce[T hwy.TopKElem](row []T, k int, ord Ordering) ([]T, []int32) {
	idx := make([]int32, len(row))
	for i := range idx {
		idx[i] = int32(i)
	}
	slices.SortStableFunc(idx, func(a, b int32) int {
		switch {
		case Less(row, ord, a, b):
			return -1
		case Less(row, ord, b, a):
			return 1
		}
		return 0
	})
	idx = idx[:k]
	vals := make([]T, k)
	for j, i := range idx {
		vals[j] = row[i]
	}
	return vals, idx
}

// bruteForceRows applies bruteForce row by row.
func bruteForceRows[T hwy.TopKElem](values []T, rowSize, k int, ord Ordering) ([]T, []int32) {
	var vals []T
	var idx []int32
	for r := 0; r*rowSize < len(values); r++ {
		v, i := bruteForce(values[r*rowSize:(r+1)*rowSize], k, ord)
		vals = append(vals, v...)
		idx = append(idx, i...)
	}
	return vals, idx
}

// randomRows returns numRows*rowSize values drawn from [0, spread) so that
// duplicates are common for small spreads.
func randomRows[T hwy.TopKElem](rng *rand.Rand, numRows, rowSize, spread int) []T {
	out := make([]T, numRows*rowSize)
	for i := range out {
		out[i] = T(rng.Intn(spread)) - T(spread/2)
	}
	return out
}

// checkRowProperties verifies size, disjointness, ordering and tie-break of
// one result row without reference to another implementation.
func checkRowProperties[T hwy.TopKElem](t *testing.T, row []T, vals []T, idx []int32, k int, ord Ordering) {
	t.Helper()
	require.Len(t, idx, k)
	require.Len(t, vals, k)

	seen := make(map[int32]bool, k)
	for j, i := range idx {
		require.GreaterOrEqual(t, i, int32(0))
		require.Less(t, i, int32(len(row)))
		require.False(t, seen[i], "index %d returned twice", i)
		seen[i] = true
		require.Equal(t, row[i], vals[j])
	}
	for j := 1; j < k; j++ {
		a, b := vals[j-1], vals[j]
		if ord == Largest {
			require.False(t, b > a, "values not non-increasing: %v", vals)
		} else {
			require.False(t, b < a, "values not non-decreasing: %v", vals)
		}
		if a == b {
			require.Less(t, idx[j-1], idx[j], "tie not broken by lower index: %v", idx)
		}
	}
}

// withLevels runs fn once per implementation of the block primitive the
// CPU can run: the detected level, the portable 4-lane scan and the scalar
// reference.
func withLevels(t *testing.T, fn func(t *testing.T)) {
	current := hwy.CurrentLevel()
	levels := []hwy.DispatchLevel{current}
	if current == hwy.DispatchAVX2 || current == hwy.DispatchAVX512 {
		levels = append(levels, hwy.DispatchSSE2)
	}
	if hwy.HasSIMD() {
		levels = append(levels, hwy.DispatchScalar)
	}
	for _, level := range levels {
		t.Run(level.String(), func(t *testing.T) {
			restore := hwy.SetLevel(level)
			vec.Redispatch()
			defer func() {
				restore()
				vec.Redispatch()
			}()
			fn(t)
		})
	}
}
