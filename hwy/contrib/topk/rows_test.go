package topk

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-topk/hwy/contrib/workerpool"
)

func TestFindTopK(t *testing.T) {
	values := []float32{
		5, 1, 4, 2, 8,
		3, 3, 3, 0, 1,
		5, 2, 9, 2, 7,
	}
	outIdx := make([]int32, 3*2)
	outVals := make([]float32, 3*2)

	FindTopK(values, 5, 3, 2, Largest, outIdx, outVals)
	assert.Equal(t, []int32{4, 0, 0, 1, 2, 4}, outIdx)
	assert.Equal(t, []float32{8, 5, 3, 3, 9, 7}, outVals)

	FindTopK(values, 5, 3, 2, Smallest, outIdx, outVals)
	assert.Equal(t, []int32{1, 3, 3, 4, 1, 3}, outIdx)
	assert.Equal(t, []float32{1, 2, 0, 1, 2, 2}, outVals)
}

func TestFindTopKMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := workerpool.New(4)
	defer pool.Close()

	for _, ord := range []Ordering{Largest, Smallest} {
		for _, shape := range [][2]int{{1, 1}, {3, 7}, {17, 32}, {64, 5}, {9, 129}} {
			numRows, rowSize := shape[0], shape[1]
			for _, k := range []int{1, 3, rowSize} {
				if k > rowSize {
					continue
				}
				t.Run(fmt.Sprintf("%s/%dx%d/k%d", ord, numRows, rowSize, k), func(t *testing.T) {
					values := randomRows[int32](rng, numRows, rowSize, 10)
					wantVals, wantIdx := bruteForceRows(values, rowSize, k, ord)

					outIdx := make([]int32, numRows*k)
					outVals := make([]int32, numRows*k)
					FindTopK(values, rowSize, numRows, k, ord, outIdx, outVals)
					require.Equal(t, wantIdx, outIdx)
					require.Equal(t, wantVals, outVals)

					parIdx := make([]int32, numRows*k)
					parVals := make([]int32, numRows*k)
					FindTopKParallel(pool, values, rowSize, numRows, k, ord, parIdx, parVals)
					require.Equal(t, outIdx, parIdx)
					require.Equal(t, outVals, parVals)
				})
			}
		}
	}
}

func TestFindTopKParallelNilPool(t *testing.T) {
	values := []float32{1, 2, 3, 6, 5, 4}
	outIdx := make([]int32, 2)
	outVals := make([]float32, 2)
	FindTopKParallel(nil, values, 3, 2, 1, Smallest, outIdx, outVals)
	assert.Equal(t, []int32{0, 2}, outIdx)
	assert.Equal(t, []float32{1, 4}, outVals)
}

func TestFindTopKZeroRows(t *testing.T) {
	assert.NotPanics(t, func() {
		FindTopK[float32](nil, 4, 0, 2, Largest, nil, nil)
		FindTopKParallel[float32](nil, nil, 4, 0, 2, Largest, nil, nil)
		Top1Rows[float32](nil, nil, 4, 0, nil, nil)
	})
}

func TestTop1RowsScenarios(t *testing.T) {
	withLevels(t, func(t *testing.T) {
		tests := []struct {
			name    string
			row     []float32
			wantVal float32
			wantIdx int32
		}{
			{"block_plus_remainder", []float32{1, 2, 3, 4, 5, 6, 7}, 7, 6},
			{"single", []float32{10}, 10, 0},
			{"short_dup", []float32{4, 4, 1}, 4, 0},
			{"remainder_tie_keeps_block", []float32{1, 9, 0, 0, 9}, 9, 1},
			{"remainder_wins", []float32{1, 2, 3, 4, 1, 1, 1, 1, 0, 5}, 5, 9},
			{"exact_blocks", []float32{0, 8, 8, 0, 8, 0, 0, 0}, 8, 1},
			{"negative", []float32{-3, -1, -2, -1, -9}, -1, 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				idx := make([]int32, 1)
				vals := make([]float32, 1)
				Top1Rows(nil, tt.row, len(tt.row), 1, idx, vals)
				assert.Equal(t, tt.wantIdx, idx[0])
				assert.Equal(t, tt.wantVal, vals[0])
			})
		}
	})
}

func TestTop1RowsMatchesGeneral(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	withLevels(t, func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for _, rowSize := range []int{1, 2, 3, 4, 5, 7, 8, 13, 64, 101} {
			numRows := 37
			t.Run(fmt.Sprintf("float32/n%d", rowSize), func(t *testing.T) {
				values := randomRows[float32](rng, numRows, rowSize, 5)
				checkTop1(t, pool, values, rowSize, numRows)
			})
			t.Run(fmt.Sprintf("int32/n%d", rowSize), func(t *testing.T) {
				values := randomRows[int32](rng, numRows, rowSize, 5)
				checkTop1(t, pool, values, rowSize, numRows)
			})
		}
	})
}

func TestTop1RowsNaN(t *testing.T) {
	nan := float32(math.NaN())
	withLevels(t, func(t *testing.T) {
		rows := [][]float32{
			{nan, 1, 2, 2, nan},
			{nan, nan},
			{nan, nan, nan, nan, nan, 3},
			{1, 2, nan, 4, nan, 4, 0},
		}
		for _, row := range rows {
			checkTop1(t, nil, row, len(row), 1)
		}
	})
}

func checkTop1[T float32 | int32](t *testing.T, pool *workerpool.Pool, values []T, rowSize, numRows int) {
	t.Helper()
	fastIdx := make([]int32, numRows)
	fastVals := make([]T, numRows)
	Top1Rows(pool, values, rowSize, numRows, fastIdx, fastVals)

	genIdx := make([]int32, numRows)
	genVals := make([]T, numRows)
	FindTopK(values, rowSize, numRows, 1, Largest, genIdx, genVals)

	require.Equal(t, genIdx, fastIdx, "values %v", values)
	for r := range numRows {
		want := values[r*rowSize+int(fastIdx[r])]
		got := fastVals[r]
		// NaN winners are compared by identity of the selected column.
		require.True(t, got == want || (got != got && want != want), "row %d: value %v, want %v", r, got, want)
	}
}

func BenchmarkTopK(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	pool := workerpool.New(0)
	defer pool.Close()

	const numRows, rowSize = 256, 1000
	values := randomRows[float32](rng, numRows, rowSize, 1<<20)
	for _, k := range []int{1, 8, 64} {
		outIdx := make([]int32, numRows*k)
		outVals := make([]float32, numRows*k)
		b.Run(fmt.Sprintf("sequential/k%d", k), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				FindTopK(values, rowSize, numRows, k, Largest, outIdx, outVals)
			}
		})
		b.Run(fmt.Sprintf("parallel/k%d", k), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				FindTopKParallel(pool, values, rowSize, numRows, k, Largest, outIdx, outVals)
			}
		})
	}
	outIdx := make([]int32, numRows)
	outVals := make([]float32, numRows)
	b.Run("top1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Top1Rows(pool, values, rowSize, numRows, outIdx, outVals)
		}
	})
}
