package topk

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect binds row, offers every column and returns the sorted result.
func collect[T float32 | int32](c *Container[T], row []T) []int32 {
	c.Bind(row)
	for i := range len(row) {
		c.Offer(int32(i))
	}
	return append([]int32(nil), c.ExtractSorted()...)
}

func TestContainerScenarios(t *testing.T) {
	tests := []struct {
		name    string
		row     []float32
		k       int
		ord     Ordering
		wantIdx []int32
	}{
		{"largest_k3", []float32{5, 1, 4, 2, 8}, 3, Largest, []int32{4, 0, 2}},
		{"all_equal", []float32{3, 3, 3}, 2, Largest, []int32{0, 1}},
		{"smallest_dup_min", []float32{5, 2, 9, 2, 7}, 2, Smallest, []int32{1, 3}},
		{"single", []float32{10}, 1, Largest, []int32{0}},
		{"k_equals_row", []float32{2, 7, 7, 1}, 4, Largest, []int32{1, 2, 0, 3}},
		{"k_equals_row_smallest", []float32{2, 7, 7, 1}, 4, Smallest, []int32{3, 0, 1, 2}},
		{"k1_general", []float32{1, 2, 3, 4, 5, 6, 7}, 1, Largest, []int32{6}},
		{"k1_smallest", []float32{4, 0, 0, 9}, 1, Smallest, []int32{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContainer[float32](tt.k, len(tt.row), tt.ord)
			assert.Equal(t, tt.wantIdx, collect(c, tt.row))
		})
	}
}

func TestContainerBounded(t *testing.T) {
	row := []int32{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	k := 3
	c := NewContainer[int32](k, len(row), Smallest)
	c.Bind(row)
	for i := range int32(len(row)) {
		c.Offer(i)
		assert.LessOrEqual(t, c.Len(), k+1)
	}
	assert.Equal(t, k+1, c.Len())
	assert.Equal(t, []int32{9, 8, 7}, c.ExtractSorted())
	assert.Equal(t, k, c.Len())
}

func TestContainerFewerOffersThanK(t *testing.T) {
	row := []float32{1, 9, 4}
	c := NewContainer[float32](5, 3, Largest)
	c.Bind(row)
	c.Offer(0)
	c.Offer(2)
	assert.Equal(t, []int32{2, 0}, c.ExtractSorted())
}

func TestContainerReuse(t *testing.T) {
	c := NewContainer[int32](2, 4, Largest)

	first := collect(c, []int32{100, 200, 1, 2})
	assert.Equal(t, []int32{1, 0}, first)

	// A stale candidate from the first row would beat every value here.
	second := collect(c, []int32{5, 6, 7, 8})
	assert.Equal(t, []int32{3, 2}, second)

	// Rebinding after a short row must not keep the previous indices.
	c2 := NewContainer[int32](3, 3, Smallest)
	assert.Equal(t, []int32{2, 1, 0}, collect(c2, []int32{3, 2, 1}))
	assert.Equal(t, []int32{0, 1, 2}, collect(c2, []int32{1, 2, 3}))
}

func TestContainerAccessors(t *testing.T) {
	c := NewContainer[float32](4, 10, Smallest)
	assert.Equal(t, 4, c.K())
	assert.Equal(t, Smallest, c.Ordering())
	assert.Equal(t, 0, c.Len())
	assert.Panics(t, func() { NewContainer[float32](0, 10, Largest) })
}

func TestContainerMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, ord := range []Ordering{Largest, Smallest} {
		for _, rowSize := range []int{1, 2, 5, 16, 33, 100} {
			for _, k := range []int{1, 2, 3, rowSize / 2, rowSize} {
				if k < 1 || k > rowSize {
					continue
				}
				t.Run(fmt.Sprintf("%s/n%d/k%d", ord, rowSize, k), func(t *testing.T) {
					c := NewContainer[float32](k, rowSize, ord)
					for trial := 0; trial < 20; trial++ {
						row := randomRows[float32](rng, 1, rowSize, 6)
						got := collect(c, row)
						wantVals, wantIdx := bruteForce(row, k, ord)
						require.Equal(t, wantIdx, got, "row %v", row)

						gotVals := make([]float32, k)
						for j, i := range got {
							gotVals[j] = row[i]
						}
						require.Equal(t, wantVals, gotVals)
						checkRowProperties(t, row, gotVals, got, k, ord)
					}
				})
			}
		}
	}
}

func BenchmarkContainer(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	row := randomRows[float32](rng, 1, 4096, 1<<20)
	for _, k := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("k%d", k), func(b *testing.B) {
			c := NewContainer[float32](k, len(row), Largest)
			for i := 0; i < b.N; i++ {
				collect(c, row)
			}
		})
	}
}
