// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topk

import (
	"github.com/ajroetker/go-topk/hwy"
	"github.com/ajroetker/go-topk/hwy/contrib/workerpool"
)

// FindTopK runs the general path over numRows rows of rowSize values,
// sequentially and with a single reused Container.
//
// For row r, the selected column indices are written to
// outIdx[r*k : r*k+k] and the matching values to outVals[r*k : r*k+k],
// best first. Callers guarantee 1 <= k <= rowSize and buffer sizes of
// numRows*rowSize and numRows*k.
func FindTopK[T hwy.TopKElem](values []T, rowSize, numRows, k int, ord Ordering, outIdx []int32, outVals []T) {
	if numRows <= 0 {
		return
	}
	c := NewContainer[T](k, rowSize, ord)
	selectRows(c, values, rowSize, k, 0, numRows, outIdx, outVals)
}

// FindTopKParallel is FindTopK with rows spread over pool. Each worker slot
// owns a private Container, reused across the rows of its chunks. A nil pool
// runs FindTopK.
func FindTopKParallel[T hwy.TopKElem](pool *workerpool.Pool, values []T, rowSize, numRows, k int, ord Ordering, outIdx []int32, outVals []T) {
	if pool == nil {
		FindTopK(values, rowSize, numRows, k, ord, outIdx, outVals)
		return
	}
	if numRows <= 0 {
		return
	}

	arenas := make([]*Container[T], pool.NumWorkers())
	pool.ParallelForWorker(numRows, func(worker, start, end int) {
		c := arenas[worker]
		if c == nil {
			c = NewContainer[T](k, rowSize, ord)
			arenas[worker] = c
		}
		selectRows(c, values, rowSize, k, start, end, outIdx, outVals)
	})
}

// selectRows runs c over rows [start, end).
func selectRows[T hwy.TopKElem](c *Container[T], values []T, rowSize, k, start, end int, outIdx []int32, outVals []T) {
	for r := start; r < end; r++ {
		row := values[r*rowSize : (r+1)*rowSize]
		c.Bind(row)
		for col := range rowSize {
			c.Offer(int32(col))
		}

		top := c.ExtractSorted()
		idxRow := outIdx[r*k : r*k+k]
		valRow := outVals[r*k : r*k+k]
		copy(idxRow, top)
		for j, loc := range top {
			valRow[j] = row[loc]
		}
	}
}
