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
	"github.com/ajroetker/go-topk/hwy/contrib/vec"
	"github.com/ajroetker/go-topk/hwy/contrib/workerpool"
)

// Top1Rows computes the largest value of every row and the lowest column
// index holding it, writing outVals[r] and outIdx[r]. It is the k=1,
// Largest specialization of FindTopK and returns the same results.
//
// The first rowSize/4 blocks of 4 columns go to the block-reduction
// primitive; the remaining rowSize%4 columns replace the winner only on a
// strictly greater value, which keeps the earlier column on ties. Rows are
// spread over pool; a nil pool runs them on the calling goroutine.
func Top1Rows[T hwy.TopKElem](pool *workerpool.Pool, values []T, rowSize, numRows int, outIdx []int32, outVals []T) {
	if numRows <= 0 {
		return
	}
	blocks := rowSize / hwy.BlockLanes
	scan := top1Blocks[T]()

	pool.ParallelFor(numRows, func(start, end int) {
		for r := start; r < end; r++ {
			row := values[r*rowSize : (r+1)*rowSize]

			var best T
			var bestIdx int32
			next := blocks * hwy.BlockLanes
			if blocks > 0 {
				best, bestIdx = scan(row, blocks)
			} else {
				best, bestIdx = row[0], 0
				next = 1
			}

			for j := next; j < rowSize; j++ {
				if v := row[j]; v > best || (hwy.IsNaN(best) && !hwy.IsNaN(v)) {
					best, bestIdx = v, int32(j)
				}
			}

			outVals[r] = best
			outIdx[r] = bestIdx
		}
	})
}

// top1Blocks returns the dispatched block-reduction primitive for T.
func top1Blocks[T hwy.TopKElem]() func(row []T, blocks int) (T, int32) {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(vec.Top1BlocksFloat32).(func([]T, int) (T, int32))
	case int32:
		return any(vec.Top1BlocksInt32).(func([]T, int) (T, int32))
	}
	return vec.BaseTop1Blocks[T]
}
