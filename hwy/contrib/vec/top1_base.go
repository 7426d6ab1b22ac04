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

package vec

import (
	"github.com/ajroetker/go-topk/hwy"
)

// BaseTop1Blocks returns the largest value among the first blocks*4
// elements of row and the index of its first occurrence.
//
// The scan keeps a running winner per lane: lane j only ever sees the
// columns j, j+4, j+8, ... and replaces its winner on a strictly greater
// value, so each lane holds the lowest index of its own maximum. The final
// cross-lane reduction breaks ties on the lower index.
//
// NaN ranks below every number; a row made only of NaN reports column 0.
// Panics if blocks < 1 or row is shorter than blocks*4.
//
// Example:
//
//	row := []float32{1, 9, 3, 9, 2, 0, 9, 1}
//	v, idx := BaseTop1Blocks(row, 2)  // 9, 1
func BaseTop1Blocks[T hwy.TopKElem](row []T, blocks int) (T, int32) {
	n := blockLen(row, blocks)

	bestVals := hwy.Load4(row)
	bestIdxs := hwy.Iota4[int32]()
	curIdxs := bestIdxs
	step := hwy.Set4[int32](hwy.BlockLanes)

	for i := hwy.BlockLanes; i < n; i += hwy.BlockLanes {
		vals := hwy.Load4(row[i:])
		curIdxs = hwy.Add4(curIdxs, step)

		mask := hwy.GreaterThan4(vals, bestVals)
		if !mask.AnyTrue() {
			continue
		}
		bestVals = hwy.IfThenElse4(mask, vals, bestVals)
		bestIdxs = hwy.IfThenElse4(mask, curIdxs, bestIdxs)
	}

	vals, idxs := bestVals.Lanes(), bestIdxs.Lanes()
	return reduceLanes(vals[:], idxs[:])
}

// reduceLanes picks the best of per-lane winners, lower index on ties.
func reduceLanes[T hwy.TopKElem](vals []T, idxs []int32) (T, int32) {
	best, bestIdx := vals[0], idxs[0]
	for j := 1; j < len(vals); j++ {
		if ranksAbove(vals[j], idxs[j], best, bestIdx) {
			best, bestIdx = vals[j], idxs[j]
		}
	}
	return best, bestIdx
}

// scalarTop1Blocks is the scalar reference of BaseTop1Blocks.
func scalarTop1Blocks[T hwy.TopKElem](row []T, blocks int) (T, int32) {
	n := blockLen(row, blocks)

	best, bestIdx := row[0], int32(0)
	for i := 1; i < n; i++ {
		if greater(row[i], best) {
			best, bestIdx = row[i], int32(i)
		}
	}
	return best, bestIdx
}

// blockLen returns blocks*4 after checking that row holds that many
// elements.
func blockLen[T hwy.TopKElem](row []T, blocks int) int {
	if blocks < 1 {
		panic("vec: Top1Blocks called with no blocks")
	}
	n := blocks * hwy.BlockLanes
	_ = row[n-1]
	return n
}

// greater reports x > y with NaN ranked below every number.
func greater[T hwy.TopKElem](x, y T) bool {
	return x > y || (hwy.IsNaN(y) && !hwy.IsNaN(x))
}

// ranksAbove orders (value, index) pairs: larger value first, lower index
// among equal values. Two NaNs compare as equal values.
func ranksAbove[T hwy.TopKElem](v T, i int32, w T, j int32) bool {
	if greater(v, w) {
		return true
	}
	if greater(w, v) {
		return false
	}
	return i < j
}
