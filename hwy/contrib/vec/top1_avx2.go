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

//go:build amd64 && goexperiment.simd

package vec

import (
	"math"
	"simd/archsimd"
)

// AVX2 Top1Blocks: two 4-lane blocks per Int32x8 step.
//
// Float32 lanes are mapped to int32 order keys so one signed compare covers
// every case: -0 is folded into +0, negative bit patterns have their
// magnitude bits flipped, and NaN lanes take math.MinInt32 so they rank
// below -Inf. A lane takes a new winner only on a strictly greater key, and
// a lane sees its columns in increasing order, so it keeps the lowest index
// of its maximum. An odd trailing block is folded in after the cross-lane
// reduction.

const hasTop1AVX2 = true

const top1AVX2Lanes = 8

var top1Iota = [top1AVX2Lanes]int32{0, 1, 2, 3, 4, 5, 6, 7}

func top1BlocksAVX2Float32(row []float32, blocks int) (float32, int32) {
	n := blockLen(row, blocks)
	if n < top1AVX2Lanes {
		return BaseTop1Blocks(row, blocks)
	}

	zero := archsimd.BroadcastFloat32x8(0)
	mag := archsimd.BroadcastInt32x8(math.MaxInt32)
	nanKey := archsimd.BroadcastInt32x8(math.MinInt32)
	step := archsimd.BroadcastInt32x8(top1AVX2Lanes)

	x := archsimd.LoadFloat32x8Slice(row).Add(zero)
	bits := x.AsInt32x8()
	bestKeys := bits.Xor(bits.ShiftAllRight(31).And(mag)).Merge(nanKey, x.Equal(x))
	idx := archsimd.LoadInt32x8Slice(top1Iota[:])
	bestIdx := idx

	i := top1AVX2Lanes
	for ; i+top1AVX2Lanes <= n; i += top1AVX2Lanes {
		x = archsimd.LoadFloat32x8Slice(row[i:]).Add(zero)
		bits = x.AsInt32x8()
		keys := bits.Xor(bits.ShiftAllRight(31).And(mag)).Merge(nanKey, x.Equal(x))
		idx = idx.Add(step)

		better := keys.Greater(bestKeys)
		bestKeys = keys.Merge(bestKeys, better)
		bestIdx = idx.Merge(bestIdx, better)
	}

	key, at := reduceKeys(bestKeys, bestIdx)
	for ; i < n; i++ {
		if k := float32Key(row[i]); k > key {
			key, at = k, int32(i)
		}
	}
	return row[at], at
}

func top1BlocksAVX2Int32(row []int32, blocks int) (int32, int32) {
	n := blockLen(row, blocks)
	if n < top1AVX2Lanes {
		return BaseTop1Blocks(row, blocks)
	}

	step := archsimd.BroadcastInt32x8(top1AVX2Lanes)
	bestVals := archsimd.LoadInt32x8Slice(row)
	idx := archsimd.LoadInt32x8Slice(top1Iota[:])
	bestIdx := idx

	i := top1AVX2Lanes
	for ; i+top1AVX2Lanes <= n; i += top1AVX2Lanes {
		vals := archsimd.LoadInt32x8Slice(row[i:])
		idx = idx.Add(step)

		better := vals.Greater(bestVals)
		bestVals = vals.Merge(bestVals, better)
		bestIdx = idx.Merge(bestIdx, better)
	}

	best, at := reduceKeys(bestVals, bestIdx)
	for ; i < n; i++ {
		if row[i] > best {
			best, at = row[i], int32(i)
		}
	}
	return best, at
}

// reduceKeys returns the largest lane key and its index, lower index on
// ties.
func reduceKeys(keys, idxs archsimd.Int32x8) (int32, int32) {
	var k, at [top1AVX2Lanes]int32
	keys.StoreSlice(k[:])
	idxs.StoreSlice(at[:])

	key, idx := k[0], at[0]
	for j := 1; j < top1AVX2Lanes; j++ {
		if k[j] > key || (k[j] == key && at[j] < idx) {
			key, idx = k[j], at[j]
		}
	}
	return key, idx
}

// float32Key is the scalar form of the lane order key.
func float32Key(v float32) int32 {
	if v != v {
		return math.MinInt32
	}
	b := int32(math.Float32bits(v + 0))
	return b ^ ((b >> 31) & math.MaxInt32)
}
