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

// Package vec provides whole-slice reductions built on the hwy block
// primitives, selected at init for the detected dispatch level.
package vec

import "github.com/ajroetker/go-topk/hwy"

// Top1BlocksFloat32 is the block-reduction primitive for float32 rows:
// it returns the best (value, index) over the first blocks*4 elements of
// row, largest value first and lowest index among equal values.
//
// Bound at init by Redispatch: the AVX2 kernel on AVX2 and AVX-512 CPUs in
// GOEXPERIMENT=simd builds, the portable 4-lane BaseTop1Blocks on other
// SIMD levels, and the scalar reference when SIMD is off (HWY_NO_SIMD).
var Top1BlocksFloat32 func(row []float32, blocks int) (float32, int32)

// Top1BlocksInt32 is the int32 counterpart of Top1BlocksFloat32.
var Top1BlocksInt32 func(row []int32, blocks int) (int32, int32)

func init() {
	Redispatch()
}

// Redispatch re-binds the Top1Blocks function variables to the current
// hwy dispatch level. Call it after hwy.SetLevel.
func Redispatch() {
	level := hwy.CurrentLevel()
	switch {
	case !hwy.HasSIMD():
		Top1BlocksFloat32 = scalarTop1Blocks[float32]
		Top1BlocksInt32 = scalarTop1Blocks[int32]
	case hasTop1AVX2 && (level == hwy.DispatchAVX2 || level == hwy.DispatchAVX512):
		Top1BlocksFloat32 = top1BlocksAVX2Float32
		Top1BlocksInt32 = top1BlocksAVX2Int32
	default:
		Top1BlocksFloat32 = BaseTop1Blocks[float32]
		Top1BlocksInt32 = BaseTop1Blocks[int32]
	}
}
