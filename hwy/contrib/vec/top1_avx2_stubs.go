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

//go:build !amd64 || !goexperiment.simd

package vec

// Stub implementations for non-AMD64 or non-SIMD builds. Redispatch never
// binds them because hasTop1AVX2 is false.

const hasTop1AVX2 = false

func top1BlocksAVX2Float32(row []float32, blocks int) (float32, int32) {
	panic("vec: AVX2 Top1Blocks not available")
}

func top1BlocksAVX2Int32(row []int32, blocks int) (int32, int32) {
	panic("vec: AVX2 Top1Blocks not available")
}
