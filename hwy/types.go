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

// Package hwy provides the portable vector substrate used by the Top-K
// kernels: runtime CPU dispatch and fixed-width 4-lane block vectors.
//
// Kernels are written once against the Vec4 operations and a scalar
// reference. The dispatch level detected at init decides which of the two a
// contrib package binds its exported function variables to.
//
//	import "github.com/ajroetker/go-topk/hwy"
//
//	best := hwy.Load4(row)
//	idx := hwy.Iota4[float32]()
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// Lanes is a constraint for all types that can be stored in block lanes.
type Lanes interface {
	Floats | SignedInts
}

// TopKElem is the set of element types accepted by the Top-K kernels.
type TopKElem interface {
	~float32 | ~int32
}

// IsNaN reports whether x is a floating-point NaN. It is always false for
// integer lane types.
func IsNaN[T Lanes](x T) bool {
	return x != x
}
