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

package hwy

// BlockLanes is the number of lanes in a Vec4 block. A block of 32-bit
// elements fills one 128-bit register.
const BlockLanes = 4

// Vec4 is a 4-lane block vector. Lanes hold elements of a row in memory
// order; lane i of Load4(s) is s[i].
type Vec4[T Lanes] struct {
	data [BlockLanes]T
}

// Mask4 is the lane-wise result of a Vec4 comparison.
type Mask4 struct {
	bits [BlockLanes]bool
}

// Lanes returns the lanes of v.
func (v Vec4[T]) Lanes() [BlockLanes]T {
	return v.data
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask4) AnyTrue() bool {
	return m.bits[0] || m.bits[1] || m.bits[2] || m.bits[3]
}

// Load4 loads the first 4 elements of s. It panics if len(s) < 4.
func Load4[T Lanes](s []T) Vec4[T] {
	_ = s[BlockLanes-1]
	return Vec4[T]{data: [BlockLanes]T{s[0], s[1], s[2], s[3]}}
}

// Set4 broadcasts x to all lanes.
func Set4[T Lanes](x T) Vec4[T] {
	return Vec4[T]{data: [BlockLanes]T{x, x, x, x}}
}

// Iota4 returns [0, 1, 2, 3].
func Iota4[T Lanes]() Vec4[T] {
	return Vec4[T]{data: [BlockLanes]T{0, 1, 2, 3}}
}

// Add4 returns the lane-wise sum a + b.
func Add4[T Lanes](a, b Vec4[T]) Vec4[T] {
	return Vec4[T]{data: [BlockLanes]T{
		a.data[0] + b.data[0],
		a.data[1] + b.data[1],
		a.data[2] + b.data[2],
		a.data[3] + b.data[3],
	}}
}

// GreaterThan4 returns a mask of the lanes where a ranks strictly above b.
//
// NaN ranks below every number: a NaN lane of a is never greater, and a
// number in a is greater than a NaN lane of b. Equal lanes are not greater.
func GreaterThan4[T Lanes](a, b Vec4[T]) Mask4 {
	var m Mask4
	for i := range BlockLanes {
		x, y := a.data[i], b.data[i]
		m.bits[i] = x > y || (y != y && x == x)
	}
	return m
}

// IfThenElse4 selects lanes from yes where the mask is set and from no
// elsewhere.
func IfThenElse4[T Lanes](m Mask4, yes, no Vec4[T]) Vec4[T] {
	return Vec4[T]{data: [BlockLanes]T{
		pick(m.bits[0], yes.data[0], no.data[0]),
		pick(m.bits[1], yes.data[1], no.data[1]),
		pick(m.bits[2], yes.data[2], no.data[2]),
		pick(m.bits[3], yes.data[3], no.data[3]),
	}}
}

func pick[T Lanes](c bool, yes, no T) T {
	if c {
		return yes
	}
	return no
}
