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
	"github.com/ajroetker/go-topk/hwy/contrib/sort"
)

// Container is the bounded selection container: it tracks the best k
// columns seen so far of the row it is bound to.
//
// The candidate buffer holds at most k+1 indices. The first k+1 offers are
// appended; on the (k+1)-th the buffer becomes a heap under the comparator,
// whose root is the worst of the kept candidates, and that worst candidate
// is moved to the overflow slot at position k. From then on buf[:k] is a
// heap of the best k and the overflow slot holds the last evicted index.
//
// A Container is not safe for concurrent use. It borrows the bound row and
// never writes to it.
type Container[T hwy.TopKElem] struct {
	k    int
	ord  Ordering
	cmp  func(row []T, a, b int32) bool
	less func(a, b int32) bool
	row  []T
	buf  []int32
}

// NewContainer returns a container selecting k columns under ord. rowSize
// only sizes the candidate buffer. Panics if k <= 0.
func NewContainer[T hwy.TopKElem](k, rowSize int, ord Ordering) *Container[T] {
	if k <= 0 {
		panic("topk: NewContainer called with k <= 0")
	}
	c := &Container[T]{
		k:   k,
		ord: ord,
		cmp: comparator[T](ord),
		buf: make([]int32, 0, min(k, max(rowSize, 1))+1),
	}
	c.less = c.ranksBefore
	return c
}

// ranksBefore compares two candidates of the bound row.
func (c *Container[T]) ranksBefore(a, b int32) bool {
	return c.cmp(c.row, a, b)
}

// K returns the number of columns the container selects.
func (c *Container[T]) K() int { return c.k }

// Ordering returns the container's ordering.
func (c *Container[T]) Ordering() Ordering { return c.ord }

// Len returns the number of candidate indices currently held.
func (c *Container[T]) Len() int { return len(c.buf) }

// Bind attaches the container to row and drops all previous candidates.
// row must stay alive and unchanged until the next Bind.
func (c *Container[T]) Bind(row []T) {
	c.row = row
	c.buf = c.buf[:0]
}

// Offer considers column index of the bound row. Each column must be
// offered at most once per Bind.
func (c *Container[T]) Offer(index int32) {
	if len(c.buf) <= c.k {
		c.buf = append(c.buf, index)
		if len(c.buf) == c.k+1 {
			sort.HeapifyFunc(c.buf, c.less)
			c.buf[0], c.buf[c.k] = c.buf[c.k], c.buf[0]
			sort.SiftDownFunc(c.buf, 0, c.k, c.less)
		}
		return
	}

	if c.less(index, c.buf[0]) {
		c.buf[c.k] = c.buf[0]
		c.buf[0] = index
		sort.SiftDownFunc(c.buf, 0, c.k, c.less)
	}
}

// ExtractSorted returns the selected indices, best first: every offered
// index when at most k were offered, otherwise exactly k.
//
// The result aliases the container's buffer and is valid until the next
// Bind. Offering again before Bind is not supported.
func (c *Container[T]) ExtractSorted() []int32 {
	if len(c.buf) <= c.k {
		sort.HeapSortFunc(c.buf, c.less)
		return c.buf
	}
	sort.SortHeapFunc(c.buf[:c.k], c.less)
	c.buf = c.buf[:c.k]
	return c.buf
}
