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

package sort

// Heaps over int32 candidate indices ordered by a caller comparator.
//
// less(a, b) reports that a ranks before b. The heaps are max-heaps under
// less: the root is the element ranked last, and SortHeapFunc leaves the
// slice in ascending less order (best first). less must be a strict total
// order for the results to be deterministic.

// HeapifyFunc arranges h into a max-heap under less.
func HeapifyFunc(h []int32, less func(a, b int32) bool) {
	n := len(h)
	for i := n/2 - 1; i >= 0; i-- {
		SiftDownFunc(h, i, n, less)
	}
}

// SiftDownFunc moves h[i] down the heap h[:n] until the heap invariant is
// restored.
func SiftDownFunc(h []int32, i, n int, less func(a, b int32) bool) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && less(h[largest], h[left]) {
			largest = left
		}
		if right < n && less(h[largest], h[right]) {
			largest = right
		}

		if largest == i {
			break
		}

		h[i], h[largest] = h[largest], h[i]
		i = largest
	}
}

// SortHeapFunc sorts a heap built by HeapifyFunc in ascending less order.
func SortHeapFunc(h []int32, less func(a, b int32) bool) {
	for i := len(h) - 1; i > 0; i-- {
		h[0], h[i] = h[i], h[0]
		SiftDownFunc(h, 0, i, less)
	}
}

// HeapSortFunc sorts h in ascending less order in O(n log n) without
// allocating.
func HeapSortFunc(h []int32, less func(a, b int32) bool) {
	if len(h) <= 1 {
		return
	}
	HeapifyFunc(h, less)
	SortHeapFunc(h, less)
}

// IsHeapFunc reports whether h is a max-heap under less.
func IsHeapFunc(h []int32, less func(a, b int32) bool) bool {
	for i := 1; i < len(h); i++ {
		if less(h[(i-1)/2], h[i]) {
			return false
		}
	}
	return true
}
