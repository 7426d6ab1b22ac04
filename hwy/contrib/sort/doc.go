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

// Package sort provides heap primitives over int32 candidate indices.
//
// The element values live outside the heap; callers order indices with a
// comparator closure, which lets one heap implementation serve every
// element type and ordering. The Top-K container uses these to keep its
// bounded candidate set and to emit the final ranking.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-topk/hwy/contrib/sort"
//
//	row := []float32{5, 1, 4}
//	idx := []int32{0, 1, 2}
//	sort.HeapSortFunc(idx, func(a, b int32) bool { return row[a] > row[b] })
//	// idx is now [0 2 1]
package sort
