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

// Package topk implements row-wise Top-K selection over row-major buffers.
//
// For every row of a numRows × rowSize buffer the kernels return the k
// best (value, column index) pairs, best first. Best means largest or
// smallest value depending on the Ordering; among equal values the lower
// column index always ranks first, so results are fully deterministic.
//
// # Algorithms
//
// The general path drives a bounded Container over each row: candidates are
// appended until k+1 have been seen, then the container becomes a binary
// heap whose root is the worst of the current best k, and every further
// column either replaces the root or is discarded. Memory per row is bounded
// by k+1 indices and each column costs O(log k).
//
// The k=1, Largest case skips the container: each row is split into blocks
// of 4 elements scanned by a vector primitive from hwy/contrib/vec, and the
// rowSize%4 trailing columns are folded in with a strictly-greater scalar
// comparison. Both paths produce identical results.
//
// # Parallelism
//
// Rows are independent. Both paths fan rows out over a workerpool.Pool; the
// general path keeps one Container per worker slot so no selection state is
// shared between goroutines.
//
// # Floating point
//
// NaN ranks after every number under both orderings; two NaNs compare as
// equal values and fall back to the index tie-break.
//
// # Example Usage
//
//	vals, idx, err := topk.TopK([]float32{5, 1, 4, 2, 8}, 5, 3, topk.Largest)
//	// vals = [8 5 4], idx = [4 0 2]
package topk
