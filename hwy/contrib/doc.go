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

// Package contrib holds the routines built on the hwy substrate.
//
// # Subpackages
//
//   - vec: block reductions such as the k=1 arg-max scan
//   - sort: index heaps ordered by a comparator
//   - topk: row-wise Top-K selection and the TopKV2 kernel
//   - workerpool: a persistent pool for row-parallel work
package contrib
