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
	"fmt"
	"strings"

	"github.com/ajroetker/go-topk/hwy"
)

// Ordering selects which end of the value range a Top-K keeps.
type Ordering uint8

const (
	// Largest keeps the k largest values, in non-increasing order.
	Largest Ordering = iota
	// Smallest keeps the k smallest values, in non-decreasing order.
	Smallest
)

// String returns "largest" or "smallest".
func (o Ordering) String() string {
	switch o {
	case Largest:
		return "largest"
	case Smallest:
		return "smallest"
	default:
		return fmt.Sprintf("Ordering(%d)", uint8(o))
	}
}

// ParseOrdering parses "largest" or "smallest", case-insensitively.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "largest", "max":
		return Largest, nil
	case "smallest", "min":
		return Smallest, nil
	}
	return Largest, fmt.Errorf("topk: unknown ordering %q", s)
}

// OrderingOf maps the operator's "largest" flag to an Ordering.
func OrderingOf(largest bool) Ordering {
	if largest {
		return Largest
	}
	return Smallest
}

// Less reports whether column a ranks before column b of row under ord.
//
// Largest: row[a] > row[b], or equal values and a < b.
// Smallest: row[a] < row[b], or equal values and a < b.
//
// It is a strict total order over distinct indices, NaN included.
func Less[T hwy.TopKElem](row []T, ord Ordering, a, b int32) bool {
	if ord == Smallest {
		return lessSmallest(row, a, b)
	}
	return lessLargest(row, a, b)
}

// comparator returns the Less variant for ord.
func comparator[T hwy.TopKElem](ord Ordering) func(row []T, a, b int32) bool {
	if ord == Smallest {
		return lessSmallest[T]
	}
	return lessLargest[T]
}

func lessLargest[T hwy.TopKElem](row []T, a, b int32) bool {
	va, vb := row[a], row[b]
	if va > vb {
		return true
	}
	if va < vb {
		return false
	}
	return tieBreak(va, vb, a, b)
}

func lessSmallest[T hwy.TopKElem](row []T, a, b int32) bool {
	va, vb := row[a], row[b]
	if va < vb {
		return true
	}
	if va > vb {
		return false
	}
	return tieBreak(va, vb, a, b)
}

// tieBreak orders values that are neither < nor >: equal numbers, or at
// least one NaN. A number beats a NaN; otherwise the lower index wins.
func tieBreak[T hwy.TopKElem](va, vb T, a, b int32) bool {
	if na, nb := hwy.IsNaN(va), hwy.IsNaN(vb); na != nb {
		return nb
	}
	return a < b
}
