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
	"errors"
	"fmt"

	"github.com/ajroetker/go-topk/tensor"
)

var (
	// ErrUnsupportedType is returned for element types other than float32
	// and int32. The concrete error is *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("topk: unsupported element type")

	// ErrInvalidK is returned when k is outside [1, rowSize]. The concrete
	// error is *InvalidKError.
	ErrInvalidK = errors.New("topk: invalid k")

	// ErrBadInput is returned for malformed kernel inputs or outputs: wrong
	// tensor count, a missing k scalar, or output tensors of the wrong dtype
	// or shape.
	ErrBadInput = errors.New("topk: malformed inputs or outputs")

	// ErrEmptyInput is returned when the input rows have no columns.
	ErrEmptyInput = errors.New("topk: empty rows")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("topk: invalid config")
)

// UnsupportedTypeError reports an input dtype the kernel cannot select on.
type UnsupportedTypeError struct {
	DType tensor.DType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("topk: unsupported element type %s (want float32 or int32)", e.DType)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// InvalidKError reports a k outside [1, RowSize].
type InvalidKError struct {
	K       int
	RowSize int
}

func (e *InvalidKError) Error() string {
	return fmt.Sprintf("topk: invalid k %d for rows of %d elements", e.K, e.RowSize)
}

func (e *InvalidKError) Unwrap() error { return ErrInvalidK }

// errorKind labels err for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrInvalidK):
		return "invalid_k"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrBadInput):
		return "bad_input"
	default:
		return "other"
	}
}
