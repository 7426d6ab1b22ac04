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

// Package tensor provides the minimal host-buffer abstraction the kernels
// consume: a dtype, a row-major shape and one typed Go slice holding the
// elements.
//
// Tensors never copy the slices they are built from; a kernel writing into
// an output tensor writes into the caller's slice.
package tensor

import (
	"errors"
	"fmt"
)

// DType identifies the element type of a Tensor.
type DType uint8

const (
	// Invalid is the zero DType.
	Invalid DType = iota
	Float32
	Float64
	Int32
	Int64
	Uint8
)

// String returns the lower-case name of the dtype.
func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	default:
		return "invalid"
	}
}

// Size returns the size in bytes of one element, or 0 for Invalid.
func (d DType) Size() int {
	switch d {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	default:
		return 0
	}
}

var (
	// ErrShapeMismatch is returned when a shape does not describe the data.
	ErrShapeMismatch = errors.New("tensor: shape does not match data length")

	// ErrInvalidShape is returned for negative dimensions.
	ErrInvalidShape = errors.New("tensor: invalid shape")

	// ErrInvalidDType is returned when allocating an Invalid dtype.
	ErrInvalidDType = errors.New("tensor: invalid dtype")
)

// Tensor is a row-major host buffer.
type Tensor struct {
	dtype DType
	shape []int
	data  any
}

// New allocates a zeroed tensor of the given dtype and shape.
func New(dtype DType, shape ...int) (*Tensor, error) {
	n, err := numElements(shape)
	if err != nil {
		return nil, err
	}
	var data any
	switch dtype {
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case Int32:
		data = make([]int32, n)
	case Int64:
		data = make([]int64, n)
	case Uint8:
		data = make([]uint8, n)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidDType, dtype)
	}
	return &Tensor{dtype: dtype, shape: clone(shape), data: data}, nil
}

// FromFloat32 wraps data as a float32 tensor of the given shape.
func FromFloat32(data []float32, shape ...int) (*Tensor, error) {
	return wrap(Float32, data, len(data), shape)
}

// FromFloat64 wraps data as a float64 tensor of the given shape.
func FromFloat64(data []float64, shape ...int) (*Tensor, error) {
	return wrap(Float64, data, len(data), shape)
}

// FromInt32 wraps data as an int32 tensor of the given shape.
func FromInt32(data []int32, shape ...int) (*Tensor, error) {
	return wrap(Int32, data, len(data), shape)
}

// FromInt64 wraps data as an int64 tensor of the given shape.
func FromInt64(data []int64, shape ...int) (*Tensor, error) {
	return wrap(Int64, data, len(data), shape)
}

// ScalarInt32 returns a rank-0 int32 tensor holding v.
func ScalarInt32(v int32) *Tensor {
	return &Tensor{dtype: Int32, data: []int32{v}}
}

// Must panics if err is non-nil and returns t otherwise.
func Must(t *Tensor, err error) *Tensor {
	if err != nil {
		panic(err)
	}
	return t
}

func wrap(dtype DType, data any, length int, shape []int) (*Tensor, error) {
	n, err := numElements(shape)
	if err != nil {
		return nil, err
	}
	if n != length {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, data has %d", ErrShapeMismatch, shape, n, length)
	}
	return &Tensor{dtype: dtype, shape: clone(shape), data: data}, nil
}

func numElements(shape []int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidShape, shape)
		}
		n *= d
	}
	return n, nil
}

func clone(shape []int) []int {
	if len(shape) == 0 {
		return nil
	}
	return append([]int(nil), shape...)
}

// DType returns the element type.
func (t *Tensor) DType() DType { return t.dtype }

// Shape returns a copy of the dimensions.
func (t *Tensor) Shape() []int { return clone(t.shape) }

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int { return len(t.shape) }

// Dim returns dimension i. Negative i counts from the last dimension.
func (t *Tensor) Dim(i int) int {
	if i < 0 {
		i += len(t.shape)
	}
	return t.shape[i]
}

// ElementSize returns the number of elements.
func (t *Tensor) ElementSize() int {
	n, _ := numElements(t.shape)
	return n
}

// Float32s returns the backing slice of a Float32 tensor, or nil.
func (t *Tensor) Float32s() []float32 {
	s, _ := t.data.([]float32)
	return s
}

// Float64s returns the backing slice of a Float64 tensor, or nil.
func (t *Tensor) Float64s() []float64 {
	s, _ := t.data.([]float64)
	return s
}

// Int32s returns the backing slice of an Int32 tensor, or nil.
func (t *Tensor) Int32s() []int32 {
	s, _ := t.data.([]int32)
	return s
}

// Int64s returns the backing slice of an Int64 tensor, or nil.
func (t *Tensor) Int64s() []int64 {
	s, _ := t.data.([]int64)
	return s
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("tensor(%s%v)", t.dtype, t.shape)
}
