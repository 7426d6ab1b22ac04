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
	"math"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ajroetker/go-topk/hwy"
	"github.com/ajroetker/go-topk/hwy/contrib/workerpool"
	"github.com/ajroetker/go-topk/kernels"
	"github.com/ajroetker/go-topk/tensor"
)

func init() {
	kernels.Register(kernels.OpTopKV2, kernels.CreatorFunc(createKernel))
}

// sharedPool serves kernels created through the opcode registry, which have
// no Close hook.
var sharedPool = sync.OnceValue(func() *workerpool.Pool {
	return workerpool.New(0)
})

func createKernel(op *kernels.Op) (kernels.Execution, error) {
	largest, err := op.BoolAttr("largest", true)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Largest = largest
	return NewKernel(cfg, WithPool(sharedPool()))
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the kernel logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}

// WithPool runs the kernel on an existing pool instead of creating one.
// The kernel does not close a pool it does not own.
func WithPool(p *workerpool.Pool) Option {
	return func(k *Kernel) {
		k.pool = p
	}
}

// WithMetrics records executions into m.
func WithMetrics(m *Metrics) Option {
	return func(k *Kernel) {
		k.metrics = m
	}
}

// Kernel is the TopKV2 operator: inputs [data, k], outputs [values, indices].
//
// data is a float32 or int32 tensor whose last dimension is the row; k is
// an int32 tensor whose first element is the number of columns to select.
// values has data's dtype and indices is int32, both shaped like data with
// the last dimension replaced by k.
//
// A Kernel may be executed from several goroutines at once.
type Kernel struct {
	cfg      Config
	ord      Ordering
	pool     *workerpool.Pool
	ownsPool bool
	logger   *zap.Logger
	metrics  *Metrics
}

var _ kernels.Execution = (*Kernel)(nil)

// NewKernel validates cfg and builds a kernel. Unless WithPool is given the
// kernel owns a pool of cfg.Workers workers, released by Close.
func NewKernel(cfg Config, opts ...Option) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	k := &Kernel{
		cfg:    cfg,
		ord:    cfg.Ordering(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.pool == nil {
		k.pool = workerpool.New(cfg.Workers)
		k.ownsPool = true
	}
	return k, nil
}

// Ordering returns the kernel's ordering.
func (k *Kernel) Ordering() Ordering { return k.ord }

// Close releases the kernel-owned worker pool. Executions already running
// complete; later ones run on the calling goroutine.
func (k *Kernel) Close() {
	if k.ownsPool {
		k.pool.Close()
	}
}

// Execute selects the top k of every row of inputs[0] into outputs[0]
// (values) and outputs[1] (indices).
//
// Errors wrap ErrBadInput, ErrEmptyInput, ErrInvalidK or ErrUnsupportedType;
// outputs are left untouched on error. Rows longer than math.MaxInt32 are
// rejected with ErrBadInput since indices are int32.
func (k *Kernel) Execute(inputs, outputs []*tensor.Tensor) error {
	start := time.Now()
	inv, err := k.prepare(inputs, outputs)
	if err != nil {
		k.metrics.observeError(err)
		k.logger.Warn("topk: rejected invocation", zap.Error(err))
		return err
	}

	path := pathGeneral
	if inv.k == 1 && k.ord == Largest {
		path = pathTop1
	}
	k.logger.Debug("topk: execute",
		zap.String("path", path),
		zap.Stringer("dtype", inv.dtype),
		zap.Int("rows", inv.numRows),
		zap.Int("row_size", inv.rowSize),
		zap.Int("k", inv.k),
		zap.Stringer("ordering", k.ord),
		zap.String("simd", hwy.CurrentName()),
	)

	switch inv.dtype {
	case tensor.Float32:
		run(k, path, inv, inputs[0].Float32s(), outputs[1].Int32s(), outputs[0].Float32s())
	case tensor.Int32:
		run(k, path, inv, inputs[0].Int32s(), outputs[1].Int32s(), outputs[0].Int32s())
	}

	k.metrics.observe(path, inv.dtype.String(), inv.numRows, time.Since(start))
	return nil
}

// invocation is a validated Execute call.
type invocation struct {
	dtype   tensor.DType
	rowSize int
	numRows int
	k       int
}

func (k *Kernel) prepare(inputs, outputs []*tensor.Tensor) (invocation, error) {
	if len(inputs) != 2 || len(outputs) != 2 {
		return invocation{}, fmt.Errorf("%w: want 2 inputs and 2 outputs, got %d and %d", ErrBadInput, len(inputs), len(outputs))
	}
	for _, t := range append(slices.Clip(inputs), outputs...) {
		if t == nil {
			return invocation{}, fmt.Errorf("%w: nil tensor", ErrBadInput)
		}
	}

	in, kt := inputs[0], inputs[1]
	kv := kt.Int32s()
	if len(kv) == 0 {
		return invocation{}, fmt.Errorf("%w: k must be a non-empty int32 tensor, got %s", ErrBadInput, kt)
	}
	if in.Rank() == 0 {
		return invocation{}, fmt.Errorf("%w: data must have at least one dimension", ErrBadInput)
	}

	inv := invocation{dtype: in.DType(), rowSize: in.Dim(-1), k: int(kv[0])}
	if inv.dtype != tensor.Float32 && inv.dtype != tensor.Int32 {
		return invocation{}, &UnsupportedTypeError{DType: inv.dtype}
	}
	if inv.rowSize == 0 {
		return invocation{}, ErrEmptyInput
	}
	if inv.rowSize > math.MaxInt32 {
		return invocation{}, fmt.Errorf("%w: row size %d overflows int32 indices", ErrBadInput, inv.rowSize)
	}
	if inv.k <= 0 || inv.k > inv.rowSize {
		return invocation{}, &InvalidKError{K: inv.k, RowSize: inv.rowSize}
	}
	inv.numRows = in.ElementSize() / inv.rowSize

	want := in.Shape()
	want[len(want)-1] = inv.k
	values, indices := outputs[0], outputs[1]
	if values.DType() != inv.dtype || !slices.Equal(values.Shape(), want) {
		return invocation{}, fmt.Errorf("%w: values output %s, want %s%v", ErrBadInput, values, inv.dtype, want)
	}
	if indices.DType() != tensor.Int32 || !slices.Equal(indices.Shape(), want) {
		return invocation{}, fmt.Errorf("%w: indices output %s, want int32%v", ErrBadInput, indices, want)
	}
	return inv, nil
}

// run dispatches a validated invocation to the fast or general path.
func run[T hwy.TopKElem](k *Kernel, path string, inv invocation, values []T, outIdx []int32, outVals []T) {
	pool := k.pool
	if inv.numRows < k.cfg.ParallelThreshold {
		pool = nil
	}

	if path == pathTop1 {
		Top1Rows(pool, values, inv.rowSize, inv.numRows, outIdx, outVals)
		return
	}
	if k.cfg.ParallelGeneral {
		FindTopKParallel(pool, values, inv.rowSize, inv.numRows, inv.k, k.ord, outIdx, outVals)
		return
	}
	FindTopK(values, inv.rowSize, inv.numRows, inv.k, k.ord, outIdx, outVals)
}

// TopK selects the top k of every row of a row-major slice on the calling
// goroutine. It returns numRows*k values and indices, row-aligned.
func TopK[T hwy.TopKElem](values []T, rowSize, k int, ord Ordering) ([]T, []int32, error) {
	if rowSize <= 0 {
		return nil, nil, ErrEmptyInput
	}
	if rowSize > math.MaxInt32 {
		return nil, nil, fmt.Errorf("%w: row size %d overflows int32 indices", ErrBadInput, rowSize)
	}
	if len(values)%rowSize != 0 {
		return nil, nil, fmt.Errorf("%w: %d values are not a whole number of %d-element rows", ErrBadInput, len(values), rowSize)
	}
	if k <= 0 || k > rowSize {
		return nil, nil, &InvalidKError{K: k, RowSize: rowSize}
	}

	numRows := len(values) / rowSize
	outVals := make([]T, numRows*k)
	outIdx := make([]int32, numRows*k)
	if k == 1 && ord == Largest {
		Top1Rows(nil, values, rowSize, numRows, outIdx, outVals)
	} else {
		FindTopK(values, rowSize, numRows, k, ord, outIdx, outVals)
	}
	return outVals, outIdx, nil
}
