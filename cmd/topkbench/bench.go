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

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/ajroetker/go-topk/hwy"
	"github.com/ajroetker/go-topk/hwy/contrib/topk"
	"github.com/ajroetker/go-topk/tensor"
)

// options are the run command flags.
type options struct {
	ConfigPath string
	Rows       int
	Cols       int
	K          int
	Ordering   string
	DType      string
	Workers    int
	Iterations int
	Seed       int64
	Metrics    bool
}

func defaultOptions() options {
	return options{
		Rows:       1024,
		Cols:       512,
		K:          8,
		DType:      "float32",
		Iterations: 10,
		Seed:       1,
	}
}

var errMismatch = errors.New("topkbench: kernel output differs from reference")

// config resolves the kernel configuration from the file and flag overrides.
func (o options) config() (topk.Config, error) {
	cfg := topk.DefaultConfig()
	if o.ConfigPath != "" {
		var err error
		if cfg, err = topk.LoadConfig(o.ConfigPath); err != nil {
			return topk.Config{}, err
		}
	}
	if o.Ordering != "" {
		ord, err := topk.ParseOrdering(o.Ordering)
		if err != nil {
			return topk.Config{}, err
		}
		cfg.Largest = ord == topk.Largest
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	return cfg, nil
}

func run(o options, logger *zap.Logger, w io.Writer) error {
	if o.Rows < 0 || o.Cols < 0 || o.Iterations <= 0 {
		return errors.New("topkbench: rows and cols must be >= 0, iterations > 0")
	}
	cfg, err := o.config()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	kern, err := topk.NewKernel(cfg, topk.WithLogger(logger), topk.WithMetrics(topk.NewMetrics(reg)))
	if err != nil {
		return err
	}
	defer kern.Close()

	rng := rand.New(rand.NewSource(o.Seed))
	switch o.DType {
	case "float32":
		values := make([]float32, o.Rows*o.Cols)
		for i := range values {
			values[i] = rng.Float32()*2 - 1
		}
		err = bench(kern, o, cfg.Ordering(), values, tensor.FromFloat32, tensor.Float32, (*tensor.Tensor).Float32s, logger, w)
	case "int32":
		values := make([]int32, o.Rows*o.Cols)
		for i := range values {
			// A narrow range produces ties.
			values[i] = int32(rng.Intn(max(o.Cols/2, 2)))
		}
		err = bench(kern, o, cfg.Ordering(), values, tensor.FromInt32, tensor.Int32, (*tensor.Tensor).Int32s, logger, w)
	default:
		return fmt.Errorf("%w: %q", topk.ErrUnsupportedType, o.DType)
	}
	if err != nil {
		return err
	}

	if o.Metrics {
		return writeMetrics(reg, w)
	}
	return nil
}

func bench[T hwy.TopKElem](
	kern *topk.Kernel,
	o options,
	ord topk.Ordering,
	values []T,
	wrap func([]T, ...int) (*tensor.Tensor, error),
	dtype tensor.DType,
	view func(*tensor.Tensor) []T,
	logger *zap.Logger,
	w io.Writer,
) error {
	data, err := wrap(values, o.Rows, o.Cols)
	if err != nil {
		return err
	}
	outVals, err := tensor.New(dtype, o.Rows, o.K)
	if err != nil {
		return err
	}
	outIdx, err := tensor.New(tensor.Int32, o.Rows, o.K)
	if err != nil {
		return err
	}
	inputs := []*tensor.Tensor{data, tensor.ScalarInt32(int32(o.K))}
	outputs := []*tensor.Tensor{outVals, outIdx}

	var total, best time.Duration
	for i := range o.Iterations {
		start := time.Now()
		if err := kern.Execute(inputs, outputs); err != nil {
			return err
		}
		d := time.Since(start)
		total += d
		if i == 0 || d < best {
			best = d
		}
	}

	wantVals, wantIdx := reference(values, o.Cols, o.K, ord)
	if !slices.Equal(outIdx.Int32s(), wantIdx) || !slices.Equal(view(outVals), wantVals) {
		return errMismatch
	}
	logger.Info("verified",
		zap.Stringer("dtype", dtype),
		zap.Int("rows", o.Rows),
		zap.Int("cols", o.Cols),
		zap.Int("k", o.K),
		zap.Stringer("ordering", ord),
	)

	mean := total / time.Duration(o.Iterations)
	rowsPerSec := 0.0
	if mean > 0 {
		rowsPerSec = float64(o.Rows) / mean.Seconds()
	}
	fmt.Fprintf(w, "%s rows=%d cols=%d k=%d %s level=%s: mean %v, best %v, %.0f rows/s\n",
		dtype, o.Rows, o.Cols, o.K, ord, hwy.CurrentName(), mean, best, rowsPerSec)
	return nil
}

// reference selects each row's top k by stable-sorting the column indices.
// Random data holds no NaN, so plain comparison is a total order once ties
// are broken by the stable sort.
func reference[T hwy.TopKElem](values []T, rowSize, k int, ord topk.Ordering) ([]T, []int32) {
	if rowSize == 0 {
		return nil, nil
	}
	numRows := len(values) / rowSize
	outVals := make([]T, 0, numRows*k)
	outIdx := make([]int32, 0, numRows*k)
	order := make([]int32, rowSize)
	for r := range numRows {
		row := values[r*rowSize : (r+1)*rowSize]
		for i := range order {
			order[i] = int32(i)
		}
		slices.SortStableFunc(order, func(a, b int32) int {
			if ord == topk.Largest {
				return cmp.Compare(row[b], row[a])
			}
			return cmp.Compare(row[a], row[b])
		})
		for _, i := range order[:k] {
			outIdx = append(outIdx, i)
			outVals = append(outVals, row[i])
		}
	}
	return outVals, outIdx
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
