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

// Command topkbench runs the TopKV2 kernel on random data, checks the result
// against a sort-based reference and reports timings.
//
// Usage:
//
//	topkbench run --rows 4096 --cols 1000 -k 10
//	topkbench run -k 1 --dtype int32 --metrics     # k=1 fast path, dump counters
//	topkbench run --config topk.yaml --ordering smallest
//	topkbench info                                 # dispatch level
//
// Setting HWY_NO_SIMD forces the scalar block scan.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-topk/hwy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "topkbench",
		Short:         "Benchmark and verify row-wise Top-K selection",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every kernel invocation at debug level")

	logger := func() (*zap.Logger, error) { return newLogger(verbose) }
	root.AddCommand(newRunCmd(logger), newInfoCmd())
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

func newRunCmd(logger func() (*zap.Logger, error)) *cobra.Command {
	opts := defaultOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the kernel on random rows and check it against the reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger()
			if err != nil {
				return err
			}
			defer func() { _ = l.Sync() }()
			return run(opts, l, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ConfigPath, "config", "", "YAML kernel configuration")
	f.IntVar(&opts.Rows, "rows", opts.Rows, "number of rows")
	f.IntVar(&opts.Cols, "cols", opts.Cols, "row size")
	f.IntVarP(&opts.K, "k", "k", opts.K, "values to select per row")
	f.StringVar(&opts.Ordering, "ordering", "", "largest or smallest (overrides the config)")
	f.StringVar(&opts.DType, "dtype", opts.DType, "element type: float32 or int32")
	f.IntVar(&opts.Workers, "workers", 0, "worker pool size (overrides the config when > 0)")
	f.IntVar(&opts.Iterations, "iterations", opts.Iterations, "timed kernel executions")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	f.BoolVar(&opts.Metrics, "metrics", false, "print the collected Prometheus metrics")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the detected dispatch level",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "level=%s width=%d simd=%t\n", hwy.CurrentName(), hwy.CurrentWidth(), hwy.HasSIMD())
		},
	}
}
