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
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the operator configuration of a TopKV2 kernel.
type Config struct {
	// Largest selects the k largest values; false selects the k smallest.
	Largest bool `yaml:"largest"`

	// Workers sizes the kernel-owned worker pool. <= 0 uses GOMAXPROCS.
	// Ignored when a pool is supplied with WithPool.
	Workers int `yaml:"workers"`

	// ParallelGeneral spreads rows of the general path over the pool, with
	// one Container per worker. When false the general path runs rows
	// sequentially with a single Container.
	ParallelGeneral bool `yaml:"parallel_general"`

	// ParallelThreshold is the row count below which both paths run on
	// the calling goroutine.
	ParallelThreshold int `yaml:"parallel_threshold"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Largest:           true,
		Workers:           0,
		ParallelGeneral:   true,
		ParallelThreshold: 64,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel_threshold %d < 0", ErrInvalidConfig, c.ParallelThreshold)
	}
	return nil
}

// Ordering returns the Ordering selected by Largest.
func (c Config) Ordering() Ordering {
	return OrderingOf(c.Largest)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("topk: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("topk: read config: %w", err)
	}
	return ParseConfig(data)
}
