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

// Package kernels maps operator opcodes to kernel factories.
//
// A kernel package registers a Creator for its opcode from init; the
// dispatch layer looks the opcode up, creates an Execution for the operator
// configuration and runs it on typed tensors. Failures are returned to the
// dispatcher, never raised as process aborts.
package kernels

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ajroetker/go-topk/tensor"
)

// OpCode identifies an operator.
type OpCode uint8

// Operator codes.
const (
	OpNoop   OpCode = 0x00
	OpTopKV2 OpCode = 0x30
)

// String returns the operator name.
func (c OpCode) String() string {
	switch c {
	case OpNoop:
		return "Noop"
	case OpTopKV2:
		return "TopKV2"
	default:
		return fmt.Sprintf("OpCode(0x%02x)", uint8(c))
	}
}

// ErrUnknownOp is returned by Create for an opcode with no registered Creator.
var ErrUnknownOp = errors.New("kernels: unknown opcode")

// Op is the operator configuration handed to a Creator.
type Op struct {
	Code  OpCode
	Name  string
	Attrs map[string]any
}

// BoolAttr returns the boolean attribute name, or def when it is absent.
// A present attribute of another type is an error.
func (op *Op) BoolAttr(name string, def bool) (bool, error) {
	v, ok := op.Attrs[name]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, fmt.Errorf("kernels: %s attribute %q: want bool, got %T", op.Code, name, v)
	}
	return b, nil
}

// Execution runs one instantiated kernel.
type Execution interface {
	Execute(inputs, outputs []*tensor.Tensor) error
}

// Creator instantiates an Execution for an operator configuration.
type Creator interface {
	Create(op *Op) (Execution, error)
}

// CreatorFunc adapts a function to the Creator interface.
type CreatorFunc func(op *Op) (Execution, error)

// Create implements Creator.
func (f CreatorFunc) Create(op *Op) (Execution, error) { return f(op) }

var (
	catalogMu sync.RWMutex
	catalog   [256]Creator
)

// Register installs the Creator for code. Registering the same opcode twice
// panics.
func Register(code OpCode, c Creator) {
	if c == nil {
		panic("kernels: Register with nil Creator")
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if catalog[code] != nil {
		panic(fmt.Sprintf("kernels: %s registered twice", code))
	}
	catalog[code] = c
}

// Lookup returns the Creator registered for code.
func Lookup(code OpCode) (Creator, bool) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	c := catalog[code]
	return c, c != nil
}

// Create instantiates the kernel registered for op.Code.
func Create(op *Op) (Execution, error) {
	c, ok := Lookup(op.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOp, op.Code)
	}
	return c.Create(op)
}

// unregister removes a Creator; tests only.
func unregister(code OpCode) {
	catalogMu.Lock()
	catalog[code] = nil
	catalogMu.Unlock()
}
