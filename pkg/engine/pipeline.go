// Copyright Seqex Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package engine

import (
	"strings"

	"github.com/seqex/go-seqex/pkg/seq"
)

// Transform is one step of a rule's result-processing pipeline.  Steps are
// applied in declaration order to a running value seeded with the body
// result.  A step either produces the next value, or vetoes the match
// altogether (turning the rule call into a failure at its entry cursor).
type Transform interface {
	apply(value seq.Value, env *Environment) (seq.Value, bool)
}

// Constant replaces the value with a given constant.
func Constant(value seq.Value) Transform {
	return &constantStep{value}
}

// Lambda destructures the value and computes a replacement.  The value is
// wrapped in a one-element list if it is not already a list; its elements are
// passed as the argument slice.
func Lambda(fn func(args []seq.Value, env *Environment) seq.Value) Transform {
	return &lambdaStep{fn}
}

// Destructure is an alias for Lambda.
func Destructure(fn func(args []seq.Value, env *Environment) seq.Value) Transform {
	return Lambda(fn)
}

// Function calls a host function with the value's elements as positional
// arguments, using its result as the new value.
func Function(fn func(args ...seq.Value) seq.Value) Transform {
	return &functionStep{fn}
}

// Identity replaces the value with the null value whenever the given
// predicate rejects it.
func Identity(pred func(args []seq.Value, env *Environment) bool) Transform {
	return &identityStep{pred}
}

// Flatten deeply flattens the value into a single list.
func Flatten() Transform {
	return &flattenStep{}
}

// AsString flattens the value, then concatenates its elements into one
// string.
func AsString() Transform {
	return &stringStep{}
}

// AsVector flattens the value, then builds a numeric vector from its
// elements.  Characters contribute their code points and nulls are skipped;
// the presence of any other non-numeric element vetoes the match.
func AsVector() Transform {
	return &vectorStep{}
}

// Test destructures the value and applies a predicate; a rejected value
// vetoes the match.
func Test(pred func(args []seq.Value, env *Environment) bool) Transform {
	return &testStep{pred, false}
}

// TestNot destructures the value and applies a predicate; an accepted value
// vetoes the match.
func TestNot(pred func(args []seq.Value, env *Environment) bool) Transform {
	return &testStep{pred, true}
}

// Run a pipeline over the result of a rule body.  The boolean result is
// false when some step vetoed the match.
func runPipeline(steps []Transform, value seq.Value, env *Environment) (seq.Value, bool) {
	for _, step := range steps {
		var ok bool
		//
		if value, ok = step.apply(value, env); !ok {
			return nil, false
		}
	}
	//
	return value, true
}

// ===================================================================
// Steps
// ===================================================================

type constantStep struct {
	value seq.Value
}

func (p *constantStep) apply(_ seq.Value, _ *Environment) (seq.Value, bool) {
	return p.value, true
}

type lambdaStep struct {
	fn func([]seq.Value, *Environment) seq.Value
}

func (p *lambdaStep) apply(value seq.Value, env *Environment) (seq.Value, bool) {
	return p.fn(destructure(value), env), true
}

type functionStep struct {
	fn func(...seq.Value) seq.Value
}

func (p *functionStep) apply(value seq.Value, _ *Environment) (seq.Value, bool) {
	return p.fn(destructure(value)...), true
}

type identityStep struct {
	pred func([]seq.Value, *Environment) bool
}

func (p *identityStep) apply(value seq.Value, env *Environment) (seq.Value, bool) {
	if !p.pred(destructure(value), env) {
		return seq.NewNull(), true
	}
	//
	return value, true
}

type flattenStep struct{}

func (p *flattenStep) apply(value seq.Value, _ *Environment) (seq.Value, bool) {
	return seq.NewList(flatten(value, nil)), true
}

type stringStep struct{}

func (p *stringStep) apply(value seq.Value, _ *Environment) (seq.Value, bool) {
	var builder strings.Builder
	//
	for _, element := range flatten(value, nil) {
		switch v := element.(type) {
		case *seq.Char:
			builder.WriteRune(v.Rune())
		case *seq.Str:
			builder.WriteString(v.Text())
		case *seq.Null:
			// skipped
		default:
			builder.WriteString(v.String())
		}
	}
	//
	return seq.NewString(builder.String()), true
}

type vectorStep struct{}

func (p *vectorStep) apply(value seq.Value, _ *Environment) (seq.Value, bool) {
	var elements []float64
	//
	for _, element := range flatten(value, nil) {
		switch v := element.(type) {
		case *seq.Number:
			elements = append(elements, v.Float())
		case *seq.Char:
			elements = append(elements, float64(v.Rune()))
		case *seq.Null:
			// skipped
		default:
			// Not representable in a numeric vector.
			return nil, false
		}
	}
	//
	return seq.NewVector(elements), true
}

type testStep struct {
	pred func([]seq.Value, *Environment) bool
	// Whether acceptance (rather than rejection) vetoes the match.
	invert bool
}

func (p *testStep) apply(value seq.Value, env *Environment) (seq.Value, bool) {
	if p.pred(destructure(value), env) == p.invert {
		return nil, false
	}
	//
	return value, true
}

// ===================================================================
// Helpers
// ===================================================================

// Destructure a value into the argument slice passed to host functions,
// wrapping non-list values as a one-element list.
func destructure(value seq.Value) []seq.Value {
	if l := value.AsList(); l != nil {
		args := make([]seq.Value, l.Len())
		//
		for i := range args {
			args[i] = l.Get(i)
		}
		//
		return args
	}
	//
	return []seq.Value{value}
}

// Deeply flatten a value, appending every non-list leaf to the accumulator.
func flatten(value seq.Value, accumulator []seq.Value) []seq.Value {
	if l := value.AsList(); l != nil {
		for i := 0; i < l.Len(); i++ {
			accumulator = flatten(l.Get(i), accumulator)
		}
		//
		return accumulator
	}
	//
	return append(accumulator, value)
}
