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
	"testing"

	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/seq"
)

// Body (and 'a 'b), which yields (a b) against the input below.
func pipelineRule(steps ...Transform) *RuleSet {
	rules := NewRuleSet()
	body := rex.NewSequence(
		rex.NewLiteral(seq.NewSymbol("a")),
		rex.NewLiteral(seq.NewSymbol("b")),
	)
	rules.Define("r", nil, body, RuleOptions{Pipeline: steps})
	//
	return rules
}

func pipelineInput() seq.Value {
	return seq.NewList([]seq.Value{seq.NewSymbol("a"), seq.NewSymbol("b")})
}

func runRule(t *testing.T, rules *RuleSet) (seq.Value, bool) {
	t.Helper()
	//
	value, ok, err := rules.Parse(rex.NewRef("r"), pipelineInput(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return value, ok
}

func TestPipeline_Constant(t *testing.T) {
	rules := pipelineRule(Constant(seq.NewSymbol("done")))
	//
	value, ok := runRule(t, rules)
	if !ok || value.String() != "done" {
		t.Errorf("unexpected result %s", value)
	}
}

func TestPipeline_Lambda(t *testing.T) {
	rules := pipelineRule(Lambda(func(args []seq.Value, _ *Environment) seq.Value {
		// Select the second child
		return args[1]
	}))
	//
	value, ok := runRule(t, rules)
	if !ok || value.String() != "b" {
		t.Errorf("unexpected result %s", value)
	}
}

func TestPipeline_LambdaWrapsAtoms(t *testing.T) {
	rules := NewRuleSet()
	// The body result is an atom, which destructuring wraps as a one-element
	// list.
	rules.Define("r", nil, rex.NewLiteral(seq.NewSymbol("a")), RuleOptions{
		Pipeline: []Transform{Lambda(func(args []seq.Value, _ *Environment) seq.Value {
			if len(args) != 1 {
				return seq.NewNull()
			}
			//
			return args[0]
		})},
	})
	//
	value, ok, err := rules.Parse(rex.NewRef("r"), seq.NewList([]seq.Value{seq.NewSymbol("a")}), nil)
	if err != nil || !ok || value.String() != "a" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestPipeline_Function(t *testing.T) {
	rules := pipelineRule(Function(func(args ...seq.Value) seq.Value {
		return seq.NewNumber(float64(len(args)))
	}))
	//
	value, ok := runRule(t, rules)
	if !ok || value.String() != "2" {
		t.Errorf("unexpected result %s", value)
	}
}

func TestPipeline_Identity(t *testing.T) {
	rules := pipelineRule(Identity(func(args []seq.Value, _ *Environment) bool {
		return false
	}))
	// A rejected value becomes null, but the match still succeeds.
	value, ok := runRule(t, rules)
	if !ok || !seq.IsNull(value) {
		t.Errorf("unexpected result %s", value)
	}
}

func TestPipeline_Flatten(t *testing.T) {
	rules := NewRuleSet()
	// Body ((a b) c) flattens to (a b c).
	body := rex.NewSequence(
		rex.NewSequence(
			rex.NewLiteral(seq.NewSymbol("a")),
			rex.NewLiteral(seq.NewSymbol("b")),
		),
		rex.NewLiteral(seq.NewSymbol("c")),
	)
	rules.Define("r", nil, body, RuleOptions{Pipeline: []Transform{Flatten()}})
	//
	input := seq.NewList([]seq.Value{seq.NewSymbol("a"), seq.NewSymbol("b"), seq.NewSymbol("c")})
	//
	value, ok, err := rules.Parse(rex.NewRef("r"), input, nil)
	if err != nil || !ok || value.String() != "(a b c)" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestPipeline_AsString(t *testing.T) {
	rules := NewRuleSet()
	rules.Define("r", nil, rex.OneOrMore(rex.NewWildcard(rex.AnyChar)),
		RuleOptions{Pipeline: []Transform{AsString()}})
	//
	value, ok, err := rules.Parse(rex.NewRef("r"), seq.NewString("hey"), nil)
	if err != nil || !ok || value.String() != "\"hey\"" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestPipeline_AsVector(t *testing.T) {
	rules := NewRuleSet()
	rules.Define("r", nil, rex.OneOrMore(rex.NewWildcard(rex.AnyNumber)),
		RuleOptions{Pipeline: []Transform{AsVector()}})
	//
	input := seq.NewList([]seq.Value{seq.NewNumber(1), seq.NewNumber(2)})
	//
	value, ok, err := rules.Parse(rex.NewRef("r"), input, nil)
	if err != nil || !ok || value.String() != "[1 2]" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestPipeline_AsVectorVeto(t *testing.T) {
	// Symbols cannot be represented in a numeric vector, vetoing the match.
	rules := pipelineRule(AsVector())
	//
	if _, ok := runRule(t, rules); ok {
		t.Errorf("expected veto")
	}
}

func TestPipeline_TestVeto(t *testing.T) {
	rules := pipelineRule(Test(func(args []seq.Value, _ *Environment) bool {
		return false
	}))
	//
	if _, ok := runRule(t, rules); ok {
		t.Errorf("expected veto")
	}
}

func TestPipeline_TestNotVeto(t *testing.T) {
	rules := pipelineRule(TestNot(func(args []seq.Value, _ *Environment) bool {
		return true
	}))
	//
	if _, ok := runRule(t, rules); ok {
		t.Errorf("expected veto")
	}
}

func TestPipeline_VetoRestoresCursor(t *testing.T) {
	rules := NewRuleSet()
	// Rule r matches 'a but always vetoes...
	rules.Define("r", nil, rex.NewLiteral(seq.NewSymbol("a")), RuleOptions{
		Pipeline: []Transform{Test(func(args []seq.Value, _ *Environment) bool {
			return false
		})},
	})
	// ...so the choice must fall through to its second alternative, starting
	// from the entry cursor.
	start := rex.NewChoice(rex.NewRef("r"), rex.NewLiteral(seq.NewSymbol("a")))
	//
	value, ok, err := rules.Parse(start, seq.NewList([]seq.Value{seq.NewSymbol("a")}), nil)
	if err != nil || !ok || value.String() != "a" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestPipeline_Ordering(t *testing.T) {
	// Steps apply in declaration order.
	rules := pipelineRule(
		Constant(seq.NewString("xy")),
		Lambda(func(args []seq.Value, _ *Environment) seq.Value {
			// Receives the constant, wrapped as a one-element list.
			return args[0]
		}),
	)
	//
	value, ok := runRule(t, rules)
	if !ok || value.String() != "\"xy\"" {
		t.Errorf("unexpected result %s", value)
	}
}

func TestPipeline_Bindings(t *testing.T) {
	rules := NewRuleSet()
	// Inner increments the counter introduced by outer.
	rules.Define("inner", nil, rex.NewLiteral(seq.NewSymbol("a")), RuleOptions{
		Externals: []string{"n"},
		Pipeline: []Transform{Lambda(func(args []seq.Value, env *Environment) seq.Value {
			value, ok := env.Lookup("n")
			if !ok {
				return seq.NewNull()
			}
			//
			next := seq.NewNumber(value.AsNumber().Float() + 1)
			env.Set("n", next)
			//
			return next
		})},
	})
	//
	rules.Define("outer", nil, rex.OneOrMore(rex.NewRef("inner")), RuleOptions{
		Locals: []Binding{{Name: "n", Value: seq.NewNumber(0)}},
		Pipeline: []Transform{Lambda(func(args []seq.Value, env *Environment) seq.Value {
			// The lexical binding survives across inner calls.
			value, _ := env.Lookup("n")
			return value
		})},
	})
	//
	input := seq.NewList([]seq.Value{seq.NewSymbol("a"), seq.NewSymbol("a"), seq.NewSymbol("a")})
	//
	value, ok, err := rules.Parse(rex.NewRef("outer"), input, nil)
	if err != nil || !ok || value.String() != "3" {
		t.Errorf("unexpected result %s (%v)", value, err)
	}
}

func TestEnvironment_Scoping(t *testing.T) {
	env := NewEnvironment()
	env.push([]Binding{{Name: "x", Value: seq.NewNumber(1)}})
	env.push([]Binding{{Name: "y", Value: seq.NewNumber(2)}})
	// Both frames are visible
	if v, ok := env.Lookup("x"); !ok || v.AsNumber().Float() != 1 {
		t.Errorf("lookup of x failed")
	}
	//
	if v, ok := env.Lookup("y"); !ok || v.AsNumber().Float() != 2 {
		t.Errorf("lookup of y failed")
	}
	// Assignment lands in the declaring frame
	if !env.Set("x", seq.NewNumber(3)) {
		t.Errorf("assignment of x failed")
	}
	//
	env.pop()
	//
	if v, ok := env.Lookup("x"); !ok || v.AsNumber().Float() != 3 {
		t.Errorf("assignment did not persist")
	}
	// Undeclared variables are reported
	if _, ok := env.Lookup("y"); ok {
		t.Errorf("y should have gone out of scope")
	}
	//
	if env.Set("z", seq.NewNumber(0)) {
		t.Errorf("assignment of undeclared z should fail")
	}
}
