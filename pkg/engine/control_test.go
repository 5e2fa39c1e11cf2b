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
package engine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/seqex/go-seqex/pkg/engine"
	"github.com/seqex/go-seqex/pkg/grammar"
	"github.com/seqex/go-seqex/pkg/seq"
)

// ============================================================================
// Left recursion
// ============================================================================

func TestControl_DirectLeftRecursion(t *testing.T) {
	rules := engine.NewRuleSet()
	// palindrome reaches itself at an unchanged cursor.
	rules.Define("palindrome", nil, grammar.MustExpr("(or palindrome 'a)"), engine.RuleOptions{})
	//
	CheckFatal(t, rules, "palindrome", symbols("a"), engine.LeftRecursion)
}

func TestControl_IndirectLeftRecursion(t *testing.T) {
	rules := engine.NewRuleSet()
	rules.Define("a", nil, grammar.MustExpr("(or b 'x)"), engine.RuleOptions{})
	rules.Define("b", nil, grammar.MustExpr("(or a 'y)"), engine.RuleOptions{})
	//
	CheckFatal(t, rules, "a", symbols("x"), engine.LeftRecursion)
}

func TestControl_RecursionWithAdvance(t *testing.T) {
	rules := engine.NewRuleSet()
	// Recursion is fine once the cursor has advanced.
	rules.Define("items", nil, grammar.MustExpr("(and 'a (? items))"), engine.RuleOptions{})
	//
	CheckMatch(t, rules, "items", symbols("a", "a"), "(a (a nil))")
}

// ============================================================================
// Tracing
// ============================================================================

func TestControl_TraceRule(t *testing.T) {
	var buffer bytes.Buffer
	//
	rules := engine.NewRuleSet()
	rules.SetTraceOutput(&buffer)
	rules.Define("r", nil, grammar.MustExpr("'a"), engine.RuleOptions{})
	rules.Define("s", nil, grammar.MustExpr("r"), engine.RuleOptions{})
	rules.TraceRule("r", false)
	//
	CheckMatch(t, rules, "s", symbols("a"), "a")
	//
	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	//
	if len(lines) != 2 {
		t.Fatalf("expected 2 trace lines, got %d: %q", len(lines), lines)
	}
	// Call and successful return, with cursor movement and value.
	if lines[0] != "0: r [0]?" {
		t.Errorf("unexpected call line %q", lines[0])
	}
	//
	if lines[1] != "0: r [0]→[1] → a" {
		t.Errorf("unexpected return line %q", lines[1])
	}
}

func TestControl_TraceFailure(t *testing.T) {
	var buffer bytes.Buffer
	//
	rules := engine.NewRuleSet()
	rules.SetTraceOutput(&buffer)
	rules.Define("r", nil, grammar.MustExpr("'a"), engine.RuleOptions{})
	rules.TraceRule("r", false)
	//
	CheckNoMatch(t, rules, "r", symbols("b"))
	//
	if !strings.Contains(buffer.String(), "0: r -|") {
		t.Errorf("expected failure line, got %q", buffer.String())
	}
}

func TestControl_TraceRecursive(t *testing.T) {
	var buffer bytes.Buffer
	//
	rules := engine.NewRuleSet()
	rules.SetTraceOutput(&buffer)
	rules.Define("inner", nil, grammar.MustExpr("'a"), engine.RuleOptions{})
	rules.Define("outer", nil, grammar.MustExpr("(and inner)"), engine.RuleOptions{})
	// Level 2 propagates to rules reached whilst outer is active.
	rules.TraceRule("outer", true)
	//
	CheckMatch(t, rules, "outer", symbols("a"), "(a)")
	//
	trace := buffer.String()
	//
	for _, expected := range []string{"0: outer [0]?", " 1: inner [0]?", " 1: inner [0]→[1] → a", "0: outer [0]→[1] → (a)"} {
		if !strings.Contains(trace, expected) {
			t.Errorf("trace missing %q:\n%s", expected, trace)
		}
	}
}

func TestControl_UntraceRule(t *testing.T) {
	var buffer bytes.Buffer
	//
	rules := engine.NewRuleSet()
	rules.SetTraceOutput(&buffer)
	rules.Define("r", nil, grammar.MustExpr("'a"), engine.RuleOptions{})
	rules.TraceRule("r", false)
	rules.UntraceRule("r")
	//
	CheckMatch(t, rules, "r", symbols("a"), "a")
	//
	if buffer.Len() != 0 {
		t.Errorf("expected no trace output, got %q", buffer.String())
	}
}

// ============================================================================
// Scoped rule tables
// ============================================================================

func TestControl_WithLocalRules(t *testing.T) {
	engine.WithLocalRules(func(rules *engine.RuleSet) {
		if rules != engine.Default() {
			t.Errorf("body should receive the active table")
		}
		//
		rules.Define("scoped", nil, grammar.MustExpr("'a"), engine.RuleOptions{})
		//
		_, ok, err := engine.Parse(grammar.MustExpr("scoped"), symbols("a"), nil)
		if err != nil || !ok {
			t.Errorf("scoped rule should be visible inside the body")
		}
	})
	// Outside, the definition is gone.
	_, _, err := engine.Parse(grammar.MustExpr("scoped"), symbols("a"), nil)
	//
	if fatal, ok := err.(*engine.Error); !ok || fatal.Kind != engine.UnknownRule {
		t.Errorf("scoped rule should not leak into the global table")
	}
}

// ============================================================================
// End-to-end scenarios
// ============================================================================

func TestControl_DigitsScenario(t *testing.T) {
	rules := engine.NewRuleSet()
	rules.Define("digit", nil, grammar.MustExpr("(or #\\0 #\\1 #\\2 #\\3 #\\4 #\\5 #\\6 #\\7 #\\8 #\\9)"),
		engine.RuleOptions{})
	rules.Define("digits", nil, grammar.MustExpr("(+ digit)"),
		engine.RuleOptions{Pipeline: []engine.Transform{engine.AsString()}})
	//
	value, cursor, ok, err := rules.Match(grammar.MustExpr("digits"), seq.NewString("123abc"),
		&engine.Options{JunkAllowed: true})
	//
	if err != nil || !ok {
		t.Fatalf("match failed: %v", err)
	}
	//
	if value.String() != "\"123\"" {
		t.Errorf("unexpected value %s", value)
	}
	//
	if cursor.Depth() != 1 || cursor.Offset() != 3 {
		t.Errorf("expected cursor at offset 3, got %s", cursor)
	}
}
