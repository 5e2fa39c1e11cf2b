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
package grammar

import (
	"testing"

	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/stretchr/testify/assert"
)

func TestParseExpr_Roundtrip(t *testing.T) {
	// Each surface form should survive a parse/render roundtrip.
	cases := []string{
		"'a",
		"42",
		"1.5",
		"\"abc\"",
		"#\\x",
		"[1 2 3]",
		"form",
		"char",
		"byte",
		"symbol",
		"number",
		"greeting",
		"(greet 'you)",
		"(or 'a 'b 'c)",
		"(and 'a 'b)",
		"(and~ 'a 'b)",
		"(not 'a)",
		"(* 'a)",
		"(+ char)",
		"(? 'a)",
		"(& 'a)",
		"(! 'a)",
		"(rep 3 'a)",
		"(rep [4] 'a)",
		"(rep [2 4] 'a)",
		"(list (and 'a 'b))",
		"(string (+ char))",
		"(vector (and 1 2))",
		"(or (and 'a (* 'b)) (not 'c))",
	}
	//
	for _, c := range cases {
		expr, err := ParseExpr(c)
		//
		if assert.NoError(t, err, c) {
			assert.Equal(t, c, expr.String())
		}
	}
}

func TestParseExpr_Kinds(t *testing.T) {
	// Bare keywords are wildcards; in operator position they are descents.
	expr := MustExpr("list")
	assert.IsType(t, &rex.Wildcard{}, expr)
	assert.Equal(t, rex.AnyList, expr.(*rex.Wildcard).Kind)
	//
	expr = MustExpr("(list 'a)")
	assert.IsType(t, &rex.Descent{}, expr)
	assert.Equal(t, rex.IntoList, expr.(*rex.Descent).Kind)
	// Unknown symbols are rule references.
	expr = MustExpr("digits")
	assert.IsType(t, &rex.Ref{}, expr)
	// Shorthand repetitions expand to bounded ones.
	expr = MustExpr("(* 'a)")
	assert.Equal(t, 0, expr.(*rex.Repetition).Min)
	assert.Equal(t, -1, expr.(*rex.Repetition).Max)
	//
	expr = MustExpr("(rep [2 4] 'a)")
	assert.Equal(t, 2, expr.(*rex.Repetition).Min)
	assert.Equal(t, 4, expr.(*rex.Repetition).Max)
	//
	expr = MustExpr("(rep (2 4) 'a)")
	assert.Equal(t, 2, expr.(*rex.Repetition).Min)
	assert.Equal(t, 4, expr.(*rex.Repetition).Max)
}

func TestParseExpr_Errors(t *testing.T) {
	cases := []string{
		"",
		"(or)",
		"(and)",
		"(not)",
		"(not 'a 'b)",
		"(* 'a 'b)",
		"(rep 'a)",
		"(rep x 'a)",
		"(rep -1 'a)",
		"(rep [4 2] 'a)",
		"(rep [1 2 3] 'a)",
		"[a b]",
		"()",
		"((a) b)",
		"'(a)",
		"\"abc",
	}
	//
	for _, c := range cases {
		_, err := ParseExpr(c)
		assert.Error(t, err, c)
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"a", "a"},
		{"'a", "a"},
		{"42", "42"},
		{"\"hi\"", "\"hi\""},
		{"#\\x", "#\\x"},
		{"[1 2]", "[1 2]"},
		{"nil", "nil"},
		{"(a (b 1) \"c\")", "(a (b 1) \"c\")"},
	}
	//
	for _, c := range cases {
		value, err := ParseValue(c.input)
		//
		if assert.NoError(t, err, c.input) {
			assert.Equal(t, c.expected, value.String())
		}
	}
}
