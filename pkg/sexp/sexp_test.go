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
package sexp

import (
	"reflect"
	"testing"

	"github.com/seqex/go-seqex/pkg/util/source"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_0(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_3(t *testing.T) {
	e1 := Symbol{"symbol"}
	CheckOk(t, &e1, "symbol")
}

func TestSexp_4(t *testing.T) {
	e1 := Symbol{"12345"}
	CheckOk(t, &e1, "12345")
}

func TestSexp_5(t *testing.T) {
	e1 := Symbol{"and~"}
	CheckOk(t, &e1, "and~")
}

func TestSexp_6(t *testing.T) {
	e1 := Quoted{&Symbol{"a"}}
	CheckOk(t, &e1, "'a")
}

func TestSexp_7(t *testing.T) {
	e1 := SString{"hello"}
	CheckOk(t, &e1, "\"hello\"")
}

func TestSexp_8(t *testing.T) {
	e1 := SString{"a\"b\\c\nd\te"}
	CheckOk(t, &e1, "\"a\\\"b\\\\c\\nd\\te\"")
}

func TestSexp_9(t *testing.T) {
	e1 := SString{""}
	CheckOk(t, &e1, "\"\"")
}

func TestSexp_10(t *testing.T) {
	e1 := Char{'a'}
	CheckOk(t, &e1, "#\\a")
}

func TestSexp_11(t *testing.T) {
	e1 := Char{' '}
	CheckOk(t, &e1, "#\\space")
}

func TestSexp_12(t *testing.T) {
	e1 := Char{'\t'}
	CheckOk(t, &e1, "#\\tab")
}

func TestSexp_13(t *testing.T) {
	e1 := Char{'\n'}
	CheckOk(t, &e1, "#\\newline")
}

func TestSexp_14(t *testing.T) {
	e1 := Char{'('}
	CheckOk(t, &e1, "#\\(")
}

func TestSexp_15(t *testing.T) {
	e1 := Array{nil}
	CheckOk(t, &e1, "[]")
}

func TestSexp_16(t *testing.T) {
	e1 := Array{[]SExp{&Symbol{"1"}, &Symbol{"2"}}}
	CheckOk(t, &e1, "[1 2]")
}

func TestSexp_17(t *testing.T) {
	e1 := List{[]SExp{
		&Symbol{"and"},
		&Quoted{&Symbol{"a"}},
		&SString{"bc"},
	}}
	CheckOk(t, &e1, "(and 'a \"bc\")")
}

func TestSexp_18(t *testing.T) {
	e1 := List{[]SExp{
		&Symbol{"or"},
		&List{[]SExp{&Symbol{"*"}, &Symbol{"char"}}},
		&Array{[]SExp{&Symbol{"1"}}},
	}}
	CheckOk(t, &e1, "(or (* char) [1])")
}

func TestSexp_19(t *testing.T) {
	e1 := Symbol{"a"}
	CheckOk(t, &e1, "a ; trailing comment")
}

func TestSexp_20(t *testing.T) {
	e1 := List{[]SExp{&Symbol{"a"}, &Symbol{"b"}}}
	CheckOk(t, &e1, "(a ; comment\n b)")
}

// ============================================================================
// Negative Tests
// ============================================================================

func TestSexp_Err_0(t *testing.T) {
	CheckErr(t, ")")
}

func TestSexp_Err_1(t *testing.T) {
	CheckErr(t, "(a")
}

func TestSexp_Err_2(t *testing.T) {
	CheckErr(t, "]")
}

func TestSexp_Err_3(t *testing.T) {
	CheckErr(t, "[a)")
}

func TestSexp_Err_4(t *testing.T) {
	CheckErr(t, "\"abc")
}

func TestSexp_Err_5(t *testing.T) {
	CheckErr(t, "\"ab\\qc\"")
}

func TestSexp_Err_6(t *testing.T) {
	CheckErr(t, "'(a)")
}

func TestSexp_Err_7(t *testing.T) {
	CheckErr(t, "'")
}

func TestSexp_Err_8(t *testing.T) {
	CheckErr(t, "#\\wrong")
}

func TestSexp_Err_9(t *testing.T) {
	CheckErr(t, "a b")
}

// ============================================================================
// Helpers
// ============================================================================

// CheckOk checks that a given string parses into the expected S-expression.
func CheckOk(t *testing.T, expected SExp, input string) {
	srcfile := source.NewSourceFile("test", []byte(input))
	actual, _, err := Parse(srcfile)
	//
	if err != nil {
		t.Errorf("parsing %q failed: %s", input, err)
	} else if !reflect.DeepEqual(expected, actual) {
		t.Errorf("parsing %q gave %v, expected %v", input, actual, expected)
	}
}

// CheckErr checks that a given string fails to parse.
func CheckErr(t *testing.T, input string) {
	srcfile := source.NewSourceFile("test", []byte(input))
	//
	if _, _, err := Parse(srcfile); err == nil {
		t.Errorf("parsing %q should have failed", input)
	}
}
