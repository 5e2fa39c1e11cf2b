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
package seq

import (
	"testing"
)

func TestValue_Equal(t *testing.T) {
	cases := []struct {
		lhs      Value
		rhs      Value
		expected bool
	}{
		{NewSymbol("a"), NewSymbol("a"), true},
		{NewSymbol("a"), NewSymbol("b"), false},
		{NewSymbol("a"), NewString("a"), false},
		{NewChar('x'), NewChar('x'), true},
		{NewChar('x'), NewChar('y'), false},
		{NewNumber(1), NewNumber(1), true},
		{NewNumber(1), NewNumber(1.5), false},
		{NewString("ab"), NewString("ab"), true},
		{NewString("ab"), NewString("ba"), false},
		{NewVector([]float64{1, 2}), NewVector([]float64{1, 2}), true},
		{NewVector([]float64{1, 2}), NewVector([]float64{1}), false},
		{NewNull(), NewNull(), true},
		{NewNull(), NewSymbol("nil"), false},
		{
			NewList([]Value{NewSymbol("a"), NewList([]Value{NewNumber(1)})}),
			NewList([]Value{NewSymbol("a"), NewList([]Value{NewNumber(1)})}),
			true,
		},
		{
			NewList([]Value{NewSymbol("a")}),
			NewList([]Value{NewSymbol("b")}),
			false,
		},
	}
	//
	for i, c := range cases {
		if Equal(c.lhs, c.rhs) != c.expected {
			t.Errorf("case %d: Equal(%s, %s) != %t", i, c.lhs, c.rhs, c.expected)
		}
	}
}

func TestValue_String(t *testing.T) {
	cases := []struct {
		value    Value
		expected string
	}{
		{NewSymbol("abc"), "abc"},
		{NewChar('x'), "#\\x"},
		{NewChar(' '), "#\\space"},
		{NewChar('\n'), "#\\newline"},
		{NewNumber(42), "42"},
		{NewNumber(1.5), "1.5"},
		{NewString("hi"), "\"hi\""},
		{NewVector([]float64{1, 2, 3}), "[1 2 3]"},
		{NewNull(), "nil"},
		{EmptyList(), "()"},
		{NewList([]Value{NewSymbol("a"), NewNumber(1)}), "(a 1)"},
	}
	//
	for i, c := range cases {
		if s := c.value.String(); s != c.expected {
			t.Errorf("case %d: got %s, expected %s", i, s, c.expected)
		}
	}
}

func TestValue_IsByte(t *testing.T) {
	cases := []struct {
		value    float64
		expected bool
	}{
		{0, true}, {255, true}, {256, false}, {-1, false}, {1.5, false},
	}
	//
	for i, c := range cases {
		if NewNumber(c.value).IsByte() != c.expected {
			t.Errorf("case %d: IsByte(%v) != %t", i, c.value, c.expected)
		}
	}
}

func TestValue_Kinds(t *testing.T) {
	var list Value = NewList(nil)
	//
	if list.AsList() == nil || list.AsString() != nil || list.AsVector() != nil {
		t.Errorf("list casts incorrect")
	}
	//
	var str Value = NewString("")
	//
	if str.AsString() == nil || str.AsList() != nil || str.AsSymbol() != nil {
		t.Errorf("string casts incorrect")
	}
	//
	var vec Value = NewVector(nil)
	//
	if vec.AsVector() == nil || vec.AsNumber() != nil || vec.AsChar() != nil {
		t.Errorf("vector casts incorrect")
	}
}
