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

// Package sexp provides the S-expression surface syntax used to declare
// grammars.  Beyond plain symbols and lists it recognises the literal kinds
// the rule algebra needs: double-quoted strings, quoted symbols ('sym),
// character literals (#\x) and bracketed arrays ([1 2 3]).
package sexp

import (
	"strconv"
	"strings"
)

// SExp is an S-Expression: a Symbol, a SString, a Char, a Quoted term, a List
// or an Array.  Terms are distinguished using the As* casts, which return nil
// for every variant other than their own.
type SExp interface {
	// AsList checks whether this S-Expression is a list and, if so, returns
	// it.  Otherwise, it returns nil.
	AsList() *List
	// AsArray checks whether this S-Expression is an array and, if so,
	// returns it.  Otherwise, it returns nil.
	AsArray() *Array
	// AsSymbol checks whether this S-Expression is a symbol and, if so,
	// returns it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// AsString checks whether this S-Expression is a string literal and, if
	// so, returns it.  Otherwise, it returns nil.
	AsString() *SString
	// AsChar checks whether this S-Expression is a character literal and, if
	// so, returns it.  Otherwise, it returns nil.
	AsChar() *Char
	// AsQuoted checks whether this S-Expression is a quoted term and, if so,
	// returns it.  Otherwise, it returns nil.
	AsQuoted() *Quoted
	// String generates a string representation.
	String() string
}

// ===================================================================
// List
// ===================================================================

// List represents a parenthesised list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsArray returns nil for a list.
func (l *List) AsArray() *Array { return nil }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// AsString returns nil for a list.
func (l *List) AsString() *SString { return nil }

// AsChar returns nil for a list.
func (l *List) AsChar() *Char { return nil }

// AsQuoted returns nil for a list.
func (l *List) AsQuoted() *Quoted { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

func (l *List) String() string {
	return renderSequence("(", ")", l.Elements)
}

// MatchSymbols matches a list of at least n elements whose first elements are
// symbols matching the given strings (at most n of them).
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}

	for i := 0; i < len(symbols); i++ {
		ith := l.Elements[i].AsSymbol()
		if ith == nil || ith.Value != symbols[i] {
			return false
		}
	}

	return true
}

// ===================================================================
// Array
// ===================================================================

// Array represents a bracketed sequence of zero or more S-Expressions.
type Array struct {
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Array)(nil)

// NewArray creates a new array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsList returns nil for an array.
func (a *Array) AsList() *List { return nil }

// AsArray returns the given array.
func (a *Array) AsArray() *Array { return a }

// AsSymbol returns nil for an array.
func (a *Array) AsSymbol() *Symbol { return nil }

// AsString returns nil for an array.
func (a *Array) AsString() *SString { return nil }

// AsChar returns nil for an array.
func (a *Array) AsChar() *Char { return nil }

// AsQuoted returns nil for an array.
func (a *Array) AsQuoted() *Quoted { return nil }

// Len gets the number of elements in this array.
func (a *Array) Len() int { return len(a.Elements) }

// Get the ith element of this array
func (a *Array) Get(i int) SExp { return a.Elements[i] }

func (a *Array) String() string {
	return renderSequence("[", "]", a.Elements)
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsArray returns nil for a symbol.
func (s *Symbol) AsArray() *Array { return nil }

// AsSymbol returns the given symbol.
func (s *Symbol) AsSymbol() *Symbol { return s }

// AsString returns nil for a symbol.
func (s *Symbol) AsString() *SString { return nil }

// AsChar returns nil for a symbol.
func (s *Symbol) AsChar() *Char { return nil }

// AsQuoted returns nil for a symbol.
func (s *Symbol) AsQuoted() *Quoted { return nil }

func (s *Symbol) String() string { return s.Value }

// ===================================================================
// SString
// ===================================================================

// SString represents a double-quoted string literal.
type SString struct {
	Value string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*SString)(nil)

// NewSString creates a new string literal from a given string.
func NewSString(value string) *SString {
	return &SString{value}
}

// AsList returns nil for a string literal.
func (s *SString) AsList() *List { return nil }

// AsArray returns nil for a string literal.
func (s *SString) AsArray() *Array { return nil }

// AsSymbol returns nil for a string literal.
func (s *SString) AsSymbol() *Symbol { return nil }

// AsString returns the given string literal.
func (s *SString) AsString() *SString { return s }

// AsChar returns nil for a string literal.
func (s *SString) AsChar() *Char { return nil }

// AsQuoted returns nil for a string literal.
func (s *SString) AsQuoted() *Quoted { return nil }

func (s *SString) String() string { return strconv.Quote(s.Value) }

// ===================================================================
// Char
// ===================================================================

// Char represents a character literal such as #\a or #\newline.
type Char struct {
	Value rune
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Char)(nil)

// NewChar creates a new character literal from a given rune.
func NewChar(value rune) *Char {
	return &Char{value}
}

// AsList returns nil for a character literal.
func (c *Char) AsList() *List { return nil }

// AsArray returns nil for a character literal.
func (c *Char) AsArray() *Array { return nil }

// AsSymbol returns nil for a character literal.
func (c *Char) AsSymbol() *Symbol { return nil }

// AsString returns nil for a character literal.
func (c *Char) AsString() *SString { return nil }

// AsChar returns the given character literal.
func (c *Char) AsChar() *Char { return c }

// AsQuoted returns nil for a character literal.
func (c *Char) AsQuoted() *Quoted { return nil }

func (c *Char) String() string {
	switch c.Value {
	case ' ':
		return "#\\space"
	case '\t':
		return "#\\tab"
	case '\n':
		return "#\\newline"
	}

	return "#\\" + string(c.Value)
}

// ===================================================================
// Quoted
// ===================================================================

// Quoted represents a term preceded by a quote, as in 'sym.
type Quoted struct {
	Inner SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Quoted)(nil)

// NewQuoted creates a new quoted term.
func NewQuoted(inner SExp) *Quoted {
	return &Quoted{inner}
}

// AsList returns nil for a quoted term.
func (q *Quoted) AsList() *List { return nil }

// AsArray returns nil for a quoted term.
func (q *Quoted) AsArray() *Array { return nil }

// AsSymbol returns nil for a quoted term.
func (q *Quoted) AsSymbol() *Symbol { return nil }

// AsString returns nil for a quoted term.
func (q *Quoted) AsString() *SString { return nil }

// AsChar returns nil for a quoted term.
func (q *Quoted) AsChar() *Char { return nil }

// AsQuoted returns the given quoted term.
func (q *Quoted) AsQuoted() *Quoted { return q }

func (q *Quoted) String() string { return "'" + q.Inner.String() }

// ===================================================================
// Rendering
// ===================================================================

func renderSequence(open string, close string, elements []SExp) string {
	var s strings.Builder
	//
	s.WriteString(open)

	for i := 0; i < len(elements); i++ {
		if i != 0 {
			s.WriteString(" ")
		}

		s.WriteString(elements[i].String())
	}

	s.WriteString(close)

	return s.String()
}
