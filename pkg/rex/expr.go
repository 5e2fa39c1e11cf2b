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

// Package rex defines the rule-expression algebra evaluated by the matching
// engine.  A rule expression is a recursive value: a terminal (literal,
// wildcard or rule reference) or a combinator composing further expressions.
// Expressions carry no matching behaviour themselves; the engine interprets
// them against an input sequence.
package rex

import (
	"fmt"
	"strings"

	"github.com/seqex/go-seqex/pkg/seq"
)

// Expr represents a rule expression.  All implementations are pointer types,
// so expressions are comparable by identity.
type Expr interface {
	// String renders this expression in the canonical surface syntax.
	String() string
}

// ===================================================================
// Terminals
// ===================================================================

// Literal matches a concrete value: a quoted symbol, a character, a number, a
// string or a vector.
type Literal struct {
	Value seq.Value
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Literal)(nil)

// NewLiteral constructs a literal expression from a given value.
func NewLiteral(value seq.Value) *Literal {
	return &Literal{value}
}

func (p *Literal) String() string {
	// Quoted symbols render with their quote, distinguishing them from rule
	// references.
	if s := p.Value.AsSymbol(); s != nil {
		return "'" + s.Name()
	}

	return p.Value.String()
}

// WildcardKind identifies the kind test applied by a wildcard terminal.
type WildcardKind uint8

const (
	// AnyForm accepts any item.
	AnyForm WildcardKind = iota
	// AnyChar accepts a single character.
	AnyChar
	// AnyByte accepts an unsigned integer within the byte range [0,255].
	AnyByte
	// AnySymbol accepts a symbol.
	AnySymbol
	// AnyNumber accepts a number.
	AnyNumber
	// AnyString accepts a character string.
	AnyString
	// AnyList accepts a list.
	AnyList
	// AnyVector accepts a numeric vector.
	AnyVector
)

func (k WildcardKind) String() string {
	switch k {
	case AnyForm:
		return "form"
	case AnyChar:
		return "char"
	case AnyByte:
		return "byte"
	case AnySymbol:
		return "symbol"
	case AnyNumber:
		return "number"
	case AnyString:
		return "string"
	case AnyList:
		return "list"
	case AnyVector:
		return "vector"
	}

	return "??"
}

// Wildcard matches a single item by kind, consuming one position.
type Wildcard struct {
	Kind WildcardKind
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Wildcard)(nil)

// NewWildcard constructs a wildcard of a given kind.
func NewWildcard(kind WildcardKind) *Wildcard {
	return &Wildcard{kind}
}

func (p *Wildcard) String() string {
	return p.Kind.String()
}

// Ref invokes a named rule, optionally passing argument expressions for its
// formal parameters.  Inside a rule body, a reference may also name a formal
// parameter of the enclosing rule, in which case it is dispatched at match
// time against the caller-supplied argument.
type Ref struct {
	Name string
	Args []Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Ref)(nil)

// NewRef constructs a reference to a given rule with zero or more arguments.
func NewRef(name string, args ...Expr) *Ref {
	return &Ref{name, args}
}

func (p *Ref) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	//
	var s strings.Builder
	//
	s.WriteString("(")
	s.WriteString(p.Name)

	for _, arg := range p.Args {
		s.WriteString(" ")
		s.WriteString(arg.String())
	}

	s.WriteString(")")

	return s.String()
}

// ===================================================================
// Combinators
// ===================================================================

// Choice tries its alternatives in order and yields the first success.  It is
// strictly ordered, never longest-match.
type Choice struct {
	Exprs []Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Choice)(nil)

// NewChoice constructs an ordered choice over the given alternatives.
func NewChoice(exprs ...Expr) *Choice {
	return &Choice{exprs}
}

func (p *Choice) String() string {
	return renderNary("or", p.Exprs)
}

// Sequence matches its elements left to right, threading the cursor, and
// yields the ordered list of child values.
type Sequence struct {
	Exprs []Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Sequence)(nil)

// NewSequence constructs an ordered sequence over the given elements.
func NewSequence(exprs ...Expr) *Sequence {
	return &Sequence{exprs}
}

func (p *Sequence) String() string {
	return renderNary("and", p.Exprs)
}

// Permutation matches each of its elements exactly once, in any order, and
// yields child values aligned with the declaration order.
type Permutation struct {
	Exprs []Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Permutation)(nil)

// NewPermutation constructs an unordered sequence over the given elements.
func NewPermutation(exprs ...Expr) *Permutation {
	return &Permutation{exprs}
}

func (p *Permutation) String() string {
	return renderNary("and~", p.Exprs)
}

// Negation succeeds when its operand fails at a readable position, consuming
// and yielding the item under the cursor.
type Negation struct {
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Negation)(nil)

// NewNegation constructs a negation of a given expression.
func NewNegation(expr Expr) *Negation {
	return &Negation{expr}
}

func (p *Negation) String() string {
	return renderUnary("not", p.Expr)
}

// Repetition matches its operand greedily between Min and Max times.  A
// negative Max denotes an unbounded repetition.  Zero-or-more and one-or-more
// are the special cases {0,-1} and {1,-1}.
type Repetition struct {
	Min  int
	Max  int
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Repetition)(nil)

// NewRepetition constructs a bounded repetition of a given expression.
func NewRepetition(min int, max int, expr Expr) *Repetition {
	return &Repetition{min, max, expr}
}

// ZeroOrMore constructs an unbounded repetition accepting zero matches.
func ZeroOrMore(expr Expr) *Repetition {
	return &Repetition{0, -1, expr}
}

// OneOrMore constructs an unbounded repetition requiring at least one match.
func OneOrMore(expr Expr) *Repetition {
	return &Repetition{1, -1, expr}
}

func (p *Repetition) String() string {
	switch {
	case p.Min == 0 && p.Max < 0:
		return renderUnary("*", p.Expr)
	case p.Min == 1 && p.Max < 0:
		return renderUnary("+", p.Expr)
	case p.Min == p.Max:
		return fmt.Sprintf("(rep %d %s)", p.Min, p.Expr)
	case p.Min == 0:
		return fmt.Sprintf("(rep [%d] %s)", p.Max, p.Expr)
	}

	return fmt.Sprintf("(rep [%d %d] %s)", p.Min, p.Max, p.Expr)
}

// Option always succeeds, yielding the operand's value when it matches and
// the null value otherwise.
type Option struct {
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Option)(nil)

// NewOption constructs an option of a given expression.
func NewOption(expr Expr) *Option {
	return &Option{expr}
}

func (p *Option) String() string {
	return renderUnary("?", p.Expr)
}

// Lookahead succeeds when its operand matches, without consuming input.
type Lookahead struct {
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Lookahead)(nil)

// NewLookahead constructs a look-ahead predicate over a given expression.
func NewLookahead(expr Expr) *Lookahead {
	return &Lookahead{expr}
}

func (p *Lookahead) String() string {
	return renderUnary("&", p.Expr)
}

// NegLookahead succeeds when its operand fails at a readable position,
// yielding the item under the cursor without consuming it.
type NegLookahead struct {
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*NegLookahead)(nil)

// NewNegLookahead constructs a negative predicate over a given expression.
func NewNegLookahead(expr Expr) *NegLookahead {
	return &NegLookahead{expr}
}

func (p *NegLookahead) String() string {
	return renderUnary("!", p.Expr)
}

// DescentKind identifies the sequence kind required by a typed descent.
type DescentKind uint8

const (
	// IntoList requires the current element to be a list.
	IntoList DescentKind = iota
	// IntoString requires the current element to be a string.
	IntoString
	// IntoVector requires the current element to be a vector.
	IntoVector
)

func (k DescentKind) String() string {
	switch k {
	case IntoList:
		return "list"
	case IntoString:
		return "string"
	case IntoVector:
		return "vector"
	}

	return "??"
}

// Descent requires the current element to be a sub-sequence of a given kind,
// and matches its operand against the entire contents of that sub-sequence.
type Descent struct {
	Kind DescentKind
	Expr Expr
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Expr = (*Descent)(nil)

// NewDescent constructs a typed descent of a given kind.
func NewDescent(kind DescentKind, expr Expr) *Descent {
	return &Descent{kind, expr}
}

func (p *Descent) String() string {
	return fmt.Sprintf("(%s %s)", p.Kind, p.Expr)
}

// ===================================================================
// Rendering
// ===================================================================

func renderUnary(op string, expr Expr) string {
	return fmt.Sprintf("(%s %s)", op, expr)
}

func renderNary(op string, exprs []Expr) string {
	var s strings.Builder
	//
	s.WriteString("(")
	s.WriteString(op)

	for _, e := range exprs {
		s.WriteString(" ")
		s.WriteString(e.String())
	}

	s.WriteString(")")

	return s.String()
}
