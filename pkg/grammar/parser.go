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

// Package grammar translates the S-expression surface syntax into rule
// expressions and rule definitions.  The recognised forms are:
//
//	literal | wildcard | name | (name arg ...) | (or e ...) | (and e ...)
//	(and~ e ...) | (not e) | (* e) | (+ e) | (? e) | (& e) | (! e)
//	(rep k e) | (list e) | (string e) | (vector e)
//
// where a literal is a number, a "string", a #\char, a 'symbol or a [vector],
// and a wildcard is one of the bare keywords form, char, byte, symbol,
// number, string, list and vector.
package grammar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/seq"
	"github.com/seqex/go-seqex/pkg/sexp"
	"github.com/seqex/go-seqex/pkg/util/source"
)

// Wildcard keywords, mapped to their kinds.
var wildcards = map[string]rex.WildcardKind{
	"form":   rex.AnyForm,
	"char":   rex.AnyChar,
	"byte":   rex.AnyByte,
	"symbol": rex.AnySymbol,
	"number": rex.AnyNumber,
	"string": rex.AnyString,
	"list":   rex.AnyList,
	"vector": rex.AnyVector,
}

// ParseExpr parses a given string into a rule expression, or returns an error
// if the string is malformed.
func ParseExpr(text string) (rex.Expr, error) {
	srcfile := source.NewSourceFile("<expr>", []byte(text))
	// Parse into S-expression form
	term, srcmap, err := sexp.Parse(srcfile)
	//
	if err != nil {
		return nil, err
	} else if term == nil {
		return nil, errors.New("empty rule expression")
	}
	// Translate into a rule expression
	expr, errs := NewTranslator(srcfile, srcmap).Translate(term)
	//
	if len(errs) != 0 {
		return nil, &errs[0]
	}
	//
	return expr, nil
}

// MustExpr parses a given string into a rule expression, panicking if the
// string is malformed.
func MustExpr(text string) rex.Expr {
	expr, err := ParseExpr(text)
	//
	if err != nil {
		panic(err)
	}
	//
	return expr
}

// NewTranslator constructs a translator from S-expressions to rule
// expressions, configured with one rule per combinator plus fallbacks for
// literals, wildcards and rule references.
func NewTranslator(srcfile *source.File, srcmap *source.Map[sexp.SExp]) *sexp.Translator[rex.Expr] {
	t := sexp.NewTranslator[rex.Expr](srcfile, srcmap)
	// Atom rules
	t.AddSymbolRule(numberRule)
	t.AddSymbolRule(wildcardRule)
	t.AddSymbolRule(referenceRule)
	t.SetQuoteRule(quoteRule)
	t.SetStringRule(stringRule)
	t.SetCharRule(charRule)
	t.SetArrayRule(vectorRule(t))
	// Combinators
	t.AddRecursiveListRule("or", naryRule("or", func(args []rex.Expr) rex.Expr { return rex.NewChoice(args...) }))
	t.AddRecursiveListRule("and", naryRule("and", func(args []rex.Expr) rex.Expr { return rex.NewSequence(args...) }))
	t.AddRecursiveListRule("and~", naryRule("and~", func(args []rex.Expr) rex.Expr { return rex.NewPermutation(args...) }))
	t.AddRecursiveListRule("not", unaryRule("not", func(arg rex.Expr) rex.Expr { return rex.NewNegation(arg) }))
	t.AddRecursiveListRule("*", unaryRule("*", func(arg rex.Expr) rex.Expr { return rex.ZeroOrMore(arg) }))
	t.AddRecursiveListRule("+", unaryRule("+", func(arg rex.Expr) rex.Expr { return rex.OneOrMore(arg) }))
	t.AddRecursiveListRule("?", unaryRule("?", func(arg rex.Expr) rex.Expr { return rex.NewOption(arg) }))
	t.AddRecursiveListRule("&", unaryRule("&", func(arg rex.Expr) rex.Expr { return rex.NewLookahead(arg) }))
	t.AddRecursiveListRule("!", unaryRule("!", func(arg rex.Expr) rex.Expr { return rex.NewNegLookahead(arg) }))
	t.AddRecursiveListRule("list", descentRule(rex.IntoList))
	t.AddRecursiveListRule("string", descentRule(rex.IntoString))
	t.AddRecursiveListRule("vector", descentRule(rex.IntoVector))
	t.AddListRule("rep", repRule(t))
	// Parametric rule references
	t.AddDefaultListRule(callRule(t))
	//
	return t
}

// ===================================================================
// Atoms
// ===================================================================

func numberRule(name string) (rex.Expr, bool, error) {
	if value, err := strconv.ParseFloat(name, 64); err == nil {
		return rex.NewLiteral(seq.NewNumber(value)), true, nil
	}
	//
	return nil, false, nil
}

func wildcardRule(name string) (rex.Expr, bool, error) {
	if kind, ok := wildcards[name]; ok {
		return rex.NewWildcard(kind), true, nil
	}
	//
	return nil, false, nil
}

// Any symbol which is neither a number nor a wildcard keyword references a
// rule (or a formal parameter of the enclosing rule).
func referenceRule(name string) (rex.Expr, bool, error) {
	return rex.NewRef(name), true, nil
}

func quoteRule(name string) (rex.Expr, error) {
	return rex.NewLiteral(seq.NewSymbol(name)), nil
}

func stringRule(value string) (rex.Expr, error) {
	return rex.NewLiteral(seq.NewString(value)), nil
}

func charRule(value rune) (rex.Expr, error) {
	return rex.NewLiteral(seq.NewChar(value)), nil
}

func vectorRule(t *sexp.Translator[rex.Expr]) sexp.ArrayRule[rex.Expr] {
	return func(a *sexp.Array) (rex.Expr, []source.SyntaxError) {
		elements, err := numbersOf(a)
		//
		if err != nil {
			return nil, t.SyntaxErrors(a, err.Error())
		}
		//
		return rex.NewLiteral(seq.NewVector(elements)), nil
	}
}

// ===================================================================
// Combinators
// ===================================================================

func naryRule(op string, build func([]rex.Expr) rex.Expr) sexp.RecursiveRule[rex.Expr] {
	return func(_ string, args []rex.Expr) (rex.Expr, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s requires at least one operand", op)
		}
		//
		return build(args), nil
	}
}

func unaryRule(op string, build func(rex.Expr) rex.Expr) sexp.RecursiveRule[rex.Expr] {
	return func(_ string, args []rex.Expr) (rex.Expr, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires exactly one operand", op)
		}
		//
		return build(args[0]), nil
	}
}

func descentRule(kind rex.DescentKind) sexp.RecursiveRule[rex.Expr] {
	return func(op string, args []rex.Expr) (rex.Expr, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s requires exactly one operand", op)
		}
		//
		return rex.NewDescent(kind, args[0]), nil
	}
}

// Translate a bounded repetition (rep k e), where k is either a number n
// (exactly n), a one-element array or list (0..max) or a two-element array or
// list (min..max).
func repRule(t *sexp.Translator[rex.Expr]) sexp.ListRule[rex.Expr] {
	return func(l *sexp.List) (rex.Expr, []source.SyntaxError) {
		if len(l.Elements) != 3 {
			return nil, t.SyntaxErrors(l, "rep requires a range and an operand")
		}
		// Decode the range
		min, max, err := rangeOf(l.Elements[1])
		if err != nil {
			return nil, t.SyntaxErrors(l.Elements[1], err.Error())
		}
		// Translate the operand
		operand, errs := t.Translate(l.Elements[2])
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return rex.NewRepetition(min, max, operand), nil
	}
}

// Translate a parametric rule reference (name arg ...).
func callRule(t *sexp.Translator[rex.Expr]) sexp.ListRule[rex.Expr] {
	return func(l *sexp.List) (rex.Expr, []source.SyntaxError) {
		var errors []source.SyntaxError
		// Extract rule name
		name := l.Elements[0].AsSymbol().Value
		// Translate arguments
		args := make([]rex.Expr, len(l.Elements)-1)
		//
		for i, s := range l.Elements[1:] {
			var errs []source.SyntaxError
			args[i], errs = t.Translate(s)
			errors = append(errors, errs...)
		}
		//
		if len(errors) != 0 {
			return nil, errors
		}
		//
		return rex.NewRef(name, args...), nil
	}
}

// ===================================================================
// Helpers
// ===================================================================

func rangeOf(s sexp.SExp) (int, int, error) {
	if sym := s.AsSymbol(); sym != nil {
		n, err := integerOf(sym)
		//
		if err != nil {
			return 0, 0, err
		} else if n < 0 {
			return 0, 0, errors.New("illegal repetition range")
		}
		//
		return n, n, nil
	} else if a := s.AsArray(); a != nil {
		return boundsOf(a.Elements)
	} else if l := s.AsList(); l != nil {
		return boundsOf(l.Elements)
	}
	//
	return 0, 0, errors.New("malformed repetition range")
}

func boundsOf(elements []sexp.SExp) (int, int, error) {
	var (
		min int
		max int
		err error
	)
	//
	switch len(elements) {
	case 1:
		if max, err = integerOf(elements[0]); err != nil {
			return 0, 0, err
		}
	case 2:
		if min, err = integerOf(elements[0]); err != nil {
			return 0, 0, err
		}
		//
		if max, err = integerOf(elements[1]); err != nil {
			return 0, 0, err
		}
	default:
		return 0, 0, errors.New("malformed repetition range")
	}
	//
	if min < 0 || max < min {
		return 0, 0, errors.New("illegal repetition range")
	}
	//
	return min, max, nil
}

func integerOf(s sexp.SExp) (int, error) {
	if sym := s.AsSymbol(); sym != nil {
		if n, err := strconv.Atoi(sym.Value); err == nil {
			return n, nil
		}
	}
	//
	return 0, errors.New("malformed repetition range")
}

func numbersOf(a *sexp.Array) ([]float64, error) {
	elements := make([]float64, a.Len())
	//
	for i := range elements {
		sym := a.Get(i).AsSymbol()
		if sym == nil {
			return nil, errors.New("vector literals may only contain numbers")
		}
		//
		value, err := strconv.ParseFloat(sym.Value, 64)
		if err != nil {
			return nil, errors.New("vector literals may only contain numbers")
		}
		//
		elements[i] = value
	}
	//
	return elements, nil
}
