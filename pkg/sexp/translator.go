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
	"fmt"

	"github.com/seqex/go-seqex/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating symbol into a term
// of type T.  For example, a number or a wildcard keyword.  The boolean
// result indicates whether this rule applied; rules are attempted in order of
// registration.
type SymbolRule[T comparable] func(string) (T, bool, error)

// AtomRule is responsible for converting a non-symbol atom (a quoted symbol
// name, a string literal or a character literal) into a term of type T.
type AtomRule[V any, T comparable] func(V) (T, error)

// ListRule is responsible for converting a list with a given sequence of zero
// or more (untranslated) elements into a term of type T.
type ListRule[T comparable] func(*List) (T, []source.SyntaxError)

// ArrayRule is responsible for converting an array with a given sequence of
// zero or more (untranslated) elements into a term of type T.
type ArrayRule[T comparable] func(*Array) (T, []source.SyntaxError)

// RecursiveRule is a wrapper for translating lists whose elements can be
// built by recursively reusing the enclosing translator.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.
type Translator[T comparable] struct {
	srcfile *source.File
	// Rules for parsing lists, keyed by their head symbol.
	lists map[string]ListRule[T]
	// Fallback rule applied when no list rule matches the head symbol.
	listDefault ListRule[T]
	// Rule for parsing arrays.
	array ArrayRule[T]
	// Rules for parsing symbols.
	symbols []SymbolRule[T]
	// Rule for parsing quoted symbols.
	quote AtomRule[string, T]
	// Rule for parsing string literals.
	str AtomRule[string, T]
	// Rule for parsing character literals.
	char AtomRule[rune, T]
	// Maps S-Expressions to their spans in the original source file.  This is
	// used to build the new source map.
	oldSrcmap *source.Map[SExp]
	// Maps translated terms to their spans in the original source file.  This
	// is constructed using the old source map.
	newSrcmap *source.Map[T]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T comparable](srcfile *source.File, srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		srcfile:   srcfile,
		lists:     make(map[string]ListRule[T]),
		symbols:   make([]SymbolRule[T], 0),
		oldSrcmap: srcmap,
		newSrcmap: source.NewSourceMap[T](srcmap.Source()),
	}
}

// SourceMap returns the source map maintained for terms constructed by this
// translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.newSrcmap
}

// SpanOf gets the span associated with a given S-Expression in the original
// source file.
func (p *Translator[T]) SpanOf(sexp SExp) source.Span {
	return p.oldSrcmap.Get(sexp)
}

// Translate a given S-Expression into the structured representation T using
// the configured rules.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	return translateSExp(p, sexp)
}

// AddListRule adds a raw list rule to this translator for a given head
// symbol.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a list rule for a given head symbol whose
// elements are translated recursively before the rule applies.
func (p *Translator[T]) AddRecursiveListRule(name string, rule RecursiveRule[T]) {
	p.lists[name] = p.createRecursiveListRule(rule)
}

// AddDefaultListRule adds a rule to be applied when no other list rule
// applies.
func (p *Translator[T]) AddDefaultListRule(rule ListRule[T]) {
	p.listDefault = rule
}

// AddSymbolRule adds a new symbol rule to this translator.
func (p *Translator[T]) AddSymbolRule(rule SymbolRule[T]) {
	p.symbols = append(p.symbols, rule)
}

// SetQuoteRule sets the rule used to translate quoted symbols.
func (p *Translator[T]) SetQuoteRule(rule AtomRule[string, T]) {
	p.quote = rule
}

// SetStringRule sets the rule used to translate string literals.
func (p *Translator[T]) SetStringRule(rule AtomRule[string, T]) {
	p.str = rule
}

// SetCharRule sets the rule used to translate character literals.
func (p *Translator[T]) SetCharRule(rule AtomRule[rune, T]) {
	p.char = rule
}

// SetArrayRule sets the rule used to translate arrays.
func (p *Translator[T]) SetArrayRule(rule ArrayRule[T]) {
	p.array = rule
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	// Get span of enclosing term
	span := p.oldSrcmap.Get(s)
	// Construct syntax error
	return p.srcfile.SyntaxError(span, msg)
}

// SyntaxErrors constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

func (p *Translator[T]) createRecursiveListRule(rule RecursiveRule[T]) ListRule[T] {
	// Construct a recursive list rule as a wrapper around a generic list rule.
	return func(l *List) (T, []source.SyntaxError) {
		var (
			empty  T
			errors []source.SyntaxError
		)
		// Extract expression name
		head := l.Elements[0].AsSymbol().Value
		// Translate arguments
		args := make([]T, len(l.Elements)-1)
		//
		for i, s := range l.Elements[1:] {
			var errs []source.SyntaxError
			args[i], errs = translateSExp(p, s)
			errors = append(errors, errs...)
		}
		//
		if len(errors) != 0 {
			return empty, errors
		}
		// Apply constructor
		term, err := rule(head, args)
		// Check for error
		if err != nil {
			return empty, p.SyntaxErrors(l, err.Error())
		}
		//
		return term, nil
	}
}

// ===================================================================
// Private
// ===================================================================

// Translate an S-Expression into a term of type T.  Observe that this can
// still fail in the event that the given S-Expression does not describe a
// well-formed term.
func translateSExp[T comparable](p *Translator[T], s SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := s.(type) {
	case *List:
		return translateSExpList(p, e)
	case *Array:
		if p.array != nil {
			node, errs := p.array(e)
			return mapResult(p, node, errs, s)
		}
	case *Quoted:
		if p.quote != nil {
			return mapAtom(p, p.quote, e.Inner.AsSymbol().Value, s)
		}
	case *SString:
		if p.str != nil {
			return mapAtom(p, p.str, e.Value, s)
		}
	case *Char:
		if p.char != nil {
			return mapAtom(p, p.char, e.Value, s)
		}
	case *Symbol:
		for i := 0; i != len(p.symbols); i++ {
			node, ok, err := (p.symbols[i])(e.Value)
			if ok && err != nil {
				// Transform into syntax error
				return empty, p.SyntaxErrors(s, err.Error())
			} else if ok {
				// Update source map
				map2sexp(p, node, s)
				// Done
				return node, nil
			}
		}
	}
	//
	return empty, p.SyntaxErrors(s, fmt.Sprintf("invalid term (%s)", s))
}

// Translate a list of S-Expressions into a unary, binary or n-ary term of
// some kind.  The kind of term is determined by the first element of the
// list, which must be a symbol.
func translateSExpList[T comparable](p *Translator[T], l *List) (T, []source.SyntaxError) {
	var empty T
	// Sanity check this list makes sense
	if len(l.Elements) == 0 || l.Elements[0].AsSymbol() == nil {
		return empty, p.SyntaxErrors(l, "invalid list")
	}
	// Extract expression name
	name := l.Elements[0].AsSymbol().Value
	// Lookup appropriate rule
	rule := p.lists[name]
	// Fall back on the default (if any)
	if rule == nil {
		rule = p.listDefault
	}
	//
	if rule == nil {
		return empty, p.SyntaxErrors(l, "unknown list encountered")
	}
	//
	node, errs := rule(l)
	//
	return mapResult(p, node, errs, l)
}

// Apply an atom rule, converting any error into a syntax error over the
// original term.
func mapAtom[V any, T comparable](p *Translator[T], rule AtomRule[V, T], value V, s SExp) (T, []source.SyntaxError) {
	var empty T
	//
	node, err := rule(value)
	if err != nil {
		return empty, p.SyntaxErrors(s, err.Error())
	}
	// Update source map
	map2sexp(p, node, s)
	//
	return node, nil
}

// Register a successfully translated term in the new source map.
func mapResult[T comparable](p *Translator[T], node T, errors []source.SyntaxError, s SExp) (T, []source.SyntaxError) {
	if len(errors) == 0 {
		map2sexp(p, node, s)
	}
	//
	return node, errors
}

// Add a mapping from a given item to the S-expression from which it was
// generated.  This updates the underlying source map to reflect this.
func map2sexp[T comparable](p *Translator[T], item T, sexp SExp) {
	// Lookup enclosing span
	span := p.oldSrcmap.Get(sexp)
	// Map it in the new source map
	p.newSrcmap.Put(item, span)
}
