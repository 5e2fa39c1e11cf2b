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
	"github.com/seqex/go-seqex/pkg/engine"
	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/sexp"
	"github.com/seqex/go-seqex/pkg/util/source"
)

// LoadRules reads rule definitions from a given source file into a rule
// table.  Each definition takes the form
//
//	(defrule name (param ...) body option ...)
//
// where an option is one of (:constant v), (:flatten), (:string), (:vector),
// (:let (name value) ...), (:external name ...), (:trace) or (:trace-all).
// Code-bearing pipeline steps are host-side constructs and have no surface
// form.
func LoadRules(rs *engine.RuleSet, srcfile *source.File) []source.SyntaxError {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return []source.SyntaxError{*err}
	}
	//
	var (
		t      = NewTranslator(srcfile, srcmap)
		errors []source.SyntaxError
	)
	//
	for _, term := range terms {
		errors = append(errors, loadRule(rs, t, term)...)
	}
	//
	return errors
}

func loadRule(rs *engine.RuleSet, t *sexp.Translator[rex.Expr], term sexp.SExp) []source.SyntaxError {
	l := term.AsList()
	//
	if l == nil || !l.MatchSymbols(1, "defrule") {
		return t.SyntaxErrors(term, "expected rule definition")
	} else if l.Len() < 4 {
		return t.SyntaxErrors(term, "malformed rule definition")
	}
	// Rule name
	name := l.Get(1).AsSymbol()
	if name == nil {
		return t.SyntaxErrors(l.Get(1), "invalid rule name")
	}
	// Formal parameters
	params, errs := paramsOf(t, l.Get(2))
	if len(errs) != 0 {
		return errs
	}
	// Body expression
	body, errs := t.Translate(l.Get(3))
	if len(errs) != 0 {
		return errs
	}
	// Options
	var (
		opts  engine.RuleOptions
		trace int
	)
	//
	for _, option := range l.Elements[4:] {
		if errs := loadOption(t, option, &opts, &trace); len(errs) != 0 {
			return errs
		}
	}
	//
	rs.Define(name.Value, params, body, opts)
	//
	if trace > 0 {
		rs.TraceRule(name.Value, trace > 1)
	}
	//
	return nil
}

func loadOption(t *sexp.Translator[rex.Expr], term sexp.SExp, opts *engine.RuleOptions, trace *int) []source.SyntaxError {
	l := term.AsList()
	//
	if l == nil || l.Len() == 0 || l.Get(0).AsSymbol() == nil {
		return t.SyntaxErrors(term, "malformed rule option")
	}
	//
	switch l.Get(0).AsSymbol().Value {
	case ":constant":
		if l.Len() != 2 {
			return t.SyntaxErrors(term, ":constant requires exactly one operand")
		}
		//
		value, err := ValueOf(l.Get(1))
		if err != nil {
			return t.SyntaxErrors(l.Get(1), err.Error())
		}
		//
		opts.Pipeline = append(opts.Pipeline, engine.Constant(value))
	case ":flatten":
		opts.Pipeline = append(opts.Pipeline, engine.Flatten())
	case ":string":
		opts.Pipeline = append(opts.Pipeline, engine.AsString())
	case ":vector":
		opts.Pipeline = append(opts.Pipeline, engine.AsVector())
	case ":let":
		return loadBindings(t, l, opts)
	case ":external":
		for _, e := range l.Elements[1:] {
			sym := e.AsSymbol()
			if sym == nil {
				return t.SyntaxErrors(e, "invalid binding name")
			}
			//
			opts.Externals = append(opts.Externals, sym.Value)
		}
	case ":trace":
		*trace = 1
	case ":trace-all":
		*trace = 2
	default:
		return t.SyntaxErrors(term, "unknown rule option")
	}
	//
	return nil
}

func loadBindings(t *sexp.Translator[rex.Expr], l *sexp.List, opts *engine.RuleOptions) []source.SyntaxError {
	for _, e := range l.Elements[1:] {
		pair := e.AsList()
		//
		if pair == nil || pair.Len() != 2 || pair.Get(0).AsSymbol() == nil {
			return t.SyntaxErrors(e, "malformed binding")
		}
		//
		value, err := ValueOf(pair.Get(1))
		if err != nil {
			return t.SyntaxErrors(pair.Get(1), err.Error())
		}
		//
		opts.Locals = append(opts.Locals, engine.Binding{Name: pair.Get(0).AsSymbol().Value, Value: value})
	}
	//
	return nil
}

func paramsOf(t *sexp.Translator[rex.Expr], term sexp.SExp) ([]string, []source.SyntaxError) {
	l := term.AsList()
	//
	if l == nil {
		return nil, t.SyntaxErrors(term, "invalid parameter list")
	}
	//
	params := make([]string, l.Len())
	//
	for i := range params {
		sym := l.Get(i).AsSymbol()
		if sym == nil {
			return nil, t.SyntaxErrors(l.Get(i), "invalid parameter name")
		}
		//
		params[i] = sym.Value
	}
	//
	return params, nil
}
