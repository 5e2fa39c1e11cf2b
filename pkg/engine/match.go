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
	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/seq"
)

// interpreter carries the state of a single parse: the rule table, the input
// being matched, the dynamic bindings, the left-recursion guard and the
// tracer.  It is created by the driver and discarded afterwards.
type interpreter struct {
	rules *RuleSet
	input seq.Value
	env   *Environment
	guard *recursionGuard
	trace *tracer
}

// boundArg is a caller-supplied argument expression, together with the scope
// it must be evaluated in.  Retaining the scope is what lets compound
// arguments mention formal parameters of the caller.
type boundArg struct {
	expr  rex.Expr
	scope *callScope
}

// callScope maps the formal parameters of the rule being evaluated to their
// bound arguments.  A nil scope means no parameters are in scope.
type callScope struct {
	params map[string]boundArg
}

func (p *callScope) lookup(name string) (boundArg, bool) {
	if p == nil {
		return boundArg{}, false
	}
	//
	bound, ok := p.params[name]
	//
	return bound, ok
}

// Evaluate a rule expression at a given cursor.  On success, the returned
// cursor sits at or beyond the given one; on failure, the given cursor is
// returned unchanged.  Fatal conditions abort evaluation via the error
// result.
func (in *interpreter) eval(e rex.Expr, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	switch e := e.(type) {
	case *rex.Literal:
		value, next, ok := in.matchLiteral(e.Value, pos)
		return value, next, ok, nil
	case *rex.Wildcard:
		value, next, ok := in.matchWildcard(e.Kind, pos)
		return value, next, ok, nil
	case *rex.Ref:
		return in.evalRef(e, pos, scope)
	case *rex.Choice:
		return in.evalChoice(e, pos, scope)
	case *rex.Sequence:
		return in.evalSequence(e, pos, scope)
	case *rex.Permutation:
		return in.evalPermutation(e, pos, scope)
	case *rex.Negation:
		return in.evalNegation(e, pos, scope)
	case *rex.Repetition:
		return in.evalRepetition(e, pos, scope)
	case *rex.Option:
		return in.evalOption(e, pos, scope)
	case *rex.Lookahead:
		return in.evalLookahead(e, pos, scope)
	case *rex.NegLookahead:
		return in.evalNegLookahead(e, pos, scope)
	case *rex.Descent:
		return in.evalDescent(e, pos, scope)
	}
	//
	return nil, pos, false, errMalformedExpr(e)
}

// A reference either dispatches on a formal parameter of the enclosing rule,
// or invokes a rule of the active table.  Parameters shadow rules.
func (in *interpreter) evalRef(e *rex.Ref, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	if bound, ok := scope.lookup(e.Name); ok {
		// Parameters cannot themselves take arguments.
		if len(e.Args) != 0 {
			return nil, pos, false, errMalformedExpr(e)
		}
		// Dispatch against the caller-supplied expression.
		return in.eval(bound.expr, pos, bound.scope)
	}
	//
	return in.invoke(e.Name, e.Args, pos, scope)
}

// Ordered choice: try each alternative in turn, returning the first success.
// Never longest-match.
func (in *interpreter) evalChoice(e *rex.Choice, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	for _, alternative := range e.Exprs {
		value, next, ok, err := in.eval(alternative, pos, scope)
		//
		if err != nil {
			return nil, pos, false, err
		} else if ok {
			return value, next, true, nil
		}
	}
	//
	return nil, pos, false, nil
}

// Ordered sequence: evaluate left to right, threading the cursor, and yield
// the ordered list of child values.
func (in *interpreter) evalSequence(e *rex.Sequence, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	var (
		values = make([]seq.Value, 0, len(e.Exprs))
		cursor = pos
	)
	//
	for _, element := range e.Exprs {
		value, next, ok, err := in.eval(element, cursor, scope)
		//
		if err != nil {
			return nil, pos, false, err
		} else if !ok {
			// Restore entry cursor
			return nil, pos, false, nil
		}
		//
		values = append(values, value)
		cursor = next
	}
	//
	return seq.NewList(values), cursor, true, nil
}

// Unordered sequence: each element must succeed exactly once, in any order.
// At each step the first not-yet-matched element which succeeds at the
// current cursor is accepted.  Values are yielded in declaration order.
func (in *interpreter) evalPermutation(e *rex.Permutation, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	var (
		n      = len(e.Exprs)
		values = make([]seq.Value, n)
		done   = make([]bool, n)
		cursor = pos
	)
	//
	for step := 0; step < n; step++ {
		matched := false
		//
		for i, element := range e.Exprs {
			if done[i] {
				continue
			}
			//
			value, next, ok, err := in.eval(element, cursor, scope)
			//
			if err != nil {
				return nil, pos, false, err
			} else if ok {
				values[i] = value
				done[i] = true
				cursor = next
				matched = true

				break
			}
		}
		//
		if !matched {
			return nil, pos, false, nil
		}
	}
	//
	return seq.NewList(values), cursor, true, nil
}

// Negation: succeeds when the operand fails at a readable position,
// consuming and yielding the item under the cursor.
func (in *interpreter) evalNegation(e *rex.Negation, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	if !pos.Valid(in.input) {
		return nil, pos, false, nil
	}
	//
	if _, _, ok, err := in.eval(e.Expr, pos, scope); err != nil {
		return nil, pos, false, err
	} else if ok {
		return nil, pos, false, nil
	}
	//
	return pos.Item(in.input), pos.Step(1), true, nil
}

// Repetition: greedy, with no backtracking across the repetition.  An inner
// success which fails to advance the cursor terminates the loop, preventing
// live-lock on zero-consumption operands.
func (in *interpreter) evalRepetition(e *rex.Repetition, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	if e.Min < 0 || (e.Max >= 0 && e.Max < e.Min) {
		return nil, pos, false, errIllegalRange(e.Min, e.Max)
	}
	//
	var (
		values []seq.Value
		cursor = pos
	)
	//
	for e.Max < 0 || len(values) < e.Max {
		value, next, ok, err := in.eval(e.Expr, cursor, scope)
		//
		if err != nil {
			return nil, pos, false, err
		} else if !ok || next.Equal(cursor) {
			break
		}
		//
		values = append(values, value)
		cursor = next
	}
	//
	if len(values) < e.Min {
		return nil, pos, false, nil
	}
	//
	return seq.NewList(values), cursor, true, nil
}

// Option: always succeeds; the cursor advances only on an inner match.
func (in *interpreter) evalOption(e *rex.Option, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	value, next, ok, err := in.eval(e.Expr, pos, scope)
	//
	if err != nil {
		return nil, pos, false, err
	} else if ok {
		return value, next, true, nil
	}
	//
	return seq.NewNull(), pos, true, nil
}

// Look-ahead: succeeds when the operand matches, never consuming input.
func (in *interpreter) evalLookahead(e *rex.Lookahead, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	value, _, ok, err := in.eval(e.Expr, pos, scope)
	//
	if err != nil {
		return nil, pos, false, err
	} else if !ok {
		return nil, pos, false, nil
	}
	//
	return value, pos, true, nil
}

// Negative look-ahead: succeeds when the operand fails at a readable
// position, yielding the item under the cursor without consuming it.
func (in *interpreter) evalNegLookahead(e *rex.NegLookahead, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	if !pos.Valid(in.input) {
		return nil, pos, false, nil
	}
	//
	if _, _, ok, err := in.eval(e.Expr, pos, scope); err != nil {
		return nil, pos, false, err
	} else if ok {
		return nil, pos, false, nil
	}
	//
	return pos.Item(in.input), pos, true, nil
}

// Typed descent: the current element must be a sub-sequence of the required
// kind, and the operand must match its entire contents.
func (in *interpreter) evalDescent(e *rex.Descent, pos seq.Cursor, scope *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	if !pos.Valid(in.input) {
		return nil, pos, false, nil
	}
	//
	item := pos.Item(in.input)
	// Check the element has the required kind.
	switch e.Kind {
	case rex.IntoList:
		if item.AsList() == nil {
			return nil, pos, false, nil
		}
	case rex.IntoString:
		if item.AsString() == nil {
			return nil, pos, false, nil
		}
	case rex.IntoVector:
		if item.AsVector() == nil {
			return nil, pos, false, nil
		}
	}
	//
	sub := item.(seq.Sequence)
	// Match against the contents of the sub-sequence.
	value, next, ok, err := in.eval(e.Expr, pos.Descend(), scope)
	//
	if err != nil {
		return nil, pos, false, err
	}
	// Require the entire sub-sequence to have been consumed.
	if !ok || next.Depth() != pos.Depth()+1 || next.Offset() != sub.Len() {
		return nil, pos, false, nil
	}
	//
	return value, pos.Step(1), true, nil
}

// Invoke a named rule: engage the left-recursion guard and trace hook, bind
// arguments, create the lexical frame, run the body and then the pipeline.
func (in *interpreter) invoke(name string, args []rex.Expr, pos seq.Cursor, caller *callScope) (seq.Value, seq.Cursor, bool, *Error) {
	rule, ok := in.rules.rules[name]
	//
	if !ok {
		return nil, pos, false, errUnknownRule(name)
	} else if len(args) != len(rule.params) {
		return nil, pos, false, errArityMismatch(name, len(rule.params), len(args))
	}
	// Bind arguments against the calling scope.
	callee := bindArgs(rule, args, caller)
	// Engage left-recursion guard.
	if err := in.guard.enter(name, pos); err != nil {
		return nil, pos, false, err
	}
	// Disengage on all exit paths, including errors.
	defer in.guard.exit(name)
	// Engage trace hook.
	scope := in.trace.enter(name, pos)
	defer scope.close()
	// Create fresh lexical bindings.
	in.env.push(rule.locals)
	defer in.env.pop()
	// Run the body.
	value, next, ok, err := in.eval(rule.body, pos, callee)
	//
	if err != nil {
		return nil, pos, false, err
	}
	// Run the pipeline; a veto turns success into failure.
	if ok {
		value, ok = runPipeline(rule.pipeline, value, in.env)
	}
	//
	if !ok {
		scope.fail()
		// Restore entry cursor
		return nil, pos, false, nil
	}
	//
	scope.succeed(value, next)
	//
	return value, next, true, nil
}

// Bind argument expressions to the formal parameters of a rule.  A bare
// reference naming a formal parameter of the caller is forwarded (passing the
// caller's own binding through); anything else is bound as-is together with
// the calling scope.
func bindArgs(rule *Rule, args []rex.Expr, caller *callScope) *callScope {
	if len(rule.params) == 0 {
		return nil
	}
	//
	params := make(map[string]boundArg, len(args))
	//
	for i, arg := range args {
		bound := boundArg{arg, caller}
		//
		if ref, ok := arg.(*rex.Ref); ok && len(ref.Args) == 0 {
			if forwarded, ok := caller.lookup(ref.Name); ok {
				bound = forwarded
			}
		}
		//
		params[rule.params[i]] = bound
	}
	//
	return &callScope{params}
}
