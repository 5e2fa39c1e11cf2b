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
	log "github.com/sirupsen/logrus"
)

// Options configures a top-level parse.
type Options struct {
	// Offset within the top-level sequence at which matching starts.
	Start int
	// Offset within the top-level sequence at which matching must finish.
	// When zero or negative, the length of the top-level sequence is used.
	End int
	// JunkAllowed accepts a match which leaves part of the input unconsumed.
	JunkAllowed bool
}

// Parse matches a start expression against an input sequence, requiring (by
// default) the input to be fully consumed.  The boolean result distinguishes
// match failure, which is not an error, from success.  A non-nil error
// indicates a fatal condition: an unknown rule, a malformed rule expression,
// an illegal repetition range, left recursion, or an input which is not a
// sequence (reported with kind MalformedExpr).
func (p *RuleSet) Parse(start rex.Expr, input seq.Value, opts *Options) (seq.Value, bool, error) {
	value, _, ok, err := p.Match(start, input, opts)
	//
	return value, ok, err
}

// Match is identical to Parse, except that it additionally exposes the final
// cursor.  This is useful with JunkAllowed, where the caller may wish to know
// how much input was consumed.
func (p *RuleSet) Match(start rex.Expr, input seq.Value, opts *Options) (seq.Value, seq.Cursor, bool, error) {
	var options Options
	//
	if opts != nil {
		options = *opts
	}
	// Seed cursor
	cursor := seq.NewCursor(options.Start)
	// Determine required end position
	top, ok := input.(seq.Sequence)
	if !ok {
		return seq.NewNull(), cursor, false, &Error{MalformedExpr, "input is not a sequence"}
	}
	//
	end := options.End
	if end <= 0 {
		end = top.Len()
	}
	//
	log.Debugf("matching %s from offset %d", start, options.Start)
	//
	in := &interpreter{
		rules: p,
		input: input,
		env:   NewEnvironment(),
		guard: newRecursionGuard(),
		trace: newTracer(p.traceOut, p.traces),
	}
	// Invoke the start expression
	value, next, ok, err := in.eval(start, cursor, nil)
	//
	if err != nil {
		return seq.NewNull(), cursor, false, err
	} else if !ok {
		return seq.NewNull(), cursor, false, nil
	}
	// Decide whether the input was sufficiently consumed.
	consumed := next.Depth() == 1 && next.Offset() == end
	//
	if !consumed && !options.JunkAllowed {
		return seq.NewNull(), cursor, false, nil
	}
	//
	return value, next, true, nil
}

// Parse matches a start expression against an input sequence using the
// active process-wide rule table.
func Parse(start rex.Expr, input seq.Value, opts *Options) (seq.Value, bool, error) {
	return defaultRules.Parse(start, input, opts)
}

// Match is identical to Parse, except that it additionally exposes the final
// cursor.  It uses the active process-wide rule table.
func Match(start rex.Expr, input seq.Value, opts *Options) (seq.Value, seq.Cursor, bool, error) {
	return defaultRules.Match(start, input, opts)
}
