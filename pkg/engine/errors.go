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
	"fmt"

	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/seq"
)

// ErrorKind identifies the fatal conditions which abort a parse.  Match
// failure is never one of them: failure is an ordinary value which propagates
// silently through combinators.
type ErrorKind uint8

const (
	// UnknownRule indicates a reference to a rule missing from the active
	// rule table.
	UnknownRule ErrorKind = iota
	// MalformedExpr indicates a rule expression the interpreter cannot make
	// sense of, such as a reference with the wrong number of arguments.
	MalformedExpr
	// IllegalRange indicates a repetition whose bounds are not a valid range.
	IllegalRange
	// LeftRecursion indicates a rule which reached itself without any
	// intervening cursor advance.
	LeftRecursion
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownRule:
		return "unknown rule"
	case MalformedExpr:
		return "malformed rule expression"
	case IllegalRange:
		return "illegal repetition range"
	case LeftRecursion:
		return "left recursion"
	}

	return "??"
}

// Error is a fatal parsing error.  It aborts the entire parse and surfaces to
// the caller of Parse as a Go error.
type Error struct {
	// Kind of this error.
	Kind ErrorKind
	// Human-readable message.
	Msg string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ error = (*Error)(nil)

// Error implements the error interface.
func (p *Error) Error() string {
	return p.Msg
}

func errUnknownRule(name string) *Error {
	return &Error{UnknownRule, fmt.Sprintf("unknown rule %q", name)}
}

func errArityMismatch(name string, expected int, actual int) *Error {
	return &Error{MalformedExpr, fmt.Sprintf("rule %q expects %d argument(s), got %d", name, expected, actual)}
}

func errMalformedExpr(e rex.Expr) *Error {
	if e == nil {
		return &Error{MalformedExpr, "malformed rule expression (nil)"}
	}

	return &Error{MalformedExpr, fmt.Sprintf("malformed rule expression (%s)", e)}
}

func errIllegalRange(min int, max int) *Error {
	return &Error{IllegalRange, fmt.Sprintf("illegal repetition range [%d %d]", min, max)}
}

func errLeftRecursion(name string, pos seq.Cursor) *Error {
	return &Error{LeftRecursion, fmt.Sprintf("left recursion detected in rule %q at %s", name, pos)}
}
