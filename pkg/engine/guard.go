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
	"github.com/seqex/go-seqex/pkg/seq"
	"github.com/seqex/go-seqex/pkg/util/collection/stack"
)

// recursionGuard detects left recursion.  For each rule it keeps the stack of
// cursors at which that rule is currently active; re-entering a rule at the
// cursor it was last entered at means no input was consumed in between, which
// can never terminate.
type recursionGuard struct {
	active map[string]*stack.Stack[seq.Cursor]
}

func newRecursionGuard() *recursionGuard {
	return &recursionGuard{make(map[string]*stack.Stack[seq.Cursor])}
}

// Enter a rule at a given cursor, failing if this constitutes left recursion.
// Every successful enter must be balanced by exit on all paths out of the
// rule, including error paths.
func (p *recursionGuard) enter(name string, pos seq.Cursor) *Error {
	s := p.active[name]
	//
	if s == nil {
		s = stack.NewStack[seq.Cursor]()
		p.active[name] = s
	}
	//
	if !s.IsEmpty() && s.Top().Equal(pos) {
		return errLeftRecursion(name, pos)
	}
	//
	s.Push(pos)
	//
	return nil
}

// Exit the innermost activation of a given rule.
func (p *recursionGuard) exit(name string) {
	p.active[name].Pop()
}
