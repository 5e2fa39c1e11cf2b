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

// Binding associates a variable name with its initial value.
type Binding struct {
	// Name of the variable.
	Name string
	// Initial value of the variable.
	Value seq.Value
}

// Environment holds the dynamically-scoped variables visible during a parse.
// Every rule invocation pushes a frame containing that rule's lexical
// bindings; a rule's inherited bindings resolve against whatever frame of
// some caller introduced them.  Frames are searched innermost first.
type Environment struct {
	frames *stack.Stack[map[string]seq.Value]
}

// NewEnvironment constructs an empty environment.
func NewEnvironment() *Environment {
	return &Environment{stack.NewStack[map[string]seq.Value]()}
}

// Lookup resolves a variable in the nearest enclosing frame which declares
// it, returning false if no frame does.
func (p *Environment) Lookup(name string) (seq.Value, bool) {
	for i := 0; i < p.frames.Len(); i++ {
		frame := p.frames.Peek(i)
		//
		if value, ok := frame[name]; ok {
			return value, true
		}
	}
	//
	return nil, false
}

// Set assigns a variable in the nearest enclosing frame which declares it,
// returning false if no frame does.
func (p *Environment) Set(name string, value seq.Value) bool {
	for i := 0; i < p.frames.Len(); i++ {
		frame := p.frames.Peek(i)
		//
		if _, ok := frame[name]; ok {
			frame[name] = value
			return true
		}
	}
	//
	return false
}

// Push a fresh frame containing the given bindings.
func (p *Environment) push(bindings []Binding) {
	frame := make(map[string]seq.Value, len(bindings))
	//
	for _, b := range bindings {
		frame[b.Name] = b.Value
	}
	//
	p.frames.Push(frame)
}

// Pop the innermost frame.
func (p *Environment) pop() {
	p.frames.Pop()
}
