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
	"io"
	"strings"

	"github.com/seqex/go-seqex/pkg/seq"
)

// TraceLevel determines how rule invocations are reported.
type TraceLevel uint8

const (
	// TraceOff disables tracing for a rule.
	TraceOff TraceLevel = iota
	// TraceLocal traces invocations of this rule only.
	TraceLocal
	// TraceRecursive traces invocations of this rule and of every rule
	// reached whilst it is active.
	TraceRecursive
)

// tracer reports rule calls and returns during a single parse.  Depth and the
// recursive-trace flag are dynamically scoped: they follow the call structure
// of the parse, not any lexical structure of the grammar.
type tracer struct {
	out io.Writer
	// Trace levels, shared with the rule table.
	levels map[string]TraceLevel
	// Current call depth amongst traced rules.
	depth int
	// Number of active rules traced recursively.  Whilst positive, every rule
	// is traced.
	recursive int
}

func newTracer(out io.Writer, levels map[string]TraceLevel) *tracer {
	return &tracer{out: out, levels: levels}
}

// traceScope captures one traced rule invocation.  At most one of succeed or
// fail reports its outcome; close unwinds the counters without reporting, and
// does nothing once succeed or fail has run (on the error path it is the only
// call).
type traceScope struct {
	tracer *tracer
	name   string
	entry  seq.Cursor
	active bool
	// Whether this invocation switched on recursive tracing.
	recursive bool
	closed    bool
}

// Enter a rule at a given cursor, reporting the call when the rule is traced.
func (p *tracer) enter(name string, entry seq.Cursor) traceScope {
	scope := traceScope{
		tracer:    p,
		name:      name,
		entry:     entry,
		active:    p.recursive > 0 || p.levels[name] >= TraceLocal,
		recursive: p.levels[name] == TraceRecursive,
	}
	//
	if scope.active {
		p.printf("%s %s?", name, entry)
		p.depth++
	}
	//
	if scope.recursive {
		p.recursive++
	}
	//
	return scope
}

// Report a successful return, including the cursor movement and the value
// produced.
func (p *traceScope) succeed(value seq.Value, exit seq.Cursor) {
	p.unwind()
	//
	if p.active {
		p.tracer.printf("%s %s→%s → %s", p.name, p.entry, exit, value)
	}
}

// Report a failed return.
func (p *traceScope) fail() {
	p.unwind()
	//
	if p.active {
		p.tracer.printf("%s -|", p.name)
	}
}

// Unwind the scope without reporting.  Safe to call after succeed or fail,
// making it suitable for deferred cleanup on error paths.
func (p *traceScope) close() {
	p.unwind()
}

func (p *traceScope) unwind() {
	if p.closed {
		return
	}
	//
	p.closed = true
	//
	if p.active {
		p.tracer.depth--
	}
	//
	if p.recursive {
		p.tracer.recursive--
	}
}

func (p *tracer) printf(format string, args ...any) {
	indent := strings.Repeat(" ", p.depth)
	//
	fmt.Fprintf(p.out, "%s%d: %s\n", indent, p.depth, fmt.Sprintf(format, args...))
}
