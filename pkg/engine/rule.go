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

// Package engine implements the rule-expression interpreter: the rule table,
// the combinator semantics, the result-processing pipeline, the
// left-recursion guard, per-rule tracing and the top-level parse driver.
package engine

import (
	"io"
	"os"

	"github.com/seqex/go-seqex/pkg/rex"
	log "github.com/sirupsen/logrus"
)

// Rule is a named grammar production: a body expression together with its
// formal parameters, variable declarations and result-processing pipeline.
type Rule struct {
	// Name of this rule within its table.
	name string
	// Formal parameters, bound at call time to caller-supplied expressions.
	params []string
	// Body expression.
	body rex.Expr
	// Lexical bindings, created fresh on each entry to this rule.
	locals []Binding
	// Inherited bindings, expected to have been created by some caller.
	externals []string
	// Result-processing pipeline applied to each successful match.
	pipeline []Transform
}

// Name returns the name of this rule.
func (p *Rule) Name() string {
	return p.name
}

// Params returns the formal parameters of this rule.
func (p *Rule) Params() []string {
	return p.params
}

// Body returns the body expression of this rule.
func (p *Rule) Body() rex.Expr {
	return p.body
}

// RuleOptions configures the optional aspects of a rule definition.
type RuleOptions struct {
	// Lexical bindings, created fresh on each entry to the rule.
	Locals []Binding
	// Names of inherited bindings the body may read and write.
	Externals []string
	// Result-processing pipeline.
	Pipeline []Transform
}

// RuleSet is a table of rules, together with their trace levels.  A RuleSet
// must not be shared between concurrent parses; distinct RuleSets are
// independent.
type RuleSet struct {
	rules  map[string]*Rule
	traces map[string]TraceLevel
	// Destination for trace output.
	traceOut io.Writer
}

// NewRuleSet constructs an empty rule table.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		rules:    make(map[string]*Rule),
		traces:   make(map[string]TraceLevel),
		traceOut: os.Stdout,
	}
}

// Define registers a rule under a given name, replacing any previous
// definition.
func (p *RuleSet) Define(name string, params []string, body rex.Expr, opts RuleOptions) *Rule {
	if _, ok := p.rules[name]; ok {
		log.Debugf("redefining rule %q", name)
	}
	//
	rule := &Rule{
		name:      name,
		params:    params,
		body:      body,
		locals:    opts.Locals,
		externals: opts.Externals,
		pipeline:  opts.Pipeline,
	}
	//
	p.rules[name] = rule
	//
	return rule
}

// Rule looks up a rule by name.
func (p *RuleSet) Rule(name string) (*Rule, bool) {
	rule, ok := p.rules[name]
	return rule, ok
}

// TraceRule enables tracing for a given rule.  When recursive is set, every
// rule reached whilst the given rule is active is traced as well.
func (p *RuleSet) TraceRule(name string, recursive bool) {
	if recursive {
		p.traces[name] = TraceRecursive
	} else {
		p.traces[name] = TraceLocal
	}
}

// UntraceRule disables tracing for a given rule.
func (p *RuleSet) UntraceRule(name string) {
	delete(p.traces, name)
}

// SetTraceOutput redirects trace output, which otherwise goes to stdout.
func (p *RuleSet) SetTraceOutput(out io.Writer) {
	p.traceOut = out
}

// ===================================================================
// Default table
// ===================================================================

// The process-wide rule table used by the package-level operations.
var defaultRules = NewRuleSet()

// Default returns the active process-wide rule table.
func Default() *RuleSet {
	return defaultRules
}

// Define registers a rule in the active process-wide rule table.
func Define(name string, params []string, body rex.Expr, opts RuleOptions) *Rule {
	return defaultRules.Define(name, params, body, opts)
}

// TraceRule enables tracing for a rule of the active process-wide table.
func TraceRule(name string, recursive bool) {
	defaultRules.TraceRule(name, recursive)
}

// UntraceRule disables tracing for a rule of the active process-wide table.
func UntraceRule(name string) {
	defaultRules.UntraceRule(name)
}

// WithLocalRules executes a given body against fresh (empty) rule and trace
// tables, shadowing the process-wide table for the duration.  Definitions
// made inside the body do not pollute global state.
func WithLocalRules(body func(*RuleSet)) {
	saved := defaultRules
	defaultRules = NewRuleSet()
	// Restore on all paths
	defer func() { defaultRules = saved }()
	//
	body(defaultRules)
}
