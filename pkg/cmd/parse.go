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
package cmd

import (
	"fmt"
	"os"

	"github.com/seqex/go-seqex/pkg/engine"
	"github.com/seqex/go-seqex/pkg/grammar"
	"github.com/seqex/go-seqex/pkg/rex"
	"github.com/seqex/go-seqex/pkg/seq"
	"github.com/seqex/go-seqex/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] grammar_file input",
	Short: "match an input sequence against a grammar.",
	Long: `Match a given input against the rules of a given grammar
	file.  By default the input is treated as a character string;
	with --sexp it is read as a nested sequence.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		rule := GetString(cmd, "rule")
		junk := GetFlag(cmd, "junk")
		start := GetInt(cmd, "start")
		end := GetInt(cmd, "end")
		// Read in grammar file
		rules := readGrammarFile(args[0])
		// Enable any requested traces
		for _, name := range GetStringArray(cmd, "trace") {
			rules.TraceRule(name, GetFlag(cmd, "trace-all"))
		}
		// Construct the input sequence
		input := readInput(cmd, args[1])
		//
		options := engine.Options{Start: start, End: end, JunkAllowed: junk}
		// Match!
		value, cursor, ok, err := rules.Match(rex.NewRef(rule), input, &options)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if !ok {
			fmt.Println("rejected")
			os.Exit(1)
		}
		//
		if junk {
			log.Debugf("matching stopped at %s", cursor)
		}
		//
		fmt.Println(render(value))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().String("rule", "main", "Set start rule")
	parseCmd.Flags().Int("start", 0, "Set start offset within the input")
	parseCmd.Flags().Int("end", 0, "Set required end offset within the input")
	parseCmd.Flags().Bool("junk", false, "Permit unconsumed input after the match")
	parseCmd.Flags().Bool("sexp", false, "Read the input as a nested sequence")
	parseCmd.Flags().StringArray("trace", nil, "Trace a given rule")
	parseCmd.Flags().Bool("trace-all", false, "Trace all rules reached from traced rules")
}

// Parse a grammar file into a rule table, reporting any syntax errors.
func readGrammarFile(filename string) *engine.RuleSet {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	rules := engine.NewRuleSet()
	//
	if errs := grammar.LoadRules(rules, source.NewSourceFile(filename, bytes)); len(errs) != 0 {
		for _, e := range errs {
			printSyntaxError(&e)
		}
		//
		os.Exit(2)
	}
	//
	return rules
}

// Construct the input sequence, either as a character string or (with --sexp)
// by reading the argument as a nested sequence.
func readInput(cmd *cobra.Command, arg string) seq.Value {
	if !GetFlag(cmd, "sexp") {
		return seq.NewString(arg)
	}
	//
	input, err := grammar.ParseValue(arg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return input
}

// Report a syntax error, along with the line it arose on.
func printSyntaxError(err *source.SyntaxError) {
	line := err.FirstEnclosingLine()
	//
	fmt.Println(err)
	fmt.Println(line.String())
}

// Render a match result, truncating it when it does not fit the terminal.
func render(value seq.Value) string {
	text := value.String()
	//
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && len(text) > width && width > 3 {
			return text[:width-3] + "..."
		}
	}
	//
	return text
}
