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
	"unicode"

	"github.com/seqex/go-seqex/pkg/util/source"
)

// Parse a given source file into an S-expression, or return an error if the
// text is malformed.  A source map is also returned for error reporting.
func Parse(s *source.File) (SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	// Parse the input
	sExp, err := p.Parse()
	// Skip over any trailing whitespace
	p.SkipWhiteSpace()
	// Sanity check everything was parsed
	if err == nil && p.index != len(p.text) {
		return nil, nil, p.error("unexpected remainder")
	}
	// Done
	return sExp, p.SourceMap(), err
}

// ParseAll converts a given source file into zero or more S-expressions, or
// returns an error if the text is malformed.  The key distinction from Parse
// is that this function continues parsing after the first S-expression is
// encountered.
func ParseAll(s *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	p := NewParser(s)
	//
	terms := make([]SExp, 0)
	// Parse the input
	for {
		term, err := p.Parse()
		// Sanity check everything was parsed
		if err != nil {
			return terms, p.srcmap, err
		} else if term == nil {
			// EOF reached
			return terms, p.srcmap, nil
		}

		terms = append(terms, term)
	}
}

// Parser represents a parser in the process of parsing a given text into one
// or more S-expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Cache (for simplicity)
	text []rune
	// Determine current position within text
	index int
	// Mapping from constructed S-Expressions to their spans in the original text.
	srcmap *source.Map[SExp]
}

// NewParser constructs a new instance of Parser
func NewParser(srcfile *source.File) *Parser {
	return &Parser{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		index:   0,
		srcmap:  source.NewSourceMap[SExp](*srcfile),
	}
}

// SourceMap returns the internal source map constructed during parsing.
// Using this one can determine, for each SExp, where in the original text it
// originated.  This is helpful, for example, when reporting syntax errors.
func (p *Parser) SourceMap() *source.Map[SExp] {
	return p.srcmap
}

// Parse the next S-Expression in the text, or produce an error.  A nil term
// (without error) indicates the end of the text was reached.
func (p *Parser) Parse() (SExp, *source.SyntaxError) {
	var (
		term SExp
		err  *source.SyntaxError
	)
	// Skip over any whitespace.  This is important to get the correct starting
	// point for this term.
	p.SkipWhiteSpace()
	// Record start of this term
	start := p.index
	// Catch end-of-file
	if p.index == len(p.text) {
		return nil, nil
	}
	// Dispatch on the leading character
	switch p.text[p.index] {
	case ')':
		return nil, p.error("unexpected end-of-list")
	case ']':
		return nil, p.error("unexpected end-of-array")
	case '(':
		p.index++
		//
		if term, err = p.parseSequence(')'); err != nil {
			return nil, err
		}
	case '[':
		p.index++
		//
		if term, err = p.parseArray(); err != nil {
			return nil, err
		}
	case '\'':
		p.index++
		//
		if term, err = p.parseQuoted(); err != nil {
			return nil, err
		}
	case '"':
		if term, err = p.parseString(); err != nil {
			return nil, err
		}
	default:
		if term, err = p.parseAtom(); err != nil {
			return nil, err
		}
	}
	// Register item in source map
	p.srcmap.Put(term, source.NewSpan(start, p.index))
	// Done
	return term, nil
}

// SkipWhiteSpace skips over any whitespace, including comments.
func (p *Parser) SkipWhiteSpace() {
	for p.index < len(p.text) && (unicode.IsSpace(p.text[p.index]) || p.text[p.index] == ';') {
		// Skip comment
		if p.text[p.index] == ';' {
			i := len(p.text)
			//
			for j := p.index; j < i; j++ {
				if p.text[j] == '\n' {
					i = j + 1
					break
				}
			}
			// Skip comment
			p.index = i
		} else {
			// skip space
			p.index++
		}
	}
}

// Parse the elements of a list up to (and including) a given terminator.
func (p *Parser) parseSequence(terminator rune) (SExp, *source.SyntaxError) {
	var elements []SExp
	//
	for {
		p.SkipWhiteSpace()
		// Catch end-of-file
		if p.index == len(p.text) {
			return nil, p.error("unexpected end-of-file")
		} else if p.text[p.index] == terminator {
			// Consume terminator
			p.index++
			break
		}
		// Parse next element
		element, err := p.Parse()
		if err != nil {
			return nil, err
		}
		// Continue around!
		elements = append(elements, element)
	}
	//
	return &List{elements}, nil
}

func (p *Parser) parseArray() (SExp, *source.SyntaxError) {
	term, err := p.parseSequence(']')
	// Check for error
	if err != nil {
		return nil, err
	}
	// Rebuild as array
	return &Array{term.AsList().Elements}, nil
}

// Parse the term following a quote.  Only symbols may be quoted.
func (p *Parser) parseQuoted() (SExp, *source.SyntaxError) {
	term, err := p.Parse()
	//
	if err != nil {
		return nil, err
	} else if term == nil {
		return nil, p.error("unexpected end-of-file")
	} else if term.AsSymbol() == nil {
		return nil, p.error("only symbols can be quoted")
	}
	//
	return &Quoted{term}, nil
}

// Parse a double-quoted string literal, handling the escapes \" \\ \n \t.
func (p *Parser) parseString() (SExp, *source.SyntaxError) {
	var runes []rune
	// Consume opening quote
	p.index++
	//
	for p.index < len(p.text) {
		c := p.text[p.index]
		//
		switch c {
		case '"':
			// Consume closing quote
			p.index++
			return &SString{string(runes)}, nil
		case '\\':
			r, err := p.parseEscape()
			if err != nil {
				return nil, err
			}
			//
			runes = append(runes, r)
		default:
			runes = append(runes, c)
			p.index++
		}
	}
	//
	return nil, p.error("unterminated string literal")
}

func (p *Parser) parseEscape() (rune, *source.SyntaxError) {
	// Consume backslash
	p.index++
	//
	if p.index == len(p.text) {
		return 0, p.error("unterminated string literal")
	}
	//
	c := p.text[p.index]
	p.index++
	//
	switch c {
	case '"', '\\':
		return c, nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	}
	//
	return 0, p.error("unknown escape sequence")
}

// Parse a symbol or a character literal.  Character literals begin with the
// two characters #\ and cover either a single character or one of the names
// space, tab and newline.
func (p *Parser) parseAtom() (SExp, *source.SyntaxError) {
	if p.lookingAt("#\\") {
		return p.parseChar()
	}
	// Symbol
	token := p.parseToken()
	//
	return &Symbol{string(token)}, nil
}

func (p *Parser) parseChar() (SExp, *source.SyntaxError) {
	// Consume leading #\
	p.index += 2
	//
	if p.index == len(p.text) {
		return nil, p.error("unterminated character literal")
	}
	// Consume the character itself, whatever it is.
	first := p.text[p.index]
	p.index++
	// Absorb any trailing token characters to support named characters.
	rest := p.parseToken()
	//
	if len(rest) == 0 {
		return &Char{first}, nil
	}
	// Named character
	switch string(first) + string(rest) {
	case "space":
		return &Char{' '}, nil
	case "tab":
		return &Char{'\t'}, nil
	case "newline":
		return &Char{'\n'}, nil
	}
	//
	return nil, p.error("unknown character name")
}

// Parse a maximal run of token characters, stopping at whitespace, brackets,
// quotes or a comment.
func (p *Parser) parseToken() []rune {
	i := len(p.text)
	//
	for j := p.index; j < i; j++ {
		if isDelimiter(p.text[j]) {
			i = j
			break
		}
	}
	// Reached end of token
	token := p.text[p.index:i]
	p.index = i

	return token
}

func (p *Parser) lookingAt(s string) bool {
	for i, c := range s {
		if p.index+i >= len(p.text) || p.text[p.index+i] != c {
			return false
		}
	}

	return true
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '"', '\'', ';':
		return true
	}

	return unicode.IsSpace(c)
}

// Construct a parser error at the current position in the input stream.
func (p *Parser) error(msg string) *source.SyntaxError {
	end := p.index + 1
	if end > len(p.text) {
		end = len(p.text)
	}
	//
	span := source.NewSpan(p.index, end)
	//
	return p.srcfile.SyntaxError(span, msg)
}
