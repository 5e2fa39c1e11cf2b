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
	"errors"
	"fmt"
	"strconv"

	"github.com/seqex/go-seqex/pkg/seq"
	"github.com/seqex/go-seqex/pkg/sexp"
	"github.com/seqex/go-seqex/pkg/util/source"
)

// ParseValue parses a given string into an input sequence (or atom).  Lists
// become nested lists, arrays become numeric vectors, and the remaining
// atoms become symbols, numbers, strings and characters as appropriate.
func ParseValue(text string) (seq.Value, error) {
	srcfile := source.NewSourceFile("<value>", []byte(text))
	//
	term, _, err := sexp.Parse(srcfile)
	//
	if err != nil {
		return nil, err
	} else if term == nil {
		return nil, errors.New("empty value")
	}
	//
	return ValueOf(term)
}

// ValueOf converts an S-expression into the runtime value it denotes.
func ValueOf(term sexp.SExp) (seq.Value, error) {
	switch e := term.(type) {
	case *sexp.Symbol:
		if e.Value == "nil" {
			return seq.NewNull(), nil
		} else if number, err := strconv.ParseFloat(e.Value, 64); err == nil {
			return seq.NewNumber(number), nil
		}
		//
		return seq.NewSymbol(e.Value), nil
	case *sexp.Quoted:
		return seq.NewSymbol(e.Inner.AsSymbol().Value), nil
	case *sexp.SString:
		return seq.NewString(e.Value), nil
	case *sexp.Char:
		return seq.NewChar(e.Value), nil
	case *sexp.Array:
		elements, err := numbersOf(e)
		if err != nil {
			return nil, err
		}
		//
		return seq.NewVector(elements), nil
	case *sexp.List:
		elements := make([]seq.Value, e.Len())
		//
		for i := range elements {
			element, err := ValueOf(e.Get(i))
			if err != nil {
				return nil, err
			}
			//
			elements[i] = element
		}
		//
		return seq.NewList(elements), nil
	}
	//
	return nil, fmt.Errorf("invalid value (%s)", term)
}
