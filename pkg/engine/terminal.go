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

// Match a literal against the input at a given cursor.  Symbols, characters
// and numbers compare against the item under the cursor and consume one
// position.  String and vector literals have two cases: inside a sequence of
// their own kind they match contiguously, element for element; anywhere else
// they compare against the item as a whole.
func (in *interpreter) matchLiteral(literal seq.Value, pos seq.Cursor) (seq.Value, seq.Cursor, bool) {
	switch v := literal.(type) {
	case *seq.Str:
		if container, ok := pos.Container(in.input); ok && container.AsString() != nil {
			return in.matchRun(v, container, pos)
		}
	case *seq.Vec:
		if container, ok := pos.Container(in.input); ok && container.AsVector() != nil {
			return in.matchRun(v, container, pos)
		}
	}
	// Whole-item comparison
	if pos.Valid(in.input) && seq.Equal(literal, pos.Item(in.input)) {
		return pos.Item(in.input), pos.Step(1), true
	}
	//
	return nil, pos, false
}

// Match a string or vector literal as a contiguous run of elements inside a
// sequence of the same kind, consuming one position per element.  The
// comparison is bit-exact.
func (in *interpreter) matchRun(literal seq.Sequence, container seq.Sequence, pos seq.Cursor) (seq.Value, seq.Cursor, bool) {
	var (
		offset = pos.Offset()
		n      = literal.Len()
	)
	//
	if offset < 0 || offset+n > container.Len() {
		return nil, pos, false
	}
	//
	for i := 0; i < n; i++ {
		if !seq.Equal(literal.Get(i), container.Get(offset+i)) {
			return nil, pos, false
		}
	}
	//
	return literal, pos.Step(n), true
}

// Match a wildcard at a given cursor, consuming one position when the item
// under the cursor passes the corresponding kind test.
func (in *interpreter) matchWildcard(kind rex.WildcardKind, pos seq.Cursor) (seq.Value, seq.Cursor, bool) {
	if !pos.Valid(in.input) {
		return nil, pos, false
	}
	//
	item := pos.Item(in.input)
	//
	if !acceptsKind(kind, item) {
		return nil, pos, false
	}
	//
	return item, pos.Step(1), true
}

func acceptsKind(kind rex.WildcardKind, item seq.Value) bool {
	switch kind {
	case rex.AnyForm:
		return true
	case rex.AnyChar:
		return item.AsChar() != nil
	case rex.AnyByte:
		number := item.AsNumber()
		return number != nil && number.IsByte()
	case rex.AnySymbol:
		return item.AsSymbol() != nil
	case rex.AnyNumber:
		return item.AsNumber() != nil
	case rex.AnyString:
		return item.AsString() != nil
	case rex.AnyList:
		return item.AsList() != nil
	case rex.AnyVector:
		return item.AsVector() != nil
	}
	//
	return false
}
