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
package seq

import (
	"strconv"
	"strings"
)

// Cursor denotes a position within a (possibly nested) input sequence.  It is
// a non-empty path of indices: each index but the last descends into a
// sub-sequence, whilst the last addresses a position within the deepest
// sequence reached.  The last index may sit one past the final element,
// representing end-of-sequence (which is not valid for reading).
//
// Cursors are value-semantic.  Every operation returns a fresh cursor and
// never mutates its receiver, which is what lets combinators discard a
// tentative cursor on failure rather than undoing side effects.
type Cursor struct {
	path []int
}

// NewCursor constructs a cursor addressing a given offset within the
// top-level sequence.
func NewCursor(offset int) Cursor {
	return Cursor{[]int{offset}}
}

// Depth returns the number of indices making up this cursor.
func (p Cursor) Depth() int {
	return len(p.path)
}

// Offset returns the last index of this cursor, i.e. its position within the
// deepest sequence reached.
func (p Cursor) Offset() int {
	return p.path[len(p.path)-1]
}

// Step returns a cursor with the last index advanced by n.
func (p Cursor) Step(n int) Cursor {
	q := p.clone()
	q.path[len(q.path)-1] += n
	//
	return q
}

// Descend returns a cursor addressing the first position inside the element
// under this cursor.
func (p Cursor) Descend() Cursor {
	q := make([]int, len(p.path)+1)
	copy(q, p.path)
	//
	return Cursor{q}
}

// Ascend returns a cursor addressing the position after the sub-sequence this
// cursor is inside.  It must not be applied to a top-level cursor.
func (p Cursor) Ascend() Cursor {
	if len(p.path) == 1 {
		panic("cannot ascend from top-level cursor")
	}
	//
	q := make([]int, len(p.path)-1)
	copy(q, p.path[:len(p.path)-1])
	q[len(q)-1]++
	//
	return Cursor{q}
}

// Equal checks whether two cursors denote the same position.
func (p Cursor) Equal(other Cursor) bool {
	if len(p.path) != len(other.path) {
		return false
	}
	//
	for i := range p.path {
		if p.path[i] != other.path[i] {
			return false
		}
	}
	//
	return true
}

// Valid checks whether this cursor addresses a readable element of the given
// input.  End-of-sequence positions are representable but not valid.
func (p Cursor) Valid(root Value) bool {
	container, ok := p.Container(root)
	if !ok {
		return false
	}
	//
	offset := p.Offset()
	//
	return offset >= 0 && offset < container.Len()
}

// Item returns the element under this cursor.  It must not be applied to an
// invalid cursor.
func (p Cursor) Item(root Value) Value {
	container, ok := p.Container(root)
	if !ok {
		panic("item of invalid cursor")
	}
	//
	return container.Get(p.Offset())
}

// LengthAt returns the length of the sub-sequence containing the element
// under this cursor (i.e. one level up from the deepest index).
func (p Cursor) LengthAt(root Value) int {
	container, ok := p.Container(root)
	if !ok {
		panic("length at invalid cursor")
	}
	//
	return container.Len()
}

// Container resolves the sequence containing the element under this cursor,
// by descending through every index but the last.  It fails if any such index
// does not address a nested sequence of the input.
func (p Cursor) Container(root Value) (Sequence, bool) {
	container, ok := root.(Sequence)
	if !ok {
		return nil, false
	}
	//
	for _, i := range p.path[:len(p.path)-1] {
		if i < 0 || i >= container.Len() {
			return nil, false
		}
		// Descend one level
		if container, ok = container.Get(i).(Sequence); !ok {
			return nil, false
		}
	}
	//
	return container, true
}

func (p Cursor) String() string {
	var s strings.Builder
	//
	s.WriteString("[")

	for i, n := range p.path {
		if i != 0 {
			s.WriteString(" ")
		}

		s.WriteString(strconv.Itoa(n))
	}

	s.WriteString("]")

	return s.String()
}

func (p Cursor) clone() Cursor {
	q := make([]int, len(p.path))
	copy(q, p.path)
	//
	return Cursor{q}
}
