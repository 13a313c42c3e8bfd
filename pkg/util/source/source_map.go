// Copyright Consensys Software Inc.
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
package source

import (
	"fmt"
)

// Span is a half-open range [start, end) of character offsets within a source
// file.  Offsets are retained (rather than slicing the text) so that the
// enclosing lines can be recovered when reporting an error.
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span, panicking if it would end before it starts.
func NewSpan(start int, end int) Span {
	if start > end {
		panic(fmt.Sprintf("invalid span [%d,%d)", start, end))
	}
	//
	return Span{start, end}
}

// Start returns the offset of the first character covered.
func (p *Span) Start() int {
	return p.start
}

// End returns the offset one past the last character covered.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered.
func (p *Span) Length() int {
	return p.end - p.start
}

// Map records where each node of some tree (e.g. an s-expression, a term or a
// database item) originated within a single source file.  Nodes are keyed by
// identity, hence each node can be recorded at most once.
type Map[T comparable] struct {
	spans   map[T]Span
	srcfile *File
}

// NewSourceMap constructs an empty map over a given file.
func NewSourceMap[T comparable](srcfile *File) *Map[T] {
	return &Map[T]{make(map[T]Span), srcfile}
}

// Source returns the file whose nodes this map locates.
func (p *Map[T]) Source() *File {
	return p.srcfile
}

// Put records the origin of a node, panicking if it was already recorded.
func (p *Map[T]) Put(node T, span Span) {
	if _, ok := p.spans[node]; ok {
		panic(fmt.Sprintf("node already located: %v", any(node)))
	}
	//
	p.spans[node] = span
}

// Has checks whether the origin of a node is known.
func (p *Map[T]) Has(node T) bool {
	_, ok := p.spans[node]
	return ok
}

// Get returns the origin of a node, panicking if it is unknown.
func (p *Map[T]) Get(node T) Span {
	span, ok := p.spans[node]
	//
	if !ok {
		panic(fmt.Sprintf("node not located: %v", any(node)))
	}
	//
	return span
}

// SyntaxError constructs an error highlighting the origin of a node.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	return p.srcfile.SyntaxError(p.Get(node), msg)
}
