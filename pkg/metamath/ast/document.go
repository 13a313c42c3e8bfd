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
package ast

import (
	"io"
	"strings"

	"github.com/consensys/go-mmcompose/pkg/util/source/sexp"
)

// Item is a top-level element of a database: a statement, a block or a
// segment.
type Item interface {
	// SExp converts this item into its s-expression form.
	SExp() sexp.SExp
}

// Block is a nested scope.  Floating and essential statements introduced
// within a block are only active until the end of that block.
type Block struct {
	Items []Item
}

// NewBlock constructs a new block from zero or more items.
func NewBlock(items ...Item) *Block {
	return &Block{items}
}

// SExp implementation for the Item interface.
func (b *Block) SExp() sexp.SExp {
	return sexp.NewList(append([]sexp.SExp{sexp.NewSymbol("block")}, itemsToSExp(b.Items)...))
}

// Segment tags the items it contains with a name, allowing them to be emitted
// selectively.  Segments do not introduce a scope.
type Segment struct {
	Name  string
	Items []Item
}

// NewSegment constructs a new segment from zero or more items.
func NewSegment(name string, items ...Item) *Segment {
	return &Segment{name, items}
}

// SExp implementation for the Item interface.
func (s *Segment) SExp() sexp.SExp {
	head := []sexp.SExp{sexp.NewSymbol("segment"), sexp.NewSymbol(s.Name)}
	return sexp.NewList(append(head, itemsToSExp(s.Items)...))
}

// Database is a sequence of top-level items.
type Database struct {
	Items []Item
}

// Write an item to a given writer, placing each statement on its own line and
// indenting the contents of blocks and segments.
func Write(w io.Writer, item Item) error {
	_, err := io.WriteString(w, format(item, 0))
	return err
}

func format(item Item, indent int) string {
	var (
		builder strings.Builder
		prefix  = strings.Repeat("  ", indent)
		items   []Item
	)
	//
	switch it := item.(type) {
	case *Block:
		builder.WriteString(prefix + "(block")
		items = it.Items
	case *Segment:
		builder.WriteString(prefix + "(segment " + it.Name)
		items = it.Items
	default:
		return prefix + item.SExp().String() + "\n"
	}
	//
	if len(items) == 0 {
		builder.WriteString(")\n")
		return builder.String()
	}
	//
	builder.WriteString("\n")
	//
	for _, i := range items {
		builder.WriteString(format(i, indent+1))
	}
	//
	builder.WriteString(prefix + ")\n")
	//
	return builder.String()
}

func itemsToSExp(items []Item) []sexp.SExp {
	elements := make([]sexp.SExp, len(items))
	//
	for i, item := range items {
		elements[i] = item.SExp()
	}
	//
	return elements
}

// ============================================================================
// Traversal
// ============================================================================

// EventKind identifies the kind of a traversal event.
type EventKind uint8

const (
	// EnterScope signals the start of a block.
	EnterScope EventKind = iota
	// ExitScope signals the end of a block.
	ExitScope
	// Visit signals a statement, in document order.
	Visit
)

// Event is a single step in the traversal of an item.
type Event struct {
	Kind EventKind
	// Statement being visited (only for Visit events).
	Statement *Statement
}

// Events flattens an item into the sequence of traversal events a consumer
// needs to replay it: blocks become matching EnterScope / ExitScope pairs
// around their contents, and segments are transparent.
func Events(item Item) []Event {
	var events []Event
	//
	appendEvents(item, &events)
	//
	return events
}

func appendEvents(item Item, events *[]Event) {
	switch it := item.(type) {
	case *Statement:
		*events = append(*events, Event{Visit, it})
	case *Block:
		*events = append(*events, Event{Kind: EnterScope})
		//
		for _, i := range it.Items {
			appendEvents(i, events)
		}
		//
		*events = append(*events, Event{Kind: ExitScope})
	case *Segment:
		for _, i := range it.Items {
			appendEvents(i, events)
		}
	}
}
