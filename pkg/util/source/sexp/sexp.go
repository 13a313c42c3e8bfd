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
package sexp

import (
	"strings"
)

// SExp is a node of a parsed document: a parenthesised List, a bracketed
// Array or a bare Symbol.
type SExp interface {
	// AsList returns this node if it is a list, otherwise nil.
	AsList() *List
	// AsArray returns this node if it is an array, otherwise nil.
	AsArray() *Array
	// AsSymbol returns this node if it is a symbol, otherwise nil.
	AsSymbol() *Symbol
	// String renders this node back into document syntax.
	String() string
}

var (
	_ SExp = (*List)(nil)
	_ SExp = (*Array)(nil)
	_ SExp = (*Symbol)(nil)
)

// List is a parenthesised sequence, such as a statement or an application.
type List struct {
	Elements []SExp
}

// NewList constructs a list holding the given elements.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// AsList implementation for SExp interface.
func (l *List) AsList() *List { return l }

// AsArray implementation for SExp interface.
func (l *List) AsArray() *Array { return nil }

// AsSymbol implementation for SExp interface.
func (l *List) AsSymbol() *Symbol { return nil }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elements) }

// Get returns the ith element.
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Head returns the symbol which opens this list, or "" when there is none.
func (l *List) Head() string {
	if len(l.Elements) > 0 {
		if s := l.Elements[0].AsSymbol(); s != nil {
			return s.Value
		}
	}
	//
	return ""
}

func (l *List) String() string {
	return render('(', l.Elements, ')')
}

// Array is a bracketed sequence, used for proof scripts.
type Array struct {
	Elements []SExp
}

// NewArray constructs an array holding the given elements.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsList implementation for SExp interface.
func (a *Array) AsList() *List { return nil }

// AsArray implementation for SExp interface.
func (a *Array) AsArray() *Array { return a }

// AsSymbol implementation for SExp interface.
func (a *Array) AsSymbol() *Symbol { return nil }

func (a *Array) String() string {
	return render('[', a.Elements, ']')
}

// Symbol is any run of characters which is neither whitespace, a bracket nor
// the start of a comment.
type Symbol struct {
	Value string
}

// NewSymbol constructs a symbol.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// AsList implementation for SExp interface.
func (s *Symbol) AsList() *List { return nil }

// AsArray implementation for SExp interface.
func (s *Symbol) AsArray() *Array { return nil }

// AsSymbol implementation for SExp interface.
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String() string { return s.Value }

func render(open rune, elements []SExp, close rune) string {
	var sb strings.Builder
	//
	sb.WriteRune(open)
	//
	for i, e := range elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		//
		sb.WriteString(e.String())
	}
	//
	sb.WriteRune(close)
	//
	return sb.String()
}
