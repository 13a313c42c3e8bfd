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
package stack

import "fmt"

// Stack is a last-in first-out sequence.  Entries can also be read by depth
// from the bottom, which is how scoped lookups walk outermost to innermost.
type Stack[T any] struct {
	items []T
}

// NewStack returns an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// IsEmpty reports whether nothing has been pushed (or everything popped).
func (p *Stack[T]) IsEmpty() bool {
	return len(p.items) == 0
}

// Len returns the number of entries.
func (p *Stack[T]) Len() uint {
	return uint(len(p.items))
}

// Get returns the entry at a given depth, where 0 is the bottom.
func (p *Stack[T]) Get(depth uint) T {
	if depth >= p.Len() {
		panic(fmt.Sprintf("depth %d beyond stack of %d", depth, p.Len()))
	}
	//
	return p.items[depth]
}

// Peek returns the entry a given distance below the top, where 0 is the top.
func (p *Stack[T]) Peek(offset uint) T {
	if offset >= p.Len() {
		panic(fmt.Sprintf("offset %d beyond stack of %d", offset, p.Len()))
	}
	//
	return p.items[p.Len()-1-offset]
}

// Push places item on top.
func (p *Stack[T]) Push(item T) {
	p.items = append(p.items, item)
}

// Pop removes and returns the top entry, panicking when there is none.
func (p *Stack[T]) Pop() T {
	if item, ok := p.TryPop(); ok {
		return item
	}
	//
	panic("pop from empty stack")
}

// TryPop removes and returns the top entry, if there is one.
func (p *Stack[T]) TryPop() (T, bool) {
	items, ok := p.PopN(1)
	if !ok {
		var empty T
		return empty, false
	}
	//
	return items[0], true
}

// PopN removes the top n entries, returning them bottom-most first.  Nothing
// is removed when fewer than n remain.
func (p *Stack[T]) PopN(n uint) ([]T, bool) {
	if n > p.Len() {
		return nil, false
	}
	//
	rest := p.Len() - n
	popped := append([]T(nil), p.items[rest:]...)
	p.items = p.items[:rest]
	//
	return popped, true
}

// Truncate pops entries until at most n remain.
func (p *Stack[T]) Truncate(n uint) {
	p.items = p.items[:min(n, p.Len())]
}
