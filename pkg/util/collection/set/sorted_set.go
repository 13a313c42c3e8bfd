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
package set

import (
	"cmp"
	"slices"
)

// SortedSet holds distinct values in ascending order.  Metavariable sets are
// small, so membership is a binary search and insertion shifts in place.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns an empty set.
func NewSortedSet[T cmp.Ordered]() *SortedSet[T] {
	return &SortedSet[T]{}
}

// Of returns the set of the given elements, ignoring repeats.
func Of[T cmp.Ordered](elements ...T) *SortedSet[T] {
	s := SortedSet[T](slices.Compact(slices.Sorted(slices.Values(elements))))
	return &s
}

// Len returns the number of elements.
func (p *SortedSet[T]) Len() int {
	return len(*p)
}

// Contains reports whether element is a member.
func (p *SortedSet[T]) Contains(element T) bool {
	_, found := slices.BinarySearch(*p, element)
	return found
}

// Insert adds element, unless it is already a member.
func (p *SortedSet[T]) Insert(element T) {
	if i, found := slices.BinarySearch(*p, element); !found {
		*p = slices.Insert(*p, i, element)
	}
}

// InsertSorted adds every member of q.
func (p *SortedSet[T]) InsertSorted(q *SortedSet[T]) {
	var (
		left, right = *p, *q
		merged      = make([]T, 0, len(left)+len(right))
	)
	//
	for len(left) > 0 && len(right) > 0 {
		switch c := cmp.Compare(left[0], right[0]); {
		case c < 0:
			merged, left = append(merged, left[0]), left[1:]
		case c > 0:
			merged, right = append(merged, right[0]), right[1:]
		default:
			merged, left, right = append(merged, left[0]), left[1:], right[1:]
		}
	}
	//
	merged = append(merged, left...)
	*p = append(merged, right...)
}

// ToArray returns a copy of the elements in ascending order.
func (p *SortedSet[T]) ToArray() []T {
	return slices.Clone(*p)
}
