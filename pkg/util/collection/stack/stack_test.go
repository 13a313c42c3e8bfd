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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stack_01(t *testing.T) {
	s := NewStack[int]()
	assert.True(t, s.IsEmpty())
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, uint(3), s.Len())
	assert.Equal(t, 3, s.Peek(0))
	assert.Equal(t, 1, s.Peek(2))
	assert.Equal(t, 1, s.Get(0))
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, uint(2), s.Len())
}

func Test_Stack_02(t *testing.T) {
	s := NewStack[string]()
	_, ok := s.TryPop()
	assert.False(t, ok)
	assert.Panics(t, func() { s.Pop() })
	assert.Panics(t, func() { s.Peek(0) })
}

func Test_Stack_03(t *testing.T) {
	s := NewStack[int]()
	for i := range 5 {
		s.Push(i)
	}
	//
	items, ok := s.PopN(3)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 4}, items)
	assert.Equal(t, uint(2), s.Len())
	//
	_, ok = s.PopN(3)
	assert.False(t, ok)
	assert.Equal(t, uint(2), s.Len())
}

func Test_Stack_04(t *testing.T) {
	s := NewStack[int]()
	for i := range 5 {
		s.Push(i)
	}
	//
	s.Truncate(7)
	assert.Equal(t, uint(5), s.Len())
	s.Truncate(1)
	assert.Equal(t, uint(1), s.Len())
	assert.Equal(t, 0, s.Peek(0))
}
