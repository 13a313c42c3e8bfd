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
package composer

import (
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/util/collection/set"
	"github.com/consensys/go-mmcompose/pkg/util/collection/stack"
)

// Declaration records that a variable ranges over a given typecode, as
// introduced by the floating statement with the given label.
type Declaration struct {
	Typecode string
	Variable string
	Label    string
}

// frame holds what a single scope introduced directly.
type frame struct {
	declarations []Declaration
	hypotheses   []*ast.Statement
}

// Context is the chain of nested scopes active at some point in a database.
// The outermost (root) frame is at the bottom of the stack and the current
// frame at the top.  Scopes must be entered and exited in properly nested
// order.
type Context struct {
	frames *stack.Stack[*frame]
}

// NewContext constructs a context consisting of just the root frame.
func NewContext() *Context {
	frames := stack.NewStack[*frame]()
	frames.Push(&frame{})
	//
	return &Context{frames}
}

// Depth returns the number of scopes entered above the root.
func (c *Context) Depth() uint {
	return c.frames.Len() - 1
}

// Enter pushes a fresh, empty scope.
func (c *Context) Enter() {
	c.frames.Push(&frame{})
}

// Exit discards the current scope, restoring its parent.  Exiting the root
// scope is a misuse.
func (c *Context) Exit() error {
	if c.Depth() == 0 {
		return Errorf(ScopeMisuse, "cannot exit the outermost scope")
	}
	//
	c.frames.Pop()
	//
	return nil
}

// unwind discards scopes until the given depth is reached.
func (c *Context) unwind(depth uint) {
	c.frames.Truncate(depth + 1)
}

// Declare adds a variable declaration to the current scope.
func (c *Context) Declare(typecode string, variable string, label string) {
	top := c.frames.Peek(0)
	top.declarations = append(top.declarations, Declaration{typecode, variable, label})
}

// AddHypothesis adds an essential hypothesis to the current scope.
func (c *Context) AddHypothesis(statement *ast.Statement) {
	top := c.frames.Peek(0)
	top.hypotheses = append(top.hypotheses, statement)
}

// DeclarationsFor returns the declarations (across all active scopes) of the
// given variables.  These are ordered outermost scope first, preserving the
// order of declaration within each scope.
func (c *Context) DeclarationsFor(variables *set.SortedSet[string]) []Declaration {
	return c.declarations(func(d Declaration) bool {
		return variables.Contains(d.Variable)
	})
}

// DeclarationsOfCategory returns the declarations (across all active scopes)
// with a given typecode, ordered outermost scope first.
func (c *Context) DeclarationsOfCategory(typecode string) []Declaration {
	return c.declarations(func(d Declaration) bool {
		return d.Typecode == typecode
	})
}

// AllDeclarations returns every active declaration, ordered outermost scope
// first.
func (c *Context) AllDeclarations() []Declaration {
	return c.declarations(func(Declaration) bool { return true })
}

// FindHypothesis returns the essential hypothesis with a given label.  Scopes
// are searched innermost first, hence a hypothesis in an inner scope shadows
// one with the same label further out.
func (c *Context) FindHypothesis(label string) (*ast.Statement, bool) {
	for i := uint(0); i < c.frames.Len(); i++ {
		for _, h := range c.frames.Peek(i).hypotheses {
			if h.Label == label {
				return h, true
			}
		}
	}
	//
	return nil, false
}

// AllHypotheses returns every active essential hypothesis, ordered outermost
// scope first.
func (c *Context) AllHypotheses() []*ast.Statement {
	var hypotheses []*ast.Statement
	//
	for i := uint(0); i < c.frames.Len(); i++ {
		hypotheses = append(hypotheses, c.frames.Get(i).hypotheses...)
	}
	//
	return hypotheses
}

func (c *Context) declarations(filter func(Declaration) bool) []Declaration {
	var declarations []Declaration
	//
	for i := uint(0); i < c.frames.Len(); i++ {
		for _, d := range c.frames.Get(i).declarations {
			if filter(d) {
				declarations = append(declarations, d)
			}
		}
	}
	//
	return declarations
}
