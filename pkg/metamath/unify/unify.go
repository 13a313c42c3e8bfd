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
// Package unify provides one-directional matching of statement patterns
// against concrete statements.  Metavariables of the pattern may be bound to
// arbitrary terms of the target, whilst metavariables occurring in the target
// are treated as rigid symbols.  This is the notion of unification needed when
// instantiating a theorem: the theorem's own variables are distinct from
// those of the statement being proved, even when they share a name.
package unify

import (
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
)

// Binding pairs a pattern metavariable with the term it is bound to.
type Binding struct {
	Variable string
	Term     ast.Term
}

// Matcher accumulates bindings whilst matching a pattern.  Bindings are kept
// in the order in which their variables were first encountered.
type Matcher struct {
	bindings []Binding
	index    map[string]int
}

// NewMatcher constructs a matcher with no bindings.
func NewMatcher() *Matcher {
	return &Matcher{index: make(map[string]int)}
}

// Bindings returns the bindings accumulated so far.
func (m *Matcher) Bindings() []Binding {
	return m.bindings
}

// Map returns the bindings accumulated so far as a mapping.
func (m *Matcher) Map() map[string]ast.Term {
	subst := make(map[string]ast.Term, len(m.bindings))
	//
	for _, b := range m.bindings {
		subst[b.Variable] = b.Term
	}
	//
	return subst
}

// MatchTerm extends the current bindings so that the pattern, once
// substituted, equals the target.  If this is impossible false is returned and
// the matcher should be discarded.
func (m *Matcher) MatchTerm(pattern ast.Term, target ast.Term) bool {
	switch p := pattern.(type) {
	case *ast.Metavariable:
		if i, ok := m.index[p.Name]; ok {
			return m.bindings[i].Term.Equals(target)
		}
		//
		m.index[p.Name] = len(m.bindings)
		m.bindings = append(m.bindings, Binding{p.Name, target})
		//
		return true
	case *ast.Application:
		t, ok := target.(*ast.Application)
		//
		if !ok || t.Symbol != p.Symbol || len(t.Subterms) != len(p.Subterms) {
			return false
		}
		//
		for i, sub := range p.Subterms {
			if !m.MatchTerm(sub, t.Subterms[i]) {
				return false
			}
		}
		//
		return true
	default:
		return false
	}
}

// MatchStatement extends the current bindings by matching each term of the
// pattern statement against the corresponding term of the target.
func (m *Matcher) MatchStatement(pattern *ast.Statement, target *ast.Statement) bool {
	if len(pattern.Terms) != len(target.Terms) {
		return false
	}
	//
	for i, t := range pattern.Terms {
		if !m.MatchTerm(t, target.Terms[i]) {
			return false
		}
	}
	//
	return true
}

// Match a pattern statement against a target statement, returning the
// variable bindings in order of first occurrence.
func Match(pattern *ast.Statement, target *ast.Statement) ([]Binding, bool) {
	m := NewMatcher()
	//
	if !m.MatchStatement(pattern, target) {
		return nil, false
	}
	//
	return m.Bindings(), true
}

// MatchInstance checks whether a given statement is an instance of a pattern,
// returning the substitution which witnesses this.
func MatchInstance(pattern *ast.Statement, instance *ast.Statement) (map[string]ast.Term, bool) {
	m := NewMatcher()
	//
	if !m.MatchStatement(pattern, instance) {
		return nil, false
	}
	//
	return m.Map(), true
}

// Default provides the matching functions of this package through a value,
// allowing it to be plugged in wherever a unification procedure is expected.
type Default struct{}

// Match implementation for Default.
func (Default) Match(pattern *ast.Statement, target *ast.Statement) ([]Binding, bool) {
	return Match(pattern, target)
}

// MatchInstance implementation for Default.
func (Default) MatchInstance(pattern *ast.Statement, instance *ast.Statement) (map[string]ast.Term, bool) {
	return MatchInstance(pattern, instance)
}
