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
	"fmt"
	"strings"

	"github.com/consensys/go-mmcompose/pkg/util/collection/set"
	"github.com/consensys/go-mmcompose/pkg/util/source/sexp"
)

// Kind identifies the role a statement plays within a database.
type Kind uint8

const (
	// Constant declares one or more constant symbols.
	Constant Kind = iota
	// Variable declares one or more variable symbols.
	Variable
	// Floating declares that a variable ranges over some typecode.
	Floating
	// Essential is a hypothesis active within its enclosing block.
	Essential
	// Axiom is an assertion accepted without proof.
	Axiom
	// Provable is an assertion which is derived, optionally carrying its proof.
	Provable
)

var kindNames = [...]string{"const", "var", "floating", "essential", "axiom", "provable"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("kind(%d)", k)
}

// KindOf returns the statement kind for a given keyword (e.g. "axiom").
func KindOf(keyword string) (Kind, bool) {
	for i, n := range kindNames {
		if n == keyword {
			return Kind(i), true
		}
	}
	//
	return 0, false
}

// IsAssertion checks whether statements of this kind are registered as
// theorems in their own right, i.e. axioms and provable statements.
func (k Kind) IsAssertion() bool {
	return k == Axiom || k == Provable
}

// Statement is an ordered sequence of terms forming a judgement (e.g. "|- ph"),
// together with its kind and (where applicable) its label.  A provable
// statement may also carry the label program which derives it.
type Statement struct {
	Kind  Kind
	Label string
	Terms []Term
	Proof []string
}

// NewStatement constructs a new statement of a given kind.
func NewStatement(kind Kind, label string, terms ...Term) *Statement {
	return &Statement{Kind: kind, Label: label, Terms: terms}
}

// NewFloating constructs a floating statement declaring that a given variable
// ranges over a given typecode.
func NewFloating(label string, typecode string, variable string) *Statement {
	return NewStatement(Floating, label, NewApplication(typecode), NewMetavariable(variable))
}

// Metavariables returns the set of metavariables occurring in this statement.
func (s *Statement) Metavariables() *set.SortedSet[string] {
	return Metavariables(s.Terms...)
}

// Substitute returns a copy of this statement with every bound metavariable
// replaced.  Kind and label are preserved, whilst any attached proof is
// dropped since it no longer derives the rewritten statement.
func (s *Statement) Substitute(subst map[string]Term) *Statement {
	terms := make([]Term, len(s.Terms))
	//
	for i, t := range s.Terms {
		terms[i] = Substitute(subst, t)
	}
	//
	return &Statement{Kind: s.Kind, Label: s.Label, Terms: terms}
}

// SameTerms checks whether this statement and another consist of structurally
// identical terms, ignoring kind, label and proof.
func (s *Statement) SameTerms(other *Statement) bool {
	if len(s.Terms) != len(other.Terms) {
		return false
	}
	//
	for i, t := range s.Terms {
		if !t.Equals(other.Terms[i]) {
			return false
		}
	}
	//
	return true
}

// SExp converts this statement into its s-expression form, e.g.
// "(provable th1 |- ph [wph th0])".
func (s *Statement) SExp() sexp.SExp {
	elements := []sexp.SExp{sexp.NewSymbol(s.Kind.String())}
	//
	if s.Kind != Constant && s.Kind != Variable {
		elements = append(elements, sexp.NewSymbol(s.Label))
	}
	//
	for _, t := range s.Terms {
		elements = append(elements, t.SExp())
	}
	//
	if s.Kind == Provable && len(s.Proof) > 0 {
		script := make([]sexp.SExp, len(s.Proof))
		for i, l := range s.Proof {
			script[i] = sexp.NewSymbol(l)
		}
		//
		elements = append(elements, sexp.NewArray(script))
	}
	//
	return sexp.NewList(elements)
}

// String returns the judgement of this statement, e.g. "|- (-> ph ps)".
func (s *Statement) String() string {
	parts := make([]string, len(s.Terms))
	//
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	//
	return strings.Join(parts, " ")
}
