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
	"github.com/consensys/go-mmcompose/pkg/util/collection/set"
	"github.com/consensys/go-mmcompose/pkg/util/source/sexp"
)

// Term is a symbolic expression tree.  Terms are immutable once constructed
// and are compared structurally (see Equals).
type Term interface {
	// Equals checks whether this term is structurally identical to another.
	Equals(other Term) bool
	// SExp converts this term into its s-expression form.
	SExp() sexp.SExp
	// String returns a human-readable rendering of this term.
	String() string
	// collect adds the names of all metavariables in this term to a set.
	collect(vars *set.SortedSet[string])
	// substitute replaces metavariables according to a given mapping.
	substitute(subst map[string]Term) Term
}

// ============================================================================
// Application
// ============================================================================

// Application is a constant symbol applied to zero or more subterms.  A
// nullary application is simply a constant (e.g. a typecode such as "wff").
type Application struct {
	Symbol   string
	Subterms []Term
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Term = (*Application)(nil)

// NewApplication constructs a new application of a symbol to some subterms.
func NewApplication(symbol string, subterms ...Term) *Application {
	return &Application{symbol, subterms}
}

// Equals implementation for the Term interface.
func (p *Application) Equals(other Term) bool {
	o, ok := other.(*Application)
	//
	if !ok || o.Symbol != p.Symbol || len(o.Subterms) != len(p.Subterms) {
		return false
	}
	//
	for i, t := range p.Subterms {
		if !t.Equals(o.Subterms[i]) {
			return false
		}
	}
	//
	return true
}

// SExp implementation for the Term interface.
func (p *Application) SExp() sexp.SExp {
	if len(p.Subterms) == 0 {
		return sexp.NewSymbol(p.Symbol)
	}
	//
	elements := make([]sexp.SExp, len(p.Subterms)+1)
	elements[0] = sexp.NewSymbol(p.Symbol)
	//
	for i, t := range p.Subterms {
		elements[i+1] = t.SExp()
	}
	//
	return sexp.NewList(elements)
}

func (p *Application) String() string {
	return p.SExp().String()
}

func (p *Application) collect(vars *set.SortedSet[string]) {
	for _, t := range p.Subterms {
		t.collect(vars)
	}
}

func (p *Application) substitute(subst map[string]Term) Term {
	if len(p.Subterms) == 0 {
		return p
	}
	//
	subterms := make([]Term, len(p.Subterms))
	//
	for i, t := range p.Subterms {
		subterms[i] = t.substitute(subst)
	}
	//
	return &Application{p.Symbol, subterms}
}

// ============================================================================
// Metavariable
// ============================================================================

// Metavariable is a named placeholder standing for some term.
type Metavariable struct {
	Name string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Term = (*Metavariable)(nil)

// NewMetavariable constructs a new metavariable with a given name.
func NewMetavariable(name string) *Metavariable {
	return &Metavariable{name}
}

// Equals implementation for the Term interface.
func (p *Metavariable) Equals(other Term) bool {
	o, ok := other.(*Metavariable)
	return ok && o.Name == p.Name
}

// SExp implementation for the Term interface.
func (p *Metavariable) SExp() sexp.SExp {
	return sexp.NewSymbol(p.Name)
}

func (p *Metavariable) String() string {
	return p.Name
}

func (p *Metavariable) collect(vars *set.SortedSet[string]) {
	vars.Insert(p.Name)
}

func (p *Metavariable) substitute(subst map[string]Term) Term {
	if t, ok := subst[p.Name]; ok {
		return t
	}
	//
	return p
}

// ============================================================================
// Helpers
// ============================================================================

// Metavariables returns the set of metavariable names occurring in the given
// terms.
func Metavariables(terms ...Term) *set.SortedSet[string] {
	vars := set.NewSortedSet[string]()
	//
	for _, t := range terms {
		t.collect(vars)
	}
	//
	return vars
}

// Substitute rewrites a term by replacing every metavariable bound in the
// given mapping.  Metavariables without a binding are left untouched.
func Substitute(subst map[string]Term, term Term) Term {
	return term.substitute(subst)
}

// IsConstant checks whether a given term is the nullary application of a given
// symbol.
func IsConstant(term Term, symbol string) bool {
	app, ok := term.(*Application)
	return ok && app.Symbol == symbol && len(app.Subterms) == 0
}
