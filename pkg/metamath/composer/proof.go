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
	"strings"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
)

// Proof is a proved statement together with the label program which derives
// it.  Replaying the script against a sound verifier reconstructs exactly the
// statement.
type Proof struct {
	Statement *ast.Statement
	Script    []string
}

// NewProof constructs a proof of a given statement.
func NewProof(statement *ast.Statement, script ...string) *Proof {
	return &Proof{statement, script}
}

func (p *Proof) String() string {
	return p.Statement.String() + " [" + strings.Join(p.Script, " ") + "]"
}

// Strategy is a means of proving a statement on demand.  A strategy may itself
// recurse into arbitrary proof construction on the given composer.
type Strategy interface {
	Prove(c *Composer, statement *ast.Statement) (*Proof, error)
}

// StrategyFunc adapts an ordinary function into a Strategy.
type StrategyFunc func(c *Composer, statement *ast.Statement) (*Proof, error)

// Prove implementation for the Strategy interface.
func (f StrategyFunc) Prove(c *Composer, statement *ast.Statement) (*Proof, error) {
	return f(c, statement)
}

// Subproof is the value supplied for one essential hypothesis when applying a
// theorem.  It is either resolved (a proof already in hand) or deferred (an
// obligation discharged by a strategy once all variable bindings are known).
type Subproof struct {
	proof    *Proof
	strategy Strategy
}

// Resolved constructs a subproof from a proof already in hand.
func Resolved(proof *Proof) Subproof {
	return Subproof{proof: proof}
}

// Deferred constructs a subproof whose proof is generated later by a given
// strategy, against the fully instantiated hypothesis.
func Deferred(strategy Strategy) Subproof {
	return Subproof{strategy: strategy}
}

// IsDeferred checks whether this subproof still has to be generated.
func (s Subproof) IsDeferred() bool {
	return s.proof == nil && s.strategy != nil
}

// Proof returns the proof of a resolved subproof, or nil for a deferred one.
func (s Subproof) Proof() *Proof {
	return s.proof
}

// Assignment is an explicit binding for a theorem variable.  This is either a
// bare term, in which case its category is proved automatically, or a proof
// of the category judgement for the term (e.g. "wff (-> ph ps)").
type Assignment struct {
	term  ast.Term
	proof *Proof
}

// BindTerm constructs an assignment of a bare term.
func BindTerm(term ast.Term) Assignment {
	return Assignment{term: term}
}

// BindProof constructs an assignment from a category proof.
func BindProof(proof *Proof) Assignment {
	return Assignment{proof: proof}
}

// Term returns the term being assigned.  For a proof this is the second term
// of its statement, or nil if the proof is malformed.
func (a Assignment) Term() ast.Term {
	if a.proof == nil {
		return a.term
	} else if len(a.proof.Statement.Terms) != 2 {
		return nil
	}
	//
	return a.proof.Statement.Terms[1]
}

// agrees checks whether this assignment binds its variable to a given term.
func (a Assignment) agrees(variable string, term ast.Term) (bool, error) {
	assigned := a.Term()
	//
	if assigned == nil {
		return false, Errorf(MalformedCategoryProof, "proof `%s` given for `%s` is not a category judgement",
			a.proof.Statement, variable)
	}
	//
	return assigned.Equals(term), nil
}

// Bindings maps theorem variables to explicit assignments.
type Bindings map[string]Assignment

// Terms constructs bindings from bare terms.
func Terms(terms map[string]ast.Term) Bindings {
	bindings := make(Bindings, len(terms))
	//
	for v, t := range terms {
		bindings[v] = BindTerm(t)
	}
	//
	return bindings
}

func (b Bindings) clone() Bindings {
	bindings := make(Bindings, len(b))
	//
	for v, a := range b {
		bindings[v] = a
	}
	//
	return bindings
}

// bind records that a variable is bound to a given term, checking this is
// consistent with any existing assignment.
func (b Bindings) bind(variable string, term ast.Term) error {
	existing, ok := b[variable]
	//
	if !ok {
		b[variable] = BindTerm(term)
		return nil
	}
	//
	same, err := existing.agrees(variable, term)
	//
	if err != nil {
		return err
	} else if !same {
		return Errorf(InconsistentBinding, "metavariable assignment to %s is not consistent: `%s` and `%s` are both assigned to it",
			variable, existing.Term(), term)
	}
	//
	return nil
}
