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
package auto

import (
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	log "github.com/sirupsen/logrus"
)

// TypecodeProver proves category judgements such as "wff (-> ph ps)" by
// structural recursion.  A variable is proved by its active floating
// declaration, whilst an application is proved by the first syntax axiom
// (i.e. an assertion without essential hypotheses of the form "typecode (f
// x1 .. xn)") whose head symbol and arity agree.  Subterms are then proved
// recursively through the composer.  The zero value is ready to use.
type TypecodeProver struct {
	inProgress map[string]bool
}

// NewTypecodeProver constructs a fresh prover.
func NewTypecodeProver() *TypecodeProver {
	return &TypecodeProver{make(map[string]bool)}
}

// ProveCategory implementation for the composer.CategoryProver interface.
func (p *TypecodeProver) ProveCategory(c *composer.Composer, typecode string, term ast.Term) (*composer.Proof, error) {
	switch t := term.(type) {
	case *ast.Metavariable:
		return p.proveVariable(c, typecode, t)
	case *ast.Application:
		return p.proveApplication(c, typecode, t)
	default:
		return nil, composer.Errorf(composer.CategoryProofUnavailable, "unknown term %s", term)
	}
}

func (p *TypecodeProver) proveVariable(c *composer.Composer, typecode string, term *ast.Metavariable) (*composer.Proof, error) {
	for _, d := range c.Context().AllDeclarations() {
		if d.Variable != term.Name || d.Typecode != typecode {
			continue
		}
		//
		floating, err := c.FindTheorem(d.Label)
		if err != nil {
			return nil, err
		}
		//
		return floating.AsProof()
	}
	//
	return nil, composer.Errorf(composer.CategoryProofUnavailable, "no declaration of %s for %s", term.Name, typecode)
}

func (p *TypecodeProver) proveApplication(c *composer.Composer, typecode string, term *ast.Application) (*composer.Proof,
	error) {
	var (
		key     = typecode + " " + term.String()
		target  = ast.NewStatement(ast.Provable, "", ast.NewApplication(typecode), term)
		lastErr error
	)
	//
	if p.inProgress[key] {
		return nil, composer.Errorf(composer.RecursionLimit, "cyclic attempt to prove `%s`", key)
	}
	//
	if p.inProgress == nil {
		p.inProgress = make(map[string]bool)
	}
	//
	p.inProgress[key] = true
	//
	defer delete(p.inProgress, key)
	//
	for _, th := range c.Theorems() {
		if !isSyntaxAxiom(th, typecode, term) {
			continue
		}
		//
		proof, err := th.MatchAndApply(target, nil)
		if err == nil {
			return proof, nil
		}
		//
		log.Debugf("syntax axiom %s failed for `%s`: %s", th.Label(), key, err)
		lastErr = err
	}
	//
	if lastErr != nil {
		return nil, lastErr
	}
	//
	return nil, composer.Errorf(composer.CategoryProofUnavailable, "no syntax axiom for `%s`", key)
}

// isSyntaxAxiom checks whether a theorem constructs terms with the same head
// symbol and arity as a given term, for a given typecode.
func isSyntaxAxiom(th *composer.Theorem, typecode string, term *ast.Application) bool {
	stmt := th.Statement()
	//
	if stmt.Kind != ast.Axiom || len(th.Essentials()) != 0 || len(stmt.Terms) != 2 {
		return false
	} else if !ast.IsConstant(stmt.Terms[0], typecode) {
		return false
	}
	//
	head, ok := stmt.Terms[1].(*ast.Application)
	//
	return ok && head.Symbol == term.Symbol && len(head.Subterms) == len(term.Subterms)
}
