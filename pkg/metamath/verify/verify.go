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
package verify

import (
	"errors"
	"fmt"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/util/collection/stack"
	log "github.com/sirupsen/logrus"
)

// ErrInvalidProof is matched (via errors.Is) by every verification failure.
var ErrInvalidProof = errors.New("invalid proof")

// Error describes why replaying a proof script failed, and at which step.
type Error struct {
	// Step is the index of the offending label in the script, or the script
	// length when the final stack is wrong.
	Step    int
	Label   string
	Message string
}

func (e *Error) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("step %d: %s", e.Step, e.Message)
	}
	//
	return fmt.Sprintf("step %d (%s): %s", e.Step, e.Label, e.Message)
}

// Unwrap returns ErrInvalidProof.
func (e *Error) Unwrap() error {
	return ErrInvalidProof
}

// Check replays a proof script against the theorems of a composer and checks
// it derives exactly the statement claimed.  Labels not registered as
// theorems are looked up amongst the active essential hypotheses.
func Check(c *composer.Composer, proof *composer.Proof) error {
	v := verifier{c, nil, ""}
	//
	return v.check(proof.Statement, proof.Script)
}

// CheckTheorem replays the proof stored with a provable statement.  The
// theorem's own essential hypotheses may be referenced by the script, whilst
// the theorem itself may not.
func CheckTheorem(c *composer.Composer, theorem *composer.Theorem) error {
	proof, ok := theorem.StoredProof()
	//
	if !ok {
		return &Error{0, theorem.Label(), "no stored proof"}
	}
	//
	hypotheses := make(map[string]*ast.Statement)
	//
	for _, e := range theorem.Essentials() {
		hypotheses[e.Label] = e
	}
	//
	v := verifier{c, hypotheses, theorem.Label()}
	//
	return v.check(proof.Statement, proof.Script)
}

type verifier struct {
	composer   *composer.Composer
	hypotheses map[string]*ast.Statement
	self       string
}

// step is the effect of replaying a single label.
type step struct {
	statement  *ast.Statement
	floatings  []composer.Declaration
	essentials []*ast.Statement
}

func (v *verifier) check(claim *ast.Statement, script []string) error {
	stk := stack.NewStack[*ast.Statement]()
	//
	for i, label := range script {
		s, err := v.resolve(label)
		if err != nil {
			return &Error{i, label, err.Error()}
		}
		//
		args, ok := stk.PopN(uint(len(s.floatings) + len(s.essentials)))
		if !ok {
			return &Error{i, label, fmt.Sprintf("stack underflow (requires %d entries)",
				len(s.floatings)+len(s.essentials))}
		}
		//
		result, msg := apply(s, args)
		if result == nil {
			return &Error{i, label, msg}
		}
		//
		stk.Push(result)
	}
	//
	if stk.Len() != 1 {
		return &Error{Step: len(script), Message: fmt.Sprintf("expected a single statement on the stack, found %d", stk.Len())}
	} else if top := stk.Peek(0); !top.SameTerms(claim) {
		return &Error{Step: len(script), Message: fmt.Sprintf("proved `%s` rather than `%s`", top, claim)}
	}
	//
	log.Debugf("verified `%s` in %d steps", claim, len(script))
	//
	return nil
}

func (v *verifier) resolve(label string) (step, error) {
	if label == v.self {
		return step{}, fmt.Errorf("proof refers to itself")
	} else if h, ok := v.hypotheses[label]; ok {
		return step{statement: h}, nil
	}
	//
	th, err := v.composer.FindTheorem(label)
	if err == nil {
		return step{th.Statement(), th.Floatings(), th.Essentials()}, nil
	}
	// Fall back on active hypotheses
	if h, herr := v.composer.FindHypothesis(label); herr == nil {
		return step{statement: h.Statement()}, nil
	}
	//
	return step{}, err
}

// apply consumes the arguments of a step, returning the statement it pushes
// or an explanation of why the arguments do not fit.
func apply(s step, args []*ast.Statement) (*ast.Statement, string) {
	subst := make(map[string]ast.Term, len(s.floatings))
	//
	for i, f := range s.floatings {
		arg := args[i]
		//
		if len(arg.Terms) != 2 || !ast.IsConstant(arg.Terms[0], f.Typecode) {
			return nil, fmt.Sprintf("expected `%s` judgement for %s, found `%s`", f.Typecode, f.Variable, arg)
		}
		//
		subst[f.Variable] = arg.Terms[1]
	}
	//
	for i, e := range s.essentials {
		expected := e.Substitute(subst)
		//
		if arg := args[len(s.floatings)+i]; !arg.SameTerms(expected) {
			return nil, fmt.Sprintf("hypothesis %s requires `%s`, found `%s`", e.Label, expected, arg)
		}
	}
	//
	return s.statement.Substitute(subst), ""
}
