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
	"slices"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	log "github.com/sirupsen/logrus"
)

// Theorem is a statement which can be instantiated in a proof, together with
// the mandatory hypotheses it requires: the floating declarations of its
// variables (in a fixed order) and its essential hypotheses.  Theorems are
// never modified after registration.
type Theorem struct {
	composer   *Composer
	statement  *ast.Statement
	floatings  []Declaration
	essentials []*ast.Statement
}

// Statement returns the statement asserted by this theorem.
func (t *Theorem) Statement() *ast.Statement {
	return t.statement
}

// Label returns the label of this theorem.
func (t *Theorem) Label() string {
	return t.statement.Label
}

// Floatings returns the variable declarations this theorem requires, in the
// order they must be instantiated.
func (t *Theorem) Floatings() []Declaration {
	return slices.Clone(t.floatings)
}

// Essentials returns the essential hypotheses this theorem requires.
func (t *Theorem) Essentials() []*ast.Statement {
	return slices.Clone(t.essentials)
}

// Arity returns the number of proofs consumed when this theorem's label is
// replayed.
func (t *Theorem) Arity() int {
	return len(t.floatings) + len(t.essentials)
}

// HypothesisLabels returns the labels of all mandatory hypotheses, floating
// declarations first.
func (t *Theorem) HypothesisLabels() []string {
	labels := make([]string, 0, t.Arity())
	//
	for _, f := range t.floatings {
		labels = append(labels, f.Label)
	}
	//
	for _, e := range t.essentials {
		labels = append(labels, e.Label)
	}
	//
	return labels
}

// StoredProof returns the proof carried by this theorem's statement in the
// database (if any).
func (t *Theorem) StoredProof() (*Proof, bool) {
	if t.statement.Kind != ast.Provable || len(t.statement.Proof) == 0 {
		return nil, false
	}
	//
	return &Proof{t.statement, slices.Clone(t.statement.Proof)}, true
}

// AsProof treats this theorem as a proof of itself, which is only possible
// when it has no essential hypotheses.
func (t *Theorem) AsProof() (*Proof, error) {
	if len(t.essentials) != 0 {
		return nil, Errorf(ArityMismatch, "theorem %s has %d essential hypotheses", t.Label(), len(t.essentials))
	}
	//
	return t.MatchAndApply(t.statement, nil)
}

// MatchAndApply unifies this theorem's statement with a target, uses the
// resulting bindings (alongside those given explicitly) and then applies the
// theorem.
func (t *Theorem) MatchAndApply(target *ast.Statement, bindings Bindings, hypotheses ...Subproof) (*Proof, error) {
	pairs, ok := t.composer.unifier.Match(t.statement, target)
	//
	if !ok {
		err := Errorf(UnificationFailure, "failed to unify the target statement `%s` and the theorem `%s`",
			target, t.statement)
		t.composer.metrics.recordApplication("apply", err)
		//
		return nil, err
	}
	//
	merged := bindings.clone()
	//
	for _, p := range pairs {
		if err := merged.bind(p.Variable, p.Term); err != nil {
			t.composer.metrics.recordApplication("apply", err)
			return nil, err
		}
	}
	//
	return t.Apply(merged, hypotheses...)
}

// Apply instantiates this theorem.  One subproof must be given for each
// essential hypothesis, in order; resolved subproofs contribute variable
// bindings by matching, whilst deferred ones are generated once all bindings
// are known.  Every floating variable must end up bound, either through the
// hypotheses or through the given bindings.  The resulting script consists of
// the floating proofs, then the hypothesis proofs, then this theorem's label.
func (t *Theorem) Apply(bindings Bindings, hypotheses ...Subproof) (*Proof, error) {
	c := t.composer
	//
	if err := c.enter(); err != nil {
		return nil, err
	}
	//
	defer c.leave()
	//
	proof, err := t.apply(bindings, hypotheses)
	c.metrics.recordApplication("apply", err)
	//
	return proof, err
}

func (t *Theorem) apply(bindings Bindings, hypotheses []Subproof) (*Proof, error) {
	if t.statement.Label == "" {
		return nil, Errorf(UnknownLabel, "applying a theorem without label: %s", t.statement)
	}
	//
	subproofs, subst, err := t.infer(bindings, hypotheses)
	if err != nil {
		return nil, err
	}
	//
	var script []string
	//
	for _, p := range subproofs {
		script = append(script, p.Script...)
	}
	//
	script = append(script, t.statement.Label)
	proof := &Proof{t.conclusion(subst, script), script}
	log.Debugf("applied %s yielding %s", t.Label(), proof.Statement)
	//
	return proof, nil
}

// InlineApply instantiates this theorem like Apply, but rather than
// referencing this theorem's label it splices the computed subproofs into a
// reference proof of the theorem itself.  Each occurrence of a mandatory
// hypothesis label in the reference script is replaced by the script of the
// corresponding subproof; all other labels are copied verbatim.
func (t *Theorem) InlineApply(reference *Proof, bindings Bindings, hypotheses ...Subproof) (*Proof, error) {
	c := t.composer
	//
	if err := c.enter(); err != nil {
		return nil, err
	}
	//
	defer c.leave()
	//
	proof, err := t.inline(reference, bindings, hypotheses)
	c.metrics.recordApplication("inline", err)
	//
	return proof, err
}

func (t *Theorem) inline(reference *Proof, bindings Bindings, hypotheses []Subproof) (*Proof, error) {
	if reference == nil {
		return nil, Errorf(InvalidReference, "no reference proof given for %s", t.Label())
	} else if t.composer.validateInline && !reference.Statement.SameTerms(t.statement) {
		return nil, Errorf(InvalidReference, "reference proof of `%s` does not prove %s `%s`",
			reference.Statement, t.Label(), t.statement)
	}
	//
	subproofs, subst, err := t.infer(bindings, hypotheses)
	if err != nil {
		return nil, err
	}
	//
	labels := t.HypothesisLabels()
	replacements := make(map[string]*Proof, len(labels))
	//
	for i, l := range labels {
		replacements[l] = subproofs[i]
	}
	//
	var script []string
	//
	for _, l := range reference.Script {
		if p, ok := replacements[l]; ok {
			script = append(script, p.Script...)
		} else {
			script = append(script, l)
		}
	}
	//
	proof := &Proof{t.conclusion(subst, script), script}
	log.Debugf("inlined %s yielding %s", t.Label(), proof.Statement)
	//
	return proof, nil
}

// infer computes the subproofs for all mandatory hypotheses (floating ones
// first) together with the substitution they establish.
func (t *Theorem) infer(bindings Bindings, hypotheses []Subproof) ([]*Proof, map[string]ast.Term, error) {
	var (
		c        = t.composer
		assigned = bindings.clone()
	)
	//
	if len(hypotheses) != len(t.essentials) {
		return nil, nil, Errorf(ArityMismatch, "unmatched number of subproofs for essential statements of %s, expecting %d, %d given",
			t.Label(), len(t.essentials), len(hypotheses))
	}
	// Infer bindings from the essential proofs in hand.
	for i, essential := range t.essentials {
		if err := t.inferFrom(essential, hypotheses[i], assigned); err != nil {
			return nil, nil, err
		}
	}
	// Resolve each floating declaration into a category proof.
	subst := make(map[string]ast.Term, len(t.floatings))
	floatingProofs := make([]*Proof, len(t.floatings))
	//
	for i, f := range t.floatings {
		proof, err := t.resolveFloating(f, assigned)
		if err != nil {
			return nil, nil, err
		}
		//
		subst[f.Variable] = proof.Statement.Terms[1]
		floatingProofs[i] = proof
	}
	// Generate deferred proofs against the now complete substitution.
	essentialProofs := make([]*Proof, len(hypotheses))
	//
	for i, h := range hypotheses {
		if !h.IsDeferred() {
			essentialProofs[i] = h.proof
			continue
		}
		//
		proof, err := t.resolveDeferred(t.essentials[i].Substitute(subst), h.strategy)
		c.metrics.recordDeferred(err)
		//
		if err != nil {
			return nil, nil, err
		}
		//
		essentialProofs[i] = proof
	}
	//
	return append(floatingProofs, essentialProofs...), subst, nil
}

func (t *Theorem) inferFrom(essential *ast.Statement, hypothesis Subproof, assigned Bindings) error {
	if hypothesis.IsDeferred() {
		return nil
	} else if hypothesis.proof == nil {
		return Errorf(UnificationFailure, "no proof given for essential hypothesis %s of %s", essential.Label, t.Label())
	}
	//
	solution, ok := t.composer.unifier.MatchInstance(essential, hypothesis.proof.Statement)
	if !ok {
		return Errorf(UnificationFailure, "`%s` is not an instance of `%s`", hypothesis.proof.Statement, essential)
	}
	// Visit variables in a fixed order so failures are reported deterministically.
	for _, v := range essential.Metavariables().ToArray() {
		if term, ok := solution[v]; ok {
			if err := assigned.bind(v, term); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

func (t *Theorem) resolveFloating(f Declaration, assigned Bindings) (*Proof, error) {
	var (
		c         = t.composer
		proof     *Proof
		err       error
		a, exists = assigned[f.Variable]
	)
	//
	if !exists {
		return nil, Errorf(UnboundVariable, "assignment to metavariable `%s` of %s cannot be inferred", f.Variable, t.Label())
	}
	//
	if a.proof != nil {
		proof = a.proof
	} else if proof, err = c.prover.ProveCategory(c, f.Typecode, a.term); err != nil {
		return nil, wrapf(CategoryProofUnavailable, err, "a term `%s` is given for metavariable `%s`, but we couldn't prove `%s %s`",
			a.term, f.Variable, f.Typecode, a.term)
	} else if proof == nil {
		return nil, Errorf(CategoryProofUnavailable, "no proof of `%s %s`", f.Typecode, a.term)
	}
	// Check the proof is a judgement "typecode term" for the right typecode.
	if len(proof.Statement.Terms) != 2 || !ast.IsConstant(proof.Statement.Terms[0], f.Typecode) {
		return nil, Errorf(MalformedCategoryProof, "wrong proof for `%s %s`, got `%s`", f.Typecode, f.Variable, proof.Statement)
	} else if a.proof == nil && !proof.Statement.Terms[1].Equals(a.term) {
		return nil, Errorf(MalformedCategoryProof, "wrong proof for `%s %s`, got `%s`", f.Typecode, a.term, proof.Statement)
	}
	//
	return proof, nil
}

func (t *Theorem) resolveDeferred(instance *ast.Statement, strategy Strategy) (*Proof, error) {
	proof, err := strategy.Prove(t.composer, instance)
	//
	if err != nil {
		return nil, wrapf(DeferredResolutionFailure, err, "unable to automatically generate proof for `%s`", instance)
	} else if proof == nil || !proof.Statement.SameTerms(instance) {
		return nil, Errorf(DeferredResolutionFailure, "strategy did not prove `%s`", instance)
	}
	//
	log.Debugf("resolved deferred hypothesis `%s`", instance)
	//
	return proof, nil
}

// conclusion computes the instance of this theorem's statement established by
// a given substitution.
func (t *Theorem) conclusion(subst map[string]ast.Term, script []string) *ast.Statement {
	instance := t.statement.Substitute(subst)
	instance.Label = ""
	instance.Kind = ast.Provable
	instance.Proof = script
	//
	return instance
}
