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
	"testing"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(name string) ast.Term { return ast.NewApplication(name) }

func mv(name string) ast.Term { return ast.NewMetavariable(name) }

func imp(lhs, rhs ast.Term) ast.Term { return ast.NewApplication("->", lhs, rhs) }

func neg(arg ast.Term) ast.Term { return ast.NewApplication("-.", arg) }

func thm(term ast.Term) *ast.Statement {
	return ast.NewStatement(ast.Provable, "", sym("|-"), term)
}

func newComposer(t *testing.T, prover *TypecodeProver) *composer.Composer {
	t.Helper()
	//
	c := composer.New(composer.WithCategoryProver(prover))
	db := &ast.Database{Items: []ast.Item{
		ast.NewFloating("wph", "wff", "ph"),
		ast.NewFloating("wps", "wff", "ps"),
		ast.NewFloating("wch", "wff", "ch"),
		ast.NewFloating("cA", "class", "A"),
		ast.NewStatement(ast.Axiom, "wn", sym("wff"), neg(mv("ph"))),
		ast.NewStatement(ast.Axiom, "wi", sym("wff"), imp(mv("ph"), mv("ps"))),
		ast.NewStatement(ast.Axiom, "wtru", sym("wff"), sym("T.")),
		ast.NewStatement(ast.Axiom, "ax-1", sym("|-"), imp(mv("ph"), imp(mv("ps"), mv("ph")))),
		ast.NewStatement(ast.Axiom, "tru", sym("|-"), sym("T.")),
		ast.NewBlock(
			ast.NewStatement(ast.Essential, "min", sym("|-"), mv("ph")),
			ast.NewStatement(ast.Essential, "maj", sym("|-"), imp(mv("ph"), mv("ps"))),
			ast.NewStatement(ast.Axiom, "ax-mp", sym("|-"), mv("ps")),
		),
	}}
	//
	require.Empty(t, c.LoadDatabase(db))
	//
	return c
}

func Test_TypecodeProver_Variable(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	//
	proof, err := p.ProveCategory(c, "wff", mv("ps"))
	require.NoError(t, err)
	assert.Equal(t, []string{"wps"}, proof.Script)
	//
	_, err = p.ProveCategory(c, "wff", mv("A"))
	assert.ErrorIs(t, err, composer.ErrCategoryProofUnavailable)
	//
	_, err = p.ProveCategory(c, "wff", mv("ze"))
	assert.ErrorIs(t, err, composer.ErrCategoryProofUnavailable)
}

func Test_TypecodeProver_Application(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	//
	proof, err := p.ProveCategory(c, "wff", imp(mv("ph"), neg(imp(mv("ps"), sym("T.")))))
	require.NoError(t, err)
	assert.Equal(t, []string{"wph", "wps", "wtru", "wi", "wn", "wi"}, proof.Script)
	assert.True(t, proof.Statement.SameTerms(ast.NewStatement(ast.Provable, "", sym("wff"),
		imp(mv("ph"), neg(imp(mv("ps"), sym("T.")))))))
	//
	proof, err = p.ProveCategory(c, "wff", sym("T."))
	require.NoError(t, err)
	assert.Equal(t, []string{"wtru"}, proof.Script)
	// Nothing constructs "/\"
	_, err = p.ProveCategory(c, "wff", ast.NewApplication("/\\", mv("ph"), mv("ps")))
	assert.ErrorIs(t, err, composer.ErrCategoryProofUnavailable)
	// Nothing constructs classes
	_, err = p.ProveCategory(c, "class", neg(mv("A")))
	assert.ErrorIs(t, err, composer.ErrCategoryProofUnavailable)
	// Subterm of the wrong category
	_, err = p.ProveCategory(c, "wff", neg(mv("A")))
	assert.ErrorIs(t, err, composer.ErrCategoryProofUnavailable)
	assert.Empty(t, p.inProgress)
}

func Test_TypecodeProver_ZeroValue(t *testing.T) {
	p := &TypecodeProver{}
	c := newComposer(t, p)
	//
	proof, err := p.ProveCategory(c, "wff", neg(mv("ph")))
	require.NoError(t, err)
	assert.Equal(t, []string{"wph", "wn"}, proof.Script)
	assert.Empty(t, p.inProgress)
}

func Test_TypecodeProver_Cycle(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	//
	p.inProgress["wff (-. ph)"] = true
	//
	_, err := p.ProveCategory(c, "wff", neg(mv("ph")))
	assert.ErrorIs(t, err, composer.ErrRecursionLimit)
	// Cycles are detected below the top level too
	_, err = p.ProveCategory(c, "wff", imp(mv("ps"), neg(mv("ph"))))
	assert.ErrorIs(t, err, composer.ErrRecursionLimit)
}

func Test_TypecodeProver_Apply(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	ax1, err := c.FindTheorem("ax-1")
	require.NoError(t, err)
	//
	target := thm(imp(neg(mv("ch")), imp(sym("T."), neg(mv("ch")))))
	proof, err := ax1.MatchAndApply(target, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"wch", "wn", "wtru", "ax-1"}, proof.Script)
}

func Test_Search(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	mp, err := c.FindTheorem("ax-mp")
	require.NoError(t, err)
	// |- T. and |- (-> T. (-> ph T.)) are both found
	min, err := Search.Prove(c, thm(sym("T.")))
	require.NoError(t, err)
	assert.Equal(t, []string{"tru"}, min.Script)
	//
	proof, err := mp.Apply(composer.Terms(map[string]ast.Term{"ps": imp(mv("ph"), sym("T."))}),
		composer.Resolved(min), composer.Deferred(Search))
	require.NoError(t, err)
	assert.Equal(t, []string{"wtru", "wph", "wtru", "wi", "tru", "wtru", "wph", "ax-1", "ax-mp"}, proof.Script)
	assert.True(t, proof.Statement.SameTerms(thm(imp(mv("ph"), sym("T.")))))
	//
	_, err = Search.Prove(c, thm(mv("ph")))
	assert.ErrorIs(t, err, composer.ErrUnification)
}

func Test_Search_Hypothesis(t *testing.T) {
	p := NewTypecodeProver()
	c := newComposer(t, p)
	//
	c.Context().Enter()
	//
	_, err := c.Load(ast.NewStatement(ast.Essential, "hyp", sym("|-"), neg(mv("ph"))))
	require.NoError(t, err)
	//
	proof, err := Search.Prove(c, thm(neg(mv("ph"))))
	require.NoError(t, err)
	assert.Equal(t, []string{"hyp"}, proof.Script)
	require.NoError(t, c.Context().Exit())
}
