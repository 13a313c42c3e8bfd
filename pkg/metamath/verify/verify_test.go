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
	"testing"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/auto"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(name string) ast.Term { return ast.NewApplication(name) }

func mv(name string) ast.Term { return ast.NewMetavariable(name) }

func imp(lhs, rhs ast.Term) ast.Term { return ast.NewApplication("->", lhs, rhs) }

func thm(term ast.Term) *ast.Statement {
	return ast.NewStatement(ast.Provable, "", sym("|-"), term)
}

func newComposer(t *testing.T) *composer.Composer {
	t.Helper()
	//
	th2 := ast.NewStatement(ast.Provable, "th2", sym("|-"), imp(mv("ps"), mv("ph")))
	th2.Proof = []string{"wph", "wps", "wph", "wi", "h1", "wph", "wps", "ax-1", "ax-mp"}
	//
	bad := ast.NewStatement(ast.Provable, "bad", sym("|-"), imp(mv("ps"), mv("ph")))
	bad.Proof = []string{"wph", "wps", "wps", "wi", "h1", "wph", "wps", "ax-1", "ax-mp"}
	//
	loop := ast.NewStatement(ast.Provable, "loop", sym("|-"), mv("ph"))
	loop.Proof = []string{"wph", "loop"}
	//
	c := composer.New(composer.WithCategoryProver(auto.NewTypecodeProver()))
	db := &ast.Database{Items: []ast.Item{
		ast.NewFloating("wph", "wff", "ph"),
		ast.NewFloating("wps", "wff", "ps"),
		ast.NewFloating("wch", "wff", "ch"),
		ast.NewStatement(ast.Axiom, "wi", sym("wff"), imp(mv("ph"), mv("ps"))),
		ast.NewStatement(ast.Axiom, "ax-1", sym("|-"), imp(mv("ph"), imp(mv("ps"), mv("ph")))),
		ast.NewBlock(
			ast.NewStatement(ast.Essential, "min", sym("|-"), mv("ph")),
			ast.NewStatement(ast.Essential, "maj", sym("|-"), imp(mv("ph"), mv("ps"))),
			ast.NewStatement(ast.Axiom, "ax-mp", sym("|-"), mv("ps")),
		),
		ast.NewBlock(
			ast.NewStatement(ast.Essential, "h1", sym("|-"), mv("ph")),
			th2,
			bad,
			loop,
		),
	}}
	//
	require.Empty(t, c.LoadDatabase(db))
	//
	return c
}

func theorem(t *testing.T, c *composer.Composer, label string) *composer.Theorem {
	t.Helper()
	//
	th, err := c.FindTheorem(label)
	require.NoError(t, err)
	//
	return th
}

func Test_Check_Applied(t *testing.T) {
	c := newComposer(t)
	//
	ax1, err := theorem(t, c, "ax-1").MatchAndApply(thm(imp(mv("ch"), imp(imp(mv("ph"), mv("ch")), mv("ch")))), nil)
	require.NoError(t, err)
	assert.NoError(t, Check(c, ax1))
	// Modus ponens with ph := ch, ps := (-> (-> ph ch) ch)
	min := composer.NewProof(thm(mv("ch")), "wch", "wch", "wch", "ax-1", "ax-mp")
	proof, err := theorem(t, c, "ax-mp").Apply(nil, composer.Resolved(min), composer.Resolved(ax1))
	require.NoError(t, err)
	assert.True(t, proof.Statement.SameTerms(thm(imp(imp(mv("ph"), mv("ch")), mv("ch")))))
	// The hypothesis proof is bogus, so replay must fail
	assert.ErrorIs(t, Check(c, proof), ErrInvalidProof)
	// Inlining a stored proof also verifies
	th2 := theorem(t, c, "th2")
	reference, ok := th2.StoredProof()
	require.True(t, ok)
	//
	proof, err = th2.InlineApply(reference, composer.Terms(map[string]ast.Term{"ps": mv("ch")}), composer.Resolved(ax1))
	require.NoError(t, err)
	assert.NoError(t, Check(c, proof))
}

func Test_Check_Identity(t *testing.T) {
	c := newComposer(t)
	//
	for _, label := range []string{"wph", "wi", "ax-1"} {
		proof, err := theorem(t, c, label).AsProof()
		require.NoError(t, err)
		assert.NoError(t, Check(c, proof), label)
	}
}

func Test_CheckTheorem(t *testing.T) {
	c := newComposer(t)
	//
	assert.NoError(t, CheckTheorem(c, theorem(t, c, "th2")))
	//
	err := CheckTheorem(c, theorem(t, c, "bad"))
	require.ErrorIs(t, err, ErrInvalidProof)
	assert.Equal(t, 8, err.(*Error).Step)
	//
	err = CheckTheorem(c, theorem(t, c, "loop"))
	require.ErrorIs(t, err, ErrInvalidProof)
	assert.Equal(t, 1, err.(*Error).Step)
	//
	assert.ErrorIs(t, CheckTheorem(c, theorem(t, c, "ax-1")), ErrInvalidProof)
}

func Test_Check_Failures(t *testing.T) {
	c := newComposer(t)
	claim := thm(imp(mv("ph"), imp(mv("ps"), mv("ph"))))
	//
	tests := []struct {
		name   string
		script []string
		step   int
	}{
		{"underflow", []string{"wph", "ax-1"}, 1},
		{"unknown label", []string{"wph", "nope"}, 1},
		{"out of scope hypothesis", []string{"h1"}, 0},
		{"leftover entries", []string{"wph", "wph", "wps", "ax-1"}, 4},
		{"wrong statement", []string{"wps", "wph", "ax-1"}, 3},
		{"wrong typecode", []string{"wph", "wps", "wph", "ax-1", "ax-1"}, 4},
		{"empty", nil, 0},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Check(c, composer.NewProof(claim, test.script...))
			require.ErrorIs(t, err, ErrInvalidProof)
			assert.Equal(t, test.step, err.(*Error).Step)
		})
	}
}
