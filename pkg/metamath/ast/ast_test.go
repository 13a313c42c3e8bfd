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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func imp(lhs, rhs Term) Term {
	return NewApplication("->", lhs, rhs)
}

func Test_Term_Equals(t *testing.T) {
	ph := NewMetavariable("ph")
	ps := NewMetavariable("ps")
	//
	assert.True(t, imp(ph, ps).Equals(imp(NewMetavariable("ph"), NewMetavariable("ps"))))
	assert.False(t, imp(ph, ps).Equals(imp(ps, ph)))
	assert.False(t, ph.Equals(NewApplication("ph")))
	assert.False(t, NewApplication("->", ph).Equals(imp(ph, ps)))
}

func Test_Term_String(t *testing.T) {
	term := imp(NewMetavariable("ph"), NewApplication("-.", NewApplication("T.")))
	assert.Equal(t, "(-> ph (-. T.))", term.String())
}

func Test_Term_Metavariables(t *testing.T) {
	term := imp(NewMetavariable("ps"), imp(NewMetavariable("ph"), NewMetavariable("ps")))
	assert.Equal(t, []string{"ph", "ps"}, Metavariables(term).ToArray())
	assert.Equal(t, 0, Metavariables(NewApplication("T.")).Len())
}

func Test_Term_Substitute(t *testing.T) {
	ph := NewMetavariable("ph")
	ps := NewMetavariable("ps")
	term := imp(ph, ps)
	subst := map[string]Term{"ph": imp(ps, ps)}
	//
	result := Substitute(subst, term)
	assert.Equal(t, "(-> (-> ps ps) ps)", result.String())
	// Original untouched
	assert.Equal(t, "(-> ph ps)", term.String())
}

func Test_Statement_Substitute(t *testing.T) {
	stmt := NewStatement(Axiom, "ax-1", NewApplication("|-"), imp(NewMetavariable("ph"), NewMetavariable("ps")))
	stmt.Proof = []string{"x"}
	//
	result := stmt.Substitute(map[string]Term{"ps": NewMetavariable("ch")})
	assert.Equal(t, "|- (-> ph ch)", result.String())
	assert.Equal(t, Axiom, result.Kind)
	assert.Equal(t, "ax-1", result.Label)
	assert.Nil(t, result.Proof)
	assert.False(t, result.SameTerms(stmt))
	assert.True(t, stmt.SameTerms(stmt.Substitute(nil)))
}

func Test_Statement_SExp(t *testing.T) {
	stmt := NewStatement(Provable, "th1", NewApplication("|-"), NewMetavariable("ph"))
	stmt.Proof = []string{"wph", "ax-1"}
	assert.Equal(t, "(provable th1 |- ph [wph ax-1])", stmt.SExp().String())
	//
	assert.Equal(t, "(floating wph wff ph)", NewFloating("wph", "wff", "ph").SExp().String())
	//
	consts := NewStatement(Constant, "", NewApplication("|-"), NewApplication("wff"))
	assert.Equal(t, "(const |- wff)", consts.SExp().String())
}

func Test_Kind(t *testing.T) {
	for _, k := range []Kind{Constant, Variable, Floating, Essential, Axiom, Provable} {
		kind, ok := KindOf(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, kind)
	}
	//
	_, ok := KindOf("theorem")
	assert.False(t, ok)
	assert.True(t, Axiom.IsAssertion())
	assert.False(t, Essential.IsAssertion())
}

func Test_Events(t *testing.T) {
	s1 := NewFloating("wph", "wff", "ph")
	s2 := NewStatement(Essential, "h1", NewApplication("|-"), NewMetavariable("ph"))
	s3 := NewStatement(Axiom, "a1", NewApplication("|-"), NewMetavariable("ph"))
	item := NewSegment("s", s1, NewBlock(s2, s3))
	//
	events := Events(item)
	kinds := make([]EventKind, len(events))
	//
	for i, e := range events {
		kinds[i] = e.Kind
	}
	//
	assert.Equal(t, []EventKind{Visit, EnterScope, Visit, Visit, ExitScope}, kinds)
	assert.Same(t, s2, events[2].Statement)
}

func Test_Write(t *testing.T) {
	var builder strings.Builder
	//
	item := NewBlock(NewFloating("wph", "wff", "ph"), NewBlock())
	assert.NoError(t, Write(&builder, item))
	assert.Equal(t, "(block\n  (floating wph wff ph)\n  (block)\n)\n", builder.String())
}
