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
package parser

import (
	"strings"
	"testing"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const implicational = `
; Minimal implicational calculus
(const |- wff ->)
(var ph ps)
(floating wph wff ph)
(floating wps wff ps)
(axiom wi wff (-> ph ps))
(segment axioms
  (axiom ax-1 |- (-> ph (-> ps ph))))
(block
  (essential min |- ph)
  (essential maj |- (-> ph ps))
  (axiom ax-mp |- ps))
(provable th1 |- (-> ph (-> ph ph)) [wph wph ax-1])
`

func parse(t *testing.T, text string) (*ast.Database, []source.SyntaxError) {
	t.Helper()
	//
	return Parse(source.NewSourceFile("test.mmc", []byte(text)))
}

func Test_Parse_Database(t *testing.T) {
	db, errs := parse(t, implicational)
	require.Empty(t, errs)
	require.Len(t, db.Items, 8)
	//
	consts := db.Items[0].(*ast.Statement)
	assert.Equal(t, ast.Constant, consts.Kind)
	assert.Equal(t, "|- wff ->", consts.String())
	//
	wph := db.Items[2].(*ast.Statement)
	assert.Equal(t, ast.NewFloating("wph", "wff", "ph"), wph)
	//
	wi := db.Items[4].(*ast.Statement)
	assert.Equal(t, ast.Axiom, wi.Kind)
	assert.True(t, wi.Terms[1].Equals(ast.NewApplication("->", ast.NewMetavariable("ph"), ast.NewMetavariable("ps"))))
	//
	segment := db.Items[5].(*ast.Segment)
	assert.Equal(t, "axioms", segment.Name)
	assert.Len(t, segment.Items, 1)
	//
	block := db.Items[6].(*ast.Block)
	require.Len(t, block.Items, 3)
	assert.Equal(t, "maj", block.Items[1].(*ast.Statement).Label)
	//
	th1 := db.Items[7].(*ast.Statement)
	assert.Equal(t, ast.Provable, th1.Kind)
	assert.Equal(t, []string{"wph", "wph", "ax-1"}, th1.Proof)
	assert.Equal(t, "|- (-> ph (-> ph ph))", th1.String())
}

func Test_Parse_RoundTrip(t *testing.T) {
	db, errs := parse(t, implicational)
	require.Empty(t, errs)
	//
	var builder strings.Builder
	//
	for _, item := range db.Items {
		require.NoError(t, ast.Write(&builder, item))
	}
	//
	again, errs := parse(t, builder.String())
	require.Empty(t, errs)
	assert.Equal(t, db, again)
}

func Test_Parse_BlockScopedVariables(t *testing.T) {
	db, errs := parse(t, `
(block (var x) (axiom a T x))
(axiom b T x)`)
	require.Empty(t, errs)
	//
	a := db.Items[0].(*ast.Block).Items[1].(*ast.Statement)
	_, ok := a.Terms[1].(*ast.Metavariable)
	assert.True(t, ok)
	// Outside the block x is a constant
	b := db.Items[1].(*ast.Statement)
	_, ok = b.Terms[1].(*ast.Application)
	assert.True(t, ok)
}

func Test_Parse_Files(t *testing.T) {
	files := []source.File{
		*source.NewSourceFile("a.mmc", []byte("(var ph)")),
		*source.NewSourceFile("b.mmc", []byte("(floating wph wff ph)")),
	}
	//
	db, errs := ParseFiles(files...)
	require.Empty(t, errs)
	assert.Len(t, db.Items, 2)
}

func Test_Parse_Locations(t *testing.T) {
	files := []source.File{
		*source.NewSourceFile("a.mmc", []byte("(var ph)\n(floating wph wff ph)")),
		*source.NewSourceFile("b.mmc", []byte("(block\n  (axiom ax |- ph))")),
	}
	//
	db, locations, errs := ParseFilesWithLocations(files...)
	require.Empty(t, errs)
	require.Len(t, locations, 2)
	//
	err, ok := locations.SyntaxError(db.Items[1], "bad floating")
	require.True(t, ok)
	assert.Equal(t, "a.mmc", err.SourceFile().Filename())
	span := err.Span()
	assert.Equal(t, 9, span.Start())
	// Items nested within blocks are located too
	ax := db.Items[2].(*ast.Block).Items[0]
	err, ok = locations.SyntaxError(ax, "bad axiom")
	require.True(t, ok)
	assert.Equal(t, "b.mmc:2: bad axiom", err.Error())
	//
	_, ok = locations.SyntaxError(ast.NewFloating("wps", "wff", "ps"), "unknown")
	assert.False(t, ok)
}

func Test_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
		line    int
	}{
		{"unbalanced", "(axiom a |- x", "unexpected end-of-file", 1},
		{"not a list", "axiom", "expected statement, block or segment", 1},
		{"unknown kind", "(theorem a |- x)", "unknown statement kind \"theorem\"", 1},
		{"missing label", "(axiom)", "statement requires a label", 1},
		{"missing terms", "(axiom a)", "statement requires at least one term", 1},
		{"floating arity", "(var x)\n(floating wx wff)", "floating statement requires a label, a typecode and a variable", 2},
		{"floating constant", "(floating wx wff x)", "unknown variable x", 1},
		{"applied variable", "(var f)\n(axiom a |- (f x))", "variable f cannot be applied", 2},
		{"nested segment", "(block (segment s))", "segments are only permitted at the top level", 1},
		{"segment name", "(segment)", "segment requires a name", 1},
		{"constant variable", "(var x)\n(const x)", "x already declared as a variable", 2},
		{"array term", "(axiom a |- [x])", "invalid s-expression (*sexp.Array)", 1},
		{"script symbols", "(provable p |- x [a (b)])", "expected symbol", 1},
	}
	//
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, errs := parse(t, test.text)
			require.NotEmpty(t, errs)
			line := errs[0].FirstEnclosingLine()
			assert.Equal(t, test.message, errs[0].Message())
			assert.Equal(t, test.line, line.Number())
		})
	}
}

func Test_Parse_ContinuesAfterError(t *testing.T) {
	db, errs := parse(t, "(axiom)\n(const T)\n(theorem x)")
	assert.Len(t, errs, 2)
	assert.Len(t, db.Items, 1)
}

func Test_ParseTerms(t *testing.T) {
	terms, errs := ParseTerms(source.NewSourceFile("goal", []byte("|- (-> ph (-> ps ph))")), "ph", "ps")
	require.Empty(t, errs)
	require.Len(t, terms, 2)
	//
	ph, ps := ast.NewMetavariable("ph"), ast.NewMetavariable("ps")
	assert.True(t, terms[0].Equals(ast.NewApplication("|-")))
	assert.True(t, terms[1].Equals(ast.NewApplication("->", ph, ast.NewApplication("->", ps, ph))))
	//
	_, errs = ParseTerms(source.NewSourceFile("goal", []byte("|- (ph")), "ph")
	assert.Len(t, errs, 1)
}
