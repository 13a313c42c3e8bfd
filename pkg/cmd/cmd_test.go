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
package cmd

import (
	"bytes"
	"testing"

	"github.com/consensys/go-mmcompose/pkg/config"
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/metamath/parser"
	"github.com/consensys/go-mmcompose/pkg/metamath/verify"
	"github.com/consensys/go-mmcompose/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const database = `
(const |- wff ->)
(var ph ps ch)
(floating wph wff ph)
(floating wps wff ps)
(floating wch wff ch)
(axiom wi wff (-> ph ps))
(axiom ax-1 |- (-> ph (-> ps ph)))
(axiom ax-2 |- (-> (-> ph (-> ps ch)) (-> (-> ph ps) (-> ph ch))))
(block
  (essential min |- ph)
  (essential maj |- (-> ph ps))
  (axiom ax-mp |- ps))
(provable th1 |- (-> ph (-> ph ph)) [wph wph ax-1])
(provable bad |- (-> ph ph) [wph wph ax-1])
`

func load(t *testing.T) *composer.Composer {
	t.Helper()
	//
	c, _ := loadWithLocations(t)
	//
	return c
}

func loadWithLocations(t *testing.T) (*composer.Composer, parser.Locations) {
	t.Helper()
	//
	db, locations, errs := parser.ParseFilesWithLocations(*source.NewSourceFile("test.mmc", []byte(database)))
	require.Empty(t, errs)
	//
	var buf bytes.Buffer
	//
	c := composer.New(composerOptions(config.DefaultConfig())...)
	require.Zero(t, loadItems(&buf, c, db, locations), buf.String())
	//
	return c, locations
}

func theorem(t *testing.T, c *composer.Composer, label string) *composer.Theorem {
	t.Helper()
	//
	th, err := c.FindTheorem(label)
	require.NoError(t, err)
	//
	return th
}

func Test_CheckProofs(t *testing.T) {
	var buf bytes.Buffer
	//
	c, locations := loadWithLocations(t)
	//
	assert.Equal(t, 1, checkProofs(&buf, c, locations, true))
	assert.Contains(t, buf.String(), "test.mmc:15:1-44 bad: step 3: proved")
	assert.Contains(t, buf.String(), "checked 2 proofs (1 failed)")
	assert.NotContains(t, buf.String(), "th1: ok")
	//
	buf.Reset()
	checkProofs(&buf, c, locations, false)
	assert.Contains(t, buf.String(), "th1: ok")
}

func Test_LoadItems(t *testing.T) {
	var (
		buf  bytes.Buffer
		text = "(const wff)\n(var ph)\n(floating wph wff ph)\n(block\n  (floating wph wff ph))"
	)
	//
	db, locations, errs := parser.ParseFilesWithLocations(*source.NewSourceFile("dup.mmc", []byte(text)))
	require.Empty(t, errs)
	//
	c := composer.New()
	assert.Equal(t, 1, loadItems(&buf, c, db, locations))
	assert.Contains(t, buf.String(), "dup.mmc:4:1-7 duplicate label: label wph is already registered")
}

func Test_LoadItems_Segment(t *testing.T) {
	var (
		buf  bytes.Buffer
		text = "(const |- wff)\n(var ph)\n(floating wph wff ph)\n(segment s\n  (floating wph wff ph)\n  (axiom a1 |- ph))"
	)
	//
	db, locations, errs := parser.ParseFilesWithLocations(*source.NewSourceFile("seg.mmc", []byte(text)))
	require.Empty(t, errs)
	//
	c := composer.New()
	assert.Equal(t, 1, loadItems(&buf, c, db, locations))
	assert.Contains(t, buf.String(), "seg.mmc:5:3-24 duplicate label: label wph is already registered")
	// Later items of the segment are still loaded, and tagged
	theorem(t, c, "a1")
	assert.Len(t, c.Segment("s"), 1)
}

func Test_Prove(t *testing.T) {
	c := load(t)
	//
	goal, errs := parseGoal(c, "|- (-> ch (-> (-> ps ph) ch))")
	require.Empty(t, errs)
	//
	proof, err := prove(theorem(t, c, "ax-1"), goal, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"wch", "wps", "wph", "wi", "ax-1"}, proof.Script)
	assert.NoError(t, verify.Check(c, proof))
}

func Test_Prove_Inline(t *testing.T) {
	c := load(t)
	//
	goal, errs := parseGoal(c, "|- (-> ps (-> ps ps))")
	require.Empty(t, errs)
	//
	proof, err := prove(theorem(t, c, "th1"), goal, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"wps", "wps", "ax-1"}, proof.Script)
	assert.NoError(t, verify.Check(c, proof))
	//
	_, err = prove(theorem(t, c, "ax-1"), goal, true)
	assert.Error(t, err)
	//
	goal, errs = parseGoal(c, "|- ps")
	require.Empty(t, errs)
	_, err = prove(theorem(t, c, "th1"), goal, true)
	assert.ErrorIs(t, err, composer.ErrUnification)
}

func Test_Prove_Deferred(t *testing.T) {
	c := load(t)
	// The minor premise of ax-mp cannot be inferred from the goal alone
	goal, errs := parseGoal(c, "|- (-> ph (-> ps ph))")
	require.Empty(t, errs)
	//
	_, err := prove(theorem(t, c, "ax-mp"), goal, false)
	assert.ErrorIs(t, err, composer.ErrUnboundVariable)
}

func Test_ParseGoal_Errors(t *testing.T) {
	c := load(t)
	//
	_, errs := parseGoal(c, "")
	assert.Len(t, errs, 1)
	//
	_, errs = parseGoal(c, "|- (")
	assert.Len(t, errs, 1)
}

func Test_WriteMetrics(t *testing.T) {
	c := load(t)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, writeMetrics(&buf, c.Gatherer()))
	assert.Contains(t, buf.String(), "# TYPE mmcompose_composer_theorems_registered_total counter\n")
	assert.Contains(t, buf.String(), "mmcompose_composer_theorems_registered_total{kind=\"floating\"} 3\n")
	assert.Contains(t, buf.String(), "mmcompose_composer_theorems_registered_total{kind=\"axiom\"} 4\n")
	assert.Contains(t, buf.String(), "mmcompose_composer_theorems_registered_total{kind=\"provable\"} 2\n")
}

func Test_PrintSyntaxErrors(t *testing.T) {
	_, errs := parser.Parse(source.NewSourceFile("bad.mmc", []byte("(axiom)")))
	require.Len(t, errs, 1)
	//
	var buf bytes.Buffer
	//
	printSyntaxErrors(&buf, errs)
	assert.Contains(t, buf.String(), "bad.mmc:1:")
	assert.Contains(t, buf.String(), "statement requires a label")
}

func Test_Emit(t *testing.T) {
	c := load(t)
	//
	var buf bytes.Buffer
	//
	require.NoError(t, c.Encode(&buf, ""))
	//
	db, errs := parser.Parse(source.NewSourceFile("out.mmc", buf.Bytes()))
	require.Empty(t, errs)
	assert.Len(t, db.Items, len(c.Items()))
	assert.IsType(t, &ast.Block{}, db.Items[8])
}

func Test_Version(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	//
	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", version())
	//
	Version = ""
	assert.NotEmpty(t, version())
}
