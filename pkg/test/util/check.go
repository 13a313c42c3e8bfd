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
package util

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/metamath/parser"
	"github.com/consensys/go-mmcompose/pkg/metamath/verify"
	"github.com/consensys/go-mmcompose/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the valid and invalid databases are found.
const TestDir = "../../testdata"

// CheckValid checks that a given database from the "valid" directory parses,
// loads and has every stored proof verified.  The database is then encoded,
// re-read and checked again, to ensure nothing is lost along the way.
func CheckValid(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/valid/%s.mmc", TestDir, test)
	// Enable testing each database in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	c := loadDatabase(t, srcfile)
	//
	if n := checkProofs(t, c); n == 0 {
		t.Fatalf("%s contains no proofs", filename)
	}
	// Round trip
	var buf bytes.Buffer
	//
	if err := c.Encode(&buf, ""); err != nil {
		t.Fatal(err)
	}
	//
	reread := loadDatabase(t, source.NewSourceFile(filename, buf.Bytes()))
	//
	if len(reread.Theorems()) != len(c.Theorems()) {
		t.Fatalf("%s: encoding lost theorems (%d vs %d)", filename, len(reread.Theorems()), len(c.Theorems()))
	}
	//
	checkProofs(t, reread)
}

// CheckInvalid checks that a given database from the "invalid" directory
// fails to parse with exactly the syntax errors given by its ";;error"
// directives.
func CheckInvalid(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/invalid/%s.mmc", TestDir, test)
	// Enable testing each database in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	_, actual := parser.Parse(srcfile)
	//
	expected, errs := ExtractDirectives(srcfile, extractSyntaxError)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	}
	//
	checkExpectedErrors(t, srcfile, actual, expected)
}

// CheckRejected checks that a given database from the "invalid" directory
// parses, but that loading it and verifying its proofs fails with exactly
// the messages given by its ";;reject" directives.  Verification failures
// are prefixed with the label of the offending theorem.
func CheckRejected(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/invalid/%s.mmc", TestDir, test)
		actual   []string
	)
	// Enable testing each database in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	expected, errs := ExtractDirectives(srcfile, extractRejection)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	} else if len(expected) == 0 {
		t.Fatalf("%s has no \";;reject\" directives", filename)
	}
	//
	db := parseDatabase(t, srcfile)
	c := composer.New()
	//
	for _, err := range c.LoadDatabase(db) {
		actual = append(actual, err.Error())
	}
	//
	for _, theorem := range c.Theorems() {
		if _, ok := theorem.StoredProof(); !ok {
			continue
		} else if err := verify.CheckTheorem(c, theorem); err != nil {
			actual = append(actual, fmt.Sprintf("%s: %s", theorem.Label(), err.Error()))
		}
	}
	//
	checkExpectedMessages(t, filename, actual, expected)
}

func parseDatabase(t *testing.T, srcfile *source.File) *ast.Database {
	db, errs := parser.Parse(srcfile)
	//
	if len(errs) > 0 {
		msg := fmt.Sprintf("Error %s\n", srcfile.Filename())
		for _, err := range errs {
			msg = fmt.Sprintf("%s unexpected error %s", msg, errorToString(err))
		}
		//
		t.Fatal(msg)
	}
	//
	return db
}

func loadDatabase(t *testing.T, srcfile *source.File) *composer.Composer {
	c := composer.New()
	//
	if errs := c.LoadDatabase(parseDatabase(t, srcfile)); len(errs) > 0 {
		t.Fatalf("%s: %s", srcfile.Filename(), errors.Join(errs...))
	}
	//
	return c
}

// checkProofs verifies every stored proof, returning how many there were.
func checkProofs(t *testing.T, c *composer.Composer) uint {
	var count uint
	//
	for _, theorem := range c.Theorems() {
		if _, ok := theorem.StoredProof(); !ok {
			continue
		} else if err := verify.CheckTheorem(c, theorem); err != nil {
			t.Errorf("%s: %s", theorem.Label(), err)
		}
		//
		count++
	}
	//
	return count
}

func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	if len(actual) == 0 {
		t.Fatalf("Error %s should not have parsed\n", srcfile.Filename())
	}
	//
	failed := false
	msg := fmt.Sprintf("Error %s\n", srcfile.Filename())
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) {
			if expected[i].Message() == actual[i].Message() && expected[i].Span() == actual[i].Span() {
				continue
			}
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s", msg, errorToString(actual[i]))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s", msg, errorToString(expected[i]))
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func checkExpectedMessages(t *testing.T, filename string, actual, expected []string) {
	failed := false
	msg := fmt.Sprintf("Error %s\n", filename)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && actual[i] == expected[i] {
			continue
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected rejection %s\n", msg, actual[i])
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected rejection %s\n", msg, expected[i])
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func readSourceFile(t *testing.T, filename string) *source.File {
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewSourceFile(filename, data)
}

// Convert a syntax error into a useful human readable string.
func errorToString(err source.SyntaxError) string {
	span := err.Span()
	line := err.FirstEnclosingLine()
	offset := span.Start() - line.Start()
	// Ensure length does not overflow line
	length := min(line.Length()-offset, span.Length())
	//
	return fmt.Sprintf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(), line.Number(), 1+offset, 1+offset+length,
		err.Message())
}
