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
	"github.com/consensys/go-mmcompose/pkg/util/source"
)

// Directive extracts an expectation from a given line of a test file.  It
// reports whether the line is a directive at all, the expectation it describes
// and, potentially, an error if the directive itself is malformed.
type Directive[T any] func(int, []source.Line, *source.File) (bool, T, error)

// ExtractDirectives extracts the expectations given in the leading comment
// block of a test file.  Scanning stops at the first line which no directive
// matches.
func ExtractDirectives[T any](srcfile *source.File, directives ...Directive[T]) ([]T, []error) {
	var (
		lines   = srcfile.Lines()
		items   []T
		errors  []error
		matched = true
	)
	//
	for i := 0; i < len(lines) && matched; i++ {
		matched = false
		//
		for _, directive := range directives {
			ok, item, err := directive(i, lines, srcfile)
			//
			switch {
			case err != nil:
				errors = append(errors, err)
				matched = true
			case ok:
				items = append(items, item)
				matched = true
			}
		}
	}
	//
	return items, errors
}
