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
package termio

import (
	"fmt"
	"strings"
)

// Colour identifies one of the eight standard terminal colours.
type Colour uint

const (
	// Black terminal colour
	Black Colour = iota
	// Red terminal colour
	Red
	// Green terminal colour
	Green
	// Yellow terminal colour
	Yellow
	// Blue terminal colour
	Blue
	// Magenta terminal colour
	Magenta
	// Cyan terminal colour
	Cyan
	// White terminal colour
	White
)

// AnsiEscape represents an ANSI escape code used for formatting text in a
// terminal.  Attributes are accumulated and then rendered by Build.
type AnsiEscape struct {
	codes []string
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{}
}

// ResetAnsiEscape constructs an escape which clears all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]string{"0"}}
}

// Bold adds the bold attribute.
func (p AnsiEscape) Bold() AnsiEscape {
	return p.with("1")
}

// Underline adds the underline attribute.
func (p AnsiEscape) Underline() AnsiEscape {
	return p.with("4")
}

// FgColour sets the foreground colour.
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(fmt.Sprintf("%d", 30+col))
}

// BgColour sets the background colour.
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(fmt.Sprintf("%d", 40+col))
}

// Build constructs the final escape.
func (p AnsiEscape) Build() string {
	return "\033[" + strings.Join(p.codes, ";") + "m"
}

func (p AnsiEscape) with(code string) AnsiEscape {
	codes := make([]string, len(p.codes), len(p.codes)+1)
	copy(codes, p.codes)
	//
	return AnsiEscape{append(codes, code)}
}

// Highlight wraps some text in a given escape, resetting all attributes
// afterwards.
func Highlight(text string, escape AnsiEscape) string {
	return escape.Build() + text + ResetAnsiEscape().Build()
}
