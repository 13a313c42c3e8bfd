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
package sexp

import (
	"unicode"

	"github.com/consensys/go-mmcompose/pkg/util/source"
)

// ParseAll reads every top-level expression in a source file, together with a
// map locating each expression (at every depth) within the file.  Parsing
// stops at the first malformed expression, returning whatever was read before
// it.
func ParseAll(srcfile *source.File) ([]SExp, *source.Map[SExp], *source.SyntaxError) {
	var (
		r     = newReader(srcfile)
		exprs []SExp
	)
	//
	for r.skipBlanks(); !r.atEnd(); r.skipBlanks() {
		e, err := r.read()
		if err != nil {
			return exprs, r.srcmap, err
		}
		//
		exprs = append(exprs, e)
	}
	//
	return exprs, r.srcmap, nil
}

// reader walks the runes of a single source file.
type reader struct {
	srcfile *source.File
	text    []rune
	pos     int
	srcmap  *source.Map[SExp]
}

func newReader(srcfile *source.File) *reader {
	return &reader{
		srcfile: srcfile,
		text:    srcfile.Contents(),
		srcmap:  source.NewSourceMap[SExp](srcfile),
	}
}

// read the expression starting at the current (non-blank) position.
func (r *reader) read() (SExp, *source.SyntaxError) {
	var (
		start = r.pos
		expr  SExp
	)
	//
	switch r.text[r.pos] {
	case ')', ']':
		return nil, r.errorAt(r.pos, "unexpected end-of-sequence")
	case '(':
		elements, err := r.readUntil(')')
		if err != nil {
			return nil, err
		}
		//
		expr = &List{elements}
	case '[':
		elements, err := r.readUntil(']')
		if err != nil {
			return nil, err
		}
		//
		expr = &Array{elements}
	default:
		expr = &Symbol{r.readSymbol()}
	}
	//
	r.srcmap.Put(expr, source.NewSpan(start, r.pos))
	//
	return expr, nil
}

// readUntil consumes an opening bracket, then expressions up to and including
// the given closing bracket.
func (r *reader) readUntil(closing rune) ([]SExp, *source.SyntaxError) {
	var elements []SExp
	//
	r.pos++
	//
	for r.skipBlanks(); ; r.skipBlanks() {
		if r.atEnd() {
			return nil, r.errorAt(r.pos, "unexpected end-of-file")
		} else if r.text[r.pos] == closing {
			r.pos++
			return elements, nil
		}
		//
		e, err := r.read()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, e)
	}
}

func (r *reader) readSymbol() string {
	start := r.pos
	//
	for !r.atEnd() && !isDelimiter(r.text[r.pos]) {
		r.pos++
	}
	//
	return string(r.text[start:r.pos])
}

// skipBlanks moves past whitespace and line comments.
func (r *reader) skipBlanks() {
	for !r.atEnd() {
		switch c := r.text[r.pos]; {
		case c == ';':
			for !r.atEnd() && r.text[r.pos] != '\n' {
				r.pos++
			}
		case unicode.IsSpace(c):
			r.pos++
		default:
			return
		}
	}
}

func (r *reader) atEnd() bool {
	return r.pos >= len(r.text)
}

// errorAt reports an error covering the single rune at pos, or an empty span
// at the end of the file.
func (r *reader) errorAt(pos int, msg string) *source.SyntaxError {
	end := min(pos+1, len(r.text))
	return r.srcfile.SyntaxError(source.NewSpan(min(pos, end), end), msg)
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', ';':
		return true
	default:
		return unicode.IsSpace(c)
	}
}
