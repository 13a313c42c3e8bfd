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
package source

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-mmcompose/pkg/util/termio"
)

// File is a named document held as runes, so that spans index characters
// rather than bytes.
type File struct {
	filename string
	contents []rune
}

// NewSourceFile constructs a source file from raw (UTF-8) bytes.
func NewSourceFile(filename string, data []byte) *File {
	return &File{filename, []rune(string(data))}
}

// ReadFiles loads every named file from disk, failing on the first which
// cannot be read.
func ReadFiles(filenames ...string) ([]File, error) {
	var files []File
	//
	for _, name := range filenames {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		//
		files = append(files, *NewSourceFile(name, data))
	}
	//
	return files, nil
}

// Filename returns the name this file was created with.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the characters of this file.
func (s *File) Contents() []rune {
	return s.contents
}

// Lines splits this file into its physical lines, excluding the line
// terminators themselves.  A trailing newline does not start a further line.
func (s *File) Lines() []Line {
	var lines []Line
	//
	for start := 0; start < len(s.contents); {
		end := lineEnd(s.contents, start)
		lines = append(lines, Line{s.contents, Span{start, end}, len(lines) + 1})
		start = end + 1
	}
	//
	return lines
}

// FindFirstEnclosingLine returns the line holding the first character of a
// span.  A span starting at (or beyond) the end of the file is placed on the
// final line.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	var (
		pos    = min(span.start, len(s.contents))
		start  = 0
		number = 1
	)
	//
	for i, c := range s.contents[:pos] {
		if c == '\n' {
			start = i + 1
			number++
		}
	}
	//
	return Line{s.contents, Span{start, lineEnd(s.contents, pos)}, number}
}

// SyntaxError constructs an error located at a given span of this file.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// lineEnd returns the index of the first newline at or after pos, or the end
// of the text.
func lineEnd(text []rune, pos int) int {
	for i := pos; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	//
	return len(text)
}

// Line is one physical line of a file, numbered from 1.
type Line struct {
	text   []rune
	span   Span
	number int
}

// String returns the text of this line, without its terminator.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number returns the line number, counting from 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the index of the first character of this line within its
// file.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters on this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// SyntaxError is an error attached to a span of a source file.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the file this error was reported against.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the characters this error covers.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message without any location.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error returns "file:line: message".
func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	return fmt.Sprintf("%s:%d: %s", p.srcfile.Filename(), line.Number(), p.msg)
}

// FirstEnclosingLine returns the line on which this error starts.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

// Format renders this error as "file:line:from-to message", followed by the
// offending line and a row of carets under the reported columns.  Columns
// count from 1 and the upper bound is exclusive.  Carets never run past the
// end of the line, though at least one is always shown.
func (p *SyntaxError) Format(colour bool) string {
	var (
		sb     strings.Builder
		line   = p.FirstEnclosingLine()
		offset = max(0, p.span.start-line.Start())
		width  = max(1, min(line.Length()-offset, p.span.Length()))
		carets = strings.Repeat("^", width)
	)
	//
	fmt.Fprintf(&sb, "%s:%d:%d-%d %s\n", p.srcfile.Filename(), line.Number(), offset+1, offset+1+width, p.msg)
	sb.WriteString(line.String())
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", offset))
	//
	if colour {
		carets = termio.Highlight(carets, termio.NewAnsiEscape().FgColour(termio.Red))
	}
	//
	sb.WriteString(carets)
	//
	return sb.String()
}
