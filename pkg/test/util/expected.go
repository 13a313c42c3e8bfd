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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-mmcompose/pkg/util/source"
)

const (
	errorPrefix  = ";;error:"
	rejectPrefix = ";;reject:"
)

// extractSyntaxError recognises directives of the form ";;error:L:X-Y:msg",
// which expect a syntax error with message msg covering columns X up to (but
// not including) Y of line L.
func extractSyntaxError(lineno int, lines []source.Line, srcfile *source.File) (bool, source.SyntaxError, error) {
	contents := lines[lineno].String()
	//
	if !strings.HasPrefix(contents, errorPrefix) {
		return false, source.SyntaxError{}, nil
	}
	//
	line, start, end, msg, err := parseExpectedError(strings.TrimPrefix(contents, errorPrefix))
	if err != nil {
		return true, source.SyntaxError{}, err
	}
	//
	span, err := determineFileSpan(line, start, end, lines)
	if err != nil {
		return true, source.SyntaxError{}, err
	}
	//
	return true, *srcfile.SyntaxError(span, msg), nil
}

// extractRejection recognises directives of the form ";;reject:msg", which
// expect loading or verifying the database to fail with the given message.
func extractRejection(lineno int, lines []source.Line, _ *source.File) (bool, string, error) {
	contents := lines[lineno].String()
	//
	if !strings.HasPrefix(contents, rejectPrefix) {
		return false, "", nil
	}
	//
	return true, strings.TrimPrefix(contents, rejectPrefix), nil
}

func parseExpectedError(contents string) (line, start, end int, msg string, err error) {
	splits := strings.SplitN(contents, ":", 3)
	//
	if len(splits) != 3 {
		return 0, 0, 0, "", fmt.Errorf("malformed expected error \"%s\", should be e.g. \";;error:X:Y-Z:msg\"", contents)
	}
	//
	if line, err = strconv.Atoi(splits[0]); err != nil {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (%s)", splits[0], err.Error())
	} else if line == 0 {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (lines numbered from 1)", splits[0])
	}
	//
	if start, end, err = parseColumns(splits[1]); err != nil {
		return 0, 0, 0, "", err
	}
	//
	return line, start, end, splits[2], nil
}

func parseColumns(columns string) (start, end int, err error) {
	splits := strings.Split(columns, "-")
	//
	if len(splits) != 2 {
		return 0, 0, fmt.Errorf("invalid columns \"%s\" (malformed, should be X-Y)", columns)
	} else if start, err = strconv.Atoi(splits[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid columns \"%s\" (%s)", columns, err.Error())
	} else if start == 0 {
		return 0, 0, fmt.Errorf("invalid columns \"%s\" (columns numbered from 1)", columns)
	} else if end, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid columns \"%s\" (%s)", columns, err.Error())
	}
	//
	return start, end, nil
}

// determineFileSpan converts a line number and (one-based) column range into
// a span of the source file.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (non-existent line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	start--
	end--
	//
	if start >= line.Length() || end > line.Length() {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows to following line)", lineno, start, end)
	}
	//
	return source.NewSpan(start+line.Start(), end+line.Start()), nil
}
