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
package composer

import (
	"fmt"
)

// ErrorKind classifies the ways in which building a theorem or applying one
// can fail.
type ErrorKind uint8

const (
	// ArityMismatch indicates the wrong number of hypothesis proofs was given.
	ArityMismatch ErrorKind = iota + 1
	// UnificationFailure indicates no binding satisfies a required match.
	UnificationFailure
	// InconsistentBinding indicates a variable was bound to two distinct terms.
	InconsistentBinding
	// UnboundVariable indicates a declared variable never received a binding.
	UnboundVariable
	// MalformedCategoryProof indicates a supplied category proof has the wrong
	// shape or the wrong typecode.
	MalformedCategoryProof
	// CategoryProofUnavailable indicates the category prover was exhausted.
	CategoryProofUnavailable
	// DeferredResolutionFailure indicates a deferred proof strategy failed.
	DeferredResolutionFailure
	// ScopeCompletenessViolation indicates a free variable of a new theorem has
	// no (or more than one) visible declaration.
	ScopeCompletenessViolation
	// UnknownLabel indicates a label lookup missed.
	UnknownLabel
	// ScopeMisuse indicates scopes or segments were not properly nested.
	ScopeMisuse
	// DuplicateLabel indicates a label was registered twice.
	DuplicateLabel
	// MalformedStatement indicates a statement does not have the shape its kind
	// requires.
	MalformedStatement
	// InvalidReference indicates a reference proof given for inlining does not
	// prove the theorem being inlined.
	InvalidReference
	// RecursionLimit indicates proof construction recursed too deeply, or
	// re-entered an obligation already being proved.
	RecursionLimit
)

var errorKindNames = map[ErrorKind]string{
	ArityMismatch:              "arity mismatch",
	UnificationFailure:         "unification failure",
	InconsistentBinding:        "inconsistent binding",
	UnboundVariable:            "unbound variable",
	MalformedCategoryProof:     "malformed category proof",
	CategoryProofUnavailable:   "category proof unavailable",
	DeferredResolutionFailure:  "deferred resolution failure",
	ScopeCompletenessViolation: "scope completeness violation",
	UnknownLabel:               "unknown label",
	ScopeMisuse:                "scope misuse",
	DuplicateLabel:             "duplicate label",
	MalformedStatement:         "malformed statement",
	InvalidReference:           "invalid reference proof",
	RecursionLimit:             "recursion limit",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	//
	return fmt.Sprintf("error(%d)", k)
}

// Error is the error type returned by all operations of this package.  Errors
// are matched by kind, hence errors.Is(err, ErrUnboundVariable) holds for any
// error of kind UnboundVariable regardless of its message.
type Error struct {
	Kind    ErrorKind
	Message string
	// Cause is the underlying failure (if any), e.g. the error raised by a
	// deferred proof strategy.
	Cause error
}

// Sentinel errors for use with errors.Is.
var (
	ErrArityMismatch            = &Error{Kind: ArityMismatch}
	ErrUnification              = &Error{Kind: UnificationFailure}
	ErrInconsistentBinding      = &Error{Kind: InconsistentBinding}
	ErrUnboundVariable          = &Error{Kind: UnboundVariable}
	ErrMalformedCategoryProof   = &Error{Kind: MalformedCategoryProof}
	ErrCategoryProofUnavailable = &Error{Kind: CategoryProofUnavailable}
	ErrDeferredResolution       = &Error{Kind: DeferredResolutionFailure}
	ErrScopeCompleteness        = &Error{Kind: ScopeCompletenessViolation}
	ErrUnknownLabel             = &Error{Kind: UnknownLabel}
	ErrScopeMisuse              = &Error{Kind: ScopeMisuse}
	ErrDuplicateLabel           = &Error{Kind: DuplicateLabel}
	ErrMalformedStatement       = &Error{Kind: MalformedStatement}
	ErrInvalidReference         = &Error{Kind: InvalidReference}
	ErrRecursionLimit           = &Error{Kind: RecursionLimit}
)

// Errorf constructs a new error of a given kind.  This is exported so that
// collaborators (e.g. category provers) can report failures in the same
// vocabulary.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapf(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	//
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	//
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	//
	return msg
}

// Unwrap exposes the underlying cause (if any).
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether a target error has the same kind as this error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
