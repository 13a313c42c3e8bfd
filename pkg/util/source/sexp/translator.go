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
	"fmt"
	"reflect"

	"github.com/consensys/go-mmcompose/pkg/util/source"
)

// LeafRule builds a term from a bare symbol.
type LeafRule[T comparable] func(symbol string) (T, error)

// NodeRule builds a term from the head symbol of a list and the terms already
// built from its remaining elements.
type NodeRule[T comparable] func(head string, args []T) (T, error)

// Translator turns expressions into terms of type T bottom-up, recording where
// each term came from.  Arrays are never valid terms.
type Translator[T comparable] struct {
	leaf  LeafRule[T]
	node  NodeRule[T]
	exprs *source.Map[SExp]
	terms *source.Map[T]
}

// NewTranslator constructs a translator for expressions located by srcmap.
func NewTranslator[T comparable](srcmap *source.Map[SExp], leaf LeafRule[T], node NodeRule[T]) *Translator[T] {
	return &Translator[T]{
		leaf:  leaf,
		node:  node,
		exprs: srcmap,
		terms: source.NewSourceMap[T](srcmap.Source()),
	}
}

// SourceMap locates every term successfully built by this translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.terms
}

// Translate builds the term for a given expression.  Errors in sibling
// arguments are all reported, though no term is built when any occur.
func (p *Translator[T]) Translate(e SExp) (T, []source.SyntaxError) {
	var (
		term T
		err  error
	)
	//
	switch e := e.(type) {
	case *Symbol:
		term, err = p.leaf(e.Value)
	case *List:
		var errs []source.SyntaxError
		//
		if term, errs = p.translateList(e); len(errs) > 0 {
			return term, errs
		}
	default:
		err = fmt.Errorf("invalid s-expression (%s)", reflect.TypeOf(e))
	}
	//
	if err != nil {
		var empty T
		return empty, p.errors(e, err.Error())
	}
	//
	p.terms.Put(term, p.exprs.Get(e))
	//
	return term, nil
}

func (p *Translator[T]) translateList(l *List) (T, []source.SyntaxError) {
	var (
		empty  T
		head   = l.Head()
		args   = make([]T, 0, max(0, l.Len()-1))
		errors []source.SyntaxError
	)
	//
	if head == "" {
		return empty, p.errors(l, "invalid list")
	}
	//
	for _, e := range l.Elements[1:] {
		arg, errs := p.Translate(e)
		args = append(args, arg)
		errors = append(errors, errs...)
	}
	//
	if len(errors) > 0 {
		return empty, errors
	}
	//
	term, err := p.node(head, args)
	if err != nil {
		return empty, p.errors(l, err.Error())
	}
	//
	return term, nil
}

func (p *Translator[T]) errors(e SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.exprs.SyntaxError(e, msg)}
}
