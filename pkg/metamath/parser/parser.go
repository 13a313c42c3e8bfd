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
	"fmt"
	"maps"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/util/source"
	"github.com/consensys/go-mmcompose/pkg/util/source/sexp"
	log "github.com/sirupsen/logrus"
)

// Parse a database from a given source file.  Every top-level item is parsed,
// with syntax errors for all malformed items reported together.  Symbols
// declared by a "var" statement (and still in scope) are parsed as
// metavariables, whilst all other symbols are parsed as constants.
func Parse(srcfile *source.File) (*ast.Database, []source.SyntaxError) {
	elements, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := newParser(srcmap)
	db := &ast.Database{}
	//
	var errors []source.SyntaxError
	//
	for _, e := range elements {
		item, errs := p.parseItem(e, true)
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			db.Items = append(db.Items, item)
		}
	}
	//
	log.Debugf("parsed %d items from %s", len(db.Items), srcfile.Filename())
	//
	return db, errors
}

// ParseFiles parses one or more source files into a single database, with
// variables declared in one file visible in those which follow.
func ParseFiles(srcfiles ...source.File) (*ast.Database, []source.SyntaxError) {
	db, _, errs := ParseFilesWithLocations(srcfiles...)
	//
	return db, errs
}

// ParseFilesWithLocations parses one or more source files (as for ParseFiles)
// whilst also recording where each parsed item originated.
func ParseFilesWithLocations(srcfiles ...source.File) (*ast.Database, Locations, []source.SyntaxError) {
	var (
		db        = &ast.Database{}
		locations Locations
		errors    []source.SyntaxError
		variables = make(map[string]bool)
	)
	//
	for i := range srcfiles {
		elements, srcmap, err := sexp.ParseAll(&srcfiles[i])
		//
		if err != nil {
			errors = append(errors, *err)
			continue
		}
		//
		p := newParser(srcmap)
		p.variables = variables
		//
		for _, e := range elements {
			if item, errs := p.parseItem(e, true); len(errs) > 0 {
				errors = append(errors, errs...)
			} else {
				db.Items = append(db.Items, item)
			}
		}
		//
		variables = p.variables
		locations = append(locations, p.items)
	}
	//
	return db, locations, errors
}

// Locations records, for each source file parsed, the span of every item
// parsed from it.
type Locations []*source.Map[ast.Item]

// SyntaxError constructs an error highlighting the origin of a given item.
// This fails if the item was not parsed from any of these files.
func (l Locations) SyntaxError(item ast.Item, msg string) (*source.SyntaxError, bool) {
	for _, srcmap := range l {
		if srcmap.Has(item) {
			return srcmap.SyntaxError(item, msg), true
		}
	}
	//
	return nil, false
}

// ParseTerms parses every s-expression in a given source file as a term, where
// the given variables are parsed as metavariables.  This is useful for
// reading goals against an already loaded database.
func ParseTerms(srcfile *source.File, variables ...string) ([]ast.Term, []source.SyntaxError) {
	elements, srcmap, err := sexp.ParseAll(srcfile)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := newParser(srcmap)
	//
	for _, v := range variables {
		p.variables[v] = true
	}
	//
	return p.parseTerms(elements)
}

type parser struct {
	srcmap     *source.Map[sexp.SExp]
	translator *sexp.Translator[ast.Term]
	// Origin of every item parsed
	items *source.Map[ast.Item]
	// Variables currently in scope
	variables map[string]bool
}

func newParser(srcmap *source.Map[sexp.SExp]) *parser {
	p := &parser{srcmap: srcmap, variables: make(map[string]bool)}
	p.items = source.NewSourceMap[ast.Item](srcmap.Source())
	p.translator = sexp.NewTranslator[ast.Term](srcmap, p.symbolRule, p.applicationRule)
	//
	return p
}

func (p *parser) symbolRule(symbol string) (ast.Term, error) {
	if p.variables[symbol] {
		return ast.NewMetavariable(symbol), nil
	}
	//
	return ast.NewApplication(symbol), nil
}

func (p *parser) applicationRule(head string, args []ast.Term) (ast.Term, error) {
	if p.variables[head] {
		return nil, fmt.Errorf("variable %s cannot be applied", head)
	}
	//
	return ast.NewApplication(head, args...), nil
}

func (p *parser) parseItem(e sexp.SExp, toplevel bool) (ast.Item, []source.SyntaxError) {
	item, errs := p.parseUnlocatedItem(e, toplevel)
	//
	if len(errs) == 0 {
		p.items.Put(item, p.srcmap.Get(e))
	}
	//
	return item, errs
}

func (p *parser) parseUnlocatedItem(e sexp.SExp, toplevel bool) (ast.Item, []source.SyntaxError) {
	list := e.AsList()
	//
	if list == nil || list.Len() == 0 || list.Get(0).AsSymbol() == nil {
		return nil, p.errors(e, "expected statement, block or segment")
	}
	//
	switch keyword := list.Head(); keyword {
	case "block":
		return p.parseBlock(list)
	case "segment":
		if !toplevel {
			return nil, p.errors(e, "segments are only permitted at the top level")
		}
		//
		return p.parseSegment(list)
	default:
		kind, ok := ast.KindOf(keyword)
		//
		if !ok {
			return nil, p.errors(list.Get(0), fmt.Sprintf("unknown statement kind \"%s\"", keyword))
		}
		//
		return p.parseStatement(kind, list)
	}
}

func (p *parser) parseBlock(list *sexp.List) (ast.Item, []source.SyntaxError) {
	// Variables declared within a block go out of scope at its end
	outer := maps.Clone(p.variables)
	//
	defer func() { p.variables = outer }()
	//
	items, errs := p.parseItems(list.Elements[1:], false)
	//
	return ast.NewBlock(items...), errs
}

func (p *parser) parseSegment(list *sexp.List) (ast.Item, []source.SyntaxError) {
	if list.Len() < 2 || list.Get(1).AsSymbol() == nil {
		return nil, p.errors(list, "segment requires a name")
	}
	//
	items, errs := p.parseItems(list.Elements[2:], false)
	//
	return ast.NewSegment(list.Get(1).AsSymbol().Value, items...), errs
}

func (p *parser) parseItems(elements []sexp.SExp, toplevel bool) ([]ast.Item, []source.SyntaxError) {
	var (
		items  []ast.Item
		errors []source.SyntaxError
	)
	//
	for _, e := range elements {
		item, errs := p.parseItem(e, toplevel)
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
		} else {
			items = append(items, item)
		}
	}
	//
	return items, errors
}

func (p *parser) parseStatement(kind ast.Kind, list *sexp.List) (ast.Item, []source.SyntaxError) {
	switch kind {
	case ast.Constant:
		return p.parseConstants(list)
	case ast.Variable:
		return p.parseVariables(list)
	case ast.Floating:
		return p.parseFloating(list)
	}
	//
	if list.Len() < 2 || list.Get(1).AsSymbol() == nil {
		return nil, p.errors(list, "statement requires a label")
	}
	//
	var (
		label    = list.Get(1).AsSymbol().Value
		elements = list.Elements[2:]
		proof    []string
		errs     []source.SyntaxError
	)
	// Provable statements may end with their proof script
	if n := len(elements); kind == ast.Provable && n > 0 && elements[n-1].AsArray() != nil {
		if proof, errs = p.parseScript(elements[n-1].AsArray()); len(errs) > 0 {
			return nil, errs
		}
		//
		elements = elements[:n-1]
	}
	//
	terms, errs := p.parseTerms(elements)
	if len(errs) > 0 {
		return nil, errs
	} else if len(terms) == 0 {
		return nil, p.errors(list, "statement requires at least one term")
	}
	//
	stmt := ast.NewStatement(kind, label, terms...)
	stmt.Proof = proof
	//
	return stmt, nil
}

func (p *parser) parseConstants(list *sexp.List) (ast.Item, []source.SyntaxError) {
	symbols, errs := p.parseSymbols(list.Elements[1:])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	terms := make([]ast.Term, len(symbols))
	//
	for i, s := range symbols {
		if p.variables[s] {
			return nil, p.errors(list.Get(i+1), fmt.Sprintf("%s already declared as a variable", s))
		}
		//
		terms[i] = ast.NewApplication(s)
	}
	//
	return ast.NewStatement(ast.Constant, "", terms...), nil
}

func (p *parser) parseVariables(list *sexp.List) (ast.Item, []source.SyntaxError) {
	symbols, errs := p.parseSymbols(list.Elements[1:])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	terms := make([]ast.Term, len(symbols))
	//
	for i, s := range symbols {
		p.variables[s] = true
		terms[i] = ast.NewMetavariable(s)
	}
	//
	return ast.NewStatement(ast.Variable, "", terms...), nil
}

func (p *parser) parseFloating(list *sexp.List) (ast.Item, []source.SyntaxError) {
	if list.Len() != 4 {
		return nil, p.errors(list, "floating statement requires a label, a typecode and a variable")
	}
	//
	symbols, errs := p.parseSymbols(list.Elements[1:])
	if len(errs) > 0 {
		return nil, errs
	} else if !p.variables[symbols[2]] {
		return nil, p.errors(list.Get(3), fmt.Sprintf("unknown variable %s", symbols[2]))
	}
	//
	return ast.NewFloating(symbols[0], symbols[1], symbols[2]), nil
}

func (p *parser) parseTerms(elements []sexp.SExp) ([]ast.Term, []source.SyntaxError) {
	var (
		terms  = make([]ast.Term, len(elements))
		errors []source.SyntaxError
	)
	//
	for i, e := range elements {
		var errs []source.SyntaxError
		//
		terms[i], errs = p.translator.Translate(e)
		errors = append(errors, errs...)
	}
	//
	return terms, errors
}

func (p *parser) parseScript(script *sexp.Array) ([]string, []source.SyntaxError) {
	return p.parseSymbols(script.Elements)
}

func (p *parser) parseSymbols(elements []sexp.SExp) ([]string, []source.SyntaxError) {
	var (
		symbols = make([]string, len(elements))
		errors  []source.SyntaxError
	)
	//
	for i, e := range elements {
		if s := e.AsSymbol(); s != nil {
			symbols[i] = s.Value
		} else {
			errors = append(errors, p.errors(e, "expected symbol")...)
		}
	}
	//
	return symbols, errors
}

func (p *parser) errors(e sexp.SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(e, msg)}
}
