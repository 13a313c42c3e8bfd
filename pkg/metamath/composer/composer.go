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
	"errors"
	"io"
	"slices"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/unify"
	"github.com/consensys/go-mmcompose/pkg/util/collection/set"
	"github.com/consensys/go-mmcompose/pkg/util/collection/stack"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the default bound on nested theorem applications.
const DefaultMaxDepth = 512

// Unifier matches statement patterns.  Match unifies a theorem's statement
// against a target, whilst MatchInstance checks that a concrete statement is
// an instance of a hypothesis pattern.
type Unifier interface {
	Match(pattern *ast.Statement, target *ast.Statement) ([]unify.Binding, bool)
	MatchInstance(pattern *ast.Statement, instance *ast.Statement) (map[string]ast.Term, bool)
}

// CategoryProver derives a proof that a given term belongs to a given
// category (e.g. "wff (-> ph ps)").  A prover may itself apply theorems of the
// composer it is given.
type CategoryProver interface {
	ProveCategory(c *Composer, typecode string, term ast.Term) (*Proof, error)
}

// CategoryProverFunc adapts an ordinary function into a CategoryProver.
type CategoryProverFunc func(c *Composer, typecode string, term ast.Term) (*Proof, error)

// ProveCategory implementation for the CategoryProver interface.
func (f CategoryProverFunc) ProveCategory(c *Composer, typecode string, term ast.Term) (*Proof, error) {
	return f(c, typecode, term)
}

// noCategoryProver is used when no prover is configured, meaning every term
// assignment must come with its own category proof.
type noCategoryProver struct{}

func (noCategoryProver) ProveCategory(_ *Composer, typecode string, term ast.Term) (*Proof, error) {
	return nil, Errorf(CategoryProofUnavailable, "no category prover for `%s %s`", typecode, term)
}

// Option configures a composer on construction.
type Option func(*Composer)

// WithUnifier sets the unifier used for matching.
func WithUnifier(unifier Unifier) Option {
	return func(c *Composer) { c.unifier = unifier }
}

// WithCategoryProver sets the prover used for bare term assignments.
func WithCategoryProver(prover CategoryProver) Option {
	return func(c *Composer) { c.prover = prover }
}

// WithMaxDepth bounds the number of nested theorem applications.
func WithMaxDepth(depth uint) Option {
	return func(c *Composer) { c.maxDepth = depth }
}

// WithInlineValidation determines whether reference proofs given to
// InlineApply are checked against the theorem being inlined.
func WithInlineValidation(validate bool) Option {
	return func(c *Composer) { c.validateInline = validate }
}

// WithMetricsRegistry sets the registry which the composer's metrics are
// registered with.
func WithMetricsRegistry(registry *prometheus.Registry) Option {
	return func(c *Composer) { c.registry = registry }
}

// Composer is the registry of theorems for a database.  It consumes the items
// of a database in order, tracking the active scopes and registering a
// theorem for every floating, axiomatic and provable statement.  Theorems can
// then be applied to compose new proofs.  A composer is not safe for
// concurrent use.
type Composer struct {
	context *Context
	// Registered theorems by label, and in order of registration.
	theorems map[string]*Theorem
	order    []*Theorem
	// Top-level items loaded so far.
	items []ast.Item
	// Active segments (innermost on top) and the item indices of each.
	segmentStack *stack.Stack[string]
	segments     map[string][]uint
	// Collaborators
	unifier Unifier
	prover  CategoryProver
	// Recursion guard
	maxDepth uint
	depth    uint
	// Options
	validateInline bool
	registry       *prometheus.Registry
	metrics        *Metrics
}

// New constructs an empty composer.
func New(options ...Option) *Composer {
	c := &Composer{
		context:        NewContext(),
		theorems:       make(map[string]*Theorem),
		segmentStack:   stack.NewStack[string](),
		segments:       make(map[string][]uint),
		unifier:        unify.Default{},
		prover:         noCategoryProver{},
		maxDepth:       DefaultMaxDepth,
		validateInline: true,
	}
	//
	for _, option := range options {
		option(c)
	}
	//
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}
	//
	c.metrics = NewMetrics(c.registry)
	//
	return c
}

// Gatherer provides access to the metrics of this composer.
func (c *Composer) Gatherer() prometheus.Gatherer {
	return c.registry
}

// Metrics returns the counters maintained by this composer.
func (c *Composer) Metrics() *Metrics {
	return c.metrics
}

// Context returns the currently active scope chain.
func (c *Composer) Context() *Context {
	return c.context
}

// enter records the start of a nested theorem application.
func (c *Composer) enter() error {
	if c.depth >= c.maxDepth {
		return Errorf(RecursionLimit, "exceeded maximum application depth of %d", c.maxDepth)
	}
	//
	c.depth++
	//
	return nil
}

func (c *Composer) leave() {
	c.depth--
}

// ============================================================================
// Loading
// ============================================================================

// Load feeds a single item through the composer.  For a floating, axiomatic
// or provable statement the freshly registered theorem is returned; for an
// essential statement a degenerate theorem wrapping it is returned; otherwise
// nil is returned.  If loading fails, the scope chain is restored, any
// theorems registered along the way are revoked and the item is not recorded.
// Each item of a segment is loaded separately, and their errors are joined.
// Segments cannot appear inside blocks.
func (c *Composer) Load(item ast.Item) (*Theorem, error) {
	var (
		depth      = c.context.Depth()
		registered = len(c.order)
		err        error
	)
	// Segments tag their contents, rather than being recorded themselves.
	if segment, ok := item.(*ast.Segment); ok {
		return nil, errors.Join(c.loadSegment(segment)...)
	} else if segment := nestedSegment(item); segment != nil {
		return nil, Errorf(ScopeMisuse, "segment %s is not permitted inside a block", segment.Name)
	}
	//
	for _, event := range ast.Events(item) {
		if err = c.dispatch(event); err != nil {
			c.context.unwind(depth)
			c.rollback(registered)
			//
			return nil, err
		}
	}
	// Record item in current segment (if any).
	if name, ok := c.currentSegment(); ok {
		c.segments[name] = append(c.segments[name], uint(len(c.items)))
	}
	//
	c.items = append(c.items, item)
	//
	return c.theoremOf(item), nil
}

// rollback revokes all theorems registered after the first n.
func (c *Composer) rollback(n int) {
	for _, theorem := range c.order[n:] {
		delete(c.theorems, theorem.Label())
	}
	//
	c.order = c.order[:n]
}

// LoadDatabase feeds every item of a database through the composer.  Items
// which fail to load are reported and skipped, and loading continues with the
// remainder.  A database can only be loaded at the top level.
func (c *Composer) LoadDatabase(db *ast.Database) []error {
	var errs []error
	//
	if c.context.Depth() != 0 {
		return []error{Errorf(ScopeMisuse, "loading a database at non-top level")}
	}
	//
	for _, item := range db.Items {
		if segment, ok := item.(*ast.Segment); ok {
			errs = append(errs, c.loadSegment(segment)...)
		} else if _, err := c.Load(item); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errs
}

// loadSegment loads the items of a segment whilst it is active.  As for a
// database, items which fail are reported and skipped.
func (c *Composer) loadSegment(segment *ast.Segment) []error {
	var errs []error
	//
	c.StartSegment(segment.Name)
	//
	defer c.segmentStack.Pop()
	//
	for _, item := range segment.Items {
		if nested, ok := item.(*ast.Segment); ok {
			errs = append(errs, c.loadSegment(nested)...)
		} else if _, err := c.Load(item); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errs
}

// nestedSegment finds a segment anywhere within the blocks of an item.
func nestedSegment(item ast.Item) *ast.Segment {
	switch it := item.(type) {
	case *ast.Segment:
		return it
	case *ast.Block:
		for _, i := range it.Items {
			if segment := nestedSegment(i); segment != nil {
				return segment
			}
		}
	}
	//
	return nil
}

func (c *Composer) theoremOf(item ast.Item) *Theorem {
	stmt, ok := item.(*ast.Statement)
	//
	if !ok {
		return nil
	}
	//
	switch stmt.Kind {
	case ast.Floating, ast.Axiom, ast.Provable:
		return c.theorems[stmt.Label]
	case ast.Essential:
		return &Theorem{composer: c, statement: stmt}
	default:
		return nil
	}
}

func (c *Composer) dispatch(event ast.Event) error {
	switch event.Kind {
	case ast.EnterScope:
		c.context.Enter()
	case ast.ExitScope:
		return c.context.Exit()
	case ast.Visit:
		return c.visit(event.Statement)
	}
	//
	return nil
}

func (c *Composer) visit(stmt *ast.Statement) error {
	switch stmt.Kind {
	case ast.Floating:
		return c.visitFloating(stmt)
	case ast.Essential:
		c.context.AddHypothesis(stmt)
	case ast.Axiom, ast.Provable:
		return c.visitAssertion(stmt)
	}
	//
	return nil
}

func (c *Composer) visitFloating(stmt *ast.Statement) error {
	if len(stmt.Terms) != 2 {
		return Errorf(MalformedStatement, "floating statement %s should have exactly two terms", stmt.Label)
	}
	//
	typecode, ok1 := stmt.Terms[0].(*ast.Application)
	variable, ok2 := stmt.Terms[1].(*ast.Metavariable)
	//
	if !ok1 || !ok2 || len(typecode.Subterms) != 0 {
		return Errorf(MalformedStatement, "floating statement %s should declare a typecode and a variable", stmt.Label)
	} else if err := c.checkFresh(stmt.Label); err != nil {
		return err
	}
	//
	c.context.Declare(typecode.Symbol, variable.Name, stmt.Label)
	c.register(&Theorem{composer: c, statement: stmt})
	//
	return nil
}

func (c *Composer) visitAssertion(stmt *ast.Statement) error {
	if err := c.checkFresh(stmt.Label); err != nil {
		return err
	}
	//
	essentials := c.context.AllHypotheses()
	variables := stmt.Metavariables()
	//
	for _, essential := range essentials {
		variables.InsertSorted(essential.Metavariables())
	}
	//
	floatings := c.context.DeclarationsFor(variables)
	// Every variable must be declared exactly once.
	if err := checkCoverage(stmt, variables, floatings); err != nil {
		return err
	}
	//
	c.register(&Theorem{c, stmt, floatings, essentials})
	//
	return nil
}

func checkCoverage(stmt *ast.Statement, variables *set.SortedSet[string], floatings []Declaration) error {
	counts := make(map[string]uint, len(floatings))
	//
	for _, f := range floatings {
		counts[f.Variable]++
	}
	//
	for _, v := range variables.ToArray() {
		switch counts[v] {
		case 0:
			return Errorf(ScopeCompletenessViolation, "metavariable %s in %s has no visible declaration", v, stmt.Label)
		case 1:
			continue
		default:
			return Errorf(ScopeCompletenessViolation, "metavariable %s in %s has %d visible declarations", v, stmt.Label,
				counts[v])
		}
	}
	//
	return nil
}

func (c *Composer) checkFresh(label string) error {
	if label == "" {
		return Errorf(MalformedStatement, "statement requires a label")
	} else if _, ok := c.theorems[label]; ok {
		return Errorf(DuplicateLabel, "label %s is already registered", label)
	}
	//
	return nil
}

func (c *Composer) register(theorem *Theorem) {
	c.theorems[theorem.Label()] = theorem
	c.order = append(c.order, theorem)
	c.metrics.recordRegistration(theorem.statement.Kind.String())
	log.Debugf("registered %s %s with %d floating and %d essential hypotheses", theorem.statement.Kind,
		theorem.Label(), len(theorem.floatings), len(theorem.essentials))
}

// ============================================================================
// Segments
// ============================================================================

// StartSegment makes a given segment active, such that items subsequently
// loaded are recorded in it.  Segments nest, with the most recently started
// segment being the active one.
func (c *Composer) StartSegment(name string) {
	c.segmentStack.Push(name)
}

// EndSegment restores whichever segment was active before the current one.
func (c *Composer) EndSegment() error {
	if _, ok := c.segmentStack.TryPop(); !ok {
		return Errorf(ScopeMisuse, "no segment to end")
	}
	//
	return nil
}

// Segment returns the items recorded in a given segment, in load order.
func (c *Composer) Segment(name string) []ast.Item {
	var items []ast.Item
	//
	for _, index := range c.segments[name] {
		items = append(items, c.items[index])
	}
	//
	return items
}

func (c *Composer) currentSegment() (string, bool) {
	if c.segmentStack.IsEmpty() {
		return "", false
	}
	//
	return c.segmentStack.Peek(0), true
}

// Items returns every top-level item loaded so far.
func (c *Composer) Items() []ast.Item {
	return slices.Clone(c.items)
}

// Encode writes the items of a given segment, or all items when the segment
// is empty, to a given writer.
func (c *Composer) Encode(w io.Writer, segment string) error {
	items := c.items
	//
	if segment != "" {
		items = c.Segment(segment)
	}
	//
	for _, item := range items {
		if err := ast.Write(w, item); err != nil {
			return err
		}
	}
	//
	return nil
}

// ============================================================================
// Lookups
// ============================================================================

// FindTheorem returns the theorem registered under a given label.
func (c *Composer) FindTheorem(label string) (*Theorem, error) {
	if theorem, ok := c.theorems[label]; ok {
		return theorem, nil
	}
	//
	return nil, Errorf(UnknownLabel, "unknown theorem %s", label)
}

// RemoveTheorem revokes the theorem registered under a given label.  Proofs
// already constructed using it are unaffected.
func (c *Composer) RemoveTheorem(label string) error {
	if _, ok := c.theorems[label]; !ok {
		return Errorf(UnknownLabel, "unknown theorem %s", label)
	}
	//
	delete(c.theorems, label)
	c.order = slices.DeleteFunc(c.order, func(t *Theorem) bool { return t.Label() == label })
	//
	return nil
}

// Theorems returns every registered theorem in order of registration.
func (c *Composer) Theorems() []*Theorem {
	return slices.Clone(c.order)
}

// FindHypothesis returns a degenerate theorem for the active essential
// hypothesis with a given label.  Applying it yields the hypothesis itself.
func (c *Composer) FindHypothesis(label string) (*Theorem, error) {
	if stmt, ok := c.context.FindHypothesis(label); ok {
		return &Theorem{composer: c, statement: stmt}, nil
	}
	//
	return nil, Errorf(UnknownLabel, "unknown hypothesis %s", label)
}

// AllHypotheses returns degenerate theorems for all active essential
// hypotheses, outermost scope first.
func (c *Composer) AllHypotheses() []*Theorem {
	var theorems []*Theorem
	//
	for _, stmt := range c.context.AllHypotheses() {
		theorems = append(theorems, &Theorem{composer: c, statement: stmt})
	}
	//
	return theorems
}

// FindMetavariable returns the typecode of an active variable declaration.
func (c *Composer) FindMetavariable(variable string) (string, bool) {
	found := c.context.DeclarationsFor(set.Of(variable))
	//
	if len(found) == 0 {
		return "", false
	}
	//
	return found[0].Typecode, true
}

// MetavariablesOfCategory returns the active variables with a given typecode.
func (c *Composer) MetavariablesOfCategory(typecode string) []string {
	return variablesOf(c.context.DeclarationsOfCategory(typecode))
}

// AllMetavariables returns every active variable.
func (c *Composer) AllMetavariables() []string {
	return variablesOf(c.context.AllDeclarations())
}

func variablesOf(declarations []Declaration) []string {
	variables := make([]string, len(declarations))
	//
	for i, d := range declarations {
		variables[i] = d.Variable
	}
	//
	return variables
}
