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
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-mmcompose/pkg/config"
	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/auto"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/metamath/parser"
	"github.com/consensys/go-mmcompose/pkg/util"
	"github.com/consensys/go-mmcompose/pkg/util/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// composerOptions determines the composer options arising from a given
// configuration.
func composerOptions(cfg config.Config) []composer.Option {
	options := []composer.Option{
		composer.WithMaxDepth(cfg.MaxDepth),
		composer.WithInlineValidation(cfg.Inline.ValidateReference),
	}
	//
	if cfg.Auto.Typecode {
		options = append(options, composer.WithCategoryProver(auto.NewTypecodeProver()))
	}
	//
	return options
}

// readDatabase reads and loads one or more database files, or exits if they
// are malformed.  Items which cannot be loaded are reported against their
// origin in the source files.
func readDatabase(filenames []string) (*composer.Composer, parser.Locations) {
	stats := util.NewPerfStats()
	// Read source files
	srcfiles, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Parse source files
	db, locations, errs := parser.ParseFilesWithLocations(srcfiles...)
	if len(errs) > 0 {
		printSyntaxErrors(os.Stdout, errs)
		os.Exit(3)
	}
	// Load database
	c := composer.New(composerOptions(settings)...)
	//
	if n := loadItems(os.Stdout, c, db, locations); n > 0 {
		os.Exit(4)
	}
	//
	log.Debug(stats.Report("loading"))
	//
	return c, locations
}

// loadItems loads every item of a database, reporting those which fail and
// returning how many did.
func loadItems(w io.Writer, c *composer.Composer, db *ast.Database, locations parser.Locations) int {
	return loadEach(w, c, db.Items, locations)
}

// loadEach loads items one at a time, so that each failure inside a segment
// is reported against its own item.
func loadEach(w io.Writer, c *composer.Composer, items []ast.Item, locations parser.Locations) int {
	failures := 0
	//
	for _, item := range items {
		if segment, ok := item.(*ast.Segment); ok {
			c.StartSegment(segment.Name)
			failures += loadEach(w, c, segment.Items, locations)
			// Cannot fail, as a segment was just started
			_ = c.EndSegment()
		} else if _, err := c.Load(item); err != nil {
			failures++
			//
			printLocated(w, locations, item, err)
		}
	}
	//
	return failures
}

// printLocated reports an error against the origin of a given item, falling
// back to the bare error if its origin is unknown.
func printLocated(w io.Writer, locations parser.Locations, item ast.Item, err error) {
	if located, ok := locations.SyntaxError(item, err.Error()); ok {
		printSyntaxErrors(w, []source.SyntaxError{*located})
	} else {
		fmt.Fprintln(w, err)
	}
}

// parseGoal parses a goal statement (e.g. "|- (-> ph ph)") against the
// variables of a loaded database.
func parseGoal(c *composer.Composer, goal string) (*ast.Statement, []source.SyntaxError) {
	srcfile := source.NewSourceFile("<goal>", []byte(goal))
	terms, errs := parser.ParseTerms(srcfile, c.AllMetavariables()...)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if len(terms) == 0 {
		return nil, []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, len(goal)), "empty goal")}
	}
	//
	return ast.NewStatement(ast.Provable, "", terms...), nil
}

// Print syntax errors with appropriate highlighting, using colour only when
// writing to a terminal.
func printSyntaxErrors(w io.Writer, errs []source.SyntaxError) {
	colour := term.IsTerminal(int(os.Stdout.Fd()))
	//
	for _, err := range errs {
		fmt.Fprintln(w, err.Format(colour))
	}
}

// reportStats writes the metrics gathered by a composer, one sample per line,
// when the stats flag is set.
func reportStats(cmd *cobra.Command, c *composer.Composer, stats *util.PerfStats) {
	if !GetFlag(cmd, "stats") {
		return
	}
	//
	fmt.Println(stats.Report(cmd.Name()))
	//
	if err := writeMetrics(os.Stdout, c.Gatherer()); err != nil {
		fmt.Println(err)
	}
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	// Gather sorts families by name, and metrics by their labels.
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	//
	return nil
}
