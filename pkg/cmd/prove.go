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
	"os"

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/auto"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/metamath/unify"
	"github.com/consensys/go-mmcompose/pkg/metamath/verify"
	"github.com/consensys/go-mmcompose/pkg/util"
	"github.com/consensys/go-mmcompose/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var proveCmd = &cobra.Command{
	Use:   "prove [flags] database_file(s)",
	Short: "Prove a goal by instantiating a theorem.",
	Long: `Prove a goal (e.g. "|- (-> ph ph)") by instantiating a given theorem.
	Essential hypotheses of the theorem are discharged automatically, using
	active hypotheses or assertions without hypotheses of their own.  With
	--inline the theorem's stored proof is expanded in place of its label.
	The resulting proof is replayed before being printed as a provable
	statement.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		stats := util.NewPerfStats()
		c, _ := readDatabase(args)
		// Identify theorem
		theorem, err := c.FindTheorem(GetString(cmd, "theorem"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Identify goal
		goal := theorem.Statement()
		//
		if text := GetString(cmd, "goal"); text != "" {
			var errs []source.SyntaxError
			//
			if goal, errs = parseGoal(c, text); len(errs) > 0 {
				printSyntaxErrors(os.Stdout, errs)
				os.Exit(3)
			}
		}
		//
		proof, err := prove(theorem, goal, GetFlag(cmd, "inline"))
		if err != nil {
			fmt.Println(err)
			os.Exit(5)
		} else if err := verify.Check(c, proof); err != nil {
			fmt.Println(err)
			os.Exit(6)
		}
		//
		stmt := ast.NewStatement(ast.Provable, GetString(cmd, "label"), proof.Statement.Terms...)
		stmt.Proof = proof.Script
		//
		if err := ast.Write(os.Stdout, stmt); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		reportStats(cmd, c, stats)
	},
}

// prove instantiates a theorem to prove a given goal, deferring all of its
// essential hypotheses to the default search strategy.
func prove(theorem *composer.Theorem, goal *ast.Statement, inline bool) (*composer.Proof, error) {
	hypotheses := make([]composer.Subproof, len(theorem.Essentials()))
	//
	for i := range hypotheses {
		hypotheses[i] = composer.Deferred(auto.Search)
	}
	//
	if !inline {
		return theorem.MatchAndApply(goal, nil, hypotheses...)
	}
	//
	reference, ok := theorem.StoredProof()
	if !ok {
		return nil, fmt.Errorf("theorem %s has no stored proof to inline", theorem.Label())
	}
	// Seed bindings by matching against the goal
	solution, ok := unify.MatchInstance(theorem.Statement(), goal)
	if !ok {
		return nil, composer.Errorf(composer.UnificationFailure, "goal `%s` does not match %s", goal, theorem.Label())
	}
	//
	bindings := composer.Terms(solution)
	//
	log.Debugf("inlining %s with %d bindings", theorem.Label(), len(bindings))
	//
	return theorem.InlineApply(reference, bindings, hypotheses...)
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringP("theorem", "t", "", "theorem to instantiate")
	proveCmd.Flags().StringP("goal", "g", "", "statement to prove (defaults to the theorem itself)")
	proveCmd.Flags().StringP("label", "l", "goal", "label of the emitted provable statement")
	proveCmd.Flags().Bool("inline", false, "expand the theorem's stored proof rather than referencing it")
	//
	if err := proveCmd.MarkFlagRequired("theorem"); err != nil {
		panic(err)
	}
}
