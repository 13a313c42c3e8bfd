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

	"github.com/consensys/go-mmcompose/pkg/metamath/ast"
	"github.com/consensys/go-mmcompose/pkg/metamath/composer"
	"github.com/consensys/go-mmcompose/pkg/metamath/parser"
	"github.com/consensys/go-mmcompose/pkg/metamath/verify"
	"github.com/consensys/go-mmcompose/pkg/util"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] database_file(s)",
	Short: "Check the proofs stored in a database.",
	Long: `Load a database, reporting any statement which cannot be registered,
	and then replay every stored proof against the registered theorems.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		stats := util.NewPerfStats()
		c, locations := readDatabase(args)
		failures := checkProofs(os.Stdout, c, locations, GetFlag(cmd, "quiet"))
		//
		reportStats(cmd, c, stats)
		//
		if failures > 0 {
			os.Exit(5)
		}
	},
}

// checkProofs verifies every stored proof, returning the number of failures.
func checkProofs(w io.Writer, c *composer.Composer, locations parser.Locations, quiet bool) int {
	var checked, failures int
	//
	for _, theorem := range c.Theorems() {
		if _, ok := theorem.StoredProof(); !ok || theorem.Statement().Kind != ast.Provable {
			continue
		}
		//
		checked++
		//
		if err := verify.CheckTheorem(c, theorem); err != nil {
			failures++
			//
			printLocated(w, locations, theorem.Statement(), fmt.Errorf("%s: %w", theorem.Label(), err))
		} else if !quiet {
			fmt.Fprintf(w, "%s: ok\n", theorem.Label())
		}
	}
	//
	fmt.Fprintf(w, "checked %d proofs (%d failed)\n", checked, failures)
	//
	return failures
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "only report failing proofs")
}
