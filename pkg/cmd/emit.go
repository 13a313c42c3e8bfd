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

	"github.com/consensys/go-mmcompose/pkg/util"
	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] database_file(s)",
	Short: "Write out a loaded database.",
	Long: `Load a database and write it back out, either in full or restricted
	to the items of a single segment.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		stats := util.NewPerfStats()
		c, _ := readDatabase(args)
		segment := settings.Emit.Segment
		//
		if cmd.Flags().Changed("segment") {
			segment = GetString(cmd, "segment")
		}
		//
		if err := c.Encode(os.Stdout, segment); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		reportStats(cmd, c, stats)
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
	emitCmd.Flags().StringP("segment", "s", "", "only emit items of the given segment")
}
