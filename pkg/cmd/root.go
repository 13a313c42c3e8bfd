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
	"runtime/debug"

	"github.com/consensys/go-mmcompose/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set with -ldflags "-X" when building a release.
var Version string

// settings holds the configuration in effect for the current command.
var settings = config.DefaultConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mmcompose",
	Short: "A composer for metamath proofs.",
	Long:  "A toolbox for checking, composing and emitting metamath proofs.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		//
		if settings, err = config.Load(GetString(cmd, "config")); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Configure log level
		log.SetLevel(settings.Level())
		//
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Printf("mmcompose %s\n", version())
			return
		}
		//
		fmt.Println(cmd.UsageString())
	},
}

// version prefers a linker-stamped Version, then the module version recorded
// by "go install".
func version() string {
	if Version != "" {
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	//
	return "(unknown version)"
}

// Execute runs whichever subcommand the command line selects.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("config", "c", "", "read settings from a YAML file")
	rootCmd.PersistentFlags().Bool("stats", false, "report performance and composer metrics")
}
