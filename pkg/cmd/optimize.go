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
	"github.com/fhelab/go-fhec/pkg/ir/cse"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] program_file",
	Short: "optimize a program file.",
	Long: `Apply common subexpression elimination to a given program, sweep away any
	 terms this leaves dead, and write the result back out.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.TraceLevel)
		}
		//
		output := GetString(cmd, "output")
		// Parse program file
		program := readProgramFile(args[0])
		size := program.Size()
		// Apply common subexpression elimination
		redirected := cse.Run(program)
		// Dispose of anything left unreachable
		removed := program.RemoveDeadTerms()
		//
		log.Infof("program %s: %d terms, %d uses redirected, %d terms removed",
			program.Name, size, redirected, removed)
		// Write out optimized program
		writeProgramFile(program, output)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringP("output", "o", "a.bin", "specify output file.")
	optimizeCmd.MarkFlagRequired("output")
}
