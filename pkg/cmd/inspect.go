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

	"github.com/fhelab/go-fhec/pkg/ir"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] program_file",
	Short: "print a listing of a program file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		program := readProgramFile(args[0])
		//
		fmt.Printf("program %s (vec_size=%d)\n", program.Name, program.VecSize)
		//
		for _, name := range program.InputNames() {
			input, _ := program.Input(name)
			fmt.Printf("  input %s = t%d\n", name, input.Index)
		}
		//
		program.Forward(func(term *ir.Term) {
			fmt.Printf("  %s\n", term)
		})
		//
		for _, name := range program.OutputNames() {
			output, _ := program.Output(name)
			fmt.Printf("  output %s = t%d\n", name, output.Index)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
