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

	"github.com/alecthomas/repr"
	"github.com/consensys/go-pil/pkg/riscv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var riscvCmd = &cobra.Command{
	Use:   "riscv [flags] source_file",
	Short: "parse a RISC-V assembly file.",
	Long: `Parse a RISC-V style assembly file into its statement list, reporting any
	 syntax errors.  Optionally, extract the initialised data objects it declares.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		srcfile := ReadSourceFile(args[0])
		// Parse file
		statements, errs := riscv.Parse(srcfile)
		if len(errs) > 0 {
			ReportSyntaxErrors(errs)
		}
		//
		log.Debug(fmt.Sprintf("parsed %d statements from %s", len(statements), args[0]))
		//
		switch {
		case GetFlag(cmd, "data"):
			printDataObjects(statements)
		case GetFlag(cmd, "debug"):
			repr.Println(statements)
		default:
			for _, stmt := range statements {
				fmt.Println(stmt)
			}
		}
	},
}

// Print a summary of every data object declared by the given statements.
func printDataObjects(statements []riscv.Statement) {
	objects, err := riscv.ExtractDataObjects(statements)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for name, values := range objects {
		size := 0
		for _, value := range values {
			size += value.Size()
		}
		//
		fmt.Printf("%s: %d values (%d bytes)\n", name, len(values), size)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(riscvCmd)
	riscvCmd.Flags().Bool("debug", false, "dump the parsed syntax tree")
	riscvCmd.Flags().Bool("data", false, "extract initialised data objects")
}
