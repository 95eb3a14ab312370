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

	"github.com/alecthomas/repr"
	"github.com/consensys/go-pil/pkg/pil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var pilCmd = &cobra.Command{
	Use:   "pil [flags] source_file",
	Short: "parse a PIL constraint file.",
	Long:  "Parse a PIL constraint file into its abstract syntax tree, reporting any syntax errors.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		srcfile := ReadSourceFile(args[0])
		// Parse file
		file, errs := pil.ParsePilFile(srcfile)
		if len(errs) > 0 {
			ReportSyntaxErrors(errs)
		}
		//
		log.Debug(fmt.Sprintf("parsed %d statements from %s", len(file.Statements), args[0]))
		//
		for _, stmt := range file.Statements {
			span := stmt.SourceSpan()
			log.Debug(fmt.Sprintf("line %d: %T", srcfile.LineOf(span.Start()), stmt))
		}
		// Dump tree (if requested)
		if GetFlag(cmd, "debug") {
			repr.Println(file)
		} else {
			fmt.Printf("%s: %d statements\n", args[0], len(file.Statements))
		}
	},
}

var asmCmd = &cobra.Command{
	Use:   "asm [flags] source_file",
	Short: "parse an ASM instruction-set file.",
	Long:  "Parse an ASM instruction-set description file into its abstract syntax tree, reporting any syntax errors.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		srcfile := ReadSourceFile(args[0])
		// Parse file
		file, errs := pil.ParseAsmFile(srcfile)
		if len(errs) > 0 {
			ReportSyntaxErrors(errs)
		}
		//
		log.Debug(fmt.Sprintf("parsed %d statements from %s", len(file.Statements), args[0]))
		//
		for _, stmt := range file.Statements {
			span := stmt.SourceSpan()
			log.Debug(fmt.Sprintf("line %d: %T", srcfile.LineOf(span.Start()), stmt))
		}
		// Dump tree (if requested)
		if GetFlag(cmd, "debug") {
			repr.Println(file)
		} else {
			fmt.Printf("%s: %d statements\n", args[0], len(file.Statements))
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(pilCmd)
	rootCmd.AddCommand(asmCmd)
	pilCmd.Flags().Bool("debug", false, "dump the parsed syntax tree")
	asmCmd.Flags().Bool("debug", false, "dump the parsed syntax tree")
}
