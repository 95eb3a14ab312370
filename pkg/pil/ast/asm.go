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
package ast

import (
	"math/big"

	"github.com/consensys/go-pil/pkg/util/source"
)

// AsmStatement is one top-level statement of an ASM (instruction-set
// description) file.
type AsmStatement interface {
	SourceSpan() source.Span
}

// AsmFile is the parsed form of a complete ASM source file, i.e. a flat
// statement list.
type AsmFile struct {
	Statements []AsmStatement
}

// RegisterFlag qualifies a register declaration.
type RegisterFlag uint

const (
	// NO_FLAG indicates an ordinary register.
	NO_FLAG RegisterFlag = iota
	// IS_PC marks the register as the program counter (written "[@pc]").
	IS_PC
	// IS_ASSIGNMENT marks the register as an assignment register (written
	// "[<=]").
	IS_ASSIGNMENT
)

// ============================================================================
// Declarations
// ============================================================================

// Degree fixes the length of the execution trace.  The operand is an abstract
// (arbitrary precision) number; conversion to a concrete degree happens
// downstream.
type Degree struct {
	SourceRef
	Degree *big.Int
}

// RegisterDeclaration declares a machine register, optionally flagged as the
// program counter or as an assignment register.
type RegisterDeclaration struct {
	SourceRef
	Name string
	Flag RegisterFlag
}

// Param is a single (optionally typed) parameter of an instruction
// declaration.
type Param struct {
	Name string
	// Type is empty when no type annotation was written.
	Type string
}

// InstructionDeclaration declares an instruction of the machine, giving its
// input parameters, optional output parameters, and a body of constraint
// elements.  Each body element is either a polynomial identity (an equation
// normalised to a subtraction) or a plookup/permutation clause; connect
// identities are not permitted here since they carry no selector.
type InstructionDeclaration struct {
	SourceRef
	Name    string
	Inputs  []Param
	Outputs []Param
	Body    []Statement
}

// InlinePil embeds a block of PIL statements verbatim within an ASM file.
type InlinePil struct {
	SourceRef
	Statements []Statement
}

// ============================================================================
// Program statements
// ============================================================================

// Assignment assigns an expression to one or more registers through an
// assignment operator of the form "<= ident? =".  The optional identifier
// (e.g. the "X" of "<=X=") selects an assignment-register class; it is
// captured verbatim and passed through unevaluated.
type Assignment struct {
	SourceRef
	LhsNames []string
	// AssignOperator is empty for the plain "<==" form.
	AssignOperator string
	Rhs            Expr
}

// Instruction invokes a declared instruction with the given arguments.
type Instruction struct {
	SourceRef
	Name string
	Args []Expr
}

// Label names a position in the program (written "Name::").
type Label struct {
	SourceRef
	Name string
}
