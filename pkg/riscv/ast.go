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
package riscv

import (
	"fmt"
	"strings"
)

// Statement is one line-level statement of an assembly file: a label, a
// directive or an instruction.
type Statement interface {
	fmt.Stringer
	isStatement()
}

// Label names a position in the program (written "name:").
type Label struct {
	Name string
}

// Directive is an assembler directive (written ".name arg, ...").  The
// leading dot is part of the name.
type Directive struct {
	Name string
	Args []Argument
}

// Instruction is a machine instruction (written "mnemonic arg, ...").
type Instruction struct {
	Name string
	Args []Argument
}

func (p *Label) isStatement()       {}
func (p *Directive) isStatement()   {}
func (p *Instruction) isStatement() {}

func (p *Label) String() string {
	return fmt.Sprintf("%s:", p.Name)
}

func (p *Directive) String() string {
	return fmt.Sprintf("%s %s", p.Name, argumentsString(p.Args))
}

func (p *Instruction) String() string {
	return fmt.Sprintf("%s %s", p.Name, argumentsString(p.Args))
}

func argumentsString(args []Argument) string {
	var builder strings.Builder
	//
	for i, arg := range args {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(arg.String())
	}
	//
	return builder.String()
}

// ============================================================================
// Arguments
// ============================================================================

// Argument is a single operand of a directive or instruction.
type Argument interface {
	fmt.Stringer
	isArgument()
}

// Register is a machine register, canonicalised to its index (0-31).  Every
// mnemonic maps to exactly one index, so e.g. "fp" and "s0" are
// indistinguishable after parsing.
type Register struct {
	Index uint
}

// RegOffset is a register-relative address (written "offset(register)").
type RegOffset struct {
	Register Register
	Offset   Constant
}

// StringLiteral is a quoted literal, decoded into its raw bytes.
type StringLiteral struct {
	Value []byte
}

// Symbol is a bare symbol reference (a label or object name).
type Symbol struct {
	Name string
}

// Difference is the distance between two symbols (written "sym1 - sym2").
type Difference struct {
	Left  string
	Right string
}

func (p *Register) isArgument()      {}
func (p *RegOffset) isArgument()     {}
func (p *StringLiteral) isArgument() {}
func (p *Symbol) isArgument()        {}
func (p *Difference) isArgument()    {}

func (p *Register) String() string {
	return fmt.Sprintf("x%d", p.Index)
}

func (p *RegOffset) String() string {
	return fmt.Sprintf("%s(%s)", p.Offset, &p.Register)
}

func (p *StringLiteral) String() string {
	return fmt.Sprintf("%q", p.Value)
}

func (p *Symbol) String() string {
	return p.Name
}

func (p *Difference) String() string {
	return fmt.Sprintf("%s - %s", p.Left, p.Right)
}

// ============================================================================
// Constants
// ============================================================================

// Constant is the subset of arguments which denote a (relocatable) constant
// value: plain numbers and the "%hi" / "%lo" relocation placeholders.
type Constant interface {
	Argument
	isConstant()
}

// Number is a 64-bit signed integer literal.
type Number struct {
	Value int64
}

// HiDataRef is the upper-part relocation of a symbol's address (written
// "%hi(symbol)").
type HiDataRef struct {
	Symbol string
}

// LoDataRef is the lower-part relocation of a symbol's address (written
// "%lo(symbol)").
type LoDataRef struct {
	Symbol string
}

func (p *Number) isArgument()    {}
func (p *HiDataRef) isArgument() {}
func (p *LoDataRef) isArgument() {}

func (p *Number) isConstant()    {}
func (p *HiDataRef) isConstant() {}
func (p *LoDataRef) isConstant() {}

func (p *Number) String() string {
	return fmt.Sprintf("%d", p.Value)
}

func (p *HiDataRef) String() string {
	return fmt.Sprintf("%%hi(%s)", p.Symbol)
}

func (p *LoDataRef) String() string {
	return fmt.Sprintf("%%lo(%s)", p.Symbol)
}
