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
	"testing"

	"github.com/consensys/go-pil/pkg/util/assert"
	"github.com/consensys/go-pil/pkg/util/source"
)

func TestRegisterRoundTrip(t *testing.T) {
	// Every mnemonic must parse (as an instruction operand) to its
	// documented canonical index.
	for name, want := range registers {
		stmt := parseLineString(t, "mv "+name)
		//
		instr := stmt.(*Instruction)
		assert.Equal(t, 1, len(instr.Args))
		//
		reg := instr.Args[0].(*Register)
		assert.Equal(t, want, reg.Index, "register %s", name)
	}
}

func TestRegisterAliases(t *testing.T) {
	for _, pair := range [][2]string{{"fp", "s0"}, {"x8", "s0"}, {"x2", "sp"}} {
		first, _ := RegisterIndex(pair[0])
		second, _ := RegisterIndex(pair[1])
		//
		assert.Equal(t, first, second)
	}
	//
	index, ok := RegisterIndex("s10")
	assert.True(t, ok)
	assert.Equal(t, uint(26), index)
	// Sanity check some documented anchors
	anchors := map[string]uint{"zero": 0, "sp": 2, "fp": 8, "a0": 10, "s2": 18, "t3": 28, "t6": 31}
	for name, want := range anchors {
		index, _ := RegisterIndex(name)
		assert.Equal(t, want, index, "register %s", name)
	}
}

func TestRegisterLongestMatch(t *testing.T) {
	// "s10" is a register; never "s1" plus a stray "0".
	stmt := parseLineString(t, "foo s10")
	reg := stmt.(*Instruction).Args[0].(*Register)
	assert.Equal(t, uint(26), reg.Index)
	// "s1ze" is longer than any mnemonic, so it is a symbol.
	stmt = parseLineString(t, "foo s1ze")
	symbol := stmt.(*Instruction).Args[0].(*Symbol)
	assert.Equal(t, "s1ze", symbol.Name)
}

func TestNumericLiterals(t *testing.T) {
	stmt := parseLineString(t, "foo 0x1_0, 1_0, -5")
	//
	args := stmt.(*Instruction).Args
	//
	assert.Equal(t, int64(16), args[0].(*Number).Value)
	assert.Equal(t, int64(10), args[1].(*Number).Value)
	assert.Equal(t, int64(-5), args[2].(*Number).Value)
}

func TestNumericOverflow(t *testing.T) {
	// One beyond the maximum signed 64-bit value.
	_, errs := ParseLine(source.NewSourceFile("test.s", []byte("foo 9223372036854775808")))
	//
	assert.Equal(t, 1, len(errs))
	assert.True(t, errs[0].IsLexical())
}

func TestMalformedHex(t *testing.T) {
	// A non-hex digit directly after "0x" cannot lex as one literal.
	_, errs := ParseLine(source.NewSourceFile("test.s", []byte("foo 0xZZ")))
	//
	assert.True(t, len(errs) > 0)
}

func TestLabelAndInstruction(t *testing.T) {
	statements := parseString(t, "loop: addi sp, sp, -16\n")
	//
	assert.Equal(t, 2, len(statements))
	assert.Equal(t, "loop", statements[0].(*Label).Name)
	//
	instr := statements[1].(*Instruction)
	assert.Equal(t, "addi", instr.Name)
	assert.Equal(t, 3, len(instr.Args))
	assert.Equal(t, uint(2), instr.Args[0].(*Register).Index)
	assert.Equal(t, uint(2), instr.Args[1].(*Register).Index)
	assert.Equal(t, int64(-16), instr.Args[2].(*Number).Value)
}

func TestDirective(t *testing.T) {
	stmt := parseLineString(t, ".globl main")
	//
	directive := stmt.(*Directive)
	//
	assert.Equal(t, ".globl", directive.Name)
	assert.Equal(t, "main", directive.Args[0].(*Symbol).Name)
}

func TestRelocations(t *testing.T) {
	statements := parseString(t, "lui a0, %hi(msg)\naddi a0, a0, %lo(msg)\n")
	//
	hi := statements[0].(*Instruction).Args[1].(*HiDataRef)
	lo := statements[1].(*Instruction).Args[2].(*LoDataRef)
	//
	assert.Equal(t, "msg", hi.Symbol)
	assert.Equal(t, "msg", lo.Symbol)
}

func TestRegisterOffsets(t *testing.T) {
	stmt := parseLineString(t, "lw a1, 8(sp)")
	//
	offset := stmt.(*Instruction).Args[1].(*RegOffset)
	assert.Equal(t, uint(2), offset.Register.Index)
	assert.Equal(t, int64(8), offset.Offset.(*Number).Value)
	// Relocations can be offsets too
	stmt = parseLineString(t, "lw a1, %lo(msg)(a0)")
	//
	offset = stmt.(*Instruction).Args[1].(*RegOffset)
	assert.Equal(t, uint(10), offset.Register.Index)
	assert.Equal(t, "msg", offset.Offset.(*LoDataRef).Symbol)
}

func TestSymbolDifference(t *testing.T) {
	stmt := parseLineString(t, ".word finish - begin")
	//
	diff := stmt.(*Directive).Args[0].(*Difference)
	//
	assert.Equal(t, "finish", diff.Left)
	assert.Equal(t, "begin", diff.Right)
}

func TestStringLiterals(t *testing.T) {
	stmt := parseLineString(t, `.asciz "hi\n"`)
	//
	literal := stmt.(*Directive).Args[0].(*StringLiteral)
	//
	assert.Equal(t, []byte("hi\n"), literal.Value)
	// Empty literal
	stmt = parseLineString(t, `.asciz ""`)
	//
	literal = stmt.(*Directive).Args[0].(*StringLiteral)
	//
	assert.Equal(t, 0, len(literal.Value))
}

func TestArgumentListShapes(t *testing.T) {
	// Zero, one and N arguments (with exactly N-1 interior commas).
	assert.Equal(t, 0, len(parseLineString(t, "nop").(*Instruction).Args))
	assert.Equal(t, 1, len(parseLineString(t, "j exit").(*Instruction).Args))
	assert.Equal(t, 3, len(parseLineString(t, "add a0, a1, a2").(*Instruction).Args))
	// Trailing commas are rejected
	_, errs := ParseLine(source.NewSourceFile("test.s", []byte("add a0, a1,")))
	assert.True(t, len(errs) > 0)
}

func TestBlankLinesAndComments(t *testing.T) {
	statements := parseString(t, "# prologue\n\nmain:\n  ret # done\n")
	//
	assert.Equal(t, 2, len(statements))
	assert.Equal(t, "main", statements[0].(*Label).Name)
	assert.Equal(t, "ret", statements[1].(*Instruction).Name)
}

func TestParseLineBlank(t *testing.T) {
	for _, input := range []string{"", "   ", "# comment only", "\n"} {
		stmt, errs := ParseLine(source.NewSourceFile("test.s", []byte(input)))
		//
		assert.Equal(t, 0, len(errs))
		assert.True(t, stmt == nil)
	}
}

// ============================================================================
// Test Helpers
// ============================================================================

func parseString(t *testing.T, input string) []Statement {
	t.Helper()
	//
	statements, errs := Parse(source.NewSourceFile("test.s", []byte(input)))
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return statements
}

func parseLineString(t *testing.T, input string) Statement {
	t.Helper()
	//
	stmt, errs := ParseLine(source.NewSourceFile("test.s", []byte(input)))
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	if stmt == nil {
		t.Fatalf("no statement parsed from %s", fmt.Sprintf("%q", input))
	}
	//
	return stmt
}
