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
package pil

import (
	"math/big"
	"testing"

	"github.com/consensys/go-pil/pkg/pil/ast"
	"github.com/consensys/go-pil/pkg/util/assert"
	"github.com/consensys/go-pil/pkg/util/source"
)

func TestAsmDegree(t *testing.T) {
	stmt := parseOneAsmStatement(t, "degree 65536;")
	//
	degree := stmt.(*ast.Degree)
	//
	assert.Equal(t, 0, degree.Degree.Cmp(big.NewInt(65536)))
}

func TestAsmRegisterDeclarations(t *testing.T) {
	file := parseAsmString(t, "reg pc[@pc];\nreg X[<=];\nreg A;\n")
	//
	assert.Equal(t, 3, len(file.Statements))
	//
	pc := file.Statements[0].(*ast.RegisterDeclaration)
	x := file.Statements[1].(*ast.RegisterDeclaration)
	a := file.Statements[2].(*ast.RegisterDeclaration)
	//
	assert.Equal(t, ast.IS_PC, pc.Flag)
	assert.Equal(t, ast.IS_ASSIGNMENT, x.Flag)
	assert.Equal(t, ast.NO_FLAG, a.Flag)
	assert.Equal(t, "A", a.Name)
}

func TestAsmInstructionDeclaration(t *testing.T) {
	stmt := parseOneAsmStatement(t, "instr assert_zero X { X = 0 }")
	//
	instr := stmt.(*ast.InstructionDeclaration)
	//
	assert.Equal(t, "assert_zero", instr.Name)
	assert.Equal(t, []ast.Param{{Name: "X"}}, instr.Inputs)
	assert.Equal(t, 0, len(instr.Outputs))
	assert.Equal(t, 1, len(instr.Body))
	//
	identity := instr.Body[0].(*ast.PolynomialIdentity)
	assert.Equal(t, "(X - 0)", identity.Expression.String())
}

func TestAsmInstructionOutputs(t *testing.T) {
	stmt := parseOneAsmStatement(t,
		"instr mload X : addr -> Y { { X, Y } in { m_addr, m_value } }")
	//
	instr := stmt.(*ast.InstructionDeclaration)
	//
	assert.Equal(t, []ast.Param{{Name: "X", Type: "addr"}}, instr.Inputs)
	assert.Equal(t, []ast.Param{{Name: "Y"}}, instr.Outputs)
	//
	plookup := instr.Body[0].(*ast.PlookupIdentity)
	assert.Equal(t, 2, len(plookup.Left.Expressions))
	assert.Equal(t, "m_value", plookup.Right.Expressions[1].String())
}

func TestAsmInstructionBodyElements(t *testing.T) {
	stmt := parseOneAsmStatement(t, "instr jmpz X, l { pc' = XIsZero * l + (1 - XIsZero) * (pc + 1), XIsZero = 1 - X * Xinv }")
	//
	instr := stmt.(*ast.InstructionDeclaration)
	//
	assert.Equal(t, 2, len(instr.Inputs))
	assert.Equal(t, 2, len(instr.Body))
}

func TestAsmConnectForbiddenInInstruction(t *testing.T) {
	_, errs := ParseAsmFile(source.NewSourceFile("test.asm",
		[]byte("instr bad X { { X } connect { X } }")))
	//
	assert.True(t, len(errs) > 0)
}

func TestAsmInlinePil(t *testing.T) {
	stmt := parseOneAsmStatement(t, "pil { pol commit x; x * (1 - x) = 0; }")
	//
	block := stmt.(*ast.InlinePil)
	//
	assert.Equal(t, 2, len(block.Statements))
	//
	identity := block.Statements[1].(*ast.PolynomialIdentity)
	assert.Equal(t, "((x * (1 - x)) - 0)", identity.Expression.String())
}

func TestAsmLabel(t *testing.T) {
	stmt := parseOneAsmStatement(t, "start::")
	//
	assert.Equal(t, "start", stmt.(*ast.Label).Name)
}

func TestAsmAssignments(t *testing.T) {
	file := parseAsmString(t, "A <=X= 2;\nA, B <== f(3);\n")
	//
	first := file.Statements[0].(*ast.Assignment)
	second := file.Statements[1].(*ast.Assignment)
	//
	assert.Equal(t, []string{"A"}, first.LhsNames)
	assert.Equal(t, "X", first.AssignOperator)
	assert.Equal(t, "2", first.Rhs.String())
	//
	assert.Equal(t, []string{"A", "B"}, second.LhsNames)
	assert.Equal(t, "", second.AssignOperator)
	assert.Equal(t, "f(3)", second.Rhs.String())
}

func TestAsmInstructionCall(t *testing.T) {
	file := parseAsmString(t, "jmp start;\nret;\n")
	//
	jmp := file.Statements[0].(*ast.Instruction)
	ret := file.Statements[1].(*ast.Instruction)
	//
	assert.Equal(t, "jmp", jmp.Name)
	assert.Equal(t, 1, len(jmp.Args))
	assert.Equal(t, "start", jmp.Args[0].String())
	assert.Equal(t, 0, len(ret.Args))
}

func TestAsmProgram(t *testing.T) {
	program := `
degree 262144;

reg pc[@pc];
reg X[<=];
reg A;

pil { pol commit XInv; }

instr jmp l { pc' = l }

start::
A <=X= A + 1;
jmp start;
`
	file := parseAsmString(t, program)
	//
	assert.Equal(t, 9, len(file.Statements))
}

// ============================================================================
// Test Helpers
// ============================================================================

func parseAsmString(t *testing.T, input string) *ast.AsmFile {
	t.Helper()
	//
	file, errs := ParseAsmFile(source.NewSourceFile("test.asm", []byte(input)))
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return file
}

func parseOneAsmStatement(t *testing.T, input string) ast.AsmStatement {
	t.Helper()
	//
	file := parseAsmString(t, input)
	//
	assert.Equal(t, 1, len(file.Statements))
	//
	return file.Statements[0]
}
