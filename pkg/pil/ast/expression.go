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
	"fmt"
	"strings"

	"github.com/consensys/go-pil/pkg/field"
)

// Expr represents an arbitrary arithmetic expression over the polynomials
// (i.e. columns) of a given constraint system.  The same expression language
// is shared by both the constraint (PIL) and instruction-set (ASM) dialects.
// Every expression exclusively owns its children, giving a tree with no
// sharing and no cycles; nodes are immutable once constructed.
type Expr interface {
	fmt.Stringer
}

// BinaryOp is the (closed) enumeration of binary operators.
type BinaryOp uint

// UnaryOp is the (closed) enumeration of unary operators.
type UnaryOp uint

const (
	// ADD signals integer addition "+"
	ADD BinaryOp = iota
	// SUB signals integer subtraction "-"
	SUB
	// MUL signals integer multiplication "*"
	MUL
	// DIV signals integer division "/"
	DIV
	// MOD signals integer remainder "%"
	MOD
	// POW signals exponentiation "**"
	POW
	// SHL signals a left shift "<<"
	SHL
	// SHR signals a right shift ">>"
	SHR
	// AND signals bitwise conjunction "&"
	AND
	// OR signals bitwise disjunction "|"
	OR
	// XOR signals bitwise exclusive disjunction "^"
	XOR
)

const (
	// PLUS signals unary plus "+"
	PLUS UnaryOp = iota
	// MINUS signals unary negation "-"
	MINUS
)

// String returns the source-level spelling of this operator.
func (op BinaryOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case MOD:
		return "%"
	case POW:
		return "**"
	case SHL:
		return "<<"
	case SHR:
		return ">>"
	case AND:
		return "&"
	case OR:
		return "|"
	case XOR:
		return "^"
	default:
		panic("unknown binary operator")
	}
}

// String returns the source-level spelling of this operator.
func (op UnaryOp) String() string {
	switch op {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	default:
		panic("unknown unary operator")
	}
}

// ============================================================================
// BinaryOperation
// ============================================================================

// BinaryOperation applies a binary operator to two operand expressions.  All
// operators (including exponentiation) associate to the left.
type BinaryOperation struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (e *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// ============================================================================
// UnaryOperation
// ============================================================================

// UnaryOperation applies a prefix operator to a single operand expression.
type UnaryOperation struct {
	Op  UnaryOp
	Arg Expr
}

func (e *UnaryOperation) String() string {
	return fmt.Sprintf("(%s%s)", e.Op, e.Arg)
}

// ============================================================================
// Constant
// ============================================================================

// Constant is a reference to a named constant (written "%name" in the
// source).  The name is stored without its "%" sigil.
type Constant struct {
	Name string
}

func (e *Constant) String() string {
	return fmt.Sprintf("%%%s", e.Name)
}

// ============================================================================
// PolynomialReference
// ============================================================================

// PolynomialReference refers to a polynomial (column), optionally qualified
// by a namespace, optionally indexed into an array of columns, and optionally
// marked (by a trailing apostrophe) as referring to the next row of the
// evaluation domain.
type PolynomialReference struct {
	// Namespace is empty for an unqualified reference.
	Namespace string
	Name      string
	// Index is nil unless this is an array access.
	Index Expr
	// Next is true for a next-row reference.
	Next bool
}

func (e *PolynomialReference) String() string {
	var builder strings.Builder
	//
	if e.Namespace != "" {
		builder.WriteString(e.Namespace)
		builder.WriteString(".")
	}
	//
	builder.WriteString(e.Name)
	//
	if e.Index != nil {
		fmt.Fprintf(&builder, "[%s]", e.Index)
	}
	//
	if e.Next {
		builder.WriteString("'")
	}
	//
	return builder.String()
}

// ============================================================================
// PublicReference
// ============================================================================

// PublicReference refers to a declared public value (written ":name" in the
// source).
type PublicReference struct {
	Name string
}

func (e *PublicReference) String() string {
	return fmt.Sprintf(":%s", e.Name)
}

// ============================================================================
// Number
// ============================================================================

// Number is a field element constructed from a (decimal or hexadecimal)
// integer literal.  Range checking happens at parse time, hence the value
// here is always valid.
type Number struct {
	Value field.Element
}

func (e *Number) String() string {
	return e.Value.String()
}

// ============================================================================
// String
// ============================================================================

// String is a string literal, already decoded from its source escapes into an
// owned byte sequence.
type String struct {
	Value []byte
}

func (e *String) String() string {
	return fmt.Sprintf("%q", e.Value)
}

// ============================================================================
// MatchExpression
// ============================================================================

// MatchArm is one arm of a match expression.  A nil pattern represents the
// wildcard "_" arm.
type MatchArm struct {
	Pattern Expr
	Value   Expr
}

// MatchExpression selects, by first match, among a list of arms according to
// the value of a scrutinee expression.  Arm order is preserved exactly as
// written.
type MatchExpression struct {
	Scrutinee Expr
	Arms      []MatchArm
}

func (e *MatchExpression) String() string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "match %s {", e.Scrutinee)
	//
	for i, arm := range e.Arms {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		if arm.Pattern == nil {
			fmt.Fprintf(&builder, " _ => %s", arm.Value)
		} else {
			fmt.Fprintf(&builder, " %s => %s", arm.Pattern, arm.Value)
		}
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

// ============================================================================
// Tuple
// ============================================================================

// Tuple is a parenthesised list of two or more expressions.
type Tuple struct {
	Items []Expr
}

func (e *Tuple) String() string {
	return fmt.Sprintf("(%s)", joinExpressions(e.Items))
}

// ============================================================================
// FunctionCall
// ============================================================================

// FunctionCall invokes a named function (e.g. a macro, or a constant
// polynomial used as a mapping) with zero or more arguments.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (e *FunctionCall) String() string {
	return fmt.Sprintf("%s(%s)", e.Name, joinExpressions(e.Args))
}

// ============================================================================
// FreeInput
// ============================================================================

// FreeInput is a placeholder (written "${expr}") whose value is supplied
// externally at witness-generation time rather than computed from the tree.
type FreeInput struct {
	Arg Expr
}

func (e *FreeInput) String() string {
	return fmt.Sprintf("${%s}", e.Arg)
}

// joinExpressions renders a comma-separated expression list.
func joinExpressions(exprs []Expr) string {
	items := make([]string, len(exprs))
	//
	for i, e := range exprs {
		items[i] = e.String()
	}
	//
	return strings.Join(items, ", ")
}
