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
	"github.com/consensys/go-pil/pkg/util/source"
)

// Statement is one top-level statement of a PIL file.  Every statement
// records the span of source text at which it begins, from which its starting
// line number can be recovered.
type Statement interface {
	SourceSpan() source.Span
}

// SourceRef records where, in the original source file, a given statement
// begins.  It is embedded in every statement node.
type SourceRef struct {
	Span source.Span
}

// SourceSpan returns the span at which the enclosing statement begins.
func (p *SourceRef) SourceSpan() source.Span {
	return p.Span
}

// PilFile is the parsed form of a complete PIL source file, i.e. a flat
// statement list.
type PilFile struct {
	Statements []Statement
}

// ============================================================================
// Declarations
// ============================================================================

// Include pulls another source file into this one.  Resolution of the path is
// a downstream concern; this layer only records it.
type Include struct {
	SourceRef
	Path string
}

// Namespace opens a new namespace with a given degree (i.e. column length)
// expression.  Subsequent declarations belong to this namespace.
type Namespace struct {
	SourceRef
	Name   string
	Degree Expr
}

// ConstantDefinition defines a named constant (written "constant %N = e;").
// The name is stored without its "%" sigil.
type ConstantDefinition struct {
	SourceRef
	Name  string
	Value Expr
}

// PolynomialDefinition defines an intermediate polynomial directly by an
// expression (written "pol N = e;").
type PolynomialDefinition struct {
	SourceRef
	Name  string
	Value Expr
}

// PublicDeclaration declares a public value as the evaluation of a polynomial
// at a given point (written "public N = poly(e);").
type PublicDeclaration struct {
	SourceRef
	Name       string
	Polynomial *PolynomialReference
	Index      Expr
}

// PolynomialConstantDeclaration declares one or more constant (i.e. fixed)
// columns without a definition.
type PolynomialConstantDeclaration struct {
	SourceRef
	Names []string
}

// PolynomialConstantDefinition declares a constant column together with its
// defining function.
type PolynomialConstantDefinition struct {
	SourceRef
	Name       string
	Definition FunctionDefinition
}

// PolynomialCommitDeclaration declares one or more committed (i.e. witness)
// columns.  A witness column may optionally carry a query function used to
// compute its values.
type PolynomialCommitDeclaration struct {
	SourceRef
	Names []string
	// Definition is nil unless a query function was supplied.
	Definition FunctionDefinition
}

// ============================================================================
// Function definitions
// ============================================================================

// FunctionDefinition gives the values of a declared column, either as a
// mapping from row index to value, as a (possibly repeated) array of values,
// or as a witness query.
type FunctionDefinition interface {
	isFunctionDefinition()
}

// MappingDefinition defines column values by an expression over the given
// parameters (written "(i) { e }").
type MappingDefinition struct {
	Params []string
	Value  Expr
}

func (p *MappingDefinition) isFunctionDefinition() {}

// ArrayDefinition defines column values as the concatenation of one or more
// repeated-array blocks.
type ArrayDefinition struct {
	Blocks []RepeatedArray
}

func (p *ArrayDefinition) isFunctionDefinition() {}

// QueryDefinition defines how a witness column's values are queried at
// witness-generation time (written "(i) query e").
type QueryDefinition struct {
	Params []string
	Value  Expr
}

func (p *QueryDefinition) isFunctionDefinition() {}

// RepeatedArray is a block of values which, when marked repeated (by a
// trailing "*"), is repeated as often as needed to fill the column.
type RepeatedArray struct {
	Values   []Expr
	Repeated bool
}

// ============================================================================
// Identities
// ============================================================================

// PolynomialIdentity constrains an expression to equal zero on every row.  An
// equation "a = b" is normalised at parse time into the expression "a - b".
type PolynomialIdentity struct {
	SourceRef
	Expression Expr
}

// SelectedExpressions pairs a list of expressions with an optional selector
// guarding where an identity must hold.
type SelectedExpressions struct {
	// Selector is nil when no guard was written.
	Selector    Expr
	Expressions []Expr
}

// PlookupIdentity asserts that the tuples selected on the left are contained
// within the tuples selected on the right (written "a in b").
type PlookupIdentity struct {
	SourceRef
	Left  SelectedExpressions
	Right SelectedExpressions
}

// PermutationIdentity asserts that the tuples selected on the left are a
// permutation of the tuples selected on the right (written "a is b").
type PermutationIdentity struct {
	SourceRef
	Left  SelectedExpressions
	Right SelectedExpressions
}

// ConnectIdentity asserts that two expression lists are equal as tuples
// (written "{a, b} connect {c, d}").  Neither side supports a selector.
type ConnectIdentity struct {
	SourceRef
	Left  []Expr
	Right []Expr
}

// ============================================================================
// Macros & calls
// ============================================================================

// MacroDefinition defines a reusable block of statements.  The trailing
// expression, if present, is the macro's result when invoked in expression
// position.
type MacroDefinition struct {
	SourceRef
	Name       string
	Params     []string
	Statements []Statement
	// Expression is nil for macros without a result.
	Expression Expr
}

// FunctionCallStatement invokes a function (e.g. a macro) for its statement
// effect (written "Name(args);").
type FunctionCallStatement struct {
	SourceRef
	Call *FunctionCall
}
