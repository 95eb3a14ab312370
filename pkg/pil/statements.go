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
	"github.com/consensys/go-pil/pkg/pil/ast"
	"github.com/consensys/go-pil/pkg/util/source"
)

// Parse a single PIL statement, including its terminating semicolon.
// Dispatch is by leading keyword; anything else must be an identity or a
// function call statement.
func (p *Parser) parsePilStatement() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.Statement
		errs  []source.SyntaxError
	)
	//
	switch p.lookahead().Kind {
	case KEYWORD_INCLUDE:
		stmt, errs = p.parseInclude(start)
	case KEYWORD_NAMESPACE:
		stmt, errs = p.parseNamespace(start)
	case KEYWORD_CONSTANT:
		stmt, errs = p.parseConstantDefinition(start)
	case KEYWORD_POL, KEYWORD_COL:
		stmt, errs = p.parsePolDeclaration(start)
	case KEYWORD_PUBLIC:
		stmt, errs = p.parsePublicDeclaration(start)
	case KEYWORD_MACRO:
		stmt, errs = p.parseMacroDefinition(start)
	default:
		stmt, errs = p.parseIdentityOrCall(start, true)
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	// Every PIL statement is semicolon terminated.
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return stmt, nil
}

// srcRef constructs the source reference for a statement beginning at the
// given token position.
func (p *Parser) srcRef(start int) ast.SourceRef {
	return ast.SourceRef{Span: p.spanOf(start)}
}

func (p *Parser) parseInclude(start int) (ast.Statement, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(KEYWORD_INCLUDE)
	//
	tok, errs := p.expect(STRING)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	path, errs := p.stringLiteral(tok)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Include{SourceRef: p.srcRef(start), Path: string(path)}, nil
}

func (p *Parser) parseNamespace(start int) (ast.Statement, []source.SyntaxError) {
	var (
		name   string
		degree ast.Expr
		errs   []source.SyntaxError
	)
	// Cannot fail since checked by caller
	p.expect(KEYWORD_NAMESPACE)
	//
	if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	if degree, errs = p.parseExpression(); len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Namespace{SourceRef: p.srcRef(start), Name: name, Degree: degree}, nil
}

func (p *Parser) parseConstantDefinition(start int) (ast.Statement, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(KEYWORD_CONSTANT)
	//
	tok, errs := p.expect(PERCENT_IDENTIFIER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	}
	//
	value, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.ConstantDefinition{
		SourceRef: p.srcRef(start),
		Name:      stripPercent(p.string(tok)),
		Value:     value,
	}, nil
}

// Parse the family of "pol" (or "col") declarations.  The keyword following
// the declaration selects the role: plain definitions ("pol N = e"), constant
// columns (declared bare, defined by a mapping or by repeated arrays) and
// committed columns (declared bare, or with a query function).
func (p *Parser) parsePolDeclaration(start int) (ast.Statement, []source.SyntaxError) {
	// Cannot fail since checked by caller ("pol" and "col" are synonyms)
	p.index++
	//
	switch {
	case p.match(KEYWORD_CONSTANT):
		return p.parseConstantColumn(start)
	case p.match(KEYWORD_COMMIT):
		return p.parseCommittedColumn(start)
	}
	// Plain polynomial definition
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	}
	//
	value, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.PolynomialDefinition{SourceRef: p.srcRef(start), Name: name, Value: value}, nil
}

func (p *Parser) parseConstantColumn(start int) (ast.Statement, []source.SyntaxError) {
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	switch {
	case p.follows(LPAREN):
		// Mapping form "(params) { e }"
		params, errs := p.parseParenthesisedNames()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(LCURLY); len(errs) > 0 {
			return nil, errs
		}
		//
		value, errs := p.parseExpression()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(RCURLY); len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.PolynomialConstantDefinition{
			SourceRef:  p.srcRef(start),
			Name:       name,
			Definition: &ast.MappingDefinition{Params: params, Value: value},
		}, nil
	case p.match(EQUALS):
		// Array form "= [e, ...]* + ..."
		blocks, errs := p.parseArrayBlocks()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.PolynomialConstantDefinition{
			SourceRef:  p.srcRef(start),
			Name:       name,
			Definition: &ast.ArrayDefinition{Blocks: blocks},
		}, nil
	}
	// Bare declaration of one or more constant columns
	names := []string{name}
	//
	for p.match(COMMA) {
		var errs []source.SyntaxError
		//
		if name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	//
	return &ast.PolynomialConstantDeclaration{SourceRef: p.srcRef(start), Names: names}, nil
}

func (p *Parser) parseCommittedColumn(start int) (ast.Statement, []source.SyntaxError) {
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	// Query columns are written "pol commit N(params) query e"
	if p.follows(LPAREN) {
		params, errs := p.parseParenthesisedNames()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(KEYWORD_QUERY); len(errs) > 0 {
			return nil, errs
		}
		//
		value, errs := p.parseExpression()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.PolynomialCommitDeclaration{
			SourceRef:  p.srcRef(start),
			Names:      []string{name},
			Definition: &ast.QueryDefinition{Params: params, Value: value},
		}, nil
	}
	// Bare declaration of one or more witness columns
	names := []string{name}
	//
	for p.match(COMMA) {
		var errs []source.SyntaxError
		//
		if name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	//
	return &ast.PolynomialCommitDeclaration{SourceRef: p.srcRef(start), Names: names}, nil
}

// Parse one or more array blocks "[e, ...]" separated by "+", each with an
// optional trailing "*" marking the block as repeated.
func (p *Parser) parseArrayBlocks() ([]ast.RepeatedArray, []source.SyntaxError) {
	var blocks []ast.RepeatedArray
	//
	for len(blocks) == 0 || p.match(PLUS) {
		var block ast.RepeatedArray
		//
		if _, errs := p.expect(LBRACKET); len(errs) > 0 {
			return nil, errs
		}
		//
		values, errs := p.parseExpressionList(RBRACKET)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs := p.expect(RBRACKET); len(errs) > 0 {
			return nil, errs
		}
		//
		block.Values = values
		block.Repeated = p.match(STAR)
		//
		blocks = append(blocks, block)
	}
	//
	return blocks, nil
}

func (p *Parser) parsePublicDeclaration(start int) (ast.Statement, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(KEYWORD_PUBLIC)
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	}
	//
	poly, errs := p.parsePolynomialReference()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	index, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.PublicDeclaration{
		SourceRef:  p.srcRef(start),
		Name:       name,
		Polynomial: poly.(*ast.PolynomialReference),
		Index:      index,
	}, nil
}

func (p *Parser) parseMacroDefinition(start int) (ast.Statement, []source.SyntaxError) {
	var macro ast.MacroDefinition
	// Cannot fail since checked by caller
	p.expect(KEYWORD_MACRO)
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	params, errs := p.parseParenthesisedNames()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	macro.SourceRef, macro.Name, macro.Params = p.srcRef(start), name, params
	//
	if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	// Parse body statements, stopping at either the closing brace or a
	// trailing result expression.
	for p.lookahead().Kind != RCURLY {
		switch p.lookahead().Kind {
		case KEYWORD_INCLUDE, KEYWORD_NAMESPACE, KEYWORD_CONSTANT, KEYWORD_POL,
			KEYWORD_COL, KEYWORD_PUBLIC, KEYWORD_MACRO:
			stmt, errs := p.parsePilStatement()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			macro.Statements = append(macro.Statements, stmt)
		default:
			// Either an identity, a call statement, or the trailing result
			// expression.  Distinguishing the latter requires backtracking
			// after a lookahead parse.
			save := p.index
			//
			expr, errs := p.parseExpression()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			if p.follows(RCURLY) {
				macro.Expression = expr
				//
				continue
			}
			// Not a trailing expression, so re-parse as a statement.
			p.index = save
			//
			stmt, errs := p.parseIdentityOrCall(save, true)
			if len(errs) > 0 {
				return nil, errs
			}
			//
			if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
				return nil, errs
			}
			//
			macro.Statements = append(macro.Statements, stmt)
		}
	}
	// Cannot fail by construction
	p.expect(RCURLY)
	//
	return &macro, nil
}

// Parse a parenthesised, comma-separated list of zero or more names.
func (p *Parser) parseParenthesisedNames() ([]string, []source.SyntaxError) {
	var names []string
	//
	if _, errs := p.expect(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	for p.lookahead().Kind != RPAREN {
		// look for ","
		if len(names) != 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		name, errs := p.parseIdentifier()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	// Advance past ")"
	p.match(RPAREN)
	//
	return names, nil
}

// ============================================================================
// Identities
// ============================================================================

// Parse a statement which begins with an expression (or a brace list): a
// polynomial identity "a = b" (normalised to "a - b"), a plookup or
// permutation identity, a connect identity, or a bare function call.  Connect
// identities can be disallowed, since they are not permitted within
// instruction bodies (they have no selector support there).
func (p *Parser) parseIdentityOrCall(start int, allowConnect bool) (ast.Statement, []source.SyntaxError) {
	// A leading brace list is the left side of a plookup, permutation or
	// connect identity.
	if p.follows(LCURLY) {
		exprs, errs := p.parseBraceList()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		lookahead := p.lookahead()
		//
		switch {
		case p.match(KEYWORD_IN):
			return p.parseLookupRhs(start, lookahead.Kind, ast.SelectedExpressions{Expressions: exprs})
		case p.match(KEYWORD_IS):
			return p.parseLookupRhs(start, lookahead.Kind, ast.SelectedExpressions{Expressions: exprs})
		case allowConnect && p.match(KEYWORD_CONNECT):
			rhs, errs := p.parseBraceList()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			return &ast.ConnectIdentity{SourceRef: p.srcRef(start), Left: exprs, Right: rhs}, nil
		}
		//
		return nil, p.syntaxErrors(lookahead, "expected 'in', 'is' or 'connect'")
	}
	//
	expr, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	lookahead := p.lookahead()
	//
	switch {
	case p.match(EQUALS):
		// Polynomial identity, normalised at parse time into "lhs - rhs".
		rhs, errs := p.parseExpression()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.PolynomialIdentity{
			SourceRef:  p.srcRef(start),
			Expression: &ast.BinaryOperation{Op: ast.SUB, Left: expr, Right: rhs},
		}, nil
	case p.follows(LCURLY):
		// The expression is the selector of a lookup's left side.
		exprs, errs := p.parseBraceList()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		lookahead = p.lookahead()
		//
		if !p.match(KEYWORD_IN) && !p.match(KEYWORD_IS) {
			return nil, p.syntaxErrors(lookahead, "expected 'in' or 'is'")
		}
		//
		return p.parseLookupRhs(start, lookahead.Kind,
			ast.SelectedExpressions{Selector: expr, Expressions: exprs})
	case p.match(KEYWORD_IN):
		return p.parseLookupRhs(start, lookahead.Kind, ast.SelectedExpressions{Expressions: []ast.Expr{expr}})
	case p.match(KEYWORD_IS):
		return p.parseLookupRhs(start, lookahead.Kind, ast.SelectedExpressions{Expressions: []ast.Expr{expr}})
	case p.follows(SEMICOLON):
		// A bare statement must be a function call.
		if call, ok := expr.(*ast.FunctionCall); ok {
			return &ast.FunctionCallStatement{SourceRef: p.srcRef(start), Call: call}, nil
		}
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected identity or function call")
}

// Parse the right side of a plookup or permutation identity, assembling the
// final statement.  Both identity kinds are structurally identical, differing
// only in their tag.
func (p *Parser) parseLookupRhs(start int, kind uint, left ast.SelectedExpressions) (ast.Statement, []source.SyntaxError) {
	right, errs := p.parseSelectedExpressions()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if kind == KEYWORD_IN {
		return &ast.PlookupIdentity{SourceRef: p.srcRef(start), Left: left, Right: right}, nil
	}
	//
	return &ast.PermutationIdentity{SourceRef: p.srcRef(start), Left: left, Right: right}, nil
}

// Parse a selected-expressions block: either a bare expression (implicit
// empty selector), a brace list, or a selector followed by a brace list.
func (p *Parser) parseSelectedExpressions() (ast.SelectedExpressions, []source.SyntaxError) {
	var selected ast.SelectedExpressions
	//
	if p.follows(LCURLY) {
		exprs, errs := p.parseBraceList()
		//
		selected.Expressions = exprs
		//
		return selected, errs
	}
	//
	expr, errs := p.parseExpression()
	if len(errs) > 0 {
		return selected, errs
	}
	//
	if p.follows(LCURLY) {
		exprs, errs := p.parseBraceList()
		//
		selected.Selector, selected.Expressions = expr, exprs
		//
		return selected, errs
	}
	//
	selected.Expressions = []ast.Expr{expr}
	//
	return selected, nil
}

// Parse a brace-enclosed, comma-separated expression list.
func (p *Parser) parseBraceList() ([]ast.Expr, []source.SyntaxError) {
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	exprs, errs := p.parseExpressionList(RCURLY)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs := p.expect(RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	return exprs, nil
}
