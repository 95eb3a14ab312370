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

// The expression grammar is a chain of precedence tiers, lowest binding
// first: | < ^ < & < (<< >>) < (+ -) < (* / %) < **.  Every tier associates
// to the left; note this includes exponentiation, so "a ** b ** c" parses as
// "(a ** b) ** c".  Each tier is one parsing function which repeatedly folds
// operands produced by the tier above.

// parseExpression parses a complete expression, starting from the lowest
// precedence tier.
func (p *Parser) parseExpression() (ast.Expr, []source.SyntaxError) {
	return p.parseBinary(0)
}

// Binary tiers, from loosest to tightest.  Each tier lists the token kinds of
// its operators along with the corresponding AST operators.
var binaryTiers = []struct {
	tokens []uint
	ops    []ast.BinaryOp
}{
	{[]uint{PIPE}, []ast.BinaryOp{ast.OR}},
	{[]uint{CARET}, []ast.BinaryOp{ast.XOR}},
	{[]uint{AMPERSAND}, []ast.BinaryOp{ast.AND}},
	{[]uint{SHIFT_LEFT, SHIFT_RIGHT}, []ast.BinaryOp{ast.SHL, ast.SHR}},
	{[]uint{PLUS, MINUS}, []ast.BinaryOp{ast.ADD, ast.SUB}},
	{[]uint{STAR, SLASH, PERCENT}, []ast.BinaryOp{ast.MUL, ast.DIV, ast.MOD}},
	{[]uint{POW}, []ast.BinaryOp{ast.POW}},
}

// parseBinary parses the binary tier at a given level, recursing into the
// next-tighter tier for its operands and folding left.
func (p *Parser) parseBinary(tier int) (ast.Expr, []source.SyntaxError) {
	if tier >= len(binaryTiers) {
		return p.parseUnary()
	}
	//
	lhs, errs := p.parseBinary(tier + 1)
	//
	for len(errs) == 0 {
		op, ok := matchTier(p, tier)
		if !ok {
			break
		}
		//
		var rhs ast.Expr
		//
		if rhs, errs = p.parseBinary(tier + 1); len(errs) == 0 {
			lhs = &ast.BinaryOperation{Op: op, Left: lhs, Right: rhs}
		}
	}
	//
	return lhs, errs
}

// matchTier attempts to match (and consume) one of the operator tokens of a
// given tier.
func matchTier(p *Parser, tier int) (ast.BinaryOp, bool) {
	lookahead := p.lookahead().Kind
	//
	for i, kind := range binaryTiers[tier].tokens {
		if kind == lookahead {
			p.match(kind)
			return binaryTiers[tier].ops[i], true
		}
	}
	//
	return 0, false
}

// parseUnary parses an optional prefix "+" or "-" applied to a term.  Unary
// operators bind tighter than any binary tier, including exponentiation's
// left operand, so "-2 ** 3" parses as "(-2) ** 3".
func (p *Parser) parseUnary() (ast.Expr, []source.SyntaxError) {
	var op ast.UnaryOp
	//
	switch {
	case p.match(PLUS):
		op = ast.PLUS
	case p.match(MINUS):
		op = ast.MINUS
	default:
		return p.parseTerm()
	}
	//
	arg, errs := p.parseUnary()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.UnaryOperation{Op: op, Arg: arg}, nil
}

// parseTerm parses an atomic term of the expression grammar.
func (p *Parser) parseTerm() (ast.Expr, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case IDENTIFIER:
		if p.follows(IDENTIFIER, LPAREN) {
			return p.parseFunctionCall()
		}
		//
		return p.parsePolynomialReference()
	case PERCENT_IDENTIFIER:
		p.match(PERCENT_IDENTIFIER)
		//
		return &ast.Constant{Name: stripPercent(p.string(lookahead))}, nil
	case COLON:
		p.match(COLON)
		//
		name, errs := p.parseIdentifier()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.PublicReference{Name: name}, nil
	case NUMBER:
		p.match(NUMBER)
		//
		value, errs := p.fieldNumber(lookahead)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.Number{Value: value}, nil
	case STRING:
		p.match(STRING)
		//
		bytes, errs := p.stringLiteral(lookahead)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &ast.String{Value: bytes}, nil
	case KEYWORD_MATCH:
		return p.parseMatchExpression()
	case LPAREN:
		return p.parseParenthesised()
	case DOLLAR_LCURLY:
		return p.parseFreeInput()
	}
	//
	return nil, p.syntaxErrors(lookahead, "unknown expression")
}

// Parse a function call "name(args)".
func (p *Parser) parseFunctionCall() (ast.Expr, []source.SyntaxError) {
	name, _ := p.parseIdentifier()
	// Cannot fail since checked by caller
	p.expect(LPAREN)
	//
	args, errs := p.parseExpressionList(RPAREN)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs := p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.FunctionCall{Name: name, Args: args}, nil
}

// Parse a polynomial reference "ns.name[index]'", where the namespace, index
// and next-row marker are all optional.
func (p *Parser) parsePolynomialReference() (ast.Expr, []source.SyntaxError) {
	var (
		ref  ast.PolynomialReference
		errs []source.SyntaxError
	)
	//
	if ref.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	// Check for namespace qualifier
	if p.match(DOT) {
		ref.Namespace = ref.Name
		//
		if ref.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
	}
	// Check for array index
	if p.match(LBRACKET) {
		if ref.Index, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(RBRACKET); len(errs) > 0 {
			return nil, errs
		}
	}
	// Check for next-row marker
	ref.Next = p.match(PRIME)
	//
	return &ref, nil
}

// Parse a match expression "match e { pat => e, ..., _ => e }".  Arm order is
// preserved exactly; a single trailing comma is permitted.
func (p *Parser) parseMatchExpression() (ast.Expr, []source.SyntaxError) {
	var match ast.MatchExpression
	// Cannot fail since checked by caller
	p.expect(KEYWORD_MATCH)
	//
	scrutinee, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	match.Scrutinee = scrutinee
	//
	if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for p.lookahead().Kind != RCURLY {
		var arm ast.MatchArm
		// Wildcard arms are written "_"
		if p.follows(IDENTIFIER, FAT_ARROW) && p.string(p.lookahead()) == "_" {
			p.match(IDENTIFIER)
		} else if arm.Pattern, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs = p.expect(FAT_ARROW); len(errs) > 0 {
			return nil, errs
		}
		//
		if arm.Value, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
		//
		match.Arms = append(match.Arms, arm)
		// Without a comma, the arm list is over.
		if !p.match(COMMA) {
			break
		}
	}
	//
	if _, errs = p.expect(RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	return &match, nil
}

// Parse a parenthesised expression, which is either a simple grouping "(e)"
// or a tuple "(e0, e1, ...)" of at least two elements.
func (p *Parser) parseParenthesised() (ast.Expr, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(LPAREN)
	//
	first, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	// Simple grouping?
	if !p.follows(COMMA) {
		if _, errs = p.expect(RPAREN); len(errs) > 0 {
			return nil, errs
		}
		//
		return first, nil
	}
	// Tuple of two or more elements
	items := []ast.Expr{first}
	//
	for p.match(COMMA) {
		var item ast.Expr
		//
		if item, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
		//
		items = append(items, item)
	}
	//
	if _, errs = p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Tuple{Items: items}, nil
}

// Parse a free input placeholder "${e}".
func (p *Parser) parseFreeInput() (ast.Expr, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(DOLLAR_LCURLY)
	//
	arg, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.FreeInput{Arg: arg}, nil
}

// Parse a comma-separated list of zero or more expressions, up to (but not
// consuming) the given terminator.  N elements are separated by exactly N-1
// interior commas, with no trailing comma.
func (p *Parser) parseExpressionList(terminator uint) ([]ast.Expr, []source.SyntaxError) {
	var exprs []ast.Expr
	//
	if p.lookahead().Kind == terminator {
		return nil, nil
	}
	//
	for len(exprs) == 0 || p.match(COMMA) {
		expr, errs := p.parseExpression()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		exprs = append(exprs, expr)
	}
	//
	return exprs, nil
}
