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

// Parse a single ASM statement.  Declarations are keyword led; program
// statements begin with an identifier, and are disambiguated by what follows
// it ("::" for labels, "," or "<=" for assignments, anything else for
// instruction invocations).
func (p *Parser) parseAsmStatement() (ast.AsmStatement, []source.SyntaxError) {
	var start = p.index
	//
	switch p.lookahead().Kind {
	case KEYWORD_DEGREE:
		return p.parseDegree(start)
	case KEYWORD_REG:
		return p.parseRegisterDeclaration(start)
	case KEYWORD_INSTR:
		return p.parseInstructionDeclaration(start)
	case KEYWORD_PIL:
		return p.parseInlinePil(start)
	case IDENTIFIER:
		switch {
		case p.follows(IDENTIFIER, COLON_COLON):
			return p.parseLabel(start)
		case p.follows(IDENTIFIER, COMMA), p.follows(IDENTIFIER, LESS_THAN_EQUALS):
			return p.parseAssignment(start)
		}
		//
		return p.parseInstruction(start)
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "unknown statement")
}

func (p *Parser) parseDegree(start int) (ast.AsmStatement, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(KEYWORD_DEGREE)
	//
	tok, errs := p.expect(NUMBER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	degree, errs := p.bigNumber(tok)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Degree{SourceRef: p.srcRef(start), Degree: degree}, nil
}

func (p *Parser) parseRegisterDeclaration(start int) (ast.AsmStatement, []source.SyntaxError) {
	var flag = ast.NO_FLAG
	// Cannot fail since checked by caller
	p.expect(KEYWORD_REG)
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	// Check for a flag, written "[@pc]" or "[<=]"
	if p.match(LBRACKET) {
		switch {
		case p.match(AT):
			word, errs := p.parseIdentifier()
			if len(errs) > 0 {
				return nil, errs
			} else if word != "pc" {
				return nil, p.syntaxErrors(p.tokens[p.index-1], "expected 'pc'")
			}
			//
			flag = ast.IS_PC
		case p.match(LESS_THAN_EQUALS):
			flag = ast.IS_ASSIGNMENT
		default:
			return nil, p.syntaxErrors(p.lookahead(), "expected '@pc' or '<='")
		}
		//
		if _, errs = p.expect(RBRACKET); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.RegisterDeclaration{SourceRef: p.srcRef(start), Name: name, Flag: flag}, nil
}

func (p *Parser) parseInstructionDeclaration(start int) (ast.AsmStatement, []source.SyntaxError) {
	var decl ast.InstructionDeclaration
	// Cannot fail since checked by caller
	p.expect(KEYWORD_INSTR)
	//
	name, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	decl.SourceRef, decl.Name = p.srcRef(start), name
	//
	if decl.Inputs, errs = p.parseParamList(); len(errs) > 0 {
		return nil, errs
	}
	// Outputs follow a "->" (if present)
	if p.match(RIGHT_ARROW) {
		if decl.Outputs, errs = p.parseParamList(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	if decl.Body, errs = p.parseInstructionBody(); len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RCURLY); len(errs) > 0 {
		return nil, errs
	}
	// Note: no trailing semicolon, since the body ends with "}".
	return &decl, nil
}

// Parse a comma-separated list of zero or more instruction parameters, each
// an identifier with an optional ": type" annotation.
func (p *Parser) parseParamList() ([]ast.Param, []source.SyntaxError) {
	var params []ast.Param
	//
	for p.lookahead().Kind == IDENTIFIER {
		var param ast.Param
		// Cannot fail by construction
		param.Name, _ = p.parseIdentifier()
		//
		if p.match(COLON) {
			var errs []source.SyntaxError
			//
			if param.Type, errs = p.parseIdentifier(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		params = append(params, param)
		//
		if !p.match(COMMA) {
			break
		}
	}
	//
	return params, nil
}

// Parse the (possibly empty) body of an instruction declaration, being a
// comma-separated list of constraint elements.
func (p *Parser) parseInstructionBody() ([]ast.Statement, []source.SyntaxError) {
	var body []ast.Statement
	//
	for p.lookahead().Kind != RCURLY {
		// look for ","
		if len(body) != 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
		// Connect identities are not permitted here.
		elem, errs := p.parseIdentityOrCall(p.index, false)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		body = append(body, elem)
	}
	//
	return body, nil
}

func (p *Parser) parseInlinePil(start int) (ast.AsmStatement, []source.SyntaxError) {
	var block ast.InlinePil
	// Cannot fail since checked by caller
	p.expect(KEYWORD_PIL)
	//
	block.SourceRef = p.srcRef(start)
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for p.lookahead().Kind != RCURLY {
		stmt, errs := p.parsePilStatement()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		block.Statements = append(block.Statements, stmt)
	}
	// Cannot fail by construction
	p.expect(RCURLY)
	//
	return &block, nil
}

func (p *Parser) parseLabel(start int) (ast.AsmStatement, []source.SyntaxError) {
	// Neither can fail since checked by caller
	name, _ := p.parseIdentifier()
	p.expect(COLON_COLON)
	//
	return &ast.Label{SourceRef: p.srcRef(start), Name: name}, nil
}

// Parse an assignment "R0, .., Rn <=X= e;" where the "X" names an (optional)
// assignment-register class.
func (p *Parser) parseAssignment(start int) (ast.AsmStatement, []source.SyntaxError) {
	var assign ast.Assignment
	//
	names, errs := p.parseIdentifierList()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	assign.SourceRef, assign.LhsNames = p.srcRef(start), names
	//
	if _, errs = p.expect(LESS_THAN_EQUALS); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.lookahead().Kind == IDENTIFIER {
		// Cannot fail by construction
		assign.AssignOperator, _ = p.parseIdentifier()
	}
	//
	if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	}
	//
	if assign.Rhs, errs = p.parseExpression(); len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &assign, nil
}

func (p *Parser) parseInstruction(start int) (ast.AsmStatement, []source.SyntaxError) {
	// Cannot fail since checked by caller
	name, _ := p.parseIdentifier()
	//
	args, errs := p.parseExpressionList(SEMICOLON)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Instruction{SourceRef: p.srcRef(start), Name: name, Args: args}, nil
}
