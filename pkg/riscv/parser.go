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

// Package riscv implements the textual front end for the RISC-V style
// assembly dialect.  The grammar is line oriented: each line holds at most
// one statement (a label, a directive or an instruction), with blank and
// comment-only lines yielding none.
package riscv

import (
	"strconv"

	"github.com/consensys/go-pil/pkg/util"
	"github.com/consensys/go-pil/pkg/util/source"
	"github.com/consensys/go-pil/pkg/util/source/lex"
)

// Parse parses a complete assembly source file into its statement list, or
// one or more syntax errors.  Parsing is total: either the entire input is
// consumed, or no statements are returned.
func Parse(srcfile *source.File) ([]Statement, []source.SyntaxError) {
	var (
		parser     = NewParser(srcfile)
		statements []Statement
	)
	//
	if parser.errs != nil {
		return nil, parser.errs
	}
	//
	for parser.lookahead().Kind != END_OF {
		// Blank (or comment-only) lines yield no statement.
		if parser.match(NEWLINE) {
			continue
		}
		//
		stmt, errs := parser.parseStatement()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		statements = append(statements, stmt)
	}
	//
	return statements, nil
}

// ParseLine parses a single line of assembly, yielding its statement or nil
// for a blank (or comment-only) line.
func ParseLine(srcfile *source.File) (Statement, []source.SyntaxError) {
	parser := NewParser(srcfile)
	//
	if parser.errs != nil {
		return nil, parser.errs
	}
	// Blank line?
	if parser.match(NEWLINE) || parser.lookahead().Kind == END_OF {
		return nil, nil
	}
	//
	stmt, errs := parser.parseStatement()
	if len(errs) > 0 {
		return nil, errs
	}
	// Anything left over is an error.
	if parser.lookahead().Kind != END_OF {
		return nil, parser.syntaxErrors(parser.lookahead(), "unexpected token")
	}
	//
	return stmt, nil
}

// Parser is a parser for the assembly dialect.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Lexing errors (if any)
	errs []source.SyntaxError
}

// NewParser constructs a new parser for a given source file, tokenising it in
// the process.
func NewParser(srcfile *source.File) *Parser {
	tokens, errs := Lex(srcfile)
	//
	return &Parser{srcfile, tokens, 0, errs}
}

// Parse a single statement, including its terminating newline (if present).
func (p *Parser) parseStatement() (Statement, []source.SyntaxError) {
	var (
		stmt Statement
		errs []source.SyntaxError
	)
	//
	switch {
	case p.follows(IDENTIFIER, COLON):
		// Neither can fail by construction
		name, _ := p.parseIdentifier()
		p.expect(COLON)
		// A label may share its line with a following statement, hence no
		// line terminator is required here.
		return &Label{Name: name}, nil
	case p.follows(DOT_IDENTIFIER):
		tok, _ := p.expect(DOT_IDENTIFIER)
		//
		args, errs := p.parseArguments()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmt = &Directive{Name: p.string(tok), Args: args}
	case p.follows(IDENTIFIER):
		name, _ := p.parseIdentifier()
		//
		args, errs := p.parseArguments()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmt = &Instruction{Name: name, Args: args}
	default:
		return nil, p.syntaxErrors(p.lookahead(), "unknown statement")
	}
	// A statement runs to the end of its line.
	if p.lookahead().Kind != END_OF {
		if _, errs = p.expect(NEWLINE); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return stmt, nil
}

// Parse a comma-separated list of zero or more arguments, running to the end
// of the line.
func (p *Parser) parseArguments() ([]Argument, []source.SyntaxError) {
	var args []Argument
	//
	for p.lookahead().Kind != NEWLINE && p.lookahead().Kind != END_OF {
		// look for ","
		if len(args) != 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		arg, errs := p.parseArgument()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
	}
	//
	return args, nil
}

// Parse a single argument.  Register mnemonics, string literals and numbers
// are self-evident from their leading token; a '%' leads a relocation; an
// identifier is a bare symbol, or the left half of a symbol difference.
// Constants (numbers and relocations) may additionally be followed by a
// parenthesised register, giving the offset form "constant(register)".
func (p *Parser) parseArgument() (Argument, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case REGISTER:
		p.match(REGISTER)
		// Cannot fail since the mnemonic class is closed.
		index, _ := RegisterIndex(p.string(lookahead))
		//
		return &Register{Index: index}, nil
	case STRING:
		p.match(STRING)
		//
		bytes, errs := p.stringLiteral(lookahead)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return &StringLiteral{Value: bytes}, nil
	case NUMBER:
		p.match(NUMBER)
		//
		value, errs := p.number(lookahead)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return p.parseOffsetSuffix(&Number{Value: value})
	case PERCENT:
		constant, errs := p.parseRelocation()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return p.parseOffsetSuffix(constant)
	case IDENTIFIER:
		// Cannot fail by construction
		name, _ := p.parseIdentifier()
		// Check for the symbol-difference form "sym1 - sym2".
		if p.match(MINUS) {
			right, errs := p.parseIdentifier()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			return &Difference{Left: name, Right: right}, nil
		}
		//
		return &Symbol{Name: name}, nil
	}
	//
	return nil, p.syntaxErrors(lookahead, "unknown argument")
}

// Parse the optional "(register)" suffix turning a constant into a
// register-relative address.
func (p *Parser) parseOffsetSuffix(constant Constant) (Argument, []source.SyntaxError) {
	if !p.match(LPAREN) {
		return constant, nil
	}
	//
	tok, errs := p.expect(REGISTER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	// Cannot fail since the mnemonic class is closed.
	index, _ := RegisterIndex(p.string(tok))
	//
	return &RegOffset{Register: Register{Index: index}, Offset: constant}, nil
}

// Parse a relocation placeholder "%hi(symbol)" or "%lo(symbol)".
func (p *Parser) parseRelocation() (Constant, []source.SyntaxError) {
	// Cannot fail since checked by caller
	p.expect(PERCENT)
	//
	tok, errs := p.expect(IDENTIFIER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	kind := p.string(tok)
	if kind != "hi" && kind != "lo" {
		return nil, p.syntaxErrors(tok, "expected 'hi' or 'lo'")
	}
	//
	if _, errs = p.expect(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	symbol, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if _, errs = p.expect(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	if kind == "hi" {
		return &HiDataRef{Symbol: symbol}, nil
	}
	//
	return &LoDataRef{Symbol: symbol}, nil
}

// ============================================================================
// Helpers
// ============================================================================

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Get the 64-bit signed integer represented by the given token.  Overflow is
// a fatal error, not a silent truncation.
func (p *Parser) number(token lex.Token) (int64, []source.SyntaxError) {
	// Base 0 handles both the "0x" prefix and '_' separators.
	value, err := strconv.ParseInt(p.string(token), 0, 64)
	//
	if err != nil {
		return 0, p.lexErrors(token, "malformed number")
	}
	//
	return value, nil
}

// Get the decoded bytes of the given string token, stripping the enclosing
// quotes and resolving escapes.
func (p *Parser) stringLiteral(token lex.Token) ([]byte, []source.SyntaxError) {
	str := p.string(token)
	// Strip enclosing quotes
	bytes, err := util.Unescape(str[1 : len(str)-1])
	//
	if err != nil {
		return nil, p.lexErrors(token, err.Error())
	}
	//
	return bytes, nil
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows attempts to check what follows the current position.
func (p *Parser) follows(kinds ...uint) bool {
	for i, kind := range kinds {
		n := i + p.index
		if n >= len(p.tokens) {
			return false
		} else if p.tokens[n].Kind != kind {
			return false
		}
	}
	//
	return true
}

func (p *Parser) parseIdentifier() (string, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return "", errs
	}
	//
	return p.string(tok), nil
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

func (p *Parser) lexErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.LexError(token.Span, msg)}
}
