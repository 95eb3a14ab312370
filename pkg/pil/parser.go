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

// Package pil implements the textual front end for the combined
// instruction-set-description and polynomial-identity-constraint language.
// Two entry points are provided: ParsePilFile for constraint (PIL) files, and
// ParseAsmFile for instruction-set (ASM) files.  Both share a single lexer
// and a single expression grammar.
package pil

import (
	"math/big"
	"strings"

	"github.com/consensys/go-pil/pkg/field"
	"github.com/consensys/go-pil/pkg/pil/ast"
	"github.com/consensys/go-pil/pkg/util"
	"github.com/consensys/go-pil/pkg/util/source"
	"github.com/consensys/go-pil/pkg/util/source/lex"
)

// ParsePilFile parses a given source file representing a PIL (constraint)
// file into its abstract syntax tree, or one or more syntax errors.  Parsing
// is total: either the entire input is consumed, or no tree is returned.
func ParsePilFile(srcfile *source.File) (*ast.PilFile, []source.SyntaxError) {
	parser := NewParser(srcfile)
	//
	if parser.errs != nil {
		return nil, parser.errs
	}
	//
	return parser.parsePilFile()
}

// ParseAsmFile parses a given source file representing an ASM (instruction
// set) file into its abstract syntax tree, or one or more syntax errors.
func ParseAsmFile(srcfile *source.File) (*ast.AsmFile, []source.SyntaxError) {
	parser := NewParser(srcfile)
	//
	if parser.errs != nil {
		return nil, parser.errs
	}
	//
	return parser.parseAsmFile()
}

// Parser is a parser for the PIL and ASM dialects.
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

func (p *Parser) parsePilFile() (*ast.PilFile, []source.SyntaxError) {
	var file ast.PilFile
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		stmt, errs := p.parsePilStatement()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		file.Statements = append(file.Statements, stmt)
	}
	//
	return &file, nil
}

func (p *Parser) parseAsmFile() (*ast.AsmFile, []source.SyntaxError) {
	var file ast.AsmFile
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		stmt, errs := p.parseAsmStatement()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		file.Statements = append(file.Statements, stmt)
	}
	//
	return &file, nil
}

// ============================================================================
// Helpers
// ============================================================================

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Get the (arbitrary precision) number represented by the given token.  The
// literal grammar guarantees this cannot fail, except for stray underscores
// which big.Int rejects.
func (p *Parser) bigNumber(token lex.Token) (*big.Int, []source.SyntaxError) {
	var number big.Int
	// Base 0 handles both the "0x" prefix and '_' separators.
	if _, ok := number.SetString(p.string(token), 0); !ok {
		return nil, p.lexErrors(token, "malformed number")
	}
	//
	return &number, nil
}

// Get the field element represented by the given token, or fail if the value
// lies outside the field's representable range.
func (p *Parser) fieldNumber(token lex.Token) (field.Element, []source.SyntaxError) {
	value, errs := p.bigNumber(token)
	//
	if len(errs) > 0 {
		return field.Element{}, errs
	}
	//
	element, err := field.FromBig(value)
	if err != nil {
		return field.Element{}, p.lexErrors(token, err.Error())
	}
	//
	return element, nil
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

// SpanOf determines the span of source text covered by the token at a given
// position within the token stream.
func (p *Parser) spanOf(index int) source.Span {
	return p.tokens[index].Span
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

// Parse a comma-separated list of identifiers containing at least one
// element.
func (p *Parser) parseIdentifierList() ([]string, []source.SyntaxError) {
	var names []string
	//
	for len(names) == 0 || p.match(COMMA) {
		name, errs := p.parseIdentifier()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	//
	return names, nil
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

func (p *Parser) lexErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.LexError(token.Span, msg)}
}

// StripPercent removes the leading '%' sigil from a named constant token.
func stripPercent(name string) string {
	return strings.TrimPrefix(name, "%")
}
