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
	"github.com/consensys/go-pil/pkg/util/collection/array"
	"github.com/consensys/go-pil/pkg/util/source"
	"github.com/consensys/go-pil/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (excluding newlines)
const WHITESPACE uint = 1

// COMMENT signals "# ... \n"
const COMMENT uint = 2

// NEWLINE signals "\n".  Newlines are retained, since the grammar is line
// oriented.
const NEWLINE uint = 3

// COLON signals ":"
const COLON uint = 4

// COMMA signals ","
const COMMA uint = 5

// LPAREN signals "("
const LPAREN uint = 6

// RPAREN signals ")"
const RPAREN uint = 7

// MINUS signals "-" (the symbol-difference operator)
const MINUS uint = 8

// PERCENT signals "%" (the relocation sigil)
const PERCENT uint = 9

// NUMBER signals a (decimal or hexadecimal) integer literal, including a
// leading minus sign on decimals
const NUMBER uint = 10

// STRING signals a quoted string literal
const STRING uint = 11

// REGISTER signals a register mnemonic
const REGISTER uint = 12

// DOT_IDENTIFIER signals a dot-led identifier (a directive name)
const DOT_IDENTIFIER uint = 13

// IDENTIFIER signals a dot-less identifier (a mnemonic or symbol)
const IDENTIFIER uint = 14

// Whitespace excludes newlines, which are meaningful here.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\r')))

// Comments are hash led, running until (but excluding) the next newline.
var comment lex.Scanner[rune] = lex.And(lex.Unit('#'), lex.Until('\n'))

// Rules for describing numbers.  Decimals permit a leading minus sign;
// both forms allow (and ignore) '_' in the middle for readability.
var (
	decimalStart = lex.Within('0', '9')
	decimalRest  = lex.Or(
		lex.Within('0', '9'),
		lex.Unit('_'),
	)

	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.String("0x"), hexDigit)
	hexRest  = lex.Or(
		hexDigit,
		lex.Unit('_'),
	)

	number = lex.Longest(
		lex.SequenceNullableLast(hexStart, lex.Many(hexRest)),
		lex.SequenceNullableLast(decimalStart, lex.Many(decimalRest)),
		lex.SequenceNullableLast(lex.Sequence(lex.Unit('-'), decimalStart), lex.Many(decimalRest)),
	)
)

// Identifiers come in two distinct classes: dot led (directive names, where
// the leading '.' is part of the name) and dot less (mnemonics and symbols).
var (
	identifierStart lex.Scanner[rune] = lex.Or(
		lex.Unit('_'),
		lex.Unit('@'),
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'))

	identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
		lex.Unit('_'),
		lex.Unit('$'),
		lex.Unit('@'),
		lex.Unit('.'),
		lex.Within('0', '9'),
		lex.Within('a', 'z'),
		lex.Within('A', 'Z')))

	identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

	// Note the final scanner can match nothing (e.g. for a two-character
	// directive name).
	dotIdentifier lex.Scanner[rune] = lex.SequenceNullableLast(
		lex.Unit('.'),
		lex.Or(identifierStart, lex.Unit('.')),
		identifierRest)
)

// Strings are quote-delimited, with backslash escaping any single character.
var (
	anyChar    lex.Scanner[rune] = lex.Within(rune(0), rune(0x10FFFF))
	escapePair lex.Scanner[rune] = lex.Sequence(lex.Unit('\\'), anyChar)
	// The empty literal needs its own alternative, since the body matches at
	// least one character.
	strung lex.Scanner[rune] = lex.Or(
		lex.Unit('"', '"'),
		lex.Sequence(
			lex.Unit('"'),
			lex.Many(lex.Or(escapePair, lex.Not('"'))),
			lex.Unit('"')))
)

// Register mnemonics form their own lexical class, listed ahead of the
// identifier catch-all.  Longest-match keeps the two classes apart: "s10"
// lexes as a register (never as "s1" plus a stray "0"), whilst "s1ze" lexes
// as an identifier by virtue of being longer than any mnemonic prefix.
var register lex.Scanner[rune] = registerScanner()

func registerScanner() lex.Scanner[rune] {
	var scanners []lex.Scanner[rune]
	//
	for name := range registers {
		scanners = append(scanners, lex.String(name))
	}
	//
	return lex.Longest(scanners...)
}

// Lexing rules.  The lexer applies longest-match first; among rules matching
// the same length, earlier rules win.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Unit('-'), MINUS),
	lex.Rule(lex.Unit('%'), PERCENT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(register, REGISTER),
	lex.Rule(dotIdentifier, DOT_IDENTIFIER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Newlines are retained as tokens; whitespace and
// comments are discarded.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.LexError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace and comments
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	// Done
	return tokens, nil
}
