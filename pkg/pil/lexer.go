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
	"github.com/consensys/go-pil/pkg/util/collection/array"
	"github.com/consensys/go-pil/pkg/util/source"
	"github.com/consensys/go-pil/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LINE_COMMENT signals "// ... \n"
const LINE_COMMENT uint = 2

// BLOCK_COMMENT signals "/* ... */"
const BLOCK_COMMENT uint = 3

// LPAREN signals "("
const LPAREN uint = 4

// RPAREN signals ")"
const RPAREN uint = 5

// LBRACKET signals "["
const LBRACKET uint = 6

// RBRACKET signals "]"
const RBRACKET uint = 7

// LCURLY signals "{"
const LCURLY uint = 8

// RCURLY signals "}"
const RCURLY uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// COMMA signals ","
const COMMA uint = 11

// DOT signals "."
const DOT uint = 12

// COLON_COLON signals "::"
const COLON_COLON uint = 13

// COLON signals ":"
const COLON uint = 14

// PRIME signals "'" (the next-row marker)
const PRIME uint = 15

// AT signals "@"
const AT uint = 16

// FAT_ARROW signals "=>"
const FAT_ARROW uint = 17

// RIGHT_ARROW signals "->"
const RIGHT_ARROW uint = 18

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 19

// EQUALS signals "="
const EQUALS uint = 20

// DOLLAR_LCURLY signals "${" (the free-input opener)
const DOLLAR_LCURLY uint = 21

// POW signals "**"
const POW uint = 22

// PLUS signals "+"
const PLUS uint = 23

// MINUS signals "-"
const MINUS uint = 24

// STAR signals "*"
const STAR uint = 25

// SLASH signals "/"
const SLASH uint = 26

// PERCENT signals "%"
const PERCENT uint = 27

// SHIFT_LEFT signals "<<"
const SHIFT_LEFT uint = 28

// SHIFT_RIGHT signals ">>"
const SHIFT_RIGHT uint = 29

// AMPERSAND signals "&"
const AMPERSAND uint = 30

// PIPE signals "|"
const PIPE uint = 31

// CARET signals "^"
const CARET uint = 32

// NUMBER signals a (decimal or hexadecimal) integer literal
const NUMBER uint = 33

// STRING signals a quoted string literal
const STRING uint = 34

// PERCENT_IDENTIFIER signals a named constant reference (e.g. "%N")
const PERCENT_IDENTIFIER uint = 35

// IDENTIFIER signals an identifier
const IDENTIFIER uint = 36

// KEYWORD_INCLUDE signals an include declaration
const KEYWORD_INCLUDE uint = 40

// KEYWORD_NAMESPACE signals a namespace declaration
const KEYWORD_NAMESPACE uint = 41

// KEYWORD_CONSTANT signals either a constant definition, or the constant role
// of a column declaration
const KEYWORD_CONSTANT uint = 42

// KEYWORD_POL signals a polynomial declaration
const KEYWORD_POL uint = 43

// KEYWORD_COL signals a polynomial declaration (synonym of "pol")
const KEYWORD_COL uint = 44

// KEYWORD_COMMIT signals the committed role of a column declaration
const KEYWORD_COMMIT uint = 45

// KEYWORD_PUBLIC signals a public declaration
const KEYWORD_PUBLIC uint = 46

// KEYWORD_MACRO signals a macro definition
const KEYWORD_MACRO uint = 47

// KEYWORD_IN signals a plookup identity
const KEYWORD_IN uint = 48

// KEYWORD_IS signals a permutation identity
const KEYWORD_IS uint = 49

// KEYWORD_CONNECT signals a connect identity
const KEYWORD_CONNECT uint = 50

// KEYWORD_MATCH signals a match expression
const KEYWORD_MATCH uint = 51

// KEYWORD_QUERY signals the query suffix of a witness column declaration
const KEYWORD_QUERY uint = 52

// KEYWORD_DEGREE signals a degree declaration (ASM dialect)
const KEYWORD_DEGREE uint = 53

// KEYWORD_REG signals a register declaration (ASM dialect)
const KEYWORD_REG uint = 54

// KEYWORD_INSTR signals an instruction declaration (ASM dialect)
const KEYWORD_INSTR uint = 55

// KEYWORD_PIL signals an inline PIL block (ASM dialect)
const KEYWORD_PIL uint = 56

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\r'),
	lex.Unit('\n')))

// Line comments run from "//" until (but excluding) the next newline.
var lineComment lex.Scanner[rune] = lex.And(lex.String("//"), lex.Until('\n'))

// Block comments run from "/*" until the first "*/" (i.e. the shortest
// terminated match).  An unterminated block comment fails to lex.
var blockComment lex.Scanner[rune] = lex.Sequence(lex.String("/*"), lex.UntilString("*/"))

// Rules for describing numbers.  A number is either a hexadecimal or a
// decimal one, allowing (and ignoring) '_' in the middle for readability.
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
	)
)

// Identifiers are of the form [a-zA-Z_][a-zA-Z$_0-9@]*.
var (
	identifierStart lex.Scanner[rune] = lex.Or(
		lex.Unit('_'),
		lex.Within('a', 'z'),
		lex.Within('A', 'Z'))

	identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
		lex.Unit('_'),
		lex.Unit('$'),
		lex.Unit('@'),
		lex.Within('0', '9'),
		lex.Within('a', 'z'),
		lex.Within('A', 'Z')))

	identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

	// Named constants are a distinct, '%'-prefixed lexical class.
	percentIdentifier lex.Scanner[rune] = lex.Sequence(lex.Unit('%'), identifier)
)

// Strings are quote-delimited, with backslash escaping any single character.
// Escape decoding happens later, when the literal value is needed.
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

// Lexing rules.  The lexer applies longest-match first; among rules matching
// the same length, earlier rules win.  Hence keywords are listed before the
// identifier catch-all, whilst an identifier merely prefixed by a keyword
// (e.g. "input") still lexes as an identifier by virtue of being longer.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lineComment, LINE_COMMENT),
	lex.Rule(blockComment, BLOCK_COMMENT),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Unit('['), LBRACKET),
	lex.Rule(lex.Unit(']'), RBRACKET),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit(':', ':'), COLON_COLON),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit('\''), PRIME),
	lex.Rule(lex.Unit('@'), AT),
	lex.Rule(lex.Unit('=', '>'), FAT_ARROW),
	lex.Rule(lex.Unit('-', '>'), RIGHT_ARROW),
	lex.Rule(lex.Unit('<', '='), LESS_THAN_EQUALS),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('$', '{'), DOLLAR_LCURLY),
	lex.Rule(lex.Unit('*', '*'), POW),
	lex.Rule(lex.Unit('+'), PLUS),
	lex.Rule(lex.Unit('-'), MINUS),
	lex.Rule(lex.Unit('*'), STAR),
	lex.Rule(lex.Unit('/'), SLASH),
	lex.Rule(lex.Unit('%'), PERCENT),
	lex.Rule(lex.Unit('<', '<'), SHIFT_LEFT),
	lex.Rule(lex.Unit('>', '>'), SHIFT_RIGHT),
	lex.Rule(lex.Unit('&'), AMPERSAND),
	lex.Rule(lex.Unit('|'), PIPE),
	lex.Rule(lex.Unit('^'), CARET),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(percentIdentifier, PERCENT_IDENTIFIER),
	lex.Rule(lex.String("include"), KEYWORD_INCLUDE),
	lex.Rule(lex.String("namespace"), KEYWORD_NAMESPACE),
	lex.Rule(lex.String("constant"), KEYWORD_CONSTANT),
	lex.Rule(lex.String("pol"), KEYWORD_POL),
	lex.Rule(lex.String("col"), KEYWORD_COL),
	lex.Rule(lex.String("commit"), KEYWORD_COMMIT),
	lex.Rule(lex.String("public"), KEYWORD_PUBLIC),
	lex.Rule(lex.String("macro"), KEYWORD_MACRO),
	lex.Rule(lex.String("in"), KEYWORD_IN),
	lex.Rule(lex.String("is"), KEYWORD_IS),
	lex.Rule(lex.String("connect"), KEYWORD_CONNECT),
	lex.Rule(lex.String("match"), KEYWORD_MATCH),
	lex.Rule(lex.String("query"), KEYWORD_QUERY),
	lex.Rule(lex.String("degree"), KEYWORD_DEGREE),
	lex.Rule(lex.String("reg"), KEYWORD_REG),
	lex.Rule(lex.String("instr"), KEYWORD_INSTR),
	lex.Rule(lex.String("pil"), KEYWORD_PIL),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.
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
	// Remove any whitespace
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	// Remove any comments
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == LINE_COMMENT || t.Kind == BLOCK_COMMENT
	})
	// Done
	return tokens, nil
}
