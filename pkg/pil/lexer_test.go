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
	"testing"

	"github.com/consensys/go-pil/pkg/util/assert"
	"github.com/consensys/go-pil/pkg/util/source"
	"github.com/consensys/go-pil/pkg/util/source/lex"
)

func TestLexerNumberRule(t *testing.T) {
	assert.Equal(t, uint(5), number([]rune("0x1_0=")))
	assert.Equal(t, uint(3), number([]rune("1_0 ")))
	assert.Equal(t, uint(1), number([]rune("0xZ")))
	assert.Equal(t, uint(0), number([]rune("_1")))
	assert.Equal(t, uint(4), number([]rune("0xaF;")))
}

func TestLexerCommentRules(t *testing.T) {
	assert.Equal(t, uint(4), lineComment([]rune("//ab\ncd")))
	assert.Equal(t, uint(9), blockComment([]rune("/* a*b */ x")))
	// Non-greedy: stop at the first terminator
	assert.Equal(t, uint(5), blockComment([]rune("/*a*/b*/")))
	// Unterminated block comments fail
	assert.Equal(t, uint(0), blockComment([]rune("/* abc")))
}

func TestLexKeywords(t *testing.T) {
	tokens := lexString(t, "pol commit included")
	//
	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, KEYWORD_POL, tokens[0].Kind)
	assert.Equal(t, KEYWORD_COMMIT, tokens[1].Kind)
	// Longer than the "include" keyword, hence an identifier.
	assert.Equal(t, IDENTIFIER, tokens[2].Kind)
	assert.Equal(t, END_OF, tokens[3].Kind)
}

func TestLexCompoundOperators(t *testing.T) {
	tokens := lexString(t, "** * => = <= << ${ :: :")
	//
	kinds := []uint{POW, STAR, FAT_ARROW, EQUALS, LESS_THAN_EQUALS,
		SHIFT_LEFT, DOLLAR_LCURLY, COLON_COLON, COLON, END_OF}
	//
	assert.Equal(t, len(kinds), len(tokens))
	//
	for i, kind := range kinds {
		assert.Equal(t, kind, tokens[i].Kind, "token %d", i)
	}
}

func TestLexPercentIdentifier(t *testing.T) {
	tokens := lexString(t, "%N % x")
	//
	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, PERCENT_IDENTIFIER, tokens[0].Kind)
	assert.Equal(t, PERCENT, tokens[1].Kind)
	assert.Equal(t, IDENTIFIER, tokens[2].Kind)
}

func TestLexUnknownText(t *testing.T) {
	srcfile := source.NewSourceFile("test.pil", []byte("pol ~"))
	//
	_, errs := Lex(srcfile)
	//
	assert.Equal(t, 1, len(errs))
	assert.True(t, errs[0].IsLexical())
	assert.Equal(t, 4, errs[0].Span().Start())
}

func lexString(t *testing.T, input string) []lex.Token {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test.pil", []byte(input))
	//
	tokens, errs := Lex(srcfile)
	if len(errs) > 0 {
		t.Fatalf("unexpected lexing error: %s", errs[0].Message())
	}
	//
	return tokens
}
