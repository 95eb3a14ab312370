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
package lex

import (
	"testing"

	"github.com/consensys/go-pil/pkg/util/assert"
)

const (
	tagEof uint = iota
	tagShort
	tagLong
	tagIdent
)

// A deliberately overlapping rule set: "s1" is a prefix of "s10", and both
// are matched by the identifier catch-all.
func overlappingRules() []LexRule[rune] {
	identifier := And(
		Within('a', 'z'),
		Many(Or(Within('a', 'z'), Within('0', '9'))))
	//
	return []LexRule[rune]{
		Rule(String("s1"), tagShort),
		Rule(String("s10"), tagLong),
		Rule(identifier, tagIdent),
		Rule(Eof[rune](), tagEof),
	}
}

func TestLexerLongestMatch(t *testing.T) {
	// "s10" must lex as the three-character rule, never as "s1" plus a
	// stray "0".
	tokens := NewLexer([]rune("s10"), overlappingRules()...).Collect()
	//
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, tagLong, tokens[0].Kind)
	assert.Equal(t, 0, tokens[0].Span.Start())
	assert.Equal(t, 3, tokens[0].Span.End())
	assert.Equal(t, tagEof, tokens[1].Kind)
}

func TestLexerDeclarationOrderTieBreak(t *testing.T) {
	// Both "s1" and the identifier rule match all of "s1"; the rule listed
	// first wins the tie.
	tokens := NewLexer([]rune("s1"), overlappingRules()...).Collect()
	//
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, tagShort, tokens[0].Kind)
}

func TestLexerCatchAllFallback(t *testing.T) {
	// "s1ze" is longer than any specific rule's match, so the catch-all
	// takes the whole thing.
	tokens := NewLexer([]rune("s1ze"), overlappingRules()...).Collect()
	//
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, tagIdent, tokens[0].Kind)
	assert.Equal(t, 4, tokens[0].Span.End())
}

func TestLexerRemaining(t *testing.T) {
	// '!' matches no rule, so lexing stops with input remaining.
	lexer := NewLexer([]rune("s1!"), overlappingRules()...)
	lexer.Collect()
	//
	assert.True(t, lexer.Remaining() != 0)
	assert.Equal(t, uint(2), lexer.Index())
}
