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
	"testing"

	"github.com/consensys/go-pil/pkg/util/assert"
)

func TestExtractAsciz(t *testing.T) {
	objects := extractString(t, `
.type msg, @object
msg:
.asciz "Hi"
.size msg, 3
`)
	//
	assert.Equal(t, 1, len(objects))
	assert.Equal(t, []DataValue{&Direct{Data: []byte{'H', 'i', 0}}}, objects["msg"])
}

func TestExtractWords(t *testing.T) {
	objects := extractString(t, `
.type table, @object
table:
.word 1, other
.size table, 8
`)
	//
	values := objects["table"]
	//
	assert.Equal(t, 2, len(values))
	assert.Equal(t, []byte{1, 0, 0, 0}, values[0].(*Direct).Data)
	assert.Equal(t, "other", values[1].(*Reference).Symbol)
	assert.Equal(t, 4, values[1].Size())
}

func TestExtractZeroAndBytes(t *testing.T) {
	objects := extractString(t, `
.type buf, @object
buf:
.zero 8
.byte 1, 2, 3
.size buf, 11
`)
	//
	values := objects["buf"]
	//
	assert.Equal(t, 2, len(values))
	assert.Equal(t, 8, values[0].Size())
	assert.Equal(t, []byte{1, 2, 3}, values[1].(*Direct).Data)
}

func TestExtractIgnoresCode(t *testing.T) {
	objects := extractString(t, `
main:
addi sp, sp, -16
.word 42
`)
	// No object was declared, so the stray ".word" contributes nothing.
	assert.Equal(t, 0, len(objects))
}

func TestExtractSizeMismatch(t *testing.T) {
	statements := parseString(t, `
.type msg, @object
msg:
.asciz "Hi"
.size msg, 7
`)
	//
	_, err := ExtractDataObjects(statements)
	//
	assert.True(t, err != nil)
}

func TestExtractNegativeZero(t *testing.T) {
	statements := parseString(t, `
.type buf, @object
buf:
.zero -1
`)
	// A negative count must surface as an error, never an allocation.
	_, err := ExtractDataObjects(statements)
	//
	assert.True(t, err != nil)
}

func extractString(t *testing.T, input string) map[string][]DataValue {
	t.Helper()
	//
	objects, err := ExtractDataObjects(parseString(t, input))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	return objects
}
