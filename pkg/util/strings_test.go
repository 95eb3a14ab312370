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
package util

import (
	"testing"

	"github.com/consensys/go-pil/pkg/util/assert"
)

func TestUnescapeBasic(t *testing.T) {
	checkUnescape(t, "hello", []byte("hello"))
	checkUnescape(t, `a\tb\nc`, []byte("a\tb\nc"))
	checkUnescape(t, `\f\b\r`, []byte{'\f', '\b', '\r'})
	checkUnescape(t, `\'\"\\`, []byte(`'"\`))
}

func TestUnescapeHex(t *testing.T) {
	checkUnescape(t, `\x41B`, []byte("AB"))
	checkUnescape(t, `\x00\xff`, []byte{0, 255})
}

func TestUnescapeDigits(t *testing.T) {
	checkUnescape(t, `\0`, []byte{0})
	checkUnescape(t, `\101`, []byte{'A'})
	// Decoding stops before overflowing a byte
	checkUnescape(t, `\1234`, []byte{0123, '4'})
	checkUnescape(t, `\777`, []byte{077, '7'})
	// The decimal digits stand alone, never joining an octal run
	checkUnescape(t, `\8`, []byte{8})
	checkUnescape(t, `\9x`, []byte{9, 'x'})
	checkUnescape(t, `\78`, []byte{07, '8'})
}

func TestUnescapeErrors(t *testing.T) {
	for _, input := range []string{`\q`, `\x4`, `\x4Z`, `abc\`} {
		if _, err := Unescape(input); err == nil {
			t.Errorf("expected error unescaping %q", input)
		}
	}
}

func checkUnescape(t *testing.T, input string, expected []byte) {
	t.Helper()
	//
	actual, err := Unescape(input)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	assert.Equal(t, expected, actual)
}
