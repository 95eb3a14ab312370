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

import "fmt"

// Unescape decodes the body of a quoted string literal (without its enclosing
// quotes) into a byte sequence.  The following escapes are recognised: \t \n
// \f \b \r \' \" \\, hexadecimal escapes of the form \xHH, octal digit
// escapes of the form \o, \oo or \ooo, and the single decimal digits \8 and
// \9.  Anything else following a backslash is an error.  Note that
// strconv.Unquote is not suitable here since it rejects raw digit escapes,
// and decodes into a string rather than bytes.
func Unescape(contents string) ([]byte, error) {
	var (
		bytes = make([]byte, 0, len(contents))
		i     = 0
	)
	//
	for i < len(contents) {
		ch := contents[i]
		//
		if ch != '\\' {
			bytes = append(bytes, ch)
			i++
			//
			continue
		} else if i+1 == len(contents) {
			return nil, fmt.Errorf("dangling escape")
		}
		// Escape sequence
		i++
		//
		switch c := contents[i]; {
		case c == 't':
			bytes, i = append(bytes, '\t'), i+1
		case c == 'n':
			bytes, i = append(bytes, '\n'), i+1
		case c == 'f':
			bytes, i = append(bytes, '\f'), i+1
		case c == 'b':
			bytes, i = append(bytes, '\b'), i+1
		case c == 'r':
			bytes, i = append(bytes, '\r'), i+1
		case c == '\'':
			bytes, i = append(bytes, '\''), i+1
		case c == '"':
			bytes, i = append(bytes, '"'), i+1
		case c == '\\':
			bytes, i = append(bytes, '\\'), i+1
		case c == 'x':
			b, err := hexEscape(contents, i+1)
			if err != nil {
				return nil, err
			}
			//
			bytes, i = append(bytes, b), i+3
		case c >= '0' && c <= '9':
			b, n := digitEscape(contents, i)
			bytes, i = append(bytes, b), i+n
		default:
			return nil, fmt.Errorf("unknown escape '\\%c'", c)
		}
	}
	//
	return bytes, nil
}

// Decode exactly two hexadecimal digits starting at the given offset.
func hexEscape(contents string, index int) (byte, error) {
	if index+2 > len(contents) {
		return 0, fmt.Errorf("truncated hex escape")
	}
	//
	var value byte
	//
	for _, c := range []byte(contents[index : index+2]) {
		switch {
		case c >= '0' && c <= '9':
			value = (value << 4) | (c - '0')
		case c >= 'a' && c <= 'f':
			value = (value << 4) | (c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			value = (value << 4) | (c - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex escape '\\x%s'", contents[index:index+2])
		}
	}
	//
	return value, nil
}

// Decode a digit escape starting at the given offset, returning the decoded
// byte and the number of characters consumed.  Runs of up to three octal
// digits decode base 8; the decimal digits '8' and '9' only ever stand alone.
func digitEscape(contents string, index int) (byte, int) {
	var (
		value uint16
		n     int
	)
	//
	if c := contents[index]; c > '7' {
		return c - '0', 1
	}
	//
	for n < 3 && index+n < len(contents) {
		c := contents[index+n]
		//
		if c < '0' || c > '7' {
			break
		}
		// Stop before overflowing a byte
		if next := (value << 3) | uint16(c-'0'); next > 255 {
			break
		} else {
			value = next
		}
		//
		n++
	}
	//
	return byte(value), n
}
