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

import "fmt"

// Canonical register indices for every recognised mnemonic.  Both the ABI
// names and the raw "x0".."x31" forms are included; aliases ("fp" / "s0")
// share an index.
var registers = buildRegisters()

func buildRegisters() map[string]uint {
	mapping := map[string]uint{
		"zero": 0,
		"ra":   1,
		"sp":   2,
		"gp":   3,
		"tp":   4,
		"t0":   5,
		"t1":   6,
		"t2":   7,
		"fp":   8,
		"s0":   8,
		"s1":   9,
		"a0":   10,
		"a1":   11,
		"a2":   12,
		"a3":   13,
		"a4":   14,
		"a5":   15,
		"a6":   16,
		"a7":   17,
		"s2":   18,
		"s3":   19,
		"s4":   20,
		"s5":   21,
		"s6":   22,
		"s7":   23,
		"s8":   24,
		"s9":   25,
		"s10":  26,
		"s11":  27,
		"t3":   28,
		"t4":   29,
		"t5":   30,
		"t6":   31,
	}
	// Raw forms
	for i := uint(0); i < 32; i++ {
		mapping[fmt.Sprintf("x%d", i)] = i
	}
	//
	return mapping
}

// RegisterIndex returns the canonical index of a register mnemonic, or false
// if the name is not a register.
func RegisterIndex(name string) (uint, bool) {
	index, ok := registers[name]
	return index, ok
}
