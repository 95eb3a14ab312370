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

// DataValue is one element of an initialised data object: either literal
// bytes, or a (4-byte) reference to another symbol to be patched once
// addresses are known.
type DataValue interface {
	// Size returns the size of the value in bytes.
	Size() int
}

// Direct holds literal bytes.
type Direct struct {
	Data []byte
}

// Reference holds a symbol whose address is substituted downstream.
type Reference struct {
	Symbol string
}

// Size returns the size of the value in bytes.
func (p *Direct) Size() int {
	return len(p.Data)
}

// Size returns the size of the value in bytes.
func (p *Reference) Size() int {
	return 4
}

// ExtractDataObjects walks a parsed statement list and collects the
// initialised data objects it declares.  An object is opened by a ".type
// name, @object" directive; subsequent data directives (".zero", ".ascii",
// ".asciz", ".word", ".byte") under the object's label contribute values, and
// a ".size" directive cross-checks the accumulated byte count.
func ExtractDataObjects(statements []Statement) (map[string][]DataValue, error) {
	var (
		objects      = make(map[string][]DataValue)
		currentLabel string
	)
	//
	for _, stmt := range statements {
		switch stmt := stmt.(type) {
		case *Label:
			currentLabel = stmt.Name
		case *Directive:
			if err := extractFromDirective(objects, currentLabel, stmt); err != nil {
				return nil, err
			}
		}
	}
	//
	return objects, nil
}

func extractFromDirective(objects map[string][]DataValue, label string, directive *Directive) error {
	switch directive.Name {
	case ".type":
		name, kind, ok := symbolPair(directive.Args)
		// Anything other than an object declaration is ignored.
		if !ok || kind != "@object" {
			return nil
		}
		//
		if _, exists := objects[name]; exists {
			return fmt.Errorf("duplicate data object %s", name)
		}
		//
		objects[name] = []DataValue{}
	case ".zero", ".ascii", ".asciz", ".word", ".byte":
		// Data directives only contribute to declared objects.
		if _, exists := objects[label]; !exists {
			return nil
		}
		//
		values, err := extractDataValue(directive.Name, directive.Args)
		if err != nil {
			return err
		}
		//
		objects[label] = append(objects[label], values...)
	case ".size":
		return checkObjectSize(objects, label, directive.Args)
	}
	//
	return nil
}

// Cross-check a ".size name, n" directive against the accumulated object.
func checkObjectSize(objects map[string][]DataValue, label string, args []Argument) error {
	if len(args) != 2 {
		return nil
	}
	//
	name, ok1 := args[0].(*Symbol)
	size, ok2 := args[1].(*Number)
	// Only sizes of the current object are checked.
	if !ok1 || !ok2 || name.Name != label {
		return nil
	}
	//
	values, exists := objects[label]
	if !exists {
		if size.Value != 0 {
			return fmt.Errorf("nonzero size for object without elements: %s", label)
		}
		//
		objects[label] = []DataValue{}
		//
		return nil
	}
	//
	sum := 0
	for _, value := range values {
		sum += value.Size()
	}
	//
	if int64(sum) != size.Value {
		return fmt.Errorf("invalid size for data object %s: computed: %d vs. specified: %d",
			label, sum, size.Value)
	}
	//
	return nil
}

func extractDataValue(directive string, args []Argument) ([]DataValue, error) {
	switch directive {
	case ".zero":
		// The optional second argument is ignored.
		if len(args) == 0 || len(args) > 2 {
			return nil, fmt.Errorf("invalid %s directive", directive)
		}
		//
		n, ok := args[0].(*Number)
		// A negative count is malformed, not a request to allocate.
		if !ok || n.Value < 0 {
			return nil, fmt.Errorf("invalid %s directive", directive)
		}
		//
		return []DataValue{&Direct{Data: make([]byte, n.Value)}}, nil
	case ".ascii", ".asciz":
		if len(args) != 1 {
			return nil, fmt.Errorf("invalid %s directive", directive)
		}
		//
		str, ok := args[0].(*StringLiteral)
		if !ok {
			return nil, fmt.Errorf("invalid %s directive", directive)
		}
		//
		data := append([]byte{}, str.Value...)
		// ".asciz" adds a null terminator.
		if directive == ".asciz" {
			data = append(data, 0)
		}
		//
		return []DataValue{&Direct{Data: data}}, nil
	case ".word":
		var values []DataValue
		//
		for _, arg := range args {
			switch arg := arg.(type) {
			case *Number:
				n := uint32(arg.Value)
				//
				values = append(values, &Direct{Data: []byte{
					byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
				}})
			case *Symbol:
				values = append(values, &Reference{Symbol: arg.Name})
			default:
				return nil, fmt.Errorf("invalid argument to %s directive", directive)
			}
		}
		//
		return values, nil
	case ".byte":
		var data []byte
		//
		for _, arg := range args {
			n, ok := arg.(*Number)
			if !ok {
				return nil, fmt.Errorf("invalid argument to %s directive", directive)
			}
			//
			data = append(data, byte(n.Value))
		}
		//
		return []DataValue{&Direct{Data: data}}, nil
	}
	//
	return nil, fmt.Errorf("unsupported data directive %s", directive)
}

// symbolPair extracts two symbol arguments, as used by ".type".
func symbolPair(args []Argument) (string, string, bool) {
	if len(args) != 2 {
		return "", "", false
	}
	//
	first, ok1 := args[0].(*Symbol)
	second, ok2 := args[1].(*Symbol)
	//
	if !ok1 || !ok2 {
		return "", "", false
	}
	//
	return first.Name, second.Name, true
}
