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
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Element is the field element over which polynomial identities are
// expressed.  The parser treats this as an opaque numeric type; it only ever
// constructs elements from integer literals.
type Element = goldilocks.Element

// FromBig constructs a field element from a given (arbitrary precision)
// integer, or fails if the value does not lie within the field's
// representable range.  Conversion failure is a fatal parse-time error, hence
// it is reported rather than silently reduced.
func FromBig(val *big.Int) (Element, error) {
	var element Element
	//
	if val.Sign() < 0 {
		return element, fmt.Errorf("negative literal %s not representable in field", val)
	} else if val.Cmp(goldilocks.Modulus()) >= 0 {
		return element, fmt.Errorf("literal %s exceeds field modulus", val)
	}
	//
	element.SetBigInt(val)
	//
	return element, nil
}

// Uint64 constructs a field element from a given uint64.  Observe this can
// panic if the value exceeds the field modulus, hence it is reserved for
// trusted (e.g. test) values.
func Uint64(val uint64) Element {
	element, err := FromBig(new(big.Int).SetUint64(val))
	//
	if err != nil {
		panic(err.Error())
	}
	//
	return element
}

// AbstractToDegree converts an abstract (arbitrary precision) number into a
// concrete polynomial degree, panicking if it does not fit.
func AbstractToDegree(val *big.Int) uint64 {
	if !val.IsUint64() {
		panic(fmt.Sprintf("degree %s too large", val))
	}
	//
	return val.Uint64()
}
