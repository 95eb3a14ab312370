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
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-pil/pkg/util/assert"
)

func TestFromBig(t *testing.T) {
	element, err := FromBig(big.NewInt(65536))
	//
	assert.True(t, err == nil)
	assert.Equal(t, "65536", element.String())
}

func TestFromBigRejectsNegative(t *testing.T) {
	_, err := FromBig(big.NewInt(-1))
	//
	assert.True(t, err != nil)
}

func TestFromBigRejectsOverflow(t *testing.T) {
	// The modulus itself is the first unrepresentable value.
	_, err := FromBig(goldilocks.Modulus())
	//
	assert.True(t, err != nil)
	// One below is fine.
	limit := new(big.Int).Sub(goldilocks.Modulus(), big.NewInt(1))
	//
	_, err = FromBig(limit)
	assert.True(t, err == nil)
}

func TestAbstractToDegree(t *testing.T) {
	assert.Equal(t, uint64(1048576), AbstractToDegree(big.NewInt(1048576)))
}
