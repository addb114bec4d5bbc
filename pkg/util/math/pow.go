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
package math

import "math/big"

var one = big.NewInt(1)

// Pow2 returns 2 raised to a given power.
func Pow2(exp uint) big.Int {
	var result big.Int
	//
	result.Lsh(one, exp)
	//
	return result
}

// MaxUnsigned returns the largest unsigned value representable in a given
// number of bits, i.e. 2^n - 1.
func MaxUnsigned(width uint) big.Int {
	result := Pow2(width)
	//
	return *result.Sub(&result, one)
}

// MinSigned returns the bit pattern of the smallest signed value representable
// in a given number of bits (i.e. 2^(n-1)).  Signed values are always
// represented by their unsigned two's complement bit pattern.
func MinSigned(width uint) big.Int {
	checkWidth(width)
	//
	return Pow2(width - 1)
}

// MaxSigned returns the bit pattern of the largest signed value representable
// in a given number of bits (i.e. 2^(n-1) - 1).
func MaxSigned(width uint) big.Int {
	checkWidth(width)
	//
	return MaxUnsigned(width - 1)
}

// Wrap reduces a given (possibly negative) integer modulo 2^n.
func Wrap(val big.Int, width uint) big.Int {
	var (
		result  big.Int
		modulus = Pow2(width)
	)
	// Mod is Euclidean, hence always non-negative.
	result.Mod(&val, &modulus)
	//
	return result
}

// ToSigned converts a bit pattern of a given width into the signed integer it
// represents under two's complement.
func ToSigned(val big.Int, width uint) big.Int {
	var (
		result big.Int
		bound  = MinSigned(width)
	)
	//
	result.Set(&val)
	//
	if result.Cmp(&bound) >= 0 {
		modulus := Pow2(width)
		result.Sub(&result, &modulus)
	}
	//
	return result
}

func checkWidth(width uint) {
	if width == 0 {
		panic("invalid bitwidth")
	}
}
