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

import (
	"math/big"
	"testing"
)

func Test_Pow_0(t *testing.T) {
	checkPow2(t, 1)
}

func Test_Pow_1(t *testing.T) {
	checkPow2(t, 8)
}

func Test_Pow_2(t *testing.T) {
	checkPow2(t, 63)
}

func Test_Signed_0(t *testing.T) {
	checkSigned(t, 1, 1, 0)
}

func Test_Signed_1(t *testing.T) {
	checkSigned(t, 4, 8, 7)
}

func Test_Signed_2(t *testing.T) {
	checkSigned(t, 8, 128, 127)
}

func Test_Wrap_0(t *testing.T) {
	if v := Wrap(*big.NewInt(-1), 8); v.Uint64() != 255 {
		t.Errorf("-1 mod 2^8 == %s != 255", v.String())
	}
}

func Test_Wrap_1(t *testing.T) {
	if v := Wrap(*big.NewInt(300), 8); v.Uint64() != 44 {
		t.Errorf("300 mod 2^8 == %s != 44", v.String())
	}
}

func Test_ToSigned_0(t *testing.T) {
	if v := ToSigned(*big.NewInt(255), 8); v.Int64() != -1 {
		t.Errorf("signed(0xff) == %s != -1", v.String())
	}
}

func Test_ToSigned_1(t *testing.T) {
	if v := ToSigned(*big.NewInt(127), 8); v.Int64() != 127 {
		t.Errorf("signed(0x7f) == %s != 127", v.String())
	}
}

func checkPow2(t *testing.T, n uint) {
	for i := uint(0); i <= n; i++ {
		// Bruteforce solution
		e := uint64(1) << i
		// Check for a match
		if x := Pow2(i); !x.IsUint64() || x.Uint64() != e {
			t.Errorf("2^%d == %s != %d", i, x.String(), e)
		}
		//
		if x := MaxUnsigned(i); !x.IsUint64() || x.Uint64() != e-1 {
			t.Errorf("2^%d-1 == %s != %d", i, x.String(), e-1)
		}
	}
}

func checkSigned(t *testing.T, width uint, min uint64, max uint64) {
	if x := MinSigned(width); x.Uint64() != min {
		t.Errorf("smin(%d) == %s != %d", width, x.String(), min)
	}
	//
	if x := MaxSigned(width); x.Uint64() != max {
		t.Errorf("smax(%d) == %s != %d", width, x.String(), max)
	}
}
