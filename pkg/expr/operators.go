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
package expr

import "fmt"

// Operators which exist only in the surface syntax, and are desugared by the
// parser.
const (
	implies  Op = 0xfe
	distinct Op = 0xff
)

// operator describes an operator of the surface syntax.
type operator struct {
	// Underlying operator
	kind Op
	// Minimum number of arguments
	minArgs int
	// Maximum number of arguments (or zero if unbounded)
	maxArgs int
	// Constructor for comparisons, which desugar onto ULE or SLE.
	compare func(*Manager, *Term, *Term) *Term
}

var operators = map[string]operator{
	"not":      {NOT, 1, 1, nil},
	"and":      {AND, 1, 0, nil},
	"or":       {OR, 1, 0, nil},
	"=>":       {implies, 2, 0, nil},
	"ite":      {ITE, 3, 3, nil},
	"=":        {EQ, 2, 0, nil},
	"distinct": {distinct, 2, 2, nil},
	"bvule":    {ULE, 2, 2, (*Manager).MkUle},
	"bvuge":    {ULE, 2, 2, (*Manager).MkUge},
	"bvult":    {ULE, 2, 2, (*Manager).MkUlt},
	"bvugt":    {ULE, 2, 2, (*Manager).MkUgt},
	"bvsle":    {SLE, 2, 2, (*Manager).MkSle},
	"bvsge":    {SLE, 2, 2, (*Manager).MkSge},
	"bvslt":    {SLE, 2, 2, (*Manager).MkSlt},
	"bvsgt":    {SLE, 2, 2, (*Manager).MkSgt},
	"bvadd":    {ADD, 2, 0, nil},
	"bvsub":    {SUB, 2, 2, nil},
	"bvmul":    {MUL, 2, 0, nil},
	"bvand":    {BVAND, 2, 0, nil},
	"bvor":     {BVOR, 2, 0, nil},
	"bvxor":    {BVXOR, 2, 0, nil},
	"bvnot":    {BVNOT, 1, 1, nil},
	"bvneg":    {NEG, 1, 1, nil},
}

// Check the arguments of a (possibly variadic) operator application.
func checkApplication(op operator, args []*Term) error {
	n := len(args)
	//
	if n < op.minArgs || (op.maxArgs != 0 && n > op.maxArgs) {
		return fmt.Errorf("incorrect number of arguments (%d)", n)
	}
	//
	switch op.kind {
	case AND, OR, implies:
		return checkBool(op.kind, args...)
	case EQ, distinct:
		for i := 1; i < n; i++ {
			if err := checkSame(EQ, args[i-1], args[i]); err != nil {
				return err
			}
		}
		//
		return nil
	case ADD, MUL, BVAND, BVOR, BVXOR:
		for _, arg := range args[1:] {
			if err := Check(op.kind, args[0], arg); err != nil {
				return err
			}
		}
		//
		return nil
	default:
		return Check(op.kind, args...)
	}
}
