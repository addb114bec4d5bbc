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

import (
	"fmt"
)

// Check whether a given operator can be applied to a given set of arguments.
// This checks both the number of arguments, and that their sorts are
// appropriate.
func Check(op Op, args ...*Term) error {
	switch op {
	case TRUE, FALSE, NUMERAL, CONST:
		return checkArity(op, args, 0)
	case NOT:
		if err := checkArity(op, args, 1); err != nil {
			return err
		}
		//
		return checkBool(op, args...)
	case AND, OR:
		return checkBool(op, args...)
	case ITE:
		if err := checkArity(op, args, 3); err != nil {
			return err
		} else if err := checkBool(op, args[0]); err != nil {
			return err
		}
		//
		return checkSame(op, args[1], args[2])
	case EQ:
		if err := checkArity(op, args, 2); err != nil {
			return err
		}
		//
		return checkSame(op, args[0], args[1])
	case ULE, SLE, ADD, SUB, MUL, BVAND, BVOR, BVXOR:
		if err := checkArity(op, args, 2); err != nil {
			return err
		} else if err := checkBitVec(op, args...); err != nil {
			return err
		}
		//
		return checkSame(op, args[0], args[1])
	case BVNOT, NEG:
		if err := checkArity(op, args, 1); err != nil {
			return err
		}
		//
		return checkBitVec(op, args...)
	}
	//
	return fmt.Errorf("unknown operator %d", op)
}

// Sort checking failures in constructors arise from programming errors, since
// parsed input is always checked beforehand.
func mustCheck(op Op, args ...*Term) {
	if err := Check(op, args...); err != nil {
		panic(err.Error())
	}
}

func checkArity(op Op, args []*Term, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), found %d", op.String(), n, len(args))
	}
	//
	return nil
}

func checkBool(op Op, args ...*Term) error {
	for _, arg := range args {
		if !arg.sort.IsBool() {
			return fmt.Errorf("%s expects Bool argument, found %s", op.String(), arg.sort.String())
		}
	}
	//
	return nil
}

func checkBitVec(op Op, args ...*Term) error {
	for _, arg := range args {
		if arg.sort.IsBool() {
			return fmt.Errorf("%s expects bitvector argument, found Bool", op.String())
		}
	}
	//
	return nil
}

func checkSame(op Op, lhs *Term, rhs *Term) error {
	if lhs.sort != rhs.sort {
		return fmt.Errorf("%s expects arguments of same sort, found %s and %s", op.String(), lhs.sort.String(),
			rhs.sort.String())
	}
	//
	return nil
}
