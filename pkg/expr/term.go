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
	"math/big"
	"strings"
)

// Sort identifies the type of a term, which is either boolean or a
// bitvector of some fixed width.
type Sort struct {
	// Width of a bitvector sort, or zero for the boolean sort.
	width uint
}

// BoolSort returns the sort of boolean terms.
func BoolSort() Sort {
	return Sort{0}
}

// BitVecSort returns the sort of bitvectors of a given width.
func BitVecSort(width uint) Sort {
	if width == 0 {
		panic("invalid bitvector width")
	}
	//
	return Sort{width}
}

// IsBool checks whether this is the boolean sort.
func (s Sort) IsBool() bool {
	return s.width == 0
}

// Width returns the bitwidth of a bitvector sort, or zero for the boolean sort.
func (s Sort) Width() uint {
	return s.width
}

func (s Sort) String() string {
	if s.IsBool() {
		return "Bool"
	}
	//
	return fmt.Sprintf("(_ BitVec %d)", s.width)
}

// Op identifies the operator at the root of a term.
type Op uint8

// The operators which terms can be constructed from.
const (
	TRUE Op = iota
	FALSE
	NUMERAL
	CONST
	NOT
	AND
	OR
	ITE
	EQ
	ULE
	SLE
	ADD
	SUB
	MUL
	BVAND
	BVOR
	BVXOR
	BVNOT
	NEG
)

var opNames = [...]string{
	TRUE:    "true",
	FALSE:   "false",
	NUMERAL: "numeral",
	CONST:   "const",
	NOT:     "not",
	AND:     "and",
	OR:      "or",
	ITE:     "ite",
	EQ:      "=",
	ULE:     "bvule",
	SLE:     "bvsle",
	ADD:     "bvadd",
	SUB:     "bvsub",
	MUL:     "bvmul",
	BVAND:   "bvand",
	BVOR:    "bvor",
	BVXOR:   "bvxor",
	BVNOT:   "bvnot",
	NEG:     "bvneg",
}

func (op Op) String() string {
	switch {
	case op == implies:
		return "=>"
	case op == distinct:
		return "distinct"
	case int(op) < len(opNames):
		return opNames[op]
	}
	//
	return fmt.Sprintf("op(%d)", op)
}

// Term is a node in a formula.  Terms are hash-consed by their Manager, hence
// two structurally identical terms constructed by the same manager are always
// the same pointer.  Terms are immutable.
type Term struct {
	id    uint
	op    Op
	sort  Sort
	name  string
	value big.Int
	args  []*Term
}

// ID returns the unique identifier of this term within its manager.
func (t *Term) ID() uint {
	return t.id
}

// Op returns the operator at the root of this term.
func (t *Term) Op() Op {
	return t.op
}

// Sort returns the sort of this term.
func (t *Term) Sort() Sort {
	return t.sort
}

// Name returns the name of a declared constant, or the empty string.
func (t *Term) Name() string {
	return t.name
}

// Value returns the value of a numeral.
func (t *Term) Value() big.Int {
	return *new(big.Int).Set(&t.value)
}

// Args returns the arguments of this term.
func (t *Term) Args() []*Term {
	return t.args
}

// Arg returns the ith argument of this term.
func (t *Term) Arg(i int) *Term {
	return t.args[i]
}

// Is checks whether this term is logical truth or falsehood.
func (t *Term) Is(val bool) bool {
	if val {
		return t.op == TRUE
	}
	//
	return t.op == FALSE
}

// IsNumeral checks whether this term is a bitvector constant.
func (t *Term) IsNumeral() bool {
	return t.op == NUMERAL
}

// String returns this term in SMT-LIB syntax.
func (t *Term) String() string {
	var builder strings.Builder
	//
	t.write(&builder)
	//
	return builder.String()
}

func (t *Term) write(builder *strings.Builder) {
	switch t.op {
	case TRUE, FALSE:
		builder.WriteString(t.op.String())
	case CONST:
		builder.WriteString(t.name)
	case NUMERAL:
		builder.WriteString(formatNumeral(t.value, t.sort.width))
	default:
		builder.WriteString("(")
		builder.WriteString(t.op.String())
		//
		for _, arg := range t.args {
			builder.WriteString(" ")
			arg.write(builder)
		}
		//
		builder.WriteString(")")
	}
}

// Numerals whose width is a multiple of four are written in hexadecimal,
// otherwise in binary.
func formatNumeral(val big.Int, width uint) string {
	if width%4 == 0 {
		digits := val.Text(16)
		return "#x" + strings.Repeat("0", int(width/4)-len(digits)) + digits
	}
	//
	digits := val.Text(2)
	//
	return "#b" + strings.Repeat("0", int(width)-len(digits)) + digits
}
