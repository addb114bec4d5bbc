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
	"strconv"
	"strings"

	"github.com/consensys/go-bvbounds/pkg/bounds"
	"github.com/consensys/go-bvbounds/pkg/util/math"
)

// Manager constructs and owns terms.  Every term is hash-consed, meaning that
// constructing a term which is structurally identical to an existing one
// returns the existing one.  Thus, terms can be compared (and used as map keys)
// by pointer.  Constructors perform light constant folding, such that (for
// example) comparisons between numerals are always folded to true or false.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	// Hash-consing table mapping structural keys to terms.
	terms map[string]*Term
	// Declared constants by name.
	consts map[string]*Term
	// Canonical truth values.
	tt, ff *Term
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ bounds.Context[*Term] = (*Manager)(nil)

// NewManager constructs a manager with no declared constants.
func NewManager() *Manager {
	m := &Manager{terms: make(map[string]*Term), consts: make(map[string]*Term)}
	m.tt = m.intern(TRUE, BoolSort(), "", big.Int{})
	m.ff = m.intern(FALSE, BoolSort(), "", big.Int{})
	//
	return m
}

// Size returns the number of distinct terms constructed by this manager.
func (m *Manager) Size() uint {
	return uint(len(m.terms))
}

// ===================================================================
// Constants
// ===================================================================

// Declare a constant of a given sort.  Redeclaring a constant with the same
// sort returns the existing constant, whilst redeclaring it with a different
// sort is an error.
func (m *Manager) Declare(name string, sort Sort) (*Term, error) {
	if c, ok := m.consts[name]; ok {
		if c.sort != sort {
			return nil, fmt.Errorf("constant %s already declared with sort %s", name, c.sort.String())
		}
		//
		return c, nil
	}
	//
	c := m.intern(CONST, sort, name, big.Int{})
	m.consts[name] = c
	//
	return c, nil
}

// Lookup a previously declared constant by name.
func (m *Manager) Lookup(name string) (*Term, bool) {
	c, ok := m.consts[name]
	return c, ok
}

// MkBool returns logical truth or falsehood.
func (m *Manager) MkBool(val bool) *Term {
	if val {
		return m.tt
	}
	//
	return m.ff
}

// MkNumeral constructs a bitvector constant of a given width.  The value is
// reduced modulo 2^width.
func (m *Manager) MkNumeral(val big.Int, width uint) *Term {
	return m.intern(NUMERAL, BitVecSort(width), "", math.Wrap(val, width))
}

// MkNumeral64 constructs a bitvector constant from a machine integer.
func (m *Manager) MkNumeral64(val uint64, width uint) *Term {
	var v big.Int
	//
	v.SetUint64(val)
	//
	return m.MkNumeral(v, width)
}

// ===================================================================
// Boolean connectives
// ===================================================================

// MkNot constructs the logical negation of a boolean term.
func (m *Manager) MkNot(arg *Term) *Term {
	mustCheck(NOT, arg)
	//
	switch arg.op {
	case TRUE:
		return m.ff
	case FALSE:
		return m.tt
	case NOT:
		return arg.args[0]
	}
	//
	return m.intern(NOT, BoolSort(), "", big.Int{}, arg)
}

// MkAnd constructs the conjunction of zero or more boolean terms.  Nested
// conjunctions are flattened, duplicates and truth are removed.
func (m *Manager) MkAnd(args ...*Term) *Term {
	return m.mkJunction(AND, args)
}

// MkOr constructs the disjunction of zero or more boolean terms.  Nested
// disjunctions are flattened, duplicates and falsehood are removed.
func (m *Manager) MkOr(args ...*Term) *Term {
	return m.mkJunction(OR, args)
}

// MkImplies constructs the implication "lhs => rhs", which is expressed as a
// disjunction.
func (m *Manager) MkImplies(lhs *Term, rhs *Term) *Term {
	return m.MkOr(m.MkNot(lhs), rhs)
}

// MkIte constructs a conditional "if cond then lhs else rhs".
func (m *Manager) MkIte(cond *Term, lhs *Term, rhs *Term) *Term {
	mustCheck(ITE, cond, lhs, rhs)
	//
	switch {
	case cond.op == TRUE || lhs == rhs:
		return lhs
	case cond.op == FALSE:
		return rhs
	case lhs.op == TRUE && rhs.op == FALSE:
		return cond
	case lhs.op == FALSE && rhs.op == TRUE:
		return m.MkNot(cond)
	}
	//
	return m.intern(ITE, lhs.sort, "", big.Int{}, cond, lhs, rhs)
}

// Shared implementation of conjunction (op == AND) and disjunction (op == OR).
func (m *Manager) mkJunction(op Op, args []*Term) *Term {
	var (
		// unit is the identity element (true for AND, false for OR)
		unit = op == AND
		// zero is the absorbing element
		zero    = m.MkBool(!unit)
		seen    = make(map[*Term]bool)
		negated = make(map[*Term]bool)
		terms   []*Term
	)
	//
	mustCheck(op, args...)
	// Flatten arguments
	for _, arg := range flatten(op, args) {
		switch {
		case arg.Is(unit) || seen[arg]:
			continue
		case arg.Is(!unit):
			return zero
		case arg.op == NOT && seen[arg.args[0]]:
			// x and not x
			return zero
		case negated[arg]:
			// not x and x
			return zero
		case arg.op == NOT:
			negated[arg.args[0]] = true
		}
		//
		seen[arg] = true
		terms = append(terms, arg)
	}
	//
	switch len(terms) {
	case 0:
		return m.MkBool(unit)
	case 1:
		return terms[0]
	}
	//
	return m.intern(op, BoolSort(), "", big.Int{}, terms...)
}

func flatten(op Op, args []*Term) []*Term {
	var result []*Term
	//
	for _, arg := range args {
		if arg.op == op {
			result = append(result, arg.args...)
		} else {
			result = append(result, arg)
		}
	}
	//
	return result
}

// ===================================================================
// Comparisons
// ===================================================================

// MkEq constructs an equality between two terms of the same sort.
func (m *Manager) MkEq(lhs *Term, rhs *Term) *Term {
	mustCheck(EQ, lhs, rhs)
	//
	switch {
	case lhs == rhs:
		return m.tt
	case lhs.IsNumeral() && rhs.IsNumeral():
		// Since hash-consed, distinct numerals have distinct values
		return m.ff
	case isBoolLiteral(lhs) && isBoolLiteral(rhs):
		return m.ff
	}
	//
	return m.intern(EQ, BoolSort(), "", big.Int{}, lhs, rhs)
}

// MkUle constructs the unsigned comparison "lhs <= rhs".
func (m *Manager) MkUle(lhs *Term, rhs *Term) *Term {
	mustCheck(ULE, lhs, rhs)
	//
	var (
		width = lhs.sort.width
		umax  = math.MaxUnsigned(width)
	)
	//
	switch {
	case lhs == rhs:
		return m.tt
	case lhs.IsNumeral() && rhs.IsNumeral():
		return m.MkBool(lhs.value.Cmp(&rhs.value) <= 0)
	case lhs.IsNumeral() && lhs.value.Sign() == 0:
		return m.tt
	case rhs.IsNumeral() && rhs.value.Cmp(&umax) == 0:
		return m.tt
	}
	//
	return m.intern(ULE, BoolSort(), "", big.Int{}, lhs, rhs)
}

// MkSle constructs the signed comparison "lhs <= rhs".
func (m *Manager) MkSle(lhs *Term, rhs *Term) *Term {
	mustCheck(SLE, lhs, rhs)
	//
	var (
		width = lhs.sort.width
		smin  = math.MinSigned(width)
		smax  = math.MaxSigned(width)
	)
	//
	switch {
	case lhs == rhs:
		return m.tt
	case lhs.IsNumeral() && rhs.IsNumeral():
		l, r := math.ToSigned(lhs.value, width), math.ToSigned(rhs.value, width)
		return m.MkBool(l.Cmp(&r) <= 0)
	case lhs.IsNumeral() && lhs.value.Cmp(&smin) == 0:
		return m.tt
	case rhs.IsNumeral() && rhs.value.Cmp(&smax) == 0:
		return m.tt
	}
	//
	return m.intern(SLE, BoolSort(), "", big.Int{}, lhs, rhs)
}

// MkUge constructs the unsigned comparison "lhs >= rhs".
func (m *Manager) MkUge(lhs *Term, rhs *Term) *Term {
	return m.MkUle(rhs, lhs)
}

// MkUlt constructs the unsigned comparison "lhs < rhs".
func (m *Manager) MkUlt(lhs *Term, rhs *Term) *Term {
	return m.MkNot(m.MkUle(rhs, lhs))
}

// MkUgt constructs the unsigned comparison "lhs > rhs".
func (m *Manager) MkUgt(lhs *Term, rhs *Term) *Term {
	return m.MkNot(m.MkUle(lhs, rhs))
}

// MkSge constructs the signed comparison "lhs >= rhs".
func (m *Manager) MkSge(lhs *Term, rhs *Term) *Term {
	return m.MkSle(rhs, lhs)
}

// MkSlt constructs the signed comparison "lhs < rhs".
func (m *Manager) MkSlt(lhs *Term, rhs *Term) *Term {
	return m.MkNot(m.MkSle(rhs, lhs))
}

// MkSgt constructs the signed comparison "lhs > rhs".
func (m *Manager) MkSgt(lhs *Term, rhs *Term) *Term {
	return m.MkNot(m.MkSle(lhs, rhs))
}

// ===================================================================
// Arithmetic
// ===================================================================

// MkBinary constructs a binary bitvector operation (one of ADD, SUB, MUL,
// BVAND, BVOR or BVXOR).  Operations over numerals are evaluated modulo 2^n.
func (m *Manager) MkBinary(op Op, lhs *Term, rhs *Term) *Term {
	if op < ADD || op > BVXOR {
		panic(fmt.Sprintf("%s is not a binary bitvector operation", op.String()))
	}
	//
	mustCheck(op, lhs, rhs)
	//
	if lhs.IsNumeral() && rhs.IsNumeral() {
		var val big.Int
		//
		switch op {
		case ADD:
			val.Add(&lhs.value, &rhs.value)
		case SUB:
			val.Sub(&lhs.value, &rhs.value)
		case MUL:
			val.Mul(&lhs.value, &rhs.value)
		case BVAND:
			val.And(&lhs.value, &rhs.value)
		case BVOR:
			val.Or(&lhs.value, &rhs.value)
		case BVXOR:
			val.Xor(&lhs.value, &rhs.value)
		}
		//
		return m.MkNumeral(val, lhs.sort.width)
	}
	//
	return m.intern(op, lhs.sort, "", big.Int{}, lhs, rhs)
}

// MkUnary constructs a unary bitvector operation (either BVNOT or NEG).
// Operations over numerals are evaluated modulo 2^n.
func (m *Manager) MkUnary(op Op, arg *Term) *Term {
	mustCheck(op, arg)
	//
	if arg.IsNumeral() {
		var (
			width = arg.sort.width
			val   big.Int
		)
		//
		if op == NEG {
			val.Neg(&arg.value)
		} else {
			umax := math.MaxUnsigned(width)
			val.Sub(&umax, &arg.value)
		}
		//
		return m.MkNumeral(val, width)
	}
	//
	return m.intern(op, arg.sort, "", big.Int{}, arg)
}

// ===================================================================
// Expression context
// ===================================================================

// Numeral checks whether a given term is a bitvector constant and, if so,
// returns its value and width.
func (m *Manager) Numeral(e *Term) (big.Int, uint, bool) {
	if !e.IsNumeral() {
		return big.Int{}, 0, false
	}
	//
	return e.Value(), e.sort.width, true
}

// Relation classifies a term as an unsigned comparison, signed comparison or
// bitvector equality.
func (m *Manager) Relation(e *Term) (bounds.Relation, *Term, *Term) {
	switch e.op {
	case ULE:
		return bounds.ULE, e.args[0], e.args[1]
	case SLE:
		return bounds.SLE, e.args[0], e.args[1]
	case EQ:
		if !e.args[0].sort.IsBool() {
			return bounds.EQ, e.args[0], e.args[1]
		}
	}
	//
	return bounds.NONE, nil, nil
}

// ===================================================================
// Hash-consing
// ===================================================================

func (m *Manager) intern(op Op, sort Sort, name string, value big.Int, args ...*Term) *Term {
	key := termKey(op, sort, name, &value, args)
	//
	if t, ok := m.terms[key]; ok {
		return t
	}
	//
	t := &Term{uint(len(m.terms)), op, sort, name, value, args}
	m.terms[key] = t
	//
	return t
}

func termKey(op Op, sort Sort, name string, value *big.Int, args []*Term) string {
	var builder strings.Builder
	//
	builder.WriteString(strconv.Itoa(int(op)))
	builder.WriteString(":")
	builder.WriteString(strconv.FormatUint(uint64(sort.width), 10))
	builder.WriteString(":")
	//
	switch op {
	case CONST:
		builder.WriteString(name)
	case NUMERAL:
		builder.WriteString(value.Text(16))
	}
	//
	for _, arg := range args {
		builder.WriteString(":")
		builder.WriteString(strconv.FormatUint(uint64(arg.id), 10))
	}
	//
	return builder.String()
}

func isBoolLiteral(t *Term) bool {
	return t.op == TRUE || t.op == FALSE
}
