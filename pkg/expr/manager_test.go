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
	"testing"

	"github.com/consensys/go-bvbounds/pkg/bounds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Manager_HashConsing(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	//
	y, err := m.Declare("x", BitVecSort(8))
	require.NoError(t, err)
	assert.Same(t, x, y)
	//
	lhs := m.MkUle(x, m.MkNumeral64(5, 8))
	rhs := m.MkUle(x, m.MkNumeral64(5, 8))
	assert.Same(t, lhs, rhs)
	assert.NotSame(t, lhs, m.MkUle(m.MkNumeral64(5, 8), x))
}

func Test_Manager_Redeclare(t *testing.T) {
	m := NewManager()
	mustDeclare(t, m, "x", BitVecSort(8))
	//
	_, err := m.Declare("x", BitVecSort(4))
	assert.Error(t, err)
}

func Test_Manager_Numerals(t *testing.T) {
	m := NewManager()
	//
	assert.Same(t, m.MkNumeral64(4, 8), m.MkNumeral64(260, 8))
	assert.Equal(t, "#x04", m.MkNumeral64(260, 8).String())
	assert.Equal(t, "#b101", m.MkNumeral64(5, 3).String())
	assert.NotSame(t, m.MkNumeral64(5, 8), m.MkNumeral64(5, 4))
}

func Test_Manager_Printing(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	p := mustDeclare(t, m, "p", BoolSort())
	//
	assert.Equal(t, "(bvule x #x05)", m.MkUle(x, m.MkNumeral64(5, 8)).String())
	assert.Equal(t, "(not (bvsle #x05 x))", m.MkSlt(x, m.MkNumeral64(5, 8)).String())
	assert.Equal(t, "(or (not p) (= x #x00))", m.MkImplies(p, m.MkEq(x, m.MkNumeral64(0, 8))).String())
}

func Test_Manager_FoldComparisons(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	//
	assert.True(t, m.MkUle(m.MkNumeral64(5, 8), m.MkNumeral64(10, 8)).Is(true))
	assert.True(t, m.MkUle(m.MkNumeral64(10, 8), m.MkNumeral64(5, 8)).Is(false))
	assert.True(t, m.MkUle(x, x).Is(true))
	assert.True(t, m.MkUle(m.MkNumeral64(0, 8), x).Is(true))
	assert.True(t, m.MkUle(x, m.MkNumeral64(255, 8)).Is(true))
	assert.True(t, m.MkEq(x, x).Is(true))
	assert.True(t, m.MkEq(m.MkNumeral64(1, 8), m.MkNumeral64(2, 8)).Is(false))
}

func Test_Manager_FoldSigned(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	// -1 <= 0
	assert.True(t, m.MkSle(m.MkNumeral64(255, 8), m.MkNumeral64(0, 8)).Is(true))
	// 0 <= -128 fails
	assert.True(t, m.MkSle(m.MkNumeral64(0, 8), m.MkNumeral64(128, 8)).Is(false))
	assert.True(t, m.MkSle(m.MkNumeral64(128, 8), x).Is(true))
	assert.True(t, m.MkSle(x, m.MkNumeral64(127, 8)).Is(true))
	assert.False(t, m.MkSle(x, m.MkNumeral64(255, 8)).Is(true))
}

func Test_Manager_Connectives(t *testing.T) {
	m := NewManager()
	p := mustDeclare(t, m, "p", BoolSort())
	q := mustDeclare(t, m, "q", BoolSort())
	r := mustDeclare(t, m, "r", BoolSort())
	//
	assert.Same(t, p, m.MkNot(m.MkNot(p)))
	assert.Same(t, p, m.MkAnd(p, m.MkBool(true)))
	assert.Same(t, p, m.MkAnd(p, p))
	assert.True(t, m.MkAnd(p, m.MkBool(false)).Is(false))
	assert.True(t, m.MkAnd(p, m.MkNot(p)).Is(false))
	assert.True(t, m.MkOr(m.MkNot(p), p).Is(true))
	assert.True(t, m.MkOr().Is(false))
	assert.True(t, m.MkAnd().Is(true))
	// Flattening
	conj := m.MkAnd(m.MkAnd(p, q), r)
	assert.Equal(t, AND, conj.Op())
	assert.Len(t, conj.Args(), 3)
	assert.Same(t, conj, m.MkAnd(p, m.MkAnd(q, r)))
}

func Test_Manager_ConnectivesSize(t *testing.T) {
	m := NewManager()
	p := mustDeclare(t, m, "p", BoolSort())
	q := mustDeclare(t, m, "q", BoolSort())
	size := m.Size()
	// Only the junctions themselves are interned
	m.MkAnd(p, q)
	assert.Equal(t, size+1, m.Size())
	m.MkOr(p, q)
	assert.Equal(t, size+2, m.Size())
	//
	assert.True(t, m.MkAnd(m.MkNot(q), p, q).Is(false))
	assert.Equal(t, size+3, m.Size())
}

func Test_Manager_Ite(t *testing.T) {
	m := NewManager()
	p := mustDeclare(t, m, "p", BoolSort())
	x := mustDeclare(t, m, "x", BitVecSort(8))
	y := mustDeclare(t, m, "y", BitVecSort(8))
	//
	assert.Same(t, x, m.MkIte(m.MkBool(true), x, y))
	assert.Same(t, y, m.MkIte(m.MkBool(false), x, y))
	assert.Same(t, x, m.MkIte(p, x, x))
	assert.Same(t, p, m.MkIte(p, m.MkBool(true), m.MkBool(false)))
	assert.Equal(t, "(ite p x y)", m.MkIte(p, x, y).String())
}

func Test_Manager_Arithmetic(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	//
	assert.Same(t, m.MkNumeral64(4, 8), m.MkBinary(ADD, m.MkNumeral64(250, 8), m.MkNumeral64(10, 8)))
	assert.Same(t, m.MkNumeral64(255, 8), m.MkBinary(SUB, m.MkNumeral64(0, 8), m.MkNumeral64(1, 8)))
	assert.Same(t, m.MkNumeral64(0x0f, 8), m.MkBinary(BVAND, m.MkNumeral64(0x3f, 8), m.MkNumeral64(0xcf, 8)))
	assert.Same(t, m.MkNumeral64(255, 8), m.MkUnary(NEG, m.MkNumeral64(1, 8)))
	assert.Same(t, m.MkNumeral64(0xf0, 8), m.MkUnary(BVNOT, m.MkNumeral64(0x0f, 8)))
	assert.Equal(t, "(bvadd x #x01)", m.MkBinary(ADD, x, m.MkNumeral64(1, 8)).String())
}

func Test_Manager_SortErrors(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	y := mustDeclare(t, m, "y", BitVecSort(4))
	p := mustDeclare(t, m, "p", BoolSort())
	//
	assert.Panics(t, func() { m.MkUle(x, y) })
	assert.Panics(t, func() { m.MkNot(x) })
	assert.Panics(t, func() { m.MkAnd(p, x) })
	assert.Panics(t, func() { m.MkBinary(ULE, x, x) })
	assert.Error(t, Check(SLE, p, p))
	assert.NoError(t, Check(EQ, p, p))
}

func Test_Manager_Relation(t *testing.T) {
	m := NewManager()
	x := mustDeclare(t, m, "x", BitVecSort(8))
	p := mustDeclare(t, m, "p", BoolSort())
	q := mustDeclare(t, m, "q", BoolSort())
	five := m.MkNumeral64(5, 8)
	//
	kind, lhs, rhs := m.Relation(m.MkUle(x, five))
	assert.Equal(t, bounds.ULE, kind)
	assert.Same(t, x, lhs)
	assert.Same(t, five, rhs)
	//
	kind, _, _ = m.Relation(m.MkSle(five, x))
	assert.Equal(t, bounds.SLE, kind)
	//
	kind, _, _ = m.Relation(m.MkEq(x, five))
	assert.Equal(t, bounds.EQ, kind)
	// Boolean equalities are not bounds
	kind, _, _ = m.Relation(m.MkEq(p, q))
	assert.Equal(t, bounds.NONE, kind)
	//
	val, width, ok := m.Numeral(five)
	assert.True(t, ok)
	assert.Equal(t, uint(8), width)
	assert.Equal(t, int64(5), val.Int64())
	//
	_, _, ok = m.Numeral(x)
	assert.False(t, ok)
}

func mustDeclare(t *testing.T, m *Manager, name string, sort Sort) *Term {
	c, err := m.Declare(name, sort)
	require.NoError(t, err)
	//
	return c
}
