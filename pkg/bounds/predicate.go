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
package bounds

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-bvbounds/pkg/util/math"
)

// Relation identifies the shape of a comparison from which a bound can be
// derived.
type Relation uint8

const (
	// NONE indicates an expression which is not a recognised comparison.
	NONE Relation = iota
	// ULE indicates an unsigned comparison "x <= y".
	ULE
	// SLE indicates a signed comparison "x <= y".
	SLE
	// EQ indicates an equality "x == y".
	EQ
)

func (r Relation) String() string {
	switch r {
	case ULE:
		return "bvule"
	case SLE:
		return "bvsle"
	case EQ:
		return "="
	default:
		return "none"
	}
}

// Context provides the operations on expressions which the simplifier relies
// upon.  Expressions are identified by value, hence E is typically a pointer
// to a hash-consed term.
type Context[E comparable] interface {
	// Numeral checks whether a given expression is a fixed-width constant and,
	// if so, returns its value and bitwidth.
	Numeral(e E) (big.Int, uint, bool)
	// Relation classifies a given expression as an unsigned comparison, signed
	// comparison or equality and, if so, returns its operands.  Otherwise, NONE
	// is returned.
	Relation(e E) (Relation, E, E)
	// MkNumeral constructs a constant of a given bitwidth.
	MkNumeral(val big.Int, width uint) E
	// MkEq constructs an equality between two expressions.
	MkEq(lhs E, rhs E) E
	// MkBool constructs logical truth or falsehood.
	MkBool(val bool) E
}

// Predicate captures a comparison between an expression (the operand) and a
// constant, along with the set of values the operand must take for the
// comparison to hold.
type Predicate[E comparable] struct {
	// Kind of comparison this was derived from.
	Kind Relation
	// Operand being constrained.
	Operand E
	// Values the operand may take if the comparison holds.
	Bound math.Interval
}

func (p *Predicate[E]) String() string {
	return fmt.Sprintf("%v in %s", p.Operand, p.Bound.String())
}

// Recognise determines whether a given expression is a comparison between
// some expression and a constant and, if so, the bound it places upon that
// expression.  For example, "x <= 5" bounds x to [0,5], whilst "5 <= x" (for
// an 8-bit x) bounds x to [5,255].  Signed bounds are given over the unsigned
// bit patterns, hence "x <=s 5" bounds x to [128,5] which wraps.
func Recognise[E comparable](ctx Context[E], e E) (Predicate[E], bool) {
	var pred Predicate[E]
	//
	kind, lhs, rhs := ctx.Relation(e)
	if kind == NONE {
		return pred, false
	}
	// Check for constant on left-hand side
	if val, width, ok := ctx.Numeral(lhs); ok {
		pred = Predicate[E]{kind, rhs, lowerBound(kind, val, width)}
		return pred, true
	}
	// Check for constant on right-hand side
	if val, width, ok := ctx.Numeral(rhs); ok {
		pred = Predicate[E]{kind, lhs, upperBound(kind, val, width)}
		return pred, true
	}
	// Not a bound
	return pred, false
}

// Bound implied on x by "c <= x" (or "c == x").
func lowerBound(kind Relation, val big.Int, width uint) math.Interval {
	switch kind {
	case ULE:
		return math.NewInterval(val, math.MaxUnsigned(width), width)
	case SLE:
		return math.NewInterval(val, math.MaxSigned(width), width)
	case EQ:
		return math.PointInterval(val, width)
	}
	//
	panic(fmt.Sprintf("unknown relation %d", kind))
}

// Bound implied on x by "x <= c" (or "x == c").
func upperBound(kind Relation, val big.Int, width uint) math.Interval {
	switch kind {
	case ULE:
		return math.NewInterval(*big.NewInt(0), val, width)
	case SLE:
		return math.NewInterval(math.MinSigned(width), val, width)
	case EQ:
		return math.PointInterval(val, width)
	}
	//
	panic(fmt.Sprintf("unknown relation %d", kind))
}
