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

	"github.com/consensys/go-bvbounds/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Simplifier uses the bounds implied by facts known to hold on the current
// path through a formula to simplify comparisons encountered along that path.
// For example, having assumed "x <= 5", the comparison "x <= 10" simplifies to
// true whilst "10 <= x" simplifies to false.
//
// The simplifier is driven by a traversal which pushes a scope on entering a
// subformula, asserts the facts which hold within it, and pops back out when
// leaving.  Facts asserted within a scope are forgotten once that scope is
// popped.  A simplifier is not safe for concurrent use.
//
// Observe that contradictory facts are never reported.  Rather, once the facts
// asserted about an expression contradict, every comparison on that expression
// simplifies to false until the offending scope is popped.
type Simplifier[E comparable] struct {
	ctx   Context[E]
	store *Store[E]
}

// NewSimplifier constructs a simplifier for a given expression context, with
// nothing yet known.
func NewSimplifier[E comparable](ctx Context[E]) *Simplifier[E] {
	return &Simplifier[E]{ctx, NewStore[E]()}
}

// Assert that a given fact (or its negation) holds from now on.  This always
// enters a new scope before recording the fact, provided the fact is a
// recognised comparison.  Facts which are not recognised are ignored.
func (p *Simplifier[E]) Assert(fact E, negated bool) {
	pred, ok := Recognise(p.ctx, fact)
	//
	if !ok {
		return
	} else if negated {
		var neg math.Interval
		// A single comparison never bounds every value, since the expression
		// context folds those comparisons to true.
		if neg, ok = pred.Bound.Negate(); !ok {
			panic(fmt.Sprintf("cannot negate bound %s from %v", pred.Bound.String(), fact))
		}
		//
		pred.Bound = neg
	}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("assert %s%v: %s", negatedPrefix(negated), fact, pred.String())
	}
	//
	p.store.Push()
	//
	if !p.store.Refine(pred.Operand, pred.Bound) {
		log.Debugf("contradictory bounds on %v", pred.Operand)
	}
}

// Simplify attempts to simplify a given comparison using the bounds known in
// the current scope.  This returns the simplified expression and true, or the
// original expression and false if no simplification was possible.
func (p *Simplifier[E]) Simplify(e E) (E, bool) {
	var (
		result E
		pred   Predicate[E]
		ok     bool
	)
	//
	if pred, ok = Recognise(p.ctx, e); !ok {
		return e, false
	}
	//
	ctx, found := p.store.Get(pred.Operand)
	if !found {
		return e, false
	}
	//
	if result, ok = p.simplify(pred, ctx); !ok {
		return e, false
	}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("simplified %v to %v (%s, ctx: %s)", e, result, pred.Bound.String(), ctx.String())
	}
	//
	return result, true
}

func (p *Simplifier[E]) simplify(pred Predicate[E], ctx Bound) (E, bool) {
	var (
		result E
		civ    = ctx.Interval()
	)
	//
	if ctx.IsEmpty() {
		return p.ctx.MkBool(false), true
	}
	//
	intr, ok := pred.Bound.Intersect(civ)
	//
	switch {
	case !ok:
		return p.ctx.MkBool(false), true
	case intr.IsPoint() && pred.Kind != EQ:
		return p.ctx.MkEq(pred.Operand, p.ctx.MkNumeral(intr.Low(), intr.Width())), true
	case civ.Implies(pred.Bound):
		return p.ctx.MkBool(true), true
	}
	//
	return result, false
}

// Lookup returns the bound currently known for a given expression, or false if
// nothing is known.
func (p *Simplifier[E]) Lookup(e E) (Bound, bool) {
	return p.store.Get(e)
}

// Push enters a new scope.
func (p *Simplifier[E]) Push() {
	log.Debug("push")
	p.store.Push()
}

// Pop leaves the n innermost scopes, forgetting every fact asserted within
// them.
func (p *Simplifier[E]) Pop(n uint) {
	log.Debugf("pop: %d", n)
	p.store.Pop(n)
}

// ScopeLevel returns the current nesting depth, where the root scope has depth
// 0.
func (p *Simplifier[E]) ScopeLevel() uint {
	return p.store.Level()
}

// Translate constructs a fresh simplifier over a different expression context.
// Nothing known by this simplifier is carried over.
func (p *Simplifier[E]) Translate(ctx Context[E]) *Simplifier[E] {
	return NewSimplifier(ctx)
}

func negatedPrefix(negated bool) string {
	if negated {
		return "¬"
	}
	//
	return ""
}
