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
	"maps"

	"github.com/consensys/go-bvbounds/pkg/util/collection/stack"
	"github.com/consensys/go-bvbounds/pkg/util/math"
)

// Bound records what is known about the values of a given expression.  A bound
// is "empty" when the facts asserted about the expression contradict each
// other, in which case the interval retains the last consistent bound.
type Bound struct {
	interval math.Interval
	empty    bool
}

// Interval returns the set of values the expression is known to take.
func (b Bound) Interval() math.Interval {
	return b.interval
}

// IsEmpty indicates whether contradictory facts were asserted.
func (b Bound) IsEmpty() bool {
	return b.empty
}

func (b Bound) String() string {
	if b.empty {
		return "∅"
	}
	//
	return b.interval.String()
}

// Store maintains the bounds known for each expression across a stack of
// nested scopes.  Entering a scope copies the bounds of the enclosing scope,
// hence refining a bound never affects an enclosing scope.  Leaving a scope
// discards everything learned within it.
type Store[E comparable] struct {
	scopes *stack.Stack[map[E]Bound]
}

// NewStore constructs a store with an empty root scope.
func NewStore[E comparable]() *Store[E] {
	scopes := stack.NewStack[map[E]Bound]()
	scopes.Push(make(map[E]Bound))
	//
	return &Store[E]{scopes}
}

// Level returns the nesting depth of the current scope, where the root scope
// has level 0.
func (p *Store[E]) Level() uint {
	return p.scopes.Len() - 1
}

// Push enters a new scope, initially holding the same bounds as the current
// scope.
func (p *Store[E]) Push() {
	p.scopes.Push(maps.Clone(p.current()))
}

// Pop leaves the n innermost scopes.  Popping the root scope is not permitted.
func (p *Store[E]) Pop(n uint) {
	if n > p.Level() {
		panic("cannot pop root scope")
	}
	//
	p.scopes.Truncate(n)
}

// Get returns the bound known for a given expression in the current scope, or
// false if nothing is known.
func (p *Store[E]) Get(e E) (Bound, bool) {
	b, ok := p.current()[e]
	return b, ok
}

// Refine intersects the bound for a given expression in the current scope
// with a given interval.  If nothing was known, the interval becomes the bound.
// This returns false if the intersection is empty, in which case the bound is
// marked empty (and stays so until its scope is left).
func (p *Store[E]) Refine(e E, iv math.Interval) bool {
	var (
		scope     = p.current()
		old, seen = scope[e]
	)
	//
	if !seen {
		scope[e] = Bound{iv, false}
		return true
	} else if old.empty {
		return false
	}
	// Compute before committing
	if merged, ok := old.interval.Intersect(iv); ok {
		scope[e] = Bound{merged, false}
		return true
	}
	//
	scope[e] = Bound{old.interval, true}
	//
	return false
}

func (p *Store[E]) current() map[E]Bound {
	return p.scopes.Peek(0)
}
