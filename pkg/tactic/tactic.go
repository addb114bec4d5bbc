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
package tactic

import (
	"fmt"

	"github.com/consensys/go-bvbounds/pkg/config"
	"github.com/consensys/go-bvbounds/pkg/expr"
	log "github.com/sirupsen/logrus"
)

// Stats records the work done by a tactic.
type Stats struct {
	// Number of subformulas visited.
	Steps uint
	// Number of atoms rewritten by the plug-in.
	Rewrites uint
	// Number of facts asserted to the plug-in.
	Assumptions uint
}

func (s Stats) String() string {
	return fmt.Sprintf("steps=%d, rewrites=%d, assumptions=%d", s.Steps, s.Rewrites, s.Assumptions)
}

// Tactic simplifies formulas by walking them depth-first, whilst keeping a
// plug-in informed of the facts known to hold at each point.  For example, in
// "(and (bvule x #x05) (bvule x #x0a))" the second conjunct is visited knowing
// the first holds, and simplifies to true.  Likewise, each disjunct is visited
// knowing the disjuncts before it do not hold.
//
// A tactic is not safe for concurrent use.  Use Translate to obtain an
// independent tactic for another manager.
type Tactic struct {
	m      *expr.Manager
	plugin Simplifier
	config config.SimplifyConfig
	stats  Stats
	// Steps taken before the current formula.
	start uint
}

// NewBoundsTactic constructs a tactic which simplifies comparisons against
// constants, using the bounds implied by the facts known along each path.
func NewBoundsTactic(m *expr.Manager, cfg config.SimplifyConfig) *Tactic {
	return NewTactic(m, NewBoundsPlugin(m), cfg)
}

// NewTactic constructs a tactic around a given plug-in.
func NewTactic(m *expr.Manager, plugin Simplifier, cfg config.SimplifyConfig) *Tactic {
	return &Tactic{m, plugin, cfg, Stats{}, 0}
}

// Stats returns the work done by this tactic so far.
func (t *Tactic) Stats() Stats {
	return t.stats
}

// Translate constructs a fresh tactic, with the same configuration, over a
// different manager.  Nothing known by this tactic is carried over.
func (t *Tactic) Translate(m *expr.Manager) *Tactic {
	return NewTactic(m, t.plugin.Translate(m), t.config)
}

// Simplify a given formula.
func (t *Tactic) Simplify(f *expr.Term) *expr.Term {
	var (
		level  = t.plugin.ScopeLevel()
		result = t.simplifyRoot(f)
	)
	//
	t.unwind(level)
	//
	return result
}

// Apply simplifies a goal, given as a list of assertions which must all hold.
// Each assertion is simplified knowing those before it hold.  Assertions which
// simplify to true are dropped, and if any simplifies to false then the goal
// is reduced to just false.
func (t *Tactic) Apply(goal []*expr.Term) []*expr.Term {
	var (
		level  = t.plugin.ScopeLevel()
		result []*expr.Term
		stats  = t.stats
	)
	//
	defer t.unwind(level)
	//
	for _, f := range goal {
		r := t.simplifyRoot(f)
		//
		if r.Is(false) {
			log.Debug("goal simplified to false")
			return []*expr.Term{r}
		} else if !r.Is(true) {
			result = append(result, r)
			t.assume(r, false)
		}
	}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("simplified %d assertion(s) to %d (%d rewrite(s) in %d step(s))", len(goal), len(result),
			t.stats.Rewrites-stats.Rewrites, t.stats.Steps-stats.Steps)
	}
	//
	return result
}

func (t *Tactic) simplifyRoot(f *expr.Term) *expr.Term {
	t.start = t.stats.Steps
	//
	return t.simplify(f, 0)
}

func (t *Tactic) simplify(f *expr.Term, depth uint) *expr.Term {
	if !f.Sort().IsBool() || t.exhausted(depth) {
		return f
	}
	//
	t.stats.Steps++
	//
	switch f.Op() {
	case expr.TRUE, expr.FALSE:
		return f
	case expr.NOT:
		return t.m.MkNot(t.simplify(f.Arg(0), depth+1))
	case expr.AND:
		return t.simplifyJunction(f, depth, false)
	case expr.OR:
		return t.simplifyJunction(f, depth, true)
	case expr.ITE:
		return t.simplifyIte(f, depth)
	}
	//
	if r, ok := t.plugin.Simplify(f); ok {
		t.stats.Rewrites++
		return r
	}
	//
	return f
}

// Simplify each argument of a conjunction (or disjunction) knowing the
// previous arguments hold (or do not hold).
func (t *Tactic) simplifyJunction(f *expr.Term, depth uint, disjunction bool) *expr.Term {
	var (
		level = t.plugin.ScopeLevel()
		args  = make([]*expr.Term, 0, len(f.Args()))
	)
	//
	defer t.unwind(level)
	//
	for _, arg := range f.Args() {
		r := t.simplify(arg, depth+1)
		// Check for short circuit
		if r.Is(disjunction) {
			return r
		}
		//
		args = append(args, r)
		t.assume(r, disjunction)
	}
	//
	if disjunction {
		return t.m.MkOr(args...)
	}
	//
	return t.m.MkAnd(args...)
}

func (t *Tactic) simplifyIte(f *expr.Term, depth uint) *expr.Term {
	var (
		level = t.plugin.ScopeLevel()
		cond  = t.simplify(f.Arg(0), depth+1)
	)
	// True branch
	t.assume(cond, false)
	lhs := t.simplify(f.Arg(1), depth+1)
	t.unwind(level)
	// False branch
	t.assume(cond, true)
	rhs := t.simplify(f.Arg(2), depth+1)
	t.unwind(level)
	//
	return t.m.MkIte(cond, lhs, rhs)
}

// Assume a given formula (or its negation) holds, by asserting the atoms it
// implies.
func (t *Tactic) assume(f *expr.Term, negated bool) {
	switch {
	case f.Op() == expr.NOT:
		t.assume(f.Arg(0), !negated)
	case f.Op() == expr.AND && !negated, f.Op() == expr.OR && negated:
		for _, arg := range f.Args() {
			t.assume(arg, negated)
		}
	default:
		t.stats.Assumptions++
		t.plugin.Assert(f, negated)
	}
}

// Return to a given scope level.
func (t *Tactic) unwind(level uint) {
	if n := t.plugin.ScopeLevel() - level; n > 0 {
		t.plugin.Pop(n)
	}
}

func (t *Tactic) exhausted(depth uint) bool {
	return (t.config.MaxDepth != 0 && depth > t.config.MaxDepth) ||
		(t.config.MaxSteps != 0 && t.stats.Steps-t.start >= t.config.MaxSteps)
}
