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
	"github.com/consensys/go-bvbounds/pkg/bounds"
	"github.com/consensys/go-bvbounds/pkg/expr"
)

// Simplifier is a plug-in used by a tactic to rewrite atoms based on the
// facts which hold along the current path through a formula.  The tactic
// asserts facts as it descends into a formula, and pops back to an earlier
// scope level on leaving.
type Simplifier interface {
	// Assert that a given fact (or its negation) holds on the current path.
	Assert(fact *expr.Term, negated bool)
	// Simplify a given atom, returning the rewritten atom and true, or the
	// original atom and false.
	Simplify(atom *expr.Term) (*expr.Term, bool)
	// Push enters a new scope.
	Push()
	// Pop leaves the n innermost scopes.
	Pop(n uint)
	// ScopeLevel returns the current nesting depth.
	ScopeLevel() uint
	// Translate constructs a fresh plug-in over a different manager.
	Translate(m *expr.Manager) Simplifier
}

// boundsPlugin adapts a bounds simplifier over terms.
type boundsPlugin struct {
	*bounds.Simplifier[*expr.Term]
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Simplifier = (*boundsPlugin)(nil)

// NewBoundsPlugin constructs a plug-in which simplifies comparisons against
// constants using the bounds known on the current path.
func NewBoundsPlugin(m *expr.Manager) Simplifier {
	return &boundsPlugin{bounds.NewSimplifier[*expr.Term](m)}
}

func (p *boundsPlugin) Translate(m *expr.Manager) Simplifier {
	return &boundsPlugin{p.Simplifier.Translate(m)}
}
