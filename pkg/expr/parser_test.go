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

	"github.com/consensys/go-bvbounds/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicScript = `
; a simple script
(set-logic QF_BV)
(declare-const x (_ BitVec 8))
(declare-fun p () Bool)
(assert (bvule x #x05))
(assert (or p (bvult #x0a x)))
(check-sat)
`

func Test_Parser_Script(t *testing.T) {
	m := NewManager()
	script := parseScript(t, m, basicScript)
	//
	require.Len(t, script.Declarations, 2)
	assert.Equal(t, "x", script.Declarations[0].Name())
	assert.Equal(t, BoolSort(), script.Declarations[1].Sort())
	//
	require.Len(t, script.Assertions, 2)
	assert.Equal(t, "(bvule x #x05)", script.Assertions[0].String())
	assert.Equal(t, "(or p (not (bvule x #x0a)))", script.Assertions[1].String())
}

func Test_Parser_Numerals(t *testing.T) {
	checkTerm(t, "(bvule x #b00000101)", "(bvule x #x05)")
	checkTerm(t, "(bvule x (_ bv5 8))", "(bvule x #x05)")
	checkTerm(t, "(bvule (_ bv260 8) x)", "(bvule #x04 x)")
}

func Test_Parser_Comparisons(t *testing.T) {
	checkTerm(t, "(bvuge x #x05)", "(bvule #x05 x)")
	checkTerm(t, "(bvugt x #x05)", "(not (bvule x #x05))")
	checkTerm(t, "(bvsge x #x05)", "(bvsle #x05 x)")
	checkTerm(t, "(bvslt x #x05)", "(not (bvsle #x05 x))")
	checkTerm(t, "(distinct x #x05)", "(not (= x #x05))")
	checkTerm(t, "(= x y #x05)", "(and (= x y) (= y #x05))")
}

func Test_Parser_Connectives(t *testing.T) {
	checkTerm(t, "(=> p q)", "(or (not p) q)")
	checkTerm(t, "(=> p q p)", "true")
	checkTerm(t, "(and p (and q p))", "(and p q)")
	checkTerm(t, "(ite p (bvule x #x01) false)", "(ite p (bvule x #x01) false)")
	checkTerm(t, "(not (not p))", "p")
}

func Test_Parser_Arithmetic(t *testing.T) {
	checkTerm(t, "(bvadd x y #x01)", "(bvadd (bvadd x y) #x01)")
	checkTerm(t, "(bvadd #xfe #x03)", "#x01")
	checkTerm(t, "(bvneg #x01)", "#xff")
	checkTerm(t, "(bvsub x #x01)", "(bvsub x #x01)")
}

func Test_Parser_Folding(t *testing.T) {
	checkTerm(t, "(bvule #x00 x)", "true")
	checkTerm(t, "(bvule #x03 #x05)", "true")
	checkTerm(t, "(and p false)", "false")
}

func Test_Parser_Invalid_01(t *testing.T) {
	checkInvalidTerm(t, "(bvule x z)", "unknown symbol")
}

func Test_Parser_Invalid_02(t *testing.T) {
	checkInvalidTerm(t, "(bvule x p)", "bvule expects bitvector argument, found Bool")
}

func Test_Parser_Invalid_03(t *testing.T) {
	checkInvalidTerm(t, "(bvule x #x0005)", "bvule expects arguments of same sort, found (_ BitVec 8) and (_ BitVec 16)")
}

func Test_Parser_Invalid_04(t *testing.T) {
	checkInvalidTerm(t, "(bvfoo x)", "unknown operator")
}

func Test_Parser_Invalid_05(t *testing.T) {
	checkInvalidTerm(t, "(not p q)", "incorrect number of arguments (2)")
}

func Test_Parser_Invalid_06(t *testing.T) {
	checkInvalidTerm(t, "#xg1", "invalid numeral")
}

func Test_Parser_Invalid_07(t *testing.T) {
	checkInvalidTerm(t, "(_ bv5 0)", "invalid bitwidth")
}

func Test_Parser_InvalidScript(t *testing.T) {
	m := NewManager()
	srcfile := source.NewSourceFile("test.smt2", []byte(`
(declare-const x (_ BitVec 8))
(declare-const x Bool)
(declare-const y Int)
(assert x)
(push 1)
(assert (bvule x #x05))
`))
	//
	script, errs := ParseScript(m, srcfile)
	require.Len(t, errs, 4)
	assert.Equal(t, "constant x already declared with sort (_ BitVec 8)", errs[0].Message())
	assert.Equal(t, "unknown sort", errs[1].Message())
	assert.Equal(t, "expected Bool term", errs[2].Message())
	assert.Equal(t, "unknown command", errs[3].Message())
	// Parsing continues past errors
	require.Len(t, script.Assertions, 1)
	assert.Equal(t, "(bvule x #x05)", script.Assertions[0].String())
}

func Test_Parser_Unbalanced(t *testing.T) {
	m := NewManager()
	srcfile := source.NewSourceFile("test.smt2", []byte("(assert (bvule x #x05)"))
	//
	script, errs := ParseScript(m, srcfile)
	assert.Nil(t, script)
	require.Len(t, errs, 1)
	assert.Equal(t, "unexpected end-of-file", errs[0].Message())
}

// ===================================================================
// Helpers
// ===================================================================

func parseScript(t *testing.T, m *Manager, text string) *Script {
	script, errs := ParseScript(m, source.NewSourceFile("test.smt2", []byte(text)))
	require.Empty(t, errs)
	//
	return script
}

// Construct a manager with a fixed set of constants: x, y of width 8 and
// booleans p, q.
func testManager(t *testing.T) *Manager {
	m := NewManager()
	mustDeclare(t, m, "x", BitVecSort(8))
	mustDeclare(t, m, "y", BitVecSort(8))
	mustDeclare(t, m, "p", BoolSort())
	mustDeclare(t, m, "q", BoolSort())
	//
	return m
}

func checkTerm(t *testing.T, input string, expected string) {
	m := testManager(t)
	//
	term, err := ParseTerm(m, input)
	if err != nil {
		t.Fatalf("unexpected error parsing %s: %s", input, err.Message())
	}
	//
	assert.Equal(t, expected, term.String(), "parsing %s", input)
}

func checkInvalidTerm(t *testing.T, input string, msg string) {
	m := testManager(t)
	//
	_, err := ParseTerm(m, input)
	if err == nil {
		t.Fatalf("expected error parsing %s", input)
	}
	//
	assert.Equal(t, msg, err.Message())
}
