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
	"math/big"
	"strconv"
	"strings"

	"github.com/consensys/go-bvbounds/pkg/util/source"
	"github.com/consensys/go-bvbounds/pkg/util/source/sexp"
)

// Script represents the declarations and assertions of an SMT-LIB style input
// file, such as the following:
//
//	(declare-const x (_ BitVec 8))
//	(assert (bvule x #x05))
//	(assert (or (bvule x #x0a) (= x #xff)))
type Script struct {
	// Constants declared in this script, in order of declaration.
	Declarations []*Term
	// Assertions made in this script, in order of appearance.
	Assertions []*Term
}

// Commands which are accepted, but have no effect.
var ignoredCommands = map[string]bool{
	"set-logic":  true,
	"set-info":   true,
	"set-option": true,
	"check-sat":  true,
	"get-model":  true,
	"exit":       true,
}

// ParseScript parses a given source file into a script whose terms are
// constructed by a given manager.  Each malformed command produces a syntax
// error, and parsing continues with the next command.
func ParseScript(m *Manager, srcfile *source.File) (*Script, []source.SyntaxError) {
	var (
		script Script
		errors []source.SyntaxError
	)
	// Parse S-Expressions
	sexps, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	p := scriptParser{m, srcmap}
	//
	for _, s := range sexps {
		if err := p.parseCommand(s, &script); err != nil {
			errors = append(errors, *err)
		}
	}
	//
	return &script, errors
}

// ParseTerm parses a single term from a given string, using the constants
// already declared in a given manager.
func ParseTerm(m *Manager, text string) (*Term, *source.SyntaxError) {
	srcfile := source.NewSourceFile("<term>", []byte(text))
	//
	s, srcmap, err := sexp.Parse(srcfile)
	if err != nil {
		return nil, err
	}
	//
	p := scriptParser{m, srcmap}
	//
	return p.parseTerm(s)
}

type scriptParser struct {
	m      *Manager
	srcmap *source.Map[sexp.SExp]
}

func (p *scriptParser) parseCommand(s sexp.SExp, script *Script) *source.SyntaxError {
	list := s.AsList()
	//
	if list == nil || list.Head() == "" {
		return p.srcmap.SyntaxError(s, "expected command")
	}
	//
	switch cmd := list.Head(); {
	case ignoredCommands[cmd]:
		return nil
	case cmd == "declare-const" && list.Len() == 3:
		return p.parseDeclaration(list, list.Get(1), list.Get(2), script)
	case cmd == "declare-fun" && list.Len() == 4:
		if params := list.Get(2).AsList(); params == nil || params.Len() != 0 {
			return p.srcmap.SyntaxError(list.Get(2), "functions with parameters are not supported")
		}
		//
		return p.parseDeclaration(list, list.Get(1), list.Get(3), script)
	case cmd == "assert" && list.Len() == 2:
		term, err := p.parseTerm(list.Get(1))
		if err != nil {
			return err
		} else if !term.sort.IsBool() {
			return p.srcmap.SyntaxError(list.Get(1), "expected Bool term")
		}
		//
		script.Assertions = append(script.Assertions, term)
		//
		return nil
	case cmd == "declare-const" || cmd == "declare-fun" || cmd == "assert":
		return p.srcmap.SyntaxError(s, "incorrect number of arguments")
	default:
		return p.srcmap.SyntaxError(s, "unknown command")
	}
}

func (p *scriptParser) parseDeclaration(decl *sexp.List, name sexp.SExp, sort sexp.SExp,
	script *Script) *source.SyntaxError {
	//
	symbol := name.AsSymbol()
	if symbol == nil {
		return p.srcmap.SyntaxError(name, "expected constant name")
	}
	//
	s, err := p.parseSort(sort)
	if err != nil {
		return err
	}
	//
	c, derr := p.m.Declare(symbol.Value, s)
	if derr != nil {
		return p.srcmap.SyntaxError(decl, derr.Error())
	}
	//
	script.Declarations = append(script.Declarations, c)
	//
	return nil
}

func (p *scriptParser) parseSort(s sexp.SExp) (Sort, *source.SyntaxError) {
	if symbol := s.AsSymbol(); symbol != nil && symbol.Value == "Bool" {
		return BoolSort(), nil
	} else if list := s.AsList(); list != nil && list.Len() == 3 && list.MatchSymbols(2, "_", "BitVec") {
		if width, ok := parseWidth(list.Get(2)); ok {
			return BitVecSort(width), nil
		}
		//
		return Sort{}, p.srcmap.SyntaxError(list.Get(2), "invalid bitwidth")
	}
	//
	return Sort{}, p.srcmap.SyntaxError(s, "unknown sort")
}

func (p *scriptParser) parseTerm(s sexp.SExp) (*Term, *source.SyntaxError) {
	if symbol := s.AsSymbol(); symbol != nil {
		return p.parseSymbol(symbol)
	}
	//
	list := s.AsList()
	// Indexed numerals, such as (_ bv5 8)
	if list.MatchSymbols(1, "_") {
		return p.parseIndexedNumeral(list)
	} else if list.Head() == "" {
		return nil, p.srcmap.SyntaxError(s, "expected operator")
	}
	// Translate arguments
	args := make([]*Term, list.Len()-1)
	//
	for i := range args {
		arg, err := p.parseTerm(list.Get(i + 1))
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	return p.parseApplication(list, list.Head(), args)
}

func (p *scriptParser) parseSymbol(symbol *sexp.Symbol) (*Term, *source.SyntaxError) {
	var val big.Int
	//
	switch {
	case symbol.Value == "true":
		return p.m.MkBool(true), nil
	case symbol.Value == "false":
		return p.m.MkBool(false), nil
	case strings.HasPrefix(symbol.Value, "#b") && len(symbol.Value) > 2:
		if _, ok := val.SetString(symbol.Value[2:], 2); ok {
			return p.m.MkNumeral(val, uint(len(symbol.Value)-2)), nil
		}
	case strings.HasPrefix(symbol.Value, "#x") && len(symbol.Value) > 2:
		if _, ok := val.SetString(symbol.Value[2:], 16); ok {
			return p.m.MkNumeral(val, uint(4*(len(symbol.Value)-2))), nil
		}
	default:
		if c, ok := p.m.Lookup(symbol.Value); ok {
			return c, nil
		}
		//
		return nil, p.srcmap.SyntaxError(symbol, "unknown symbol")
	}
	//
	return nil, p.srcmap.SyntaxError(symbol, "invalid numeral")
}

func (p *scriptParser) parseIndexedNumeral(list *sexp.List) (*Term, *source.SyntaxError) {
	var val big.Int
	//
	if list.Len() != 3 || list.Get(1).AsSymbol() == nil {
		return nil, p.srcmap.SyntaxError(list, "invalid indexed term")
	}
	//
	digits, ok := strings.CutPrefix(list.Get(1).AsSymbol().Value, "bv")
	if _, valid := val.SetString(digits, 10); !ok || !valid || val.Sign() < 0 {
		return nil, p.srcmap.SyntaxError(list.Get(1), "invalid numeral")
	}
	//
	width, ok := parseWidth(list.Get(2))
	if !ok {
		return nil, p.srcmap.SyntaxError(list.Get(2), "invalid bitwidth")
	}
	//
	return p.m.MkNumeral(val, width), nil
}

func (p *scriptParser) parseApplication(list *sexp.List, name string, args []*Term) (*Term, *source.SyntaxError) {
	var (
		op, ok = operators[name]
		m      = p.m
	)
	//
	if !ok {
		return nil, p.srcmap.SyntaxError(list, "unknown operator")
	} else if err := checkApplication(op, args); err != nil {
		return nil, p.srcmap.SyntaxError(list, err.Error())
	}
	//
	switch op.kind {
	case NOT:
		return m.MkNot(args[0]), nil
	case AND:
		return m.MkAnd(args...), nil
	case OR:
		return m.MkOr(args...), nil
	case ITE:
		return m.MkIte(args[0], args[1], args[2]), nil
	case implies:
		// right associative
		result := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			result = m.MkImplies(args[i], result)
		}
		//
		return result, nil
	case EQ:
		// chainable
		eqs := make([]*Term, len(args)-1)
		for i := range eqs {
			eqs[i] = m.MkEq(args[i], args[i+1])
		}
		//
		return m.MkAnd(eqs...), nil
	case distinct:
		return m.MkNot(m.MkEq(args[0], args[1])), nil
	case ULE, SLE:
		return op.compare(m, args[0], args[1]), nil
	case ADD, MUL, BVAND, BVOR, BVXOR, SUB:
		// left associative
		result := args[0]
		for _, arg := range args[1:] {
			result = m.MkBinary(op.kind, result, arg)
		}
		//
		return result, nil
	default:
		return m.MkUnary(op.kind, args[0]), nil
	}
}

func parseWidth(s sexp.SExp) (uint, bool) {
	if symbol := s.AsSymbol(); symbol != nil {
		if width, err := strconv.ParseUint(symbol.Value, 10, 32); err == nil && width > 0 {
			return uint(width), true
		}
	}
	//
	return 0, false
}
