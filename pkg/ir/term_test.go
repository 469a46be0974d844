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
package ir

import "testing"

func Test_Term_01(t *testing.T) {
	// Use lists track one entry per operand slot
	p := NewProgram("test", 4)
	x := p.NewInput("x")
	add := p.NewTerm(Add, x, x)
	//
	if len(x.Users()) != 2 {
		t.Errorf("expected 2 uses of t%d, got %d", x.Index, len(x.Users()))
	}
	//
	if add.NumOperands() != 2 || add.OperandAt(0) != x || add.OperandAt(1) != x {
		t.Errorf("unexpected operands for %s", add)
	}
}

func Test_Term_02(t *testing.T) {
	// Redirection moves every use, including repeated operands
	p := NewProgram("test", 4)
	x := p.NewInput("x")
	y := p.NewInput("y")
	add := p.NewTerm(Add, x, x)
	mul := p.NewTerm(Mul, x, y)
	//
	x.ReplaceAllUsesWith(y)
	//
	if len(x.Users()) != 0 {
		t.Errorf("expected no remaining uses of t%d", x.Index)
	}
	//
	if add.OperandAt(0) != y || add.OperandAt(1) != y {
		t.Errorf("expected both operands of %s redirected", add)
	}
	//
	if mul.OperandAt(0) != y {
		t.Errorf("expected first operand of %s redirected", mul)
	}
	// y now used twice by add and twice by mul
	if len(y.Users()) != 4 {
		t.Errorf("expected 4 uses of t%d, got %d", y.Index, len(y.Users()))
	}
}

func Test_Term_03(t *testing.T) {
	// Self-redirection is a no-op
	p := NewProgram("test", 4)
	x := p.NewInput("x")
	p.NewTerm(Negate, x)
	//
	x.ReplaceAllUsesWith(x)
	//
	if len(x.Users()) != 1 {
		t.Errorf("expected 1 use of t%d, got %d", x.Index, len(x.Users()))
	}
}

func Test_Term_04(t *testing.T) {
	// Dead term sweep keeps exactly what the outputs reach
	p := NewProgram("test", 4)
	x := p.NewInput("x")
	add := p.NewTerm(Add, x, x)
	p.NewOutput("r", add)
	// Orphan subgraph
	mul := p.NewTerm(Mul, x, x)
	p.NewTerm(Negate, mul)
	//
	removed := p.RemoveDeadTerms()
	//
	if removed != 2 {
		t.Errorf("expected 2 removed terms, got %d", removed)
	}
	//
	if p.Size() != 3 {
		t.Errorf("expected 3 remaining terms, got %d", p.Size())
	}
	// Dead users must be dropped from surviving use lists
	for _, u := range x.Users() {
		if u == mul {
			t.Errorf("expected dead user t%d dropped from t%d", mul.Index, x.Index)
		}
	}
}

func Test_Term_05(t *testing.T) {
	// Inputs unreachable from any output are swept, and deregistered
	p := NewProgram("test", 4)
	x := p.NewInput("x")
	p.NewInput("unused")
	p.NewOutput("r", p.NewTerm(Negate, x))
	//
	p.RemoveDeadTerms()
	//
	if _, ok := p.Input("unused"); ok {
		t.Errorf("expected unused input deregistered")
	}
	//
	if _, ok := p.Input("x"); !ok {
		t.Errorf("expected live input retained")
	}
}
