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

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"
)

// Program owns the instruction graph for a single computation over encrypted
// vectors.  Terms are held in allocation order which, since every operand
// must exist before a term consuming it can be created, is always a valid
// dependency order.
type Program struct {
	// Name of the computation this program implements.
	Name string
	// VecSize is the number of plaintext slots in every vector flowing
	// through this program.
	VecSize uint
	// terms in allocation order.
	terms []*Term
	// inputs maps input names to their defining terms.
	inputs map[string]*Term
	// outputs maps output names to their defining terms.
	outputs map[string]*Term
	// nextIndex is the index assigned to the next term created.
	nextIndex uint
}

// NewProgram creates an empty program for a computation over vectors of the
// given slot count.
func NewProgram(name string, vecSize uint) *Program {
	return &Program{
		Name:    name,
		VecSize: vecSize,
		inputs:  make(map[string]*Term),
		outputs: make(map[string]*Term),
	}
}

// NewTerm creates a term applying a given operation to the given operands,
// appending it to this program.  All operands must belong to this program.
func (p *Program) NewTerm(op Op, operands ...*Term) *Term {
	if !op.Valid() {
		panic(fmt.Sprintf("invalid operation %d", uint8(op)))
	}
	//
	term := &Term{
		Op:       op,
		Index:    p.nextIndex,
		operands: operands,
		program:  p,
	}
	//
	for _, operand := range operands {
		if operand.program != p {
			panic(fmt.Sprintf("operand t%d belongs to a different program", operand.Index))
		}
		//
		operand.users = append(operand.users, term)
	}
	//
	p.nextIndex++
	p.terms = append(p.terms, term)
	//
	return term
}

// NewInput creates an Input term for a named ciphertext vector.
func (p *Program) NewInput(name string) *Term {
	term := p.NewTerm(Input)
	p.inputs[name] = term
	//
	return term
}

// NewOutput creates an Output term marking the given term as a named result
// of this program.
func (p *Program) NewOutput(name string, term *Term) *Term {
	output := p.NewTerm(Output, term)
	p.outputs[name] = output
	//
	return output
}

// NewConstant creates a Constant term holding the given plaintext value.
func (p *Program) NewConstant(value ConstantValue) *Term {
	term := p.NewTerm(Constant)
	term.SetAttribute(AttrConstantValue, value)
	//
	return term
}

// NewRotation creates a fixed-rotation term.  The operation must be one of
// RotateLeftConst or RotateRightConst.
func (p *Program) NewRotation(op Op, operand *Term, offset int32) *Term {
	if op != RotateLeftConst && op != RotateRightConst {
		panic(fmt.Sprintf("%s is not a fixed rotation", op))
	}
	//
	term := p.NewTerm(op, operand)
	term.SetAttribute(AttrRotation, offset)
	//
	return term
}

// NewRescale creates a Rescale term dividing the operand's scale by a
// constant divisor.
func (p *Program) NewRescale(operand *Term, divisor uint32) *Term {
	term := p.NewTerm(Rescale, operand)
	term.SetAttribute(AttrRescaleDivisor, divisor)
	//
	return term
}

// NewEncode creates an Encode term fixing the scale and level at which its
// plaintext operand is encoded.
func (p *Program) NewEncode(operand *Term, scale uint32, level uint32) *Term {
	term := p.NewTerm(Encode, operand)
	term.SetAttribute(AttrEncodeScale, scale)
	term.SetAttribute(AttrEncodeLevel, level)
	//
	return term
}

// Terms returns the terms of this program in allocation order.  The returned
// slice must not be mutated.
func (p *Program) Terms() []*Term {
	return p.terms
}

// Size returns the number of terms currently held by this program.
func (p *Program) Size() uint {
	return uint(len(p.terms))
}

// Input returns the input term registered under a given name (if any).
func (p *Program) Input(name string) (*Term, bool) {
	term, ok := p.inputs[name]
	return term, ok
}

// Output returns the output term registered under a given name (if any).
func (p *Program) Output(name string) (*Term, bool) {
	term, ok := p.outputs[name]
	return term, ok
}

// InputNames returns the names of all program inputs, sorted for determinism.
func (p *Program) InputNames() []string {
	return sortedKeys(p.inputs)
}

// OutputNames returns the names of all program outputs, sorted for
// determinism.
func (p *Program) OutputNames() []string {
	return sortedKeys(p.outputs)
}

// Forward applies a function to every term of this program in dependency
// order, such that each term's operands are visited strictly before the term
// itself.  This ordering is a hard precondition of the rewriting passes.
func (p *Program) Forward(fn func(*Term)) {
	for _, term := range p.terms {
		fn(term)
	}
}

// RemoveDeadTerms sweeps away all terms unreachable from the program outputs,
// returning the number removed.  Rewriting passes leave eliminated terms
// behind with empty use lists; this is the collection policy which disposes
// of them.
func (p *Program) RemoveDeadTerms() uint {
	marks := bitset.New(p.nextIndex)
	// Mark all terms reachable from an output
	for _, name := range p.OutputNames() {
		markLive(p.outputs[name], marks)
	}
	// Sweep unmarked terms, preserving order
	live := make([]*Term, 0, len(p.terms))
	//
	for _, term := range p.terms {
		if marks.Test(term.Index) {
			live = append(live, term)
		}
	}
	//
	removed := uint(len(p.terms) - len(live))
	p.terms = live
	// Drop dead users from surviving use lists
	for _, term := range p.terms {
		term.users = slices.DeleteFunc(term.users, func(u *Term) bool {
			return !marks.Test(u.Index)
		})
	}
	// Drop dangling input registrations
	for name, term := range p.inputs {
		if !marks.Test(term.Index) {
			delete(p.inputs, name)
		}
	}
	//
	if removed > 0 {
		log.Debugf("removed %d dead terms from program %s", removed, p.Name)
	}
	//
	return removed
}

func markLive(term *Term, marks *bitset.BitSet) {
	stack := []*Term{term}
	//
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		//
		if marks.Test(t.Index) {
			continue
		}
		//
		marks.Set(t.Index)
		stack = append(stack, t.operands...)
	}
}

func sortedKeys(m map[string]*Term) []string {
	var keys []string
	//
	for k := range m {
		keys = append(keys, k)
	}
	// Sort for determinism
	slices.Sort(keys)
	//
	return keys
}
