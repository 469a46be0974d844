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

// Package cse provides common subexpression elimination over instruction
// graphs, together with the semantic term equality and hashing it relies on.
package cse

import (
	"fmt"

	"github.com/fhelab/go-fhec/pkg/ir"
	"github.com/fhelab/go-fhec/pkg/util/collection/hash"
)

// Equivalent checks whether two terms represent the same subexpression.
// Operands are compared by identity, not recursively: this is always safe,
// but only complete during a forward traversal where any duplicates among the
// operands have already been collapsed to one representative.
func Equivalent(lhs *ir.Term, rhs *ir.Term) bool {
	if lhs.Op != rhs.Op || lhs.NumOperands() != rhs.NumOperands() {
		return false
	}
	//
	for i := uint(0); i < lhs.NumOperands(); i++ {
		if lhs.OperandAt(i) != rhs.OperandAt(i) {
			return false
		}
	}
	//
	switch lhs.Op {
	case ir.Undef:
		// Semantics of undef terms are not guaranteed stable, so never
		// assume equality.
		return false
	case ir.Input, ir.Output:
		return lhs.Index == rhs.Index
	case ir.Constant:
		return ir.EqualConstant(lhs.ConstantValue(), rhs.ConstantValue())
	case ir.Negate, ir.Add, ir.Sub, ir.Mul, ir.Relinearize, ir.ModSwitch:
		return true
	case ir.RotateLeftConst, ir.RotateRightConst:
		return lhs.Rotation() == rhs.Rotation()
	case ir.Rescale:
		return lhs.RescaleDivisor() == rhs.RescaleDivisor()
	case ir.Encode:
		return lhs.EncodeScale() == rhs.EncodeScale() &&
			lhs.EncodeLevel() == rhs.EncodeLevel()
	}
	// An op unknown here means the operation set and this pass have
	// drifted out of sync, which would make equality unsound.
	panic(fmt.Sprintf("unhandled operation %s", lhs.Op))
}

// SemanticHash produces a hashcode matching Equivalent: equal terms always
// have equal hashcodes, while unequal terms may still collide (the equality
// check is the tie-breaker).
func SemanticHash(term *ir.Term) uint64 {
	h := hash.Seed()
	h = hash.Combine(h, uint64(term.Op))
	// Operand identity, via the unique term index
	for _, operand := range term.Operands() {
		h = hash.Combine(h, uint64(operand.Index))
	}
	//
	switch term.Op {
	case ir.Input, ir.Output:
		h = hash.Combine(h, uint64(term.Index))
	case ir.Constant:
		h = hash.Combine(h, term.ConstantValue().Hash())
	case ir.Undef, ir.Negate, ir.Add, ir.Sub, ir.Mul, ir.Relinearize, ir.ModSwitch:
		// No payload
	case ir.RotateLeftConst, ir.RotateRightConst:
		h = hash.Combine(h, uint64(uint32(term.Rotation())))
	case ir.Rescale:
		h = hash.Combine(h, uint64(term.RescaleDivisor()))
	case ir.Encode:
		h = hash.Combine(h, uint64(term.EncodeScale()))
		h = hash.Combine(h, uint64(term.EncodeLevel()))
	default:
		panic(fmt.Sprintf("unhandled operation %s", term.Op))
	}
	//
	return h
}

// termKey adapts a term to the hashset key interface using the semantic
// equality and hash functions.
type termKey struct {
	term *ir.Term
}

var _ hash.Hasher[termKey] = termKey{}

// Equals implements hash.Hasher.
func (k termKey) Equals(other termKey) bool {
	return Equivalent(k.term, other.term)
}

// Hash implements hash.Hasher.
func (k termKey) Hash() uint64 {
	return SemanticHash(k.term)
}
