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
	"strings"
)

// Term is a node in the instruction graph, representing one operation applied
// to zero or more operand terms.  Terms are shared: several users may hold a
// reference to the same term.  Terms are created through a Program and are
// immutable after construction, except for the use-list rewiring performed by
// ReplaceAllUsesWith.
type Term struct {
	// Op is the operation this term performs.
	Op Op
	// Index is a unique, monotonically increasing number assigned at
	// creation.  Beyond diagnostics, it identifies Input and Output terms.
	Index uint
	// operands are the terms this term consumes, in order.
	operands []*Term
	// users holds one entry per operand slot of another term which
	// references this term (so a user consuming this term twice appears
	// twice).
	users []*Term
	// attributes holds operation specific side data, keyed by kind.
	attributes map[AttrKind]any
	// program owning this term.
	program *Program
}

// NumOperands returns the number of operands this term consumes.
func (t *Term) NumOperands() uint {
	return uint(len(t.operands))
}

// OperandAt returns the ith operand of this term.
func (t *Term) OperandAt(i uint) *Term {
	return t.operands[i]
}

// Operands returns the operand list of this term.  The returned slice must
// not be mutated.
func (t *Term) Operands() []*Term {
	return t.operands
}

// Users returns the terms currently referencing this term as an operand, one
// entry per referencing operand slot.  The returned slice must not be
// mutated.
func (t *Term) Users() []*Term {
	return t.users
}

// ReplaceAllUsesWith redirects every user of this term to reference repl
// instead, leaving this term with no remaining users.  This is the only
// mutation the graph permits after construction, and is safe precisely
// because term values are never changed in place.
func (t *Term) ReplaceAllUsesWith(repl *Term) {
	if t == repl {
		return
	}
	// Detach use list before rewiring
	users := t.users
	t.users = nil
	// Each entry accounts for exactly one operand slot, so rewiring the
	// first remaining occurrence per entry handles multiplicity.
	for _, user := range users {
		for i, operand := range user.operands {
			if operand == t {
				user.operands[i] = repl
				repl.users = append(repl.users, user)
				//
				break
			}
		}
	}
}

//nolint:revive
func (t *Term) String() string {
	var r strings.Builder
	//
	fmt.Fprintf(&r, "t%d = %s", t.Index, t.Op)
	//
	r.WriteString("(")
	//
	for i, operand := range t.operands {
		if i != 0 {
			r.WriteString(", ")
		}
		//
		fmt.Fprintf(&r, "t%d", operand.Index)
	}
	//
	r.WriteString(")")
	// Append operation specific payload (if any)
	switch t.Op {
	case Constant:
		fmt.Fprintf(&r, " %s", t.ConstantValue())
	case RotateLeftConst, RotateRightConst:
		fmt.Fprintf(&r, " by %d", t.Rotation())
	case Rescale:
		fmt.Fprintf(&r, " div %d", t.RescaleDivisor())
	case Encode:
		fmt.Fprintf(&r, " scale %d level %d", t.EncodeScale(), t.EncodeLevel())
	}
	//
	return r.String()
}
