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

import "fmt"

// Op identifies the operation performed by a term in the instruction graph.
type Op uint8

const (
	// Undef is a placeholder operation whose semantics are not guaranteed
	// stable.  Undef terms are never considered semantically equal to
	// anything, including other Undef terms.
	Undef Op = iota
	// Input introduces a named ciphertext vector supplied by the caller.
	Input
	// Output marks a term whose value is returned to the caller.
	Output
	// Constant introduces a plaintext vector, held as a ConstantValue
	// attribute.
	Constant
	// Negate computes the elementwise negation of its operand.
	Negate
	// Add computes the elementwise sum of its two operands.
	Add
	// Sub computes the elementwise difference of its two operands.
	Sub
	// Mul computes the elementwise product of its two operands.
	Mul
	// RotateLeftConst rotates the slots of its operand left by a constant
	// amount, held as a rotation attribute.
	RotateLeftConst
	// RotateRightConst rotates the slots of its operand right by a constant
	// amount, held as a rotation attribute.
	RotateRightConst
	// Relinearize reduces the ciphertext size of its operand after a
	// multiplication.
	Relinearize
	// ModSwitch drops one level from the modulus chain of its operand.
	ModSwitch
	// Rescale divides the scale of its operand by a constant divisor, held
	// as a rescale divisor attribute.
	Rescale
	// Encode encodes a plaintext operand at a given scale and level, both
	// held as attributes.
	Encode
)

// nOps is the number of valid operation kinds.
const nOps = uint8(Encode) + 1

var opNames = [nOps]string{
	"undef", "input", "output", "constant", "negate", "add", "sub", "mul",
	"rotate_left", "rotate_right", "relinearize", "mod_switch", "rescale",
	"encode",
}

// String returns the printable name of this operation.
func (op Op) String() string {
	if uint8(op) < nOps {
		return opNames[op]
	}
	//
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Valid checks whether this is a recognized operation kind.
func (op Op) Valid() bool {
	return uint8(op) < nOps
}
