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

// Package msg defines the wire representation of programs and constant
// values, used for persistence and cross-process transfer.  Messages carry no
// behaviour; the conversion to and from graph objects lives with the graph.
package msg

import "github.com/segmentio/encoding/json"

// ConstantValue is the wire representation of a plaintext constant.  Exactly
// one of the two shapes is used:
//
//   - dense: Values holds the raw (possibly sub-periodic) stored buffer, and
//     SparseIndices is absent;
//   - sparse: SparseIndices and Values are parallel sequences of equal
//     length, sorted by index, with no duplicates and no zero values.
//
// A dense buffer is never empty, so a message with no values and no indices
// is the (valid) empty sparse constant.
type ConstantValue struct {
	// Size is the logical period length.
	Size uint64 `json:"size"`
	// Values holds the stored buffer (dense) or the entry values (sparse).
	Values []float64 `json:"values,omitempty"`
	// SparseIndices holds the entry indices of a sparse constant, each in
	// [0, Size).
	SparseIndices []uint32 `json:"sparse_indices,omitempty"`
}

// Sparse checks which of the two shapes this message uses.
func (p *ConstantValue) Sparse() bool {
	return len(p.SparseIndices) > 0 || len(p.Values) == 0
}

// Term is the wire representation of one instruction graph node.  Operands
// reference other terms by their position in the enclosing program's term
// table, which preserves dependency order.
type Term struct {
	// Op is the operation code of the term.
	Op uint8 `json:"op"`
	// Operands are positions of this term's operands within the program.
	Operands []uint64 `json:"operands,omitempty"`
	// Constant payload, for constant terms only.
	Constant *ConstantValue `json:"constant,omitempty"`
	// Rotation offset, for fixed-rotation terms only.
	Rotation *int32 `json:"rotation,omitempty"`
	// RescaleDivisor, for rescale terms only.
	RescaleDivisor *uint32 `json:"rescale_divisor,omitempty"`
	// EncodeScale, for encode terms only.
	EncodeScale *uint32 `json:"encode_scale,omitempty"`
	// EncodeLevel, for encode terms only.
	EncodeLevel *uint32 `json:"encode_level,omitempty"`
}

// Program is the wire representation of a whole instruction graph.
type Program struct {
	// Name of the computation.
	Name string `json:"name"`
	// VecSize is the slot count of every vector in the program.
	VecSize uint64 `json:"vec_size"`
	// Terms in dependency order (operands strictly before users).
	Terms []Term `json:"terms"`
	// Inputs maps input names to term positions.
	Inputs map[string]uint64 `json:"inputs,omitempty"`
	// Outputs maps output names to term positions.
	Outputs map[string]uint64 `json:"outputs,omitempty"`
}

// ToJsonBytes converts this program into an array of JSON formatted bytes.
func (p *Program) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}

// ProgramFromJsonBytes attempts to parse a program from an array of JSON
// formatted bytes.
func ProgramFromJsonBytes(data []byte) (*Program, error) {
	var program Program
	//
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, err
	}
	//
	return &program, nil
}
