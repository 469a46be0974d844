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

	"github.com/fhelab/go-fhec/pkg/msg"
)

// SerializeConstant converts a constant value into its wire representation.
// The conversion is exact: the physical variant and the raw stored entries
// are preserved, not just the logical pattern.
func SerializeConstant(value ConstantValue) *msg.ConstantValue {
	switch v := value.(type) {
	case *DenseConstantValue:
		return &msg.ConstantValue{
			Size:   uint64(v.size),
			Values: slices.Clone(v.values),
		}
	case *SparseConstantValue:
		m := &msg.ConstantValue{Size: uint64(v.size)}
		//
		for _, e := range v.entries {
			m.SparseIndices = append(m.SparseIndices, e.Index)
			m.Values = append(m.Values, e.Value)
		}
		//
		return m
	}
	// Unreachable for the closed variant set
	panic(fmt.Sprintf("unknown constant value representation %T", value))
}

// DeserializeConstant reconstructs a constant value from its wire
// representation, yielding the same variant with the original size and
// entries.
func DeserializeConstant(m *msg.ConstantValue) (ConstantValue, error) {
	if !m.Sparse() {
		return NewDenseConstantValue(uint(m.Size), m.Values)
	}
	//
	if len(m.SparseIndices) != len(m.Values) {
		return nil, fmt.Errorf("sparse constant has %d indices but %d values",
			len(m.SparseIndices), len(m.Values))
	}
	//
	entries := make([]SparseEntry, len(m.SparseIndices))
	//
	for i, index := range m.SparseIndices {
		entries[i] = SparseEntry{index, m.Values[i]}
	}
	//
	return NewSparseConstantValue(uint(m.Size), entries)
}

// SerializeProgram converts a program into its wire representation.  Operand
// references become positions in the serialized term table, which follows
// allocation order and therefore preserves dependency order.
func SerializeProgram(p *Program) *msg.Program {
	var (
		positions = make(map[*Term]uint64, len(p.terms))
		program   = msg.Program{
			Name:    p.Name,
			VecSize: uint64(p.VecSize),
			Terms:   make([]msg.Term, len(p.terms)),
		}
	)
	//
	for i, term := range p.terms {
		positions[term] = uint64(i)
		program.Terms[i] = serializeTerm(term, positions)
	}
	//
	if len(p.inputs) > 0 {
		program.Inputs = make(map[string]uint64, len(p.inputs))
	}
	//
	for name, term := range p.inputs {
		program.Inputs[name] = positions[term]
	}
	//
	if len(p.outputs) > 0 {
		program.Outputs = make(map[string]uint64, len(p.outputs))
	}
	//
	for name, term := range p.outputs {
		program.Outputs[name] = positions[term]
	}
	//
	return &program
}

func serializeTerm(term *Term, positions map[*Term]uint64) msg.Term {
	m := msg.Term{Op: uint8(term.Op)}
	//
	for _, operand := range term.operands {
		m.Operands = append(m.Operands, positions[operand])
	}
	//
	switch term.Op {
	case Constant:
		m.Constant = SerializeConstant(term.ConstantValue())
	case RotateLeftConst, RotateRightConst:
		rotation := term.Rotation()
		m.Rotation = &rotation
	case Rescale:
		divisor := term.RescaleDivisor()
		m.RescaleDivisor = &divisor
	case Encode:
		scale, level := term.EncodeScale(), term.EncodeLevel()
		m.EncodeScale = &scale
		m.EncodeLevel = &level
	}
	//
	return m
}

// DeserializeProgram reconstructs a program from its wire representation.
// Term indices are reassigned (they are not part of the wire format), but
// dependency order, attributes and the input/output registrations survive
// exactly.
func DeserializeProgram(m *msg.Program) (*Program, error) {
	program := NewProgram(m.Name, uint(m.VecSize))
	terms := make([]*Term, len(m.Terms))
	//
	for i, mt := range m.Terms {
		term, err := deserializeTerm(program, &mt, terms[:i])
		//
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		//
		terms[i] = term
	}
	//
	if err := registerNames(program.inputs, m.Inputs, terms, Input); err != nil {
		return nil, err
	}
	//
	if err := registerNames(program.outputs, m.Outputs, terms, Output); err != nil {
		return nil, err
	}
	//
	return program, nil
}

func deserializeTerm(program *Program, m *msg.Term, prior []*Term) (*Term, error) {
	op := Op(m.Op)
	//
	if !op.Valid() {
		return nil, fmt.Errorf("unknown operation code %d", m.Op)
	}
	//
	operands := make([]*Term, len(m.Operands))
	//
	for i, pos := range m.Operands {
		// Operands must precede their users in the term table
		if pos >= uint64(len(prior)) {
			return nil, fmt.Errorf("operand position %d out of order", pos)
		}
		//
		operands[i] = prior[pos]
	}
	//
	term := program.NewTerm(op, operands...)
	//
	switch op {
	case Constant:
		if m.Constant == nil {
			return nil, fmt.Errorf("constant term missing payload")
		}
		//
		value, err := DeserializeConstant(m.Constant)
		if err != nil {
			return nil, err
		}
		//
		term.SetAttribute(AttrConstantValue, value)
	case RotateLeftConst, RotateRightConst:
		if m.Rotation == nil {
			return nil, fmt.Errorf("rotation term missing offset")
		}
		//
		term.SetAttribute(AttrRotation, *m.Rotation)
	case Rescale:
		if m.RescaleDivisor == nil {
			return nil, fmt.Errorf("rescale term missing divisor")
		}
		//
		term.SetAttribute(AttrRescaleDivisor, *m.RescaleDivisor)
	case Encode:
		if m.EncodeScale == nil || m.EncodeLevel == nil {
			return nil, fmt.Errorf("encode term missing scale or level")
		}
		//
		term.SetAttribute(AttrEncodeScale, *m.EncodeScale)
		term.SetAttribute(AttrEncodeLevel, *m.EncodeLevel)
	}
	//
	return term, nil
}

func registerNames(dst map[string]*Term, src map[string]uint64, terms []*Term, op Op) error {
	for name, pos := range src {
		if pos >= uint64(len(terms)) {
			return fmt.Errorf("%s %q references position %d out of range", op, name, pos)
		} else if terms[pos].Op != op {
			return fmt.Errorf("%s %q references a %s term", op, name, terms[pos].Op)
		}
		//
		dst[name] = terms[pos]
	}
	//
	return nil
}
