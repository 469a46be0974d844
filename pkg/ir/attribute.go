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

// AttrKind keys a piece of typed side data attached to a term.  Which kinds
// are present on a term is determined by its operation.
type AttrKind uint8

const (
	// AttrConstantValue holds the ConstantValue payload of a Constant term.
	AttrConstantValue AttrKind = iota
	// AttrRotation holds the int32 offset of a fixed-rotation term.
	AttrRotation
	// AttrRescaleDivisor holds the uint32 divisor of a Rescale term.
	AttrRescaleDivisor
	// AttrEncodeScale holds the uint32 scale of an Encode term.
	AttrEncodeScale
	// AttrEncodeLevel holds the uint32 level of an Encode term.
	AttrEncodeLevel
)

// GetAttribute fetches an attribute of a given kind from a term, returning
// false if the term has no such attribute (or it has an unexpected type).
func GetAttribute[T any](term *Term, kind AttrKind) (T, bool) {
	var empty T
	//
	if raw, ok := term.attributes[kind]; ok {
		val, ok := raw.(T)
		return val, ok
	}
	//
	return empty, false
}

// SetAttribute attaches an attribute of a given kind to this term, replacing
// any previous value of that kind.
func (t *Term) SetAttribute(kind AttrKind, value any) {
	if t.attributes == nil {
		t.attributes = make(map[AttrKind]any, 1)
	}
	//
	t.attributes[kind] = value
}

// ConstantValue returns the plaintext payload of a Constant term.
func (t *Term) ConstantValue() ConstantValue {
	return mustAttribute[ConstantValue](t, AttrConstantValue)
}

// Rotation returns the offset of a fixed-rotation term.
func (t *Term) Rotation() int32 {
	return mustAttribute[int32](t, AttrRotation)
}

// RescaleDivisor returns the divisor of a Rescale term.
func (t *Term) RescaleDivisor() uint32 {
	return mustAttribute[uint32](t, AttrRescaleDivisor)
}

// EncodeScale returns the scale of an Encode term.
func (t *Term) EncodeScale() uint32 {
	return mustAttribute[uint32](t, AttrEncodeScale)
}

// EncodeLevel returns the level of an Encode term.
func (t *Term) EncodeLevel() uint32 {
	return mustAttribute[uint32](t, AttrEncodeLevel)
}

// A term missing an attribute its operation requires indicates graph
// construction has gone wrong, hence this is fatal.
func mustAttribute[T any](term *Term, kind AttrKind) T {
	val, ok := GetAttribute[T](term, kind)
	//
	if !ok {
		panic(fmt.Sprintf("%s term %d missing attribute %d", term.Op, term.Index, kind))
	}
	//
	return val
}
