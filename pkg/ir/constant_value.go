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
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/fhelab/go-fhec/pkg/util/collection/hash"
)

// ConstantValue is an immutable plaintext vector of some logical period
// (its size), stored either densely or sparsely.  Two values denoting the
// same logical size-periodic sequence always compare equal and hash equal,
// regardless of physical representation.  Values may be shared read-only by
// any number of terms.
type ConstantValue interface {
	// Size returns the logical period of this value: the minimal number of
	// slots needed to reconstruct it at any valid slot count.
	Size() uint
	// Expand materializes this value across a given number of slots, which
	// must be a multiple of (and no less than) its size.  The returned
	// buffer may alias internal storage and must not be mutated.
	Expand(slots uint) ([]float64, error)
	// IsZero checks whether every logical entry of this value is zero.
	IsZero() bool
	// Hash returns a representation-invariant hashcode over the logical
	// pattern of this value.
	Hash() uint64
	// Equals checks whether this value denotes the same logical pattern as
	// another, regardless of either representation.
	Equals(ConstantValue) bool
	//
	String() string
}

// EqualConstant checks whether two constant values denote the same logical
// size-periodic pattern.  The variant set is closed, so equality is a single
// function dispatching on both representations rather than a method pair.
func EqualConstant(a ConstantValue, b ConstantValue) bool {
	switch lhs := a.(type) {
	case *DenseConstantValue:
		switch rhs := b.(type) {
		case *DenseConstantValue:
			return equalDenseDense(lhs, rhs)
		case *SparseConstantValue:
			return equalDenseSparse(lhs, rhs)
		}
	case *SparseConstantValue:
		switch rhs := b.(type) {
		case *DenseConstantValue:
			return equalDenseSparse(rhs, lhs)
		case *SparseConstantValue:
			return equalSparseSparse(lhs, rhs)
		}
	}
	// Unreachable for the closed variant set
	panic(fmt.Sprintf("unknown constant value representation %T / %T", a, b))
}

func validateSlots(size uint, slots uint) error {
	if slots < size {
		return errors.New("slots must be at least size of constant")
	} else if slots%size != 0 {
		return errors.New("size must exactly divide slots")
	}
	//
	return nil
}

// ============================================================================
// Dense
// ============================================================================

// DenseConstantValue stores a constant as an explicit buffer of values.  The
// buffer may be a strict sub-period of the logical size, in which case it
// tiles to fill the full period.
type DenseConstantValue struct {
	size   uint
	values []float64
}

var _ ConstantValue = &DenseConstantValue{}

// NewDenseConstantValue creates a dense constant of a given logical size from
// a buffer whose length must exactly divide that size.
func NewDenseConstantValue(size uint, values []float64) (*DenseConstantValue, error) {
	if size == 0 {
		return nil, errors.New("constant requires a nonzero size")
	} else if len(values) == 0 {
		return nil, errors.New("dense constant requires at least one value")
	} else if size%uint(len(values)) != 0 {
		return nil, errors.New("dense constant buffer length must exactly divide size")
	}
	//
	return &DenseConstantValue{size, slices.Clone(values)}, nil
}

// Size implements ConstantValue, returning the logical period.
func (c *DenseConstantValue) Size() uint {
	return c.size
}

// Expand implements ConstantValue.  When the stored buffer is already exactly
// the requested length it is returned without copying.
func (c *DenseConstantValue) Expand(slots uint) ([]float64, error) {
	if err := validateSlots(c.size, slots); err != nil {
		return nil, err
	}
	//
	if uint(len(c.values)) == slots {
		return c.values, nil
	}
	// Tile buffer across all slots
	buf := make([]float64, 0, slots)
	//
	for r := slots / uint(len(c.values)); r > 0; r-- {
		buf = append(buf, c.values...)
	}
	//
	return buf, nil
}

// IsZero implements ConstantValue.
func (c *DenseConstantValue) IsZero() bool {
	for _, v := range c.values {
		if v != 0 {
			return false
		}
	}
	//
	return true
}

// Hash implements ConstantValue via the alternating run-length scheme.  The
// buffer is indexed modulo its length, so a sub-periodic buffer hashes
// exactly as its full logical expansion.
func (c *DenseConstantValue) Hash() uint64 {
	rle := newRunLengthHasher()
	//
	for i := uint(0); i < c.size; i++ {
		rle.Value(c.values[i%uint(len(c.values))])
	}
	//
	return rle.Sum()
}

// Equals implements ConstantValue.
func (c *DenseConstantValue) Equals(other ConstantValue) bool {
	return EqualConstant(c, other)
}

//nolint:revive
func (c *DenseConstantValue) String() string {
	var r strings.Builder
	//
	fmt.Fprintf(&r, "dense<%d>[", c.size)
	//
	for i, v := range c.values {
		if i != 0 {
			r.WriteString(" ")
		}
		//
		fmt.Fprintf(&r, "%g", v)
	}
	//
	r.WriteString("]")
	//
	return r.String()
}

// ============================================================================
// Sparse
// ============================================================================

// SparseEntry pairs a slot index with its (necessarily nonzero) value.
type SparseEntry struct {
	Index uint32
	Value float64
}

// SparseConstantValue stores a constant as a sorted sequence of unique
// (index, value) pairs, with all other slots implicitly zero.  Zero-valued
// entries are never stored; IsZero depends on this.
type SparseConstantValue struct {
	size    uint
	entries []SparseEntry
}

var _ ConstantValue = &SparseConstantValue{}

// NewSparseConstantValue creates a sparse constant of a given logical size.
// Zero-valued entries are filtered out, and the remainder sorted by index.
// Duplicate or out-of-range indices are rejected.
func NewSparseConstantValue(size uint, entries []SparseEntry) (*SparseConstantValue, error) {
	var kept []SparseEntry
	//
	if size == 0 {
		return nil, errors.New("constant requires a nonzero size")
	}
	//
	for _, e := range entries {
		if uint(e.Index) >= size {
			return nil, fmt.Errorf("sparse constant index %d out of range [0,%d)", e.Index, size)
		} else if e.Value != 0 {
			kept = append(kept, e)
		}
	}
	// Remaining operations depend on the entries being sorted
	slices.SortFunc(kept, func(a, b SparseEntry) int {
		return cmp.Compare(a.Index, b.Index)
	})
	//
	for i := 1; i < len(kept); i++ {
		if kept[i].Index == kept[i-1].Index {
			return nil, fmt.Errorf("sparse constant has duplicate index %d", kept[i].Index)
		}
	}
	//
	return &SparseConstantValue{size, kept}, nil
}

// Size implements ConstantValue, returning the logical period.
func (c *SparseConstantValue) Size() uint {
	return c.size
}

// Expand implements ConstantValue, always materializing a fresh buffer.
func (c *SparseConstantValue) Expand(slots uint) ([]float64, error) {
	if err := validateSlots(c.size, slots); err != nil {
		return nil, err
	}
	//
	buf := make([]float64, slots)
	//
	for _, e := range c.entries {
		for base := uint(0); base < slots; base += c.size {
			buf[base+uint(e.Index)] = e.Value
		}
	}
	//
	return buf, nil
}

// IsZero implements ConstantValue.  This reduces to an emptiness check since
// zero entries are filtered at construction.
func (c *SparseConstantValue) IsZero() bool {
	return len(c.entries) == 0
}

// Hash implements ConstantValue via the alternating run-length scheme, using
// the gaps between sorted entries as the zero runs.
func (c *SparseConstantValue) Hash() uint64 {
	var (
		rle  = newRunLengthHasher()
		next uint
	)
	//
	for _, e := range c.entries {
		rle.Skip(uint(e.Index) - next)
		rle.Value(e.Value)
		//
		next = uint(e.Index) + 1
	}
	//
	rle.Skip(c.size - next)
	//
	return rle.Sum()
}

// Equals implements ConstantValue.
func (c *SparseConstantValue) Equals(other ConstantValue) bool {
	return EqualConstant(c, other)
}

//nolint:revive
func (c *SparseConstantValue) String() string {
	var r strings.Builder
	//
	fmt.Fprintf(&r, "sparse<%d>{", c.size)
	//
	for i, e := range c.entries {
		if i != 0 {
			r.WriteString(" ")
		}
		//
		fmt.Fprintf(&r, "%d:%g", e.Index, e.Value)
	}
	//
	r.WriteString("}")
	//
	return r.String()
}

// ============================================================================
// Equality
// ============================================================================

// Equality always compares the full logical size-length pattern rather than
// raw buffers, since physically different buffers (e.g. a sub-period versus
// its expansion) can denote the same value.

func equalDenseDense(a *DenseConstantValue, b *DenseConstantValue) bool {
	if a.size != b.size {
		return false
	} else if len(a.values) == len(b.values) {
		return slices.Equal(a.values, b.values)
	}
	//
	for i := uint(0); i < a.size; i++ {
		if a.values[i%uint(len(a.values))] != b.values[i%uint(len(b.values))] {
			return false
		}
	}
	//
	return true
}

func equalDenseSparse(a *DenseConstantValue, b *SparseConstantValue) bool {
	if a.size != b.size {
		return false
	}
	// Walk the full period, tracking the next sparse entry
	cursor := 0
	//
	for i := uint(0); i < a.size; i++ {
		expected := float64(0)
		//
		if cursor < len(b.entries) && uint(b.entries[cursor].Index) == i {
			expected = b.entries[cursor].Value
			cursor++
		}
		//
		if a.values[i%uint(len(a.values))] != expected {
			return false
		}
	}
	//
	return true
}

func equalSparseSparse(a *SparseConstantValue, b *SparseConstantValue) bool {
	// Entries are sorted, unique and nonzero, so the logical patterns match
	// exactly when the entries do.
	return a.size == b.size && slices.Equal(a.entries, b.entries)
}

// ============================================================================
// Run-length hashing
// ============================================================================

// runLengthHasher hashes a logical slot sequence as alternating (zero-run,
// nonzero-value) pairs.  Both representations reduce their pattern to the
// same pair sequence, which is what makes the hash representation-invariant.
type runLengthHasher struct {
	hash  uint64
	zeros uint64
}

func newRunLengthHasher() runLengthHasher {
	return runLengthHasher{hash: hash.Seed()}
}

// Value folds in a single slot value, flushing any pending zero run first.
func (p *runLengthHasher) Value(v float64) {
	if v == 0 {
		p.zeros++
		return
	}
	//
	p.flush()
	p.hash = hash.Combine(p.hash, math.Float64bits(v))
}

// Skip folds in a run of n zero slots.
func (p *runLengthHasher) Skip(n uint) {
	p.zeros += uint64(n)
}

// Sum flushes any trailing zero run and returns the hashcode.
func (p *runLengthHasher) Sum() uint64 {
	p.flush()
	return p.hash
}

func (p *runLengthHasher) flush() {
	if p.zeros > 0 {
		p.hash = hash.Combine(p.hash, p.zeros)
		p.zeros = 0
	}
}
