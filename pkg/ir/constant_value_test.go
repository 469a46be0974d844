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
	"slices"
	"testing"
)

func Test_Constant_01(t *testing.T) {
	// Identical dense buffers
	a := dense(t, 4, 1, 2, 1, 2)
	b := dense(t, 4, 1, 2, 1, 2)
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_02(t *testing.T) {
	// Sub-periodic buffer versus its expansion
	a := dense(t, 4, 1, 2)
	b := dense(t, 4, 1, 2, 1, 2)
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_03(t *testing.T) {
	// Dense versus sparse denoting the same pattern
	a := dense(t, 4, 0, 5, 0, 0)
	b := sparse(t, 4, SparseEntry{1, 5})
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_04(t *testing.T) {
	// Dense zero versus sparse zero
	a := dense(t, 4, 0, 0, 0, 0)
	b := sparse(t, 4)
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_05(t *testing.T) {
	// Unequal values
	check_ConstantNotEqual(t, dense(t, 4, 1, 2, 1, 2), dense(t, 8, 1, 2, 1, 2))
	check_ConstantNotEqual(t, dense(t, 4, 1, 2, 1, 2), dense(t, 4, 1, 2, 1, 3))
	// Dense nonzero position not covered by any sparse entry
	check_ConstantNotEqual(t, dense(t, 4, 1, 0, 0, 0), sparse(t, 4))
	check_ConstantNotEqual(t, sparse(t, 4, SparseEntry{1, 5}), sparse(t, 4, SparseEntry{2, 5}))
}

func Test_Constant_06(t *testing.T) {
	// Zero test across representations
	checks := []struct {
		value ConstantValue
		zero  bool
	}{
		{sparse(t, 4), true},
		{dense(t, 4, 0, 0, 0, 0), true},
		{dense(t, 4, 0), true},
		{dense(t, 4, 0, 1, 0, 0), false},
		{sparse(t, 4, SparseEntry{1, 5}), false},
		// Explicit zero entries are filtered at construction
		{sparse(t, 4, SparseEntry{1, 0}, SparseEntry{2, 0}), true},
	}
	//
	for i, c := range checks {
		if c.value.IsZero() != c.zero {
			t.Errorf("check %d: expected IsZero()==%t for %s", i, c.zero, c.value)
		}
	}
}

func Test_Constant_07(t *testing.T) {
	// Dense expansion law
	check_Expand(t, dense(t, 4, 1, 2, 1, 2), 4, []float64{1, 2, 1, 2})
	check_Expand(t, dense(t, 4, 1, 2, 1, 2), 8, []float64{1, 2, 1, 2, 1, 2, 1, 2})
	check_Expand(t, dense(t, 4, 1, 2), 4, []float64{1, 2, 1, 2})
}

func Test_Constant_08(t *testing.T) {
	// Sparse expansion law
	check_Expand(t, sparse(t, 4, SparseEntry{1, 5}), 8, []float64{0, 5, 0, 0, 0, 5, 0, 0})
	check_Expand(t, sparse(t, 4), 4, []float64{0, 0, 0, 0})
}

func Test_Constant_09(t *testing.T) {
	// Invalid slot counts
	for _, value := range []ConstantValue{dense(t, 4, 1, 2, 1, 2), sparse(t, 4, SparseEntry{1, 5})} {
		if _, err := value.Expand(2); err == nil {
			t.Errorf("expected error expanding %s to fewer slots than size", value)
		}
		//
		if _, err := value.Expand(6); err == nil {
			t.Errorf("expected error expanding %s to a non-multiple of size", value)
		}
	}
}

func Test_Constant_10(t *testing.T) {
	// Invalid constructions
	if _, err := NewDenseConstantValue(4, []float64{1, 2, 3}); err == nil {
		t.Errorf("expected error for dense buffer not dividing size")
	}
	//
	if _, err := NewDenseConstantValue(4, nil); err == nil {
		t.Errorf("expected error for empty dense buffer")
	}
	//
	if _, err := NewSparseConstantValue(4, []SparseEntry{{1, 5}, {1, 6}}); err == nil {
		t.Errorf("expected error for duplicate sparse indices")
	}
	//
	if _, err := NewSparseConstantValue(4, []SparseEntry{{4, 5}}); err == nil {
		t.Errorf("expected error for out-of-range sparse index")
	}
}

func Test_Constant_11(t *testing.T) {
	// Sub-periodic buffer must hash as its full logical expansion
	a := dense(t, 8, 0, 5)
	b := dense(t, 8, 0, 5, 0, 5, 0, 5, 0, 5)
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_12(t *testing.T) {
	// Adjacent sparse entries leave no zero run between their values
	a := sparse(t, 4, SparseEntry{0, 3}, SparseEntry{1, 7})
	b := dense(t, 4, 3, 7, 0, 0)
	//
	check_ConstantEqual(t, a, b)
}

func Test_Constant_13(t *testing.T) {
	// Entry order given at construction is irrelevant
	a := sparse(t, 8, SparseEntry{5, 2}, SparseEntry{1, 9})
	b := sparse(t, 8, SparseEntry{1, 9}, SparseEntry{5, 2})
	//
	check_ConstantEqual(t, a, b)
}

// ===================================================================
// Test Helpers
// ===================================================================

func dense(t *testing.T, size uint, values ...float64) *DenseConstantValue {
	value, err := NewDenseConstantValue(size, values)
	if err != nil {
		t.Fatal(err)
	}
	//
	return value
}

func sparse(t *testing.T, size uint, entries ...SparseEntry) *SparseConstantValue {
	value, err := NewSparseConstantValue(size, entries)
	if err != nil {
		t.Fatal(err)
	}
	//
	return value
}

func check_ConstantEqual(t *testing.T, a ConstantValue, b ConstantValue) {
	// Equality must be representation-symmetric
	if !EqualConstant(a, b) {
		t.Errorf("expected %s == %s", a, b)
	}
	//
	if !EqualConstant(b, a) {
		t.Errorf("expected %s == %s", b, a)
	}
	// Equal values must hash equal
	if a.Hash() != b.Hash() {
		t.Errorf("expected %s and %s to hash equal (got %x vs %x)", a, b, a.Hash(), b.Hash())
	}
}

func check_ConstantNotEqual(t *testing.T, a ConstantValue, b ConstantValue) {
	if EqualConstant(a, b) {
		t.Errorf("expected %s != %s", a, b)
	}
	//
	if EqualConstant(b, a) {
		t.Errorf("expected %s != %s", b, a)
	}
}

func check_Expand(t *testing.T, value ConstantValue, slots uint, expected []float64) {
	got, err := value.Expand(slots)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if !slices.Equal(got, expected) {
		t.Errorf("expected %s to expand to %v, got %v", value, expected, got)
	}
}
