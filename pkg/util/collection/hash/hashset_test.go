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
package hash

import (
	"math/rand"
	"testing"
)

func Test_HashSet_01(t *testing.T) {
	check_HashSet(t, []uint{1, 2, 3, 4, 3, 2, 1})
}

func Test_HashSet_02(t *testing.T) {
	check_HashSet(t, generateRandomUints(100, 32))
}

func Test_HashSet_03(t *testing.T) {
	check_HashSet(t, generateRandomUints(1000, 32))
}

func Test_HashSet_04(t *testing.T) {
	// Narrow domain forces heavy bucket collisions
	check_HashSet(t, generateRandomUints(10000, 64))
}

func Test_HashSet_05(t *testing.T) {
	// InsertGet returns the first-seen representative
	set := NewSet[testKey](0)
	//
	first, present := set.InsertGet(testKey{1, "a"})
	if present {
		t.Errorf("expected fresh insertion")
	}
	// Equal key, different payload
	rep, present := set.InsertGet(testKey{1, "b"})
	//
	if !present {
		t.Errorf("expected key already present")
	}
	//
	if rep != first {
		t.Errorf("expected representative %v, got %v", first, rep)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// testKey deliberately uses a coarse hash, so that distinct keys regularly
// collide and exercise the buckets.
type testKey struct {
	key     uint
	payload string
}

func (p testKey) Equals(other testKey) bool {
	return p.key == other.key
}

func (p testKey) Hash() uint64 {
	return uint64(p.key % 7)
}

func check_HashSet(t *testing.T, items []uint) {
	gset := make(map[uint]bool)
	hset := NewSet[testKey](0)
	//
	for _, item := range items {
		present := hset.Insert(testKey{item, ""})
		//
		if present != gset[item] {
			t.Errorf("unexpected insertion result for %d", item)
		}
		//
		gset[item] = true
	}
	// Sanity check number of unique items
	if hset.Size() != uint(len(gset)) {
		t.Errorf("expected %d items, got %d", len(gset), hset.Size())
	}
	// Sanity check containership
	for item := range gset {
		if !hset.Contains(testKey{item, ""}) {
			t.Errorf("missing key %d", item)
		}
	}
	//
	if hset.Contains(testKey{key: 1 << 40}) {
		t.Errorf("unexpected key present")
	}
}

func generateRandomUints(n uint, m uint) []uint {
	items := make([]uint, n)
	//
	for i := range items {
		items[i] = uint(rand.Intn(int(m)))
	}
	//
	return items
}
