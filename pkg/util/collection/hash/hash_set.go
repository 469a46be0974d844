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

// A reasonably simple hashset implementation which permits collisions.
// Off-the-shelf set implementations (e.g. hashicorp's go-set) are not suitable
// here, since they assume the hash function uniquely identifies the data in
// question.  Hash-consing cannot make that assumption: the structural hash is
// sound but incomplete, so unequal items may share a hashcode and must be
// separated by the exact equality check.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashset, along with the matching equality.  Implementations must
// ensure equal items always produce equal hashcodes.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// Set defines a generic set implementation backed by a map.  This is a true
// hashtable in that collisions are handled gracefully using buckets, rather
// than simply discarding them.
type Set[T Hasher[T]] struct {
	// buckets maps hashcodes to *buckets* of items.
	buckets map[uint64][]T
	// count of items across all buckets.
	count uint
}

// NewSet creates a new HashSet with a given underlying capacity.
func NewSet[T Hasher[T]](size uint) *Set[T] {
	buckets := make(map[uint64][]T, size)
	return &Set[T]{buckets, 0}
}

// Size returns the number of unique items stored in this HashSet.
//
//nolint:revive
func (p *Set[T]) Size() uint {
	return p.count
}

// MaxBucket returns the size of the largest bucket.  Useful as a measure of
// how well the hash function is spreading items.
//
//nolint:revive
func (p *Set[T]) MaxBucket() uint {
	m := uint(0)
	for _, b := range p.buckets {
		m = max(m, uint(len(b)))
	}

	return m
}

// InsertGet adds an item to this set unless an equal item is already present.
// In either case, the representative item held by the set is returned, along
// with a flag indicating whether it was already present.  This is the
// fundamental hash-consing operation.
//
//nolint:revive
func (p *Set[T]) InsertGet(item T) (T, bool) {
	// Compute item's hashcode
	hash := item.Hash()
	// Check bucket for an equal item
	for _, other := range p.buckets[hash] {
		if item.Equals(other) {
			return other, true
		}
	}
	// Append item to bucket
	p.buckets[hash] = append(p.buckets[hash], item)
	p.count++
	// Done
	return item, false
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
//
//nolint:revive
func (p *Set[T]) Insert(item T) bool {
	_, present := p.InsertGet(item)
	return present
}

// Contains checks whether the given item is contained within this set, or not.
//
//nolint:revive
func (p *Set[T]) Contains(item T) bool {
	for _, other := range p.buckets[item.Hash()] {
		if item.Equals(other) {
			return true
		}
	}

	return false
}
