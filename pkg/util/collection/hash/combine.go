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

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Seed returns the initial accumulator for an incremental FNV-1a hash built
// with Combine.
func Seed() uint64 {
	return offset64
}

// Combine folds a value into a running 64-bit FNV-1a hash, returning the
// updated accumulator.  Combination order is significant.
func Combine(hash, value uint64) uint64 {
	hash ^= value
	hash *= prime64
	//
	return hash
}
