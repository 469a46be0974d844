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
package cse

import (
	"github.com/fhelab/go-fhec/pkg/ir"
	"github.com/fhelab/go-fhec/pkg/util/collection/hash"
	log "github.com/sirupsen/logrus"
)

// Eliminator enforces one representative per semantic equivalence class of
// terms, by interning every term it sees into a hash-consing table.  An
// eliminator is scoped to a single pass over a single program; it holds no
// reference to the program itself.
type Eliminator struct {
	// unique holds the chosen representative of every equivalence class
	// encountered so far.
	unique *hash.Set[termKey]
}

// NewEliminator creates an eliminator with an empty table.
func NewEliminator() *Eliminator {
	return &Eliminator{hash.NewSet[termKey](256)}
}

// Process interns a term, redirecting all of its users to an existing
// representative when a semantically equal term has been seen before.  Terms
// must be processed in dependency order (every operand strictly before its
// users); otherwise the identity comparison of operands under-deduplicates.
// Returns the number of uses redirected, which makes re-processing an
// already eliminated term a harmless no-op.
func (e *Eliminator) Process(term *ir.Term) uint {
	rep, present := e.unique.InsertGet(termKey{term})
	// First of its class becomes the representative
	if !present || rep.term == term {
		return 0
	}
	//
	redirected := uint(len(term.Users()))
	term.ReplaceAllUsesWith(rep.term)
	//
	log.Tracef("eliminated term index=%d in favour of index=%d", term.Index, rep.term.Index)
	//
	return redirected
}

// Run applies common subexpression elimination across a whole program,
// returning the total number of redirected uses.  Eliminated terms are left
// in the program with empty use lists; Program.RemoveDeadTerms disposes of
// them.
func Run(program *ir.Program) uint {
	var (
		eliminator = NewEliminator()
		redirected = uint(0)
	)
	//
	program.Forward(func(term *ir.Term) {
		redirected += eliminator.Process(term)
	})
	//
	return redirected
}
