// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memo

import (
	"fmt"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

// Subset is a Set narrowed to exactly one TraitSet: the list of member
// nodes sharing that trait set, plus the memoized best cost/member and
// the importance used to rank rule calls against this subset.
//
// Subset implements algebra.Input so a node's Inputs() can reference
// subsets directly without the algebra package importing memo.
type Subset struct {
	set    *Set
	traits *trait.Set

	members []algebra.Node

	bestCost   *Cost
	bestMember algebra.Node

	importance float64

	// required records every trait set some parent has asked this
	// subset's Set to deliver via RequireTrait, so a converter can be
	// (re)scheduled once a satisfying member appears.
	required map[string]*trait.Set
}

func newSubset(set *Set, traits *trait.Set) *Subset {
	return &Subset{set: set, traits: traits, required: map[string]*trait.Set{}}
}

func (s *Subset) Set() *Set          { return s.set }
func (s *Subset) Traits() *trait.Set { return s.traits }
func (s *Subset) Members() []algebra.Node {
	out := make([]algebra.Node, len(s.members))
	copy(out, s.members)
	return out
}

func (s *Subset) BestCost() (*Cost, algebra.Node) { return s.bestCost, s.bestMember }

func (s *Subset) Importance() float64 { return s.importance }

func (s *Subset) raiseImportance(v float64) {
	if v > s.importance {
		s.importance = v
	}
}

// Digest identifies this subset for node-digest computation: the
// leader Set's id plus this subset's trait key, so two references to
// the same equivalence class under the same trait set always collapse
// to the same string regardless of which node reached it first.
func (s *Subset) Digest() string {
	return fmt.Sprintf("G%d<%s>", s.set.ID(), s.traits.Key())
}

func (s *Subset) String() string { return s.Digest() }

// addMember appends node to this subset's member list. Callers must
// have already verified node's digest is not already present in the
// owning Set (see Space.Intern).
func (s *Subset) addMember(node algebra.Node) {
	s.members = append(s.members, node)
}

// satisfies reports whether this subset's trait set can stand in for
// a requirement of want without conversion.
func (s *Subset) satisfies(want *trait.Set) bool {
	return s.traits.Satisfies(want)
}
