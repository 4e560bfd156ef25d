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

// Package memo implements the Cascades-style equivalence search space:
// Set/Subset, digest-based interning, the rule engine, the cost model,
// and the planner driver that ties them together.
package memo

import (
	"fmt"

	"github.com/polybase/optimizer/algebra"
)

// SetID is a monotonically assigned set identifier, stable across
// union-find merges (it always names the leader).
type SetID uint32

// Set is an equivalence class of algebra nodes known to produce
// identical results. A Set owns one Subset per distinct trait set its
// members (or converters) have been interned with, and tracks which
// nodes elsewhere in the space refer to it for rule re-triggering.
type Set struct {
	id SetID

	// leader is non-nil once this Set has been merged into another;
	// followers redirect all reads through Leader().
	leader *Set
	rank   int

	subsets map[string]*Subset

	// parents back-points to nodes (and the subsets that own them)
	// whose Inputs() include some Subset of this Set, so a merge or a
	// new member can re-trigger the patterns bound to those parents.
	parents []parentRef
}

type parentRef struct {
	node   algebra.Node
	subset *Subset
}

func newSet(id SetID) *Set {
	return &Set{id: id, subsets: map[string]*Subset{}}
}

// Leader follows union-find path compression to the representative Set
// for this equivalence class.
func (s *Set) Leader() *Set {
	if s.leader == nil {
		return s
	}
	root := s.leader
	for root.leader != nil {
		root = root.leader
	}
	for n := s; n != nil && n.leader != nil; {
		next := n.leader
		n.leader = root
		n = next
	}
	return root
}

func (s *Set) ID() SetID { return s.Leader().id }

// Subsets returns every trait-manifestation subset currently present
// in this equivalence class.
func (s *Set) Subsets() []*Subset {
	l := s.Leader()
	out := make([]*Subset, 0, len(l.subsets))
	for _, sub := range l.subsets {
		out = append(out, sub)
	}
	return out
}

// addParent registers a back-pointer from node (interned into
// parentSubset) to this Set, because node reads from some subset of
// this Set as one of its inputs.
func (s *Set) addParent(node algebra.Node, parentSubset *Subset) {
	l := s.Leader()
	l.parents = append(l.parents, parentRef{node: node, subset: parentSubset})
}

// Ancestors enumerates the (node, subset) pairs whose node reads from
// this Set, for rule re-triggering after a merge or new member.
func (s *Set) Ancestors() []parentRef {
	l := s.Leader()
	out := make([]parentRef, len(l.parents))
	copy(out, l.parents)
	return out
}

func (s *Set) String() string {
	return fmt.Sprintf("G%d", s.ID())
}
