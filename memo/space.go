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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

// Space owns the equivalence-class search space for one planning run:
// every Set, every Subset, the digest-interning table, the registered
// rules, and the rule-call queue they feed. It is created and owned
// exclusively by a Planner for the run's lifetime.
type Space struct {
	sets  []*Set
	rules []Rule

	// bySetDigest dedupes brand-new equivalence classes: nodes whose
	// digest has never been seen get a fresh Set; nodes whose digest
	// matches one already known attach to the existing Set/Subset.
	bySetDigest map[string]*Subset

	queue *callQueue

	logger logrus.FieldLogger
}

func newSpace(logger logrus.FieldLogger) *Space {
	return &Space{
		bySetDigest: map[string]*Subset{},
		queue:       newCallQueue(),
		logger:      logger,
	}
}

func (s *Space) addRule(r Rule) { s.rules = append(s.rules, r) }

func (s *Space) newSet() *Set {
	set := newSet(SetID(len(s.sets) + 1))
	s.sets = append(s.sets, set)
	return set
}

// Intern computes node's digest, looks up or creates the owning
// set/subset, registers parent back-pointers on every input Set, and
// schedules rule calls for every pattern whose root now matches. When
// target is non-nil the node is attached to that Set instead of
// possibly creating a new one (used by transformTo and by
// RequireConvention; SetRoot passes nil).
func (s *Space) Intern(node algebra.Node, target *Set) (*Subset, error) {
	digest := node.Digest()
	if existing, ok := s.bySetDigest[digest]; ok {
		// The digest already names a Set. If the caller (typically
		// transformTo) is interning this node into some other Set,
		// that other Set and the digest's owning Set have just been
		// proven equivalent and must merge transitively: digest
		// equality implies set equality once the merge propagates.
		if target != nil {
			s.MergeSets(existing.set, target)
		}
		return s.bySetDigest[digest], nil
	}

	set := target
	if set == nil {
		set = s.newSet()
	}
	set = set.Leader()

	key := node.Traits().Key()
	sub, ok := set.subsets[key]
	if !ok {
		sub = newSubset(set, node.Traits())
		set.subsets[key] = sub
	}
	sub.addMember(node)
	s.bySetDigest[digest] = sub

	for _, in := range node.Inputs() {
		if childSub, ok := in.(*Subset); ok {
			childSub.set.addParent(node, sub)
		}
	}

	s.seedRuleCalls(node, sub)
	return sub, nil
}

// transformTo interns equivalent into root's owning Set, per the rule
// engine's "each transformTo interns the new node into the same set as
// the original root" contract.
func (s *Space) transformTo(root algebra.Node, equivalent algebra.Node) (*Subset, error) {
	original, ok := s.bySetDigest[root.Digest()]
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "transformTo: root not interned")
	}
	if !rowTypesCompatible(root, equivalent) {
		return nil, ErrIncompatibleRewrite
	}
	return s.Intern(equivalent, original.set)
}

// rowTypesCompatible checks column-count equality between a and b when
// both implement algebra.RowTyped; nodes that don't (most operators
// above a leaf, which pass their input's row type through unchanged)
// are trusted, since verifying their row type would require threading
// full input-type inference through transformTo. Kind is deliberately
// not compared: an implementation rule's whole job is to replace a
// logical node with a differently-kinded physical one (e.g. Scan ->
// JDBCScan, or Filter(Scan) -> Match) that produces the same row.
func rowTypesCompatible(a, b algebra.Node) bool {
	at, aok := a.(algebra.RowTyped)
	bt, bok := b.(algebra.RowTyped)
	if aok && bok {
		return len(at.RowType()) == len(bt.RowType())
	}
	return true
}

// MergeSets performs a union-find union of a and b: the smaller-rank
// set's subsets are merged into the other's, keyed by matching trait
// sets, and every reference to the absorbed leader is redirected on
// next Leader() call (lazy path compression).
func (s *Space) MergeSets(a, b *Set) {
	la, lb := a.Leader(), b.Leader()
	if la == lb {
		return
	}
	if la.rank < lb.rank {
		la, lb = lb, la
	}
	lb.leader = la
	if la.rank == lb.rank {
		la.rank++
	}

	for key, followerSub := range lb.subsets {
		leaderSub, ok := la.subsets[key]
		if !ok {
			followerSub.set = la
			la.subsets[key] = followerSub
			continue
		}
		for _, m := range followerSub.members {
			leaderSub.addMember(m)
			s.bySetDigest[m.Digest()] = leaderSub
		}
		if followerSub.bestCost != nil && (leaderSub.bestCost == nil || followerSub.bestCost.Scalar(DefaultCostWeights) < leaderSub.bestCost.Scalar(DefaultCostWeights)) {
			leaderSub.bestCost = followerSub.bestCost
			leaderSub.bestMember = followerSub.bestMember
		}
		leaderSub.raiseImportance(followerSub.importance)
	}
	la.parents = append(la.parents, lb.parents...)
	lb.subsets = nil
	lb.parents = nil

	// Re-trigger rules on every ancestor of the merged set: a merge can
	// newly satisfy a pattern whose child operand only matched once the
	// two member lists were unioned.
	for _, p := range la.Ancestors() {
		if owning, ok := s.bySetDigest[p.node.Digest()]; ok {
			s.seedRuleCalls(p.node, owning)
		}
	}
}

// RequireTrait returns an existing sibling subset of subset's Set
// satisfying want, or nil if none exists yet (the caller — typically
// the planner's convert-insertion step — is responsible for invoking a
// trait.Def's Convert factory and interning the result).
func (s *Space) RequireTrait(subset *Subset, want *trait.Set) *Subset {
	set := subset.set.Leader()
	for _, sub := range set.subsets {
		if sub.satisfies(want) {
			return sub
		}
	}
	set.subsets[subset.traits.Key()].required[want.Key()] = want
	return nil
}

// seedRuleCalls enqueues a RuleCall for every registered rule whose
// pattern root matches node, at node's owning subset's importance.
func (s *Space) seedRuleCalls(node algebra.Node, owner *Subset) {
	for _, r := range s.rules {
		if r.Pattern().Root.matches(s, node) {
			s.queue.push(&RuleCall{rule: r, root: node, subset: owner, importance: owner.importance})
		}
	}
}
