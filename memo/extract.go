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

import "github.com/polybase/optimizer/algebra"

// extract walks the goal subset (after costing it and every subset it
// transitively depends on), picks the cheapest member satisfying the
// caller's goal traits, and reconstructs the cheapest equivalent
// physical tree. Fails with ErrNoImplementationFound if no member of
// the goal subset satisfies the required traits.
func (p *Planner) extract() (algebra.Node, error) {
	goal := p.resolveGoal()
	if goal == nil {
		return nil, ErrNoImplementationFound
	}
	p.costSubset(goal, map[*Subset]bool{})
	return p.buildBest(goal, map[*Subset]bool{})
}

// resolveGoal finds the subset within the goal Set whose traits
// satisfy p.goalTraits, inserting a converter if necessary and
// possible. Conversion is attempted from every subset already present
// in the Set, not just the originally-seeded one: a rule firing during
// the search typically adds a physical subset (e.g. a JDBC-convention
// scan) alongside the original logical one, and that physical subset,
// not the logical root, is usually the one a registered converter
// knows how to read from.
func (p *Planner) resolveGoal() *Subset {
	if p.goal.satisfies(p.goalTraits) {
		return p.goal
	}
	for _, sub := range p.goal.set.Subsets() {
		if sub.satisfies(p.goalTraits) {
			return sub
		}
	}
	for _, sub := range p.goal.set.Subsets() {
		for _, def := range p.registry.Defs() {
			if def.Convert == nil {
				continue
			}
			if converted, err := p.RequireConvention(sub, def, p.goalTraits); err == nil {
				return converted
			}
		}
	}
	return nil
}

// costSubset computes cost(subset) = min over members of nodeCost +
// sum(cost(childSubset)), recursing into children first (push-based
// from leaves) and memoizing the result. visited guards against the
// cyclic-rewrite edge case: a subset already on the current recursion
// path is treated as having no additional cost contribution, so
// extraction does not loop.
func (p *Planner) costSubset(sub *Subset, visited map[*Subset]bool) {
	if visited[sub] || sub.bestCost != nil {
		return
	}
	visited[sub] = true
	defer delete(visited, sub)

	for _, member := range sub.Members() {
		childCosts := make([]Cost, 0, len(member.Inputs()))
		for _, in := range member.Inputs() {
			childSub, ok := in.(*Subset)
			if !ok {
				continue
			}
			p.costSubset(childSub, visited)
			if childSub.bestCost != nil {
				childCosts = append(childCosts, *childSub.bestCost)
			} else {
				childCosts = append(childCosts, Cost{})
			}
		}
		nodeCost, err := p.coster.EstimateCost(member, childCosts)
		if err != nil {
			continue
		}
		total := nodeCost
		for _, c := range childCosts {
			total = total.Add(c)
		}
		if sub.bestCost == nil || total.Less(*sub.bestCost, p.weights) {
			cp := total
			sub.bestCost = &cp
			sub.bestMember = member
		}
	}
}

// buildBest reconstructs the cheapest tree rooted at subset's best
// member, recursing into its input subsets. The same cycle guard used
// by costSubset applies here: an already-visited subset on the current
// path returns its cached best member without recursing further.
func (p *Planner) buildBest(sub *Subset, visited map[*Subset]bool) (algebra.Node, error) {
	if sub.bestMember == nil {
		return nil, ErrNoImplementationFound
	}
	if visited[sub] {
		return sub.bestMember, nil
	}
	visited[sub] = true
	defer delete(visited, sub)

	member := sub.bestMember
	inputs := member.Inputs()
	if len(inputs) == 0 {
		return member, nil
	}
	newInputs := make([]algebra.Input, len(inputs))
	changed := false
	for i, in := range inputs {
		childSub, ok := in.(*Subset)
		if !ok {
			newInputs[i] = in
			continue
		}
		built, err := p.buildBest(childSub, visited)
		if err != nil {
			return nil, err
		}
		if builtInput, ok := built.(algebra.Input); ok {
			newInputs[i] = builtInput
			if built != childSub {
				changed = true
			}
		} else {
			newInputs[i] = childSub
		}
	}
	if !changed {
		return member, nil
	}
	return member.WithInputs(newInputs), nil
}
