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

// Operand is one node of a rule's pattern tree: the root operand
// matches a node's kind (or any kind, when Kind == algebra.KindInvalid),
// an optional extra Predicate, and a list of child operands matched
// against the members of the corresponding input subset. A nil or
// short Children list means "don't care" about the remaining inputs.
type Operand struct {
	Kind      algebra.Kind
	Predicate func(algebra.Node) bool
	Children  []*Operand
}

// Any matches any node kind, with an optional predicate.
func Any(predicate func(algebra.Node) bool) *Operand {
	return &Operand{Kind: algebra.KindInvalid, Predicate: predicate}
}

// Op builds an operand matching kind, recursing into children.
func Op(kind algebra.Kind, children ...*Operand) *Operand {
	return &Operand{Kind: kind, Children: children}
}

// OpWhere is Op with an additional node-level predicate.
func OpWhere(kind algebra.Kind, predicate func(algebra.Node) bool, children ...*Operand) *Operand {
	return &Operand{Kind: kind, Predicate: predicate, Children: children}
}

// matchesNode reports whether o's own kind/predicate constraints (not
// its children) accept node.
func (o *Operand) matchesNode(node algebra.Node) bool {
	if o.Kind != algebra.KindInvalid && o.Kind != node.Kind() {
		return false
	}
	if o.Predicate != nil && !o.Predicate(node) {
		return false
	}
	return true
}

// matches reports whether node, read through space, satisfies o
// including its children: every declared child operand must match at
// least one member of the corresponding input's subset.
func (o *Operand) matches(space *Space, node algebra.Node) bool {
	if !o.matchesNode(node) {
		return false
	}
	if len(o.Children) == 0 {
		return true
	}
	inputs := node.Inputs()
	if len(o.Children) > len(inputs) {
		return false
	}
	for i, childOp := range o.Children {
		sub, ok := inputs[i].(*Subset)
		if !ok {
			return false
		}
		found := false
		for _, member := range sub.Members() {
			if childOp.matches(space, member) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Pattern pairs a root operand with the Rule it seeds calls for.
type Pattern struct {
	Root *Operand
}

func NewPattern(root *Operand) *Pattern {
	return &Pattern{Root: root}
}
