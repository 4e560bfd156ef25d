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

// Rule is (pattern, action): a transformation or implementation rule
// fired whenever its Pattern matches an interned node. Apply returns
// zero or more equivalent nodes; each is interned into the same Set as
// root via transformTo semantics (see Space.transformTo).
type Rule interface {
	Name() string
	Pattern() *Pattern
	Apply(space *Space, root algebra.Node) ([]algebra.Node, error)
}

// RuleCall is a bound instance of a rule pattern against one specific
// interned node, pending execution in the call queue.
type RuleCall struct {
	rule       Rule
	root       algebra.Node
	subset     *Subset
	importance float64
	seq        int
}

func (c *RuleCall) Rule() Rule           { return c.rule }
func (c *RuleCall) Root() algebra.Node   { return c.root }
func (c *RuleCall) Subset() *Subset      { return c.subset }
func (c *RuleCall) Importance() float64  { return c.importance }

// stale reports whether root's digest is no longer present in subset's
// member list, meaning an earlier set merge or rewrite invalidated this
// binding; such calls are skipped rather than executed.
func (c *RuleCall) stale() bool {
	for _, m := range c.subset.Members() {
		if m.Digest() == c.root.Digest() {
			return false
		}
	}
	return true
}
