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

package rowexpr

// Substitute replaces every InputRef(idx) in e with mapping[idx],
// recursing through Call/FieldAccess operands. Used by algebra
// rewrite rules that compose or push expressions across a Project
// boundary (e.g. combining two adjacent projections, or rewriting a
// filter predicate to read the project's input row instead of its
// output row). Panics if e references an index outside mapping, since
// that indicates the caller built an invalid substitution.
func Substitute(e Expr, mapping []Expr) Expr {
	switch t := e.(type) {
	case *InputRef:
		if t.Index < 0 || t.Index >= len(mapping) {
			panic("rowexpr: Substitute: input ref out of range")
		}
		return mapping[t.Index]
	default:
		children := t.Children()
		if children == nil {
			return e
		}
		newChildren := make([]Expr, len(children))
		changed := false
		for i, c := range children {
			newChildren[i] = Substitute(c, mapping)
			if newChildren[i] != c {
				changed = true
			}
		}
		if !changed {
			return e
		}
		return t.WithChildren(newChildren)
	}
}

// IsPureColumnSelection reports whether every expression in projections
// is a plain InputRef, i.e. the projection only selects/reorders
// columns without computing anything — the condition under which a
// filter predicate can be pushed through it by direct substitution.
func IsPureColumnSelection(projections []Expr) bool {
	for _, e := range projections {
		if _, ok := e.(*InputRef); !ok {
			return false
		}
	}
	return true
}
