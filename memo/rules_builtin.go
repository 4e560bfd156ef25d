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
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/rowexpr"
)

// combineProjectsRule rewrites Project(Project(x)) into a single
// Project(x) by substituting the inner projection's expressions into
// the outer one, eliminating the intermediate row materialization.
type combineProjectsRule struct{}

func CombineProjectsRule() Rule { return combineProjectsRule{} }

func (combineProjectsRule) Name() string { return "CombineProjects" }

func (combineProjectsRule) Pattern() *Pattern {
	return NewPattern(Op(algebra.KindProject, Op(algebra.KindProject)))
}

func (combineProjectsRule) Apply(space *Space, root algebra.Node) ([]algebra.Node, error) {
	outer := root.(*algebra.Project)
	childSub, ok := outer.Child().(*Subset)
	if !ok {
		return nil, nil
	}
	var out []algebra.Node
	for _, member := range childSub.Members() {
		inner, ok := member.(*algebra.Project)
		if !ok {
			continue
		}
		composed := make([]rowexpr.Expr, len(outer.Projections))
		for i, e := range outer.Projections {
			composed[i] = rowexpr.Substitute(e, inner.Projections)
		}
		out = append(out, algebra.NewProject(inner.Child(), composed, outer.Names, outer.Traits()))
	}
	return out, nil
}

// pushFilterThroughProjectRule rewrites Filter(Project(x)) into
// Project(Filter(x)) whenever the project is a pure column selection,
// so the filter can discard rows before the projection materializes
// its output row.
type pushFilterThroughProjectRule struct{}

func PushFilterThroughProjectRule() Rule { return pushFilterThroughProjectRule{} }

func (pushFilterThroughProjectRule) Name() string { return "PushFilterThroughProject" }

func (pushFilterThroughProjectRule) Pattern() *Pattern {
	return NewPattern(Op(algebra.KindFilter, Op(algebra.KindProject)))
}

func (pushFilterThroughProjectRule) Apply(space *Space, root algebra.Node) ([]algebra.Node, error) {
	filter := root.(*algebra.Filter)
	childSub, ok := filter.Child().(*Subset)
	if !ok {
		return nil, nil
	}
	var out []algebra.Node
	for _, member := range childSub.Members() {
		proj, ok := member.(*algebra.Project)
		if !ok || !rowexpr.IsPureColumnSelection(proj.Projections) {
			continue
		}
		pushedPredicate := rowexpr.Substitute(filter.Predicate, proj.Projections)
		pushedFilter := algebra.NewFilter(proj.Child(), pushedPredicate, filter.Traits())
		newSub, err := space.Intern(pushedFilter, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, algebra.NewProject(newSub, proj.Projections, proj.Names, filter.Traits()))
	}
	return out, nil
}
