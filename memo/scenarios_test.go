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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Scenario 1: filter push-through-project. The input tree already has
// the filter below the project and a single projection, so neither
// CombineProjects nor PushFilterThroughProject has anything to do; the
// scenario exercises that the planner leaves an already-optimal tree
// alone and that extracted cost follows rowCount = selectivity(b=1) x |T|.
func TestScenarioFilterPushThroughProject(t *testing.T) {
	registry := trait.NewRegistry()
	traits := registry.Default()

	stats := NewMapStats()
	stats.RowCounts["T"] = 1000
	stats.DefaultSelectivity = 0.2

	planner := NewPlanner(registry, NewStatsCoster(stats))
	require.NoError(t, planner.AddRule(CombineProjectsRule()))
	require.NoError(t, planner.AddRule(PushFilterThroughProjectRule()))

	scanSub, err := planner.Space().Intern(algebra.NewScan("T", []algebra.ColumnDef{{Name: "a"}, {Name: "b"}}, traits), nil)
	require.NoError(t, err)

	bEq1 := rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{inputRef(1), intLit(1)})
	filter := algebra.NewFilter(scanSub, bEq1, traits)
	filterSub, err := planner.Space().Intern(filter, nil)
	require.NoError(t, err)

	project := algebra.NewProject(filterSub, []rowexpr.Expr{inputRef(0)}, []string{"a"}, traits)

	_, err = planner.SetRoot(project, traits)
	require.NoError(t, err)

	plan, err := planner.FindBestPlan()
	require.NoError(t, err)
	require.Equal(t, Done, planner.Status())

	require.Equal(t, algebra.KindProject, plan.Kind())
	bestCost, _ := planner.goal.BestCost()
	require.Equal(t, 200.0, bestCost.RowCount)
}

// Scenario 4: two independently registered nodes whose predicates
// normalize to the same canonical form end up in the same Set via a
// transitive merge. N1 is interned on its own, seeding Set A. N2
// starts life as "seed", a syntactically different filter seeding its
// own Set B; a rule then rewrites seed into a form (pPrime) that is
// digest-equal to N1 -- exactly the shape transformTo produces when it
// interns a rewrite's result into the rewritten root's Set. Expected:
// N1.set == N2.set, the merged subset's member list contains both
// original nodes, and bestCost(set) = min(cost(N1), cost(seed)).
func TestScenarioEquivalentRewriteSharesSet(t *testing.T) {
	registry := trait.NewRegistry()
	traits := registry.Default()
	space := newSpace(nil)

	scanSub, _ := space.Intern(algebra.NewScan("T", colsAB(), traits), nil)

	notNotP := rowexpr.NewCall(rowexpr.Not, []rowexpr.Expr{rowexpr.NewCall(rowexpr.Not, []rowexpr.Expr{boolLit(true)})})
	p := rowexpr.Simplify(notNotP, rowexpr.UnknownAsUnknown, nil)
	pPrime := rowexpr.Simplify(boolLit(true), rowexpr.UnknownAsUnknown, nil)
	require.Equal(t, p.String(), pPrime.String())

	n1 := algebra.NewFilter(scanSub, p, traits)
	sub1, err := space.Intern(n1, nil)
	require.NoError(t, err)
	sub1.bestCost = &Cost{RowCount: 10, CPU: 1, IO: 1}
	sub1.bestMember = n1

	seed := algebra.NewFilter(scanSub, rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{intLit(2), intLit(3)}), traits)
	seedSub, err := space.Intern(seed, nil)
	require.NoError(t, err)
	require.NotSame(t, sub1.set.Leader(), seedSub.set.Leader())
	seedSub.bestCost = &Cost{RowCount: 5, CPU: 1, IO: 1}
	seedSub.bestMember = seed

	n2 := algebra.NewFilter(scanSub, pPrime, traits)
	sub2, err := space.Intern(n2, seedSub.set)
	require.NoError(t, err)

	require.Same(t, sub1.set.Leader(), sub2.set.Leader())
	require.Same(t, sub1, sub2)
	require.ElementsMatch(t, []algebra.Node{n1, seed}, sub1.Members())

	bestCost, bestMember := sub1.BestCost()
	require.Equal(t, 5.0, bestCost.RowCount)
	require.Same(t, seed, bestMember)
}

// Scenario 5: convention insertion. A subset delivering JDBC is asked
// to satisfy a goal requiring Enumerable; the planner synthesizes and
// interns a Converter via the convention Def's registered factory.
func TestScenarioConventionInsertion(t *testing.T) {
	registry := trait.NewRegistry()

	jdbcConv := &trait.Convention{Name: "JDBC"}
	enumerableConv := &trait.Convention{Name: "Enumerable", Codegen: true}

	var convertCalls int
	var convDef *trait.Def
	convDef = trait.ConventionDef(
		func(have, want *trait.Convention) bool { return false },
		func(input trait.Node, from, target trait.Manifestation, allowInfinite bool) (trait.Node, bool) {
			convertCalls++
			node := input.(*Subset)
			return algebra.NewConverter(node, from, target, node.Traits().With(convDef, target)), true
		},
	)

	registry.Register(convDef)
	jdbcTraits := registry.Default().With(convDef, jdbcConv)
	goalTraits := registry.Default().With(convDef, enumerableConv)

	space := newSpace(nil)
	scanSub, _ := space.Intern(algebra.NewScan("T", colsAB(), jdbcTraits), nil)
	jdbcProject := algebra.NewProject(scanSub, []rowexpr.Expr{inputRef(0)}, []string{"a"}, jdbcTraits)
	projectSub, err := space.Intern(jdbcProject, nil)
	require.NoError(t, err)

	planner := &Planner{registry: registry, space: space, weights: DefaultCostWeights}
	converted, err := planner.RequireConvention(projectSub, convDef, goalTraits)
	require.NoError(t, err)
	require.Equal(t, 1, convertCalls)

	member := converted.Members()[0]
	conv, ok := member.(*algebra.Converter)
	require.True(t, ok)
	require.Equal(t, jdbcConv, conv.From)
	require.Equal(t, enumerableConv, conv.To)
	require.Same(t, projectSub, conv.Child())
}

// Scenario 6: cancellation. A pre-set cancel flag must be observed
// before the first rule call executes, so FindBestPlan returns
// promptly with ErrCancelled and status Cancelled.
func TestScenarioCancellation(t *testing.T) {
	registry := trait.NewRegistry()
	traits := registry.Default()
	planner := NewPlanner(registry, NewStatsCoster(NewMapStats()))
	require.NoError(t, planner.AddRule(CombineProjectsRule()))

	scanSub, _ := planner.Space().Intern(algebra.NewScan("T", colsAB(), traits), nil)
	inner := algebra.NewProject(scanSub, []rowexpr.Expr{inputRef(0), inputRef(1)}, []string{"a", "b"}, traits)
	innerSub, _ := planner.Space().Intern(inner, nil)
	outer := algebra.NewProject(innerSub, []rowexpr.Expr{inputRef(0)}, []string{"a"}, traits)

	_, err := planner.SetRoot(outer, traits)
	require.NoError(t, err)

	var cancel int32 = 1
	planner.SetCancelFlag(&cancel)

	plan, err := planner.FindBestPlan()
	require.Nil(t, plan)
	require.ErrorIs(t, err, ErrCancelled)
	require.Equal(t, Cancelled, planner.Status())
}
