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

package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/adapter/document"
	"github.com/polybase/optimizer/adapter/jdbc"
	"github.com/polybase/optimizer/adapter/keyvalue"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/trait"
)

// TestThreeAdaptersShareOneConventionSlot registers all three example
// adapters against one Conventions registry and checks each declared a
// distinct convention while sharing the single trait.Def slot the
// framework requires (trait.Def has exactly one "convention" slot per
// registry).
func TestThreeAdaptersShareOneConventionSlot(t *testing.T) {
	conventions := adapter.NewConventions()
	ops := adapter.NewOperatorTable()
	registry := trait.NewRegistry()
	planner := memo.NewPlanner(registry, memo.NewStatsCoster(memo.NewMapStats()))

	jdbcConv, err := adapter.Register(jdbc.New("127.0.0.1:3306", "shop"), conventions, ops, planner)
	require.NoError(t, err)
	docConv, err := adapter.Register(document.New(), conventions, ops, planner)
	require.NoError(t, err)
	kvConv, err := adapter.Register(keyvalue.New("127.0.0.1:6379"), conventions, ops, planner)
	require.NoError(t, err)

	require.NotEqual(t, jdbcConv.Name, docConv.Name)
	require.NotEqual(t, docConv.Name, kvConv.Name)
	require.Same(t, conventions.Def(), conventions.Def(), "Def must be memoized, not rebuilt per call")

	_, hasLike := ops.Lookup("LIKE")
	_, hasRegex := ops.Lookup("REGEX")
	_, hasHGet := ops.Lookup("HGET")
	require.True(t, hasLike)
	require.True(t, hasRegex)
	require.True(t, hasHGet)
}

// TestConversionBetweenAdapterConventions exercises the convention-
// insertion contract with a real registered adapter convention (JDBC)
// on one side and a downstream "Enumerable" interpreter convention on
// the other.
func TestConversionBetweenAdapterConventions(t *testing.T) {
	conventions := adapter.NewConventions()
	ops := adapter.NewOperatorTable()
	registry := trait.NewRegistry()
	planner := memo.NewPlanner(registry, memo.NewStatsCoster(memo.NewMapStats()))

	jdbcAdapter := jdbc.New("127.0.0.1:3306", "shop")
	jdbcConv, err := adapter.Register(jdbcAdapter, conventions, ops, planner)
	require.NoError(t, err)

	enumerable := conventions.Declare(&trait.Convention{Name: "Enumerable", Codegen: true})
	var convertCalls int
	conventions.RegisterConverter(jdbcConv, enumerable, func(input trait.Node, from, target trait.Manifestation, allowInfinite bool) (trait.Node, bool) {
		convertCalls++
		node := input.(*memo.Subset)
		return algebra.NewConverter(node, from, target, node.Traits().With(conventions.Def(), target)), true
	})

	require.NoError(t, planner.AddTraitDef(conventions.Def()))

	logicalTraits := registry.Default()
	scan := algebra.NewScan("orders", []algebra.ColumnDef{{Name: "id"}}, logicalTraits)

	goalTraits := logicalTraits.With(conventions.Def(), enumerable)
	_, err = planner.SetRoot(scan, goalTraits)
	require.NoError(t, err)

	plan, err := planner.FindBestPlan()
	require.NoError(t, err)
	require.Equal(t, memo.Done, planner.Status())

	converter, ok := plan.(*algebra.Converter)
	require.True(t, ok)
	require.Equal(t, 1, convertCalls)
	require.Equal(t, jdbcConv, converter.From)
	require.Equal(t, enumerable, converter.To)
}
