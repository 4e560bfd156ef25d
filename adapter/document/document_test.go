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

package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

func TestCollectionNamePluralizes(t *testing.T) {
	require.Equal(t, "orders", CollectionName("order"))
	require.Equal(t, "people", CollectionName("person"))
}

func TestBuildFilterEquality(t *testing.T) {
	columns := []algebra.ColumnDef{{Name: "id"}, {Name: "status"}}
	pred := rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{
		rowexpr.NewInputRef(1, rowexpr.NotNullType(rowexpr.String)),
		rowexpr.NewLiteral(rowexpr.StringValue("shipped"), rowexpr.NotNullType(rowexpr.String)),
	})

	f, err := BuildFilter(pred, columns)
	require.NoError(t, err)
	require.Len(t, f, 1)
	require.Equal(t, "status", f[0].Key)
	require.Equal(t, "shipped", f[0].Value)
}

func TestBuildFilterRejectsUnsupportedShape(t *testing.T) {
	columns := []algebra.ColumnDef{{Name: "id"}}
	pred := rowexpr.NewCall(rowexpr.IsNull, []rowexpr.Expr{
		rowexpr.NewInputRef(0, rowexpr.NullableType(rowexpr.Int64)),
	})
	_, err := BuildFilter(pred, columns)
	require.Error(t, err)
}

func TestFilterFusesIntoDocumentMatch(t *testing.T) {
	conventions := adapter.NewConventions()
	ops := adapter.NewOperatorTable()
	registry := trait.NewRegistry()
	planner := memo.NewPlanner(registry, memo.NewStatsCoster(memo.NewMapStats()))

	a := New()
	conv, err := adapter.Register(a, conventions, ops, planner)
	require.NoError(t, err)
	require.NoError(t, planner.AddTraitDef(conventions.Def()))

	logicalTraits := registry.Default()
	columns := []algebra.ColumnDef{{Name: "id"}, {Name: "status"}}
	scanSub, err := planner.Space().Intern(algebra.NewScan("order", columns, logicalTraits), nil)
	require.NoError(t, err)

	pred := rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{
		rowexpr.NewInputRef(1, rowexpr.NotNullType(rowexpr.String)),
		rowexpr.NewLiteral(rowexpr.StringValue("shipped"), rowexpr.NotNullType(rowexpr.String)),
	})
	filter := algebra.NewFilter(scanSub, pred, logicalTraits)

	goalTraits := logicalTraits.With(conventions.Def(), conv)
	_, err = planner.SetRoot(filter, goalTraits)
	require.NoError(t, err)

	plan, err := planner.FindBestPlan()
	require.NoError(t, err)
	require.Equal(t, memo.Done, planner.Status())

	match, ok := plan.(*algebra.Match)
	require.True(t, ok)
	require.Equal(t, "orders", match.Collection)
}
