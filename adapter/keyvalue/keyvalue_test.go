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

package keyvalue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

func TestFilterOnKeyColumnBecomesKeyValueScan(t *testing.T) {
	conventions := adapter.NewConventions()
	ops := adapter.NewOperatorTable()
	registry := trait.NewRegistry()
	planner := memo.NewPlanner(registry, memo.NewStatsCoster(memo.NewMapStats()))

	a := New("127.0.0.1:6379")
	conv, err := adapter.Register(a, conventions, ops, planner)
	require.NoError(t, err)
	require.NoError(t, planner.AddTraitDef(conventions.Def()))
	_, hasHGet := ops.Lookup("HGET")
	require.True(t, hasHGet)

	logicalTraits := registry.Default()
	columns := []algebra.ColumnDef{{Name: "id"}, {Name: "value"}}
	scanSub, err := planner.Space().Intern(algebra.NewScan("session", columns, logicalTraits), nil)
	require.NoError(t, err)

	pred := rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{
		rowexpr.NewInputRef(0, rowexpr.NotNullType(rowexpr.Int64)),
		rowexpr.NewLiteral(rowexpr.IntValue(42), rowexpr.NotNullType(rowexpr.Int64)),
	})
	filter := algebra.NewFilter(scanSub, pred, logicalTraits)

	goalTraits := logicalTraits.With(conventions.Def(), conv)
	_, err = planner.SetRoot(filter, goalTraits)
	require.NoError(t, err)

	plan, err := planner.FindBestPlan()
	require.NoError(t, err)
	require.Equal(t, memo.Done, planner.Status())

	scan, ok := plan.(*KeyValueScan)
	require.True(t, ok)
	require.Equal(t, "session", scan.Table())
	require.Equal(t, "id", scan.KeyColumn())
	require.Equal(t, "42", scan.Key())
	require.Equal(t, "127.0.0.1:6379", scan.Addr())
}
