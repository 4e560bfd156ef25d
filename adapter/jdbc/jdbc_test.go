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

package jdbc

import (
	"testing"

	pgquery "github.com/pganalyze/pg_query_go/v5"
	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/trait"
)

// relationName parses a single-table SELECT with a real PostgreSQL
// parser and extracts the relation name, grounding the "parser hands
// the optimizer an opaque logical tree" contract (spec §6) in an
// actual third-party parser instead of a hand-rolled stub.
func relationName(t *testing.T, sql string) string {
	t.Helper()
	result, err := pgquery.Parse(sql)
	require.NoError(t, err)
	require.Len(t, result.Stmts, 1)
	selectStmt := result.Stmts[0].Stmt.GetSelectStmt()
	require.NotNil(t, selectStmt)
	require.Len(t, selectStmt.FromClause, 1)
	rangeVar := selectStmt.FromClause[0].GetRangeVar()
	require.NotNil(t, rangeVar)
	return rangeVar.Relname
}

func TestScanToJDBCScan(t *testing.T) {
	table := relationName(t, "SELECT * FROM orders")
	require.Equal(t, "orders", table)

	conventions := adapter.NewConventions()
	ops := adapter.NewOperatorTable()

	registry := trait.NewRegistry()
	planner := memo.NewPlanner(registry, memo.NewStatsCoster(memo.NewMapStats()))

	a := New("127.0.0.1:3306", "shop")
	conv, err := adapter.Register(a, conventions, ops, planner)
	require.NoError(t, err)
	require.Equal(t, "JDBC", conv.Name)

	require.NoError(t, planner.AddTraitDef(conventions.Def()))
	_, hasLike := ops.Lookup("LIKE")
	require.True(t, hasLike)

	logicalTraits := registry.Default()
	scan := algebra.NewScan(table, []algebra.ColumnDef{{Name: "id"}, {Name: "total"}}, logicalTraits)

	goalTraits := logicalTraits.With(conventions.Def(), conv)
	_, err = planner.SetRoot(scan, goalTraits)
	require.NoError(t, err)

	plan, err := planner.FindBestPlan()
	require.NoError(t, err)
	require.Equal(t, memo.Done, planner.Status())

	physical, ok := plan.(*JDBCScan)
	require.True(t, ok)
	require.Equal(t, table, physical.Table())
	require.Contains(t, physical.DSN(), "shop")
}
