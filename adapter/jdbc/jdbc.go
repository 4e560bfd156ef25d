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
	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Adapter registers the JDBC convention, the Like pushdown operator,
// and the implementation rule converting a logical Scan into a
// JDBCScan under the connection parameters it was built with.
type Adapter struct {
	Addr, DB string

	convention *trait.Convention
	def        *trait.Def
}

func New(addr, db string) *Adapter { return &Adapter{Addr: addr, DB: db} }

func (a *Adapter) Name() string { return "jdbc" }

// Like is a JDBC-pushdown string-matching operator: engines that speak
// SQL can evaluate it at the source, so adapters that register it let
// rules push LIKE predicates below a JDBCScan instead of materializing
// the table and filtering locally.
var Like = &rowexpr.Operator{
	Kind:          rowexpr.OpOther,
	Name:          "LIKE",
	Deterministic: true,
	NullStrict:    true,
	ReturnType: func(ops []rowexpr.Expr) rowexpr.Type {
		nullable := false
		for _, o := range ops {
			nullable = nullable || o.Type().Nullable
		}
		return rowexpr.Type{Kind: rowexpr.Boolean, Nullable: nullable}
	},
}

func (a *Adapter) RegisterOperators(reg adapter.OperatorRegistry) {
	reg.RegisterOperator(Like)
}

func (a *Adapter) RegisterConvention(conventions *adapter.Conventions) *trait.Convention {
	a.convention = conventions.Declare(&trait.Convention{Name: "JDBC"})
	a.def = conventions.Def()
	return a.convention
}

func (a *Adapter) RegisterRules(planner *memo.Planner) error {
	return planner.AddRule(scanToJDBCScanRule{adapter: a})
}

// scanToJDBCScanRule is the implementation rule: logical Scan ->
// JDBCScan, keeping the logical scan's traits but substituting this
// adapter's convention manifestation for whatever convention the
// logical node carried (always NONE, since logical nodes are
// unimplementable).
type scanToJDBCScanRule struct {
	adapter *Adapter
}

func (r scanToJDBCScanRule) Name() string { return "ScanToJDBCScan" }

func (r scanToJDBCScanRule) Pattern() *memo.Pattern {
	return memo.NewPattern(memo.Op(algebra.KindScan))
}

func (r scanToJDBCScanRule) Apply(space *memo.Space, root algebra.Node) ([]algebra.Node, error) {
	scan := root.(*algebra.Scan)
	physicalTraits := scan.Traits().With(r.adapter.def, r.adapter.convention)
	phys := NewJDBCScan(scan.Table, scan.Columns, r.adapter.Addr, r.adapter.DB, physicalTraits)
	return []algebra.Node{phys}, nil
}
