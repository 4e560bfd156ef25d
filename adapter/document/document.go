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
	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Adapter registers the Document convention, a Regex pushdown
// operator, and the two implementation rules converting a logical
// Scan (and, when the predicate is a supported pushdown shape, a
// logical Filter over it) into this store's physical operators.
type Adapter struct {
	convention *trait.Convention
	def        *trait.Def
}

func New() *Adapter { return &Adapter{} }

func (a *Adapter) Name() string { return "document" }

// Regex is a document-store pushdown operator: stores that speak a
// native regex query operator (Mongo's $regex) can evaluate it at the
// source.
var Regex = &rowexpr.Operator{
	Kind:          rowexpr.OpOther,
	Name:          "REGEX",
	Deterministic: true,
	NullStrict:    true,
	ReturnType: func(ops []rowexpr.Expr) rowexpr.Type {
		return rowexpr.Type{Kind: rowexpr.Boolean, Nullable: rowexprAnyNullable(ops)}
	},
}

func rowexprAnyNullable(ops []rowexpr.Expr) bool {
	for _, o := range ops {
		if o.Type().Nullable {
			return true
		}
	}
	return false
}

func (a *Adapter) RegisterOperators(reg adapter.OperatorRegistry) {
	reg.RegisterOperator(Regex)
}

func (a *Adapter) RegisterConvention(conventions *adapter.Conventions) *trait.Convention {
	a.convention = conventions.Declare(&trait.Convention{Name: "Document"})
	a.def = conventions.Def()
	return a.convention
}

func (a *Adapter) RegisterRules(planner *memo.Planner) error {
	if err := planner.AddRule(scanToDocumentScanRule{adapter: a}); err != nil {
		return err
	}
	return planner.AddRule(filterToMatchRule{adapter: a})
}

// scanToDocumentScanRule implements a bare logical Scan as a
// DocumentScan reading the mapped collection.
type scanToDocumentScanRule struct{ adapter *Adapter }

func (scanToDocumentScanRule) Name() string { return "ScanToDocumentScan" }

func (scanToDocumentScanRule) Pattern() *memo.Pattern {
	return memo.NewPattern(memo.Op(algebra.KindScan))
}

func (r scanToDocumentScanRule) Apply(space *memo.Space, root algebra.Node) ([]algebra.Node, error) {
	scan := root.(*algebra.Scan)
	physicalTraits := scan.Traits().With(r.adapter.def, r.adapter.convention)
	phys := NewDocumentScan(CollectionName(scan.Table), scan.Columns, physicalTraits)
	return []algebra.Node{phys}, nil
}

// filterToMatchRule fuses a logical Filter over a Scan into a single
// physical Match node when the predicate is a pushdown-supported
// equality, the way a document store answers scan+filter with one
// $match aggregation stage instead of two.
type filterToMatchRule struct{ adapter *Adapter }

func (filterToMatchRule) Name() string { return "FilterToDocumentMatch" }

func (filterToMatchRule) Pattern() *memo.Pattern {
	return memo.NewPattern(memo.Op(algebra.KindFilter, memo.Op(algebra.KindScan)))
}

func (r filterToMatchRule) Apply(space *memo.Space, root algebra.Node) ([]algebra.Node, error) {
	filter := root.(*algebra.Filter)
	childSub, ok := filter.Child().(*memo.Subset)
	if !ok {
		return nil, nil
	}
	var out []algebra.Node
	for _, member := range childSub.Members() {
		scan, ok := member.(*algebra.Scan)
		if !ok {
			continue
		}
		if _, err := BuildFilter(filter.Predicate, scan.Columns); err != nil {
			continue
		}
		physicalTraits := filter.Traits().With(r.adapter.def, r.adapter.convention)
		out = append(out, algebra.NewMatch(CollectionName(scan.Table), filter.Predicate, scan.Columns, physicalTraits))
	}
	return out, nil
}
