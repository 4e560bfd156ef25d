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
	"github.com/polybase/optimizer/adapter"
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Adapter registers the KeyValue convention and the implementation
// rule that recognizes a single-key equality filter over a scan and
// answers it with one KeyValueScan instead of a full table read.
type Adapter struct {
	Addr string

	convention *trait.Convention
	def        *trait.Def
}

func New(addr string) *Adapter { return &Adapter{Addr: addr} }

func (a *Adapter) Name() string { return "keyvalue" }

// HGet is a key-value pushdown operator representing a hash-field
// lookup, the kind of store-native access a richer key-value adapter
// (reading struct-valued values) could push down beyond plain GET.
var HGet = &rowexpr.Operator{
	Kind:          rowexpr.OpOther,
	Name:          "HGET",
	Deterministic: true,
	NullStrict:    true,
	ReturnType: func(ops []rowexpr.Expr) rowexpr.Type {
		return rowexpr.Type{Kind: rowexpr.String, Nullable: true}
	},
}

func (a *Adapter) RegisterOperators(reg adapter.OperatorRegistry) {
	reg.RegisterOperator(HGet)
}

func (a *Adapter) RegisterConvention(conventions *adapter.Conventions) *trait.Convention {
	a.convention = conventions.Declare(&trait.Convention{Name: "KeyValue"})
	a.def = conventions.Def()
	return a.convention
}

func (a *Adapter) RegisterRules(planner *memo.Planner) error {
	return planner.AddRule(filterToKeyValueScanRule{adapter: a})
}

// filterToKeyValueScanRule recognizes Filter(col = literal)(Scan(T))
// and answers it with a single-key KeyValueScan.
type filterToKeyValueScanRule struct{ adapter *Adapter }

func (filterToKeyValueScanRule) Name() string { return "FilterToKeyValueScan" }

func (filterToKeyValueScanRule) Pattern() *memo.Pattern {
	return memo.NewPattern(memo.Op(algebra.KindFilter, memo.Op(algebra.KindScan)))
}

func (r filterToKeyValueScanRule) Apply(space *memo.Space, root algebra.Node) ([]algebra.Node, error) {
	filter := root.(*algebra.Filter)
	ref, lit, ok := equalityKey(filter.Predicate)
	if !ok {
		return nil, nil
	}
	childSub, ok := filter.Child().(*memo.Subset)
	if !ok {
		return nil, nil
	}
	var out []algebra.Node
	for _, member := range childSub.Members() {
		scan, ok := member.(*algebra.Scan)
		if !ok || ref.Index < 0 || ref.Index >= len(scan.Columns) {
			continue
		}
		physicalTraits := filter.Traits().With(r.adapter.def, r.adapter.convention)
		out = append(out, NewKeyValueScan(scan.Table, scan.Columns[ref.Index].Name, lit, scan.Columns, r.adapter.Addr, physicalTraits))
	}
	return out, nil
}

// equalityKey reports whether predicate is a single-column equality
// against a literal, and if so the ref and the literal's display
// value used as the store key.
func equalityKey(predicate rowexpr.Expr) (*rowexpr.InputRef, string, bool) {
	call, ok := predicate.(*rowexpr.Call)
	if !ok || call.Op.Kind != rowexpr.OpEq || len(call.Operands) != 2 {
		return nil, "", false
	}
	if ref, ok := call.Operands[0].(*rowexpr.InputRef); ok {
		if lit, ok := call.Operands[1].(*rowexpr.Literal); ok {
			return ref, lit.String(), true
		}
	}
	if ref, ok := call.Operands[1].(*rowexpr.InputRef); ok {
		if lit, ok := call.Operands[0].(*rowexpr.Literal); ok {
			return ref, lit.String(), true
		}
	}
	return nil, "", false
}
