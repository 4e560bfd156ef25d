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

// Package adapter defines the storage/engine plugin contract: the
// three registration interfaces an external collaborator (a JDBC
// pushdown source, a document store, a key-value store, ...)
// implements to contribute operator definitions, implementation rules
// and a convention to the planner, without the optimizer core knowing
// anything about the adapter's storage engine. The optimizer treats
// everything on the other side of this interface as opaque, per the
// external-interfaces contract.
package adapter

import (
	"github.com/polybase/optimizer/memo"
	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// OperatorRegistry is pushed operator definitions: name, kind, return-
// type inference, operand checker, determinism and monotonicity.
// Adapters use it to contribute row-expression operators their storage
// engine can evaluate (e.g. engine-specific functions pushed down
// verbatim).
type OperatorRegistry interface {
	RegisterOperator(op *rowexpr.Operator)
}

// OperatorTable is the reference OperatorRegistry: a name-keyed table
// adapters register into and the planner's caller consults when
// resolving a parsed function call to an Operator.
type OperatorTable struct {
	byName map[string]*rowexpr.Operator
}

func NewOperatorTable() *OperatorTable {
	return &OperatorTable{byName: map[string]*rowexpr.Operator{}}
}

func (t *OperatorTable) RegisterOperator(op *rowexpr.Operator) {
	t.byName[op.Name] = op
}

func (t *OperatorTable) Lookup(name string) (*rowexpr.Operator, bool) {
	op, ok := t.byName[name]
	return op, ok
}

// OperatorRegistrant is implemented by an adapter that contributes row-
// expression operators.
type OperatorRegistrant interface {
	RegisterOperators(OperatorRegistry)
}

// RuleRegistrant is implemented by an adapter that contributes
// implementation rules converting logical nodes into its own
// physical operators under its own convention.
type RuleRegistrant interface {
	RegisterRules(planner *memo.Planner) error
}

// ConventionRegistrant is implemented by an adapter that declares a
// convention (the protocol by which its physical operators exchange
// rows) and any converters it knows how to build into other
// conventions. It receives the shared Conventions registry so that
// every adapter's convention ends up a manifestation of the same
// single "convention" trait.Def (see trait.ConventionDef: the slot is
// one per registry, not one per adapter).
type ConventionRegistrant interface {
	RegisterConvention(conventions *Conventions) *trait.Convention
}

// Adapter bundles the three registration contracts an external
// collaborator satisfies to plug into the planner. An adapter with
// nothing to contribute to one of them still implements that method
// (as an empty body); this package provides no no-op default.
type Adapter interface {
	Name() string
	OperatorRegistrant
	RuleRegistrant
	ConventionRegistrant
}

// Register drives all three registration steps for a, in the order
// conventions (so rules can reference the resulting convention and
// the shared trait.Def),
// operators, then rules.
func Register(a Adapter, conventions *Conventions, ops OperatorRegistry, planner *memo.Planner) (*trait.Convention, error) {
	conv := a.RegisterConvention(conventions)
	a.RegisterOperators(ops)
	if err := a.RegisterRules(planner); err != nil {
		return nil, err
	}
	return conv, nil
}
