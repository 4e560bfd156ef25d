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

package algebra

import (
	"fmt"

	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Match is a leaf node combining a scan of a semi-structured collection
// with a predicate pushed all the way to the source, the shape a
// document-store adapter registers instead of separate Scan+Filter
// (adapter/document's filter-to-match rule builds it).
type Match struct {
	base
	Collection string
	Predicate  rowexpr.Expr
	Columns    []ColumnDef
}

func NewMatch(collection string, predicate rowexpr.Expr, columns []ColumnDef, traits *trait.Set) *Match {
	m := &Match{Collection: collection, Predicate: predicate, Columns: columns}
	m.traits = traits
	payload := collection
	if predicate != nil {
		payload += ":" + predicate.String()
	}
	m.digest = computeDigest(KindMatch, nil, traits, payload)
	return m
}

func (m *Match) Kind() Kind { return KindMatch }

func (m *Match) RowType() []ColumnDef { return m.Columns }

func (m *Match) WithInputs(inputs []Input) Node {
	if len(inputs) != 0 {
		panic("algebra: Match takes no inputs")
	}
	return m
}

func (m *Match) WithTraits(t *trait.Set) Node {
	return NewMatch(m.Collection, m.Predicate, m.Columns, t)
}

func (m *Match) String() string {
	if m.Predicate == nil {
		return fmt.Sprintf("Match[%s]", m.Collection)
	}
	return fmt.Sprintf("Match[%s](%s)", m.Collection, m.Predicate)
}
