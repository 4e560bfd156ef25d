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
	"strings"

	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// ColumnDef names one output column of a source node.
type ColumnDef struct {
	Name string
	Type rowexpr.Type
}

// Scan is a leaf node reading every row of a named relation. It has no
// inputs; adapters implement Scan for their own storage via a physical
// kind registered with RegisterPhysicalKind (e.g. JDBCScan, DocumentScan).
type Scan struct {
	base
	Table   string
	Columns []ColumnDef
}

// NewScan constructs a logical scan over table with the given output
// columns, carrying the given trait set.
func NewScan(table string, columns []ColumnDef, traits *trait.Set) *Scan {
	s := &Scan{Table: table, Columns: columns}
	s.traits = traits
	s.digest = computeDigest(KindScan, nil, traits, s.payload())
	return s
}

func (s *Scan) payload() string {
	var b strings.Builder
	b.WriteString(s.Table)
	for _, c := range s.Columns {
		b.WriteByte(',')
		b.WriteString(c.Name)
	}
	return b.String()
}

func (s *Scan) Kind() Kind { return KindScan }

func (s *Scan) RowType() []ColumnDef { return s.Columns }

func (s *Scan) WithInputs(inputs []Input) Node {
	if len(inputs) != 0 {
		panic("algebra: Scan takes no inputs")
	}
	return s
}

func (s *Scan) WithTraits(t *trait.Set) Node {
	return NewScan(s.Table, s.Columns, t)
}

func (s *Scan) String() string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return fmt.Sprintf("Scan[%s(%s)]", s.Table, strings.Join(names, ","))
}
