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

// Values is a leaf node producing a fixed, literal set of rows
// (VALUES lists, inline tuple constants). It has no inputs.
type Values struct {
	base
	Rows    [][]rowexpr.Expr
	Columns []ColumnDef
}

func NewValues(rows [][]rowexpr.Expr, columns []ColumnDef, traits *trait.Set) *Values {
	v := &Values{Rows: rows, Columns: columns}
	v.traits = traits
	v.digest = computeDigest(KindValues, nil, traits, v.payload())
	return v
}

func (v *Values) payload() string {
	rows := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		cells := make([]string, len(row))
		for j, e := range row {
			cells[j] = e.String()
		}
		rows[i] = "(" + strings.Join(cells, ",") + ")"
	}
	return strings.Join(rows, ",")
}

func (v *Values) Kind() Kind { return KindValues }

func (v *Values) WithInputs(inputs []Input) Node {
	if len(inputs) != 0 {
		panic("algebra: Values takes no inputs")
	}
	return v
}

func (v *Values) WithTraits(t *trait.Set) Node {
	return NewValues(v.Rows, v.Columns, t)
}

func (v *Values) String() string {
	return fmt.Sprintf("Values[%d rows]", len(v.Rows))
}
