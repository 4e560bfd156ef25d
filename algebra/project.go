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

// Project computes a fixed output row from its single input by
// evaluating Projections in order; Names gives the output column name
// for each projection.
type Project struct {
	base
	Projections []rowexpr.Expr
	Names       []string
}

func NewProject(input Input, projections []rowexpr.Expr, names []string, traits *trait.Set) *Project {
	p := &Project{Projections: projections, Names: names}
	p.inputs = []Input{input}
	p.traits = traits
	p.digest = computeDigest(KindProject, p.inputs, traits, p.payload())
	return p
}

func (p *Project) payload() string {
	parts := make([]string, len(p.Projections))
	for i, e := range p.Projections {
		parts[i] = p.Names[i] + "=" + e.String()
	}
	return strings.Join(parts, ",")
}

func (p *Project) Kind() Kind { return KindProject }

// RowType returns one ColumnDef per projection, named per Names and
// typed per the projection expression's own resolved Type.
func (p *Project) RowType() []ColumnDef {
	cols := make([]ColumnDef, len(p.Projections))
	for i, e := range p.Projections {
		cols[i] = ColumnDef{Name: p.Names[i], Type: e.Type()}
	}
	return cols
}

func (p *Project) Child() Input { return p.inputs[0] }

func (p *Project) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Project takes exactly one input")
	}
	return NewProject(inputs[0], p.Projections, p.Names, p.traits)
}

func (p *Project) WithTraits(t *trait.Set) Node {
	return NewProject(p.inputs[0], p.Projections, p.Names, t)
}

func (p *Project) String() string {
	return fmt.Sprintf("Project[%s](%s)", strings.Join(p.Names, ","), p.inputs[0])
}
