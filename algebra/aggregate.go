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

// Aggregate groups its single input by GroupBy and evaluates Aggregates
// (calls to aggregate operators such as SUM/COUNT) per group.
type Aggregate struct {
	base
	GroupBy    []rowexpr.Expr
	Aggregates []rowexpr.Expr
	Names      []string
}

func NewAggregate(input Input, groupBy, aggregates []rowexpr.Expr, names []string, traits *trait.Set) *Aggregate {
	a := &Aggregate{GroupBy: groupBy, Aggregates: aggregates, Names: names}
	a.inputs = []Input{input}
	a.traits = traits
	a.digest = computeDigest(KindAggregate, a.inputs, traits, a.payload())
	return a
}

func (a *Aggregate) payload() string {
	g := make([]string, len(a.GroupBy))
	for i, e := range a.GroupBy {
		g[i] = e.String()
	}
	agg := make([]string, len(a.Aggregates))
	for i, e := range a.Aggregates {
		agg[i] = a.Names[i] + "=" + e.String()
	}
	return "group(" + strings.Join(g, ",") + ");agg(" + strings.Join(agg, ",") + ")"
}

func (a *Aggregate) Kind() Kind { return KindAggregate }

func (a *Aggregate) Child() Input { return a.inputs[0] }

func (a *Aggregate) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Aggregate takes exactly one input")
	}
	return NewAggregate(inputs[0], a.GroupBy, a.Aggregates, a.Names, a.traits)
}

func (a *Aggregate) WithTraits(t *trait.Set) Node {
	return NewAggregate(a.inputs[0], a.GroupBy, a.Aggregates, a.Names, t)
}

func (a *Aggregate) String() string {
	return fmt.Sprintf("Aggregate[%s]", a.payload())
}
