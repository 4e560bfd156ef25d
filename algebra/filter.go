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

// Filter keeps only rows of its single input for which Predicate is
// true (SQL three-valued logic: unknown and false are both dropped).
type Filter struct {
	base
	Predicate rowexpr.Expr
}

func NewFilter(input Input, predicate rowexpr.Expr, traits *trait.Set) *Filter {
	f := &Filter{Predicate: predicate}
	f.inputs = []Input{input}
	f.traits = traits
	f.digest = computeDigest(KindFilter, f.inputs, traits, predicate.String())
	return f
}

func (f *Filter) Kind() Kind { return KindFilter }

func (f *Filter) Child() Input { return f.inputs[0] }

func (f *Filter) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Filter takes exactly one input")
	}
	return NewFilter(inputs[0], f.Predicate, f.traits)
}

func (f *Filter) WithTraits(t *trait.Set) Node {
	return NewFilter(f.inputs[0], f.Predicate, t)
}

// WithPredicate returns a copy of f with its predicate replaced,
// keeping its input and traits.
func (f *Filter) WithPredicate(p rowexpr.Expr) *Filter {
	return NewFilter(f.inputs[0], p, f.traits)
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter[%s](%s)", f.Predicate, f.inputs[0])
}
