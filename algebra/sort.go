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

// SortKey is one ORDER BY term.
type SortKey struct {
	Expr rowexpr.Expr
	Desc bool
}

func (k SortKey) String() string {
	if k.Desc {
		return k.Expr.String() + " DESC"
	}
	return k.Expr.String()
}

// Sort orders its single input by Keys; ties retain input order.
type Sort struct {
	base
	Keys []SortKey
}

func NewSort(input Input, keys []SortKey, traits *trait.Set) *Sort {
	s := &Sort{Keys: keys}
	s.inputs = []Input{input}
	s.traits = traits
	s.digest = computeDigest(KindSort, s.inputs, traits, s.payload())
	return s
}

func (s *Sort) payload() string {
	parts := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

func (s *Sort) Kind() Kind { return KindSort }

func (s *Sort) Child() Input { return s.inputs[0] }

func (s *Sort) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Sort takes exactly one input")
	}
	return NewSort(inputs[0], s.Keys, s.traits)
}

func (s *Sort) WithTraits(t *trait.Set) Node {
	return NewSort(s.inputs[0], s.Keys, t)
}

func (s *Sort) String() string {
	return fmt.Sprintf("Sort[%s](%s)", s.payload(), s.inputs[0])
}
