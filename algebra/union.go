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

	"github.com/polybase/optimizer/trait"
)

// Union concatenates rows of Left and Right, both of which must share a
// harmonized row type. All=false requires a distinct step downstream.
type Union struct {
	base
	All bool
}

func NewUnion(left, right Input, all bool, traits *trait.Set) *Union {
	u := &Union{All: all}
	u.inputs = []Input{left, right}
	u.traits = traits
	payload := "all"
	if !all {
		payload = "distinct"
	}
	u.digest = computeDigest(KindUnion, u.inputs, traits, payload)
	return u
}

func (u *Union) Kind() Kind { return KindUnion }

func (u *Union) Left() Input  { return u.inputs[0] }
func (u *Union) Right() Input { return u.inputs[1] }

func (u *Union) WithInputs(inputs []Input) Node {
	if len(inputs) != 2 {
		panic("algebra: Union takes exactly two inputs")
	}
	return NewUnion(inputs[0], inputs[1], u.All, u.traits)
}

func (u *Union) WithTraits(t *trait.Set) Node {
	return NewUnion(u.inputs[0], u.inputs[1], u.All, t)
}

func (u *Union) String() string {
	mode := "ALL"
	if !u.All {
		mode = "DISTINCT"
	}
	return fmt.Sprintf("Union[%s](%s, %s)", mode, u.inputs[0], u.inputs[1])
}
