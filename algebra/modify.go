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

// ModifyKind distinguishes the DML operation a Modify node performs.
type ModifyKind uint8

const (
	Insert ModifyKind = iota
	Update
	Delete
)

func (k ModifyKind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Modify applies a DML operation against Target using the rows produced
// by its single input (the source of new/updated values, or the rows
// selected for deletion).
type Modify struct {
	base
	Op     ModifyKind
	Target string
}

func NewModify(input Input, op ModifyKind, target string, traits *trait.Set) *Modify {
	m := &Modify{Op: op, Target: target}
	m.inputs = []Input{input}
	m.traits = traits
	m.digest = computeDigest(KindModify, m.inputs, traits, op.String()+":"+target)
	return m
}

func (m *Modify) Kind() Kind { return KindModify }

func (m *Modify) Child() Input { return m.inputs[0] }

func (m *Modify) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Modify takes exactly one input")
	}
	return NewModify(inputs[0], m.Op, m.Target, m.traits)
}

func (m *Modify) WithTraits(t *trait.Set) Node {
	return NewModify(m.inputs[0], m.Op, m.Target, t)
}

func (m *Modify) String() string {
	return fmt.Sprintf("%s[%s](%s)", m.Op, m.Target, m.inputs[0])
}
