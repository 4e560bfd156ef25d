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

var kindConverter = RegisterPhysicalKind("Converter")

// Converter is the physical node the trait framework inserts when a
// parent requires a trait its input doesn't deliver: it reads from one
// input and re-exposes its rows under a different trait set, with no
// other effect on row content. From/To name the manifestation pair for
// logging and cost-model dispatch.
type Converter struct {
	base
	From, To trait.Manifestation
}

func NewConverter(input Input, from, to trait.Manifestation, target *trait.Set) *Converter {
	c := &Converter{From: from, To: to}
	c.inputs = []Input{input}
	c.traits = target
	c.digest = computeDigest(kindConverter, c.inputs, target, from.String()+"->"+to.String())
	return c
}

func (c *Converter) Kind() Kind { return kindConverter }

func (c *Converter) Child() Input { return c.inputs[0] }

func (c *Converter) WithInputs(inputs []Input) Node {
	if len(inputs) != 1 {
		panic("algebra: Converter takes exactly one input")
	}
	return NewConverter(inputs[0], c.From, c.To, c.traits)
}

func (c *Converter) WithTraits(t *trait.Set) Node {
	return NewConverter(c.inputs[0], c.From, c.To, t)
}

func (c *Converter) String() string {
	return fmt.Sprintf("Converter[%s->%s](%s)", c.From, c.To, c.inputs[0])
}
