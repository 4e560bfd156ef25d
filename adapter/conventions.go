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

package adapter

import "github.com/polybase/optimizer/trait"

// Conventions collects every convention declared by the registered
// adapters plus the pairwise converters they know how to build, and
// builds the single shared trait.Def all of them are manifestations
// of. A trait.Def has exactly one "convention" slot per registry
// (trait.ConventionDef), so every adapter's RegisterConvention call
// contributes to this one shared registry rather than building its
// own Def.
type Conventions struct {
	list       []*trait.Convention
	converters map[conversionKey]trait.ConverterFactory
	def        *trait.Def
}

type conversionKey struct{ from, to string }

func NewConventions() *Conventions {
	return &Conventions{converters: map[conversionKey]trait.ConverterFactory{}}
}

// Declare records conv as a known convention and returns it unchanged,
// for adapters to call as `return conventions.Declare(myConvention)`.
func (c *Conventions) Declare(conv *trait.Convention) *trait.Convention {
	c.list = append(c.list, conv)
	return conv
}

// RegisterConverter records a factory converting from -> to. Adapters
// that know how to read a sibling convention's physical rows directly
// (e.g. an enumerable interpreter that can iterate any pushdown
// source) call this after Declare.
func (c *Conventions) RegisterConverter(from, to *trait.Convention, f trait.ConverterFactory) {
	c.converters[conversionKey{from.Name, to.Name}] = f
}

// Def builds (once) and returns the shared trait.Def every declared
// convention is a manifestation of. It may be called before all
// conventions and converters are registered: its conversion function
// looks converters up in c at conversion time, so a converter
// registered later is still found.
func (c *Conventions) Def() *trait.Def {
	if c.def != nil {
		return c.def
	}
	c.def = trait.ConventionDef(
		func(have, want *trait.Convention) bool { return false },
		func(input trait.Node, from, target trait.Manifestation, allowInfinite bool) (trait.Node, bool) {
			fromConv, ok1 := from.(*trait.Convention)
			toConv, ok2 := target.(*trait.Convention)
			if !ok1 || !ok2 {
				return nil, false
			}
			factory, ok := c.converters[conversionKey{fromConv.Name, toConv.Name}]
			if !ok {
				return nil, false
			}
			return factory(input, from, target, allowInfinite)
		},
	)
	return c.def
}
