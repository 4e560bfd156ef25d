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

package trait

// Convention is a trait manifestation naming the protocol by which a
// physical operator exchanges rows (enumerable execution, a JDBC
// pushdown, a document store, ...). Conventions additionally carry an
// interpreter/codegen flag used by downstream consumers of the
// extracted physical plan.
type Convention struct {
	Name   string
	// Codegen is true when this convention's operators can be handed
	// directly to a downstream code generator rather than interpreted.
	Codegen bool
}

func (c *Convention) String() string    { return c.Name }
func (c *Convention) TraitName() string { return "convention" }

// None is the distinguished convention carried by logical nodes. It
// cannot satisfy any non-None requirement and is unimplementable: a
// subset whose only members carry None can never be extracted as a
// physical plan.
var None = &Convention{Name: "NONE"}

// ConventionDef constructs the trait.Def for the convention slot. satisfy
// decides which conventions can directly implement which; convert is
// the registry of pairwise converters, looked up by (have, want).
func ConventionDef(satisfy func(have, want *Convention) bool, convert ConverterFactory) *Def {
	return &Def{
		Name:                 "convention",
		DefaultManifestation: None,
		Satisfies: func(have, want Manifestation) bool {
			h, hok := have.(*Convention)
			w, wok := want.(*Convention)
			if !hok || !wok {
				return have == want
			}
			if h == None {
				return w == None
			}
			return h == w || satisfy(h, w)
		},
		Convert: convert,
	}
}
