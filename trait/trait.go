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

// Package trait implements the pluggable physical-trait framework:
// trait definitions (convention, collation, distribution), their
// partial order, default manifestations, and conversion synthesis.
package trait

import "fmt"

// Manifestation is one value of a trait, e.g. a specific convention or
// collation. Def.Satisfies compares manifestations by identity (pointer
// equality); a Def does not intern them, so two separately constructed
// values with the same name are different manifestations.
type Manifestation interface {
	fmt.Stringer
	// TraitName identifies which Def this manifestation belongs to.
	TraitName() string
}

// Node is the minimal shape a converter needs from the algebra layer:
// something with a trait set that can be wrapped. The memo package's
// Subset and every algebra.Node satisfy this.
type Node interface {
	Traits() *Set
}

// ConverterFactory builds a conversion node from input (already
// delivering `from`) to `target`, or returns (nil, false) when no
// conversion exists (e.g. target requires information `from` cannot
// provide even with infinite cost).
type ConverterFactory func(input Node, from, target Manifestation, allowInfinite bool) (Node, bool)

// Def is a pluggable trait definition: a slot in every TraitSet, a
// default manifestation, a partial order, and a converter factory.
type Def struct {
	// Name identifies the trait's slot, e.g. "convention", "collation".
	Name string
	// Slot is this trait's fixed index within a Set.
	Slot int
	// DefaultManifestation is used for nodes that don't care about
	// this trait.
	DefaultManifestation Manifestation
	// Satisfies reports whether holding `have` satisfies a requirement
	// of `want`. Must be reflexive (satisfies(a, a) == true) and is
	// typically, but not necessarily, transitive.
	Satisfies func(have, want Manifestation) bool
	// Convert returns a node implementing target given an input that
	// already delivers `have`, or (nil, false) if no conversion rule
	// is registered for the pair.
	Convert ConverterFactory
}

func (d *Def) Default() Manifestation { return d.DefaultManifestation }
