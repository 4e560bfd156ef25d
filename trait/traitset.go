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

import "strings"

// Registry owns the fixed list of trait Defs active for a planning
// run. Defs must all be registered before any Set is constructed;
// registries are built once during single-threaded initialization and
// shared (read-only) across concurrent planner runs.
type Registry struct {
	defs []*Def
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a Def, assigning it the next free slot. Defs must
// not be registered after any Set has been built from this registry.
func (r *Registry) Register(d *Def) *Def {
	d.Slot = len(r.defs)
	r.defs = append(r.defs, d)
	return d
}

func (r *Registry) Defs() []*Def { return r.defs }

// Default builds a Set where every slot holds its Def's default
// manifestation.
func (r *Registry) Default() *Set {
	s := &Set{registry: r, slots: make([]Manifestation, len(r.defs))}
	for i, d := range r.defs {
		s.slots[i] = d.DefaultManifestation
	}
	return s
}

// Set is a fixed-length vector of trait manifestations, one slot per
// registered Def. Sets are immutable; With* methods return a modified
// copy.
type Set struct {
	registry *Registry
	slots    []Manifestation
}

func (s *Set) Registry() *Registry { return s.registry }

// Get returns the manifestation held in d's slot.
func (s *Set) Get(d *Def) Manifestation {
	return s.slots[d.Slot]
}

// With returns a copy of s with d's slot set to m.
func (s *Set) With(d *Def, m Manifestation) *Set {
	cp := &Set{registry: s.registry, slots: append([]Manifestation{}, s.slots...)}
	cp.slots[d.Slot] = m
	return cp
}

// Satisfies reports whether s satisfies every slot of want: for every
// Def, s's manifestation in that slot must satisfy want's.
func (s *Set) Satisfies(want *Set) bool {
	for _, d := range s.registry.defs {
		if !d.Satisfies(s.Get(d), want.Get(d)) {
			return false
		}
	}
	return true
}

// Key returns a canonical string key for interning Subsets keyed on
// TraitSet, so equal Sets (by manifestation identity) collide.
func (s *Set) Key() string {
	var b strings.Builder
	for i, m := range s.slots {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(m.String())
	}
	return b.String()
}

func (s *Set) String() string { return s.Key() }
