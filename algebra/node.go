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

// Package algebra implements the relational algebra IR: a closed set of
// logical node kinds (scan, filter, project, join, aggregate, sort,
// union, values, modify, match) plus an open registration table for
// adapter-provided physical kinds. Every Node carries a digest for
// deduplication, a trait set, and an ordered list of Input handles —
// references into the equivalence search space owned by package memo.
package algebra

import (
	"fmt"
	"strings"
	"sync"

	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// Kind tags a Node's operator. The first block is the closed set of
// logical kinds from the data model; values >= firstPhysicalKind are
// assigned at runtime to adapter-registered physical operators.
type Kind uint16

const (
	KindInvalid Kind = iota
	KindScan
	KindFilter
	KindProject
	KindJoin
	KindAggregate
	KindSort
	KindUnion
	KindValues
	KindModify
	KindMatch

	firstPhysicalKind Kind = 1000
)

func (k Kind) String() string {
	switch k {
	case KindScan:
		return "Scan"
	case KindFilter:
		return "Filter"
	case KindProject:
		return "Project"
	case KindJoin:
		return "Join"
	case KindAggregate:
		return "Aggregate"
	case KindSort:
		return "Sort"
	case KindUnion:
		return "Union"
	case KindValues:
		return "Values"
	case KindModify:
		return "Modify"
	case KindMatch:
		return "Match"
	default:
		if name, ok := lookupPhysicalName(k); ok {
			return name
		}
		return fmt.Sprintf("Kind(%d)", k)
	}
}

var (
	kindRegistryMu sync.Mutex
	nextPhysical   = firstPhysicalKind
	physicalNames  = map[Kind]string{}
)

// RegisterPhysicalKind allocates a new Kind for an adapter-provided
// physical operator, following the data model's "tagged sum type ...
// plus adapter-provided physical kinds via a registration table"
// design note. Names must be unique per process.
func RegisterPhysicalKind(name string) Kind {
	kindRegistryMu.Lock()
	defer kindRegistryMu.Unlock()
	k := nextPhysical
	nextPhysical++
	physicalNames[k] = name
	return k
}

func lookupPhysicalName(k Kind) (string, bool) {
	kindRegistryMu.Lock()
	defer kindRegistryMu.Unlock()
	name, ok := physicalNames[k]
	return name, ok
}

// RowTyped is implemented by nodes whose output row shape (column
// count) can be determined from their own fields alone, without
// consulting input subsets: Scan, Match, Project, and adapter-provided
// physical scans. transformTo uses it for a best-
// effort row-type compatibility check between a rewritten node and its
// replacement; nodes that don't implement it are trusted, per the rule
// engine's "rule authors declare complexity; the engine does not
// enforce" stance on rule-supplied rewrites.
type RowTyped interface {
	RowType() []ColumnDef
}

// Input is a handle to one input of a Node: a reference to an
// equivalence-class subset, never a concrete node. Package memo's
// Subset type implements this.
type Input interface {
	fmt.Stringer
	// Digest identifies the referenced subset for digest computation.
	Digest() string
}

// Cluster describes a per-planning-run row-type factory. No node type
// in this package holds a Cluster, and nothing in this module
// implements or consumes the interface; nodes carry their traits and
// inputs only.
type Cluster interface {
	// NextRowType resolves the output row type for a node given its
	// kind-specific fields and its already-resolved input row types.
	NextRowType(n Node, inputs []rowexpr.Type) rowexpr.Type
}

// Node is the common shape of every algebra node: a stable digest, a
// trait set, and an ordered list of input handles. Concrete node types
// embed base and add kind-specific fields (predicates, projections,
// join type, ...).
type Node interface {
	Kind() Kind
	Digest() string
	Traits() *trait.Set
	Inputs() []Input
	// WithInputs returns a copy of the node with its input list
	// replaced; used when a converter or rewrite rule changes which
	// subsets an existing node reads from.
	WithInputs(inputs []Input) Node
	// WithTraits returns a copy of the node with its trait set
	// replaced, used by converter insertion.
	WithTraits(t *trait.Set) Node
	fmt.Stringer
}

// base is embedded by every concrete node and caches its digest.
type base struct {
	traits *trait.Set
	inputs []Input
	digest string
}

func (b *base) Traits() *trait.Set { return b.traits }
func (b *base) Inputs() []Input    { return b.inputs }
func (b *base) Digest() string     { return b.digest }

// computeDigest builds the canonical structural key for a node: its
// kind, its input subsets' digests in order, its trait-set key, and
// any kind-specific payload already rendered to a string by the
// caller. Equal digests imply structurally identical nodes.
func computeDigest(k Kind, inputs []Input, traits *trait.Set, payload string) string {
	var b strings.Builder
	b.WriteString(k.String())
	b.WriteByte('(')
	for i, in := range inputs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(in.Digest())
	}
	b.WriteString(")[")
	if traits != nil {
		b.WriteString(traits.Key())
	}
	b.WriteString("]")
	if payload != "" {
		b.WriteByte(':')
		b.WriteString(payload)
	}
	return b.String()
}
