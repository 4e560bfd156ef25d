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

// Package document is an illustrative registrant for the adapter
// contract: it registers a Document convention and two physical
// operators — DocumentScan for a bare scan, and the core Match algebra
// node carrying the Document convention when a filter can be pushed
// all the way to the source, the way a real document store fuses
// scan+filter into a single $match stage.
package document

import (
	"fmt"

	"github.com/jinzhu/inflection"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

var kindDocumentScan = algebra.RegisterPhysicalKind("DocumentScan")

// DocumentScan is the physical leaf that reads every document of a
// collection. Collection is derived from the logical table name via
// CollectionName, following the mapping the document adapter applies
// when no explicit table->collection mapping is registered.
type DocumentScan struct {
	collection string
	columns    []algebra.ColumnDef
	traits     *trait.Set
	digest     string
}

// CollectionName pluralizes entity into a Mongo collection name, the
// default naming convention this adapter applies absent an explicit
// mapping (grounded on omniql/mapping's table/collection conventions).
func CollectionName(entity string) string {
	return inflection.Plural(entity)
}

func NewDocumentScan(collection string, columns []algebra.ColumnDef, traits *trait.Set) *DocumentScan {
	s := &DocumentScan{collection: collection, columns: columns, traits: traits}
	s.digest = fmt.Sprintf("%s(%s)[%s]", kindDocumentScan, collection, traits.Key())
	return s
}

func (s *DocumentScan) Collection() string           { return s.collection }
func (s *DocumentScan) Columns() []algebra.ColumnDef { return s.columns }
func (s *DocumentScan) RowType() []algebra.ColumnDef { return s.columns }

func (s *DocumentScan) Kind() algebra.Kind      { return kindDocumentScan }
func (s *DocumentScan) Digest() string          { return s.digest }
func (s *DocumentScan) Traits() *trait.Set      { return s.traits }
func (s *DocumentScan) Inputs() []algebra.Input { return nil }

func (s *DocumentScan) WithInputs(inputs []algebra.Input) algebra.Node {
	if len(inputs) != 0 {
		panic("document: DocumentScan takes no inputs")
	}
	return s
}

func (s *DocumentScan) WithTraits(t *trait.Set) algebra.Node {
	cp := *s
	cp.traits = t
	return &cp
}

func (s *DocumentScan) String() string {
	return fmt.Sprintf("DocumentScan[%s]", s.collection)
}
