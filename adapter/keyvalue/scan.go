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

// Package keyvalue is an illustrative registrant for the adapter
// contract (spec §6): it registers a KeyValue convention and a
// KeyValueScan physical operator keyed by a single equality predicate,
// the shape a key-value store answers with a single GET instead of a
// full scan.
package keyvalue

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

var kindKeyValueScan = algebra.RegisterPhysicalKind("KeyValueScan")

// KeyValueScan is the physical leaf reading a single row by its key
// column's equality predicate, e.g. Filter(id = 42)(Scan(T)) answered
// by one GET instead of a table scan. Addr is display-only codegen
// metadata built from the driver's own option struct.
type KeyValueScan struct {
	table   string
	keyCol  string
	key     string
	columns []algebra.ColumnDef
	addr    string
	traits  *trait.Set
	digest  string
}

func NewKeyValueScan(table, keyCol, key string, columns []algebra.ColumnDef, addr string, traits *trait.Set) *KeyValueScan {
	opts := &redis.Options{Addr: addr}
	s := &KeyValueScan{table: table, keyCol: keyCol, key: key, columns: columns, addr: opts.Addr, traits: traits}
	s.digest = fmt.Sprintf("%s(%s:%s=%s)[%s]", kindKeyValueScan, table, keyCol, key, traits.Key())
	return s
}

func (s *KeyValueScan) Table() string               { return s.table }
func (s *KeyValueScan) KeyColumn() string           { return s.keyCol }
func (s *KeyValueScan) Key() string                 { return s.key }
func (s *KeyValueScan) Columns() []algebra.ColumnDef { return s.columns }
func (s *KeyValueScan) RowType() []algebra.ColumnDef { return s.columns }
func (s *KeyValueScan) Addr() string                 { return s.addr }

func (s *KeyValueScan) Kind() algebra.Kind      { return kindKeyValueScan }
func (s *KeyValueScan) Digest() string          { return s.digest }
func (s *KeyValueScan) Traits() *trait.Set      { return s.traits }
func (s *KeyValueScan) Inputs() []algebra.Input { return nil }

func (s *KeyValueScan) WithInputs(inputs []algebra.Input) algebra.Node {
	if len(inputs) != 0 {
		panic("keyvalue: KeyValueScan takes no inputs")
	}
	return s
}

func (s *KeyValueScan) WithTraits(t *trait.Set) algebra.Node {
	cp := *s
	cp.traits = t
	return &cp
}

func (s *KeyValueScan) String() string {
	return fmt.Sprintf("KeyValueScan[%s:%s=%s]", s.table, s.keyCol, s.key)
}
