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

// Package jdbc is an illustrative registrant for the adapter contract
// (spec §6): it registers a JDBC convention and a JDBCScan physical
// operator that implements a logical Scan, exercising the "storage
// adapters contribute rules and physical operators via a registration
// interface" contract without talking to a real database.
package jdbc

import (
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

var kindJDBCScan = algebra.RegisterPhysicalKind("JDBCScan")

// JDBCScan is the physical leaf that reads Table through a JDBC-style
// pushdown connection. DSN is display-only codegen metadata, built the
// same way the driver's own consumers build one: a plain tcp DSN
// string, not dialed by this package.
type JDBCScan struct {
	table   string
	columns []algebra.ColumnDef
	dsn     string
	traits  *trait.Set
	digest  string
}

// NewJDBCScan builds the physical scan, labeling it with the DSN it
// would connect through so the extracted plan can be inspected for
// diagnostics without this package ever dialing it.
func NewJDBCScan(table string, columns []algebra.ColumnDef, addr, db string, traits *trait.Set) *JDBCScan {
	dsn := fmt.Sprintf("tcp(%s)/%s?parseTime=true", addr, db)
	s := &JDBCScan{table: table, columns: columns, dsn: dsn, traits: traits}
	s.digest = fmt.Sprintf("%s(%s)[%s]:%s", kindJDBCScan, table, traits.Key(), s.dsn)
	return s
}

// ClassifyError reports whether err is a MySQL server error
// (*mysql.MySQLError) and, if so, its error number, so callers can
// tell query rejections from transport failures. It does not judge
// whether the error is retryable.
func ClassifyError(err error) (code uint16, ok bool) {
	if e, ok := err.(*gomysql.MySQLError); ok {
		return e.Number, true
	}
	return 0, false
}

func (s *JDBCScan) Table() string               { return s.table }
func (s *JDBCScan) Columns() []algebra.ColumnDef { return s.columns }
func (s *JDBCScan) RowType() []algebra.ColumnDef { return s.columns }
func (s *JDBCScan) DSN() string                  { return s.dsn }

func (s *JDBCScan) Kind() algebra.Kind    { return kindJDBCScan }
func (s *JDBCScan) Digest() string        { return s.digest }
func (s *JDBCScan) Traits() *trait.Set    { return s.traits }
func (s *JDBCScan) Inputs() []algebra.Input { return nil }

func (s *JDBCScan) WithInputs(inputs []algebra.Input) algebra.Node {
	if len(inputs) != 0 {
		panic("jdbc: JDBCScan takes no inputs")
	}
	return s
}

func (s *JDBCScan) WithTraits(t *trait.Set) algebra.Node {
	cp := *s
	cp.traits = t
	return &cp
}

func (s *JDBCScan) String() string {
	return fmt.Sprintf("JDBCScan[%s]", s.table)
}
