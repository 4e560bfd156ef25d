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

package document

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/rowexpr"
)

// BuildFilter translates predicate into the bson.D a real Mongo driver
// would hand to Collection.Find, used by the document adapter's
// Filter-pushdown rule and by anything downstream that wants to
// execute the extracted Match node. Only equality over a single input
// column against a literal is supported; anything else is rejected so
// the rule can fall back to leaving the Filter above a plain
// DocumentScan instead of fusing it.
func BuildFilter(predicate rowexpr.Expr, columns []algebra.ColumnDef) (bson.D, error) {
	call, ok := predicate.(*rowexpr.Call)
	if !ok || call.Op.Kind != rowexpr.OpEq || len(call.Operands) != 2 {
		return nil, fmt.Errorf("document: unsupported predicate %s", predicate)
	}
	ref, lit, ok := asRefAndLiteral(call.Operands[0], call.Operands[1])
	if !ok {
		return nil, fmt.Errorf("document: predicate %s is not ref = literal", predicate)
	}
	if ref.Index < 0 || ref.Index >= len(columns) {
		return nil, fmt.Errorf("document: column index %d out of range", ref.Index)
	}
	return bson.D{{Key: columns[ref.Index].Name, Value: literalValue(lit)}}, nil
}

func asRefAndLiteral(a, b rowexpr.Expr) (*rowexpr.InputRef, *rowexpr.Literal, bool) {
	if ref, ok := a.(*rowexpr.InputRef); ok {
		if lit, ok := b.(*rowexpr.Literal); ok {
			return ref, lit, true
		}
	}
	if ref, ok := b.(*rowexpr.InputRef); ok {
		if lit, ok := a.(*rowexpr.Literal); ok {
			return ref, lit, true
		}
	}
	return nil, nil, false
}

func literalValue(l *rowexpr.Literal) interface{} {
	if l.Val.IsNull {
		return nil
	}
	switch l.Typ.Kind {
	case rowexpr.Boolean:
		return l.Val.Bool
	case rowexpr.Int64:
		return l.Val.Int
	case rowexpr.Float64:
		return l.Val.Float
	case rowexpr.String:
		return l.Val.Str
	case rowexpr.Bytes:
		return l.Val.Bytes
	case rowexpr.Decimal:
		return l.Val.Dec.String()
	default:
		return nil
	}
}
