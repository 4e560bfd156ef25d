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

// Package rowexpr implements the typed scalar row-expression tree and
// the simplification engine used by the query optimizer's rule engine
// and digest computation.
package rowexpr

import "github.com/shopspring/decimal"

// TypeKind names the base domain of a Type, independent of nullability.
type TypeKind int

const (
	Unknown TypeKind = iota
	Boolean
	Int64
	Float64
	Decimal
	String
	Bytes
	DateTime
	JSON
	Null
)

func (k TypeKind) String() string {
	switch k {
	case Boolean:
		return "BOOLEAN"
	case Int64:
		return "INT64"
	case Float64:
		return "FLOAT64"
	case Decimal:
		return "DECIMAL"
	case String:
		return "STRING"
	case Bytes:
		return "BYTES"
	case DateTime:
		return "DATETIME"
	case JSON:
		return "JSON"
	case Null:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Type is the resolved type of a RowExpression. Nullability is encoded
// here rather than in the value, so two literals of the same TypeKind
// but different Nullable settings are different types.
type Type struct {
	Kind     TypeKind
	Nullable bool
}

// NullableType and NotNullType construct the nullable/non-nullable variant of a kind.
func NullableType(k TypeKind) Type { return Type{Kind: k, Nullable: true} }
func NotNullType(k TypeKind) Type  { return Type{Kind: k, Nullable: false} }

func (t Type) WithNullable(n bool) Type {
	t.Nullable = n
	return t
}

func (t Type) Equals(o Type) bool {
	return t.Kind == o.Kind && t.Nullable == o.Nullable
}

// IsNumeric reports whether the type supports arithmetic and total ordering
// via the type-assignment matrix used by comparison and cast folding.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case Int64, Float64, Decimal:
		return true
	default:
		return false
	}
}

// widens reports whether target admits every value of src without loss,
// used by IsLosslessCast. Only numeric widening and char-precision growth
// are considered lossless; everything else (narrowing, cross-family casts)
// is not.
func widens(src, target TypeKind) bool {
	switch src {
	case Int64:
		return target == Int64 || target == Float64 || target == Decimal
	case Float64:
		return target == Float64
	case Decimal:
		return target == Decimal
	case String:
		return target == String
	case Bytes:
		return target == Bytes
	default:
		return src == target
	}
}

// Value is the tagged runtime representation of a Literal. Exactly one
// field is meaningful, selected by the enclosing Type.Kind.
type Value struct {
	Bool    bool
	Int     int64
	Float   float64
	Dec     decimal.Decimal
	Str     string
	Bytes   []byte
	IsNull  bool
}

func BoolValue(b bool) Value  { return Value{Bool: b} }
func IntValue(i int64) Value  { return Value{Int: i} }
func NullValue() Value        { return Value{IsNull: true} }
func StringValue(s string) Value { return Value{Str: s} }
func DecimalValue(d decimal.Decimal) Value { return Value{Dec: d} }

func decimalFromInt(i int64) decimal.Decimal { return decimal.NewFromInt(i) }
