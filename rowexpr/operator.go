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

package rowexpr

// OperatorKind classifies an Operator for pattern matching and null
// handling in the simplifier.
type OperatorKind int

const (
	OpAnd OperatorKind = iota
	OpOr
	OpNot
	OpIsNull
	OpIsNotNull
	OpIsTrue
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpCase
	OpCoalesce
	OpNullIf
	OpCast
	OpOther
)

// OperandChecker validates that a proposed operand list is well-typed
// for an Operator, returning an error describing the mismatch.
type OperandChecker func(operands []Expr) error

// ReturnTypeFn infers an Operator's result Type from its (already
// checked) operands.
type ReturnTypeFn func(operands []Expr) Type

// Operator describes a Call's callable: its fixed kind, display name,
// return-type inference, operand checker and determinism flag.
type Operator struct {
	Kind          OperatorKind
	Name          string
	ReturnType    ReturnTypeFn
	CheckOperands OperandChecker
	Deterministic bool
	// NullStrict is true when the operator propagates NULL: if any
	// operand is NULL the result is NULL. AND/OR/IS NULL/IS NOT
	// NULL/CASE/COALESCE/NULLIF are NOT null-strict and declare their
	// own null tables in the simplifier instead.
	NullStrict bool
	// Monotonic is true when the operator is non-decreasing in each
	// operand, so a Sort above it may be satisfied by a Sort below it
	// without re-sorting (e.g. CAST to a wider numeric type, or a
	// prefix-preserving string function). Most operators are not.
	Monotonic bool
}

// InferType runs the operator's return-type inference after validating
// operands; a failing check still yields a best-effort Type (Unknown)
// so callers that ignore errors do not panic downstream.
func (o *Operator) InferType(operands []Expr) Type {
	if o.CheckOperands != nil {
		if err := o.CheckOperands(operands); err != nil {
			return Type{Kind: Unknown, Nullable: true}
		}
	}
	if o.ReturnType == nil {
		return Type{Kind: Unknown, Nullable: true}
	}
	return o.ReturnType(operands)
}

func anyNullable(operands []Expr) bool {
	for _, o := range operands {
		if o.Type().Nullable {
			return true
		}
	}
	return false
}

// nullStrictReturn builds a ReturnTypeFn for a null-strict operator
// whose result kind is fixed and whose nullability follows its operands.
func nullStrictReturn(kind TypeKind) ReturnTypeFn {
	return func(operands []Expr) Type {
		return Type{Kind: kind, Nullable: anyNullable(operands)}
	}
}

// Builtin comparison and boolean operators used throughout the
// simplifier's worked examples and tests.
var (
	And = &Operator{Kind: OpAnd, Name: "AND", Deterministic: true,
		ReturnType: func(ops []Expr) Type { return Type{Kind: Boolean, Nullable: anyNullable(ops)} }}
	Or = &Operator{Kind: OpOr, Name: "OR", Deterministic: true,
		ReturnType: func(ops []Expr) Type { return Type{Kind: Boolean, Nullable: anyNullable(ops)} }}
	Not = &Operator{Kind: OpNot, Name: "NOT", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	IsNull = &Operator{Kind: OpIsNull, Name: "IS NULL", Deterministic: true,
		ReturnType: func([]Expr) Type { return Type{Kind: Boolean, Nullable: false} }}
	IsNotNull = &Operator{Kind: OpIsNotNull, Name: "IS NOT NULL", Deterministic: true,
		ReturnType: func([]Expr) Type { return Type{Kind: Boolean, Nullable: false} }}
	IsTrue = &Operator{Kind: OpIsTrue, Name: "IS TRUE", Deterministic: true,
		ReturnType: func([]Expr) Type { return Type{Kind: Boolean, Nullable: false} }}
	Eq = &Operator{Kind: OpEq, Name: "=", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Ne = &Operator{Kind: OpNe, Name: "<>", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Lt = &Operator{Kind: OpLt, Name: "<", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Le = &Operator{Kind: OpLe, Name: "<=", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Gt = &Operator{Kind: OpGt, Name: ">", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Ge = &Operator{Kind: OpGe, Name: ">=", Deterministic: true, NullStrict: true,
		ReturnType: nullStrictReturn(Boolean)}
	Case = &Operator{Kind: OpCase, Name: "CASE", Deterministic: true,
		ReturnType: func(ops []Expr) Type {
			if len(ops) == 0 {
				return Type{Kind: Unknown, Nullable: true}
			}
			last := ops[len(ops)-1].Type()
			return Type{Kind: last.Kind, Nullable: anyNullable(ops)}
		}}
	Coalesce = &Operator{Kind: OpCoalesce, Name: "COALESCE", Deterministic: true,
		ReturnType: func(ops []Expr) Type {
			if len(ops) == 0 {
				return Type{Kind: Unknown, Nullable: true}
			}
			nullable := true
			for _, o := range ops {
				if !o.Type().Nullable {
					nullable = false
					break
				}
			}
			return Type{Kind: ops[0].Type().Kind, Nullable: nullable}
		}}
	NullIf = &Operator{Kind: OpNullIf, Name: "NULLIF", Deterministic: true,
		ReturnType: func(ops []Expr) Type {
			if len(ops) == 0 {
				return Type{Kind: Unknown, Nullable: true}
			}
			return Type{Kind: ops[0].Type().Kind, Nullable: true}
		}}
)

// Cast is a distinguished operator shape: a single operand plus a
// target Type carried out of band since Operator instances are shared.
type Cast struct {
	*Call
	Target Type
}

// NewCast builds a Call through a new CAST operator whose return type
// is target, and records target on the wrapping Cast as well.
func NewCast(operand Expr, target Type) *Cast {
	op := &Operator{Kind: OpCast, Name: "CAST", Deterministic: true,
		ReturnType: func([]Expr) Type { return target }}
	return &Cast{Call: NewCall(op, []Expr{operand}), Target: target}
}

func (c *Cast) Source() Expr { return c.Operands[0] }
