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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func col(name string, nullable bool) *InputRef {
	idx := 0
	for i, c := range name {
		idx += int(c) * (i + 1)
	}
	return NewInputRef(idx, Type{Kind: Int64, Nullable: nullable})
}

func TestSimplifyIdempotent(t *testing.T) {
	x := col("x", true)
	exprs := []Expr{
		NewCall(Eq, []Expr{x, x}),
		NewCall(And, []Expr{NewCall(Eq, []Expr{x, NewLiteral(IntValue(1), NotNullType(Int64))}), boolLit(true)}),
		simplifyOr([]Expr{boolLit(false), boolLit(false), x}, UnknownAsUnknown),
	}
	for _, e := range exprs {
		for _, mode := range []UnknownAsMode{UnknownAsUnknown, UnknownAsTrue, UnknownAsFalse} {
			once := Simplify(e, mode, nil)
			twice := Simplify(once, mode, nil)
			require.Equal(t, once.String(), twice.String(), "not idempotent for %v", e)
		}
	}
}

func TestSimplifyIsNullLiterals(t *testing.T) {
	notNullLit := NewLiteral(IntValue(5), NotNullType(Int64))
	nullLit := NewLiteral(NullValue(), NullableType(Int64))

	require.Equal(t, "false", Simplify(NewCall(IsNull, []Expr{notNullLit}), UnknownAsUnknown, nil).String())
	require.Equal(t, "false", Simplify(NewCall(IsNotNull, []Expr{nullLit}), UnknownAsUnknown, nil).String())
}

func TestSimplifyEqualSelfNullable(t *testing.T) {
	x := col("x", true)
	for _, mode := range []UnknownAsMode{UnknownAsUnknown, UnknownAsFalse} {
		got := Simplify(NewCall(Eq, []Expr{x, x}), mode, nil)
		require.Equal(t, "IS NOT NULL($120)", got.String())
	}
}

func TestSimplifyEqualSelfNotNullable(t *testing.T) {
	x := col("x", false)
	got := Simplify(NewCall(Eq, []Expr{x, x}), UnknownAsUnknown, nil)
	require.Equal(t, "true", got.String())
}

func TestSimplifyNotNotX(t *testing.T) {
	x := col("x", true)
	got := Simplify(NewCall(Not, []Expr{NewCall(Not, []Expr{x})}), UnknownAsUnknown, nil)
	require.Equal(t, x.String(), got.String())
}

func TestSimplifyAbsorption(t *testing.T) {
	x := col("x", false)
	y := col("y", false)
	// x AND (x OR y) = x
	got := Simplify(NewCall(And, []Expr{x, NewCall(Or, []Expr{x, y})}), UnknownAsUnknown, nil)
	require.Equal(t, x.String(), got.String())
}

func TestSimplifyComplementUnderFalse(t *testing.T) {
	x := col("x", true)
	got := Simplify(NewCall(And, []Expr{x, NewCall(Not, []Expr{x})}), UnknownAsFalse, nil)
	require.Equal(t, "false", got.String())
}

func TestSimplifyComplementUnderUnknown(t *testing.T) {
	x := col("x", true)
	got := Simplify(NewCall(And, []Expr{x, NewCall(Not, []Expr{x})}), UnknownAsUnknown, nil)
	require.Contains(t, got.String(), "IS NULL")
}

func TestSimplifyLiteralComparisonOrder(t *testing.T) {
	a := NewLiteral(IntValue(1), NotNullType(Int64))
	b := NewLiteral(IntValue(2), NotNullType(Int64))
	require.Equal(t, "true", Simplify(NewCall(Lt, []Expr{a, b}), UnknownAsUnknown, nil).String())
	require.Equal(t, "false", Simplify(NewCall(Gt, []Expr{a, b}), UnknownAsUnknown, nil).String())
}

func TestSimplifyContextImplication(t *testing.T) {
	x := col("x", false)
	pred := NewCall(Eq, []Expr{x, NewLiteral(IntValue(1), NotNullType(Int64))})
	ctx := NewContext(pred)
	require.Equal(t, "true", Simplify(pred, UnknownAsFalse, ctx).String())

	notPred := NewCall(Not, []Expr{pred})
	require.Equal(t, "false", Simplify(pred, UnknownAsFalse, NewContext(notPred)).String())
}

func TestSimplifyCaseReducesToCondition(t *testing.T) {
	c := col("c", false)
	caseExpr := NewCall(Case, []Expr{c, boolLit(true), boolLit(false)})
	got := Simplify(caseExpr, UnknownAsUnknown, nil)
	require.Equal(t, c.String(), got.String())
}

func TestSimplifyCoalesceDropsAfterNonNull(t *testing.T) {
	x := col("x", false)
	y := col("y", true)
	got := Simplify(NewCall(Coalesce, []Expr{y, x, y}), UnknownAsUnknown, nil)
	require.Equal(t, NewCall(Coalesce, []Expr{y, x}).String(), got.String())
}

func TestSimplifyCoalesceAllNullFolds(t *testing.T) {
	n := nullLit(NullableType(Int64))
	got := Simplify(NewCall(Coalesce, []Expr{n, n}), UnknownAsUnknown, nil)
	require.True(t, got.(*Literal).Val.IsNull)
}

func TestSimplifyCastNoOp(t *testing.T) {
	x := col("x", false)
	got := Simplify(NewCast(x, NotNullType(Int64)), UnknownAsUnknown, nil)
	require.Equal(t, x.String(), got.String())
}

func TestSimplifyCastDoubleCollapse(t *testing.T) {
	x := col("x", false)
	inner := NewCast(x, NotNullType(Float64))
	outer := NewCast(inner, NotNullType(Float64))
	got := Simplify(outer, UnknownAsUnknown, nil)
	require.Equal(t, inner.String(), got.String())
}

func TestIsLosslessCast(t *testing.T) {
	x := col("x", false)
	require.True(t, IsLosslessCast(NewCast(x, NotNullType(Float64))))
	y := NewInputRef(1, NotNullType(String))
	require.False(t, IsLosslessCast(NewCast(y, NotNullType(Int64))))
}
