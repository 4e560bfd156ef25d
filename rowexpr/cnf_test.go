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

func boolCol(name string) *InputRef {
	idx := 0
	for i, c := range name {
		idx += int(c) * (i + 1)
	}
	return NewInputRef(idx, NotNullType(Boolean))
}

// (a1 AND b1) OR (a2 AND b2) OR (a3 AND b3)
func threeByThree() Expr {
	a1, b1 := boolCol("a1"), boolCol("b1")
	a2, b2 := boolCol("a2"), boolCol("b2")
	a3, b3 := boolCol("a3"), boolCol("b3")
	return NewCall(Or, []Expr{
		NewCall(And, []Expr{a1, b1}),
		NewCall(And, []Expr{a2, b2}),
		NewCall(And, []Expr{a3, b3}),
	})
}

func TestToCNFBoundExceeded(t *testing.T) {
	e := threeByThree()
	got := ToCNF(e, 2)
	require.Equal(t, e.String(), got.String())
}

func TestToCNFWithinBound(t *testing.T) {
	e := threeByThree()
	got := ToCNF(e, 16)
	gotCall, ok := got.(*Call)
	require.True(t, ok)
	require.Equal(t, OpAnd, gotCall.Op.Kind)
	require.Len(t, gotCall.Operands, 8)
}

func TestToCNFMaxFactorOne(t *testing.T) {
	e := threeByThree()
	got := ToCNF(e, 1)
	require.Equal(t, e.String(), got.String())
}

func TestPullFactorsOrOfAnds(t *testing.T) {
	a := boolCol("a")
	b := boolCol("b")
	c := boolCol("c")
	// (a AND b) OR (a AND c) -> a AND (b OR c)
	e := NewCall(Or, []Expr{
		NewCall(And, []Expr{a, b}),
		NewCall(And, []Expr{a, c}),
	})
	got := PullFactors(e)
	call, ok := got.(*Call)
	require.True(t, ok)
	require.Equal(t, OpAnd, call.Op.Kind)
}
