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

package algebra

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

type fakeInput string

func (f fakeInput) Digest() string { return string(f) }
func (f fakeInput) String() string { return string(f) }

func defaultTraits() *trait.Set {
	return trait.NewRegistry().Default()
}

func TestScanDigestStableOnColumnOrder(t *testing.T) {
	cols := []ColumnDef{{Name: "a", Type: rowexpr.NotNullType(rowexpr.Int64)}, {Name: "b", Type: rowexpr.NotNullType(rowexpr.Int64)}}
	s1 := NewScan("T", cols, defaultTraits())
	s2 := NewScan("T", cols, defaultTraits())
	require.Equal(t, s1.Digest(), s2.Digest())

	swapped := []ColumnDef{cols[1], cols[0]}
	s3 := NewScan("T", swapped, defaultTraits())
	require.NotEqual(t, s1.Digest(), s3.Digest())
}

func TestFilterDigestTracksPredicate(t *testing.T) {
	ref := rowexpr.NewInputRef(0, rowexpr.NotNullType(rowexpr.Int64))
	lit := rowexpr.IntValue(1)
	eq := rowexpr.NewCall(rowexpr.Eq, []rowexpr.Expr{ref, rowexpr.NewLiteral(lit, rowexpr.NotNullType(rowexpr.Int64))})

	f1 := NewFilter(fakeInput("scanT"), eq, defaultTraits())
	f2 := NewFilter(fakeInput("scanT"), eq, defaultTraits())
	require.Equal(t, f1.Digest(), f2.Digest())

	ne := rowexpr.NewCall(rowexpr.Ne, []rowexpr.Expr{ref, rowexpr.NewLiteral(lit, rowexpr.NotNullType(rowexpr.Int64))})
	f3 := NewFilter(fakeInput("scanT"), ne, defaultTraits())
	require.NotEqual(t, f1.Digest(), f3.Digest())
}

func TestJoinSwappedMirrorsOuterSide(t *testing.T) {
	j := NewJoin(fakeInput("L"), fakeInput("R"), LeftJoin, nil, defaultTraits())
	s := j.Swapped()
	require.Equal(t, RightJoin, s.Op)
	require.Equal(t, fakeInput("R"), s.Left())
	require.Equal(t, fakeInput("L"), s.Right())
}

func TestWithInputsPanicsOnArityMismatch(t *testing.T) {
	s := NewScan("T", nil, defaultTraits())
	require.Panics(t, func() {
		s.WithInputs([]Input{fakeInput("x")})
	})
}

func TestRegisterPhysicalKindIsUniqueAndNamed(t *testing.T) {
	k := RegisterPhysicalKind("JDBCScan")
	require.Equal(t, "JDBCScan", k.String())
	require.True(t, k >= firstPhysicalKind)
}
