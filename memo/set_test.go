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

package memo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

func newTestSpace() (*Space, *trait.Registry) {
	registry := trait.NewRegistry()
	return newSpace(nil), registry
}

func colsAB() []algebra.ColumnDef {
	return []algebra.ColumnDef{{Name: "a"}, {Name: "b"}}
}

func TestInternDedupesByDigest(t *testing.T) {
	space, reg := newTestSpace()
	traits := reg.Default()

	s1 := algebra.NewScan("T", colsAB(), traits)
	s2 := algebra.NewScan("T", colsAB(), traits)

	sub1, err := space.Intern(s1, nil)
	require.NoError(t, err)
	sub2, err := space.Intern(s2, nil)
	require.NoError(t, err)

	require.Same(t, sub1, sub2)
	require.Len(t, sub1.Members(), 1)
}

func TestInternDistinctDigestsGetDistinctSets(t *testing.T) {
	space, reg := newTestSpace()
	traits := reg.Default()

	s1 := algebra.NewScan("T", colsAB(), traits)
	s2 := algebra.NewScan("U", colsAB(), traits)

	sub1, _ := space.Intern(s1, nil)
	sub2, _ := space.Intern(s2, nil)

	require.NotEqual(t, sub1.Set().ID(), sub2.Set().ID())
}

func TestMergeSetsUnionsMembersAndLeader(t *testing.T) {
	space, reg := newTestSpace()
	traits := reg.Default()

	scan := algebra.NewScan("T", colsAB(), traits)
	scanSub, _ := space.Intern(scan, nil)

	n1 := algebra.NewFilter(scanSub, boolLit(true), traits)
	n2 := algebra.NewFilter(scanSub, boolLit(false), traits)

	sub1, _ := space.Intern(n1, nil)
	sub2, _ := space.Intern(n2, nil)
	require.NotEqual(t, sub1.Set().ID(), sub2.Set().ID())

	space.MergeSets(sub1.Set(), sub2.Set())

	require.Equal(t, sub1.Set().ID(), sub2.Set().ID())
	merged := sub1.Set()
	require.Len(t, merged.Subsets(), 1)
	require.Len(t, merged.Subsets()[0].Members(), 2)
}

func TestAncestorsTracksParents(t *testing.T) {
	space, reg := newTestSpace()
	traits := reg.Default()

	scan := algebra.NewScan("T", colsAB(), traits)
	scanSub, _ := space.Intern(scan, nil)

	filter := algebra.NewFilter(scanSub, boolLit(true), traits)
	space.Intern(filter, nil)

	ancestors := scanSub.Set().Ancestors()
	require.Len(t, ancestors, 1)
	require.Equal(t, filter.Digest(), ancestors[0].node.Digest())
}
