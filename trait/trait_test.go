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

package trait

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	enumerable = &Convention{Name: "Enumerable", Codegen: true}
	jdbcConv   = &Convention{Name: "JDBC", Codegen: false}
)

func testRegistry() (*Registry, *Def) {
	r := NewRegistry()
	convDef := ConventionDef(func(have, want *Convention) bool {
		return false
	}, func(input Node, from, target Manifestation, allowInfinite bool) (Node, bool) {
		return nil, false
	})
	r.Register(convDef)
	return r, convDef
}

func TestDefaultSetCarriesNone(t *testing.T) {
	r, convDef := testRegistry()
	s := r.Default()
	require.Equal(t, None, s.Get(convDef))
}

func TestNoneSatisfiesOnlyNone(t *testing.T) {
	r, convDef := testRegistry()
	logical := r.Default()
	physical := r.Default().With(convDef, enumerable)

	require.True(t, logical.Satisfies(r.Default()))
	require.False(t, logical.Satisfies(physical))
	require.True(t, physical.Satisfies(physical))
}

func TestTraitSetKeyDistinguishesManifestations(t *testing.T) {
	r, convDef := testRegistry()
	a := r.Default().With(convDef, enumerable)
	b := r.Default().With(convDef, jdbcConv)
	require.NotEqual(t, a.Key(), b.Key())

	c := r.Default().With(convDef, enumerable)
	require.Equal(t, a.Key(), c.Key())
}
