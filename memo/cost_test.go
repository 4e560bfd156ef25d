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
)

func TestCostScalarWeighsCpuAndIo(t *testing.T) {
	c := Cost{RowCount: 10, CPU: 2, IO: 3}
	w := CostWeights{CPUWeight: 1, IOWeight: 1}
	require.Equal(t, 50.0, c.Scalar(w))
}

func TestCostAddKeepsParentRowCount(t *testing.T) {
	parent := Cost{RowCount: 5, CPU: 1}
	child := Cost{RowCount: 100, CPU: 2, IO: 3}
	sum := parent.Add(child)
	require.Equal(t, 5.0, sum.RowCount)
	require.Equal(t, 3.0, sum.CPU)
	require.Equal(t, 3.0, sum.IO)
}

func TestStatsCosterFilterAppliesSelectivity(t *testing.T) {
	stats := NewMapStats()
	stats.RowCounts["T"] = 1000
	stats.DefaultSelectivity = 0.1
	coster := NewStatsCoster(stats)

	space, reg := newTestSpace()
	traits := reg.Default()
	scanSub, _ := space.Intern(algebra.NewScan("T", colsAB(), traits), nil)

	pred := boolLit(true)
	filter := algebra.NewFilter(scanSub, pred, traits)

	scanCost, err := coster.EstimateCost(algebra.NewScan("T", colsAB(), traits), nil)
	require.NoError(t, err)
	require.Equal(t, 1000.0, scanCost.RowCount)

	filterCost, err := coster.EstimateCost(filter, []Cost{scanCost})
	require.NoError(t, err)
	require.Equal(t, 100.0, filterCost.RowCount)
}
