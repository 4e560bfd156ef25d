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

import "github.com/polybase/optimizer/algebra"

// Cost is the additive cost of one physical node: a row count and its
// CPU/IO components. Costs combine by simple addition across a plan
// tree; comparison folds CPU/IO into a single weighted scalar scaled
// by row count.
type Cost struct {
	RowCount float64
	CPU      float64
	IO       float64
}

// CostWeights configures how CPU and IO combine into a single
// comparable scalar.
type CostWeights struct {
	CPUWeight float64
	IOWeight  float64
}

// DefaultCostWeights weighs CPU and IO equally.
var DefaultCostWeights = CostWeights{CPUWeight: 1, IOWeight: 1}

// Scalar reduces a Cost to the single number used for comparison:
// rowCount * (cpuWeight*cpu + ioWeight*io).
func (c Cost) Scalar(w CostWeights) float64 {
	return c.RowCount * (w.CPUWeight*c.CPU + w.IOWeight*c.IO)
}

// Add combines two costs additively, as when summing a node's own cost
// with the costs of its child subsets. RowCount is taken from the
// parent (the receiver), since row count is a property of the node
// producing the output row, not a sum across children.
func (c Cost) Add(child Cost) Cost {
	return Cost{RowCount: c.RowCount, CPU: c.CPU + child.CPU, IO: c.IO + child.IO}
}

func (c Cost) Less(other Cost, w CostWeights) bool {
	return c.Scalar(w) < other.Scalar(w)
}

// Coster estimates the incremental cost of one node, given the
// already-computed costs of its child subsets (in input order). A
// Planner holds a single Coster, passed to NewPlanner, and extraction
// calls it for every member of a subset it costs, logical and physical
// nodes alike.
type Coster interface {
	EstimateCost(node algebra.Node, childCosts []Cost) (Cost, error)
}

// CosterFunc adapts a plain function to the Coster interface.
type CosterFunc func(node algebra.Node, childCosts []Cost) (Cost, error)

func (f CosterFunc) EstimateCost(node algebra.Node, childCosts []Cost) (Cost, error) {
	return f(node, childCosts)
}
