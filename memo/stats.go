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
	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/rowexpr"
)

// Stats supplies the cardinality inputs a cost model needs: base-table
// row counts and predicate selectivity estimates. Adapters own their
// own Stats implementation (backed by catalog statistics); this
// package only defines the contract and a reference implementation
// used by tests and by callers with no better estimator available.
type Stats interface {
	RowCount(table string) float64
	Selectivity(predicate rowexpr.Expr) float64
}

// MapStats is a minimal Stats backed by fixed tables, sufficient for
// tests and small embedded callers: table row counts are looked up by
// name, and every predicate gets the same constant selectivity unless
// overridden in BySelectivity under the predicate's String() form.
type MapStats struct {
	RowCounts         map[string]float64
	DefaultSelectivity float64
	BySelectivity     map[string]float64
}

func NewMapStats() *MapStats {
	return &MapStats{
		RowCounts:          map[string]float64{},
		DefaultSelectivity: 1.0,
		BySelectivity:      map[string]float64{},
	}
}

func (m *MapStats) RowCount(table string) float64 {
	if rc, ok := m.RowCounts[table]; ok {
		return rc
	}
	return 1000
}

func (m *MapStats) Selectivity(predicate rowexpr.Expr) float64 {
	if predicate == nil {
		return 1.0
	}
	if sel, ok := m.BySelectivity[predicate.String()]; ok {
		return sel
	}
	return m.DefaultSelectivity
}

// StatsCoster implements Coster for the closed set of logical algebra
// kinds using simple, well-known selectivity-based formulas: a Scan's
// row count comes from Stats, a Filter's from Stats.Selectivity times
// its child's row count, a Join's from the product of its children's
// row counts (cross-product upper bound; adapters with a better join
// estimator register their own Coster for physical join kinds).
// Unrecognized (physical) kinds fall back to passing the first child's
// row count through unchanged, with a fixed per-row CPU cost.
type StatsCoster struct {
	Stats Stats
}

func NewStatsCoster(stats Stats) *StatsCoster {
	return &StatsCoster{Stats: stats}
}

func (c *StatsCoster) EstimateCost(node algebra.Node, childCosts []Cost) (Cost, error) {
	switch n := node.(type) {
	case *algebra.Scan:
		rc := c.Stats.RowCount(n.Table)
		return Cost{RowCount: rc, CPU: rc, IO: rc}, nil
	case *algebra.Match:
		rc := c.Stats.RowCount(n.Collection) * c.Stats.Selectivity(n.Predicate)
		return Cost{RowCount: rc, CPU: rc, IO: rc}, nil
	case *algebra.Filter:
		rc := childCosts[0].RowCount * c.Stats.Selectivity(n.Predicate)
		return Cost{RowCount: rc, CPU: childCosts[0].RowCount}, nil
	case *algebra.Project:
		return Cost{RowCount: childCosts[0].RowCount, CPU: childCosts[0].RowCount * float64(len(n.Projections))}, nil
	case *algebra.Join:
		left, right := childCosts[0].RowCount, childCosts[1].RowCount
		rc := left * right
		if n.Op == algebra.SemiJoin || n.Op == algebra.AntiJoin {
			rc = left
		}
		return Cost{RowCount: rc, CPU: left * right}, nil
	case *algebra.Aggregate:
		rc := childCosts[0].RowCount
		if len(n.GroupBy) > 0 {
			rc = rc / 2
			if rc < 1 {
				rc = 1
			}
		} else {
			rc = 1
		}
		return Cost{RowCount: rc, CPU: childCosts[0].RowCount}, nil
	case *algebra.Sort:
		rc := childCosts[0].RowCount
		return Cost{RowCount: rc, CPU: rc * logCeil(rc)}, nil
	case *algebra.Union:
		rc := childCosts[0].RowCount + childCosts[1].RowCount
		return Cost{RowCount: rc, CPU: rc}, nil
	case *algebra.Values:
		rc := float64(len(n.Rows))
		return Cost{RowCount: rc, CPU: rc}, nil
	case *algebra.Modify:
		rc := childCosts[0].RowCount
		return Cost{RowCount: rc, CPU: rc, IO: rc}, nil
	case *algebra.Converter:
		if len(childCosts) == 0 {
			return Cost{}, nil
		}
		return Cost{RowCount: childCosts[0].RowCount, CPU: childCosts[0].RowCount * 0.1}, nil
	default:
		if len(childCosts) > 0 {
			return Cost{RowCount: childCosts[0].RowCount, CPU: childCosts[0].RowCount}, nil
		}
		return Cost{RowCount: 1}, nil
	}
}

func logCeil(n float64) float64 {
	if n <= 1 {
		return 1
	}
	count := 0.0
	for v := 1.0; v < n; v *= 2 {
		count++
	}
	return count
}
