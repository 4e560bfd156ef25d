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
	"fmt"

	"github.com/polybase/optimizer/rowexpr"
	"github.com/polybase/optimizer/trait"
)

// JoinType distinguishes the row-matching semantics of a Join.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	SemiJoin
	AntiJoin
	CrossJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "Inner"
	case LeftJoin:
		return "Left"
	case RightJoin:
		return "Right"
	case FullJoin:
		return "Full"
	case SemiJoin:
		return "Semi"
	case AntiJoin:
		return "Anti"
	case CrossJoin:
		return "Cross"
	default:
		return "Unknown"
	}
}

// Join combines rows from two inputs according to Op and Condition.
// CrossJoin ignores Condition.
type Join struct {
	base
	Op        JoinType
	Condition rowexpr.Expr
}

func NewJoin(left, right Input, op JoinType, condition rowexpr.Expr, traits *trait.Set) *Join {
	j := &Join{Op: op, Condition: condition}
	j.inputs = []Input{left, right}
	j.traits = traits
	payload := op.String()
	if condition != nil {
		payload += ":" + condition.String()
	}
	j.digest = computeDigest(KindJoin, j.inputs, traits, payload)
	return j
}

func (j *Join) Kind() Kind { return KindJoin }

func (j *Join) Left() Input  { return j.inputs[0] }
func (j *Join) Right() Input { return j.inputs[1] }

func (j *Join) WithInputs(inputs []Input) Node {
	if len(inputs) != 2 {
		panic("algebra: Join takes exactly two inputs")
	}
	return NewJoin(inputs[0], inputs[1], j.Op, j.Condition, j.traits)
}

func (j *Join) WithTraits(t *trait.Set) Node {
	return NewJoin(j.inputs[0], j.inputs[1], j.Op, j.Condition, t)
}

// Swapped returns a copy of j with its inputs exchanged and Op mirrored
// (Left<->Right); used by commute rules.
func (j *Join) Swapped() *Join {
	op := j.Op
	switch op {
	case LeftJoin:
		op = RightJoin
	case RightJoin:
		op = LeftJoin
	}
	return NewJoin(j.inputs[1], j.inputs[0], op, j.Condition, j.traits)
}

func (j *Join) String() string {
	cond := "true"
	if j.Condition != nil {
		cond = j.Condition.String()
	}
	return fmt.Sprintf("%sJoin[%s](%s, %s)", j.Op, cond, j.inputs[0], j.inputs[1])
}
