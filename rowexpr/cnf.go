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

// negationNormalize pushes NOT down to the leaves via de Morgan's law,
// leaving AND/OR/atom structure otherwise untouched.
func negationNormalize(e Expr) Expr {
	c, ok := e.(*Call)
	if !ok {
		return e
	}
	switch c.Op.Kind {
	case OpAnd:
		ops := make([]Expr, len(c.Operands))
		for i, o := range c.Operands {
			ops[i] = negationNormalize(o)
		}
		return NewCall(And, ops)
	case OpOr:
		ops := make([]Expr, len(c.Operands))
		for i, o := range c.Operands {
			ops[i] = negationNormalize(o)
		}
		return NewCall(Or, ops)
	case OpNot:
		inner := c.Operands[0]
		if ic, ok := inner.(*Call); ok {
			switch ic.Op.Kind {
			case OpNot:
				return negationNormalize(ic.Operands[0])
			case OpAnd:
				neg := make([]Expr, len(ic.Operands))
				for i, o := range ic.Operands {
					neg[i] = negationNormalize(NewCall(Not, []Expr{o}))
				}
				return NewCall(Or, neg)
			case OpOr:
				neg := make([]Expr, len(ic.Operands))
				for i, o := range ic.Operands {
					neg[i] = negationNormalize(NewCall(Not, []Expr{o}))
				}
				return NewCall(And, neg)
			}
		}
		return c
	default:
		return c
	}
}

// estimateCNFSize computes the clause count CNF conversion of e would
// produce, without materializing it: sum over AND, product over OR.
func estimateCNFSize(e Expr) int {
	c, ok := e.(*Call)
	if !ok {
		return 1
	}
	switch c.Op.Kind {
	case OpAnd:
		total := 0
		for _, o := range c.Operands {
			total += estimateCNFSize(o)
		}
		if total == 0 {
			total = 1
		}
		return total
	case OpOr:
		total := 1
		for _, o := range c.Operands {
			total *= estimateCNFSize(o)
		}
		return total
	default:
		return 1
	}
}

// estimateOriginalSize counts e's own number of conjunctive terms in
// its current (pre-conversion) shape: the mirror image of
// estimateCNFSize, product over AND and sum over OR. For an OR-of-ANDs
// input this is the number of top-level disjuncts, which is what
// toCnf's maxFactor bound is measured against.
func estimateOriginalSize(e Expr) int {
	c, ok := e.(*Call)
	if !ok {
		return 1
	}
	switch c.Op.Kind {
	case OpOr:
		total := 0
		for _, o := range c.Operands {
			total += estimateOriginalSize(o)
		}
		if total == 0 {
			total = 1
		}
		return total
	case OpAnd:
		total := 1
		for _, o := range c.Operands {
			total *= estimateOriginalSize(o)
		}
		return total
	default:
		return 1
	}
}

// clauses computes the literal-clause decomposition of a
// negation-normalized boolean tree: a list of disjunctive clauses whose
// conjunction is equivalent to e.
func clauses(e Expr) [][]Expr {
	c, ok := e.(*Call)
	if !ok {
		return [][]Expr{{e}}
	}
	switch c.Op.Kind {
	case OpAnd:
		var out [][]Expr
		for _, o := range c.Operands {
			out = append(out, clauses(o)...)
		}
		return out
	case OpOr:
		product := clauses(c.Operands[0])
		for _, o := range c.Operands[1:] {
			product = crossUnion(product, clauses(o))
		}
		return product
	default:
		return [][]Expr{{e}}
	}
}

func crossUnion(a, b [][]Expr) [][]Expr {
	out := make([][]Expr, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			out = append(out, dedupeExprs(append(append([]Expr{}, ca...), cb...)))
		}
	}
	return out
}

// ToCNF converts e to conjunctive normal form, failing soft (returning
// e unchanged) when the estimated converted size would exceed maxFactor
// times estimateOriginalSize(e), which counts an OR of ANDs as its
// number of disjuncts rather than its number of nodes.
func ToCNF(e Expr, maxFactor int) Expr {
	if maxFactor < 1 {
		maxFactor = 1
	}
	nnf := negationNormalize(e)
	if estimateCNFSize(nnf) > maxFactor*estimateOriginalSize(e) {
		return e
	}
	cls := clauses(nnf)
	conjuncts := make([]Expr, len(cls))
	for i, cl := range cls {
		if len(cl) == 1 {
			conjuncts[i] = cl[0]
		} else {
			conjuncts[i] = NewCall(Or, cl)
		}
	}
	if len(conjuncts) == 1 {
		return conjuncts[0]
	}
	return NewCall(And, conjuncts)
}

// PullFactors lifts common factors out of disjunctions of conjunctions
// (and vice versa) without fully normalizing to CNF/DNF, e.g.
// (A AND B) OR (A AND C) -> A AND (B OR C).
func PullFactors(e Expr) Expr {
	c, ok := e.(*Call)
	if !ok {
		return e
	}
	operands := make([]Expr, len(c.Operands))
	for i, o := range c.Operands {
		operands[i] = PullFactors(o)
	}
	switch c.Op.Kind {
	case OpOr:
		return pullCommonFactor(operands, OpAnd, Or, And)
	case OpAnd:
		return pullCommonFactor(operands, OpOr, And, Or)
	default:
		return c.WithChildren(operands)
	}
}

// pullCommonFactor finds terms that are factors of `innerKind` calls
// (or bare atoms) present identically in every operand, and rewrites
// outerOp(...) into innerOp(factors..., outerOp(remainders...)). When
// some operand consists of common factors only, outerOp(remainders...)
// is absorbed and the result is innerOp(factors...).
func pullCommonFactor(operands []Expr, innerKind OperatorKind, outerOp, innerOp *Operator) Expr {
	if len(operands) < 2 {
		if len(operands) == 1 {
			return operands[0]
		}
		return NewCall(outerOp, operands)
	}

	factorSets := make([]map[string]Expr, len(operands))
	for i, o := range operands {
		factorSets[i] = termSet(o, innerKind)
	}

	common := map[string]Expr{}
	for k, v := range factorSets[0] {
		inAll := true
		for _, fs := range factorSets[1:] {
			if _, ok := fs[k]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common[k] = v
		}
	}
	if len(common) == 0 {
		return NewCall(outerOp, operands)
	}

	remainders := make([]Expr, len(operands))
	for i, o := range operands {
		remainders[i] = removeTerms(o, innerKind, common)
	}

	factors := make([]Expr, 0, len(common)+1)
	for _, v := range common {
		factors = append(factors, v)
	}
	var rebuiltRemainder Expr
	nonTrivial := 0
	for _, r := range remainders {
		if r != nil {
			nonTrivial++
		}
	}
	if nonTrivial == len(remainders) {
		var rs []Expr
		for _, r := range remainders {
			if r != nil {
				rs = append(rs, r)
			}
		}
		if len(rs) == 1 {
			rebuiltRemainder = rs[0]
		} else {
			rebuiltRemainder = NewCall(outerOp, rs)
		}
		factors = append(factors, rebuiltRemainder)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return NewCall(innerOp, factors)
}

// termSet returns the set of direct terms of e under innerKind (e's own
// operands if e is an innerKind call, otherwise {e} itself).
func termSet(e Expr, innerKind OperatorKind) map[string]Expr {
	set := map[string]Expr{}
	if c, ok := e.(*Call); ok && c.Op.Kind == innerKind {
		for _, o := range c.Operands {
			set[o.String()] = o
		}
		return set
	}
	set[e.String()] = e
	return set
}

// removeTerms drops the named common terms from e's innerKind term
// list, returning nil if everything was removed.
func removeTerms(e Expr, innerKind OperatorKind, common map[string]Expr) Expr {
	var terms []Expr
	if c, ok := e.(*Call); ok && c.Op.Kind == innerKind {
		terms = c.Operands
	} else {
		terms = []Expr{e}
	}
	var remaining []Expr
	for _, t := range terms {
		if _, ok := common[t.String()]; ok {
			continue
		}
		remaining = append(remaining, t)
	}
	if len(remaining) == 0 {
		return nil
	}
	if len(remaining) == 1 {
		return remaining[0]
	}
	op := And
	if innerKind == OpOr {
		op = Or
	}
	return NewCall(op, remaining)
}
