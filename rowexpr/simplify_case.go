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

// caseBranch is one WHEN cond THEN result pair of a CASE call.
type caseBranch struct {
	Cond   Expr
	Result Expr
}

// caseBranches splits a CASE call's flattened operand list (cond1,
// result1, cond2, result2, ..., [else]) into branches plus an optional
// else expression.
func caseBranches(operands []Expr) (branches []caseBranch, elseExpr Expr, hasElse bool) {
	n := len(operands)
	pairs := n / 2
	for i := 0; i < pairs; i++ {
		branches = append(branches, caseBranch{Cond: operands[2*i], Result: operands[2*i+1]})
	}
	if n%2 == 1 {
		elseExpr = operands[n-1]
		hasElse = true
	}
	return
}

func rebuildCase(branches []caseBranch, elseExpr Expr, hasElse bool) []Expr {
	out := make([]Expr, 0, len(branches)*2+1)
	for _, b := range branches {
		out = append(out, b.Cond, b.Result)
	}
	if hasElse {
		out = append(out, elseExpr)
	}
	return out
}

// simplifyCase removes always-false branches, merges adjacent branches
// with an identical result expression, and rewrites a CASE that
// reduces to a boolean condition into that condition (or IS TRUE of
// it).
func simplifyCase(operands []Expr) Expr {
	branches, elseExpr, hasElse := caseBranches(operands)

	var kept []caseBranch
	for _, b := range branches {
		if IsNotTrue(b.Cond, nil) {
			continue
		}
		kept = append(kept, b)
	}
	branches = kept

	// Collapse adjacent branches with equal results into one
	// OR-combined condition.
	var merged []caseBranch
	for _, b := range branches {
		if len(merged) > 0 && merged[len(merged)-1].Result.String() == b.Result.String() {
			last := &merged[len(merged)-1]
			last.Cond = simplifyOr([]Expr{last.Cond, b.Cond}, UnknownAsUnknown)
			continue
		}
		merged = append(merged, b)
	}
	branches = merged

	if len(branches) == 0 {
		if hasElse {
			return elseExpr
		}
		alwaysNull()
	}

	// CASE WHEN c THEN true ELSE false END (or no-else, nullable
	// result) reduces to a condition.
	if len(branches) == 1 {
		b := branches[0]
		trueResult, tIsLit := boolLitValue(b.Result)
		falseElse, eIsLit := false, false
		if hasElse {
			falseElse, eIsLit = boolLitValue(elseExpr)
		}
		if tIsLit && trueResult && ((hasElse && eIsLit && !falseElse) || !hasElse) {
			if !b.Result.Type().Nullable {
				return simplifyIsTrue(b.Cond)
			}
			if !b.Cond.Type().Nullable {
				return b.Cond
			}
		}
	}

	return NewCall(Case, rebuildCase(branches, elseExpr, hasElse))
}

// simplifyCoalesce drops arguments after the first provably non-null
// one, removes duplicate arguments, and folds entirely if every
// argument is null-known.
func simplifyCoalesce(operands []Expr) Expr {
	var kept []Expr
	seen := map[string]bool{}
	for _, o := range operands {
		if IsNull(o, nil) {
			continue
		}
		if seen[o.String()] {
			continue
		}
		seen[o.String()] = true
		kept = append(kept, o)
		if !o.Type().Nullable {
			break // every later argument is unreachable
		}
	}
	if len(kept) == 0 {
		alwaysNull()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return NewCall(Coalesce, kept)
}

// simplifyNullIf folds NULLIF(x, x) to a null of x's type and returns
// x unchanged when the two arguments are provably distinct literals.
func simplifyNullIf(operands []Expr) Expr {
	a, b := operands[0], operands[1]
	if a.String() == b.String() {
		return nullLit(a.Type())
	}
	if al, ok := a.(*Literal); ok {
		if bl, ok := b.(*Literal); ok && !al.Val.IsNull && !bl.Val.IsNull {
			if compareLiterals(al, bl) == 0 {
				return nullLit(a.Type())
			}
			return a
		}
	}
	return NewCall(NullIf, []Expr{a, b})
}

// simplifyCast drops no-op casts, collapses cast(cast(x, T), T) and
// folds cast(literal, T) through the type-assignment matrix when the
// target domain admits it.
func simplifyCast(orig *Cast, operand Expr) Expr {
	target := orig.Target
	if operand.Type().Kind == target.Kind && operand.Type().Nullable == target.Nullable {
		return operand
	}
	if inner, ok := operand.(*Cast); ok && inner.Target.Kind == target.Kind {
		return simplifyCast(orig, inner.Source())
	}
	if lit, ok := operand.(*Literal); ok && !lit.Val.IsNull {
		if folded, ok := foldLiteralCast(lit, target); ok {
			return folded
		}
	}
	return NewCast(operand, target)
}

// foldLiteralCast folds a literal cast when the source/target pair is
// in the supported domain; arithmetic overflow or unsupported pairs
// return ok=false so the caller keeps the unfolded cast.
func foldLiteralCast(lit *Literal, target Type) (Expr, bool) {
	switch {
	case lit.Typ.Kind == Int64 && target.Kind == Float64:
		return NewLiteral(Value{Float: float64(lit.Val.Int)}, target), true
	case lit.Typ.Kind == Int64 && target.Kind == Decimal:
		return NewLiteral(DecimalValue(decimalFromInt(lit.Val.Int)), target), true
	case lit.Typ.Kind == target.Kind:
		return NewLiteral(lit.Val, target), true
	default:
		return nil, false
	}
}
