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

// flattenBool collects direct and nested operands of the same
// OperatorKind (AND flattens AND, OR flattens OR).
func flattenBool(kind OperatorKind, operands []Expr) []Expr {
	var out []Expr
	for _, o := range operands {
		if c, ok := o.(*Call); ok && c.Op.Kind == kind {
			out = append(out, flattenBool(kind, c.Operands)...)
		} else {
			out = append(out, o)
		}
	}
	return out
}

func dedupeExprs(operands []Expr) []Expr {
	seen := map[string]bool{}
	var out []Expr
	for _, o := range operands {
		k := o.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, o)
	}
	return out
}

func boolLitValue(e Expr) (v bool, lit bool) {
	l, ok := e.(*Literal)
	if !ok || l.Typ.Kind != Boolean || l.Val.IsNull {
		return false, false
	}
	return l.Val.Bool, true
}

func negationOf(e Expr) Expr {
	if c, ok := e.(*Call); ok && c.Op.Kind == OpNot && len(c.Operands) == 1 {
		return c.Operands[0]
	}
	return NewCall(Not, []Expr{e})
}

// hasComplement reports whether operands contains both e and NOT(e) for
// some e, returning that e.
func hasComplement(operands []Expr) (Expr, bool) {
	set := map[string]Expr{}
	for _, o := range operands {
		set[o.String()] = o
	}
	for _, o := range operands {
		neg := negationOf(o)
		if _, ok := set[neg.String()]; ok {
			if c, isNot := o.(*Call); isNot && c.Op.Kind == OpNot {
				continue // avoid double-reporting both directions
			}
			return o, true
		}
	}
	return nil, false
}

// absorb implements x AND (x OR y) = x / x OR (x AND y) = x: drop any
// operand that is itself an OR/AND call directly containing another
// operand from the same level.
func absorb(kind OperatorKind, operands []Expr) []Expr {
	innerKind := OpOr
	if kind == OpOr {
		innerKind = OpAnd
	}
	keep := make([]bool, len(operands))
	for i := range operands {
		keep[i] = true
	}
	for i, o := range operands {
		c, ok := o.(*Call)
		if !ok || c.Op.Kind != innerKind {
			continue
		}
		for j, other := range operands {
			if i == j || !keep[j] {
				continue
			}
			for _, inner := range c.Operands {
				if inner.String() == other.String() {
					keep[i] = false
				}
			}
		}
	}
	var out []Expr
	for i, o := range operands {
		if keep[i] {
			out = append(out, o)
		}
	}
	return out
}

func simplifyAnd(operands []Expr, mode UnknownAsMode) Expr {
	operands = dedupeExprs(flattenBool(OpAnd, operands))

	var kept []Expr
	for _, o := range operands {
		if v, ok := boolLitValue(o); ok {
			if !v {
				return boolLit(false)
			}
			continue // drop TRUE
		}
		kept = append(kept, o)
	}
	operands = kept

	if x, ok := hasComplement(operands); ok {
		if mode == UnknownAsFalse {
			return boolLit(false)
		}
		return NewCall(And, []Expr{nullLit(Type{Kind: Boolean, Nullable: true}), NewCall(IsNull, []Expr{x})})
	}

	operands = absorb(OpAnd, operands)

	switch len(operands) {
	case 0:
		return boolLit(true)
	case 1:
		return operands[0]
	default:
		return NewCall(And, operands)
	}
}

func simplifyOr(operands []Expr, mode UnknownAsMode) Expr {
	operands = dedupeExprs(flattenBool(OpOr, operands))

	var kept []Expr
	for _, o := range operands {
		if v, ok := boolLitValue(o); ok {
			if v {
				return boolLit(true)
			}
			continue // drop FALSE
		}
		kept = append(kept, o)
	}
	operands = kept
	operands = absorb(OpOr, operands)

	switch len(operands) {
	case 0:
		return boolLit(false)
	case 1:
		return operands[0]
	default:
		return NewCall(Or, operands)
	}
}

func simplifyNot(operand Expr, mode UnknownAsMode) Expr {
	if c, ok := operand.(*Call); ok && c.Op.Kind == OpNot {
		return c.Operands[0] // NOT NOT x = x
	}
	if v, ok := boolLitValue(operand); ok {
		return boolLit(!v)
	}
	if l, ok := operand.(*Literal); ok && l.Val.IsNull {
		return nullOutcome(Type{Kind: Boolean, Nullable: true}, mode)
	}
	// de Morgan's law: push NOT through AND/OR so downstream CNF/DNF
	// conversion and absorption can see the pushed-down form.
	if c, ok := operand.(*Call); ok && (c.Op.Kind == OpAnd || c.Op.Kind == OpOr) {
		negated := make([]Expr, len(c.Operands))
		for i, o := range c.Operands {
			negated[i] = negationOf(o)
		}
		if c.Op.Kind == OpAnd {
			return simplifyOr(negated, mode)
		}
		return simplifyAnd(negated, mode)
	}
	return NewCall(Not, []Expr{operand})
}

func simplifyIsNull(operand Expr) Expr {
	if !operand.Type().Nullable {
		return boolLit(false)
	}
	if l, ok := operand.(*Literal); ok {
		return boolLit(l.Val.IsNull)
	}
	return NewCall(IsNull, []Expr{operand})
}

func simplifyIsNotNull(operand Expr) Expr {
	if !operand.Type().Nullable {
		return boolLit(true)
	}
	if l, ok := operand.(*Literal); ok {
		return boolLit(!l.Val.IsNull)
	}
	return NewCall(IsNotNull, []Expr{operand})
}

func simplifyIsTrue(operand Expr) Expr {
	if v, ok := boolLitValue(operand); ok {
		return boolLit(v)
	}
	if l, ok := operand.(*Literal); ok && l.Val.IsNull {
		return boolLit(false)
	}
	if !operand.Type().Nullable {
		return operand
	}
	return NewCall(IsTrue, []Expr{operand})
}

// simplifyComparison folds x = x, x <= x, x >= x to IS NOT NULL(x) (or
// TRUE when x is non-nullable), x < x, x > x, x <> x to FALSE (when x
// is non-nullable or under FALSE mode; otherwise to AND(NULL, IS
// NULL(x)), which keeps the operator's nullability: NULL when x is
// NULL, FALSE otherwise), and literal/literal comparisons by the
// type's total order.
func simplifyComparison(op *Operator, operands []Expr, mode UnknownAsMode) Expr {
	lhs, rhs := operands[0], operands[1]

	if lhs.String() == rhs.String() {
		switch op.Kind {
		case OpEq, OpLe, OpGe:
			if !lhs.Type().Nullable {
				return boolLit(true)
			}
			return simplifyIsNotNull(lhs)
		case OpLt, OpGt, OpNe:
			if !lhs.Type().Nullable {
				return boolLit(false)
			}
			// NULL when x is NULL, FALSE otherwise; plain FALSE under
			// FALSE mode.
			if mode == UnknownAsFalse {
				return boolLit(false)
			}
			return NewCall(And, []Expr{nullLit(Type{Kind: Boolean, Nullable: true}), NewCall(IsNull, []Expr{lhs})})
		}
	}

	llit, lok := lhs.(*Literal)
	rlit, rok := rhs.(*Literal)
	if lok && rok {
		if llit.Val.IsNull || rlit.Val.IsNull {
			return nullOutcome(Type{Kind: Boolean, Nullable: true}, mode)
		}
		cmp := compareLiterals(llit, rlit)
		var result bool
		switch op.Kind {
		case OpEq:
			result = cmp == 0
		case OpNe:
			result = cmp != 0
		case OpLt:
			result = cmp < 0
		case OpLe:
			result = cmp <= 0
		case OpGt:
			result = cmp > 0
		case OpGe:
			result = cmp >= 0
		}
		return boolLit(result)
	}

	return NewCall(op, []Expr{lhs, rhs})
}

// compareLiterals orders two non-null literals of compatible kind.
// Returns -1, 0 or 1.
func compareLiterals(a, b *Literal) int {
	switch a.Typ.Kind {
	case Int64:
		switch {
		case a.Val.Int < b.Val.Int:
			return -1
		case a.Val.Int > b.Val.Int:
			return 1
		default:
			return 0
		}
	case Float64:
		switch {
		case a.Val.Float < b.Val.Float:
			return -1
		case a.Val.Float > b.Val.Float:
			return 1
		default:
			return 0
		}
	case Decimal:
		return a.Val.Dec.Cmp(b.Val.Dec)
	case String:
		switch {
		case a.Val.Str < b.Val.Str:
			return -1
		case a.Val.Str > b.Val.Str:
			return 1
		default:
			return 0
		}
	case Boolean:
		if a.Val.Bool == b.Val.Bool {
			return 0
		}
		if !a.Val.Bool {
			return -1
		}
		return 1
	default:
		return 0
	}
}
