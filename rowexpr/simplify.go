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

// UnknownAsMode selects how three-valued SQL UNKNOWN is interpreted at
// the call site of Simplify.
type UnknownAsMode int

const (
	// UnknownAsUnknown keeps three-valued semantics: the simplified
	// expression may still evaluate to NULL.
	UnknownAsUnknown UnknownAsMode = iota
	// UnknownAsTrue collapses NULL to TRUE (used rarely, e.g. NOT IN
	// antijoin rewrites under certain null-handling modes).
	UnknownAsTrue
	// UnknownAsFalse collapses NULL to FALSE; this is the mode a
	// WHERE clause is simplified under, since SQL filters drop rows
	// whose predicate is UNKNOWN.
	UnknownAsFalse
)

// Context carries facts believed true over the surrounding row, used to
// fold predicates implied (or contradicted) by the filter context they
// appear in.
type Context struct {
	Facts []Expr
	Known KnownNulls
}

func NewContext(facts ...Expr) *Context {
	return &Context{Facts: facts}
}

func (ctx *Context) factStrings() map[string]bool {
	facts := map[string]bool{}
	if ctx == nil {
		return facts
	}
	for _, f := range ctx.Facts {
		facts[f.String()] = true
	}
	return facts
}

// impliesTrue reports whether the context's facts directly contain e,
// i.e. P ⇒ e for the literal conjunct P.
func impliesTrue(ctx *Context, e Expr) bool {
	return ctx.factStrings()[e.String()]
}

// impliesFalse reports whether the context's facts directly contain
// NOT(e), i.e. P ⇒ ¬e.
func impliesFalse(ctx *Context, e Expr) bool {
	facts := ctx.factStrings()
	if facts[NewCall(Not, []Expr{e}).String()] {
		return true
	}
	if c, ok := e.(*Call); ok && c.Op.Kind == OpNot && len(c.Operands) == 1 {
		return facts[c.Operands[0].String()]
	}
	return false
}

func boolLit(b bool) *Literal {
	return NewLiteral(BoolValue(b), NotNullType(Boolean))
}

func nullLit(t Type) *Literal {
	return NewLiteral(NullValue(), t.WithNullable(true))
}

// nullOutcome converts an always-null result into the literal the
// caller's unknown-as mode demands.
func nullOutcome(t Type, mode UnknownAsMode) Expr {
	switch mode {
	case UnknownAsTrue:
		return boolLit(true)
	case UnknownAsFalse:
		return boolLit(false)
	default:
		return nullLit(t)
	}
}

// Simplify reduces e to an equivalent, idempotent normal form under the
// given unknown-as mode and predicate context. It never returns an
// error: ErrAlwaysNull raised internally is caught here and converted
// per mode.
func Simplify(e Expr, mode UnknownAsMode, ctx *Context) (result Expr) {
	defer func() {
		if r := recover(); r != nil {
			if r == ErrAlwaysNull {
				result = nullOutcome(e.Type(), mode)
				return
			}
			panic(r)
		}
	}()
	return simplify(e, mode, ctx)
}

func simplify(e Expr, mode UnknownAsMode, ctx *Context) Expr {
	if e.Type().Kind == Boolean {
		if impliesTrue(ctx, e) {
			return boolLit(true)
		}
		if impliesFalse(ctx, e) {
			return boolLit(false)
		}
	}

	if cast, ok := e.(*Cast); ok {
		return simplifyCast(cast, simplify(cast.Source(), UnknownAsUnknown, ctx))
	}

	switch e.Kind() {
	case KindLiteral, KindInputRef, KindLocalRef, KindDynamicParam, KindCorrelVariable:
		return e
	case KindFieldAccess:
		fa := e.(*FieldAccess)
		target := simplify(fa.Target, UnknownAsUnknown, ctx)
		return fa.WithChildren([]Expr{target})
	case KindCall:
		return simplifyCall(e.(*Call), mode, ctx)
	default:
		return e
	}
}

func simplifyChildren(c *Call, mode UnknownAsMode, ctx *Context) []Expr {
	out := make([]Expr, len(c.Operands))
	for i, o := range c.Operands {
		out[i] = simplify(o, mode, ctx)
	}
	return out
}

func simplifyCall(c *Call, mode UnknownAsMode, ctx *Context) Expr {
	switch c.Op.Kind {
	case OpAnd:
		return simplifyAnd(simplifyChildren(c, mode, ctx), mode)
	case OpOr:
		return simplifyOr(simplifyChildren(c, mode, ctx), mode)
	case OpNot:
		return simplifyNot(simplify(c.Operands[0], UnknownAsUnknown, ctx), mode)
	case OpIsNull:
		return simplifyIsNull(simplify(c.Operands[0], UnknownAsUnknown, ctx))
	case OpIsNotNull:
		return simplifyIsNotNull(simplify(c.Operands[0], UnknownAsUnknown, ctx))
	case OpIsTrue:
		return simplifyIsTrue(simplify(c.Operands[0], UnknownAsUnknown, ctx))
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return simplifyComparison(c.Op, simplifyChildren(c, UnknownAsUnknown, ctx), mode)
	case OpCase:
		return simplifyCase(simplifyChildren(c, UnknownAsUnknown, ctx))
	case OpCoalesce:
		return simplifyCoalesce(simplifyChildren(c, UnknownAsUnknown, ctx))
	case OpNullIf:
		return simplifyNullIf(simplifyChildren(c, UnknownAsUnknown, ctx))
	default:
		return simplifyGeneric(c, simplifyChildren(c, UnknownAsUnknown, ctx))
	}
}

// simplifyGeneric rebuilds a non-boolean/non-comparison call with
// simplified operands. It does not constant-fold: even a deterministic
// call over literal operands is returned as the rebuilt call.
func simplifyGeneric(c *Call, operands []Expr) Expr {
	rebuilt := c.WithChildren(operands)
	if !c.Op.Deterministic {
		return rebuilt
	}
	for _, o := range operands {
		if o.Kind() != KindLiteral {
			return rebuilt
		}
	}
	// No generic constant evaluator is registered for arbitrary
	// operators in this package; adapters that register arithmetic
	// operators are expected to fold through their own Operator value
	// (out of scope for the shared simplifier). Returning the rebuilt
	// call here keeps this a safe no-op rather than guessing at
	// semantics we don't own.
	return rebuilt
}
