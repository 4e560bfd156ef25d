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

import "fmt"

// Kind tags the variant of a RowExpression.
type Kind int

const (
	KindLiteral Kind = iota
	KindInputRef
	KindLocalRef
	KindDynamicParam
	KindFieldAccess
	KindCorrelVariable
	KindCall
)

// Expr is the sum type for scalar row expressions. Every variant is an
// immutable value; rewrites always construct a new Expr rather than
// mutating one in place.
type Expr interface {
	fmt.Stringer
	Kind() Kind
	Type() Type
	// Children returns the direct operand sub-expressions, in order.
	// Literal, InputRef, LocalRef, DynamicParam and CorrelVariable are
	// leaves and return nil.
	Children() []Expr
	// WithChildren returns a copy of this expression with its operands
	// replaced; len(children) must equal len(Children()).
	WithChildren(children []Expr) Expr
}

// Literal is a typed constant. Nullability is carried on Typ; a literal
// with Typ.Nullable == true and Val.IsNull == true denotes SQL NULL.
type Literal struct {
	Val Value
	Typ Type
}

func NewLiteral(v Value, t Type) *Literal { return &Literal{Val: v, Typ: t} }

func (l *Literal) Kind() Kind             { return KindLiteral }
func (l *Literal) Type() Type             { return l.Typ }
func (l *Literal) Children() []Expr       { return nil }
func (l *Literal) WithChildren([]Expr) Expr { return l }
func (l *Literal) String() string {
	if l.Val.IsNull {
		return "NULL"
	}
	switch l.Typ.Kind {
	case Boolean:
		return fmt.Sprintf("%v", l.Val.Bool)
	case String:
		return fmt.Sprintf("%q", l.Val.Str)
	case Decimal:
		return l.Val.Dec.String()
	case Float64:
		return fmt.Sprintf("%v", l.Val.Float)
	default:
		return fmt.Sprintf("%v", l.Val.Int)
	}
}

func (l *Literal) IsNull() bool { return l.Val.IsNull }

// InputRef is a positional reference into the surrounding operator's
// input row.
type InputRef struct {
	Index int
	Typ   Type
}

func NewInputRef(idx int, t Type) *InputRef { return &InputRef{Index: idx, Typ: t} }

func (r *InputRef) Kind() Kind               { return KindInputRef }
func (r *InputRef) Type() Type               { return r.Typ }
func (r *InputRef) Children() []Expr         { return nil }
func (r *InputRef) WithChildren([]Expr) Expr { return r }
func (r *InputRef) String() string           { return fmt.Sprintf("$%d", r.Index) }

// LocalRef references an entry in an enclosing local expression
// program's table, e.g. a CSE-extracted sub-expression. Indices are
// bounded by the enclosing program's expression list (checked by
// callers, not here).
type LocalRef struct {
	Index int
	Typ   Type
}

func NewLocalRef(idx int, t Type) *LocalRef { return &LocalRef{Index: idx, Typ: t} }

func (r *LocalRef) Kind() Kind               { return KindLocalRef }
func (r *LocalRef) Type() Type               { return r.Typ }
func (r *LocalRef) Children() []Expr         { return nil }
func (r *LocalRef) WithChildren([]Expr) Expr { return r }
func (r *LocalRef) String() string           { return fmt.Sprintf("local(%d)", r.Index) }

// DynamicParam is a placeholder bound at execution time (a `?` or `$n`
// bind variable).
type DynamicParam struct {
	Index int
	Typ   Type
}

func NewDynamicParam(idx int, t Type) *DynamicParam { return &DynamicParam{Index: idx, Typ: t} }

func (p *DynamicParam) Kind() Kind               { return KindDynamicParam }
func (p *DynamicParam) Type() Type               { return p.Typ }
func (p *DynamicParam) Children() []Expr         { return nil }
func (p *DynamicParam) WithChildren([]Expr) Expr { return p }
func (p *DynamicParam) String() string           { return fmt.Sprintf("?%d", p.Index) }

// FieldAccess projects a single field out of a struct/row-valued target
// expression (e.g. a JSON or composite column).
type FieldAccess struct {
	Target     Expr
	FieldIndex int
	FieldName  string
	Typ        Type
}

func NewFieldAccess(target Expr, idx int, name string, t Type) *FieldAccess {
	return &FieldAccess{Target: target, FieldIndex: idx, FieldName: name, Typ: t}
}

func (f *FieldAccess) Kind() Kind       { return KindFieldAccess }
func (f *FieldAccess) Type() Type       { return f.Typ }
func (f *FieldAccess) Children() []Expr { return []Expr{f.Target} }
func (f *FieldAccess) WithChildren(c []Expr) Expr {
	cp := *f
	cp.Target = c[0]
	return &cp
}
func (f *FieldAccess) String() string { return fmt.Sprintf("%s.%s", f.Target, f.FieldName) }

// CorrelVariable references a column from an outer query scope, used in
// correlated subquery bodies.
type CorrelVariable struct {
	Name string
	Typ  Type
}

func NewCorrelVariable(name string, t Type) *CorrelVariable { return &CorrelVariable{Name: name, Typ: t} }

func (c *CorrelVariable) Kind() Kind               { return KindCorrelVariable }
func (c *CorrelVariable) Type() Type               { return c.Typ }
func (c *CorrelVariable) Children() []Expr         { return nil }
func (c *CorrelVariable) WithChildren([]Expr) Expr { return c }
func (c *CorrelVariable) String() string           { return "@" + c.Name }

// Call applies an Operator to a fixed list of operand expressions. The
// operator carries the kind, name, return-type inference, operand
// checker and determinism flag (see Operator).
type Call struct {
	Op       *Operator
	Operands []Expr
	Typ      Type
}

func NewCall(op *Operator, operands []Expr) *Call {
	return &Call{Op: op, Operands: operands, Typ: op.InferType(operands)}
}

func (c *Call) Kind() Kind       { return KindCall }
func (c *Call) Type() Type       { return c.Typ }
func (c *Call) Children() []Expr { return c.Operands }
func (c *Call) WithChildren(children []Expr) Expr {
	return NewCall(c.Op, children)
}
func (c *Call) String() string {
	s := c.Op.Name + "("
	for i, o := range c.Operands {
		if i > 0 {
			s += ", "
		}
		s += o.String()
	}
	return s + ")"
}
