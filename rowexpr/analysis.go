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

// IsDeterministic reports whether e always produces the same output for
// the same inputs. A Call is deterministic only if its operator is
// deterministic and every operand is deterministic.
func IsDeterministic(e Expr) bool {
	if c, ok := e.(*Call); ok {
		if !c.Op.Deterministic {
			return false
		}
		for _, o := range c.Operands {
			if !IsDeterministic(o) {
				return false
			}
		}
		return true
	}
	for _, c := range e.Children() {
		if !IsDeterministic(c) {
			return false
		}
	}
	return true
}

// KnownNulls is a set of sub-expressions (identified by String form)
// that the caller already knows evaluate to NULL on every row. IsNull
// and IsNotTrue consult it in addition to structural analysis.
type KnownNulls map[string]bool

func (k KnownNulls) has(e Expr) bool {
	if k == nil {
		return false
	}
	return k[e.String()]
}

// IsNull reports whether e is statically known to always evaluate to
// NULL: a NULL literal, a known-null reference, or a null-strict call
// over an always-null operand.
func IsNull(e Expr, known KnownNulls) bool {
	if l, ok := e.(*Literal); ok {
		return l.Val.IsNull
	}
	if known.has(e) {
		return true
	}
	if c, ok := e.(*Call); ok && c.Op.NullStrict {
		for _, o := range c.Operands {
			if IsNull(o, known) {
				return true
			}
		}
	}
	return false
}

// IsNotTrue reports whether e is statically known to never evaluate to
// TRUE under SQL three-valued logic, i.e. it is always NULL or always
// FALSE.
func IsNotTrue(e Expr, known KnownNulls) bool {
	if IsNull(e, known) {
		return true
	}
	if l, ok := e.(*Literal); ok && l.Typ.Kind == Boolean && !l.Val.IsNull {
		return !l.Val.Bool
	}
	if c, ok := e.(*Call); ok && c.Op.Kind == OpAnd {
		for _, o := range c.Operands {
			if IsNotTrue(o, known) {
				return true
			}
		}
	}
	return false
}

// IsLosslessCast reports whether cast widens its source type (numeric
// widening, or identical char/byte family) such that every value of
// the source domain is representable in the target domain without
// truncation.
func IsLosslessCast(cast *Cast) bool {
	src := cast.Source().Type()
	if src.Kind == cast.Target.Kind {
		return true
	}
	return widens(src.Kind, cast.Target.Kind)
}
