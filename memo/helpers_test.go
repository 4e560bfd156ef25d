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

import "github.com/polybase/optimizer/rowexpr"

func boolLit(b bool) rowexpr.Expr {
	return rowexpr.NewLiteral(rowexpr.BoolValue(b), rowexpr.NotNullType(rowexpr.Boolean))
}

func intLit(i int64) rowexpr.Expr {
	return rowexpr.NewLiteral(rowexpr.IntValue(i), rowexpr.NotNullType(rowexpr.Int64))
}

func inputRef(idx int) rowexpr.Expr {
	return rowexpr.NewInputRef(idx, rowexpr.NotNullType(rowexpr.Int64))
}
