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

import "github.com/pkg/errors"

// ErrAlwaysNull is an internal signal raised when a sub-expression must
// evaluate to null but the caller demanded non-null. It never escapes
// the simplifier's public boundary: Simplify catches it and converts it
// into a null literal or a constant boolean per the unknown-as mode.
var ErrAlwaysNull = errors.New("expression always evaluates to null")

// alwaysNull panics with ErrAlwaysNull; it is recovered by Simplify.
func alwaysNull() {
	panic(ErrAlwaysNull)
}
