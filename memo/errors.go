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

import "github.com/pkg/errors"

// Sentinel error kinds, plain errors wrapped with github.com/pkg/errors
// at the raise site and matched with errors.Is at the catch site.
var (
	// ErrInvalidInput reports a malformed node or expression at entry:
	// bad type inference, negative indices, mismatched arity.
	ErrInvalidInput = errors.New("memo: invalid input")

	// ErrNoImplementationFound reports that no member of the goal
	// subset satisfies the required convention at extraction time.
	ErrNoImplementationFound = errors.New("memo: no implementation found for required traits")

	// ErrIncompatibleRewrite reports that a rule produced a node whose
	// row type differs from the node it replaced. Fatal: the run fails.
	ErrIncompatibleRewrite = errors.New("memo: rule produced incompatible row type")

	// ErrRuleFailure wraps a panic or error raised from within a rule
	// action. The planner aborts the run with state Failed.
	ErrRuleFailure = errors.New("memo: rule action failed")

	// ErrBound reports that the iteration cap or deadline fired before
	// the call queue emptied. Not fatal: findBestPlan still returns
	// the best plan known so far, with status Exhausted.
	ErrBound = errors.New("memo: iteration or time bound reached")

	// ErrCancelled reports that the caller's cancel flag was observed.
	ErrCancelled = errors.New("memo: planning run cancelled")
)

// ruleSignal is the panic value raiseRuleFailure raises from code
// inside package memo; fireRuleCall recovers it into ErrRuleFailure.
// rowexpr.Simplify recovers its own ErrAlwaysNull and never raises it.
type ruleSignal struct {
	err error
}

func raiseRuleFailure(err error) {
	panic(ruleSignal{err: errors.Wrap(err, "rule action")})
}
