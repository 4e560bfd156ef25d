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

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/polybase/optimizer/algebra"
	"github.com/polybase/optimizer/trait"
)

// Status is the planner driver's state, per the state machine in the
// planner's public contract: Configuring -> Seeded -> Running ->
// {Done | Cancelled | Exhausted | Failed}.
type Status int

const (
	Configuring Status = iota
	Seeded
	Running
	Done
	Cancelled
	Exhausted
	Failed
)

func (s Status) String() string {
	switch s {
	case Configuring:
		return "Configuring"
	case Seeded:
		return "Seeded"
	case Running:
		return "Running"
	case Done:
		return "Done"
	case Cancelled:
		return "Cancelled"
	case Exhausted:
		return "Exhausted"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Option configures a Planner at construction time, following the same
// functional-options style a context builder offers for its own
// per-run settings (WithPid, WithQuery, ...).
type Option func(*Planner)

func WithIterationLimit(n int) Option {
	return func(p *Planner) { p.iterationLimit = n }
}

func WithDeadline(d time.Time) Option {
	return func(p *Planner) { p.deadline = d }
}

func WithCostWeights(w CostWeights) Option {
	return func(p *Planner) { p.weights = w }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Planner) { p.logger = l }
}

func WithTracer(t opentracing.Tracer) Option {
	return func(p *Planner) { p.tracer = t }
}

// Planner is the search driver: it owns the equivalence search space
// for one run, the registered rules and trait definitions, and the
// fixpoint loop that fires rule calls until the queue empties or a
// bound is reached.
type Planner struct {
	id uuid.UUID

	registry *trait.Registry
	coster   Coster
	weights  CostWeights
	logger   logrus.FieldLogger
	tracer   opentracing.Tracer

	space *Space

	status Status

	goal       *Subset
	goalTraits *trait.Set

	iterationLimit int
	deadline       time.Time
	cancelFlag     *int32
}

// NewPlanner constructs a Planner in state Configuring, bound to
// registry for its trait definitions and coster for cost estimation.
func NewPlanner(registry *trait.Registry, coster Coster, opts ...Option) *Planner {
	p := &Planner{
		id:       uuid.New(),
		registry: registry,
		coster:   coster,
		weights:  DefaultCostWeights,
		logger:   logrus.StandardLogger(),
		status:   Configuring,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.space = newSpace(p.logger)
	return p
}

func (p *Planner) ID() uuid.UUID    { return p.id }
func (p *Planner) Status() Status   { return p.status }
func (p *Planner) Space() *Space    { return p.space }

// AddRule registers r, allowed only while Configuring.
func (p *Planner) AddRule(r Rule) error {
	if p.status != Configuring {
		return errors.Errorf("memo: AddRule called in state %s, want Configuring", p.status)
	}
	p.space.addRule(r)
	return nil
}

// AddTraitDef registers a trait definition, allowed only while
// Configuring.
func (p *Planner) AddTraitDef(d *trait.Def) error {
	if p.status != Configuring {
		return errors.Errorf("memo: AddTraitDef called in state %s, want Configuring", p.status)
	}
	p.registry.Register(d)
	return nil
}

func (p *Planner) SetCancelFlag(flag *int32)  { p.cancelFlag = flag }
func (p *Planner) SetIterationLimit(n int)    { p.iterationLimit = n }
func (p *Planner) SetDeadline(t time.Time)    { p.deadline = t }

// SetRoot interns node as the root of the search and records
// requiredTraits as the goal the extractor must satisfy, transitioning
// Configuring -> Seeded.
func (p *Planner) SetRoot(node algebra.Node, requiredTraits *trait.Set) (*Subset, error) {
	if p.status != Configuring {
		return nil, errors.Errorf("memo: SetRoot called in state %s, want Configuring", p.status)
	}
	sub, err := p.space.Intern(node, nil)
	if err != nil {
		return nil, err
	}
	p.goal = sub
	p.goalTraits = requiredTraits
	p.status = Seeded
	propagateImportance(sub, 1.0, map[*Subset]bool{})
	return sub, nil
}

// propagateImportance assigns importance to subset and recurses into
// its members' inputs, dividing by the subset's current best-cost
// scalar the way the rule engine's importance formula
// (parentImportance * childRelativeCost) specifies. Before any cost is
// known, children are treated as relative cost 1 (seed importance
// passes through unchanged), matching the contract that importance
// only needs to be a usable ranking signal, not an exact value.
func propagateImportance(sub *Subset, importance float64, visited map[*Subset]bool) {
	if visited[sub] {
		return
	}
	visited[sub] = true
	sub.raiseImportance(importance)
	for _, m := range sub.Members() {
		childRelative := 1.0
		if sub.bestCost != nil && sub.bestCost.Scalar(DefaultCostWeights) > 0 {
			childRelative = 1.0 / sub.bestCost.Scalar(DefaultCostWeights)
		}
		for _, in := range m.Inputs() {
			if childSub, ok := in.(*Subset); ok {
				propagateImportance(childSub, importance*childRelative, visited)
			}
		}
	}
}

// FindBestPlan runs the fixpoint loop: pop the highest-importance rule
// call, skip it if stale, otherwise apply its rule and intern every
// resulting equivalent via transformTo, re-seeding further rule calls.
// Terminates on an empty queue (Done), the iteration/deadline bound
// (Exhausted), an observed cancellation (Cancelled), or a rule error
// (Failed).
func (p *Planner) FindBestPlan() (algebra.Node, error) {
	if p.status != Seeded {
		return nil, errors.Errorf("memo: FindBestPlan called in state %s, want Seeded", p.status)
	}
	p.status = Running

	var span opentracing.Span
	if p.tracer != nil {
		span = p.tracer.StartSpan("optimizer.find_best_plan")
		defer span.Finish()
	}

	iterations := 0
	for p.space.queue.len() > 0 {
		if p.cancelled() {
			p.status = Cancelled
			return nil, ErrCancelled
		}
		if p.bounded(iterations) {
			p.status = Exhausted
			plan, extractErr := p.extract()
			if extractErr != nil {
				return nil, ErrBound
			}
			return plan, ErrBound
		}

		call := p.space.queue.pop()
		iterations++
		if call.stale() {
			continue
		}

		if err := p.fireRuleCall(call); err != nil {
			p.status = Failed
			return nil, err
		}
	}

	p.status = Done
	return p.extract()
}

func (p *Planner) cancelled() bool {
	return p.cancelFlag != nil && atomic.LoadInt32(p.cancelFlag) != 0
}

func (p *Planner) bounded(iterations int) bool {
	if p.iterationLimit > 0 && iterations >= p.iterationLimit {
		return true
	}
	if !p.deadline.IsZero() && time.Now().After(p.deadline) {
		return true
	}
	return false
}

// fireRuleCall executes one rule call. An error returned by the rule's
// Apply and any panic raised while it runs (a ruleSignal from
// raiseRuleFailure or any other value) come back as an error wrapping
// ErrRuleFailure.
func (p *Planner) fireRuleCall(call *RuleCall) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(ruleSignal); ok {
				err = fmt.Errorf("%w: %w", ErrRuleFailure, sig.err)
			} else {
				err = fmt.Errorf("%w: panic: %v", ErrRuleFailure, r)
			}
		}
	}()

	var span opentracing.Span
	if p.tracer != nil {
		span = p.tracer.StartSpan("optimizer.fire_rule")
		span.SetTag("rule", call.rule.Name())
		defer span.Finish()
	}
	p.logger.WithField("rule", call.rule.Name()).Trace("firing rule call")

	equivalents, applyErr := call.rule.Apply(p.space, call.root)
	if applyErr != nil {
		return fmt.Errorf("%w: %w", ErrRuleFailure, applyErr)
	}
	for _, eq := range equivalents {
		if _, err := p.space.transformTo(call.root, eq); err != nil {
			return err
		}
	}
	return nil
}

// RequireConvention ensures subset (or a sibling in its Set) satisfies
// want by inserting a Converter node via def's Convert factory when no
// existing member already does, per the trait framework's convention-
// insertion contract.
func (p *Planner) RequireConvention(subset *Subset, def *trait.Def, want *trait.Set) (*Subset, error) {
	if existing := p.space.RequireTrait(subset, want); existing != nil {
		return existing, nil
	}
	have := subset.Traits().Get(def)
	target := want.Get(def)
	converted, ok := def.Convert(subset, have, target, true)
	if !ok {
		return nil, ErrNoImplementationFound
	}
	node, ok := converted.(algebra.Node)
	if !ok {
		return nil, errors.Wrap(ErrInvalidInput, "converter factory did not return an algebra.Node")
	}
	return p.space.Intern(node, subset.set)
}
