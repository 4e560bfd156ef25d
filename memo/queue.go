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

import "container/heap"

// callQueue is a priority queue of RuleCalls keyed by importance, ties
// broken by insertion order. It is a thin wrapper around
// container/heap's interface, a small purpose-built heap rather than a
// generic priority-queue dependency.
type callQueue struct {
	items []*RuleCall
	seq   int
}

func newCallQueue() *callQueue {
	return &callQueue{}
}

func (q *callQueue) push(c *RuleCall) {
	c.seq = q.seq
	q.seq++
	heap.Push((*heapAdapter)(q), c)
}

func (q *callQueue) pop() *RuleCall {
	if len(q.items) == 0 {
		return nil
	}
	return heap.Pop((*heapAdapter)(q)).(*RuleCall)
}

func (q *callQueue) len() int { return len(q.items) }

// heapAdapter implements container/heap.Interface over callQueue's
// slice without exposing heap.Interface on callQueue's own method set.
type heapAdapter callQueue

func (h *heapAdapter) Len() int { return len(h.items) }

func (h *heapAdapter) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.importance != b.importance {
		return a.importance > b.importance
	}
	return a.seq < b.seq
}

func (h *heapAdapter) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *heapAdapter) Push(x interface{}) {
	h.items = append(h.items, x.(*RuleCall))
}

func (h *heapAdapter) Pop() interface{} {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]
	return item
}
