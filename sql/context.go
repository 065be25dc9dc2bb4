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

package sql

import (
	"context"
	"strconv"
	"sync"

	uuid "github.com/satori/go.uuid"
)

// NodeStat is the per-relational-operator statistic recorded during
// execution: the number of rows the operator's input produced the first
// time it was pulled dry. SPEC_FULL.md §9 moves this off the IR node (the
// original mutates a `num_input_rows` attribute in place) and into this
// side table keyed by stable node identity, so deep copies of a plan never
// carry stale stats and the IR stays an immutable value type.
type NodeStat struct {
	NumInputRows int
}

// Context carries everything a single query execution needs beyond the
// plan itself: a cancellable context.Context, positional bind parameters,
// and the per-node row-count side table the cost model (sql/cost) reads
// after driving the executor. It is always created fresh per query/per
// cost computation and is never retained afterward (SPEC_FULL.md §5).
type Context struct {
	context.Context

	QueryID uuid.UUID
	Params  []interface{}

	mu    sync.Mutex
	stats map[Node]*NodeStat
}

// NewContext wraps parent with a fresh QueryID and an empty stat table.
func NewContext(parent context.Context, params ...interface{}) *Context {
	return &Context{
		Context: parent,
		QueryID: uuid.NewV4(),
		Params:  params,
		stats:   make(map[Node]*NodeStat),
	}
}

// NewEmptyContext returns a Context wrapping context.Background() with no
// parameters, the common case in tests.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// Param returns the k-th positional bind parameter (0-based), used to
// evaluate a ParamGetterOp (`?k`).
func (c *Context) Param(k int) (interface{}, error) {
	if k < 0 || k >= len(c.Params) {
		return nil, ErrFieldNotFound.New("parameter ?" + strconv.Itoa(k))
	}
	return c.Params[k], nil
}

// RecordRows stores the number of rows node's input produced, the first
// (and only) time it is recorded for this Context. Subsequent calls for the
// same node are ignored, since the executor materialises each operator's
// input exactly once per query execution.
func (c *Context) RecordRows(node Node, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.stats[node]; ok {
		return
	}
	c.stats[node] = &NodeStat{NumInputRows: n}
}

// Rows returns the recorded row count for node, or (0, false) if none was
// recorded (e.g. the node was never pulled, such as a short-circuited Slice
// upstream, or the query never ran).
func (c *Context) Rows(node Node) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stats[node]
	if !ok {
		return 0, false
	}
	return s.NumInputRows, true
}

// Stats returns a snapshot copy of every recorded node statistic, used by
// sql/cost to sum the total logical cost.
func (c *Context) Stats() map[Node]NodeStat {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Node]NodeStat, len(c.stats))
	for n, s := range c.stats {
		out[n] = *s
	}
	return out
}
