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

package plan

import (
	"bytes"
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// GroupBy is `GROUP BY Keys` projecting Aggregates alongside them. Keys may
// be empty, in which case the whole input collapses into a single output
// row (SPEC_FULL.md §9 fixes the original's double-count-of-the-first-row
// bug for this no-keys case in sql/rowexec, not here).
type GroupBy struct {
	UnaryNode
	Keys       []sql.Expression
	Aggregates []sql.Expression
	sch        sql.Schema
	hasSch     bool
}

// NewGroupBy builds an unresolved group-by node.
func NewGroupBy(keys, aggregates []sql.Expression, child sql.Node) *GroupBy {
	return &GroupBy{UnaryNode: UnaryNode{Child: child}, Keys: keys, Aggregates: aggregates}
}

func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("GroupBy", 1, len(children))
	}
	cp := *g
	cp.Child = children[0]
	return &cp, nil
}

// WithSchema attaches the resolved output schema (group keys followed by
// aggregate result fields).
func (g *GroupBy) WithSchema(s sql.Schema) *GroupBy {
	cp := *g
	cp.sch, cp.hasSch = s, true
	return &cp
}

func (g *GroupBy) Resolved() bool      { return g.UnaryNode.Resolved() && g.hasSch }
func (g *GroupBy) Schema() sql.Schema  { return g.sch }

// CostFactor reflects the hash-bucketing pass every grouped aggregation
// performs over its input, costlier than a plain Selection/Projection.
func (g *GroupBy) CostFactor() float64 { return 1.5 }

func (g *GroupBy) String() string {
	var buf bytes.Buffer
	buf.WriteString("GroupBy(keys=[")
	for i, k := range g.Keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", k)
	}
	buf.WriteString("], aggs=[")
	for i, a := range g.Aggregates {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", a)
	}
	buf.WriteString("])")
	return buf.String()
}
