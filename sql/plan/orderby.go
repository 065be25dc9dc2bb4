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

// OrderBy is `ORDER BY SortExprs`, where each SortExprs element is an
// *expression.Asc or *expression.Desc wrapping the column expression.
// Schema passes through unchanged from Child.
type OrderBy struct {
	UnaryNode
	SortExprs []sql.Expression
}

// NewOrderBy builds a sort node.
func NewOrderBy(sortExprs []sql.Expression, child sql.Node) *OrderBy {
	return &OrderBy{UnaryNode: UnaryNode{Child: child}, SortExprs: sortExprs}
}

func (o *OrderBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("OrderBy", 1, len(children))
	}
	cp := *o
	cp.Child = children[0]
	return &cp, nil
}

func (o *OrderBy) Resolved() bool     { return o.UnaryNode.Resolved() }
func (o *OrderBy) Schema() sql.Schema { return o.Child.Schema() }

// CostFactor accounts for the in-memory sort every OrderBy performs; the
// refined cost (sql/cost) adds the sort expressions' own costs to it.
func (o *OrderBy) CostFactor() float64 { return 2.0 }

func (o *OrderBy) String() string {
	var buf bytes.Buffer
	buf.WriteString("OrderBy(")
	for i, e := range o.SortExprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", e)
	}
	buf.WriteString(")")
	return buf.String()
}
