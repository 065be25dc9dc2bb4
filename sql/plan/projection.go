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

// Projection is `SELECT <Exprs> FROM Child`. Exprs may include *expression.Star
// for `*`/`table.*` expansion, which the resolver flattens into concrete
// Var references against Child's schema (SPEC_FULL.md §4.4).
type Projection struct {
	UnaryNode
	Exprs    []sql.Expression
	sch      sql.Schema
	hasSch   bool
}

// NewProjection builds an unresolved projection.
func NewProjection(exprs []sql.Expression, child sql.Node) *Projection {
	return &Projection{UnaryNode: UnaryNode{Child: child}, Exprs: exprs}
}

func (p *Projection) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Projection", 1, len(children))
	}
	cp := *p
	cp.Child = children[0]
	return &cp, nil
}

// WithSchema returns a copy of p with its resolved output schema attached;
// used exclusively by sql/resolver.
func (p *Projection) WithSchema(s sql.Schema) *Projection {
	cp := *p
	cp.sch, cp.hasSch = s, true
	return &cp
}

func (p *Projection) Resolved() bool { return p.UnaryNode.Resolved() && p.hasSch }
func (p *Projection) Schema() sql.Schema { return p.sch }
func (p *Projection) CostFactor() float64 { return sql.DefaultCostFactor }

func (p *Projection) String() string {
	var buf bytes.Buffer
	buf.WriteString("Projection(")
	for i, e := range p.Exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", e)
	}
	buf.WriteString(")")
	return buf.String()
}
