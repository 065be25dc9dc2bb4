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

package expression

import (
	"bytes"
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// CaseWhen is one WHEN/THEN arm of a Case expression.
type CaseWhen struct {
	Cond, Result sql.Expression
}

// Case is `CASE WHEN cond THEN result ... [ELSE else] END` (SPEC_FULL.md
// §3). Else may be nil.
type Case struct {
	Whens []CaseWhen
	Else  sql.Expression
}

// NewCase builds a searched CASE expression.
func NewCase(whens []CaseWhen, els sql.Expression) *Case {
	return &Case{Whens: whens, Else: els}
}

func (c *Case) Children() []sql.Expression {
	out := make([]sql.Expression, 0, len(c.Whens)*2+1)
	for _, w := range c.Whens {
		out = append(out, w.Cond, w.Result)
	}
	if c.Else != nil {
		out = append(out, c.Else)
	}
	return out
}

func (c *Case) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	want := len(c.Whens) * 2
	if c.Else != nil {
		want++
	}
	if len(children) != want {
		return nil, wrongChildren("Case", want, len(children))
	}
	whens := make([]CaseWhen, len(c.Whens))
	for i := range whens {
		whens[i] = CaseWhen{Cond: children[2*i], Result: children[2*i+1]}
	}
	var els sql.Expression
	if c.Else != nil {
		els = children[want-1]
	}
	return &Case{Whens: whens, Else: els}, nil
}

func (c *Case) CostFactor() float64 { return sql.DefaultCostFactor }

func (c *Case) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Case)
	if !ok || len(c.Whens) != len(o.Whens) {
		return false
	}
	for i := range c.Whens {
		if !c.Whens[i].Cond.Equal(o.Whens[i].Cond, ignoreSchema) || !c.Whens[i].Result.Equal(o.Whens[i].Result, ignoreSchema) {
			return false
		}
	}
	if (c.Else == nil) != (o.Else == nil) {
		return false
	}
	if c.Else != nil && !c.Else.Equal(o.Else, ignoreSchema) {
		return false
	}
	return true
}

func (c *Case) String() string {
	var buf bytes.Buffer
	buf.WriteString("CASE")
	for _, w := range c.Whens {
		fmt.Fprintf(&buf, " WHEN %s THEN %s", w.Cond, w.Result)
	}
	if c.Else != nil {
		fmt.Fprintf(&buf, " ELSE %s", c.Else)
	}
	buf.WriteString(" END")
	return buf.String()
}

// Cast is `CAST(expr AS type)` (SPEC_FULL.md §3, §6).
type Cast struct {
	Expr       sql.Expression
	TargetType sql.FieldType
}

// NewCast builds a CAST expression.
func NewCast(expr sql.Expression, target sql.FieldType) *Cast {
	return &Cast{Expr: expr, TargetType: target}
}

func (c *Cast) Children() []sql.Expression { return []sql.Expression{c.Expr} }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Cast", 1, len(children))
	}
	return &Cast{Expr: children[0], TargetType: c.TargetType}, nil
}

func (c *Cast) CostFactor() float64 { return sql.DefaultCostFactor }

func (c *Cast) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Cast)
	return ok && c.TargetType == o.TargetType && c.Expr.Equal(o.Expr, ignoreSchema)
}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Expr, c.TargetType) }
