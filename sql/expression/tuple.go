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

// Tuple is an ordered, fixed-size list of scalar expressions, used as the
// right-hand side of IN.
type Tuple struct {
	Elems []sql.Expression
}

// NewTuple builds a tuple expression.
func NewTuple(elems ...sql.Expression) *Tuple {
	return &Tuple{Elems: elems}
}

func (t *Tuple) Children() []sql.Expression { return t.Elems }

func (t *Tuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &Tuple{Elems: children}, nil
}

func (t *Tuple) CostFactor() float64 { return sql.TinyCostFactor }

func (t *Tuple) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Tuple)
	return ok && equalAll(t.Elems, o.Elems, ignoreSchema)
}

func (t *Tuple) String() string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, e := range t.Elems {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", e)
	}
	buf.WriteByte(')')
	return buf.String()
}

// ItemGetter is `expr $k`, indexing into a tuple/record-valued expression.
type ItemGetter struct {
	Expr sql.Expression
	Key  interface{}
}

// NewItemGetter builds an item-getter expression.
func NewItemGetter(expr sql.Expression, key interface{}) *ItemGetter {
	return &ItemGetter{Expr: expr, Key: key}
}

func (g *ItemGetter) Children() []sql.Expression { return []sql.Expression{g.Expr} }

func (g *ItemGetter) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("ItemGetter", 1, len(children))
	}
	return &ItemGetter{Expr: children[0], Key: g.Key}, nil
}

func (g *ItemGetter) CostFactor() float64 { return sql.TinyCostFactor }

func (g *ItemGetter) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*ItemGetter)
	return ok && g.Key == o.Key && g.Expr.Equal(o.Expr, ignoreSchema)
}

func (g *ItemGetter) String() string { return fmt.Sprintf("%s$%v", g.Expr, g.Key) }

// Row is the distinguished reference to the whole current row, the
// implicit receiver of a bare `$k` with nothing to its left --
// query_parser_toolbox.py's value_exp builds ItemGetterOp(key) straight off
// the row with no sub-expression of its own, so NewItemGetter(Row, key) is
// this port's equivalent standalone value.
var Row sql.Expression = &rowRef{}

type rowRef struct{}

func (r *rowRef) Children() []sql.Expression { return nil }

func (r *rowRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Row", 0, len(children))
	}
	return r, nil
}

func (r *rowRef) CostFactor() float64 { return sql.TinyCostFactor }

func (r *rowRef) Equal(other sql.Expression, ignoreSchema bool) bool {
	_, ok := other.(*rowRef)
	return ok
}

func (r *rowRef) String() string { return "$" }

// Star is `*` or `table.*` (SelectAllExpr of SPEC_FULL.md §3). SchemaName
// is empty for bare `*`.
type Star struct {
	SchemaName string
}

// NewStar builds a select-all expression, optionally qualified.
func NewStar(schemaName string) *Star { return &Star{SchemaName: schemaName} }

func (s *Star) Children() []sql.Expression { return nil }

func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Star", 0, len(children))
	}
	cp := *s
	return &cp, nil
}

func (s *Star) CostFactor() float64 { return sql.TinyCostFactor }

func (s *Star) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Star)
	return ok && s.SchemaName == o.SchemaName
}

func (s *Star) String() string {
	if s.SchemaName == "" {
		return "*"
	}
	return s.SchemaName + ".*"
}
