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
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// Between is `expr BETWEEN lower AND upper` (SPEC_FULL.md §4.2: `between`
// lowers to BetweenOp(expr, lhs, rhs)).
type Between struct {
	Expr, Lower, Upper sql.Expression
}

// NewBetween builds a BETWEEN expression.
func NewBetween(expr, lower, upper sql.Expression) *Between {
	return &Between{Expr: expr, Lower: lower, Upper: upper}
}

func (b *Between) Children() []sql.Expression {
	return []sql.Expression{b.Expr, b.Lower, b.Upper}
}

func (b *Between) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, wrongChildren("Between", 3, len(children))
	}
	return &Between{Expr: children[0], Lower: children[1], Upper: children[2]}, nil
}

func (b *Between) CostFactor() float64 { return sql.DefaultCostFactor }

func (b *Between) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Between)
	return ok && b.Expr.Equal(o.Expr, ignoreSchema) && b.Lower.Equal(o.Lower, ignoreSchema) && b.Upper.Equal(o.Upper, ignoreSchema)
}

func (b *Between) String() string {
	return fmt.Sprintf("%s BETWEEN %s AND %s", b.Expr, b.Lower, b.Upper)
}

// In is `expr IN (tuple)` (SPEC_FULL.md §4.2).
type In struct {
	Expr, List sql.Expression
}

// NewIn builds an IN expression; list is typically a *Tuple.
func NewIn(expr, list sql.Expression) *In {
	return &In{Expr: expr, List: list}
}

func (i *In) Children() []sql.Expression { return []sql.Expression{i.Expr, i.List} }

func (i *In) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, wrongChildren("In", 2, len(children))
	}
	return &In{Expr: children[0], List: children[1]}, nil
}

func (i *In) CostFactor() float64 { return sql.DefaultCostFactor }

func (i *In) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*In)
	return ok && i.Expr.Equal(o.Expr, ignoreSchema) && i.List.Equal(o.List, ignoreSchema)
}

func (i *In) String() string { return fmt.Sprintf("%s IN %s", i.Expr, i.List) }
