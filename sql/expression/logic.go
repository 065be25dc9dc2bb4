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

// And is a logical conjunction. The rule engine's predicate decorrelation
// (sql/rules) recurses specifically on *And nodes (SPEC_FULL.md §4.5).
type And struct {
	Left, Right sql.Expression
}

// NewAnd builds a logical AND expression.
func NewAnd(left, right sql.Expression) *And {
	return &And{Left: left, Right: right}
}

func (a *And) Children() []sql.Expression { return []sql.Expression{a.Left, a.Right} }

func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, wrongChildren("And", 2, len(children))
	}
	return &And{Left: children[0], Right: children[1]}, nil
}

func (a *And) CostFactor() float64 { return sql.DefaultCostFactor }

func (a *And) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*And)
	return ok && a.Left.Equal(o.Left, ignoreSchema) && a.Right.Equal(o.Right, ignoreSchema)
}

func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is a logical disjunction.
type Or struct {
	Left, Right sql.Expression
}

// NewOr builds a logical OR expression.
func NewOr(left, right sql.Expression) *Or {
	return &Or{Left: left, Right: right}
}

func (o *Or) Children() []sql.Expression { return []sql.Expression{o.Left, o.Right} }

func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, wrongChildren("Or", 2, len(children))
	}
	return &Or{Left: children[0], Right: children[1]}, nil
}

func (o *Or) CostFactor() float64 { return sql.DefaultCostFactor }

func (o *Or) Equal(other sql.Expression, ignoreSchema bool) bool {
	ot, ok := other.(*Or)
	return ok && o.Left.Equal(ot.Left, ignoreSchema) && o.Right.Equal(ot.Right, ignoreSchema)
}

func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// Not is logical negation. `NOT IN (...)` lowers to Not{In{...}}
// (SPEC_FULL.md §4.2).
type Not struct {
	Operand sql.Expression
}

// NewNot builds a logical NOT expression.
func NewNot(operand sql.Expression) *Not {
	return &Not{Operand: operand}
}

func (n *Not) Children() []sql.Expression { return []sql.Expression{n.Operand} }

func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Not", 1, len(children))
	}
	return &Not{Operand: children[0]}, nil
}

func (n *Not) CostFactor() float64 { return sql.DefaultCostFactor }

func (n *Not) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Not)
	return ok && n.Operand.Equal(o.Operand, ignoreSchema)
}

func (n *Not) String() string { return fmt.Sprintf("(NOT %s)", n.Operand) }
