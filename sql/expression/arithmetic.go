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

// Arithmetic operator tokens (SPEC_FULL.md §3).
const (
	Add = "+"
	Sub = "-"
	Mul = "*"
	Div = "/"
	Mod = "%"
)

// Arithmetic is a binary arithmetic operator (+ - * / %).
type Arithmetic struct {
	Op          string
	Left, Right sql.Expression
}

// NewArithmetic builds a binary arithmetic expression.
func NewArithmetic(op string, left, right sql.Expression) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right}
}

func (a *Arithmetic) Children() []sql.Expression { return []sql.Expression{a.Left, a.Right} }

func (a *Arithmetic) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, wrongChildren("Arithmetic", 2, len(children))
	}
	return &Arithmetic{Op: a.Op, Left: children[0], Right: children[1]}, nil
}

func (a *Arithmetic) CostFactor() float64 { return sql.DefaultCostFactor }

func (a *Arithmetic) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Arithmetic)
	return ok && a.Op == o.Op && a.Left.Equal(o.Left, ignoreSchema) && a.Right.Equal(o.Right, ignoreSchema)
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}

// UnaryMinus is arithmetic negation.
type UnaryMinus struct {
	Operand sql.Expression
}

// NewUnaryMinus builds a unary minus expression.
func NewUnaryMinus(operand sql.Expression) *UnaryMinus {
	return &UnaryMinus{Operand: operand}
}

func (u *UnaryMinus) Children() []sql.Expression { return []sql.Expression{u.Operand} }

func (u *UnaryMinus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("UnaryMinus", 1, len(children))
	}
	return &UnaryMinus{Operand: children[0]}, nil
}

func (u *UnaryMinus) CostFactor() float64 { return sql.DefaultCostFactor }

func (u *UnaryMinus) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*UnaryMinus)
	return ok && u.Operand.Equal(o.Operand, ignoreSchema)
}

func (u *UnaryMinus) String() string { return fmt.Sprintf("-%s", u.Operand) }
