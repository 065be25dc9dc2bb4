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

// Literal is a constant value of a known FieldType: number, string, bool,
// or an extension-contributed constant (vector/point/circle literals
// implement sql.ExtendedExpression directly rather than embedding Literal).
type Literal struct {
	Value interface{}
	Type  sql.FieldType
}

// NewLiteral builds a constant expression.
func NewLiteral(value interface{}, t sql.FieldType) *Literal {
	return &Literal{Value: value, Type: t}
}

func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Literal", 0, len(children))
	}
	cp := *l
	return &cp, nil
}

func (l *Literal) CostFactor() float64 { return sql.TinyCostFactor }

func (l *Literal) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Literal)
	return ok && l.Type == o.Type && l.Value == o.Value
}

func (l *Literal) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.Value)
}

// Null is the distinguished NULL constant.
var Null sql.Expression = &nullLiteral{}

type nullLiteral struct{}

func (n *nullLiteral) Children() []sql.Expression { return nil }

func (n *nullLiteral) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Null", 0, len(children))
	}
	return n, nil
}

func (n *nullLiteral) CostFactor() float64 { return sql.TinyCostFactor }

func (n *nullLiteral) Equal(other sql.Expression, ignoreSchema bool) bool {
	_, ok := other.(*nullLiteral)
	return ok
}

func (n *nullLiteral) String() string { return "NULL" }

// IsNull reports whether v is the nil interface (the runtime representation
// of a NULL value flowing through row evaluation).
func IsNull(v interface{}) bool { return v == nil }
