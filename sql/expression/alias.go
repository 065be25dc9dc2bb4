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

// Alias is `expr AS name` (the scalar RenameOp of SPEC_FULL.md §3/§4.4).
type Alias struct {
	Name string
	Expr sql.Expression
}

// NewAlias builds a rename expression, matching the teacher's
// expression.NewAlias(name, expr) argument order.
func NewAlias(name string, expr sql.Expression) *Alias {
	return &Alias{Name: name, Expr: expr}
}

func (a *Alias) Children() []sql.Expression { return []sql.Expression{a.Expr} }

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Alias", 1, len(children))
	}
	return &Alias{Name: a.Name, Expr: children[0]}, nil
}

func (a *Alias) CostFactor() float64 { return sql.TinyCostFactor }

func (a *Alias) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Alias)
	return ok && a.Name == o.Name && a.Expr.Equal(o.Expr, ignoreSchema)
}

func (a *Alias) String() string { return fmt.Sprintf("%s AS %s", a.Expr, a.Name) }
