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

// Asc wraps an ORDER BY key expression in ascending order (the default;
// explicit for symmetry with Desc).
type Asc struct {
	Expr sql.Expression
}

// NewAsc builds an ascending order modifier.
func NewAsc(expr sql.Expression) *Asc { return &Asc{Expr: expr} }

func (a *Asc) Children() []sql.Expression { return []sql.Expression{a.Expr} }

func (a *Asc) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Asc", 1, len(children))
	}
	return &Asc{Expr: children[0]}, nil
}

func (a *Asc) CostFactor() float64 { return sql.TinyCostFactor }

func (a *Asc) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Asc)
	return ok && a.Expr.Equal(o.Expr, ignoreSchema)
}

func (a *Asc) String() string { return fmt.Sprintf("%s ASC", a.Expr) }

// Desc wraps an ORDER BY key expression in descending order. Per
// SPEC_FULL.md §4.8, the executor negates its sort key per-column: numeric
// types by arithmetic negation, strings by byte-wise reversal, and
// unsupported types contribute a constant key (handled in sql/rowexec, not
// here -- Desc itself is pure IR).
type Desc struct {
	Expr sql.Expression
}

// NewDesc builds a descending order modifier.
func NewDesc(expr sql.Expression) *Desc { return &Desc{Expr: expr} }

func (d *Desc) Children() []sql.Expression { return []sql.Expression{d.Expr} }

func (d *Desc) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Desc", 1, len(children))
	}
	return &Desc{Expr: children[0]}, nil
}

func (d *Desc) CostFactor() float64 { return sql.TinyCostFactor }

func (d *Desc) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Desc)
	return ok && d.Expr.Equal(o.Expr, ignoreSchema)
}

func (d *Desc) String() string { return fmt.Sprintf("%s DESC", d.Expr) }
