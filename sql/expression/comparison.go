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

// Comparison operator tokens (SPEC_FULL.md §3).
const (
	LT       = "<"
	LTE      = "<="
	EQ       = "="
	NEQ      = "!="
	GTE      = ">="
	GT       = ">"
	Is       = "is"
	IsNot    = "is not"
	Like     = "like"
	NotLike  = "not like"
	RLike    = "rlike"
	NotRLike = "not rlike"
	Regexp   = "regexp"
)

// Comparison is a binary comparison operator.
type Comparison struct {
	Op          string
	Left, Right sql.Expression
}

// NewComparison builds a comparison expression.
func NewComparison(op string, left, right sql.Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func (c *Comparison) Children() []sql.Expression { return []sql.Expression{c.Left, c.Right} }

func (c *Comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, wrongChildren("Comparison", 2, len(children))
	}
	return &Comparison{Op: c.Op, Left: children[0], Right: children[1]}, nil
}

func (c *Comparison) CostFactor() float64 { return sql.DefaultCostFactor }

func (c *Comparison) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Comparison)
	return ok && c.Op == o.Op && c.Left.Equal(o.Left, ignoreSchema) && c.Right.Equal(o.Right, ignoreSchema)
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// IsEquality reports whether this comparison is a plain "=" between two
// operands, the shape the executor's Join compiler looks for when deriving
// hash-join key columns (SPEC_FULL.md §4.8).
func (c *Comparison) IsEquality() bool { return c.Op == EQ }
