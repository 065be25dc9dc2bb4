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
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// Selection is `WHERE Predicate`. Its schema is always its child's schema
// unchanged -- filtering never adds, drops, or renames fields.
type Selection struct {
	UnaryNode
	Predicate sql.Expression
}

// NewSelection builds a filter node.
func NewSelection(predicate sql.Expression, child sql.Node) *Selection {
	return &Selection{UnaryNode: UnaryNode{Child: child}, Predicate: predicate}
}

func (s *Selection) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Selection", 1, len(children))
	}
	cp := *s
	cp.Child = children[0]
	return &cp, nil
}

// WithPredicate returns a copy of s with its predicate replaced, used by
// sql/rules' FilterMerge and FilterPushDown rewrites.
func (s *Selection) WithPredicate(p sql.Expression) *Selection {
	cp := *s
	cp.Predicate = p
	return &cp
}

func (s *Selection) Resolved() bool {
	return s.UnaryNode.Resolved() && s.Predicate != nil
}

func (s *Selection) Schema() sql.Schema { return s.Child.Schema() }

// CostFactor is intentionally larger than a bare Projection's: evaluating a
// predicate against every input row costs more than passing a row through
// unchanged (SPEC_FULL.md §4.9/§11 two-phase cost model).
func (s *Selection) CostFactor() float64 { return 1.2 }

func (s *Selection) String() string {
	return fmt.Sprintf("Selection(%s)", s.Predicate)
}
