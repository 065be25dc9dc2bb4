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

package rules

import (
	"fmt"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// FilterMergeRule merges `Selection(Selection(x))` into a single
// `Selection(x)` whose predicate is the AND of both, ported from
// filter_merge_rule.py.
type FilterMergeRule struct{}

// NewFilterMergeRule builds the rule.
func NewFilterMergeRule() *FilterMergeRule { return &FilterMergeRule{} }

func (r *FilterMergeRule) Name() string { return "FilterMerge" }

func (r *FilterMergeRule) Operand() Operand {
	return Node((*plan.Selection)(nil), Node((*plan.Selection)(nil), Any))
}

func (r *FilterMergeRule) TransformImpl(node sql.Node) ([]sql.Node, error) {
	upper, ok := node.(*plan.Selection)
	if !ok {
		return nil, fmt.Errorf("rules: FilterMerge expected *plan.Selection, got %T", node)
	}
	lower, ok := upper.Child.(*plan.Selection)
	if !ok {
		return nil, fmt.Errorf("rules: FilterMerge expected *plan.Selection child, got %T", upper.Child)
	}
	merged := lower.WithPredicate(expression.NewAnd(lower.Predicate, upper.Predicate))
	return []sql.Node{merged}, nil
}
