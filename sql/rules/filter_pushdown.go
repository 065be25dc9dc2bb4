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
	"github.com/wyfunique/dbsim/sql/plan"
)

// FilterPushDownRule decorrelates `Selection(Join(L, R))`'s predicate by
// AND and pushes each independent conjunct down to whichever side(s) of the
// join it is related to, ported from filter_push_down_rule.py. Per
// SPEC_FULL.md's redesign, every conjunct related to both sides is AND'd
// together into the remaining top Selection rather than only the last one
// surviving (see DecorrelateAnd's doc comment).
type FilterPushDownRule struct{}

// NewFilterPushDownRule builds the rule.
func NewFilterPushDownRule() *FilterPushDownRule { return &FilterPushDownRule{} }

func (r *FilterPushDownRule) Name() string { return "FilterPushDown" }

func (r *FilterPushDownRule) Operand() Operand {
	return Node((*plan.Selection)(nil), Node((*plan.Join)(nil), Any, Any))
}

func (r *FilterPushDownRule) TransformImpl(node sql.Node) ([]sql.Node, error) {
	sel, ok := node.(*plan.Selection)
	if !ok {
		return nil, fmt.Errorf("rules: FilterPushDown expected *plan.Selection, got %T", node)
	}
	join, ok := sel.Child.(*plan.Join)
	if !ok {
		return nil, fmt.Errorf("rules: FilterPushDown expected *plan.Join child, got %T", sel.Child)
	}

	groups := DecorrelateAnd(NewPredicate(sel.Predicate), []sql.Node{join.Left, join.Right})

	left, right := join.Left, join.Right
	if p, ok := groups[relatedKey(nil)]; ok {
		// Related to neither side (a constant expression like `1 = 1`):
		// push a copy down to both children.
		left = plan.NewSelection(p.Expr, left)
		right = plan.NewSelection(p.Expr, right)
	}
	if p, ok := groups[relatedKey([]int{0})]; ok {
		left = plan.NewSelection(p.Expr, left)
	}
	if p, ok := groups[relatedKey([]int{1})]; ok {
		right = plan.NewSelection(p.Expr, right)
	}

	newJoinNode, err := join.WithChildren(left, right)
	if err != nil {
		return nil, err
	}

	if p, ok := groups[relatedKey([]int{0, 1})]; ok {
		// Related to both sides: cannot be pushed down, so it stays as the
		// new top Selection over the rebuilt join.
		return []sql.Node{plan.NewSelection(p.Expr, newJoinNode)}, nil
	}

	// Every conjunct was pushed down; the join itself becomes the new root.
	return []sql.Node{newJoinNode}, nil
}
