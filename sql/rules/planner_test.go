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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

func TestHeuristicPlannerMergesNestedSelections(t *testing.T) {
	require := require.New(t)
	lowerPred := expression.NewComparison(expression.GT, expression.NewGetField("id"), expression.NewLiteral(0, sql.Integer))
	upperPred := expression.NewComparison(expression.LT, expression.NewGetField("id"), expression.NewLiteral(100, sql.Integer))
	root := plan.NewSelection(upperPred, plan.NewSelection(lowerPred, relationStub()))

	planner := NewHeuristicPlanner()
	planner.AddRule(NewFilterMergeRule())

	best, err := planner.FindBestPlan(root)
	require.NoError(err)

	sel, ok := best.(*plan.Selection)
	require.True(ok)
	_, stillNested := sel.Child.(*plan.Selection)
	require.False(stillNested, "expected the two Selections to merge into one")

	and, ok := sel.Predicate.(*expression.And)
	require.True(ok)
	require.True(and.Left.Equal(lowerPred, false))
	require.True(and.Right.Equal(upperPred, false))
}

// TestHeuristicPlannerRewritesDeepInTree checks that a rewrite buried
// beneath an unrelated ancestor (here an OrderBy on top) is still found and
// spliced back in without disturbing the ancestor, exercising replaceNode's
// whole-path reconstruction.
func TestHeuristicPlannerRewritesDeepInTree(t *testing.T) {
	require := require.New(t)
	lowerPred := expression.NewComparison(expression.GT, expression.NewGetField("id"), expression.NewLiteral(0, sql.Integer))
	upperPred := expression.NewComparison(expression.LT, expression.NewGetField("id"), expression.NewLiteral(100, sql.Integer))
	nested := plan.NewSelection(upperPred, plan.NewSelection(lowerPred, relationStub()))
	root := plan.NewOrderBy([]sql.Expression{expression.NewAsc(expression.NewGetField("id"))}, nested)

	planner := NewHeuristicPlanner()
	planner.AddRule(NewFilterMergeRule())

	best, err := planner.FindBestPlan(root)
	require.NoError(err)

	ob, ok := best.(*plan.OrderBy)
	require.True(ok)
	sel, ok := ob.Child.(*plan.Selection)
	require.True(ok)
	_, stillNested := sel.Child.(*plan.Selection)
	require.False(stillNested)
}

func TestHeuristicPlannerStopsAtMaxApplications(t *testing.T) {
	require := require.New(t)
	lowerPred := expression.NewComparison(expression.GT, expression.NewGetField("id"), expression.NewLiteral(0, sql.Integer))
	midPred := expression.NewComparison(expression.LT, expression.NewGetField("id"), expression.NewLiteral(100, sql.Integer))
	upperPred := expression.NewComparison(expression.NEQ, expression.NewGetField("id"), expression.NewLiteral(50, sql.Integer))
	root := plan.NewSelection(upperPred, plan.NewSelection(midPred, plan.NewSelection(lowerPred, relationStub())))

	planner := NewHeuristicPlanner()
	planner.AddRule(NewFilterMergeRule())
	planner.MaxApplications = 1

	best, err := planner.FindBestPlan(root)
	require.NoError(err)

	outer, ok := best.(*plan.Selection)
	require.True(ok)
	mid, ok := outer.Child.(*plan.Selection)
	require.True(ok)
	// Exactly one merge applied: the pre-order scan matches the outermost
	// Selection first, so the outer two Selections collapsed into one,
	// leaving the innermost Selection still distinct beneath it.
	_, innerStillNested := mid.Child.(*plan.Selection)
	require.False(innerStillNested)
}

func TestDefaultCostSumsNodeCostFactors(t *testing.T) {
	require := require.New(t)
	sel := plan.NewSelection(expression.NewLiteral(true, sql.Boolean), relationStub())
	expected := sel.CostFactor() + sel.Child.CostFactor()
	require.Equal(expected, DefaultCost(sel))
}
