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

// TestFilterPushDownRulePushesSingleSidedConjuncts exercises spec scenario
// 5 (an animation/musical score join filtered on a per-table predicate):
// `animations.id > 0 AND music.title != ''` decorrelates into two
// single-sided conjuncts and the Selection disappears entirely, both
// pushed down to their own side of the join.
func TestFilterPushDownRulePushesSingleSidedConjuncts(t *testing.T) {
	require := require.New(t)
	join := plan.NewInnerJoin(leftRel(), rightRel(), expression.NewLiteral(true, sql.Boolean))
	leftPred := expression.NewComparison(expression.GT, expression.NewGetField("animations.id"), expression.NewLiteral(0, sql.Integer))
	rightPred := expression.NewComparison(expression.NEQ, expression.NewGetField("music.title"), expression.NewLiteral("", sql.String))
	sel := plan.NewSelection(expression.NewAnd(leftPred, rightPred), join)

	rule := NewFilterPushDownRule()
	require.True(Matches(rule.Operand(), sel))

	results, err := Transform(rule, sel)
	require.NoError(err)
	require.Len(results, 1)

	newJoin, ok := results[0].(*plan.Join)
	require.True(ok, "expected the Selection to be fully absorbed, got %T", results[0])

	leftSel, ok := newJoin.Left.(*plan.Selection)
	require.True(ok)
	require.True(leftSel.Predicate.Equal(leftPred, false))

	rightSel, ok := newJoin.Right.(*plan.Selection)
	require.True(ok)
	require.True(rightSel.Predicate.Equal(rightPred, false))
}

// TestFilterPushDownRuleKeepsAndMergesBiReferentialConjuncts is the
// redesign-mandated regression: two conjuncts that each reference both
// join sides must both survive, AND'd together in the remaining top
// Selection, not just the last one visited.
func TestFilterPushDownRuleKeepsAndMergesBiReferentialConjuncts(t *testing.T) {
	require := require.New(t)
	join := plan.NewInnerJoin(leftRel(), rightRel(), expression.NewLiteral(true, sql.Boolean))
	first := expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewGetField("music.id"))
	second := expression.NewComparison(expression.EQ, expression.NewGetField("animations.name"), expression.NewGetField("music.title"))
	sel := plan.NewSelection(expression.NewAnd(first, second), join)

	rule := NewFilterPushDownRule()
	results, err := Transform(rule, sel)
	require.NoError(err)
	require.Len(results, 1)

	newSel, ok := results[0].(*plan.Selection)
	require.True(ok, "expected a Selection to remain over the join, got %T", results[0])
	and, ok := newSel.Predicate.(*expression.And)
	require.True(ok)
	require.True(and.Left.Equal(first, false))
	require.True(and.Right.Equal(second, false))

	_, ok = newSel.Child.(*plan.Join)
	require.True(ok)
}

func TestFilterPushDownRulePushesConstantConjunctToBothSides(t *testing.T) {
	require := require.New(t)
	join := plan.NewInnerJoin(leftRel(), rightRel(), expression.NewLiteral(true, sql.Boolean))
	constant := expression.NewComparison(expression.EQ, expression.NewLiteral(1, sql.Integer), expression.NewLiteral(1, sql.Integer))
	sel := plan.NewSelection(constant, join)

	rule := NewFilterPushDownRule()
	results, err := Transform(rule, sel)
	require.NoError(err)
	require.Len(results, 1)

	newJoin, ok := results[0].(*plan.Join)
	require.True(ok)
	leftSel, ok := newJoin.Left.(*plan.Selection)
	require.True(ok)
	require.True(leftSel.Predicate.Equal(constant, false))
	rightSel, ok := newJoin.Right.(*plan.Selection)
	require.True(ok)
	require.True(rightSel.Predicate.Equal(constant, false))
}

func TestFilterPushDownRuleRejectsNonJoinChild(t *testing.T) {
	require := require.New(t)
	sel := plan.NewSelection(expression.NewLiteral(true, sql.Boolean), relationStub())
	_, err := Transform(NewFilterPushDownRule(), sel)
	require.Error(err)
}
