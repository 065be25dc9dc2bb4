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

func TestFilterMergeRuleCombinesPredicatesWithAnd(t *testing.T) {
	require := require.New(t)
	lowerPred := expression.NewComparison(expression.GT, expression.NewGetField("id"), expression.NewLiteral(0, sql.Integer))
	upperPred := expression.NewComparison(expression.LT, expression.NewGetField("id"), expression.NewLiteral(100, sql.Integer))
	inner := plan.NewSelection(lowerPred, relationStub())
	outer := plan.NewSelection(upperPred, inner)

	rule := NewFilterMergeRule()
	require.True(Matches(rule.Operand(), outer))

	results, err := Transform(rule, outer)
	require.NoError(err)
	require.Len(results, 1)

	merged, ok := results[0].(*plan.Selection)
	require.True(ok)
	and, ok := merged.Predicate.(*expression.And)
	require.True(ok)
	require.True(and.Left.Equal(lowerPred, false))
	require.True(and.Right.Equal(upperPred, false))
	require.Equal(relationStub().String(), merged.Child.String())
}

func TestFilterMergeRuleRejectsNonNestedSelection(t *testing.T) {
	require := require.New(t)
	sel := plan.NewSelection(expression.NewLiteral(true, sql.Boolean), relationStub())
	_, err := Transform(NewFilterMergeRule(), sel)
	require.Error(err)
}
