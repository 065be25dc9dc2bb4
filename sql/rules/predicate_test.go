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

func leftRel() sql.Node {
	return plan.NewRelation("mem", "animations", sql.NewSchema(
		sql.Field{Name: "id", Type: sql.Integer, SchemaName: "animations"},
		sql.Field{Name: "name", Type: sql.String, SchemaName: "animations"},
	), sql.NewSliceRowIter(nil))
}

func rightRel() sql.Node {
	return plan.NewRelation("mem", "music", sql.NewSchema(
		sql.Field{Name: "id", Type: sql.Integer, SchemaName: "music"},
		sql.Field{Name: "title", Type: sql.String, SchemaName: "music"},
	), sql.NewSliceRowIter(nil))
}

func TestPredicateSourcesDeduplicates(t *testing.T) {
	require := require.New(t)
	expr := expression.NewAnd(
		expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewLiteral(1, sql.Integer)),
		expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewLiteral(2, sql.Integer)),
	)
	p := NewPredicate(expr)
	require.Equal([]string{"animations.id"}, p.sources())
}

func TestPredicateRelatedToChecksSchema(t *testing.T) {
	require := require.New(t)
	p := NewPredicate(expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewLiteral(1, sql.Integer)))
	require.True(p.RelatedTo(leftRel()))
	require.False(p.RelatedTo(rightRel()))
}

func TestDecorrelateAndGroupsByRelatedSide(t *testing.T) {
	require := require.New(t)
	left := expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewLiteral(1, sql.Integer))
	right := expression.NewComparison(expression.EQ, expression.NewGetField("music.id"), expression.NewLiteral(2, sql.Integer))
	both := expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewGetField("music.id"))

	pred := NewPredicate(expression.NewAnd(expression.NewAnd(left, right), both))
	groups := DecorrelateAnd(pred, []sql.Node{leftRel(), rightRel()})

	require.Len(groups, 3)
	require.Contains(groups, relatedKey([]int{0}))
	require.Contains(groups, relatedKey([]int{1}))
	require.Contains(groups, relatedKey([]int{0, 1}))
}

func TestDecorrelateAndMergesMultipleConjunctsSharingRelatedSet(t *testing.T) {
	require := require.New(t)
	first := expression.NewComparison(expression.EQ, expression.NewGetField("animations.id"), expression.NewGetField("music.id"))
	second := expression.NewComparison(expression.EQ, expression.NewGetField("animations.name"), expression.NewGetField("music.title"))

	pred := NewPredicate(expression.NewAnd(first, second))
	groups := DecorrelateAnd(pred, []sql.Node{leftRel(), rightRel()})

	require.Len(groups, 1)
	merged, ok := groups[relatedKey([]int{0, 1})]
	require.True(ok)
	and, ok := merged.Expr.(*expression.And)
	require.True(ok)
	require.True(and.Left.Equal(first, false))
	require.True(and.Right.Equal(second, false))
}
