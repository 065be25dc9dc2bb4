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

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

func animalsRelation() *plan.Relation {
	sch := sql.NewSchema(
		sql.Field{Name: "id", Type: sql.Integer, SchemaName: "animals"},
		sql.Field{Name: "name", Type: sql.String, SchemaName: "animals"},
	)
	rows := sql.NewSliceRowIter([]sql.Row{
		sql.NewRow(int64(1), "capybara"),
		sql.NewRow(int64(2), "tapir"),
	})
	return plan.NewRelation("memory", "animals", sch, rows)
}

func TestRelationResolvedAndSchema(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	require.True(rel.Resolved())
	require.Equal(2, rel.Schema().Len())
}

func TestLoadOpUnresolved(t *testing.T) {
	require := require.New(t)
	l := plan.NewLoad("animals")
	require.False(l.Resolved())
	require.Equal("animals", l.Name())
}

func TestSelectionSchemaPassesThroughChild(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	pred := expression.NewComparison(expression.EQ, expression.NewGetField("animals.name"), expression.NewLiteral("capybara", sql.String))
	sel := plan.NewSelection(pred, rel)
	require.True(sel.Schema().Equal(rel.Schema()))
	require.True(sel.Resolved())
}

func TestWalkVisitsEveryNode(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	sel := plan.NewSelection(expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(int64(1), sql.Integer)), rel)
	proj := plan.NewProjection([]sql.Expression{expression.NewGetField("name")}, sel)

	var seen int
	plan.Walk(func(n sql.Node) bool {
		seen++
		return true
	}, proj)
	require.Equal(3, seen)
}

func TestInspectGivesParentAndIndex(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	sel := plan.NewSelection(expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(int64(1), sql.Integer)), rel)

	entries := plan.Inspect(sel)
	require.Len(entries, 2)
	require.Equal(sel, entries[0].Node)
	require.Nil(entries[0].Parent)
	require.Equal(-1, entries[0].Index)
	require.Equal(rel, entries[1].Node)
	require.Equal(sel, entries[1].Parent)
	require.Equal(0, entries[1].Index)
}

func TestReplaceChild(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	pred1 := expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(int64(1), sql.Integer))
	pred2 := expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(int64(2), sql.Integer))
	sel := plan.NewSelection(pred1, rel)

	replaced, err := plan.ReplaceChild(sel, 0, plan.NewSelection(pred2, rel))
	require.NoError(err)
	newSel, ok := replaced.(*plan.Selection)
	require.True(ok)
	require.True(newSel.Predicate.Equal(pred2, true))
}

func TestDeepCopyDisjointIdentity(t *testing.T) {
	require := require.New(t)
	rel := animalsRelation()
	pred := expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(int64(1), sql.Integer))
	sel := plan.NewSelection(pred, rel)
	proj := plan.NewProjection([]sql.Expression{expression.NewGetField("name")}, sel)

	cp := plan.DeepCopy(proj)
	require.NotSame(proj, cp)
	cpProj, ok := cp.(*plan.Projection)
	require.True(ok)
	require.NotSame(proj.Child, cpProj.Child)
	require.True(plan.Equal(proj, cp))
}

func TestJoinSchemaConcatenation(t *testing.T) {
	require := require.New(t)
	left := animalsRelation()
	right := plan.NewRelation("memory", "films", sql.NewSchema(
		sql.Field{Name: "id", Type: sql.Integer, SchemaName: "films"},
		sql.Field{Name: "animal_id", Type: sql.Integer, SchemaName: "films"},
	), sql.NewSliceRowIter(nil))

	j := plan.NewInnerJoin(left, right, expression.NewComparison(expression.EQ,
		expression.NewGetField("animals.id"), expression.NewGetField("films.animal_id")))
	require.Equal(4, j.Schema().Len())
	require.True(j.Resolved())
}
