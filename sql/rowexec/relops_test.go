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

package rowexec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// TestProjectionEvaluatesEveryExprPerRow mirrors a plain
// `SELECT employee_id FROM employees` with no aggregates.
func TestProjectionEvaluatesEveryExprPerRow(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(int64(1234)), sql.NewRow(int64(4567)))
	proj := plan.NewProjection([]sql.Expression{expression.NewGetField("employee_id")}, rel).
		WithSchema(rel.Schema())

	rows := run(t, proj, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(1234)), sql.NewRow(int64(4567))}, rows)
}

// TestProjectionMixedAggregateWithoutGroupByErrors exercises the implicit
// GroupBy wrap's reject path: a bare select-list mixing a plain column with
// an aggregate call, and no GROUP BY, must fail naming the plain column.
func TestProjectionMixedAggregateWithoutGroupByErrors(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(int64(1234)))
	mixed := []sql.Expression{
		expression.NewGetField("employee_id"),
		expression.NewFunction("count", expression.NewGetField("employee_id")),
	}
	proj := plan.NewProjection(mixed, rel).WithSchema(rel.Schema())
	_, err := Compile(proj, defaultCatalog())
	require.Error(err)
	require.True(ErrGroupByRequired.Is(err))
}

// TestProjectionAllAggregateWrapsIntoGroupBy exercises scenario 1 of
// spec.md §8: `SELECT count(employee_id) FROM employees` with three rows.
func TestProjectionAllAggregateWrapsIntoGroupBy(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(int64(1234)), sql.NewRow(int64(4567)), sql.NewRow(int64(8901)))
	countExpr := expression.NewFunction("count", expression.NewGetField("employee_id"))
	outSchema := sql.NewSchema(sql.Field{Name: "count", Type: sql.Integer})
	proj := plan.NewProjection([]sql.Expression{countExpr}, rel).WithSchema(outSchema)

	rows := run(t, proj, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(3))}, rows)
}

func TestSelectionFiltersRowsByPredicate(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(int64(3)))
	pred := expression.NewComparison(expression.GT, expression.NewGetField("employee_id"), expression.NewLiteral(int64(1), sql.Integer))
	sel := plan.NewSelection(pred, rel)

	rows := run(t, sel, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(2)), sql.NewRow(int64(3))}, rows)
}

func TestSelectionNullPredicateExcludesRow(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(nil), sql.NewRow(int64(2)))
	pred := expression.NewComparison(expression.GT, expression.NewGetField("employee_id"), expression.NewLiteral(int64(1), sql.Integer))
	sel := plan.NewSelection(pred, rel)

	rows := run(t, sel, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(2))}, rows)
}

// TestUnionAllConcatenatesLeftThenRight mirrors local.py's union_all_op.
func TestUnionAllConcatenatesLeftThenRight(t *testing.T) {
	require := require.New(t)
	left := employeesRelation(sql.NewRow(int64(1)), sql.NewRow(int64(2)))
	right := employeesRelation(sql.NewRow(int64(3)))
	u := plan.NewUnionAll(left, right)

	rows := run(t, u, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(int64(3))}, rows)

	ctx := sql.NewEmptyContext()
	src, err := Compile(u, defaultCatalog())
	require.NoError(err)
	iter, err := src(ctx)
	require.NoError(err)
	_, err = sql.Materialize(ctx, iter)
	require.NoError(err)
	n, ok := ctx.Rows(u)
	require.True(ok)
	require.Equal(3, n)
}
