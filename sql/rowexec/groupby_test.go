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

// TestGroupByNoKeysCountAndMinMax exercises scenarios 1 and 2 of
// spec.md §8 directly against the GroupBy compiler.
func TestGroupByNoKeysCountAndMinMax(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation(sql.NewRow(int64(1234)), sql.NewRow(int64(4567)), sql.NewRow(int64(8901)))

	countExpr := expression.NewFunction("count", expression.NewGetField("employee_id"))
	outSchema := sql.NewSchema(sql.Field{Name: "count", Type: sql.Integer})
	gb := plan.NewGroupBy(nil, []sql.Expression{countExpr}, rel).WithSchema(outSchema)

	rows := run(t, gb, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(3))}, rows)

	minMax := []sql.Expression{
		expression.NewFunction("min", expression.NewGetField("employee_id")),
		expression.NewFunction("max", expression.NewGetField("employee_id")),
	}
	schema2 := sql.NewSchema(
		sql.Field{Name: "min", Type: sql.Integer},
		sql.Field{Name: "max", Type: sql.Integer},
	)
	gb2 := plan.NewGroupBy(nil, minMax, rel).WithSchema(schema2)
	rows2 := run(t, gb2, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(1234), int64(8901))}, rows2)
}

// TestGroupByNoKeysOverEmptyInputStillEmitsOneRow matches the key-less
// GROUP BY special case: COUNT(*) over zero rows reports 0, not no rows.
func TestGroupByNoKeysOverEmptyInputStillEmitsOneRow(t *testing.T) {
	require := require.New(t)
	rel := employeesRelation()
	countExpr := expression.NewFunction("count", expression.NewGetField("employee_id"))
	outSchema := sql.NewSchema(sql.Field{Name: "count", Type: sql.Integer})
	gb := plan.NewGroupBy(nil, []sql.Expression{countExpr}, rel).WithSchema(outSchema)

	rows := run(t, gb, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(0))}, rows)
}

// TestGroupByWithKeysAccumulatesPerGroup groups a two-column relation by
// its first column and sums the second.
func TestGroupByWithKeysAccumulatesPerGroup(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(
		sql.Field{Name: "dept", Type: sql.String},
		sql.Field{Name: "amount", Type: sql.Integer},
	)
	rows := []sql.Row{
		sql.NewRow("eng", int64(10)),
		sql.NewRow("eng", int64(5)),
		sql.NewRow("sales", int64(7)),
	}
	rel := plan.NewRelation("mem", "t", schema, sql.NewSliceRowIter(rows))

	keys := []sql.Expression{expression.NewGetField("dept")}
	aggs := []sql.Expression{expression.NewFunction("sum", expression.NewGetField("amount"))}
	outSchema := sql.NewSchema(
		sql.Field{Name: "dept", Type: sql.String},
		sql.Field{Name: "sum", Type: sql.Integer},
	)
	gb := plan.NewGroupBy(keys, aggs, rel).WithSchema(outSchema)

	out := run(t, gb, defaultCatalog())
	require.ElementsMatch([]sql.Row{
		sql.NewRow("eng", int64(15)),
		sql.NewRow("sales", int64(7)),
	}, out)
}

// TestGroupByOrdersOutputByKeyNotFirstSeen feeds rows whose first-seen group
// order ("sales", "eng", "ops") disagrees with key order, and checks the
// output follows the key order compileOrderBy would produce, not scan order.
func TestGroupByOrdersOutputByKeyNotFirstSeen(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(
		sql.Field{Name: "dept", Type: sql.String},
		sql.Field{Name: "amount", Type: sql.Integer},
	)
	rows := []sql.Row{
		sql.NewRow("sales", int64(7)),
		sql.NewRow("eng", int64(10)),
		sql.NewRow("ops", int64(2)),
		sql.NewRow("eng", int64(5)),
	}
	rel := plan.NewRelation("mem", "t", schema, sql.NewSliceRowIter(rows))

	keys := []sql.Expression{expression.NewGetField("dept")}
	aggs := []sql.Expression{expression.NewFunction("sum", expression.NewGetField("amount"))}
	outSchema := sql.NewSchema(
		sql.Field{Name: "dept", Type: sql.String},
		sql.Field{Name: "sum", Type: sql.Integer},
	)
	gb := plan.NewGroupBy(keys, aggs, rel).WithSchema(outSchema)

	out := run(t, gb, defaultCatalog())
	require.Equal([]sql.Row{
		sql.NewRow("eng", int64(15)),
		sql.NewRow("ops", int64(2)),
		sql.NewRow("sales", int64(7)),
	}, out)
}
