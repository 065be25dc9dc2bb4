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

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/dataset"
	"github.com/wyfunique/dbsim/memory"
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/rowexec"
)

func noopAggregate() rowexec.Aggregate {
	return rowexec.Aggregate{
		Initial:    int64(0),
		Accumulate: func(state, value interface{}) interface{} { return state },
	}
}

func noopFunc(args []interface{}) (interface{}, error) { return nil, nil }

func employeesDataset(t *testing.T, ids ...int64) (*dataset.Dataset, *memory.Database) {
	t.Helper()
	require := require.New(t)
	db := memory.NewDatabase("mem")
	schema := sql.NewSchema(sql.Field{Name: "employee_id", Type: sql.Integer})
	tbl, err := db.CreateTable("employees", schema)
	require.NoError(err)
	for _, id := range ids {
		require.NoError(tbl.Insert(sql.NewRow(id)))
	}

	ds := dataset.New()
	ds.AddAdapter(db)
	return ds, db
}

// TestDatasetCountQueryMatchesScenario1 exercises spec.md §8 scenario 1
// end-to-end through SQL text: count(employee_id) over 3 rows -> [(3,)].
func TestDatasetCountQueryMatchesScenario1(t *testing.T) {
	require := require.New(t)
	ds, _ := employeesDataset(t, 1, 2, 3)

	q, err := ds.Query("SELECT count(employee_id) FROM employees")
	require.NoError(err)

	ctx := sql.NewEmptyContext()
	iter, err := ds.Execute(q, ctx)
	require.NoError(err)
	rows, err := sql.Materialize(ctx, iter)
	require.NoError(err)
	require.Equal([]sql.Row{sql.NewRow(int64(3))}, rows)
}

func TestDatasetWhereFiltersRows(t *testing.T) {
	require := require.New(t)
	ds, _ := employeesDataset(t, 1, 2, 3)

	q, err := ds.Query("SELECT employee_id FROM employees WHERE employee_id >= 2")
	require.NoError(err)

	ctx := sql.NewEmptyContext()
	iter, err := ds.Execute(q, ctx)
	require.NoError(err)
	rows, err := sql.Materialize(ctx, iter)
	require.NoError(err)
	require.Equal([]sql.Row{sql.NewRow(int64(2)), sql.NewRow(int64(3))}, rows)
}

func TestDatasetCreateViewFromSQLAndQueryThroughIt(t *testing.T) {
	require := require.New(t)
	ds, _ := employeesDataset(t, 1, 2, 3)

	require.NoError(ds.CreateView("adults", "SELECT employee_id FROM employees WHERE employee_id >= 2"))

	q, err := ds.Query("SELECT count(employee_id) FROM adults")
	require.NoError(err)

	ctx := sql.NewEmptyContext()
	iter, err := ds.Execute(q, ctx)
	require.NoError(err)
	rows, err := sql.Materialize(ctx, iter)
	require.NoError(err)
	require.Equal([]sql.Row{sql.NewRow(int64(2))}, rows)
}

func TestDatasetRelationNotFoundErrors(t *testing.T) {
	require := require.New(t)
	ds, _ := employeesDataset(t, 1)

	_, err := ds.Query("SELECT * FROM nope")
	require.Error(err)
	require.True(sql.ErrRelationNotFound.Is(err))
}

func TestDatasetAddFunctionThenAddAggregateSameNameConflicts(t *testing.T) {
	require := require.New(t)
	ds := dataset.New()

	require.NoError(ds.AddFunction("double", noopFunc, sql.Integer))

	err := ds.AddAggregate("double", noopAggregate(), sql.Integer)
	require.Error(err)
	require.True(sql.ErrNameConflict.Is(err))
}

func TestDatasetAddAggregateThenAddFunctionSameNameConflicts(t *testing.T) {
	require := require.New(t)
	ds := dataset.New()

	require.NoError(ds.AddAggregate("total", noopAggregate(), sql.Integer))

	_, ok := ds.GetFunction("total")
	require.False(ok)

	err := ds.AddFunction("total", noopFunc, sql.Integer)
	require.Error(err)
	require.True(sql.ErrNameConflict.Is(err))
}

func TestDatasetGetSchemaResolvesAdapterRelationAndRejectsUnknown(t *testing.T) {
	require := require.New(t)
	ds, _ := employeesDataset(t, 1)

	schema, err := ds.GetSchema("employees")
	require.NoError(err)
	require.Equal(1, schema.Len())

	_, err = ds.GetSchema("missing")
	require.Error(err)
}

func TestDatasetRemoveAdapterStopsResolvingItsRelations(t *testing.T) {
	require := require.New(t)
	ds, db := employeesDataset(t, 1)

	ds.RemoveAdapter(db)

	_, err := ds.Query("SELECT * FROM employees")
	require.Error(err)
	require.True(sql.ErrRelationNotFound.Is(err))
}
