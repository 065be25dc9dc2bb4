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
	"github.com/wyfunique/dbsim/sql/plan"
)

func fiveRows() *plan.Relation {
	return employeesRelation(
		sql.NewRow(int64(1)), sql.NewRow(int64(2)), sql.NewRow(int64(3)),
		sql.NewRow(int64(4)), sql.NewRow(int64(5)),
	)
}

func TestSliceLimitOnly(t *testing.T) {
	require := require.New(t)
	s := plan.NewSlice(2, 0, fiveRows())
	rows := run(t, s, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(1)), sql.NewRow(int64(2))}, rows)
}

func TestSliceOffsetOnly(t *testing.T) {
	require := require.New(t)
	s := plan.NewSlice(-1, 3, fiveRows())
	rows := run(t, s, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(4)), sql.NewRow(int64(5))}, rows)
}

func TestSliceLimitAndOffset(t *testing.T) {
	require := require.New(t)
	s := plan.NewSlice(2, 1, fiveRows())
	rows := run(t, s, defaultCatalog())
	require.Equal([]sql.Row{sql.NewRow(int64(2)), sql.NewRow(int64(3))}, rows)
}

// TestSliceDoesNotRecordCost matches local.py's slice_op, the one
// relational operator that never calls computeCost.
func TestSliceDoesNotRecordCost(t *testing.T) {
	require := require.New(t)
	s := plan.NewSlice(2, 0, fiveRows())
	src, err := Compile(s, defaultCatalog())
	require.NoError(err)
	ctx := sql.NewEmptyContext()
	iter, err := src(ctx)
	require.NoError(err)
	_, err = sql.Materialize(ctx, iter)
	require.NoError(err)
	_, ok := ctx.Rows(s)
	require.False(ok)
}
