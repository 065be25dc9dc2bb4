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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/memory"
	"github.com/wyfunique/dbsim/sql"
)

func TestDatabaseName(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("test")
	require.Equal("test", db.Name())
}

func TestDatabaseCreateTableRejectsDuplicateName(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("test")
	schema := sql.NewSchema(sql.Field{Name: "id", Type: sql.Integer})

	_, err := db.CreateTable("employees", schema)
	require.NoError(err)
	require.Equal(1, len(db.Tables()))

	_, err = db.CreateTable("employees", schema)
	require.Error(err)
}

func TestDatabaseTableScanReturnsInsertedRows(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("test")
	schema := sql.NewSchema(sql.Field{Name: "id", Type: sql.Integer})
	tbl, err := db.CreateTable("employees", schema)
	require.NoError(err)
	require.NoError(tbl.Insert(sql.NewRow(int64(1))))
	require.NoError(tbl.Insert(sql.NewRow(int64(2))))

	iter, err := db.TableScan(sql.NewEmptyContext(), "employees")
	require.NoError(err)
	rows, err := sql.Materialize(sql.NewEmptyContext(), iter)
	require.NoError(err)
	require.Equal([]sql.Row{sql.NewRow(int64(1)), sql.NewRow(int64(2))}, rows)
}

func TestDatabaseHasAndSchemaOf(t *testing.T) {
	require := require.New(t)
	db := memory.NewDatabase("test")
	schema := sql.NewSchema(sql.Field{Name: "id", Type: sql.Integer})
	_, err := db.CreateTable("employees", schema)
	require.NoError(err)

	require.True(db.Has("employees"))
	require.False(db.Has("nope"))

	got, err := db.SchemaOf("employees")
	require.NoError(err)
	require.True(got.Equal(schema))

	_, err = db.SchemaOf("nope")
	require.Error(err)
}

func TestTableInsertPadsRepeatedFieldsWithEmptySlice(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(
		sql.Field{Name: "id", Type: sql.Integer},
		sql.Field{Name: "tags", Type: sql.String, Mode: sql.Repeated},
	)
	tbl := memory.NewTable("t", schema)
	require.NoError(tbl.Insert(sql.NewRow(int64(1))))
	rows := tbl.Rows()
	require.Equal(int64(1), rows[0][0])
	require.Equal([]interface{}{}, rows[0][1])
}

func TestTableInsertRejectsOverwideRow(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "id", Type: sql.Integer})
	tbl := memory.NewTable("t", schema)
	err := tbl.Insert(sql.NewRow(int64(1), int64(2)))
	require.Error(err)
}
