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

package main

import (
	"time"

	"github.com/wyfunique/dbsim/ext/simselect"
	"github.com/wyfunique/dbsim/ext/spatialselect"
	"github.com/wyfunique/dbsim/memory"
	"github.com/wyfunique/dbsim/sql"
)

// buildDemoDatabase recreates the small movie-recommendation dataset from
// original_source/dbsim/tests/fixtures/demo_adapter.py: an online movie
// site's users, and two overlapping movie collections (animation, musical)
// sharing some mids so a JOIN has something to match -- each row carries a
// 4-dimensional embedding so the built-in demo queries can exercise
// simselect's TO operator. A fourth table, points, has no original-source
// counterpart; it exists solely so the demo sequence can also exercise
// spatialselect's INSIDE operator end to end.
func buildDemoDatabase() *memory.Database {
	db := memory.NewDatabase("demo")

	users, err := db.CreateTable("users", sql.NewSchema(
		sql.Field{Name: "uid", Type: sql.Integer},
		sql.Field{Name: "name", Type: sql.String},
		sql.Field{Name: "signUpDate", Type: sql.Date},
		sql.Field{Name: "embedding", Type: simselect.VectorFieldType},
	))
	mustNotError(err)
	mustInsertAll(users,
		sql.NewRow(int64(1234), "Tom", date(2009, 1, 17), []float64{1, 2, 3, 4}),
		sql.NewRow(int64(4567), "Sally", date(2010, 2, 24), []float64{4, 5, 6, 7}),
		sql.NewRow(int64(8901), "Mark", date(2010, 3, 1), []float64{8, 9, 0, 1}),
		sql.NewRow(int64(9999), "Tony", date(2010, 3, 1), []float64{9, 9, 9, 9}),
	)

	animation, err := db.CreateTable("animation", sql.NewSchema(
		sql.Field{Name: "mid", Type: sql.Integer},
		sql.Field{Name: "title", Type: sql.String},
		sql.Field{Name: "year", Type: sql.Integer},
		sql.Field{Name: "embedding", Type: simselect.VectorFieldType},
	))
	mustNotError(err)
	mustInsertAll(animation,
		sql.NewRow(int64(1234), "Toy Story", int64(1995), []float64{1, 2, 3, 4}),
		sql.NewRow(int64(4567), "Balto", int64(1995), []float64{4, 5, 6, 7}),
		sql.NewRow(int64(6789), "Swan Princess", int64(1994), []float64{6, 7, 8, 9}),
		sql.NewRow(int64(1011), "Aladdin", int64(1992), []float64{1, 0, 1, 1}),
		sql.NewRow(int64(1235), "Snow White and the Seven Dwarfs", int64(1937), []float64{1, 2, 3, 5}),
		sql.NewRow(int64(1236), "Beauty and the Beast", int64(1991), []float64{1, 2, 3, 6}),
	)

	musical, err := db.CreateTable("musical", sql.NewSchema(
		sql.Field{Name: "mid", Type: sql.Integer},
		sql.Field{Name: "title", Type: sql.String},
		sql.Field{Name: "year", Type: sql.Integer},
		sql.Field{Name: "embedding", Type: simselect.VectorFieldType},
	))
	mustNotError(err)
	mustInsertAll(musical,
		sql.NewRow(int64(1235), "Snow White and the Seven Dwarfs", int64(1937), []float64{1, 2, 3, 5}),
		sql.NewRow(int64(1236), "Beauty and the Beast", int64(1991), []float64{1, 2, 3, 6}),
		sql.NewRow(int64(1011), "Aladdin", int64(1992), []float64{1, 0, 1, 1}),
		sql.NewRow(int64(9800), "Singin' in the Rain", int64(1952), []float64{9, 8, 0, 0}),
		sql.NewRow(int64(9858), "American in Paris", int64(1951), []float64{9, 8, 5, 8}),
	)

	points, err := db.CreateTable("points", sql.NewSchema(
		sql.Field{Name: "pid", Type: sql.Integer},
		sql.Field{Name: "label", Type: sql.String},
		sql.Field{Name: "point", Type: spatialselect.PointFieldType},
	))
	mustNotError(err)
	mustInsertAll(points,
		sql.NewRow(int64(1), "origin-ish", spatialselect.Point{X: 1, Y: 1}),
		sql.NewRow(int64(2), "on-axis", spatialselect.Point{X: 0, Y: 0}),
		sql.NewRow(int64(3), "far-out", spatialselect.Point{X: 10, Y: 10}),
	)

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustInsertAll(t *memory.Table, rows ...sql.Row) {
	for _, row := range rows {
		mustNotError(t.Insert(row))
	}
}

func mustNotError(err error) {
	if err != nil {
		panic(err)
	}
}

// demoQuery is one entry in the built-in demo sequence run when -query is
// not given.
type demoQuery struct {
	label string
	sql   string
}

// demoQueries mirrors run_query_end2end.py's worked examples: a standard
// join-and-filter query and simselect's extended-syntax equivalent, plus a
// spatialselect query exercising the point-in-circle operator the original
// has no counterpart for.
var demoQueries = []demoQuery{
	{
		label: "standard join + filter",
		sql: `SELECT musical.title, musical.year
		      FROM animation JOIN musical ON animation.mid = musical.mid
		      WHERE musical.year > 1960`,
	},
	{
		label: "simselect: nearest embeddings, joined",
		sql: `SELECT musical.title, musical.year
		      FROM animation JOIN musical ON animation.mid = musical.mid
		      WHERE animation.embedding TO [1,2,3,4] < 10 AND musical.year > 1960`,
	},
	{
		label: "spatialselect: points inside a circle",
		sql:   `SPATIALSELECT pid, label FROM points WHERE point INSIDE {#0,0#, 3}`,
	},
}
