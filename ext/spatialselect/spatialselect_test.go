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

package spatialselect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/parser"
	"github.com/wyfunique/dbsim/sql/plan"
	"github.com/wyfunique/dbsim/sql/rowexec"
)

// TestIsInsideMatchesDistanceCheck exercises spatial_syntax.py's isInside:
// a point strictly within a circle's radius is inside it.
func TestIsInsideMatchesDistanceCheck(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	inRange, err := isInside(ctx, &InsideOp{}, []interface{}{
		Point{X: 1, Y: 1},
		Circle{Center: Point{X: 0, Y: 0}, Radius: 3},
	})
	require.NoError(err)
	require.Equal(true, inRange)

	outOfRange, err := isInside(ctx, &InsideOp{}, []interface{}{
		Point{X: 10, Y: 10},
		Circle{Center: Point{X: 0, Y: 0}, Radius: 3},
	})
	require.NoError(err)
	require.Equal(false, outOfRange)
}

// TestIsInsideBoundaryIsNotInside matches the original's strict `<`: a
// point exactly on the circle's edge does not count as inside.
func TestIsInsideBoundaryIsNotInside(t *testing.T) {
	require := require.New(t)
	onEdge, err := isInside(sql.NewEmptyContext(), &InsideOp{}, []interface{}{
		Point{X: 3, Y: 0},
		Circle{Center: Point{X: 0, Y: 0}, Radius: 3},
	})
	require.NoError(err)
	require.Equal(false, onEdge)
}

// TestParsePointAndCircleLiterals exercises `#x,y#`/`{#x,y#, r}` grammar
// directly through the public parser entry point.
func TestParsePointAndCircleLiterals(t *testing.T) {
	require := require.New(t)
	node, err := parser.Parse("SELECT #1,2#, {#0,0#, 3} FROM points")
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	require.Len(proj.Exprs, 2)

	pt, ok := proj.Exprs[0].(*Point)
	require.True(ok)
	require.Equal(Point{X: 1, Y: 2}, *pt)

	c, ok := proj.Exprs[1].(*Circle)
	require.True(ok)
	require.Equal(Circle{Center: Point{X: 0, Y: 0}, Radius: 3}, *c)
}

// TestSpatialselectWhereWrapsExtensionSelection exercises the worked
// example from spatial_syntax.py's own docstring: `spatialselect pid from
// points where point inside {#0,0#, 3}`.
func TestSpatialselectWhereWrapsExtensionSelection(t *testing.T) {
	require := require.New(t)
	node, err := parser.Parse("SPATIALSELECT pid FROM points WHERE point INSIDE {#0,0#, 3}")
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	ext, ok := proj.Child.(*plan.ExtensionSelection)
	require.True(ok)
	require.Equal(selectionTag, ext.Tag)
	inside, ok := ext.Args.(*InsideOp)
	require.True(ok)
	require.IsType(&expression.Var{}, inside.Left)
	require.IsType(&Circle{}, inside.Right)
}

// TestSpatialselectInsideInSelectListOnlyIsValid covers a SPATIALSELECT
// statement using INSIDE only in its select list, no WHERE clause at all.
func TestSpatialselectInsideInSelectListOnlyIsValid(t *testing.T) {
	require := require.New(t)
	_, err := parser.Parse("SPATIALSELECT point INSIDE {#0,0#, 3} FROM points")
	require.NoError(err)
}

// TestSpatialselectWithoutInsideAnywhereErrors covers
// spatial_syntax.py's validation rule: SPATIALSELECT with no INSIDE in
// either clause is malformed.
func TestSpatialselectWithoutInsideAnywhereErrors(t *testing.T) {
	require := require.New(t)
	_, err := parser.Parse("SPATIALSELECT pid FROM points WHERE pid < 10")
	require.Error(err)
}

// TestPlainSelectWithInsideStillWrapsExtensionSelection matches
// spatial_syntax.py's trigger_spatialselect: a plain SELECT (not
// SPATIALSELECT) whose WHERE clause uses INSIDE still gets a
// SpatialSelectionOp-equivalent wrap.
func TestPlainSelectWithInsideStillWrapsExtensionSelection(t *testing.T) {
	require := require.New(t)
	node, err := parser.Parse("SELECT pid FROM points WHERE point INSIDE {#0,0#, 3}")
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	ext, ok := proj.Child.(*plan.ExtensionSelection)
	require.True(ok)
	require.Equal(selectionTag, ext.Tag)
}

// TestExecSelectionFiltersByInsideTest runs the worked example end to end
// at the executor layer: three points, a circle of radius 3 centered at
// the origin, exactly the points within it survive.
func TestExecSelectionFiltersByInsideTest(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(
		sql.Field{Name: "pid", Type: sql.Integer},
		sql.Field{Name: "point", Type: PointFieldType},
	)
	rows := []sql.Row{
		sql.NewRow(int64(1), Point{X: 1, Y: 1}),
		sql.NewRow(int64(2), Point{X: 0, Y: 0}),
		sql.NewRow(int64(3), Point{X: 10, Y: 10}),
	}
	rel := plan.NewRelation("mem", "points", schema, sql.NewSliceRowIter(rows))

	pred := NewInsideOp(
		expression.NewGetField("point"),
		NewCircle(Point{X: 0, Y: 0}, 3),
	)
	sel := plan.NewExtensionSelection(selectionTag, pred, rel)

	src, err := rowexec.Compile(sel, noFunctionCatalog{})
	require.NoError(err)
	ctx := sql.NewEmptyContext()
	iter, err := src(ctx)
	require.NoError(err)
	out, err := sql.Materialize(ctx, iter)
	require.NoError(err)
	require.Equal([]sql.Row{
		sql.NewRow(int64(1), Point{X: 1, Y: 1}),
		sql.NewRow(int64(2), Point{X: 0, Y: 0}),
	}, out)
}
