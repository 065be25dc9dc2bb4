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

// Package spatialselect is a syntax pack adding a 2D point-in-circle
// extension to the base grammar: a `#x,y#` point literal, a `{#x,y#, r}`
// circle literal, an `lhs INSIDE rhs` operator testing whether a point
// lies within a circle, and a `SPATIALSELECT` statement form requiring
// INSIDE to appear somewhere in the statement. Grounded on
// original_source/dbsim/extensions/extended_syntax/spatial_syntax.py.
package spatialselect

import (
	"fmt"
	"math"

	"github.com/wyfunique/dbsim/sql"
)

// PointFieldType/CircleFieldType are the FieldTypes a Point/Circle literal,
// and any column holding one, report.
const (
	PointFieldType  sql.FieldType = "POINT"
	CircleFieldType sql.FieldType = "CIRCLE"
)

const (
	pointTag     = "spatialselect.point"
	circleTag    = "spatialselect.circle"
	insideTag    = "spatialselect.inside"
	selectionTag = "spatialselect.selection"
)

// Point is a constant 2D point literal, `#x,y#`.
type Point struct {
	X, Y float64
}

// NewPoint builds a point literal expression.
func NewPoint(x, y float64) *Point { return &Point{X: x, Y: y} }

func (p *Point) Children() []sql.Expression { return nil }

func (p *Point) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("spatialselect.Point.WithChildren: expected 0 children, got %d", len(children))
	}
	cp := *p
	return &cp, nil
}

func (p *Point) CostFactor() float64 { return sql.TinyCostFactor * 2 }

func (p *Point) ExtensionTag() string { return pointTag }

func (p *Point) ExtensionFieldType() sql.FieldType { return PointFieldType }

func (p *Point) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Point)
	return ok && p.X == o.X && p.Y == o.Y
}

func (p *Point) String() string { return fmt.Sprintf("Point<%v, %v>", p.X, p.Y) }

// Circle is a constant circle literal, `{#x,y#, r}`.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle builds a circle literal expression.
func NewCircle(center Point, radius float64) *Circle { return &Circle{Center: center, Radius: radius} }

func (c *Circle) Children() []sql.Expression { return nil }

func (c *Circle) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("spatialselect.Circle.WithChildren: expected 0 children, got %d", len(children))
	}
	cp := *c
	return &cp, nil
}

func (c *Circle) CostFactor() float64 { return sql.TinyCostFactor * 3 }

func (c *Circle) ExtensionTag() string { return circleTag }

func (c *Circle) ExtensionFieldType() sql.FieldType { return CircleFieldType }

func (c *Circle) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Circle)
	return ok && c.Center == o.Center && c.Radius == o.Radius
}

func (c *Circle) String() string { return fmt.Sprintf("Circle{ %s, r=%v }", c.Center.String(), c.Radius) }

// InsideOp is the `lhs INSIDE rhs` operator: true when the point lhs lies
// within the circle rhs. Unlike simselect.ToOp, its own result is itself a
// boolean (a point-in-circle test, not a distance), so ExtensionFieldType
// reports sql.Boolean directly.
type InsideOp struct {
	Left, Right sql.Expression
}

// NewInsideOp builds an INSIDE operator expression.
func NewInsideOp(left, right sql.Expression) *InsideOp { return &InsideOp{Left: left, Right: right} }

func (i *InsideOp) Children() []sql.Expression { return []sql.Expression{i.Left, i.Right} }

func (i *InsideOp) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("spatialselect.InsideOp.WithChildren: expected 2 children, got %d", len(children))
	}
	return &InsideOp{Left: children[0], Right: children[1]}, nil
}

func (i *InsideOp) CostFactor() float64 { return sql.DefaultCostFactor * 2 }

func (i *InsideOp) ExtensionTag() string { return insideTag }

func (i *InsideOp) ExtensionFieldType() sql.FieldType { return sql.Boolean }

func (i *InsideOp) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*InsideOp)
	return ok && i.Left.Equal(o.Left, ignoreSchema) && i.Right.Equal(o.Right, ignoreSchema)
}

func (i *InsideOp) String() string { return fmt.Sprintf("(%s INSIDE %s)", i.Left, i.Right) }

// asPoint coerces a row value into a Point, accepting either a native
// Point (what a Point literal and a point-native adapter column should
// both produce) or an [x, y]-shaped []float64/[]interface{}, covering a
// generic adapter that stores a point column as a raw pair.
func asPoint(v interface{}) (Point, bool) {
	switch vv := v.(type) {
	case Point:
		return vv, true
	case *Point:
		return *vv, true
	case []float64:
		if len(vv) == 2 {
			return Point{X: vv[0], Y: vv[1]}, true
		}
	case []interface{}:
		if len(vv) == 2 {
			x, xok := vv[0].(float64)
			y, yok := vv[1].(float64)
			if xok && yok {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// asCircle coerces a row value into a Circle.
func asCircle(v interface{}) (Circle, bool) {
	switch vv := v.(type) {
	case Circle:
		return vv, true
	case *Circle:
		return *vv, true
	}
	return Circle{}, false
}

func distance(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// isInside is the registry.PredicateExecFunc bound to InsideOp's tag,
// grounded on spatial_syntax.py's isInside (distance(p, c.center) < c.radius).
func isInside(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
	p, ok := asPoint(args[0])
	if !ok {
		return nil, fmt.Errorf("spatialselect: INSIDE's left operand is not a point")
	}
	c, ok := asCircle(args[1])
	if !ok {
		return nil, fmt.Errorf("spatialselect: INSIDE's right operand is not a circle")
	}
	return distance(p, c.Center) < c.Radius, nil
}

// evalPointLiteral is the registry.PredicateExecFunc bound to Point's tag.
func evalPointLiteral(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
	p, ok := expr.(*Point)
	if !ok {
		return nil, fmt.Errorf("spatialselect: expected *Point, got %T", expr)
	}
	return *p, nil
}

// evalCircleLiteral is the registry.PredicateExecFunc bound to Circle's tag.
func evalCircleLiteral(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
	c, ok := expr.(*Circle)
	if !ok {
		return nil, fmt.Errorf("spatialselect: expected *Circle, got %T", expr)
	}
	return *c, nil
}
