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

// Package simselect is a syntax pack adding a vector-similarity extension
// to the base grammar: a `[v1, v2, ...]` vector literal, a `lhs TO rhs`
// operator computing the Euclidean distance between two vectors, and a
// `SIMSELECT` statement form requiring TO to appear somewhere in the
// statement. Grounded on
// original_source/dbsim/extensions/extended_syntax/sim_select_syntax.py;
// only the Euclidean metric is wired (the original's cosine-distance/
// cosine-similarity/dot-product Metric variants have no surface syntax of
// their own there either -- getVecDistance takes a metric argument no
// caller in the original ever passes anything but EUC for).
package simselect

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/wyfunique/dbsim/sql"
)

// VectorFieldType is the FieldType a simselect.Vector literal, and any
// column holding a vector value, reports.
const VectorFieldType sql.FieldType = "VECTOR"

const (
	vectorTag    = "simselect.vector"
	toTag        = "simselect.to"
	selectionTag = "simselect.selection"
)

// Vector is a constant vector literal, `[v1, v2, ...]`.
type Vector struct {
	Values []float64
}

// NewVector builds a vector literal expression.
func NewVector(values []float64) *Vector { return &Vector{Values: values} }

func (v *Vector) Children() []sql.Expression { return nil }

func (v *Vector) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("simselect.Vector.WithChildren: expected 0 children, got %d", len(children))
	}
	cp := *v
	return &cp, nil
}

func (v *Vector) CostFactor() float64 { return sql.TinyCostFactor }

func (v *Vector) ExtensionTag() string { return vectorTag }

func (v *Vector) ExtensionFieldType() sql.FieldType { return VectorFieldType }

func (v *Vector) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Vector)
	if !ok || len(v.Values) != len(o.Values) {
		return false
	}
	for i := range v.Values {
		if v.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

func (v *Vector) String() string { return fmt.Sprintf("%v", v.Values) }

// ToOp is the `lhs TO rhs` operator: the Euclidean distance between two
// vectors. Its result is a FLOAT, not a boolean -- a query compares it to a
// threshold itself (`vector TO [1,2,3,4] < 10`), the same two-step shape
// sim_select_syntax.py's ToOp plus an ordinary comparison uses.
type ToOp struct {
	Left, Right sql.Expression
}

// NewToOp builds a TO operator expression.
func NewToOp(left, right sql.Expression) *ToOp { return &ToOp{Left: left, Right: right} }

func (t *ToOp) Children() []sql.Expression { return []sql.Expression{t.Left, t.Right} }

func (t *ToOp) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("simselect.ToOp.WithChildren: expected 2 children, got %d", len(children))
	}
	return &ToOp{Left: children[0], Right: children[1]}, nil
}

func (t *ToOp) CostFactor() float64 { return sql.DefaultCostFactor }

func (t *ToOp) ExtensionTag() string { return toTag }

func (t *ToOp) ExtensionFieldType() sql.FieldType { return sql.Float }

func (t *ToOp) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*ToOp)
	return ok && t.Left.Equal(o.Left, ignoreSchema) && t.Right.Equal(o.Right, ignoreSchema)
}

func (t *ToOp) String() string { return fmt.Sprintf("(%s TO %s)", t.Left, t.Right) }

// asFloatSlice coerces a row value into a vector of float64, accepting
// either a native []float64 (what a Vector literal and an adapter-native
// VECTOR column should both produce) or a []interface{} of anything
// cast.ToFloat64E can convert, covering a generic adapter that stores
// every column uniformly as []interface{}.
func asFloatSlice(v interface{}) ([]float64, bool) {
	switch vv := v.(type) {
	case []float64:
		return vv, true
	case []interface{}:
		out := make([]float64, len(vv))
		for i, e := range vv {
			f, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

// euclideanDistance is the registry.PredicateExecFunc bound to ToOp's tag,
// grounded on getVecDistance's Metric.EUC branch (numpy.linalg.norm(a-b)).
func euclideanDistance(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
	left, ok := asFloatSlice(args[0])
	if !ok {
		return nil, fmt.Errorf("simselect: TO's left operand is not a vector")
	}
	right, ok := asFloatSlice(args[1])
	if !ok {
		return nil, fmt.Errorf("simselect: TO's right operand is not a vector")
	}
	if len(left) != len(right) {
		return nil, fmt.Errorf("simselect: TO operands have mismatched dimensions (%d vs %d)", len(left), len(right))
	}
	var sum float64
	for i := range left {
		d := left[i] - right[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// evalVectorLiteral is the registry.PredicateExecFunc bound to Vector's
// tag: a Vector has no children to evaluate, it simply reports its own
// constant value, the same way rowexec.CompileScalar's built-in Literal
// case does for a base-grammar constant.
func evalVectorLiteral(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
	v, ok := expr.(*Vector)
	if !ok {
		return nil, fmt.Errorf("simselect: expected *Vector, got %T", expr)
	}
	return append([]float64(nil), v.Values...), nil
}
