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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/plan"
)

// testCatalog is a minimal Catalog stub covering the handful of functions
// and aggregates these tests exercise.
type testCatalog struct {
	funcs map[string]Func
	aggs  map[string]Aggregate
}

func newTestCatalog() *testCatalog {
	return &testCatalog{funcs: map[string]Func{}, aggs: map[string]Aggregate{}}
}

func (c *testCatalog) Function(name string) (Func, bool) {
	f, ok := c.funcs[name]
	return f, ok
}

func (c *testCatalog) Aggregate(name string) (Aggregate, bool) {
	a, ok := c.aggs[name]
	return a, ok
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// defaultCatalog wires count/sum/min/max, the aggregates scenario 1 and 2
// of spec.md §8 exercise, plus a tiny "upper" scalar function.
func defaultCatalog() *testCatalog {
	cat := newTestCatalog()
	cat.funcs["upper"] = func(args []interface{}) (interface{}, error) {
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("upper: not a string")
		}
		out := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			b := s[i]
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
			out[i] = b
		}
		return string(out), nil
	}
	cat.aggs["count"] = Aggregate{
		Initial:    int64(0),
		Accumulate: func(state, _ interface{}) interface{} { return state.(int64) + 1 },
	}
	cat.aggs["sum"] = Aggregate{
		Initial: int64(0),
		Accumulate: func(state, value interface{}) interface{} {
			v, _ := toInt64(value)
			return state.(int64) + v
		},
	}
	cat.aggs["min"] = Aggregate{
		Initial: int64(1<<63 - 1),
		Accumulate: func(state, value interface{}) interface{} {
			v, _ := toInt64(value)
			if v < state.(int64) {
				return v
			}
			return state
		},
	}
	cat.aggs["max"] = Aggregate{
		Initial: int64(-(1 << 63)),
		Accumulate: func(state, value interface{}) interface{} {
			v, _ := toInt64(value)
			if v > state.(int64) {
				return v
			}
			return state
		},
	}
	return cat
}

// employeesRelation builds a relation over the given rows with a single
// employee_id field, the Go counterpart of scenario 1/2's demo table.
func employeesRelation(rows ...sql.Row) *plan.Relation {
	schema := sql.NewSchema(sql.Field{Name: "employee_id", Type: sql.Integer})
	return plan.NewRelation("mem", "employees", schema, sql.NewSliceRowIter(rows))
}

// run compiles node and drains every row it produces.
func run(t *testing.T, node sql.Node, cat Catalog) []sql.Row {
	t.Helper()
	require := require.New(t)
	src, err := Compile(node, cat)
	require.NoError(err)
	ctx := sql.NewEmptyContext()
	iter, err := src(ctx)
	require.NoError(err)
	rows, err := sql.Materialize(ctx, iter)
	require.NoError(err)
	return rows
}

func TestCompileRejectsUnresolvedNode(t *testing.T) {
	require := require.New(t)
	_, err := Compile(plan.NewLoad("employees"), defaultCatalog())
	require.Error(err)
}
