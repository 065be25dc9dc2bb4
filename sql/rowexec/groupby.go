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
	"sort"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// groupState is the accumulator bundle carried per group: one slot per
// aggregate column, plus the group's own key values (needed to assemble the
// output row since keys are not otherwise retained row-by-row).
type groupState struct {
	keyValues []interface{}
	aggStates []interface{}
}

// compileGroupBy compiles a GroupBy node. A key-less GroupBy (Keys is nil
// or empty, the implicit shape compileProjection wraps a bare aggregate
// select-list in) collapses every input row into exactly one output row.
// Every group's accumulator is seeded directly from each aggregate's
// Initial value and then folds in every row exactly once in one uniform
// loop, fixing local.py's group_by_op, which keyed the no-group-by-clause
// case off an ambiguous initialize/accumulate split. Output rows are
// ordered by group key (ascending, same comparator compileOrderBy uses),
// not by the order groups were first seen while scanning the input.
func compileGroupBy(g *plan.GroupBy, cat Catalog) (RowSource, error) {
	child, err := Compile(g.Child, cat)
	if err != nil {
		return nil, err
	}
	keyFuncs := make([]ScalarFunc, len(g.Keys))
	for i, k := range g.Keys {
		f, err := CompileScalar(k, g.Child.Schema(), cat)
		if err != nil {
			return nil, err
		}
		keyFuncs[i] = f
	}

	aggs, err := compileAggregateExprs(g.Aggregates, g.Child.Schema(), cat)
	if err != nil {
		return nil, err
	}

	return func(ctx *sql.Context) (sql.RowIter, error) {
		rows, err := materializeChild(ctx, g, child)
		if err != nil {
			return nil, err
		}

		groupOrder := make([]string, 0)
		groups := make(map[string]*groupState)

		for _, row := range rows {
			keyVals := make([]interface{}, len(keyFuncs))
			for i, f := range keyFuncs {
				v, err := f(row, ctx)
				if err != nil {
					return nil, err
				}
				keyVals[i] = v
			}
			groupKey := fmt.Sprint(keyVals)
			st, ok := groups[groupKey]
			if !ok {
				st = &groupState{keyValues: keyVals, aggStates: make([]interface{}, len(aggs))}
				for i, a := range aggs {
					st.aggStates[i] = a.agg.Initial
				}
				groups[groupKey] = st
				groupOrder = append(groupOrder, groupKey)
			}
			for i, a := range aggs {
				argVal, err := a.arg(row, ctx)
				if err != nil {
					return nil, err
				}
				st.aggStates[i] = a.agg.Accumulate(st.aggStates[i], argVal)
			}
		}

		// A key-less GROUP BY always produces exactly one output row, even
		// when the input has zero rows (e.g. COUNT(*) over an empty table
		// reports 0, not no rows at all).
		if len(keyFuncs) == 0 && len(groupOrder) == 0 {
			st := &groupState{aggStates: make([]interface{}, len(aggs))}
			for i, a := range aggs {
				st.aggStates[i] = a.agg.Initial
			}
			groups[""] = st
			groupOrder = append(groupOrder, "")
		}

		// Groups are emitted ordered by key, not by first-seen insertion
		// order: reusing compileOrderBy's own key comparator (lessKey) keeps
		// this the same sort an explicit OrderBy over the group keys would
		// apply.
		var sortErr error
		sort.SliceStable(groupOrder, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			less, err := lessKey(groups[groupOrder[i]].keyValues, groups[groupOrder[j]].keyValues)
			if err != nil {
				sortErr = err
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}

		out := make([]sql.Row, 0, len(groupOrder))
		for _, gk := range groupOrder {
			st := groups[gk]
			row := make(sql.Row, 0, len(st.keyValues)+len(aggs))
			row = append(row, st.keyValues...)
			for i, a := range aggs {
				result := st.aggStates[i]
				if a.agg.Finalize != nil {
					result = a.agg.Finalize(result)
				}
				row = append(row, result)
			}
			out = append(out, row)
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

// compiledAggregate pairs an aggregate's accumulation contract with its
// compiled argument expression (e.g. the `price` in `SUM(price)`; nil arg
// func for zero-argument calls like `COUNT(*)`, whose Function.Args is
// empty).
type compiledAggregate struct {
	agg Aggregate
	arg ScalarFunc
}

func compileAggregateExprs(exprs []sql.Expression, childSchema sql.Schema, cat Catalog) ([]compiledAggregate, error) {
	out := make([]compiledAggregate, len(exprs))
	for i, e := range exprs {
		inner := e
		if a, ok := inner.(*expression.Alias); ok {
			inner = a.Expr
		}
		fn, ok := inner.(*expression.Function)
		if !ok {
			return nil, fmt.Errorf("rowexec: %s is not an aggregate call", e)
		}
		agg, ok := cat.Aggregate(fn.Name)
		if !ok {
			return nil, ErrUnknownFunction.New(fn.Name)
		}
		var argFunc ScalarFunc
		if len(fn.Args) > 0 {
			f, err := CompileScalar(fn.Args[0], childSchema, cat)
			if err != nil {
				return nil, err
			}
			argFunc = f
		} else {
			argFunc = func(sql.Row, *sql.Context) (interface{}, error) { return nil, nil }
		}
		out[i] = compiledAggregate{agg: agg, arg: argFunc}
	}
	return out, nil
}
