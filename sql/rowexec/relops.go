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
	"github.com/spf13/cast"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// compileProjection compiles a Projection, delegating to the GroupBy
// compiler when every select-list expression is an aggregate call (the
// implicit "GROUP BY with no keys" rewrite, the Go counterpart of
// local.py's ensure_group_op_when_ags, narrowed as described in
// compileGroupBy's doc comment since the parser never emits a Projection
// wrapping an explicit GROUP BY). A mix of aggregate and plain columns with
// no GROUP BY clause is a compile-time error naming the offending column
// (group_by_error).
func compileProjection(p *plan.Projection, cat Catalog) (RowSource, error) {
	aggCount := 0
	var firstPlainCol string
	for _, e := range p.Exprs {
		if isAggregateExpr(e, cat) {
			aggCount++
		} else if firstPlainCol == "" {
			firstPlainCol = exprDisplayName(e)
		}
	}
	if aggCount > 0 && aggCount < len(p.Exprs) {
		return nil, ErrGroupByRequired.New(firstPlainCol)
	}
	if aggCount > 0 {
		gb := plan.NewGroupBy(nil, p.Exprs, p.Child).WithSchema(p.Schema())
		return compileGroupBy(gb, cat)
	}

	child, err := Compile(p.Child, cat)
	if err != nil {
		return nil, err
	}
	exprFuncs := make([]ScalarFunc, len(p.Exprs))
	for i, e := range p.Exprs {
		f, err := CompileScalar(e, p.Child.Schema(), cat)
		if err != nil {
			return nil, err
		}
		exprFuncs[i] = f
	}
	return func(ctx *sql.Context) (sql.RowIter, error) {
		rows, err := materializeChild(ctx, p, child)
		if err != nil {
			return nil, err
		}
		out := make([]sql.Row, len(rows))
		for i, row := range rows {
			projected := make(sql.Row, len(exprFuncs))
			for j, f := range exprFuncs {
				v, err := f(row, ctx)
				if err != nil {
					return nil, err
				}
				projected[j] = v
			}
			out[i] = projected
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

// isAggregateExpr unwraps a possible Alias and reports whether the
// remaining expression is a Function call naming an aggregate in cat,
// mirroring local.py's is_aggregate/aggregate_expr unwrap-then-check.
func isAggregateExpr(e sql.Expression, cat Catalog) bool {
	if a, ok := e.(*expression.Alias); ok {
		e = a.Expr
	}
	fn, ok := e.(*expression.Function)
	if !ok {
		return false
	}
	_, isAgg := cat.Aggregate(fn.Name)
	return isAgg
}

func exprDisplayName(e sql.Expression) string {
	if a, ok := e.(*expression.Alias); ok {
		return a.Name
	}
	return e.String()
}

// compileSelection compiles a Selection, filtering the materialized child
// rows by the compiled predicate.
func compileSelection(s *plan.Selection, cat Catalog) (RowSource, error) {
	child, err := Compile(s.Child, cat)
	if err != nil {
		return nil, err
	}
	pred, err := CompileScalar(s.Predicate, s.Child.Schema(), cat)
	if err != nil {
		return nil, err
	}
	return func(ctx *sql.Context) (sql.RowIter, error) {
		rows, err := materializeChild(ctx, s, child)
		if err != nil {
			return nil, err
		}
		out := make([]sql.Row, 0, len(rows))
		for _, row := range rows {
			v, err := pred(row, ctx)
			if err != nil {
				return nil, err
			}
			if expression.IsNull(v) {
				continue
			}
			keep, err := asBool(v)
			if err != nil {
				return nil, err
			}
			if keep {
				out = append(out, row)
			}
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

func asBool(v interface{}) (bool, error) {
	return cast.ToBoolE(v)
}

// compileExtensionSelection dispatches to the pack's ExecFunc, the same as
// any other ExtendedNode.
func compileExtensionSelection(n *plan.ExtensionSelection, cat Catalog) (RowSource, error) {
	return compileExtendedNode(n, cat)
}

// compileUnionAll concatenates both sides' materialized rows, recording
// the SUM of each side's row count against the UnionAll node (the default
// local.py's computeCost uses when no aggregate_two_inputs callback is
// supplied, unlike Join's product).
func compileUnionAll(u *plan.UnionAll, cat Catalog) (RowSource, error) {
	left, err := Compile(u.Left, cat)
	if err != nil {
		return nil, err
	}
	right, err := Compile(u.Right, cat)
	if err != nil {
		return nil, err
	}
	return func(ctx *sql.Context) (sql.RowIter, error) {
		leftRows, err := materializeSide(ctx, left)
		if err != nil {
			return nil, err
		}
		rightRows, err := materializeSide(ctx, right)
		if err != nil {
			return nil, err
		}
		ctx.RecordRows(u, len(leftRows)+len(rightRows))
		out := make([]sql.Row, 0, len(leftRows)+len(rightRows))
		out = append(out, leftRows...)
		out = append(out, rightRows...)
		return sql.NewSliceRowIter(out), nil
	}, nil
}

func materializeSide(ctx *sql.Context, src RowSource) ([]sql.Row, error) {
	iter, err := src(ctx)
	if err != nil {
		return nil, err
	}
	return sql.Materialize(ctx, iter)
}
