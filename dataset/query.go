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

package dataset

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/rules"
)

// Query is the Go counterpart of spec.md §4.7's Query façade: a resolved
// (and optionally rule-rewritten) plan bound to the Dataset it was
// resolved against, with its output schema cached.
type Query struct {
	ds      *Dataset
	sqlText string
	plan    sql.Node
	schema  sql.Schema
}

// newQuery runs the three-step Query constructor of spec.md §4.7:
// resolve (unless operations is already resolved and resolveOpSchema is
// false), optimize if an optimizer is supplied, then cache the schema.
func newQuery(ds *Dataset, sqlText string, operations sql.Node, resolveOpSchema bool, optimizer *rules.HeuristicPlanner) (*Query, error) {
	node := operations
	if resolveOpSchema {
		resolved, err := ds.resolve(node)
		if err != nil {
			return nil, err
		}
		node = resolved
	} else if !node.Resolved() {
		return nil, sql.ErrNotResolved.New(node.String())
	}

	if optimizer != nil {
		best, err := optimizer.FindBestPlan(node)
		if err != nil {
			return nil, err
		}
		node = best
	}

	return &Query{ds: ds, sqlText: sqlText, plan: node, schema: node.Schema()}, nil
}

// Schema returns the query's cached output schema.
func (q *Query) Schema() sql.Schema { return q.schema }

// Plan returns the query's resolved (and possibly rewritten) plan tree.
func (q *Query) Plan() sql.Node { return q.plan }

// Iterator runs the query against its Dataset and returns its row stream,
// the Go counterpart of "iterating a Query yields rows from
// dataset.execute(self)" (spec.md §4.7). The call is wrapped in an
// opentracing span (`dbsim.query`) tagged with the query's SQL text,
// finished once the returned iterator is exhausted or closed, with the
// final row count attached at that point.
func (q *Query) Iterator(ctx *sql.Context, params ...interface{}) (sql.RowIter, error) {
	var parent context.Context = context.Background()
	if ctx != nil {
		parent = ctx
	}
	span, spanCtx := opentracing.StartSpanFromContext(parent, "dbsim.query")
	span.SetTag("sql", q.sqlText)

	allParams := params
	if ctx != nil && len(ctx.Params) > 0 {
		allParams = append(append([]interface{}{}, ctx.Params...), params...)
	}
	execCtx := sql.NewContext(spanCtx, allParams...)

	iter, err := q.ds.Execute(q, execCtx)
	if err != nil {
		span.SetTag("error", true)
		span.Finish()
		return nil, err
	}
	return &tracedRowIter{inner: iter, span: span}, nil
}

// tracedRowIter finishes its opentracing span, tagged with the final row
// count, the first time Next reports end-of-stream or Close is called.
type tracedRowIter struct {
	inner sql.RowIter
	span  opentracing.Span
	rows  int
	done  bool
}

func (t *tracedRowIter) Next(ctx *sql.Context) (sql.Row, error) {
	row, err := t.inner.Next(ctx)
	if err != nil {
		t.finish()
		return nil, err
	}
	t.rows++
	return row, nil
}

func (t *tracedRowIter) Close(ctx *sql.Context) error {
	err := t.inner.Close(ctx)
	t.finish()
	return err
}

func (t *tracedRowIter) finish() {
	if t.done {
		return
	}
	t.done = true
	t.span.SetTag("rows", t.rows)
	t.span.Finish()
}
