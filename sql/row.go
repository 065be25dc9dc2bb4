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

package sql

import "io"

// Row is a positional tuple aligned with a Node's resolved Schema.
type Row []interface{}

// NewRow builds a Row from its positional values.
func NewRow(values ...interface{}) Row {
	r := make(Row, len(values))
	copy(r, values)
	return r
}

// Append returns a new Row with other's values appended to r's, used to
// build the concatenated row a Join/LeftJoin feeds to its predicate and to
// downstream operators.
func (r Row) Append(other Row) Row {
	out := make(Row, 0, len(r)+len(other))
	out = append(out, r...)
	out = append(out, other...)
	return out
}

// Copy returns a shallow copy of r.
func (r Row) Copy() Row {
	cp := make(Row, len(r))
	copy(cp, r)
	return cp
}

// RowIter is a lazy, pull-based sequence of rows. Next returns io.EOF once
// exhausted, matching the teacher's sql.RowIter contract exactly.
type RowIter interface {
	Next(ctx *Context) (Row, error)
	Close(ctx *Context) error
}

// RowIterFunc adapts a plain function into a RowIter with a no-op Close,
// the common case for producers with nothing to release.
type RowIterFunc func(ctx *Context) (Row, error)

func (f RowIterFunc) Next(ctx *Context) (Row, error) { return f(ctx) }
func (f RowIterFunc) Close(ctx *Context) error        { return nil }

// SliceRowIter iterates a pre-materialised slice of rows.
type SliceRowIter struct {
	rows []Row
	pos  int
}

// NewSliceRowIter wraps rows for iteration without copying them.
func NewSliceRowIter(rows []Row) *SliceRowIter {
	return &SliceRowIter{rows: rows}
}

func (it *SliceRowIter) Next(ctx *Context) (Row, error) {
	if it.pos >= len(it.rows) {
		return nil, io.EOF
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

func (it *SliceRowIter) Close(ctx *Context) error { return nil }

// Materialize drains iter into a slice, closing it afterward.
func Materialize(ctx *Context, iter RowIter) ([]Row, error) {
	var rows []Row
	for {
		row, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = iter.Close(ctx)
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, iter.Close(ctx)
}
