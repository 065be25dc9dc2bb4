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

// Package memory is the reference in-memory Adapter/Table (SPEC_FULL.md
// §6's Adapter/Table external interfaces), grounded on the shape implied by
// the teacher's memory package tests (NewDatabase/Name/Tables/CreateTable)
// -- the retrieval pack carries only that package's _test.go files, no
// implementation, since go-mysql-server's own memory package is a thin
// shim over its storage-engine internals that dbsim has no counterpart
// for. Everything here is instead sized to dbsim's own Adapter contract
// (dataset.Adapter), dropping go-mysql-server's PrimaryKeySchema/Collation
// machinery entirely.
package memory

import (
	"fmt"
	"sync"

	"github.com/wyfunique/dbsim/sql"
)

// Table is a named, schema-typed, row-holding in-memory relation -- the Go
// counterpart of SPEC_FULL.md §6's Table contract ({adapter, name, schema,
// __iter__}). Rows are stored positionally aligned with Schema; Insert
// defaults a short row out per field Mode (NULLABLE -> nil, REPEATED ->
// empty slice), matching the Table contract's row-defaulting rule.
type Table struct {
	mu     sync.RWMutex
	name   string
	schema sql.Schema
	rows   []sql.Row
}

// NewTable builds an empty table with the given schema.
func NewTable(name string, schema sql.Schema) *Table {
	return &Table{name: name, schema: schema}
}

func (t *Table) Name() string     { return t.name }
func (t *Table) Schema() sql.Schema { return t.schema }

// Insert appends row, padding it out to the schema's width by defaulting
// any trailing omitted fields per their Mode, and rejects a row wider than
// the schema.
func (t *Table) Insert(row sql.Row) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	width := t.schema.Len()
	if len(row) > width {
		return fmt.Errorf("memory: row has %d values, table %q has %d fields", len(row), t.name, width)
	}
	full := make(sql.Row, width)
	copy(full, row)
	for i := len(row); i < width; i++ {
		if t.schema.At(i).Mode == sql.Repeated {
			full[i] = []interface{}{}
		}
	}
	t.rows = append(t.rows, full)
	return nil
}

// Rows returns a snapshot copy of every row currently in the table.
func (t *Table) Rows() []sql.Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]sql.Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// RowIter returns a fresh, independent iterator over the table's current
// rows, the Go counterpart of the Table contract's __iter__.
func (t *Table) RowIter(ctx *sql.Context) sql.RowIter {
	return sql.NewSliceRowIter(t.Rows())
}
