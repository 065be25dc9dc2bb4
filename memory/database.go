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

package memory

import (
	"fmt"
	"sync"

	"github.com/wyfunique/dbsim/sql"
)

// Database is a named collection of in-memory Tables: the reference
// implementation of dataset.Adapter (SPEC_FULL.md §6's Adapter contract),
// the Go counterpart of the teacher's memory.Database, narrowed to dbsim's
// own simpler schema/row model -- no collation, no primary keys, no
// storage-engine hooks, just name -> Table.
type Database struct {
	mu     sync.RWMutex
	name   string
	tables map[string]*Table
	order  []string
}

// NewDatabase builds an empty named adapter, mirroring
// memory.NewDatabase(name)'s shape from the teacher's retrieval-pack tests.
func NewDatabase(name string) *Database {
	return &Database{name: name, tables: make(map[string]*Table)}
}

func (d *Database) Name() string { return d.name }

// Tables returns a snapshot of every table currently registered, keyed by
// name, mirroring memory.Database.Tables()'s shape.
func (d *Database) Tables() map[string]*Table {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]*Table, len(d.tables))
	for k, v := range d.tables {
		out[k] = v
	}
	return out
}

// CreateTable registers a new empty table under name, erroring if one
// already exists -- mirroring the teacher's CreateTable's duplicate-name
// rejection (there enforced by the storage engine; here directly).
func (d *Database) CreateTable(name string, schema sql.Schema) (*Table, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; ok {
		return nil, fmt.Errorf("memory: table %q already exists in database %q", name, d.name)
	}
	t := NewTable(name, schema)
	d.tables[name] = t
	d.order = append(d.order, name)
	return t, nil
}

// DropTable removes a table, erroring if it does not exist.
func (d *Database) DropTable(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tables[name]; !ok {
		return fmt.Errorf("memory: table %q not found in database %q", name, d.name)
	}
	delete(d.tables, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// Relations lists every table name in registration order, the Go
// counterpart of SPEC_FULL.md §6's Adapter.relations.
func (d *Database) Relations() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Has reports whether name is a known table.
func (d *Database) Has(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.tables[name]
	return ok
}

// SchemaOf returns name's schema, or an error if it is not a known table.
func (d *Database) SchemaOf(name string) (sql.Schema, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tables[name]
	if !ok {
		return sql.Schema{}, fmt.Errorf("memory: table %q not found in database %q", name, d.name)
	}
	return t.Schema(), nil
}

// TableScan returns a fresh row iterator over name's current contents, the
// Go counterpart of Adapter.table_scan.
func (d *Database) TableScan(ctx *sql.Context, name string) (sql.RowIter, error) {
	d.mu.RLock()
	t, ok := d.tables[name]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("memory: table %q not found in database %q", name, d.name)
	}
	return t.RowIter(ctx), nil
}
