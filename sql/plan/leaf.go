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

package plan

import (
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// LoadOp is the unresolved leaf the parser emits for a bare FROM-clause
// identifier: just a name, no schema, no row source yet. The resolver turns
// it into a Relation (or an error, if the name names no known relation).
type LoadOp struct {
	RelName string
}

// NewLoad builds an unresolved table/view reference.
func NewLoad(name string) *LoadOp {
	return &LoadOp{RelName: name}
}

func (o *LoadOp) Name() string        { return o.RelName }
func (o *LoadOp) Children() []sql.Node { return nil }

func (o *LoadOp) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, wrongChildren("LoadOp", 0, len(children))
	}
	cp := *o
	return &cp, nil
}

func (o *LoadOp) Resolved() bool     { return false }
func (o *LoadOp) Schema() sql.Schema { return sql.Schema{} }
func (o *LoadOp) CostFactor() float64 { return sql.DefaultCostFactor }
func (o *LoadOp) String() string      { return fmt.Sprintf("LoadOp(%s)", o.RelName) }

// Relation is a resolved leaf bound to an adapter-backed relation: it knows
// its own schema and carries a RowSource the executor pulls rows from
// directly, without any further lookup through the dataset at execution
// time (SPEC_FULL.md §4.4, §4.9).
type Relation struct {
	AdapterRef string
	RelName    string
	Sch        sql.Schema
	RowSource  sql.RowIter
}

// NewRelation builds a resolved relation leaf.
func NewRelation(adapterRef, name string, schema sql.Schema, rowSource sql.RowIter) *Relation {
	return &Relation{AdapterRef: adapterRef, RelName: name, Sch: schema, RowSource: rowSource}
}

func (r *Relation) Name() string        { return r.RelName }
func (r *Relation) Children() []sql.Node { return nil }

func (r *Relation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Relation", 0, len(children))
	}
	cp := *r
	return &cp, nil
}

func (r *Relation) Resolved() bool      { return true }
func (r *Relation) Schema() sql.Schema  { return r.Sch }
func (r *Relation) CostFactor() float64 { return sql.DefaultCostFactor }
func (r *Relation) String() string {
	return fmt.Sprintf("Relation(%s AS %s)", r.AdapterRef, r.RelName)
}
