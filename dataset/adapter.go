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

// Package dataset is the Go counterpart of SPEC_FULL.md §4.7/§6's
// Dataset/Query façade: it owns the registered adapters, views, and
// user-defined functions/aggregates a SQL statement resolves against, and
// drives a statement through parse -> resolve -> optimize -> compile ->
// execute. Grounded on engine.go's top-level Engine/Analyzer/Catalog
// wiring (the teacher's own façade over its resolver/rule-engine/executor
// packages) and on original_source/dbsim/dataset.py's DataSet class.
package dataset

import (
	"github.com/wyfunique/dbsim/sql"
)

// Adapter is the Go counterpart of spec.md §6's Adapter contract: a named
// source of relations a Dataset can resolve LoadOp references against.
// memory.Database satisfies this directly.
type Adapter interface {
	// Name identifies the adapter for diagnostics and explicit qualification.
	Name() string
	// Has reports whether name is a relation this adapter can resolve.
	Has(name string) bool
	// SchemaOf returns name's schema, or an error if name is unknown.
	SchemaOf(name string) (sql.Schema, error)
	// TableScan returns a fresh row iterator over name's current contents.
	TableScan(ctx *sql.Context, name string) (sql.RowIter, error)
	// Relations lists every relation name this adapter currently exposes.
	// A purely name-based adapter that cannot enumerate its relations may
	// return nil.
	Relations() []string
}
