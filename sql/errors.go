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

import "gopkg.in/src-d/go-errors.v1"

// Error kinds raised by the core packages. Each is a sentinel *errors.Kind
// that callers match with errors.Is / kind.Is(err), following the teacher's
// go-errors.v1 idiom rather than ad-hoc error strings or custom structs.
var (
	// ErrFieldNotFound is raised when a schema lookup by path fails.
	ErrFieldNotFound = errors.NewKind("field not found: %s")
	// ErrAmbiguousField is raised when a schema lookup by path matches more
	// than one field (e.g. after an unaliased join of two relations that
	// share a column name).
	ErrAmbiguousField = errors.NewKind("ambiguous field: %s")
	// ErrTypeCoercion is raised when a binary operator's operand field
	// types cannot be reconciled during schema derivation.
	ErrTypeCoercion = errors.NewKind("cannot coerce types %s and %s for operator %s")
	// ErrUnionSchemaMismatch is raised when the two sides of a UNION ALL
	// disagree on field count or per-position type compatibility.
	ErrUnionSchemaMismatch = errors.NewKind("union schema mismatch: %s")
	// ErrRelationNotFound is raised when a LoadOp cannot be bound to any
	// view or adapter-provided relation.
	ErrRelationNotFound = errors.NewKind("relation not found: %s")
	// ErrNameConflict is raised when a function and an aggregate (or two
	// of the same kind) are registered under the same name.
	ErrNameConflict = errors.NewKind("name already bound: %s")
	// ErrNotResolved is raised when an operation that requires a resolved
	// plan (schema present on every relational node) receives one that
	// is not.
	ErrNotResolved = errors.NewKind("plan is not resolved: %s")
)
