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

import goerrors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrGroupByRequired is raised at compile time when a Projection mixes
	// aggregate and non-aggregate columns with no GROUP BY clause, the Go
	// counterpart of local.py's group_by_error.
	ErrGroupByRequired = goerrors.NewKind("column %q must appear in the GROUP BY clause or be used in an aggregate function")

	// ErrUnknownFunction is raised when a Function expression names a
	// function the Catalog does not know as either scalar or aggregate.
	ErrUnknownFunction = goerrors.NewKind("unknown function %q")

	// ErrUnsupportedExpression is raised by CompileScalar for an
	// sql.Expression concrete type it has no compiler for and that does not
	// implement sql.ExtendedExpression.
	ErrUnsupportedExpression = goerrors.NewKind("unsupported expression type %T")

	// ErrJoinKeyRequired names the case of a join condition
	// deriveEqualityKeys cannot reduce to a single equality between columns
	// from each side. It is not returned by this package: compileJoin and
	// compileLeftJoin fall back to a nested-loop join in that case.
	ErrJoinKeyRequired = goerrors.NewKind("join condition %q has no equality between both sides, falling back to nested loop")
)
