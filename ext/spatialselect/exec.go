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

package spatialselect

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
	"github.com/wyfunique/dbsim/sql/rowexec"
)

// noFunctionCatalog is the rowexec.Catalog handed to CompileScalar when
// compiling a spatialselect-tagged selection's predicate. Like
// ext/simselect's own stub, this pack's grammar never calls a user-defined
// scalar/aggregate function inside an INSIDE expression, so there is
// nothing for a real Catalog to resolve.
type noFunctionCatalog struct{}

func (noFunctionCatalog) Function(string) (rowexec.Func, bool) { return nil, false }
func (noFunctionCatalog) Aggregate(string) (rowexec.Aggregate, bool) {
	return rowexec.Aggregate{}, false
}

// execSelection is the registry.ExecFunc bound to selectionTag: it
// compiles the ExtensionSelection's stored predicate against the node's
// (passthrough) schema and filters the already-materialized child rows by
// it, mirroring sql/rowexec's own compileSelection loop.
func execSelection(ctx *sql.Context, node sql.ExtendedNode, child sql.RowIter) (sql.RowIter, error) {
	sel, ok := node.(*plan.ExtensionSelection)
	if !ok {
		return nil, fmt.Errorf("spatialselect: execSelection given unexpected node type %T", node)
	}
	pred, ok := sel.Args.(sql.Expression)
	if !ok {
		return nil, fmt.Errorf("spatialselect: ExtensionSelection.Args is not an expression (%T)", sel.Args)
	}
	predFn, err := rowexec.CompileScalar(pred, sel.Schema(), noFunctionCatalog{})
	if err != nil {
		return nil, err
	}
	rows, err := sql.Materialize(ctx, child)
	if err != nil {
		return nil, err
	}
	out := make([]sql.Row, 0, len(rows))
	for _, row := range rows {
		v, err := predFn(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(v) {
			continue
		}
		keep, err := cast.ToBoolE(v)
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, row)
		}
	}
	return sql.NewSliceRowIter(out), nil
}
