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
	"sort"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// compileOrderBy materializes its child, evaluates every sort key once per
// row (a Desc key is pre-negated by CompileScalar's compileDesc so the sort
// comparison itself is always plain ascending), and stably sorts.
func compileOrderBy(o *plan.OrderBy, cat Catalog) (RowSource, error) {
	child, err := Compile(o.Child, cat)
	if err != nil {
		return nil, err
	}
	keyFuncs := make([]ScalarFunc, len(o.SortExprs))
	for i, e := range o.SortExprs {
		f, err := CompileScalar(e, o.Child.Schema(), cat)
		if err != nil {
			return nil, err
		}
		keyFuncs[i] = f
	}
	return func(ctx *sql.Context) (sql.RowIter, error) {
		rows, err := materializeChild(ctx, o, child)
		if err != nil {
			return nil, err
		}
		keys := make([][]interface{}, len(rows))
		for i, row := range rows {
			k := make([]interface{}, len(keyFuncs))
			for j, f := range keyFuncs {
				v, err := f(row, ctx)
				if err != nil {
					return nil, err
				}
				k[j] = v
			}
			keys[i] = k
		}
		var sortErr error
		idx := make([]int, len(rows))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			if sortErr != nil {
				return false
			}
			less, err := lessKey(keys[idx[a]], keys[idx[b]])
			if err != nil {
				sortErr = err
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		out := make([]sql.Row, len(rows))
		for i, j := range idx {
			out[i] = rows[j]
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

// lessKey compares two composite sort keys column by column, treating NULL
// as sorting before any non-NULL value.
func lessKey(a, b []interface{}) (bool, error) {
	for i := range a {
		av, bv := a[i], b[i]
		if expression.IsNull(av) && expression.IsNull(bv) {
			continue
		}
		if expression.IsNull(av) {
			return true, nil
		}
		if expression.IsNull(bv) {
			return false, nil
		}
		cmp, err := compareValues(av, bv)
		if err != nil {
			return false, err
		}
		if cmp != 0 {
			return cmp < 0, nil
		}
	}
	return false, nil
}
