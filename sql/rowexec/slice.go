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
	"io"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/plan"
)

// compileSlice pulls its child lazily and skips/takes rows as they arrive,
// rather than materializing first: the one relational operator this
// package does not instrument with RecordRows, matching local.py's
// slice_op, which wraps its child with itertools.islice and never calls
// computeCost.
func compileSlice(s *plan.Slice, cat Catalog) (RowSource, error) {
	child, err := Compile(s.Child, cat)
	if err != nil {
		return nil, err
	}
	offset, limit := s.Offset, s.Limit
	return func(ctx *sql.Context) (sql.RowIter, error) {
		childIter, err := child(ctx)
		if err != nil {
			return nil, err
		}
		skipped := int64(0)
		emitted := int64(0)
		return sql.RowIterFunc(func(ctx *sql.Context) (sql.Row, error) {
			if limit >= 0 && emitted >= limit {
				return nil, io.EOF
			}
			for skipped < offset {
				if _, err := childIter.Next(ctx); err != nil {
					return nil, err
				}
				skipped++
			}
			row, err := childIter.Next(ctx)
			if err != nil {
				return nil, err
			}
			emitted++
			return row, nil
		}), nil
	}, nil
}
