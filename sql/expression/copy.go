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

package expression

import (
	"github.com/mitchellh/hashstructure"

	"github.com/wyfunique/dbsim/sql"
)

// DeepCopy rebuilds e by recursively visiting children and calling
// WithChildren, producing a tree with identical attribute values but
// disjoint node identities from e (SPEC_FULL.md §3 "Lifecycles").
func DeepCopy(e sql.Expression) sql.Expression {
	if e == nil {
		return nil
	}
	children := e.Children()
	if len(children) == 0 {
		// Leaves still go through WithChildren(nothing) so a fresh struct
		// value is returned even for pointer-receiver leaf types.
		cp, err := e.WithChildren()
		if err != nil {
			return e
		}
		return cp
	}
	copied := make([]sql.Expression, len(children))
	for i, c := range children {
		copied[i] = DeepCopy(c)
	}
	cp, err := e.WithChildren(copied...)
	if err != nil {
		return e
	}
	return cp
}

// Hash returns a structural hash of e (SPEC_FULL.md §11), a cheap check
// before a full Equal comparison. sql/rules does not call it: DecorrelateAnd
// groups conjuncts without de-duplicating them.
func Hash(e sql.Expression) (uint64, error) {
	return hashstructure.Hash(e, nil)
}
