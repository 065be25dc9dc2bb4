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
	"reflect"

	"github.com/wyfunique/dbsim/sql"
)

// DeepCopy rebuilds n by recursively visiting children and calling
// WithChildren, the relational analogue of expression.DeepCopy: the result
// has identical attribute values but disjoint node identities from n at
// every level of the tree (SPEC_FULL.md §3, testable property in §8).
func DeepCopy(n sql.Node) sql.Node {
	if n == nil {
		return nil
	}
	children := n.Children()
	if len(children) == 0 {
		cp, err := n.WithChildren()
		if err != nil {
			return n
		}
		return cp
	}
	copied := make([]sql.Node, len(children))
	for i, c := range children {
		copied[i] = DeepCopy(c)
	}
	cp, err := n.WithChildren(copied...)
	if err != nil {
		return n
	}
	return cp
}

// Equal reports whether a and b describe the same plan shape: same variant
// at every position, same scalar sub-expressions, same resolved schema
// where applicable. It is a structural (reflect.DeepEqual) comparison of
// the concrete node values, so a Relation whose RowSource is a live,
// non-nil func-backed iterator will only compare equal to another Relation
// sharing the exact same iterator value -- tests that need to compare
// resolved leaves should do so against two Relations built from the same
// RowSource, or compare AdapterRef/Sch directly instead.
func Equal(a, b sql.Node) bool {
	return reflect.DeepEqual(a, b)
}
