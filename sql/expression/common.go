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

// Package expression implements the scalar/predicate variants of the plan
// IR (SPEC_FULL.md §3 "Value/Predicate ops"): constants, variable and
// parameter references, function calls, arithmetic/comparison/logical
// operators, BETWEEN/IN/CASE/CAST, renames, order modifiers, tuples,
// item-getters and select-all.
//
// Grounded on github.com/dolthub/go-mysql-server's sql/expression package
// (naming conventions recovered from its test files -- NewLiteral,
// NewGetField, NewAlias, NewBetween, NewCase, ... -- since its production
// sources were not retrieved) and on the original dbsim/ast.py for exact
// attribute sets and cost-factor/equality rules.
package expression

import (
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

func wrongChildren(name string, want, got int) error {
	return fmt.Errorf("%s.WithChildren: expected %d children, got %d", name, want, got)
}

// equalAll compares two children slices pairwise with the given
// ignoreSchema flag, short-circuiting on length mismatch.
func equalAll(a, b []sql.Expression, ignoreSchema bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if (a[i] == nil) != (b[i] == nil) {
			return false
		}
		if a[i] == nil {
			continue
		}
		if !a[i].Equal(b[i], ignoreSchema) {
			return false
		}
	}
	return true
}
