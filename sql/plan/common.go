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

// Package plan holds the relational half of the plan IR: the Node variants
// that make up a query's FROM/WHERE/GROUP BY/ORDER BY/LIMIT tree, from the
// unresolved LoadOp a parser emits up to the fully schema-bound tree the
// resolver hands to the rule engine and the executor.
//
// Grounded on dolthub-go-mysql-server's sql/plan test files (project_test.go,
// filter_test.go, sort_test.go, limit_test.go, offset_test.go,
// innerjoin_test.go, union_test.go, walk_test.go, transform_test.go) for
// shape and naming, and on original_source/dbsim/operations.py and ast.py for
// the exact attribute set and schema-derivation rules each variant needs.
package plan

import "fmt"

func wrongChildren(name string, want, got int) error {
	return fmt.Errorf("%s: expected %d children, got %d", name, want, got)
}
