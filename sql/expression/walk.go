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

import "github.com/wyfunique/dbsim/sql"

// ContainsTag reports whether e, or any expression reachable through its
// Children, is a sql.ExtendedExpression whose ExtensionTag equals tag. A
// syntax pack uses this to check a parsed predicate for its own operator
// appearing anywhere in the tree -- e.g. SIMSELECT validating that a
// SIMSELECT query's WHERE clause actually uses TO somewhere, not just at
// the top level a TriggerFunc's limited lookahead can see directly.
func ContainsTag(e sql.Expression, tag string) bool {
	if e == nil {
		return false
	}
	if ext, ok := e.(sql.ExtendedExpression); ok && ext.ExtensionTag() == tag {
		return true
	}
	for _, c := range e.Children() {
		if ContainsTag(c, tag) {
			return true
		}
	}
	return false
}
