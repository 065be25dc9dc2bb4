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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wyfunique/dbsim/sql"
)

// explainTree prints node and its descendants to w, one per line, indented
// two spaces per level -- a textual stand-in for
// original_source/dbsim/utils/visualizer.py's LogicalPlanViz, which this
// repo has no graphical counterpart for (spec.md §1 excludes a UI).
func explainTree(w io.Writer, node sql.Node) {
	explainNode(w, node, 0)
}

func explainNode(w io.Writer, node sql.Node, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), node.String())
	for _, child := range node.Children() {
		explainNode(w, child, depth+1)
	}
}
