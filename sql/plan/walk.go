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

import "github.com/wyfunique/dbsim/sql"

// WalkFunc is called once per node during a Walk. Returning false stops the
// walk from descending into n's children (but sibling subtrees are still
// visited).
type WalkFunc func(n sql.Node) bool

// Walk performs a pre-order traversal of the plan tree rooted at n, calling
// fn on every node. Mirrors go-mysql-server's sql/plan Walk, used by
// sql/rules' HeuristicPlanner to locate rewrite candidates without each rule
// reimplementing its own recursion.
func Walk(fn WalkFunc, n sql.Node) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(fn, c)
	}
}

// Parent pairs a node with its parent and the index of n among the parent's
// children, or a nil Parent and Index -1 for the tree's root. HeuristicPlanner
// uses this to splice a rewritten subtree back into the tree it was found in.
type Parent struct {
	Node   sql.Node
	Parent sql.Node
	Index  int
}

// Inspect collects every (node, parent, childIndex) triple in the tree
// rooted at root, in pre-order (DFS). Rules that need to rewrite a node in
// place look up its Parent/Index here rather than threading parent pointers
// through the immutable IR itself.
func Inspect(root sql.Node) []Parent {
	var out []Parent
	var visit func(n, parent sql.Node, idx int)
	visit = func(n, parent sql.Node, idx int) {
		if n == nil {
			return
		}
		out = append(out, Parent{Node: n, Parent: parent, Index: idx})
		for i, c := range n.Children() {
			visit(c, n, i)
		}
	}
	visit(root, nil, -1)
	return out
}

// InspectBFS is Inspect's breadth-first counterpart, used by rules whose
// heuristic favors rewriting the shallowest match first (SPEC_FULL.md §7
// HeuristicPlanner traversal mode).
func InspectBFS(root sql.Node) []Parent {
	if root == nil {
		return nil
	}
	var out []Parent
	queue := []Parent{{Node: root, Parent: nil, Index: -1}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)
		for i, c := range p.Node.Children() {
			queue = append(queue, Parent{Node: c, Parent: p.Node, Index: i})
		}
	}
	return out
}

// ReplaceChild returns a copy of parent with the child at index idx
// replaced by replacement. It is the single point through which the rule
// engine mutates a subtree, keeping every WithChildren call symmetric with
// Children.
func ReplaceChild(parent sql.Node, idx int, replacement sql.Node) (sql.Node, error) {
	children := parent.Children()
	next := make([]sql.Node, len(children))
	copy(next, children)
	next[idx] = replacement
	return parent.WithChildren(next...)
}
