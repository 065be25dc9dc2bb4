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

package sql

// Node is the tagged-variant interface for relational plan nodes
// (SPEC_FULL.md §3 "Relational ops"). A Node carries a schema slot that is
// either unresolved (Resolved() == false, Schema() panics or returns the
// zero Schema) or resolved (a concrete Schema). Concrete variants live in
// sql/plan.
type Node interface {
	// Children returns the node's relational children in order: zero for
	// leaves (LoadOp, Relation), one for single-child ops, two for
	// Join/LeftJoin/UnionAll.
	Children() []Node
	// WithChildren returns a copy of the node with its children replaced.
	WithChildren(children ...Node) (Node, error)
	// Resolved reports whether this node (and, transitively, all of its
	// descendants) carries a concrete schema.
	Resolved() bool
	// Schema returns the node's output schema. Only valid when Resolved()
	// is true.
	Schema() Schema
	// CostFactor is this node's own (unrefined) cost factor.
	CostFactor() float64
	// String renders the node for debugging/EXPLAIN output.
	String() string
}

// ExtendedNode is implemented by relational variants contributed by a
// syntax pack (SPEC_FULL.md §4.3 item 6), e.g. SimSelection, SpatialSelection.
type ExtendedNode interface {
	Node
	ExtensionTag() string
}

// NameableNode is implemented by nodes that expose a relation name, used by
// LoadOp/Relation/Alias so the resolver and FROM-clause aliasing can address
// them without a type switch on every concrete variant.
type NameableNode interface {
	Node
	Name() string
}

// UnaryNode is a convenience embed for single-child relational operators
// (Projection, Selection, GroupBy, OrderBy, Slice, Alias, extension
// Selections). It implements Children/WithChildren/Resolved/Schema/CostFactor
// in terms of a single Child field and a Rebuild hook the concrete type
// supplies, removing the boilerplate every single-child op would otherwise
// repeat -- it is not a relational operator itself.
type UnaryNode struct {
	Child Node
}

func (n UnaryNode) Children() []Node { return []Node{n.Child} }

func (n UnaryNode) Resolved() bool {
	return n.Child != nil && n.Child.Resolved()
}

// BinaryNode is the analogous embed for Join/LeftJoin/UnionAll.
type BinaryNode struct {
	Left, Right Node
}

func (n BinaryNode) Children() []Node { return []Node{n.Left, n.Right} }

func (n BinaryNode) Resolved() bool {
	return n.Left != nil && n.Right != nil && n.Left.Resolved() && n.Right.Resolved()
}
