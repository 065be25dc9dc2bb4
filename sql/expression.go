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

// Expression is the tagged-variant interface for scalar/predicate plan
// nodes (SPEC_FULL.md §3 "Value/Predicate ops"). Concrete variants live in
// sql/expression; the core only needs uniform traversal, equality and a
// declared initial cost factor. Dispatch on the concrete variant (for
// evaluation, schema derivation, printing) happens by type switch in the
// consuming package, per the "pattern matching on the tagged variant"
// redesign -- there is no isinstance-style polymorphism here.
type Expression interface {
	// Children returns the immediate scalar sub-expressions, in evaluation
	// order. Leaves return nil.
	Children() []Expression
	// WithChildren returns a copy of the expression with its children
	// replaced. len(children) must equal len(e.Children()).
	WithChildren(children ...Expression) (Expression, error)
	// CostFactor is this node's own (unrefined) cost factor; SPEC_FULL.md
	// §4.6's "refined" factor is a pure function of a tree of these,
	// computed by sql/cost without mutating the tree.
	CostFactor() float64
	// Equal compares two expressions by variant and by every attribute,
	// including children, recursively. ignoreSchema controls whether a
	// Var's resolved field (if any) participates in the comparison.
	Equal(other Expression, ignoreSchema bool) bool
	// String renders the expression for debugging/EXPLAIN output.
	String() string
}

// ExtendedExpression is implemented by expression variants contributed by a
// syntax pack (SPEC_FULL.md §4.3 item 4). Tag identifies the variant to the
// extension registry so the resolver/executor can look up its handlers.
type ExtendedExpression interface {
	Expression
	ExtensionTag() string
}

// TypedExtendedExpression is implemented by an ExtendedExpression that
// always produces a value of a known FieldType on its own -- a pack's
// literal constant (SIMSELECT's vector, SPATIALSELECT's point/circle) or a
// value-producing operator (SIMSELECT's TO, whose result is a distance,
// not a boolean). The resolver checks for this before falling back to its
// default "any other ExtendedExpression is a boolean predicate" assumption,
// so a pack's non-predicate expression gets the right Field type when it
// appears directly in a SELECT item list or a GROUP BY key.
type TypedExtendedExpression interface {
	ExtendedExpression
	ExtensionFieldType() FieldType
}

const (
	// DefaultCostFactor is the initial cost factor used by scalar and
	// relational operators that declare no other value.
	DefaultCostFactor = 1.0
	// TinyCostFactor is the initial cost factor for constants and other
	// negligible-cost leaves.
	TinyCostFactor = 0.1
)
