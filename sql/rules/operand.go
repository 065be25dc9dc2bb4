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

// Package rules implements the heuristic rule engine of SPEC_FULL.md §4.5:
// a RuleOperand-style shape matcher, a Rule interface rules implement against
// it, and a HeuristicPlanner that drives a fixed-point rewrite loop over a
// resolved plan. Grounded on
// original_source/dbsim/planners/rules/{rule_operand,rule}.py and
// planners/heuristic/heuristic_planner.py, adapted from the original's
// mutable-AST-in-place rewriting to sql/plan's immutable, copy-on-
// WithChildren discipline (see replaceNode in planner.go).
package rules

import (
	"reflect"

	"github.com/wyfunique/dbsim/sql"
)

// Operand is one node of a rule's shape-matching tree, the Go counterpart
// of RuleOperand: a node-type operand requires an exact concrete type match
// plus every child operand to match the corresponding child node, while Any
// and None are wildcards.
type Operand interface {
	matches(node sql.Node) bool
}

// Matches reports whether node has the shape op describes, the exported
// entry point Transform, HeuristicPlanner and tests use.
func Matches(op Operand, node sql.Node) bool { return op.matches(node) }

// Any matches any node, including nil, without inspecting its children --
// the Go counterpart of AnyMatchOperand.
var Any Operand = anyOperand{}

type anyOperand struct{}

func (anyOperand) matches(sql.Node) bool { return true }

// None matches only the absence of a node (nil), the Go counterpart of
// NoneOperand.
var None Operand = noneOperand{}

type noneOperand struct{}

func (noneOperand) matches(node sql.Node) bool { return node == nil }

// nodeOperand requires an exact concrete type match (by reflect.Type, the
// Go analogue of the original's class-name comparison) and recursively
// matches each of its children operands against the node's own children.
type nodeOperand struct {
	nodeType reflect.Type
	children []Operand
}

// Node builds a shape operand requiring the matched node to have the same
// concrete type as sample (pass a typed nil pointer, e.g. (*plan.Selection)(nil))
// and each of children to match the corresponding child, in order. At most
// two children are meaningful since every sql.Node in this module has at
// most two children (BinaryNode), but the constructor does not enforce
// that -- operands beyond a node's actual children match only if each is
// Any or None.
func Node(sample sql.Node, children ...Operand) Operand {
	return &nodeOperand{nodeType: reflect.TypeOf(sample), children: children}
}

func (o *nodeOperand) matches(node sql.Node) bool {
	if node == nil || reflect.TypeOf(node) != o.nodeType {
		return false
	}
	kids := node.Children()
	if len(kids) > len(o.children) {
		// More actual children than the operand describes can never match.
		return false
	}
	for i, k := range kids {
		if !o.children[i].matches(k) {
			return false
		}
	}
	for i := len(kids); i < len(o.children); i++ {
		switch o.children[i].(type) {
		case anyOperand, noneOperand:
		default:
			return false
		}
	}
	return true
}
