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

package rules

import (
	"fmt"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/plan"
)

// SelectionExtensionSwapRule swaps `Selection(ExtensionSelection(x))` into
// `ExtensionSelection(Selection(x))`, moving the (typically cheaper)
// ordinary filter below the extension-contributed predicate so it runs
// first and shrinks the row set the extension predicate must evaluate.
// Ported from selection_simselection_swap_rule.py, generalized from that
// file's SIMSELECT-specific SimSelectionOp to any plan.ExtensionSelection
// (SPEC_FULL.md §4.3: the extension mechanism is syntax-pack-agnostic, and
// both worked examples -- SIMSELECT and SPATIALSELECT -- share the same
// plan.ExtensionSelection node type, so one rule covers both).
type SelectionExtensionSwapRule struct{}

// NewSelectionExtensionSwapRule builds the rule.
func NewSelectionExtensionSwapRule() *SelectionExtensionSwapRule {
	return &SelectionExtensionSwapRule{}
}

func (r *SelectionExtensionSwapRule) Name() string { return "SelectionExtensionSwap" }

func (r *SelectionExtensionSwapRule) Operand() Operand {
	return Node((*plan.Selection)(nil), Node((*plan.ExtensionSelection)(nil), Any))
}

func (r *SelectionExtensionSwapRule) TransformImpl(node sql.Node) ([]sql.Node, error) {
	upper, ok := node.(*plan.Selection)
	if !ok {
		return nil, fmt.Errorf("rules: SelectionExtensionSwap expected *plan.Selection, got %T", node)
	}
	lower, ok := upper.Child.(*plan.ExtensionSelection)
	if !ok {
		return nil, fmt.Errorf("rules: SelectionExtensionSwap expected *plan.ExtensionSelection child, got %T", upper.Child)
	}

	newUpperNode, err := upper.WithChildren(lower.Child)
	if err != nil {
		return nil, err
	}
	newLowerNode, err := lower.WithChildren(newUpperNode)
	if err != nil {
		return nil, err
	}
	return []sql.Node{newLowerNode}, nil
}
