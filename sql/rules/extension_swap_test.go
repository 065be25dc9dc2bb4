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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// TestSelectionExtensionSwapRulePushesOrdinaryFilterBelow exercises spec
// scenario 6 (SIMSELECT vector-distance filtering): a cheap ordinary
// equality filter should end up underneath the extension predicate so it
// runs first and shrinks what the extension predicate must evaluate.
func TestSelectionExtensionSwapRulePushesOrdinaryFilterBelow(t *testing.T) {
	require := require.New(t)
	ext := plan.NewExtensionSelection("simselect", "vec TO [0,0,0] < 1.0", relationStub())
	filterPred := expression.NewComparison(expression.EQ, expression.NewGetField("id"), expression.NewLiteral(1, sql.Integer))
	sel := plan.NewSelection(filterPred, ext)

	rule := NewSelectionExtensionSwapRule()
	require.True(Matches(rule.Operand(), sel))

	results, err := Transform(rule, sel)
	require.NoError(err)
	require.Len(results, 1)

	newExt, ok := results[0].(*plan.ExtensionSelection)
	require.True(ok, "expected ExtensionSelection on top, got %T", results[0])
	require.Equal("simselect", newExt.ExtensionTag())

	newSel, ok := newExt.Child.(*plan.Selection)
	require.True(ok, "expected Selection directly beneath the extension node, got %T", newExt.Child)
	require.True(newSel.Predicate.Equal(filterPred, false))

	_, ok = newSel.Child.(*plan.Relation)
	require.True(ok)
}

func TestSelectionExtensionSwapRuleRejectsNonExtensionChild(t *testing.T) {
	require := require.New(t)
	sel := plan.NewSelection(expression.NewLiteral(true, sql.Boolean), relationStub())
	_, err := Transform(NewSelectionExtensionSwapRule(), sel)
	require.Error(err)
}
