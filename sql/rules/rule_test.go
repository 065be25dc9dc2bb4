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

func TestTransformRejectsNonMatchingNode(t *testing.T) {
	require := require.New(t)
	_, err := Transform(NewFilterMergeRule(), relationStub())
	require.Error(err)
}

func TestTransformAppliesRuleOnMatch(t *testing.T) {
	require := require.New(t)
	inner := plan.NewSelection(expression.NewLiteral(true, sql.Boolean), relationStub())
	outer := plan.NewSelection(expression.NewLiteral(false, sql.Boolean), inner)
	results, err := Transform(NewFilterMergeRule(), outer)
	require.NoError(err)
	require.Len(results, 1)
}
