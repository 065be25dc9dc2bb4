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

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/plan"
)

// withClauseHooks registers hooks for the duration of fn and restores the
// package-level tables afterward, so tests run in any order without
// leaking a pack's grammar into an unrelated test's parse.
func withClauseHooks(t *testing.T, install func()) {
	t.Helper()
	savedSelect := append([]selectHook(nil), selectHooks...)
	savedWhere := append([]whereHook(nil), whereHooks...)
	t.Cleanup(func() {
		selectHooks = savedSelect
		whereHooks = savedWhere
	})
	install()
}

func TestSelectClauseHookOverridesDefaultGrammar(t *testing.T) {
	require := require.New(t)
	withClauseHooks(t, func() {
		RegisterSelectClauseHook(
			"stub",
			func(p *Parser) bool { return p.curTokenIs(lexer.IDENT) && p.curToken.Literal == "MARKER" },
			func(p *Parser) ([]sql.Expression, error) {
				p.nextToken() // consume MARKER
				return []sql.Expression{expression.NewLiteral(int64(1), sql.Integer)}, nil
			},
		)
	})

	node, err := Parse("SELECT MARKER FROM animals")
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	require.Len(proj.Exprs, 1)
	lit, ok := proj.Exprs[0].(*expression.Literal)
	require.True(ok)
	require.Equal(int64(1), lit.Value)
}

func TestWhereClauseHookOverridesDefaultGrammar(t *testing.T) {
	require := require.New(t)
	withClauseHooks(t, func() {
		RegisterWhereClauseHook(
			"stub",
			func(p *Parser) bool { return p.curTokenIs(lexer.IDENT) && p.curToken.Literal == "CUSTOM" },
			func(p *Parser, source sql.Node) (sql.Node, error) {
				p.nextToken() // consume CUSTOM
				return plan.NewExtensionSelection("stub.custom", nil, source), nil
			},
		)
	})

	node, err := Parse("SELECT name FROM animals WHERE CUSTOM")
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	ext, ok := proj.Child.(*plan.ExtensionSelection)
	require.True(ok)
	require.Equal("stub.custom", ext.ExtensionTag())
}

func TestMultipleTriggeredSelectHooksFirstWins(t *testing.T) {
	require := require.New(t)
	withClauseHooks(t, func() {
		RegisterSelectClauseHook(
			"first",
			func(p *Parser) bool { return true },
			func(p *Parser) ([]sql.Expression, error) {
				return []sql.Expression{expression.NewLiteral(int64(1), sql.Integer)}, nil
			},
		)
		RegisterSelectClauseHook(
			"second",
			func(p *Parser) bool { return true },
			func(p *Parser) ([]sql.Expression, error) {
				return []sql.Expression{expression.NewLiteral(int64(2), sql.Integer)}, nil
			},
		)
	})

	hook, matches := triggeredSelectHook(&Parser{})
	require.Equal(2, matches)
	require.Equal("first", hook.pack)
}
