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
	"github.com/sirupsen/logrus"

	"github.com/wyfunique/dbsim/sql"
)

// Clause identifies a top-level SELECT-statement clause a syntax pack may
// contribute an alternative grammar for (SPEC_FULL.md §4.3 item 2, grounded
// on original_source/dbsim/extensions/extended_syntax/registry_utils.py's
// SQLClause enum). FROM is deliberately absent there and here: a FROM
// clause can embed a nested query, which makes it a poor extension point,
// so only SELECT and WHERE get hooks.
type Clause string

const (
	ClauseSelect Clause = "select"
	ClauseWhere  Clause = "where"
)

// TriggerFunc reports, via lookahead only, whether an extension's clause
// grammar applies at the parser's current position. It must not consume
// input -- consuming is the parse function's job, called only once a
// trigger has won.
type TriggerFunc func(p *Parser) bool

// SelectClauseParseFunc replaces the default comma-separated select-item
// grammar, returning the select-item expressions exactly as
// parseSelectList does.
type SelectClauseParseFunc func(p *Parser) ([]sql.Expression, error)

// WhereClauseParseFunc replaces the default predicate grammar. It receives
// the already-parsed FROM source and returns the node that should stand in
// its place -- ordinarily a plan.Selection, but an extension may return a
// plan.ExtensionSelection or any other node wrapping source.
type WhereClauseParseFunc func(p *Parser, source sql.Node) (sql.Node, error)

type selectHook struct {
	pack    string
	trigger TriggerFunc
	parse   SelectClauseParseFunc
}

type whereHook struct {
	pack    string
	trigger TriggerFunc
	parse   WhereClauseParseFunc
}

// selectHooks/whereHooks are package-level, like extraPrefixFns, so every
// Parser built after a pack registers sees its hooks -- sql/registry calls
// RegisterSelectClauseHook/RegisterWhereClauseHook during pack
// registration.
var (
	selectHooks []selectHook
	whereHooks  []whereHook
)

// RegisterSelectClauseHook lets a syntax pack override the SELECT clause's
// item-list grammar, e.g. SIMSELECT's `SELECT ... TO {#...#} <threshold`.
func RegisterSelectClauseHook(pack string, trigger TriggerFunc, parse SelectClauseParseFunc) {
	selectHooks = append(selectHooks, selectHook{pack, trigger, parse})
}

// RegisterWhereClauseHook lets a syntax pack override the WHERE clause's
// predicate grammar, e.g. SPATIALSELECT's `INSIDE {#x,y#, r}`.
func RegisterWhereClauseHook(pack string, trigger TriggerFunc, parse WhereClauseParseFunc) {
	whereHooks = append(whereHooks, whereHook{pack, trigger, parse})
}

// triggeredSelectHook returns the first registered SELECT hook whose
// trigger fires over p's current lookahead, and how many hooks fired in
// total -- registry_utils.py's "only the first True trigger is used, the
// others are ignored" rule, applied here at match time since Go has no
// OrderedDict to dedupe at registration time the way the original does.
func triggeredSelectHook(p *Parser) (*selectHook, int) {
	var winner *selectHook
	matches := 0
	for i := range selectHooks {
		if selectHooks[i].trigger(p) {
			matches++
			if winner == nil {
				winner = &selectHooks[i]
			}
		}
	}
	return winner, matches
}

func triggeredWhereHook(p *Parser) (*whereHook, int) {
	var winner *whereHook
	matches := 0
	for i := range whereHooks {
		if whereHooks[i].trigger(p) {
			matches++
			if winner == nil {
				winner = &whereHooks[i]
			}
		}
	}
	return winner, matches
}

// parseSelectListOrHook runs any triggered SELECT-clause hook in place of
// the default grammar.
func (p *Parser) parseSelectListOrHook() ([]sql.Expression, error) {
	if hook, matches := triggeredSelectHook(p); hook != nil {
		if matches > 1 {
			logrus.Warnf("parser: %d syntax packs matched the SELECT clause simultaneously, using %q (first registered wins)", matches, hook.pack)
		}
		return hook.parse(p)
	}
	return p.parseSelectList()
}

// parseWhereOrHook runs any triggered WHERE-clause hook in place of the
// default predicate grammar, wrapping source itself on the default path.
func (p *Parser) parseWhereOrHook(source sql.Node) (sql.Node, error) {
	if hook, matches := triggeredWhereHook(p); hook != nil {
		if matches > 1 {
			logrus.Warnf("parser: %d syntax packs matched the WHERE clause simultaneously, using %q (first registered wins)", matches, hook.pack)
		}
		return hook.parse(p, source)
	}
	return p.parseDefaultWhere(source)
}

// PostStatementHookFunc runs once a full SELECT statement's plan tree has
// been built, given the finished node and the parser it was built with (so
// it can read LeadingKeyword/scratch state the SELECT/WHERE hooks left
// behind). It returns the node unchanged, a rewritten node, or an error --
// the extension point SIMSELECT/SPATIALSELECT use for their "my own
// operator must appear somewhere in this statement" validation, which
// can't be checked from either clause hook alone since either one might
// run without the other (e.g. a SIMSELECT query with no WHERE clause at
// all).
type PostStatementHookFunc func(p *Parser, node sql.Node) (sql.Node, error)

type postHook struct {
	pack string
	fn   PostStatementHookFunc
}

var postHooks []postHook

// RegisterPostStatementHook lets a syntax pack validate or rewrite a fully
// parsed SELECT statement.
func RegisterPostStatementHook(pack string, fn PostStatementHookFunc) {
	postHooks = append(postHooks, postHook{pack, fn})
}

// runPostStatementHooks threads node through every registered hook in
// registration order, stopping at the first error.
func (p *Parser) runPostStatementHooks(node sql.Node) (sql.Node, error) {
	var err error
	for _, h := range postHooks {
		node, err = h.fn(p, node)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}
