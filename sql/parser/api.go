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
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/lexer"
)

// This file is the exported surface a syntax pack (sql/registry.Pack) needs
// to actually write a TriggerFunc/SelectClauseParseFunc/WhereClauseParseFunc
// body, or a RegisterPrefix/RegisterInfix callback: every other method on
// Parser is unexported since it's only ever called from within this
// package's own grammar. Grounded on the same lookahead/consume/recurse
// shape ha1tch-tsqlparser's parser exposes to its own callers.

// Cur returns the token the parser is currently positioned on.
func (p *Parser) Cur() lexer.Token { return p.curToken }

// Peek returns the next token after Cur, without consuming either.
func (p *Parser) Peek() lexer.Token { return p.peekToken }

// CurIs reports whether Cur's type is t.
func (p *Parser) CurIs(t lexer.Type) bool { return p.curTokenIs(t) }

// PeekIs reports whether Peek's type is t.
func (p *Parser) PeekIs(t lexer.Type) bool { return p.peekTokenIs(t) }

// Advance consumes Cur, shifting Peek into its place and lexing a new Peek.
func (p *Parser) Advance() { p.nextToken() }

// Expect consumes Cur if it has type t, returning ErrSyntax otherwise. On
// success Cur advances past the consumed token, same as the base grammar's
// own expect.
func (p *Parser) Expect(t lexer.Type) error { return p.expect(t) }

// ParseExpression runs the Pratt-parser driver from the current position,
// stopping once it reaches a token whose precedence is not greater than
// precedence -- the same entry point the base grammar's own infix/prefix
// functions call recursively.
func (p *Parser) ParseExpression(precedence int) (sql.Expression, error) {
	return p.parseExpression(precedence)
}

// ParseExpressionList parses a comma-separated run of expressions at
// LOWEST precedence, e.g. a function call's argument list or a vector
// literal's element list.
func (p *Parser) ParseExpressionList() ([]sql.Expression, error) {
	return p.parseExpressionList()
}

// SyntaxError builds an ErrSyntax carrying msg, for a pack's parse function
// to return on malformed extension syntax.
func SyntaxError(msg string) error {
	return ErrSyntax.New(msg)
}

// LeadingKeyword returns the token that started the current statement --
// SELECT, or a pack-registered alternate (RegisterSelectKeyword). A SELECT
// or WHERE clause TriggerFunc uses it to tell whether its own leading
// keyword is the one in play, since by the time either hook runs that
// token has already been consumed.
func (p *Parser) LeadingKeyword() lexer.Token { return p.leadingKeyword }

// ParseSelectItems runs the base comma-separated select-item grammar,
// letting a SELECT-clause hook delegate to the default parse while still
// inspecting the resulting expressions (e.g. to record that its own
// operator appeared there) before returning them.
func (p *Parser) ParseSelectItems() ([]sql.Expression, error) {
	return p.parseSelectList()
}

// Set stores val under key in this parser's scratch bag, for a pack to
// carry state across its own SELECT/WHERE clause hooks within a single
// parse (Parser is built fresh per Parse call, so this never leaks across
// queries or needs locking).
func (p *Parser) Set(key string, val interface{}) {
	p.scratch[key] = val
}

// Get retrieves a value previously stored with Set.
func (p *Parser) Get(key string) (interface{}, bool) {
	v, ok := p.scratch[key]
	return v, ok
}

// Clone returns an independent copy of p positioned at the same point in
// the input, for a TriggerFunc to run a throwaway trial parse on (e.g.
// parsing the rest of a WHERE predicate to check whether it contains a
// particular extension operator) without disturbing the real parse. The
// clone shares no mutable state with p: Lexer is a value type, and the
// prefix/infix/precedence tables and scratch bag are shallow-copied (the
// trial parse only reads them, via RegisterPrefix/RegisterInfix callbacks
// which never mutate a Parser's tables).
func (p *Parser) Clone() *Parser {
	l := *p.l
	cp := &Parser{
		l:              &l,
		curToken:       p.curToken,
		peekToken:      p.peekToken,
		prefixParseFns: p.prefixParseFns,
		infixParseFns:  p.infixParseFns,
		precedences:    p.precedences,
		leadingKeyword: p.leadingKeyword,
		scratch:        map[string]interface{}{},
	}
	for k, v := range p.scratch {
		cp.scratch[k] = v
	}
	return cp
}
