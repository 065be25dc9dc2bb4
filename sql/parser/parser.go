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

// Package parser is a recursive-descent/Pratt parser that turns a token
// stream from sql/lexer into an unresolved sql.Node tree (sql/plan) built
// of sql.Expression leaves (sql/expression). Grounded on
// ha1tch-tsqlparser/parser/parser.go's prefix/infix function-map idiom --
// the same shape sql/registry uses to let a syntax pack register its own
// clause and predicate parsers at a chosen precedence (SPEC_FULL.md §4.3),
// since the teacher itself has no surviving hand-rolled parser to ground on
// (it delegates to an external, non-pluggable vitess grammar).
package parser

import (
	goerrors "gopkg.in/src-d/go-errors.v1"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/plan"
)

// ErrSyntax is returned for any malformed input the parser can't recover
// from; its message carries the offending token and position.
var ErrSyntax = goerrors.NewKind("syntax error: %s")

// Precedence levels, lowest to highest -- the ladder named in
// SPEC_FULL.md §4.2: OR -> AND -> COMP -> ADD -> MUL -> UNARY -> VALUE.
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	COMPARE
	BETWEEN_PREC
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
)

var basePrecedences = map[lexer.Type]int{
	lexer.OR:      OR_PREC,
	lexer.AND:     AND_PREC,
	lexer.EQ:      COMPARE,
	lexer.NEQ:     COMPARE,
	lexer.LT:      COMPARE,
	lexer.LTE:     COMPARE,
	lexer.GT:      COMPARE,
	lexer.GTE:     COMPARE,
	lexer.IS:      COMPARE,
	lexer.LIKE:    BETWEEN_PREC,
	lexer.BETWEEN: BETWEEN_PREC,
	lexer.IN:      BETWEEN_PREC,
	lexer.PLUS:    SUM,
	lexer.MINUS:   SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:   PRODUCT,
	lexer.PERCENT: PRODUCT,
	lexer.LPAREN:  CALL,
	lexer.DOT:     INDEX,
}

type (
	prefixParseFn func(p *Parser) (sql.Expression, error)
	infixParseFn  func(p *Parser, left sql.Expression) (sql.Expression, error)
)

// Parser holds the mutable parse state for a single query string. A new
// Parser is built per call to Parse; the prefix/infix/precedence tables
// are copied from the package-level registry each time so that extension
// registrations (sql/registry) are visible to every subsequently-parsed
// query without mutating a shared live parser mid-parse.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.Type]prefixParseFn
	infixParseFns  map[lexer.Type]infixParseFn
	precedences    map[lexer.Type]int

	// leadingKeyword is the token parseSelectStatement consumed to start
	// the statement -- SELECT on the base grammar, or a pack-registered
	// alternate (RegisterSelectKeyword) such as SIMSELECT/SPATIALSELECT.
	// A SELECT-clause hook's TriggerFunc reads it via LeadingKeyword to
	// tell which keyword is in play, since by the time the hook runs the
	// keyword token itself has already been consumed.
	leadingKeyword lexer.Token

	// scratch is a pack-local value bag a TriggerFunc/parse func can use
	// to carry state across the SELECT and WHERE clause hooks of a single
	// parse (e.g. "did I see my own operator anywhere"), mirroring the
	// original extended-syntax classes' per-parse instance flags without
	// Parser needing to know any pack's business.
	scratch map[string]interface{}

	errors []string
}

// New builds a Parser over l, seeded with the base grammar plus any
// extension hooks registered via RegisterPrefix/RegisterInfix.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, prefixParseFns: map[lexer.Type]prefixParseFn{}, infixParseFns: map[lexer.Type]infixParseFn{}, precedences: map[lexer.Type]int{}, scratch: map[string]interface{}{}}

	for tok, fn := range basePrefixFns {
		p.prefixParseFns[tok] = fn
	}
	for tok, fn := range baseInfixFns {
		p.infixParseFns[tok] = fn
	}
	for tok, prec := range basePrecedences {
		p.precedences[tok] = prec
	}
	for tok, fn := range extraPrefixFns {
		p.prefixParseFns[tok] = fn
	}
	for tok, fn := range extraInfixFns {
		p.infixParseFns[tok] = fn
	}
	for tok, prec := range extraPrecedences {
		p.precedences[tok] = prec
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single (possibly UNION ALL-chained) SELECT statement and
// returns its unresolved plan tree.
func Parse(query string) (sql.Node, error) {
	p := New(lexer.New(query))
	node, err := p.parseSelectChain()
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	if !p.curTokenIs(lexer.EOF) {
		return nil, ErrSyntax.New("unexpected trailing input: " + string(p.curToken.Type))
	}
	return node, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expect(t lexer.Type) error {
	if !p.curTokenIs(t) {
		return ErrSyntax.New("expected " + string(t) + ", got " + string(p.curToken.Type) + " (" + p.curToken.Literal + ")")
	}
	p.nextToken()
	return nil
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := p.precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// --- Statement grammar ---------------------------------------------------

func (p *Parser) parseSelectChain() (sql.Node, error) {
	left, err := p.parseSelectStatement()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(lexer.UNION) {
		p.nextToken()
		if err := p.expect(lexer.ALL); err != nil {
			return nil, ErrSyntax.New("only UNION ALL is supported")
		}
		right, err := p.parseSelectStatement()
		if err != nil {
			return nil, err
		}
		left = plan.NewUnionAll(left, right)
	}
	return left, nil
}

func (p *Parser) parseSelectStatement() (sql.Node, error) {
	if !p.curTokenIs(lexer.SELECT) && !extraSelectKeywords[p.curToken.Type] {
		return nil, ErrSyntax.New("expected SELECT, got " + string(p.curToken.Type))
	}
	p.leadingKeyword = p.curToken
	p.nextToken()

	exprs, err := p.parseSelectListOrHook()
	if err != nil {
		return nil, err
	}

	var source sql.Node = plan.NewLoad("")
	if p.curTokenIs(lexer.FROM) {
		p.nextToken()
		source, err = p.parseFromClause()
		if err != nil {
			return nil, err
		}
	}

	if p.curTokenIs(lexer.WHERE) {
		p.nextToken()
		source, err = p.parseWhereOrHook(source)
		if err != nil {
			return nil, err
		}
	}

	if p.curTokenIs(lexer.GROUP) {
		p.nextToken()
		if err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		keys, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		source = plan.NewGroupBy(keys, exprs, source)
		exprs = nil
	}

	node := source
	if exprs != nil {
		node = plan.NewProjection(exprs, source)
	}

	if p.curTokenIs(lexer.ORDER) {
		p.nextToken()
		if err := p.expect(lexer.BY); err != nil {
			return nil, err
		}
		sortExprs, err := p.parseOrderList()
		if err != nil {
			return nil, err
		}
		node = plan.NewOrderBy(sortExprs, node)
	}

	limit, offset := int64(-1), int64(0)
	haveSlice := false
	if p.curTokenIs(lexer.LIMIT) {
		p.nextToken()
		n, err := p.parseIntLiteralValue()
		if err != nil {
			return nil, err
		}
		limit = n
		haveSlice = true
	}
	if p.curTokenIs(lexer.OFFSET) {
		p.nextToken()
		n, err := p.parseIntLiteralValue()
		if err != nil {
			return nil, err
		}
		offset = n
		haveSlice = true
	}
	if haveSlice {
		node = plan.NewSlice(limit, offset, node)
	}

	return p.runPostStatementHooks(node)
}

// parseDefaultWhere parses the base `WHERE <predicate>` grammar, wrapping
// source in a plan.Selection. Pulled out of parseSelectStatement so
// parseWhereOrHook (sql/parser/clause_hooks.go) can fall back to it.
func (p *Parser) parseDefaultWhere(source sql.Node) (sql.Node, error) {
	pred, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return plan.NewSelection(pred, source), nil
}

func (p *Parser) parseSelectList() ([]sql.Expression, error) {
	var exprs []sql.Expression
	for {
		e, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return exprs, nil
}

func (p *Parser) parseSelectItem() (sql.Expression, error) {
	e, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.curTokenIs(lexer.AS) {
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			return nil, ErrSyntax.New("expected alias name after AS")
		}
		name := p.curToken.Literal
		p.nextToken()
		return expression.NewAlias(name, e), nil
	}
	return e, nil
}

func (p *Parser) parseFromClause() (sql.Node, error) {
	node, err := p.parseTableSource()
	if err != nil {
		return nil, err
	}
	for p.curTokenIs(lexer.JOIN) || p.curTokenIs(lexer.LEFT) || p.curTokenIs(lexer.INNER) {
		left := false
		if p.curTokenIs(lexer.LEFT) {
			left = true
			p.nextToken()
			if p.curTokenIs(lexer.OUTER) {
				p.nextToken()
			}
		} else if p.curTokenIs(lexer.INNER) {
			p.nextToken()
		}
		if err := p.expect(lexer.JOIN); err != nil {
			return nil, err
		}
		right, err := p.parseTableSource()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.ON); err != nil {
			return nil, err
		}
		cond, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if left {
			node = plan.NewLeftJoin(node, right, cond)
		} else {
			node = plan.NewInnerJoin(node, right, cond)
		}
	}
	return node, nil
}

func (p *Parser) parseTableSource() (sql.Node, error) {
	if !p.curTokenIs(lexer.IDENT) {
		return nil, ErrSyntax.New("expected table name, got " + string(p.curToken.Type))
	}
	name := p.curToken.Literal
	p.nextToken()
	var node sql.Node = plan.NewLoad(name)
	if p.curTokenIs(lexer.AS) {
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			return nil, ErrSyntax.New("expected alias after AS")
		}
		node = plan.NewAlias(p.curToken.Literal, node)
		p.nextToken()
	} else if p.curTokenIs(lexer.IDENT) {
		node = plan.NewAlias(p.curToken.Literal, node)
		p.nextToken()
	}
	return node, nil
}

func (p *Parser) parseExpressionList() ([]sql.Expression, error) {
	var out []sql.Expression
	for {
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return out, nil
}

func (p *Parser) parseOrderList() ([]sql.Expression, error) {
	var out []sql.Expression
	for {
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if p.curTokenIs(lexer.DESC) {
			p.nextToken()
			e = expression.NewDesc(e)
		} else {
			if p.curTokenIs(lexer.ASC) {
				p.nextToken()
			}
			e = expression.NewAsc(e)
		}
		out = append(out, e)
		if !p.curTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return out, nil
}

func (p *Parser) parseIntLiteralValue() (int64, error) {
	if !p.curTokenIs(lexer.INT) {
		return 0, ErrSyntax.New("expected integer literal, got " + string(p.curToken.Type))
	}
	n := parseIntLiteral(p.curToken.Literal)
	p.nextToken()
	return n, nil
}
