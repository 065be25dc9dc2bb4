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
	"strconv"
	"strings"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/lexer"
)

// extraPrefixFns/extraInfixFns/extraPrecedences are the extension overlay a
// syntax pack writes into via RegisterPrefix/RegisterInfix (RegisterInfix
// also records the operator's precedence).
// They're package-level because a Parser is built fresh per query
// (New/Parse) and should see every pack registered so far, the same way
// sql/lexer's keyword table is a package-level overlay extensions mutate.
var (
	extraPrefixFns   = map[lexer.Type]prefixParseFn{}
	extraInfixFns    = map[lexer.Type]infixParseFn{}
	extraPrecedences = map[lexer.Type]int{}

	// extraSelectKeywords is the set of pack-registered token types
	// parseSelectStatement accepts in place of the base SELECT keyword,
	// e.g. SIMSELECT/SPATIALSELECT standing in for SELECT on their own
	// extended statement form.
	extraSelectKeywords = map[lexer.Type]bool{}
)

// RegisterSelectKeyword lets a syntax pack introduce an alternate
// statement-leading keyword usable wherever the base grammar accepts
// SELECT. A pack using this still gets a plain SELECT statement if the
// query actually says SELECT; Parser.LeadingKeyword tells a SELECT-clause
// hook's TriggerFunc which keyword started the current statement.
func RegisterSelectKeyword(t lexer.Type) {
	extraSelectKeywords[t] = true
}

// RegisterPrefix lets a syntax pack contribute a prefix (nud) parser for a
// token type it owns, e.g. a literal syntax like SIMSELECT's vector
// literal `{#1,2,3#}`.
func RegisterPrefix(t lexer.Type, fn func(p *Parser) (sql.Expression, error)) {
	extraPrefixFns[t] = fn
}

// RegisterInfix lets a syntax pack contribute an infix (led) parser for a
// token type, at the given precedence -- e.g. a new comparison-like
// operator such as SPATIALSELECT's `INSIDE`.
func RegisterInfix(t lexer.Type, precedence int, fn func(p *Parser, left sql.Expression) (sql.Expression, error)) {
	extraInfixFns[t] = fn
	extraPrecedences[t] = precedence
}

// parseExpression is the Pratt-parser driver: it resolves a prefix parser
// for the current token, then repeatedly looks for an infix parser bound
// to a token of precedence higher than the caller's floor, exactly the
// loop shape ha1tch-tsqlparser/parser/parser.go uses for T-SQL.
func (p *Parser) parseExpression(precedence int) (sql.Expression, error) {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		return nil, ErrSyntax.New("unexpected token in expression: " + string(p.curToken.Type) + " (" + p.curToken.Literal + ")")
	}
	left, err := prefix(p)
	if err != nil {
		return nil, err
	}

	for !p.curTokenIs(lexer.EOF) && precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.curToken.Type]
		if !ok {
			return left, nil
		}
		left, err = infix(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) curPrecedence() int {
	if prec, ok := p.precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func parseIntLiteral(lit string) int64 {
	n, _ := strconv.ParseInt(lit, 10, 64)
	return n
}

// --- base prefix parsers --------------------------------------------------

var basePrefixFns = map[lexer.Type]prefixParseFn{
	lexer.IDENT:       parseIdentOrFunction,
	lexer.INT:         parseIntExpr,
	lexer.FLOAT:       parseFloatExpr,
	lexer.STRING:      parseStringExpr,
	lexer.NULL:        parseNullExpr,
	lexer.TRUE:        parseTrueExpr,
	lexer.FALSE:       parseFalseExpr,
	lexer.PLACEHOLDER: parsePlaceholderExpr,
	lexer.DOLLAR:      parseItemGetterExpr,
	lexer.MINUS:       parseUnaryMinus,
	lexer.NOT:         parseUnaryNot,
	lexer.LPAREN:      parseGroupedOrTuple,
	lexer.ASTERISK:    parseStarExpr,
	lexer.CASE:        parseCaseExpr,
	lexer.CAST:        parseCastExpr,
}

func parseIdentOrFunction(p *Parser) (sql.Expression, error) {
	name := p.curToken.Literal
	p.nextToken()

	// table.* (select-all qualified by a relation name)
	if p.curTokenIs(lexer.DOT) && p.peekTokenIs(lexer.ASTERISK) {
		p.nextToken()
		p.nextToken()
		return expression.NewStar(name), nil
	}

	for p.curTokenIs(lexer.DOT) {
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			return nil, ErrSyntax.New("expected identifier after '.'")
		}
		name = name + "." + p.curToken.Literal
		p.nextToken()
	}

	if p.curTokenIs(lexer.LPAREN) {
		return parseFunctionCall(p, name)
	}

	return expression.NewGetField(name), nil
}

func parseFunctionCall(p *Parser, name string) (sql.Expression, error) {
	p.nextToken() // consume (
	var args []sql.Expression
	if !p.curTokenIs(lexer.RPAREN) {
		if p.curTokenIs(lexer.ASTERISK) && p.peekTokenIs(lexer.RPAREN) {
			args = append(args, expression.NewStar(""))
			p.nextToken()
		} else {
			var err error
			args, err = p.parseExpressionList()
			if err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expression.NewFunction(strings.ToLower(name), args...), nil
}

func parseIntExpr(p *Parser) (sql.Expression, error) {
	n := parseIntLiteral(p.curToken.Literal)
	p.nextToken()
	return expression.NewLiteral(n, sql.Integer), nil
}

func parseFloatExpr(p *Parser) (sql.Expression, error) {
	f, _ := strconv.ParseFloat(p.curToken.Literal, 64)
	p.nextToken()
	return expression.NewLiteral(f, sql.Float), nil
}

func parseStringExpr(p *Parser) (sql.Expression, error) {
	s := p.curToken.Literal
	p.nextToken()
	return expression.NewLiteral(s, sql.String), nil
}

func parseNullExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	return expression.Null, nil
}

func parseTrueExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	return expression.NewLiteral(true, sql.Boolean), nil
}

func parseFalseExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	return expression.NewLiteral(false, sql.Boolean), nil
}

func parsePlaceholderExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	idx := 0
	if p.curTokenIs(lexer.INT) {
		idx = int(parseIntLiteral(p.curToken.Literal))
		p.nextToken()
	}
	return expression.NewParamGetter(idx), nil
}

// parseItemGetterExpr parses a bare `$k` (the lexer has already fused the
// key onto the DOLLAR token) into an item-getter indexing the current row,
// query_parser_toolbox.py's value_exp: "token.startswith('$')" -> key parsed
// as an int where possible, else kept as the literal word.
func parseItemGetterExpr(p *Parser) (sql.Expression, error) {
	lit := p.curToken.Literal
	p.nextToken()

	var key interface{} = lit
	if n, err := strconv.Atoi(lit); err == nil {
		key = n
	}
	return expression.NewItemGetter(expression.Row, key), nil
}

func parseUnaryMinus(p *Parser) (sql.Expression, error) {
	p.nextToken()
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return expression.NewUnaryMinus(operand), nil
}

func parseUnaryNot(p *Parser) (sql.Expression, error) {
	p.nextToken()
	operand, err := p.parseExpression(BETWEEN_PREC)
	if err != nil {
		return nil, err
	}
	return expression.NewNot(operand), nil
}

func parseStarExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	return expression.NewStar(""), nil
}

// parseGroupedOrTuple parses `(expr)` as a plain grouping and `(e1, e2,
// ...)` as a Tuple, used both for parenthesized sub-expressions and for
// the right-hand side of IN.
func parseGroupedOrTuple(p *Parser) (sql.Expression, error) {
	p.nextToken()
	first, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.COMMA) {
		if err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elems := []sql.Expression{first}
	for p.curTokenIs(lexer.COMMA) {
		p.nextToken()
		e, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expression.NewTuple(elems...), nil
}

func parseCaseExpr(p *Parser) (sql.Expression, error) {
	p.nextToken()
	var whens []expression.CaseWhen
	for p.curTokenIs(lexer.WHEN) {
		p.nextToken()
		cond, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		whens = append(whens, expression.CaseWhen{Cond: cond, Result: result})
	}
	var elseExpr sql.Expression
	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		var err error
		elseExpr, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.END); err != nil {
		return nil, err
	}
	return expression.NewCase(whens, elseExpr), nil
}

func parseCastExpr(p *Parser) (sql.Expression, error) {
	p.nextToken() // consume CAST
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.AS) {
		return nil, ErrSyntax.New("expected AS in CAST expression")
	}
	p.nextToken()
	if !p.curTokenIs(lexer.IDENT) {
		return nil, ErrSyntax.New("expected type name in CAST expression")
	}
	targetType := sql.FieldType(strings.ToUpper(p.curToken.Literal))
	p.nextToken()
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expression.NewCast(inner, targetType), nil
}

// --- base infix parsers ----------------------------------------------------

var baseInfixFns = map[lexer.Type]infixParseFn{
	lexer.PLUS:     parseArithmeticInfix(expression.Add),
	lexer.MINUS:    parseArithmeticInfix(expression.Sub),
	lexer.ASTERISK: parseArithmeticInfix(expression.Mul),
	lexer.SLASH:    parseArithmeticInfix(expression.Div),
	lexer.PERCENT:  parseArithmeticInfix(expression.Mod),
	lexer.EQ:       parseComparisonInfix(expression.EQ),
	lexer.NEQ:      parseComparisonInfix(expression.NEQ),
	lexer.LT:       parseComparisonInfix(expression.LT),
	lexer.LTE:      parseComparisonInfix(expression.LTE),
	lexer.GT:       parseComparisonInfix(expression.GT),
	lexer.GTE:      parseComparisonInfix(expression.GTE),
	lexer.AND:      parseAndInfix,
	lexer.OR:       parseOrInfix,
	lexer.LIKE:     parseComparisonInfix(expression.Like),
	lexer.BETWEEN:  parseBetweenInfix,
	lexer.IN:       parseInInfix,
	lexer.IS:       parseIsInfix,
}

func parseArithmeticInfix(op string) infixParseFn {
	return func(p *Parser, left sql.Expression) (sql.Expression, error) {
		prec := p.curPrecedence()
		p.nextToken()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return expression.NewArithmetic(op, left, right), nil
	}
}

func parseComparisonInfix(op string) infixParseFn {
	return func(p *Parser, left sql.Expression) (sql.Expression, error) {
		prec := p.curPrecedence()
		p.nextToken()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return expression.NewComparison(op, left, right), nil
	}
}

func parseAndInfix(p *Parser, left sql.Expression) (sql.Expression, error) {
	prec := p.curPrecedence()
	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return expression.NewAnd(left, right), nil
}

func parseOrInfix(p *Parser, left sql.Expression) (sql.Expression, error) {
	prec := p.curPrecedence()
	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return expression.NewOr(left, right), nil
}

// parseBetweenInfix lowers `Expr BETWEEN Lower AND Upper` to
// expression.Between, consuming the connecting AND itself since AND's own
// infix parser would otherwise try (and fail) to combine Lower with
// whatever follows.
func parseBetweenInfix(p *Parser, left sql.Expression) (sql.Expression, error) {
	p.nextToken()
	lower, err := p.parseExpression(BETWEEN_PREC)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.AND); err != nil {
		return nil, err
	}
	upper, err := p.parseExpression(BETWEEN_PREC)
	if err != nil {
		return nil, err
	}
	return expression.NewBetween(left, lower, upper), nil
}

func parseInInfix(p *Parser, left sql.Expression) (sql.Expression, error) {
	p.nextToken()
	if !p.curTokenIs(lexer.LPAREN) {
		return nil, ErrSyntax.New("expected '(' after IN")
	}
	list, err := parseGroupedOrTuple(p)
	if err != nil {
		return nil, err
	}
	if _, ok := list.(*expression.Tuple); !ok {
		list = expression.NewTuple(list)
	}
	return expression.NewIn(left, list), nil
}

// parseIsInfix lowers `Expr IS NULL`/`Expr IS NOT NULL`. Other `IS <value>`
// forms degrade to an IsOp comparison against the parsed right-hand value.
func parseIsInfix(p *Parser, left sql.Expression) (sql.Expression, error) {
	p.nextToken()
	negate := false
	if p.curTokenIs(lexer.NOT) {
		negate = true
		p.nextToken()
	}
	right, err := p.parseExpression(COMPARE)
	if err != nil {
		return nil, err
	}
	cmp := sql.Expression(expression.NewComparison(expression.Is, left, right))
	if negate {
		return expression.NewNot(cmp), nil
	}
	return cmp, nil
}
