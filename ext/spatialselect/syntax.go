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

package spatialselect

import (
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/parser"
	"github.com/wyfunique/dbsim/sql/plan"
	"github.com/wyfunique/dbsim/sql/registry"
)

// New reserved word this pack contributes: SPATIALSELECT as an alternate
// statement-leading keyword. INSIDE is the predicate operator keyword;
// '#'/'{'/'}' are already base-lexer punctuation, only the keyword needs
// registering.
const (
	SPATIALSELECT lexer.Type = "SPATIALSELECT"
	INSIDE        lexer.Type = "INSIDE"
)

// insideSeenKey is the Parser.scratch key this pack sets once it has seen
// INSIDE appear in either the SELECT item list or the WHERE predicate of
// the current statement.
const insideSeenKey = "spatialselect.inside_seen"

// floatAt parses a single numeric constant at the parser's current
// position, rejecting anything but a plain int/float literal (optionally
// negated) -- a point/circle literal's coordinates are always bare numeric
// constants in the original grammar too.
func floatAt(p *parser.Parser) (float64, error) {
	e, err := p.ParseExpression(parser.LOWEST)
	if err != nil {
		return 0, err
	}
	f, ok := floatOf(e)
	if !ok {
		return 0, parser.SyntaxError("expected a numeric constant")
	}
	return f, nil
}

func floatOf(e sql.Expression) (float64, bool) {
	switch v := e.(type) {
	case *expression.Literal:
		switch n := v.Value.(type) {
		case int64:
			return float64(n), true
		case float64:
			return n, true
		}
	case *expression.UnaryMinus:
		if f, ok := floatOf(v.Operand); ok {
			return -f, true
		}
	}
	return 0, false
}

// parsePointLiteral is the prefix (nud) parser for `#`, reading `#x,y#`.
func parsePointLiteral(p *parser.Parser) (sql.Expression, error) {
	p.Advance() // consume '#'
	x, err := floatAt(p)
	if err != nil {
		return nil, err
	}
	if err := p.Expect(lexer.COMMA); err != nil {
		return nil, err
	}
	y, err := floatAt(p)
	if err != nil {
		return nil, err
	}
	if err := p.Expect(lexer.HASH); err != nil {
		return nil, err
	}
	return NewPoint(x, y), nil
}

// parseCircleLiteral is the prefix (nud) parser for `{`, reading
// `{#x,y#, r}`.
func parseCircleLiteral(p *parser.Parser) (sql.Expression, error) {
	p.Advance() // consume '{'
	if !p.CurIs(lexer.HASH) {
		return nil, parser.SyntaxError("missing center in a circle literal")
	}
	centerExpr, err := p.ParseExpression(parser.LOWEST)
	if err != nil {
		return nil, err
	}
	center, ok := centerExpr.(*Point)
	if !ok {
		return nil, parser.SyntaxError("circle literal's center must be a point literal")
	}
	if err := p.Expect(lexer.COMMA); err != nil {
		return nil, err
	}
	radius, err := floatAt(p)
	if err != nil {
		return nil, err
	}
	if err := p.Expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return NewCircle(*center, radius), nil
}

// parseInsideInfix is the infix (led) parser for INSIDE, binding at
// COMPARE precedence -- the same rung the base grammar's `<`/`=`/etc.
// occupy, since INSIDE is itself a boolean predicate comparing two values.
func parseInsideInfix(p *parser.Parser, left sql.Expression) (sql.Expression, error) {
	p.Advance() // consume INSIDE
	right, err := p.ParseExpression(parser.COMPARE)
	if err != nil {
		return nil, err
	}
	return NewInsideOp(left, right), nil
}

func selectTrigger(p *parser.Parser) bool {
	return p.LeadingKeyword().Type == SPATIALSELECT
}

func selectParse(p *parser.Parser) ([]sql.Expression, error) {
	exprs, err := p.ParseSelectItems()
	if err != nil {
		return nil, err
	}
	for _, e := range exprs {
		if expression.ContainsTag(e, insideTag) {
			p.Set(insideSeenKey, true)
			break
		}
	}
	return exprs, nil
}

// whereTrigger runs a disposable trial parse on a Parser.Clone to see
// whether the upcoming predicate contains INSIDE anywhere in its tree --
// the same technique ext/simselect's whereTrigger uses for TO, since a
// TriggerFunc's two tokens of lookahead can't see that deep.
func whereTrigger(p *parser.Parser) bool {
	trial := p.Clone()
	pred, err := trial.ParseExpression(parser.LOWEST)
	if err != nil {
		return false
	}
	return expression.ContainsTag(pred, insideTag)
}

func whereParse(p *parser.Parser, source sql.Node) (sql.Node, error) {
	pred, err := p.ParseExpression(parser.LOWEST)
	if err != nil {
		return nil, err
	}
	p.Set(insideSeenKey, true)
	return plan.NewExtensionSelection(selectionTag, pred, source), nil
}

// postStatementHook enforces spatial_syntax.py's validation rule: a
// statement led by SPATIALSELECT must use INSIDE somewhere, in its select
// list or its WHERE clause, or the statement is malformed extended syntax.
func postStatementHook(p *parser.Parser, node sql.Node) (sql.Node, error) {
	if p.LeadingKeyword().Type != SPATIALSELECT {
		return node, nil
	}
	if _, seen := p.Get(insideSeenKey); !seen {
		return nil, parser.SyntaxError("SPATIALSELECT requires INSIDE to appear in the SELECT list or WHERE clause")
	}
	return node, nil
}

var pack = &registry.Pack{
	Name: "spatialselect",
	Keywords: map[string]lexer.Type{
		"SPATIALSELECT": SPATIALSELECT,
		"INSIDE":        INSIDE,
	},
	FieldTypes:          []sql.FieldType{PointFieldType, CircleFieldType},
	SelectClauseTrigger: selectTrigger,
	SelectClauseParse:   selectParse,
	WhereClauseTrigger:  whereTrigger,
	WhereClauseParse:    whereParse,
	PredicateExecutors: map[string]registry.PredicateExecFunc{
		pointTag:  evalPointLiteral,
		circleTag: evalCircleLiteral,
		insideTag: isInside,
	},
	Executors: map[string]registry.ExecFunc{
		selectionTag: execSelection,
	},
	Init: func() {
		parser.RegisterPrefix(lexer.HASH, parsePointLiteral)
		parser.RegisterPrefix(lexer.LBRACE, parseCircleLiteral)
		parser.RegisterInfix(INSIDE, parser.COMPARE, parseInsideInfix)
		parser.RegisterSelectKeyword(SPATIALSELECT)
		parser.RegisterPostStatementHook("spatialselect", postStatementHook)
	},
}

func init() {
	registry.Register(pack)
}
