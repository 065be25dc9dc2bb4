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

package simselect

import (
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/parser"
	"github.com/wyfunique/dbsim/sql/plan"
	"github.com/wyfunique/dbsim/sql/registry"
)

// New reserved words this pack contributes: SIMSELECT as an alternate
// statement-leading keyword, TO as the vector-distance infix operator.
const (
	SIMSELECT lexer.Type = "SIMSELECT"
	TO        lexer.Type = "TO"
)

// toSeenKey is the Parser.scratch key this pack sets once it has seen TO
// appear in either the SELECT item list or the WHERE predicate of the
// current statement -- the two places trigger_simselect_where's lookahead
// in the original can't see a TO buried arbitrarily deep from, so detection
// happens where each clause is actually parsed instead.
const toSeenKey = "simselect.to_seen"

// parseVectorLiteral is the prefix (nud) parser for `[`, reading a
// comma-separated run of numeric constants up to the matching `]`.
func parseVectorLiteral(p *parser.Parser) (sql.Expression, error) {
	p.Advance() // consume '['
	var values []float64
	if !p.CurIs(lexer.RBRACKET) {
		elems, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		for _, e := range elems {
			f, ok := floatOf(e)
			if !ok {
				return nil, parser.SyntaxError("vector literal elements must be numeric constants")
			}
			values = append(values, f)
		}
	}
	if err := p.Expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return NewVector(values), nil
}

// floatOf reduces a parsed numeric constant (an int/float Literal, or a
// UnaryMinus wrapping one) to its float64 value, rejecting anything that
// isn't a plain constant -- a vector literal's elements in the original
// are always numeric literals too, never arbitrary expressions.
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

// parseToInfix is the infix (led) parser for TO, binding at PRODUCT
// precedence -- the same ladder rung arithmetic's `*`/`/` occupy, since TO
// is, like them, a value-producing operator rather than a comparison.
func parseToInfix(p *parser.Parser, left sql.Expression) (sql.Expression, error) {
	p.Advance() // consume TO
	right, err := p.ParseExpression(parser.PRODUCT)
	if err != nil {
		return nil, err
	}
	return NewToOp(left, right), nil
}

// selectTrigger fires whenever the current statement was introduced by
// SIMSELECT, regardless of whether TO has been seen yet -- the select-item
// grammar itself is identical to the default, this hook exists purely to
// record whether TO turns up among the select items.
func selectTrigger(p *parser.Parser) bool {
	return p.LeadingKeyword().Type == SIMSELECT
}

func selectParse(p *parser.Parser) ([]sql.Expression, error) {
	exprs, err := p.ParseSelectItems()
	if err != nil {
		return nil, err
	}
	for _, e := range exprs {
		if expression.ContainsTag(e, toTag) {
			p.Set(toSeenKey, true)
			break
		}
	}
	return exprs, nil
}

// whereTrigger reports whether the upcoming WHERE predicate contains TO
// anywhere in its tree. A TriggerFunc only gets two tokens of lookahead
// (Cur/Peek), nowhere near enough to see a TO that might be nested many
// levels deep, so this runs a throwaway trial parse on a Parser.Clone and
// inspects the result instead of guessing from the leading tokens.
func whereTrigger(p *parser.Parser) bool {
	trial := p.Clone()
	pred, err := trial.ParseExpression(parser.LOWEST)
	if err != nil {
		return false
	}
	return expression.ContainsTag(pred, toTag)
}

// whereParse re-parses the predicate for real (the trigger's parse was on
// a throwaway clone) and wraps source in a simselect-tagged
// ExtensionSelection -- schema-wise indistinguishable from a plain
// Selection, but recognizable to sql/rules' extension-swap rule and to
// this pack's own Executor.
func whereParse(p *parser.Parser, source sql.Node) (sql.Node, error) {
	pred, err := p.ParseExpression(parser.LOWEST)
	if err != nil {
		return nil, err
	}
	p.Set(toSeenKey, true)
	return plan.NewExtensionSelection(selectionTag, pred, source), nil
}

// postStatementHook enforces sim_select_syntax.py's validation rule: a
// statement led by SIMSELECT must use TO somewhere, in its select list or
// its WHERE clause, or the statement is malformed extended syntax.
func postStatementHook(p *parser.Parser, node sql.Node) (sql.Node, error) {
	if p.LeadingKeyword().Type != SIMSELECT {
		return node, nil
	}
	if _, seen := p.Get(toSeenKey); !seen {
		return nil, parser.SyntaxError("SIMSELECT requires TO to appear in the SELECT list or WHERE clause")
	}
	return node, nil
}

var pack = &registry.Pack{
	Name: "simselect",
	Keywords: map[string]lexer.Type{
		"SIMSELECT": SIMSELECT,
		"TO":        TO,
	},
	FieldTypes:          []sql.FieldType{VectorFieldType},
	SelectClauseTrigger: selectTrigger,
	SelectClauseParse:   selectParse,
	WhereClauseTrigger:  whereTrigger,
	WhereClauseParse:    whereParse,
	PredicateExecutors: map[string]registry.PredicateExecFunc{
		vectorTag: evalVectorLiteral,
		toTag:     euclideanDistance,
	},
	Executors: map[string]registry.ExecFunc{
		selectionTag: execSelection,
	},
	Init: func() {
		parser.RegisterPrefix(lexer.LBRACKET, parseVectorLiteral)
		parser.RegisterInfix(TO, parser.PRODUCT, parseToInfix)
		parser.RegisterSelectKeyword(SIMSELECT)
		parser.RegisterPostStatementHook("simselect", postStatementHook)
	},
}

func init() {
	registry.Register(pack)
}
