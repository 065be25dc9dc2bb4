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

package rowexec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/registry"
)

// ScalarFunc is a compiled, schema-bound scalar expression: calling it
// against a row from the schema it was compiled against produces that
// expression's value for the row. This is the Go counterpart of a compiled
// local.py VALUE_EXPR entry, which closes over the row's field positions
// the same way (there, via operator.itemgetter; here, via Var's resolved
// sql.Schema.FieldPosition lookup at compile time).
type ScalarFunc func(row sql.Row, ctx *sql.Context) (interface{}, error)

// CompileScalar compiles e against schema, binding every Var to a
// positional row index once instead of re-resolving the column name on
// every row.
func CompileScalar(e sql.Expression, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	switch ex := e.(type) {
	case *expression.Var:
		return compileVar(ex, schema)
	case *expression.ParamGetter:
		return compileParamGetter(ex)
	case *expression.Literal:
		return compileLiteral(ex)
	case *expression.Alias:
		return CompileScalar(ex.Expr, schema, cat)
	case *expression.UnaryMinus:
		return compileUnaryMinus(ex, schema, cat)
	case *expression.Not:
		return compileNot(ex, schema, cat)
	case *expression.And:
		return compileAnd(ex, schema, cat)
	case *expression.Or:
		return compileOr(ex, schema, cat)
	case *expression.Arithmetic:
		return compileArithmetic(ex, schema, cat)
	case *expression.Comparison:
		return compileComparison(ex, schema, cat)
	case *expression.Between:
		return compileBetween(ex, schema, cat)
	case *expression.In:
		return compileIn(ex, schema, cat)
	case *expression.Tuple:
		return compileTuple(ex, schema, cat)
	case *expression.ItemGetter:
		return compileItemGetter(ex, schema, cat)
	case *expression.Case:
		return compileCase(ex, schema, cat)
	case *expression.Cast:
		return compileCast(ex, schema, cat)
	case *expression.Function:
		return compileFunction(ex, schema, cat)
	case *expression.Asc:
		return CompileScalar(ex.Expr, schema, cat)
	case *expression.Desc:
		return compileDesc(ex, schema, cat)
	case *expression.Star:
		return nil, fmt.Errorf("rowexec: %s must be expanded before compilation", ex)
	default:
		if e == expression.Null {
			return func(sql.Row, *sql.Context) (interface{}, error) { return nil, nil }, nil
		}
		if e == expression.Row {
			return compileRow(), nil
		}
		if ext, ok := e.(sql.ExtendedExpression); ok {
			return compileExtendedExpression(ext, schema, cat)
		}
		return nil, ErrUnsupportedExpression.New(e)
	}
}

// compileRow compiles expression.Row, the bare `$k`'s implicit receiver:
// it hands back the current row itself (converted to an unnamed
// []interface{} so compileItemGetter's own type switch on its child's
// value recognizes it, since sql.Row is a distinct named type).
func compileRow() ScalarFunc {
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		return []interface{}(row), nil
	}
}

func compileVar(v *expression.Var, schema sql.Schema) (ScalarFunc, error) {
	pos, err := schema.FieldPosition(v.Path)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		return row[pos], nil
	}, nil
}

func compileParamGetter(p *expression.ParamGetter) (ScalarFunc, error) {
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		return ctx.Param(p.Index)
	}, nil
}

func compileLiteral(l *expression.Literal) (ScalarFunc, error) {
	v := l.Value
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		return v, nil
	}, nil
}

func compileUnaryMinus(u *expression.UnaryMinus, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	operand, err := CompileScalar(u.Operand, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := operand(row, ctx)
		if err != nil || expression.IsNull(v) {
			return nil, err
		}
		if f, ok := v.(float64); ok {
			return -f, nil
		}
		i, err := cast.ToInt64E(v)
		if err != nil {
			return nil, err
		}
		return -i, nil
	}, nil
}

func compileNot(n *expression.Not, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	operand, err := CompileScalar(n.Operand, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := operand(row, ctx)
		if err != nil || expression.IsNull(v) {
			return nil, err
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, err
		}
		return !b, nil
	}, nil
}

func compileAnd(a *expression.And, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	left, err := CompileScalar(a.Left, schema, cat)
	if err != nil {
		return nil, err
	}
	right, err := CompileScalar(a.Right, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		lv, err := left(row, ctx)
		if err != nil {
			return nil, err
		}
		if !expression.IsNull(lv) {
			lb, err := cast.ToBoolE(lv)
			if err != nil {
				return nil, err
			}
			if !lb {
				return false, nil
			}
		}
		rv, err := right(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(lv) || expression.IsNull(rv) {
			return nil, nil
		}
		return cast.ToBoolE(rv)
	}, nil
}

func compileOr(o *expression.Or, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	left, err := CompileScalar(o.Left, schema, cat)
	if err != nil {
		return nil, err
	}
	right, err := CompileScalar(o.Right, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		lv, err := left(row, ctx)
		if err != nil {
			return nil, err
		}
		if !expression.IsNull(lv) {
			lb, err := cast.ToBoolE(lv)
			if err != nil {
				return nil, err
			}
			if lb {
				return true, nil
			}
		}
		rv, err := right(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(lv) || expression.IsNull(rv) {
			return nil, nil
		}
		return cast.ToBoolE(rv)
	}, nil
}

// arithValue coerces v into either a float64 or an int64, the Go
// counterpart of field_from_binary's type-coercion check -- except this
// dispatches on the runtime value of each operand rather than a static
// schema type, so mixed int/float columns still combine correctly.
func arithValue(v interface{}) (f float64, isFloat bool, i int64, err error) {
	switch n := v.(type) {
	case float64:
		return n, true, 0, nil
	case float32:
		return float64(n), true, 0, nil
	default:
		i, err = cast.ToInt64E(v)
		return 0, false, i, err
	}
}

func compileArithmetic(a *expression.Arithmetic, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	left, err := CompileScalar(a.Left, schema, cat)
	if err != nil {
		return nil, err
	}
	right, err := CompileScalar(a.Right, schema, cat)
	if err != nil {
		return nil, err
	}
	op := a.Op
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		lv, err := left(row, ctx)
		if err != nil {
			return nil, err
		}
		rv, err := right(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(lv) || expression.IsNull(rv) {
			return nil, nil
		}

		// Division is integer when both operands are integers, floating
		// otherwise (spec.md §4.2 scalar compilation), the Go counterpart
		// of the original's old_div shim minus its Python2-specific
		// plumbing: dispatch on the runtime type of each evaluated operand
		// rather than a static schema type.
		if op == expression.Div {
			lf, lIsFloat, li, err := arithValue(lv)
			if err != nil {
				return nil, err
			}
			rf, rIsFloat, ri, err := arithValue(rv)
			if err != nil {
				return nil, err
			}
			if lIsFloat || rIsFloat {
				if !lIsFloat {
					lf = float64(li)
				}
				if !rIsFloat {
					rf = float64(ri)
				}
				return lf / rf, nil
			}
			if ri == 0 {
				return nil, fmt.Errorf("rowexec: division by zero")
			}
			return li / ri, nil
		}
		if op == expression.Mod {
			li, err := cast.ToInt64E(lv)
			if err != nil {
				return nil, err
			}
			ri, err := cast.ToInt64E(rv)
			if err != nil {
				return nil, err
			}
			return li % ri, nil
		}

		lf, lIsFloat, li, err := arithValue(lv)
		if err != nil {
			return nil, err
		}
		rf, rIsFloat, ri, err := arithValue(rv)
		if err != nil {
			return nil, err
		}
		if lIsFloat || rIsFloat {
			if !lIsFloat {
				lf = float64(li)
			}
			if !rIsFloat {
				rf = float64(ri)
			}
			switch op {
			case expression.Add:
				return lf + rf, nil
			case expression.Sub:
				return lf - rf, nil
			case expression.Mul:
				return lf * rf, nil
			}
			return nil, fmt.Errorf("rowexec: unknown arithmetic operator %q", op)
		}
		switch op {
		case expression.Add:
			return li + ri, nil
		case expression.Sub:
			return li - ri, nil
		case expression.Mul:
			return li * ri, nil
		}
		return nil, fmt.Errorf("rowexec: unknown arithmetic operator %q", op)
	}, nil
}

// compareValues orders a and b, coercing both to float64 when either
// operand is numeric-looking and falling back to string comparison
// otherwise, mirroring the original's duck-typed `<`/`>` across VALUE_EXPR.
func compareValues(a, b interface{}) (int, error) {
	af, aErr := cast.ToFloat64E(a)
	bf, bErr := cast.ToFloat64E(b)
	if aErr == nil && bErr == nil {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	as, err := cast.ToStringE(a)
	if err != nil {
		return 0, err
	}
	bs, err := cast.ToStringE(b)
	if err != nil {
		return 0, err
	}
	return strings.Compare(as, bs), nil
}

func compileComparison(c *expression.Comparison, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	left, err := CompileScalar(c.Left, schema, cat)
	if err != nil {
		return nil, err
	}
	right, err := CompileScalar(c.Right, schema, cat)
	if err != nil {
		return nil, err
	}
	op := c.Op

	evalNullAware := func(row sql.Row, ctx *sql.Context, f func(lv, rv interface{}) (interface{}, error)) (interface{}, error) {
		lv, err := left(row, ctx)
		if err != nil {
			return nil, err
		}
		rv, err := right(row, ctx)
		if err != nil {
			return nil, err
		}
		if op != expression.Is && op != expression.IsNot && (expression.IsNull(lv) || expression.IsNull(rv)) {
			return nil, nil
		}
		return f(lv, rv)
	}

	switch op {
	case expression.Is:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				return expression.IsNull(lv) == expression.IsNull(rv) && valuesEqual(lv, rv), nil
			})
		}, nil
	case expression.IsNot:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				return !(expression.IsNull(lv) == expression.IsNull(rv) && valuesEqual(lv, rv)), nil
			})
		}, nil
	case expression.EQ:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				return valuesEqual(lv, rv), nil
			})
		}, nil
	case expression.NEQ:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				return !valuesEqual(lv, rv), nil
			})
		}, nil
	case expression.LT, expression.LTE, expression.GT, expression.GTE:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				cmp, err := compareValues(lv, rv)
				if err != nil {
					return nil, err
				}
				switch op {
				case expression.LT:
					return cmp < 0, nil
				case expression.LTE:
					return cmp <= 0, nil
				case expression.GT:
					return cmp > 0, nil
				default:
					return cmp >= 0, nil
				}
			})
		}, nil
	case expression.Like, expression.NotLike:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				matched, err := likeMatch(lv, rv)
				if err != nil {
					return nil, err
				}
				if op == expression.NotLike {
					return !matched, nil
				}
				return matched, nil
			})
		}, nil
	case expression.RLike, expression.NotRLike, expression.Regexp:
		return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
			return evalNullAware(row, ctx, func(lv, rv interface{}) (interface{}, error) {
				s, err := cast.ToStringE(lv)
				if err != nil {
					return nil, err
				}
				pattern, err := cast.ToStringE(rv)
				if err != nil {
					return nil, err
				}
				re, err := regexp.Compile(pattern)
				if err != nil {
					return nil, err
				}
				matched := re.MatchString(s)
				if op == expression.NotRLike {
					return !matched, nil
				}
				return matched, nil
			})
		}, nil
	}
	return nil, fmt.Errorf("rowexec: unknown comparison operator %q", op)
}

func valuesEqual(a, b interface{}) bool {
	if af, err := cast.ToFloat64E(a); err == nil {
		if bf, err := cast.ToFloat64E(b); err == nil {
			return af == bf
		}
	}
	as, aErr := cast.ToStringE(a)
	bs, bErr := cast.ToStringE(b)
	return aErr == nil && bErr == nil && as == bs
}

// likeMatch implements SQL LIKE (`%` any run, `_` any single char) by
// translating the pattern to a regexp, the common idiomatic-Go approach
// (there is no stdlib glob-to-SQL-LIKE helper).
func likeMatch(value, pattern interface{}) (bool, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return false, err
	}
	p, err := cast.ToStringE(pattern)
	if err != nil {
		return false, err
	}
	var buf strings.Builder
	buf.WriteByte('^')
	for _, r := range p {
		switch r {
		case '%':
			buf.WriteString(".*")
		case '_':
			buf.WriteString(".")
		default:
			buf.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	buf.WriteByte('$')
	re, err := regexp.Compile("(?is)" + buf.String())
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

func compileBetween(b *expression.Between, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	expr, err := CompileScalar(b.Expr, schema, cat)
	if err != nil {
		return nil, err
	}
	lower, err := CompileScalar(b.Lower, schema, cat)
	if err != nil {
		return nil, err
	}
	upper, err := CompileScalar(b.Upper, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := expr(row, ctx)
		if err != nil {
			return nil, err
		}
		lv, err := lower(row, ctx)
		if err != nil {
			return nil, err
		}
		uv, err := upper(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(v) || expression.IsNull(lv) || expression.IsNull(uv) {
			return nil, nil
		}
		loCmp, err := compareValues(v, lv)
		if err != nil {
			return nil, err
		}
		hiCmp, err := compareValues(v, uv)
		if err != nil {
			return nil, err
		}
		return loCmp >= 0 && hiCmp <= 0, nil
	}, nil
}

func compileIn(in *expression.In, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	expr, err := CompileScalar(in.Expr, schema, cat)
	if err != nil {
		return nil, err
	}
	list, err := CompileScalar(in.List, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := expr(row, ctx)
		if err != nil {
			return nil, err
		}
		lv, err := list(row, ctx)
		if err != nil {
			return nil, err
		}
		if expression.IsNull(v) {
			return nil, nil
		}
		elems, ok := lv.([]interface{})
		if !ok {
			return nil, fmt.Errorf("rowexec: IN list did not evaluate to a tuple, got %T", lv)
		}
		for _, e := range elems {
			if !expression.IsNull(e) && valuesEqual(v, e) {
				return true, nil
			}
		}
		return false, nil
	}, nil
}

func compileTuple(t *expression.Tuple, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	elemFuncs := make([]ScalarFunc, len(t.Elems))
	for i, e := range t.Elems {
		f, err := CompileScalar(e, schema, cat)
		if err != nil {
			return nil, err
		}
		elemFuncs[i] = f
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		out := make([]interface{}, len(elemFuncs))
		for i, f := range elemFuncs {
			v, err := f(row, ctx)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}, nil
}

func compileItemGetter(g *expression.ItemGetter, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	inner, err := CompileScalar(g.Expr, schema, cat)
	if err != nil {
		return nil, err
	}
	key := g.Key
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := inner(row, ctx)
		if err != nil || expression.IsNull(v) {
			return nil, err
		}
		switch k := key.(type) {
		case int:
			elems, ok := v.([]interface{})
			if !ok || k < 0 || k >= len(elems) {
				return nil, fmt.Errorf("rowexec: item index %v out of range", key)
			}
			return elems[k], nil
		default:
			m, ok := v.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("rowexec: cannot index %T by %v", v, key)
			}
			return m[fmt.Sprint(k)], nil
		}
	}, nil
}

func compileCase(c *expression.Case, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	type arm struct {
		cond, result ScalarFunc
	}
	arms := make([]arm, len(c.Whens))
	for i, w := range c.Whens {
		cond, err := CompileScalar(w.Cond, schema, cat)
		if err != nil {
			return nil, err
		}
		result, err := CompileScalar(w.Result, schema, cat)
		if err != nil {
			return nil, err
		}
		arms[i] = arm{cond, result}
	}
	var els ScalarFunc
	if c.Else != nil {
		f, err := CompileScalar(c.Else, schema, cat)
		if err != nil {
			return nil, err
		}
		els = f
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		for _, a := range arms {
			cv, err := a.cond(row, ctx)
			if err != nil {
				return nil, err
			}
			if expression.IsNull(cv) {
				continue
			}
			b, err := cast.ToBoolE(cv)
			if err != nil {
				return nil, err
			}
			if b {
				return a.result(row, ctx)
			}
		}
		if els != nil {
			return els(row, ctx)
		}
		return nil, nil
	}, nil
}

func compileCast(c *expression.Cast, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	inner, err := CompileScalar(c.Expr, schema, cat)
	if err != nil {
		return nil, err
	}
	target := c.TargetType
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := inner(row, ctx)
		if err != nil || expression.IsNull(v) {
			return nil, err
		}
		switch target {
		case sql.Integer:
			return cast.ToInt64E(v)
		case sql.Float:
			return cast.ToFloat64E(v)
		case sql.String:
			return cast.ToStringE(v)
		case sql.Boolean:
			return cast.ToBoolE(v)
		default:
			return nil, fmt.Errorf("rowexec: unsupported CAST target type %q", target)
		}
	}, nil
}

func compileFunction(f *expression.Function, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	fn, ok := cat.Function(f.Name)
	if !ok {
		if _, isAgg := cat.Aggregate(f.Name); isAgg {
			return nil, fmt.Errorf("rowexec: %s is an aggregate and must appear under GROUP BY", f.Name)
		}
		return nil, ErrUnknownFunction.New(f.Name)
	}
	argFuncs := make([]ScalarFunc, len(f.Args))
	for i, a := range f.Args {
		af, err := CompileScalar(a, schema, cat)
		if err != nil {
			return nil, err
		}
		argFuncs[i] = af
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		args := make([]interface{}, len(argFuncs))
		for i, af := range argFuncs {
			v, err := af(row, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return fn(args)
	}, nil
}

// compileDesc evaluates its operand and negates it for sort purposes,
// dispatching on the evaluated Go value's runtime type rather than static
// schema type information: numeric values negate arithmetically, strings
// reverse byte-wise (so a byte-wise ascending comparison on the reversed
// string sorts the original descending), and anything else returns the
// value itself unmodified as a best-effort constant key.
func compileDesc(d *expression.Desc, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	inner, err := CompileScalar(d.Expr, schema, cat)
	if err != nil {
		return nil, err
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		v, err := inner(row, ctx)
		if err != nil || expression.IsNull(v) {
			return v, err
		}
		switch n := v.(type) {
		case int64:
			return -n, nil
		case int:
			return -n, nil
		case float64:
			return -n, nil
		case float32:
			return -n, nil
		case string:
			return reverseString(n), nil
		default:
			return v, nil
		}
	}, nil
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// compileExtendedExpression dispatches to a syntax pack's registered
// PredicateExecFunc for an expression type sql/rowexec has no built-in
// compiler for (e.g. simselect's vector-distance operator, spatialselect's
// point-in-circle test). Its children are compiled and evaluated the same
// way compileFunction handles a Function's arguments, so the pack's
// PredicateExecFunc receives plain values instead of having to resolve a
// schema itself.
func compileExtendedExpression(e sql.ExtendedExpression, schema sql.Schema, cat Catalog) (ScalarFunc, error) {
	exec, ok := registry.PredicateExecutor(e.ExtensionTag())
	if !ok {
		return nil, registry.ErrUnknownExtension(e.ExtensionTag())
	}
	children := e.Children()
	argFuncs := make([]ScalarFunc, len(children))
	for i, c := range children {
		cf, err := CompileScalar(c, schema, cat)
		if err != nil {
			return nil, err
		}
		argFuncs[i] = cf
	}
	return func(row sql.Row, ctx *sql.Context) (interface{}, error) {
		args := make([]interface{}, len(argFuncs))
		for i, af := range argFuncs {
			v, err := af(row, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return exec(ctx, e, args)
	}, nil
}
