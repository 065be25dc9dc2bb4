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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
)

func numSchema() sql.Schema {
	return sql.NewSchema(
		sql.Field{Name: "a", Type: sql.Integer},
		sql.Field{Name: "b", Type: sql.Integer},
	)
}

func evalScalar(t *testing.T, e sql.Expression, schema sql.Schema, row sql.Row) interface{} {
	t.Helper()
	require := require.New(t)
	f, err := CompileScalar(e, schema, defaultCatalog())
	require.NoError(err)
	v, err := f(row, sql.NewEmptyContext())
	require.NoError(err)
	return v
}

func TestDivisionIsIntegerWhenBothOperandsAreIntegers(t *testing.T) {
	require := require.New(t)
	e := expression.NewArithmetic(expression.Div, expression.NewGetField("a"), expression.NewGetField("b"))
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(7), int64(2)))
	require.Equal(int64(3), v)
}

func TestDivisionIsFloatWhenEitherOperandIsFloat(t *testing.T) {
	require := require.New(t)
	e := expression.NewArithmetic(expression.Div, expression.NewGetField("a"), expression.NewGetField("b"))
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(7), float64(2)))
	require.InDelta(3.5, v, 0.0001)
}

func TestIntegerDivisionByZeroErrors(t *testing.T) {
	require := require.New(t)
	e := expression.NewArithmetic(expression.Div, expression.NewGetField("a"), expression.NewGetField("b"))
	f, err := CompileScalar(e, numSchema(), defaultCatalog())
	require.NoError(err)
	_, err = f(sql.NewRow(int64(7), int64(0)), sql.NewEmptyContext())
	require.Error(err)
}

func TestModIsAlwaysInteger(t *testing.T) {
	require := require.New(t)
	e := expression.NewArithmetic(expression.Mod, expression.NewGetField("a"), expression.NewGetField("b"))
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(7), int64(2)))
	require.Equal(int64(1), v)
}

func TestArithmeticPromotesToFloatWhenEitherOperandIsFloat(t *testing.T) {
	require := require.New(t)
	e := expression.NewArithmetic(expression.Add, expression.NewGetField("a"), expression.NewGetField("b"))
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(1), float64(2.5)))
	require.InDelta(3.5, v, 0.0001)
}

func TestComparisonEQ(t *testing.T) {
	require := require.New(t)
	e := expression.NewComparison(expression.EQ, expression.NewGetField("a"), expression.NewLiteral(int64(1), sql.Integer))
	require.Equal(true, evalScalar(t, e, numSchema(), sql.NewRow(int64(1), int64(2))))
	require.Equal(false, evalScalar(t, e, numSchema(), sql.NewRow(int64(2), int64(2))))
}

func TestComparisonNullPropagatesExceptIs(t *testing.T) {
	require := require.New(t)
	eq := expression.NewComparison(expression.EQ, expression.NewGetField("a"), expression.NewLiteral(int64(1), sql.Integer))
	require.Nil(evalScalar(t, eq, numSchema(), sql.NewRow(nil, int64(2))))

	is := expression.NewComparison(expression.Is, expression.NewGetField("a"), expression.Null)
	require.Equal(true, evalScalar(t, is, numSchema(), sql.NewRow(nil, int64(2))))
}

func TestLikeMatchesSQLWildcards(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "name", Type: sql.String})
	e := expression.NewComparison(expression.Like, expression.NewGetField("name"), expression.NewLiteral("al%", sql.String))
	require.Equal(true, evalScalar(t, e, schema, sql.NewRow("aladdin")))
	require.Equal(false, evalScalar(t, e, schema, sql.NewRow("zorro")))
}

func TestBetweenIsInclusive(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "a", Type: sql.Integer})
	e := expression.NewBetween(expression.NewGetField("a"), expression.NewLiteral(int64(1), sql.Integer), expression.NewLiteral(int64(5), sql.Integer))
	require.Equal(true, evalScalar(t, e, schema, sql.NewRow(int64(1))))
	require.Equal(true, evalScalar(t, e, schema, sql.NewRow(int64(5))))
	require.Equal(false, evalScalar(t, e, schema, sql.NewRow(int64(6))))
}

func TestInMatchesTupleMembership(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "a", Type: sql.Integer})
	tuple := expression.NewTuple(
		expression.NewLiteral(int64(1), sql.Integer),
		expression.NewLiteral(int64(2), sql.Integer),
	)
	e := expression.NewIn(expression.NewGetField("a"), tuple)
	require.Equal(true, evalScalar(t, e, schema, sql.NewRow(int64(2))))
	require.Equal(false, evalScalar(t, e, schema, sql.NewRow(int64(3))))
}

func TestCaseWhenReturnsFirstMatchingArm(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "a", Type: sql.Integer})
	whens := []expression.CaseWhen{
		{
			Cond:   expression.NewComparison(expression.LT, expression.NewGetField("a"), expression.NewLiteral(int64(0), sql.Integer)),
			Result: expression.NewLiteral("negative", sql.String),
		},
		{
			Cond:   expression.NewComparison(expression.EQ, expression.NewGetField("a"), expression.NewLiteral(int64(0), sql.Integer)),
			Result: expression.NewLiteral("zero", sql.String),
		},
	}
	e := expression.NewCase(whens, expression.NewLiteral("positive", sql.String))
	require.Equal("negative", evalScalar(t, e, schema, sql.NewRow(int64(-1))))
	require.Equal("zero", evalScalar(t, e, schema, sql.NewRow(int64(0))))
	require.Equal("positive", evalScalar(t, e, schema, sql.NewRow(int64(5))))
}

func TestCastConvertsToTargetType(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "a", Type: sql.String})
	e := expression.NewCast(expression.NewGetField("a"), sql.Integer)
	require.Equal(int64(42), evalScalar(t, e, schema, sql.NewRow("42")))
}

func TestDescNegatesNumericAndReversesStrings(t *testing.T) {
	require := require.New(t)
	intSchema := sql.NewSchema(sql.Field{Name: "a", Type: sql.Integer})
	d := expression.NewDesc(expression.NewGetField("a"))
	require.Equal(int64(-5), evalScalar(t, d, intSchema, sql.NewRow(int64(5))))

	strSchema := sql.NewSchema(sql.Field{Name: "a", Type: sql.String})
	ds := expression.NewDesc(expression.NewGetField("a"))
	require.Equal("cba", evalScalar(t, ds, strSchema, sql.NewRow("abc")))
}

func TestFunctionCallInvokesCatalogFunction(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "name", Type: sql.String})
	e := expression.NewFunction("upper", expression.NewGetField("name"))
	require.Equal("ALADDIN", evalScalar(t, e, schema, sql.NewRow("aladdin")))
}

func TestFunctionCallUnknownNameErrors(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "name", Type: sql.String})
	e := expression.NewFunction("nope", expression.NewGetField("name"))
	_, err := CompileScalar(e, schema, defaultCatalog())
	require.Error(err)
}

func TestAggregateCallOutsideGroupByErrors(t *testing.T) {
	require := require.New(t)
	schema := sql.NewSchema(sql.Field{Name: "a", Type: sql.Integer})
	e := expression.NewFunction("count", expression.NewGetField("a"))
	_, err := CompileScalar(e, schema, defaultCatalog())
	require.Error(err)
}

func TestStarMustBeExpandedBeforeCompilation(t *testing.T) {
	require := require.New(t)
	_, err := CompileScalar(expression.NewStar(""), numSchema(), defaultCatalog())
	require.Error(err)
}

func TestItemGetterIndexesCurrentRowByPosition(t *testing.T) {
	require := require.New(t)
	e := expression.NewItemGetter(expression.Row, 1)
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(7), int64(9)))
	require.Equal(int64(9), v)
}

func TestItemGetterIndexesATupleExpression(t *testing.T) {
	require := require.New(t)
	e := expression.NewItemGetter(expression.NewTuple(expression.NewGetField("a"), expression.NewGetField("b")), 0)
	v := evalScalar(t, e, numSchema(), sql.NewRow(int64(7), int64(9)))
	require.Equal(int64(7), v)
}

func TestItemGetterOutOfRangeErrors(t *testing.T) {
	require := require.New(t)
	e := expression.NewItemGetter(expression.Row, 5)
	f, err := CompileScalar(e, numSchema(), defaultCatalog())
	require.NoError(err)
	_, err = f(sql.NewRow(int64(7), int64(9)), sql.NewEmptyContext())
	require.Error(err)
}
