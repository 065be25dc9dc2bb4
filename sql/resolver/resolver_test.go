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

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
	"github.com/wyfunique/dbsim/sql/resolver"
)

// stubCatalog resolves a fixed set of named relations/functions, enough to
// exercise the resolver without pulling in the dataset package.
type stubCatalog struct {
	relations map[string]sql.Schema
	functions map[string]resolver.FunctionSignature
}

func (c *stubCatalog) Relation(name string) (sql.Schema, sql.RowIter, error) {
	sch, ok := c.relations[name]
	if !ok {
		return sql.Schema{}, nil, sql.ErrRelationNotFound.New(name)
	}
	return sch, sql.NewSliceRowIter(nil), nil
}

func (c *stubCatalog) TableFunction(name string, args []sql.Expression) (sql.Schema, sql.RowIter, error) {
	return sql.Schema{}, sql.NewSliceRowIter(nil), nil
}

func (c *stubCatalog) Function(name string) (resolver.FunctionSignature, bool) {
	sig, ok := c.functions[name]
	return sig, ok
}

func animalsCatalog() *stubCatalog {
	return &stubCatalog{
		relations: map[string]sql.Schema{
			"animals": sql.NewSchema(
				sql.Field{Name: "id", Type: sql.Integer, SchemaName: "animals"},
				sql.Field{Name: "name", Type: sql.String, SchemaName: "animals"},
			),
		},
		functions: map[string]resolver.FunctionSignature{
			"COUNT": {ReturnType: sql.Integer, Aggregate: true},
		},
	}
}

func TestResolveLoadOpBecomesRelation(t *testing.T) {
	require := require.New(t)
	node, err := resolver.Resolve(plan.NewLoad("animals"), animalsCatalog())
	require.NoError(err)
	rel, ok := node.(*plan.Relation)
	require.True(ok)
	require.True(rel.Resolved())
	require.Equal(2, rel.Schema().Len())
}

func TestResolveUnknownRelationFails(t *testing.T) {
	require := require.New(t)
	_, err := resolver.Resolve(plan.NewLoad("nope"), animalsCatalog())
	require.Error(err)
	require.True(sql.ErrRelationNotFound.Is(err))
}

func TestResolveProjectionDerivesFieldsFromChildSchema(t *testing.T) {
	require := require.New(t)
	exprs := []sql.Expression{
		expression.NewGetField("animals.name"),
		expression.NewAlias("doubled_id", expression.NewArithmetic(expression.Add,
			expression.NewGetField("animals.id"), expression.NewGetField("animals.id"))),
	}
	node, err := resolver.Resolve(plan.NewProjection(exprs, plan.NewLoad("animals")), animalsCatalog())
	require.NoError(err)
	proj, ok := node.(*plan.Projection)
	require.True(ok)
	require.True(proj.Resolved())
	require.Equal(2, proj.Schema().Len())
	require.Equal("name", proj.Schema().At(0).Name)
	require.Equal(sql.String, proj.Schema().At(0).Type)
	require.Equal("doubled_id", proj.Schema().At(1).Name)
	require.Equal(sql.Integer, proj.Schema().At(1).Type)
}

func TestResolveProjectionExpandsStar(t *testing.T) {
	require := require.New(t)
	exprs := []sql.Expression{expression.NewStar("")}
	node, err := resolver.Resolve(plan.NewProjection(exprs, plan.NewLoad("animals")), animalsCatalog())
	require.NoError(err)
	proj := node.(*plan.Projection)
	require.Equal(2, proj.Schema().Len())
}

func TestResolveProjectionRejectsMismatchedArithmeticTypes(t *testing.T) {
	require := require.New(t)
	exprs := []sql.Expression{
		expression.NewArithmetic(expression.Add,
			expression.NewGetField("animals.id"), expression.NewGetField("animals.name")),
	}
	_, err := resolver.Resolve(plan.NewProjection(exprs, plan.NewLoad("animals")), animalsCatalog())
	require.Error(err)
	require.True(sql.ErrTypeCoercion.Is(err))
}

func TestResolveGroupBySchemaIsKeysThenAggregates(t *testing.T) {
	require := require.New(t)
	keys := []sql.Expression{expression.NewGetField("animals.name")}
	aggs := []sql.Expression{expression.NewAlias("total", expression.NewFunction("COUNT"))}
	node, err := resolver.Resolve(plan.NewGroupBy(keys, aggs, plan.NewLoad("animals")), animalsCatalog())
	require.NoError(err)
	gb := node.(*plan.GroupBy)
	require.Equal(2, gb.Schema().Len())
	require.Equal("name", gb.Schema().At(0).Name)
	require.Equal("total", gb.Schema().At(1).Name)
	require.Equal(sql.Integer, gb.Schema().At(1).Type)
}

func TestResolveUnionAllValidatesSchemaCompatibility(t *testing.T) {
	require := require.New(t)
	left := plan.NewProjection([]sql.Expression{expression.NewGetField("animals.name")}, plan.NewLoad("animals"))
	right := plan.NewProjection([]sql.Expression{expression.NewGetField("animals.name")}, plan.NewLoad("animals"))
	_, err := resolver.Resolve(plan.NewUnionAll(left, right), animalsCatalog())
	require.NoError(err)
}

func TestResolveUnionAllRejectsFieldCountMismatch(t *testing.T) {
	require := require.New(t)
	left := plan.NewProjection([]sql.Expression{expression.NewGetField("animals.name")}, plan.NewLoad("animals"))
	right := plan.NewProjection([]sql.Expression{expression.NewStar("")}, plan.NewLoad("animals"))
	_, err := resolver.Resolve(plan.NewUnionAll(left, right), animalsCatalog())
	require.Error(err)
	require.True(sql.ErrUnionSchemaMismatch.Is(err))
}

func TestResolveSelectionSchemaPassesThroughChild(t *testing.T) {
	require := require.New(t)
	pred := expression.NewComparison(expression.EQ,
		expression.NewGetField("animals.name"), expression.NewLiteral("capybara", sql.String))
	node, err := resolver.Resolve(plan.NewSelection(pred, plan.NewLoad("animals")), animalsCatalog())
	require.NoError(err)
	sel := node.(*plan.Selection)
	require.Equal(2, sel.Schema().Len())
	require.True(sel.Resolved())
}
