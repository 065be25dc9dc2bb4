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

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/registry"
)

func TestRegisterAddsFieldTypeAndIsIdempotent(t *testing.T) {
	require := require.New(t)
	r := registry.New()

	pack := &registry.Pack{
		Name:       "vectorpack",
		FieldTypes: []sql.FieldType{"VECTOR"},
	}
	r.Register(pack)
	require.Contains(r.FieldTypes(), sql.FieldType("VECTOR"))
	require.Equal([]string{"vectorpack"}, r.Registered())

	// Re-registering under the same name is a no-op, not a duplicate entry.
	r.Register(&registry.Pack{Name: "vectorpack", FieldTypes: []sql.FieldType{"VECTOR2"}})
	require.Equal([]string{"vectorpack"}, r.Registered())
	require.NotContains(r.FieldTypes(), sql.FieldType("VECTOR2"))
}

func TestRegisterWiresKeywordIntoLexer(t *testing.T) {
	require := require.New(t)
	r := registry.New()
	r.Register(&registry.Pack{
		Name:     "simselect-ish",
		Keywords: map[string]lexer.Type{"SIMSELECT": lexer.Type("SIMSELECT")},
	})
	require.Equal(lexer.Type("SIMSELECT"), lexer.LookupIdent("SIMSELECT"))
}

func TestResolverExecutorPredicateExecutorLookup(t *testing.T) {
	require := require.New(t)
	r := registry.New()

	r.Register(&registry.Pack{
		Name: "testpack",
		Resolvers: map[string]registry.ResolveFunc{
			"tag.a": func(node sql.ExtendedNode, childSchema sql.Schema) (sql.Schema, error) {
				return childSchema, nil
			},
		},
		Executors: map[string]registry.ExecFunc{
			"tag.a": func(ctx *sql.Context, node sql.ExtendedNode, child sql.RowIter) (sql.RowIter, error) {
				return child, nil
			},
		},
		PredicateExecutors: map[string]registry.PredicateExecFunc{
			"tag.a": func(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error) {
				return true, nil
			},
		},
	})

	_, ok := r.Resolver("tag.a")
	require.True(ok)
	_, ok = r.Executor("tag.a")
	require.True(ok)
	_, ok = r.PredicateExecutor("tag.a")
	require.True(ok)

	_, ok = r.Resolver("tag.unknown")
	require.False(ok)
}

func TestInitRunsExactlyOnce(t *testing.T) {
	require := require.New(t)
	r := registry.New()
	calls := 0
	r.Register(&registry.Pack{Name: "initpack", Init: func() { calls++ }})
	r.Register(&registry.Pack{Name: "initpack", Init: func() { calls++ }})
	require.Equal(1, calls)
}
