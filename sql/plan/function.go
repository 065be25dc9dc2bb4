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

package plan

import (
	"bytes"
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// FunctionOp is a table-valued function reference in a FROM clause (e.g. an
// extension-registered generator), as distinct from expression.Function's
// scalar/aggregate use in a select list or predicate. It is a leaf from the
// Node tree's point of view: Args are scalar expressions resolved against
// the *outer* query's parameters, never against a child relation.
type FunctionOp struct {
	FuncName string
	Args     []sql.Expression
	sch      sql.Schema
	hasSch   bool
}

// NewFunctionOp builds an unresolved table-valued function call.
func NewFunctionOp(name string, args ...sql.Expression) *FunctionOp {
	return &FunctionOp{FuncName: name, Args: args}
}

func (f *FunctionOp) Name() string         { return f.FuncName }
func (f *FunctionOp) Children() []sql.Node { return nil }

func (f *FunctionOp) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, wrongChildren("FunctionOp", 0, len(children))
	}
	cp := *f
	return &cp, nil
}

// WithSchema attaches the resolved output schema, looked up from the
// function's registration in the dataset.
func (f *FunctionOp) WithSchema(s sql.Schema) *FunctionOp {
	cp := *f
	cp.sch, cp.hasSch = s, true
	return &cp
}

func (f *FunctionOp) Resolved() bool      { return f.hasSch }
func (f *FunctionOp) Schema() sql.Schema  { return f.sch }
func (f *FunctionOp) CostFactor() float64 { return sql.DefaultCostFactor }

func (f *FunctionOp) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "FunctionOp(%s, [", f.FuncName)
	for i, a := range f.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", a)
	}
	buf.WriteString("])")
	return buf.String()
}
