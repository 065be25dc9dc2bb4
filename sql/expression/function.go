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

package expression

import (
	"bytes"
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// Function is a named call, `name(args...)`. Whether it denotes a scalar
// UDF or an aggregate is determined by lookup in the owning Dataset's
// function/aggregate registries at resolve/compile time (SPEC_FULL.md
// §4.8) -- the IR node itself does not distinguish the two, matching the
// original's single Func AST node.
type Function struct {
	Name string
	Args []sql.Expression
}

// NewFunction builds a function-call expression.
func NewFunction(name string, args ...sql.Expression) *Function {
	return &Function{Name: name, Args: args}
}

func (f *Function) Children() []sql.Expression { return f.Args }

func (f *Function) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return &Function{Name: f.Name, Args: children}, nil
}

func (f *Function) CostFactor() float64 { return sql.DefaultCostFactor }

func (f *Function) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Function)
	return ok && f.Name == o.Name && equalAll(f.Args, o.Args, ignoreSchema)
}

func (f *Function) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s(", f.Name)
	for i, a := range f.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s", a)
	}
	buf.WriteByte(')')
	return buf.String()
}
