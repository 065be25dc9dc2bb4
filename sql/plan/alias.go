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
	"fmt"

	"github.com/wyfunique/dbsim/sql"
)

// AliasOp is `Child AS Name` in a FROM clause: it re-stamps every field of
// Child's schema with Name as its SchemaName, so that later `name.col`
// references resolve against the alias rather than the underlying relation.
type AliasOp struct {
	UnaryNode
	AliasName string
}

// NewAlias builds a relation-alias node.
func NewAlias(name string, child sql.Node) *AliasOp {
	return &AliasOp{UnaryNode: UnaryNode{Child: child}, AliasName: name}
}

func (a *AliasOp) Name() string { return a.AliasName }

func (a *AliasOp) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("AliasOp", 1, len(children))
	}
	cp := *a
	cp.Child = children[0]
	return &cp, nil
}

func (a *AliasOp) Resolved() bool { return a.UnaryNode.Resolved() }

func (a *AliasOp) Schema() sql.Schema {
	return a.Child.Schema().WithSchemaName(a.AliasName)
}

func (a *AliasOp) CostFactor() float64 { return sql.TinyCostFactor }
func (a *AliasOp) String() string      { return fmt.Sprintf("AliasOp(%s)", a.AliasName) }
