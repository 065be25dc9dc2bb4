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

package dataset

import (
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/resolver"
	"github.com/wyfunique/dbsim/sql/rowexec"
)

// resolverCatalog and rowexecCatalog both front the same Dataset, split
// into two thin views because resolver.Catalog and rowexec.Catalog each
// declare a Function method with a different return type (a
// resolver.FunctionSignature versus a bound rowexec.Func) -- Go has no
// structural way for one type to implement both simultaneously, unlike the
// original's single DataSet duck-typing its way through both resolve-time
// and execute-time lookups.

type resolverCatalog struct {
	ds *Dataset
}

func (c resolverCatalog) Relation(name string) (sql.Schema, sql.RowIter, error) {
	return c.ds.relationFor(name)
}

// TableFunction resolves a table-valued function reference in a FROM
// clause. Dataset's registration surface (§6) has no call for registering
// one, so every name here is simply unknown; the hook exists because
// resolver.Catalog requires it and sql/plan.FunctionOp is part of the IR.
func (c resolverCatalog) TableFunction(name string, args []sql.Expression) (sql.Schema, sql.RowIter, error) {
	return sql.Schema{}, nil, sql.ErrRelationNotFound.New(name)
}

func (c resolverCatalog) Function(name string) (resolver.FunctionSignature, bool) {
	c.ds.mu.RLock()
	defer c.ds.mu.RUnlock()
	sig, ok := c.ds.signatures[name]
	return sig, ok
}

type rowexecCatalog struct {
	ds *Dataset
}

func (c rowexecCatalog) Function(name string) (rowexec.Func, bool) {
	c.ds.mu.RLock()
	defer c.ds.mu.RUnlock()
	f, ok := c.ds.funcs[name]
	return f, ok
}

func (c rowexecCatalog) Aggregate(name string) (rowexec.Aggregate, bool) {
	c.ds.mu.RLock()
	defer c.ds.mu.RUnlock()
	a, ok := c.ds.aggs[name]
	return a, ok
}
