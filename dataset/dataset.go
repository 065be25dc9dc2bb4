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
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/parser"
	"github.com/wyfunique/dbsim/sql/resolver"
	"github.com/wyfunique/dbsim/sql/rowexec"
	"github.com/wyfunique/dbsim/sql/rules"
)

var log = logrus.WithField("component", "dataset")

// Dataset is the Go counterpart of spec.md §6's Dataset surface: the
// mutable registry of adapters, views, and user-defined functions/
// aggregates that SQL text resolves and executes against. Per §5's
// concurrency model it is a process-wide-ish registry mutated only by
// registration calls outside of query execution; the mutex here guards
// concurrent reads during execution against concurrent registration,
// not concurrent query execution against itself (queries share no
// mutable state of their own -- each gets a fresh *sql.Context).
type Dataset struct {
	mu sync.RWMutex

	adapters []Adapter
	views    map[string]*Query

	// signatures is the single name->shape table the resolver consults,
	// covering both scalar functions and aggregates (the resolver never
	// needs the actual callable, only ReturnType/Aggregate).
	signatures map[string]resolver.FunctionSignature
	funcs      map[string]rowexec.Func
	aggs       map[string]rowexec.Aggregate

	// DefaultOptimizer, when non-nil, is applied by Query for every
	// statement parsed through d.Query, mirroring cmd/dbsim's intended
	// "parse -> resolve -> optimize -> execute" default pipeline
	// (SPEC_FULL.md §12). Left nil, Query performs no rewriting.
	DefaultOptimizer *rules.HeuristicPlanner
}

// New builds an empty Dataset preloaded with the built-in aggregates
// listed in spec.md §4.8 (count, min, max, sum, concat). Built-in scalar
// function bodies are explicitly out of scope (spec.md §1): every scalar
// function must come from a caller's AddFunction.
func New() *Dataset {
	d := &Dataset{
		views:      make(map[string]*Query),
		signatures: make(map[string]resolver.FunctionSignature),
		funcs:      make(map[string]rowexec.Func),
		aggs:       make(map[string]rowexec.Aggregate),
	}
	for name, builtin := range builtinAggregates() {
		d.aggs[name] = builtin.agg
		d.signatures[name] = resolver.FunctionSignature{ReturnType: builtin.returns, Aggregate: true}
	}
	return d
}

// AddAdapter registers an additional relation source, tried after every
// previously registered adapter and after every view.
func (d *Dataset) AddAdapter(a Adapter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adapters = append(d.adapters, a)
	log.WithField("adapter", a.Name()).Debug("adapter registered")
}

// RemoveAdapter unregisters a, doing nothing if it was never registered.
func (d *Dataset) RemoveAdapter(a Adapter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.adapters {
		if existing == a {
			d.adapters = append(d.adapters[:i], d.adapters[i+1:]...)
			log.WithField("adapter", a.Name()).Debug("adapter removed")
			return
		}
	}
}

// CreateView binds name to a query, accepting either an already-built
// *Query or raw SQL text to parse and resolve against d. A re-registration
// of an existing view name overwrites it, mirroring §5's "re-registration
// of the same symbol warns and overwrites" rule for process-wide registries.
func (d *Dataset) CreateView(name string, queryOrSQL interface{}) error {
	var q *Query
	switch v := queryOrSQL.(type) {
	case *Query:
		q = v
	case string:
		built, err := d.buildQuery(v, d.DefaultOptimizer)
		if err != nil {
			return err
		}
		q = built
	default:
		return sql.ErrRelationNotFound.New("unsupported view definition type")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.views[name]; exists {
		log.WithField("view", name).Warn("view redefined")
	}
	d.views[name] = q
	return nil
}

// GetView returns the view registered under name, if any.
func (d *Dataset) GetView(name string) (*Query, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	q, ok := d.views[name]
	return q, ok
}

// AddFunction registers a scalar function, rejecting the call if name is
// already bound to an aggregate (spec.md §6: "a user-defined function and
// an aggregate may not share a name").
func (d *Dataset) AddFunction(name string, f rowexec.Func, returns sql.FieldType) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.aggs[name]; ok {
		return sql.ErrNameConflict.New(name)
	}
	d.funcs[name] = f
	d.signatures[name] = resolver.FunctionSignature{ReturnType: returns}
	return nil
}

// AddAggregate registers an aggregate, rejecting the call if name is
// already bound to a scalar function.
func (d *Dataset) AddAggregate(name string, agg rowexec.Aggregate, returns sql.FieldType) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.funcs[name]; ok {
		return sql.ErrNameConflict.New(name)
	}
	d.aggs[name] = agg
	d.signatures[name] = resolver.FunctionSignature{ReturnType: returns, Aggregate: true}
	return nil
}

// GetFunction returns the scalar function implementation registered under
// name. Aggregates are not returned here; callers needing to know whether
// a name is an aggregate should consult GetSchema/the resolver signature.
func (d *Dataset) GetFunction(name string) (rowexec.Func, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	f, ok := d.funcs[name]
	return f, ok
}

// GetSchema returns the schema of a view or adapter-backed relation by
// name, without going through the full resolve/parse path.
func (d *Dataset) GetSchema(name string) (sql.Schema, error) {
	d.mu.RLock()
	view, isView := d.views[name]
	adapters := append([]Adapter(nil), d.adapters...)
	d.mu.RUnlock()

	if isView {
		return view.Schema(), nil
	}
	for _, a := range adapters {
		if a.Has(name) {
			return a.SchemaOf(name)
		}
	}
	return sql.Schema{}, sql.ErrRelationNotFound.New(name)
}

// Query parses sqlText, resolves it against d, and -- if d.DefaultOptimizer
// is set -- rewrites it with the rule engine, returning the resulting
// Query façade (spec.md §4.7, §6's `query(sql) -> Query`).
func (d *Dataset) Query(sqlText string) (*Query, error) {
	return d.buildQuery(sqlText, d.DefaultOptimizer)
}

func (d *Dataset) buildQuery(sqlText string, optimizer *rules.HeuristicPlanner) (*Query, error) {
	node, err := parser.Parse(sqlText)
	if err != nil {
		return nil, err
	}
	return newQuery(d, sqlText, node, true, optimizer)
}

// resolve runs the schema resolver against d's own catalog view.
func (d *Dataset) resolve(node sql.Node) (sql.Node, error) {
	return resolver.Resolve(node, resolverCatalog{ds: d})
}

// Execute compiles q's plan and runs it, the Go counterpart of
// spec.md §6's `execute(query, *params, ctx?)`. A nil ctx gets a fresh
// sql.Context seeded with params; a non-nil ctx is used as-is and params
// is ignored (the caller is expected to have built it with
// sql.NewContext(parent, params...) already).
func (d *Dataset) Execute(q *Query, ctx *sql.Context, params ...interface{}) (sql.RowIter, error) {
	if ctx == nil {
		ctx = sql.NewContext(context.Background(), params...)
	}
	src, err := rowexec.Compile(q.plan, rowexecCatalog{ds: d})
	if err != nil {
		return nil, err
	}
	return src(ctx)
}

// ExecuteNode compiles and runs an already-resolved node directly against
// d's catalog, bypassing the Query façade. cmd/dbsim's -cost flag uses this
// to drive sql/cost.Compute over a plan a Query has already resolved and
// optionally optimized, without re-parsing it.
func (d *Dataset) ExecuteNode(node sql.Node, ctx *sql.Context) (sql.RowIter, error) {
	if ctx == nil {
		ctx = sql.NewContext(context.Background())
	}
	src, err := rowexec.Compile(node, rowexecCatalog{ds: d})
	if err != nil {
		return nil, err
	}
	return src(ctx)
}

// relationFor implements resolverCatalog.Relation: views resolve by
// eagerly running their own already-resolved plan to produce a bound,
// single-use RowIter right now (the Go counterpart of spec.md §6's
// `row_source = λctx. table_scan(name, ctx)`, adapted to sql/plan.Relation
// carrying an already-bound sql.RowIter rather than a deferred callback).
// Because a view's own plan was itself resolved against d when the view
// was created, a view defined in terms of another view is already fully
// flattened by this point -- no explicit "keep expanding" loop is needed.
func (d *Dataset) relationFor(name string) (sql.Schema, sql.RowIter, error) {
	d.mu.RLock()
	view, isView := d.views[name]
	adapters := append([]Adapter(nil), d.adapters...)
	d.mu.RUnlock()

	if isView {
		src, err := rowexec.Compile(view.plan, rowexecCatalog{ds: d})
		if err != nil {
			return sql.Schema{}, nil, err
		}
		iter, err := src(sql.NewContext(context.Background()))
		if err != nil {
			return sql.Schema{}, nil, err
		}
		return view.schema, iter, nil
	}

	for _, a := range adapters {
		if a.Has(name) {
			schema, err := a.SchemaOf(name)
			if err != nil {
				return sql.Schema{}, nil, err
			}
			iter, err := a.TableScan(sql.NewContext(context.Background()), name)
			if err != nil {
				return sql.Schema{}, nil, err
			}
			return schema, iter, nil
		}
	}
	return sql.Schema{}, nil, sql.ErrRelationNotFound.New(name)
}
