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

// Package cost implements the purely logical, two-phase cost model of
// SPEC_FULL.md §4.6, ported from
// original_source/dbsim/planners/cost/logical_cost.py's LogicalCost class.
//
// Phase one, RefinedCostFactor, is a pure structural computation: a
// relational node's refined factor is its own static CostFactor() plus the
// refined cost of every predicate/projection expression it carries. Unlike
// the original, which mutates a `cost_factor` attribute on the AST node in
// place (`node.setCostFactor(...)`), this is a plain recursive function —
// sql/plan nodes have no settable cost field, so there is nothing to cache
// onto the immutable tree; the planner calls it fresh whenever it needs a
// number (sql/rules.DefaultCost does exactly that).
//
// Phase two, Compute, drives a caller-supplied Executor over the plan
// (solely for the row-count side effects every relational operator records
// into the sql.Context's stat table via RecordRows) and sums
// num_input_rows * RefinedCostFactor(node) over every node that recorded a
// count. Compute takes an Executor function rather than importing
// sql/rowexec directly, so the caller supplies the executor and sql/cost
// does not depend on sql/rowexec.
package cost

import (
	"github.com/wyfunique/dbsim/internal/metrics"
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/plan"
)

// Executor runs a resolved plan and returns its row iterator, exactly the
// shape sql/rowexec.Compile + an iterator pull loop provides. Compute never
// inspects the rows themselves, only drives the iterator to completion so
// every relational operator along the way has a chance to record its input
// row count into ctx.
type Executor func(ctx *sql.Context, node sql.Node) (sql.RowIter, error)

// RefinedCostFactor computes node's refined cost factor, the Go
// counterpart of LogicalCost.refineCostFactors' relational-node branch.
// Leaves (LoadOp, Relation) are not refined: their own CostFactor() is
// returned unchanged, matching the original's explicit early return for
// those two types.
func RefinedCostFactor(node sql.Node) float64 {
	switch n := node.(type) {
	case *plan.Projection:
		return n.CostFactor() + sumExprCosts(n.Exprs)
	case *plan.OrderBy:
		return n.CostFactor() + sumExprCosts(n.SortExprs)
	case *plan.GroupBy:
		return n.CostFactor() + sumExprCosts(n.Keys) + sumExprCosts(n.Aggregates)
	case *plan.Selection:
		return n.CostFactor() + refineExprCost(n.Predicate)
	case *plan.Join:
		return n.CostFactor() + refineExprCost(n.Cond)
	case *plan.LeftJoin:
		return n.CostFactor() + refineExprCost(n.Cond)
	default:
		// Leaves (LoadOp, Relation), UnionAll, Slice, AliasOp, and any
		// ExtensionSelection (whose Args is an opaque interface{}, not
		// necessarily an sql.Expression tree to refine) all fall back to
		// their own static factor.
		return node.CostFactor()
	}
}

// refineExprCost sums e's own CostFactor() with every descendant's, the Go
// counterpart of refineCostFactors' `is_predicate` branch.
func refineExprCost(e sql.Expression) float64 {
	if e == nil {
		return 0
	}
	total := e.CostFactor()
	for _, c := range e.Children() {
		total += refineExprCost(c)
	}
	return total
}

func sumExprCosts(exprs []sql.Expression) float64 {
	var total float64
	for _, e := range exprs {
		total += refineExprCost(e)
	}
	return total
}

// Compute runs root via exec and returns its total logical cost: the sum,
// over every relational operator that recorded an input row count in ctx,
// of that count times the operator's refined cost factor. The Go
// counterpart of LogicalCost.getCost.
//
// root must already be resolved (every descendant carries a concrete
// schema); Compute does not itself resolve or optimize it.
func Compute(ctx *sql.Context, root sql.Node, exec Executor) (float64, error) {
	if !root.Resolved() {
		return 0, sql.ErrNotResolved.New(root.String())
	}

	iter, err := exec(ctx, root)
	if err != nil {
		return 0, err
	}
	if _, err := sql.Materialize(ctx, iter); err != nil {
		return 0, err
	}

	var total float64
	for node, stat := range ctx.Stats() {
		total += float64(stat.NumInputRows) * RefinedCostFactor(node)
	}
	metrics.QueryCostTotal.Set(total)
	return total, nil
}
