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

// Join is an inner join of Left and Right on Cond. Its schema is the
// concatenation of both children's schemas -- the resolver rejects the join
// (ErrAmbiguousField at first reference) only when a later expression
// actually needs to disambiguate a column name both sides share.
type Join struct {
	BinaryNode
	Cond sql.Expression
}

// NewInnerJoin builds an inner-join node.
func NewInnerJoin(left, right sql.Node, cond sql.Expression) *Join {
	return &Join{BinaryNode: BinaryNode{Left: left, Right: right}, Cond: cond}
}

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, wrongChildren("Join", 2, len(children))
	}
	cp := *j
	cp.Left, cp.Right = children[0], children[1]
	return &cp, nil
}

// WithCond returns a copy of j with its join condition replaced, used by
// sql/rules' predicate-pushdown rewrites.
func (j *Join) WithCond(cond sql.Expression) *Join {
	cp := *j
	cp.Cond = cond
	return &cp
}

func (j *Join) Resolved() bool {
	return j.BinaryNode.Resolved() && j.Cond != nil
}

func (j *Join) Schema() sql.Schema { return j.Left.Schema().Concat(j.Right.Schema()) }

// CostFactor is high: the executor falls back to a nested-loop scan unless
// Cond is a top-level equality it can turn into a hash join
// (SPEC_FULL.md §4.9); the refined cost model scores the nested-loop shape
// as O(left * right).
func (j *Join) CostFactor() float64 { return 3.0 }

func (j *Join) String() string { return fmt.Sprintf("Join(%s)", j.Cond) }

// LeftJoin is a left outer join: unmatched left rows are emitted once, with
// every right-side field set to NULL.
type LeftJoin struct {
	BinaryNode
	Cond sql.Expression
}

// NewLeftJoin builds a left-outer-join node.
func NewLeftJoin(left, right sql.Node, cond sql.Expression) *LeftJoin {
	return &LeftJoin{BinaryNode: BinaryNode{Left: left, Right: right}, Cond: cond}
}

func (j *LeftJoin) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, wrongChildren("LeftJoin", 2, len(children))
	}
	cp := *j
	cp.Left, cp.Right = children[0], children[1]
	return &cp, nil
}

func (j *LeftJoin) WithCond(cond sql.Expression) *LeftJoin {
	cp := *j
	cp.Cond = cond
	return &cp
}

func (j *LeftJoin) Resolved() bool {
	return j.BinaryNode.Resolved() && j.Cond != nil
}

func (j *LeftJoin) Schema() sql.Schema { return j.Left.Schema().Concat(j.Right.Schema()) }
func (j *LeftJoin) CostFactor() float64 { return 3.0 }
func (j *LeftJoin) String() string      { return fmt.Sprintf("LeftJoin(%s)", j.Cond) }

// UnionAll concatenates the rows of Left and Right, which must share a
// compatible schema (checked by the resolver, ErrUnionSchemaMismatch on
// mismatch). The output schema is Left's.
type UnionAll struct {
	BinaryNode
}

// NewUnionAll builds a UNION ALL node.
func NewUnionAll(left, right sql.Node) *UnionAll {
	return &UnionAll{BinaryNode: BinaryNode{Left: left, Right: right}}
}

func (u *UnionAll) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, wrongChildren("UnionAll", 2, len(children))
	}
	cp := *u
	cp.Left, cp.Right = children[0], children[1]
	return &cp, nil
}

func (u *UnionAll) Schema() sql.Schema  { return u.Left.Schema() }
func (u *UnionAll) CostFactor() float64 { return sql.TinyCostFactor }
func (u *UnionAll) String() string      { return "UnionAll" }
