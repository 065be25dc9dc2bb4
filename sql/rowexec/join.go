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
	"fmt"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
	"github.com/wyfunique/dbsim/sql/plan"
)

// equalityKeys is a derived top-level equality join condition: Left/Right
// name the column path on each respective side.
type equalityKeys struct {
	leftPos, rightPos int
}

// deriveEqualityKeys looks for a single top-level `*expression.Comparison`
// with Op == EQ between two `*expression.Var`s, trying both orderings
// against leftSchema/rightSchema, the Go counterpart of join.py's
// join_keys (absent from the retrieval pack; this is designed fresh from
// SPEC_FULL.md §4.8's prose: "build a multi-map from the smaller side").
// ok is false when cond is not this exact shape, in which case the caller
// falls back to a nested-loop join over the full condition.
func deriveEqualityKeys(cond sql.Expression, leftSchema, rightSchema sql.Schema) (equalityKeys, bool) {
	cmp, ok := cond.(*expression.Comparison)
	if !ok || !cmp.IsEquality() {
		return equalityKeys{}, false
	}
	lv, lok := cmp.Left.(*expression.Var)
	rv, rok := cmp.Right.(*expression.Var)
	if !lok || !rok {
		return equalityKeys{}, false
	}
	if lp, err := leftSchema.FieldPosition(lv.Path); err == nil {
		if rp, err := rightSchema.FieldPosition(rv.Path); err == nil {
			return equalityKeys{leftPos: lp, rightPos: rp}, true
		}
	}
	if lp, err := leftSchema.FieldPosition(rv.Path); err == nil {
		if rp, err := rightSchema.FieldPosition(lv.Path); err == nil {
			return equalityKeys{leftPos: lp, rightPos: rp}, true
		}
	}
	return equalityKeys{}, false
}

// buildHashMap groups rows by the value at keyPos into a multi-map, the Go
// counterpart of join.py's hash_join build phase.
func buildHashMap(rows []sql.Row, keyPos int) map[interface{}][]sql.Row {
	m := make(map[interface{}][]sql.Row, len(rows))
	for _, row := range rows {
		k := row[keyPos]
		if expression.IsNull(k) {
			continue
		}
		m[k] = append(m[k], row)
	}
	return m
}

// compileJoin compiles an inner Join. When Cond reduces to a plain
// equality between a column on each side, it hash-joins by building a
// multi-map from whichever side materializes fewer rows and probing with
// the other (SPEC_FULL.md §4.8); otherwise it falls back to a nested-loop
// scan evaluating the full Cond against every pair.
func compileJoin(j *plan.Join, cat Catalog) (RowSource, error) {
	left, err := Compile(j.Left, cat)
	if err != nil {
		return nil, err
	}
	right, err := Compile(j.Right, cat)
	if err != nil {
		return nil, err
	}
	leftSchema, rightSchema := j.Left.Schema(), j.Right.Schema()
	keys, hasKeys := deriveEqualityKeys(j.Cond, leftSchema, rightSchema)

	var nestedPred ScalarFunc
	if !hasKeys {
		combined := leftSchema.Concat(rightSchema)
		nestedPred, err = CompileScalar(j.Cond, combined, cat)
		if err != nil {
			return nil, err
		}
	}

	return func(ctx *sql.Context) (sql.RowIter, error) {
		leftRows, err := materializeSide(ctx, left)
		if err != nil {
			return nil, err
		}
		rightRows, err := materializeSide(ctx, right)
		if err != nil {
			return nil, err
		}
		ctx.RecordRows(j, len(leftRows)*len(rightRows))

		var out []sql.Row
		if hasKeys {
			out, err = hashJoin(leftRows, rightRows, keys, false)
		} else {
			out, err = nestedLoopJoin(ctx, leftRows, rightRows, nestedPred, false, rightSchema.Len())
		}
		if err != nil {
			return nil, err
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

// compileLeftJoin always builds the hash map from the right (inner) side
// and probes with the left (outer) side, regardless of which side has
// fewer rows: the "smaller side" optimization plain Join uses would emit
// the wrong cardinality here if naively flipped, since every outer row
// must be emitted at least once (null-filled on no match) while only
// matching inner rows should ever combine with it.
func compileLeftJoin(j *plan.LeftJoin, cat Catalog) (RowSource, error) {
	left, err := Compile(j.Left, cat)
	if err != nil {
		return nil, err
	}
	right, err := Compile(j.Right, cat)
	if err != nil {
		return nil, err
	}
	leftSchema, rightSchema := j.Left.Schema(), j.Right.Schema()
	keys, hasKeys := deriveEqualityKeys(j.Cond, leftSchema, rightSchema)

	var nestedPred ScalarFunc
	if !hasKeys {
		combined := leftSchema.Concat(rightSchema)
		nestedPred, err = CompileScalar(j.Cond, combined, cat)
		if err != nil {
			return nil, err
		}
	}
	rightWidth := rightSchema.Len()

	return func(ctx *sql.Context) (sql.RowIter, error) {
		leftRows, err := materializeSide(ctx, left)
		if err != nil {
			return nil, err
		}
		rightRows, err := materializeSide(ctx, right)
		if err != nil {
			return nil, err
		}
		ctx.RecordRows(j, len(leftRows)*len(rightRows))

		var out []sql.Row
		if hasKeys {
			out, err = leftHashJoin(leftRows, rightRows, keys, rightWidth)
		} else {
			out, err = nestedLoopJoin(ctx, leftRows, rightRows, nestedPred, true, rightWidth)
		}
		if err != nil {
			return nil, err
		}
		return sql.NewSliceRowIter(out), nil
	}, nil
}

// hashJoin implements the inner hash join, building the multi-map from
// whichever side has fewer rows and probing with the other.
func hashJoin(leftRows, rightRows []sql.Row, keys equalityKeys, _ bool) ([]sql.Row, error) {
	var out []sql.Row
	if len(leftRows) <= len(rightRows) {
		m := buildHashMap(leftRows, keys.leftPos)
		for _, rrow := range rightRows {
			k := rrow[keys.rightPos]
			if expression.IsNull(k) {
				continue
			}
			for _, lrow := range m[k] {
				out = append(out, lrow.Append(rrow))
			}
		}
		return out, nil
	}
	m := buildHashMap(rightRows, keys.rightPos)
	for _, lrow := range leftRows {
		k := lrow[keys.leftPos]
		if expression.IsNull(k) {
			continue
		}
		for _, rrow := range m[k] {
			out = append(out, lrow.Append(rrow))
		}
	}
	return out, nil
}

// leftHashJoin always builds from the right side, emitting every left row
// at least once (null-filled when unmatched) to preserve left-outer
// semantics.
func leftHashJoin(leftRows, rightRows []sql.Row, keys equalityKeys, rightWidth int) ([]sql.Row, error) {
	m := buildHashMap(rightRows, keys.rightPos)
	var out []sql.Row
	for _, lrow := range leftRows {
		k := lrow[keys.leftPos]
		matches := m[k]
		if expression.IsNull(k) || len(matches) == 0 {
			out = append(out, lrow.Append(make(sql.Row, rightWidth)))
			continue
		}
		for _, rrow := range matches {
			out = append(out, lrow.Append(rrow))
		}
	}
	return out, nil
}

// nestedLoopJoin evaluates pred against every (left, right) pair, the
// fallback used whenever Cond isn't a single top-level column equality.
// When leftOuter is true, a left row with no matching right row is still
// emitted once, null-filled.
func nestedLoopJoin(ctx *sql.Context, leftRows, rightRows []sql.Row, pred ScalarFunc, leftOuter bool, rightWidth int) ([]sql.Row, error) {
	var out []sql.Row
	for _, lrow := range leftRows {
		matched := false
		for _, rrow := range rightRows {
			combined := lrow.Append(rrow)
			v, err := pred(combined, ctx)
			if err != nil {
				return nil, err
			}
			if expression.IsNull(v) {
				continue
			}
			ok, err := asBool(v)
			if err != nil {
				return nil, fmt.Errorf("rowexec: join condition: %w", err)
			}
			if ok {
				out = append(out, combined)
				matched = true
			}
		}
		if leftOuter && !matched {
			out = append(out, lrow.Append(make(sql.Row, rightWidth)))
		}
	}
	return out, nil
}
