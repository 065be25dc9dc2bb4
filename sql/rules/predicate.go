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

package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/expression"
)

// Predicate wraps a boolean-valued sql.Expression with the analysis
// FilterPushDown needs: which source columns it reads, and whether a given
// (already-resolved) plan node's schema can supply them. The Go counterpart
// of original_source/dbsim/ast.py's Predicate class.
type Predicate struct {
	Expr sql.Expression
}

// NewPredicate wraps expr for analysis.
func NewPredicate(expr sql.Expression) Predicate { return Predicate{Expr: expr} }

// sources returns every distinct dot-qualified column path a Var anywhere
// in p.Expr references, the Go counterpart of Predicate._extractSources'
// Var-only traversal (Predicate.getSources in the original additionally
// documents that Tuple/Function operands are unsupported inside a
// predicate meant for push-down analysis; this port does not enforce that
// restriction since a Var nested inside a Tuple/Function still has a
// perfectly well-defined source column to report).
func (p Predicate) sources() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(e sql.Expression)
	walk = func(e sql.Expression) {
		if v, ok := e.(*expression.Var); ok {
			if !seen[v.Path] {
				seen[v.Path] = true
				out = append(out, v.Path)
			}
			return
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(p.Expr)
	return out
}

// RelatedTo reports whether any column p.Expr references resolves against
// node's schema, the Go counterpart of Predicate.relatedTo.
func (p Predicate) RelatedTo(node sql.Node) bool {
	schema := node.Schema()
	for _, path := range p.sources() {
		if schema.HasPath(path) {
			return true
		}
	}
	return false
}

// conjunct is one AND-decorrelated part of a predicate paired with the
// indices (into the nodes slice passed to DecorrelateAnd) it is related to.
type conjunct struct {
	pred    Predicate
	related []int
}

// relatedKey turns a related-node-index list into a stable map key,
// independent of how the indices were discovered (DecorrelateAnd always
// produces them in ascending order since it scans nodes left to right).
func relatedKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, ",")
}

// DecorrelateAnd splits pred into its AND-conjuncts (recursively, so
// `(a AND b) AND c` decorrelates into three parts, same as the original's
// recursive _decorrelateAnd), determines which of nodes each conjunct is
// related to, and groups conjuncts sharing the same related-node set by
// AND'ing them together -- the Go counterpart of
// PredicateUtils.decorrelateAnd (= _decorrelateAnd + _groupDecorrelatedAnd).
//
// Every conjunct sharing a related-node-index set is folded into the
// group's entry via AND as it is encountered, so a predicate like
// `L.a = R.a AND L.b = R.b` (two conjuncts both related to nodes {0,1})
// produces a single merged group entry `L.a = R.a AND L.b = R.b` rather
// than only the last one seen -- this is the fix SPEC_FULL.md's redesign
// section calls for; the original's filter_push_down_rule.py instead
// overwrites its top-Selection predicate on every len==2 entry it visits,
// discarding all but the last. The difference already shows with the two
// child nodes FilterPushDownRule supplies, and this function's grouping is
// the same for any node-list length.
func DecorrelateAnd(pred Predicate, nodes []sql.Node) map[string]Predicate {
	var collect func(p Predicate) []conjunct
	collect = func(p Predicate) []conjunct {
		if and, ok := p.Expr.(*expression.And); ok {
			left := collect(Predicate{Expr: and.Left})
			right := collect(Predicate{Expr: and.Right})
			return append(left, right...)
		}
		var related []int
		for i, n := range nodes {
			if p.RelatedTo(n) {
				related = append(related, i)
			}
		}
		return []conjunct{{pred: p, related: related}}
	}

	groups := make(map[string]Predicate)
	for _, c := range collect(pred) {
		sort.Ints(c.related)
		key := relatedKey(c.related)
		if existing, ok := groups[key]; ok {
			groups[key] = Predicate{Expr: expression.NewAnd(existing.Expr, c.pred.Expr)}
		} else {
			groups[key] = c.pred
		}
	}
	return groups
}
