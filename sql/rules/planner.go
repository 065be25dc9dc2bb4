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

// Package rules implements the rule-based heuristic optimizer
// (SPEC_FULL.md §7): a library of local plan rewrites (FilterMerge,
// FilterPushDown, SelectionExtensionSwap) matched against an unresolved
// shape (Operand) and applied to a fixed point by HeuristicPlanner, ported
// from original_source/dbsim/planners/{rules/*.py,heuristic/heuristic_planner.py,
// planner.py}. Go's immutable plan.Node discipline (every rewrite produces
// a new tree via WithChildren rather than mutating the old one) replaces
// the original's in-place AST mutation (Rule.transformImplInplace,
// setChildren) with whole-path reconstruction from the rewritten node back
// up to the root; see replaceNode.
package rules

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/wyfunique/dbsim/internal/metrics"
	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/plan"
)

// log is the package-scoped logger FindBestPlan emits rewrite breadcrumbs
// through, mirroring heuristic_planner.py's own logger/debugger pair.
// SetLogger lets a caller (tests, an embedding process) redirect or
// silence it without reaching into package state directly.
var log = logrus.WithField("component", "rules")

// SetLogger replaces the package-scoped logger, e.g. with a discard logger
// in tests that would otherwise spam Debug-level rewrite traces.
func SetLogger(l *logrus.Entry) { log = l }

// MatchOrder selects how HeuristicPlanner walks the tree to find the next
// rewrite candidate, the Go counterpart of heuristic_planner.py's
// PlanMatchOrder enum.
type MatchOrder int

const (
	// DepthFirst visits nodes in pre-order (a node before its children),
	// matching heuristic_planner.py's DEPTH_FIRST.
	DepthFirst MatchOrder = iota
	// Topological visits nodes breadth-first (shallowest first), matching
	// heuristic_planner.py's TOPOLOGICAL_ORDER.
	Topological
)

// CostFunc scores a candidate plan for HeuristicPlanner to pick among
// several equivalent rewrites a single Rule.TransformImpl returns. Lower is
// better. This is a purely structural estimate taken before any row ever
// flows -- the original's LogicalCost, distinct from sql/cost's
// execution-driven refined cost model.
type CostFunc func(node sql.Node) float64

// DefaultCost sums CostFactor() over every node in the tree, the simplest
// faithful port of LogicalCost.getCost (which sums each node's static
// operator weight without any row-count information, since the heuristic
// planner runs before any row has been read).
func DefaultCost(node sql.Node) float64 {
	var total float64
	plan.Walk(func(n sql.Node) bool {
		total += n.CostFactor()
		return true
	}, node)
	return total
}

// HeuristicPlanner applies a fixed ordered sequence of Rules to a resolved
// plan until none of them match anywhere in the tree or MaxApplications
// rewrites have been made, the Go counterpart of HeuristicPlanner.
type HeuristicPlanner struct {
	// Order controls traversal order when scanning for the next rewrite
	// candidate. Zero value is DepthFirst.
	Order MatchOrder
	// MaxApplications caps the number of rewrites applied in total. Zero
	// means unlimited (bounded only by reaching a fixed point).
	MaxApplications int
	// Cost scores candidate plans when a rule returns more than one. Nil
	// defaults to DefaultCost.
	Cost CostFunc

	rules []Rule
}

// NewHeuristicPlanner builds a planner with no rules yet added.
func NewHeuristicPlanner() *HeuristicPlanner {
	return &HeuristicPlanner{}
}

// AddRule appends rule to the sequence tried against every candidate node,
// the Go counterpart of Planner.addRule. Unlike the original, duplicate
// rules are not deduped by identity: a caller adding the same *value* twice
// gets it applied twice per node, which is never useful but is also never
// silently wrong, so there is no hidden rule_set behind AddRule.
func (p *HeuristicPlanner) AddRule(rule Rule) {
	p.rules = append(p.rules, rule)
}

func (p *HeuristicPlanner) cost(node sql.Node) float64 {
	if p.Cost != nil {
		return p.Cost(node)
	}
	return DefaultCost(node)
}

// FindBestPlan repeatedly scans root for the first node some rule matches,
// applies that rule (picking the lowest-cost result when TransformImpl
// returns several), splices the rewrite back into the tree, and restarts
// the scan from the new root -- the Go counterpart of
// HeuristicPlanner.findBestPlan. It stops when a full scan finds no
// applicable rule anywhere, or MaxApplications rewrites have been made.
func (p *HeuristicPlanner) FindBestPlan(root sql.Node) (sql.Node, error) {
	applied := 0
	for {
		if p.MaxApplications > 0 && applied >= p.MaxApplications {
			return root, nil
		}

		candidates := candidateOrder(p.Order, root)
		rewrote := false
		for _, cand := range candidates {
			for _, rule := range p.rules {
				if !Matches(rule.Operand(), cand.Node) {
					continue
				}
				results, err := Transform(rule, cand.Node)
				if err != nil {
					return nil, fmt.Errorf("rules: applying %s: %w", rule.Name(), err)
				}
				best := p.pickBest(results)
				if plan.Equal(best, cand.Node) {
					// No-op rewrite (e.g. a rule whose precondition held
					// but whose result is unchanged); skip it so the
					// planner doesn't loop forever reapplying it.
					continue
				}
				newRoot, ok, err := replaceNode(root, cand.Node, best)
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, fmt.Errorf("rules: %s matched a node no longer reachable from root", rule.Name())
				}
				root = newRoot
				applied++
				rewrote = true
				metrics.RuleApplicationsTotal.Inc()
				log.WithField("rule", rule.Name()).Debug("rule applied")
				break
			}
			if rewrote {
				break
			}
		}
		if !rewrote {
			return root, nil
		}
	}
}

// pickBest returns the lowest-cost plan among results, the Go counterpart
// of the cost-comparison findBestPlan performs when a rule's transform is
// ambiguous (TransformImpl returning more than one equivalent rewrite).
func (p *HeuristicPlanner) pickBest(results []sql.Node) sql.Node {
	best := results[0]
	bestCost := p.cost(best)
	for _, r := range results[1:] {
		c := p.cost(r)
		if c < bestCost {
			best, bestCost = r, c
		}
	}
	return best
}

// candidateOrder returns every node in root's tree in the traversal order
// order selects, reusing plan.Inspect/InspectBFS rather than reimplementing
// tree walking here.
func candidateOrder(order MatchOrder, root sql.Node) []plan.Parent {
	if order == Topological {
		return plan.InspectBFS(root)
	}
	return plan.Inspect(root)
}

// replaceNode rebuilds root with every node on the path to old replaced so
// the final tree has new in old's place, identifying old by Go interface
// identity (==) rather than by a parent/index pair recorded before the
// rewrite -- since plan nodes are immutable, the node value itself is a
// stable key for the duration of one FindBestPlan iteration. Returns
// ok=false if old is not old's own root and is not found anywhere in root's
// tree (already rewritten out from under the caller, which should not
// happen given FindBestPlan's single-rewrite-per-scan discipline, but is
// reported rather than panicking).
func replaceNode(root, old, replacement sql.Node) (sql.Node, bool, error) {
	if sameNode(root, old) {
		return replacement, true, nil
	}
	children := root.Children()
	if len(children) == 0 {
		return root, false, nil
	}
	next := make([]sql.Node, len(children))
	copy(next, children)
	found := false
	for i, c := range children {
		rebuilt, ok, err := replaceNode(c, old, replacement)
		if err != nil {
			return nil, false, err
		}
		if ok {
			next[i] = rebuilt
			found = true
			break
		}
	}
	if !found {
		return root, false, nil
	}
	rebuiltRoot, err := root.WithChildren(next...)
	if err != nil {
		return nil, false, err
	}
	return rebuiltRoot, true, nil
}

// sameNode reports whether a and b are the same node value. Pointer-typed
// nodes (every concrete sql/plan type is a pointer receiver) compare by
// identity; this falls back to reflect.DeepEqual only for the
// exceptionally unlikely case of a non-pointer sql.Node implementation.
func sameNode(a, b sql.Node) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() == reflect.Ptr && bv.Kind() == reflect.Ptr {
		return av.Pointer() == bv.Pointer() && av.Type() == bv.Type()
	}
	return reflect.DeepEqual(a, b)
}
