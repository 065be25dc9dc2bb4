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

	"github.com/wyfunique/dbsim/sql"
)

// Rule is a single rewrite rule: Operand describes the shape TransformImpl
// is prepared to handle, and TransformImpl produces one or more equivalent
// plans for a node known to match that shape. Unlike the original's
// Rule.transform/transformImpl(Inplace) split, there is no in-place variant
// here: every sql/plan node is copy-on-WithChildren, so "transform in
// place" and "transform a copy" are the same operation in Go -- the only
// reason the original distinguishes them is that its AST nodes are mutable.
type Rule interface {
	// Name identifies the rule in logs and in HeuristicPlanner's applied-
	// rule trace.
	Name() string
	// Operand is the shape this rule matches against.
	Operand() Operand
	// TransformImpl builds the rewritten plan(s) equivalent to node, which
	// is guaranteed (by the caller) to already match Operand(). It must
	// return a non-empty slice; when it returns more than one element, the
	// caller will keep only the lowest-cost one.
	TransformImpl(node sql.Node) ([]sql.Node, error)
}

// Transform validates that node matches rule's operand, invokes
// TransformImpl, and validates the result is non-empty, mirroring the
// bookkeeping the original's Rule.transform performs before handing control
// to a concrete rule's transformImpl.
func Transform(rule Rule, node sql.Node) ([]sql.Node, error) {
	if !Matches(rule.Operand(), node) {
		return nil, fmt.Errorf("rules: %s does not match node of type %T", rule.Name(), node)
	}
	plans, err := rule.TransformImpl(node)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("rules: %s.TransformImpl returned no plans", rule.Name())
	}
	return plans, nil
}
