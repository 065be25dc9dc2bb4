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

// ExtensionSelection is the escape hatch a syntax pack reaches for when its
// filtering operator needs more than a predicate expression can carry --
// e.g. SIMSELECT's "TO [...] <threshold" clause or SPATIALSELECT's "INSIDE
// {#x,y#, r}" clause (SPEC_FULL.md §6). Rather than forcing every extension
// to hand-roll Children/WithChildren/Resolved/Schema boilerplate, it wraps a
// single child plus an extension-owned Args value the registered executor
// knows how to interpret; the rule engine still sees and rewrites it like
// any other single-child relational op because it embeds UnaryNode. A pack
// whose clause is naturally a single sql.Expression predicate should use
// plan.Selection directly instead -- this type exists for the cases that
// aren't.
type ExtensionSelection struct {
	UnaryNode
	Tag  string
	Args interface{}
}

// NewExtensionSelection builds an extension-owned selection node, tagged
// with the syntax pack's registry tag.
func NewExtensionSelection(tag string, args interface{}, child sql.Node) *ExtensionSelection {
	return &ExtensionSelection{UnaryNode: UnaryNode{Child: child}, Tag: tag, Args: args}
}

func (e *ExtensionSelection) ExtensionTag() string { return e.Tag }

func (e *ExtensionSelection) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("ExtensionSelection", 1, len(children))
	}
	cp := *e
	cp.Child = children[0]
	return &cp, nil
}

func (e *ExtensionSelection) Resolved() bool     { return e.UnaryNode.Resolved() }
func (e *ExtensionSelection) Schema() sql.Schema { return e.Child.Schema() }

// CostFactor defaults to Selection's and is the same for every pack's
// extension predicate; sql/cost has no per-pack cost override.
func (e *ExtensionSelection) CostFactor() float64 { return 1.2 }

func (e *ExtensionSelection) String() string {
	return fmt.Sprintf("ExtensionSelection[%s](%v)", e.Tag, e.Args)
}
