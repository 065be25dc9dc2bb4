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

// Slice is `LIMIT Limit OFFSET Offset`. Limit < 0 means unbounded (plain
// OFFSET with no LIMIT clause).
type Slice struct {
	UnaryNode
	Limit  int64
	Offset int64
}

// NewSlice builds a limit/offset node.
func NewSlice(limit, offset int64, child sql.Node) *Slice {
	return &Slice{UnaryNode: UnaryNode{Child: child}, Limit: limit, Offset: offset}
}

func (s *Slice) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, wrongChildren("Slice", 1, len(children))
	}
	cp := *s
	cp.Child = children[0]
	return &cp, nil
}

func (s *Slice) Resolved() bool     { return s.UnaryNode.Resolved() }
func (s *Slice) Schema() sql.Schema { return s.Child.Schema() }
func (s *Slice) CostFactor() float64 { return sql.TinyCostFactor }

func (s *Slice) String() string {
	return fmt.Sprintf("Slice(limit=%d, offset=%d)", s.Limit, s.Offset)
}
