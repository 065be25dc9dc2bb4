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

package expression

import (
	"strconv"

	"github.com/wyfunique/dbsim/sql"
)

// Var is a reference to a column by its dot-qualified path (SPEC_FULL.md
// §3). It does not carry a resolved position: the resolver looks its path
// up in the surrounding node's child schema to derive the Var's output
// Field, and the executor's scalar compiler looks it up again (against the
// same schema) to bind a positional row index once, at compile time --
// keeping the IR itself free of any executor-only state.
type Var struct {
	Path string
}

// NewGetField builds a variable reference from a dot-qualified path.
func NewGetField(path string) *Var {
	return &Var{Path: path}
}

func (v *Var) Children() []sql.Expression { return nil }

func (v *Var) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("Var", 0, len(children))
	}
	cp := *v
	return &cp, nil
}

func (v *Var) CostFactor() float64 { return sql.TinyCostFactor }

func (v *Var) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*Var)
	return ok && v.Path == o.Path
}

func (v *Var) String() string { return v.Path }

// ParamGetter is a positional bind-parameter reference (`?k`).
type ParamGetter struct {
	Index int
}

// NewParamGetter builds a `?k` reference.
func NewParamGetter(index int) *ParamGetter {
	return &ParamGetter{Index: index}
}

func (p *ParamGetter) Children() []sql.Expression { return nil }

func (p *ParamGetter) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, wrongChildren("ParamGetter", 0, len(children))
	}
	cp := *p
	return &cp, nil
}

func (p *ParamGetter) CostFactor() float64 { return sql.TinyCostFactor }

func (p *ParamGetter) Equal(other sql.Expression, ignoreSchema bool) bool {
	o, ok := other.(*ParamGetter)
	return ok && p.Index == o.Index
}

func (p *ParamGetter) String() string { return "?" + strconv.Itoa(p.Index) }
