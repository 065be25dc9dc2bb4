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
	"math"

	"github.com/spf13/cast"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/rowexec"
)

// builtinAggregate pairs an Aggregate implementation with the FieldType the
// resolver should report for a call site, since rowexec.Aggregate itself
// carries no return-type information (SPEC_FULL.md §9 resolves "functions
// with no declared return type" by always requiring one).
type builtinAggregate struct {
	agg     rowexec.Aggregate
	returns sql.FieldType
}

// builtinAggregates returns the five built-in aggregates spec.md §4.8
// names: count, min, max, sum, concat, seeded at 0, +inf, -inf, 0, and ""
// respectively. min/max keep the winning value's own runtime type once a
// real row has been seen, so SUM/MIN/MAX over integer input stay int64
// rather than being forced through float64 (only the as-yet-untouched
// sentinel state is a float).
func builtinAggregates() map[string]builtinAggregate {
	return map[string]builtinAggregate{
		"count": {
			agg: rowexec.Aggregate{
				Initial: int64(0),
				Accumulate: func(state, _ interface{}) interface{} {
					return state.(int64) + 1
				},
			},
			returns: sql.Integer,
		},
		"sum": {
			agg: rowexec.Aggregate{
				Initial:    int64(0),
				Accumulate: accumulateNumeric(sumFloat, sumInt),
			},
			returns: sql.Float,
		},
		"min": {
			agg: rowexec.Aggregate{
				Initial:    math.Inf(1),
				Accumulate: accumulateExtremum(func(acc, v float64) bool { return v < acc }),
			},
			returns: sql.Float,
		},
		"max": {
			agg: rowexec.Aggregate{
				Initial:    math.Inf(-1),
				Accumulate: accumulateExtremum(func(acc, v float64) bool { return v > acc }),
			},
			returns: sql.Float,
		},
		"concat": {
			agg: rowexec.Aggregate{
				Initial: "",
				Accumulate: func(state, value interface{}) interface{} {
					if value == nil {
						return state
					}
					s, _ := cast.ToStringE(value)
					return state.(string) + s
				},
			},
			returns: sql.String,
		},
	}
}

func sumFloat(acc, v float64) float64 { return acc + v }
func sumInt(acc, v int64) int64       { return acc + v }

// accumulateNumeric folds value into state using floatOp if either operand
// is already a float64, otherwise intOp, keeping sum's result an int64 for
// an all-integer input stream and a float64 the moment any float appears --
// the same promotion rule §4.2/§4.8 apply to binary arithmetic.
func accumulateNumeric(floatOp func(acc, v float64) float64, intOp func(acc, v int64) int64) func(state, value interface{}) interface{} {
	return func(state, value interface{}) interface{} {
		if value == nil {
			return state
		}
		if _, ok := value.(float64); ok {
			sf, _ := cast.ToFloat64E(state)
			vf, _ := cast.ToFloat64E(value)
			return floatOp(sf, vf)
		}
		if _, ok := state.(float64); ok {
			sf, _ := cast.ToFloat64E(state)
			vf, _ := cast.ToFloat64E(value)
			return floatOp(sf, vf)
		}
		si, _ := cast.ToInt64E(state)
		vi, _ := cast.ToInt64E(value)
		return intOp(si, vi)
	}
}

// accumulateExtremum implements min/max: state starts at a float sentinel
// (+inf/-inf) and is replaced by value's own typed value (not its float
// projection) the moment beats(currentAsFloat, valueAsFloat) holds, so the
// accumulator settles into whatever concrete type the input column has.
func accumulateExtremum(beats func(acc, v float64) bool) func(state, value interface{}) interface{} {
	return func(state, value interface{}) interface{} {
		if value == nil {
			return state
		}
		accFloat, err := cast.ToFloat64E(state)
		if err != nil {
			return value
		}
		valFloat, err := cast.ToFloat64E(value)
		if err != nil {
			return state
		}
		if beats(accFloat, valFloat) {
			return value
		}
		return state
	}
}
