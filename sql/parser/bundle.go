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

package parser

import goerrors "gopkg.in/src-d/go-errors.v1"

// ParsingFailure is returned by a StatementParser that doesn't recognize
// its input and wants the bundle to simply try the next parser in line --
// distinct from any other error, which the bundle treats as a hard,
// "block" failure and surfaces immediately without trying further parsers
// (SPEC_FULL.md §4.2, §9's resolution of the original's "block error"
// semantics: a parser partway into a clause it does recognize should
// report its own syntax error rather than be silently skipped).
var ParsingFailure = goerrors.NewKind("statement not recognized: %s")

// StatementParser parses one alternative top-level statement form. A
// syntax pack registers its own top-level clause (if it has one) by
// appending a StatementParser to a ParsersBundle ahead of the base SELECT
// parser.
type StatementParser func(query string) (interface{}, error)

// ParsersBundle tries each Parser in order against the same input, moving
// on to the next only when a Parser fails with ParsingFailure; any other
// error is returned immediately, and the first successful result wins.
type ParsersBundle struct {
	Parsers []StatementParser
}

// NewParsersBundle builds a bundle from an ordered parser list. The base
// SELECT statement parser should normally be registered last, so that more
// specific pack-contributed top-level forms get first refusal.
func NewParsersBundle(parsers ...StatementParser) *ParsersBundle {
	return &ParsersBundle{Parsers: parsers}
}

// Parse runs the bundle against query, returning the first parser's
// successful result, the first non-ParsingFailure error encountered (a
// "block" error that stops the pipeline outright), or ParsingFailure
// itself if every parser in turn declined the input.
func (b *ParsersBundle) Parse(query string) (interface{}, error) {
	for _, p := range b.Parsers {
		result, err := p(query)
		if err == nil {
			return result, nil
		}
		if ParsingFailure.Is(err) {
			continue
		}
		return nil, err
	}
	return nil, ParsingFailure.New(query)
}

// SelectStatementParser adapts the package's Parse function into a
// StatementParser for use in a ParsersBundle.
func SelectStatementParser(query string) (interface{}, error) {
	node, err := Parse(query)
	if err != nil {
		return nil, err
	}
	return node, nil
}
