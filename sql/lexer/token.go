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

// Package lexer implements a lexical scanner for dbsim's SQL-like query
// language. Grounded on ha1tch-tsqlparser's lexer/token packages for the
// hand-rolled scanner idiom (the teacher delegates to an external grammar
// and has no surviving lexer source of its own); unlike that lexer's fixed
// keyword table, Type is an open identifier space a syntax pack can extend
// at runtime (SPEC_FULL.md §4.3), since a closed Go const enum cannot grow
// after compilation.
package lexer

import "fmt"

// Type identifies a token's lexical class. The base set is defined by the
// constants below; sql/registry adds extension-owned symbols to the same
// namespace via RegisterKeyword/RegisterSymbol, so a syntax pack's keyword
// (e.g. SIMSELECT, INSIDE) is just as much a Type as SELECT is.
type Type string

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT       Type = "IDENT"
	INT         Type = "INT"
	FLOAT       Type = "FLOAT"
	STRING      Type = "STRING"
	PLACEHOLDER Type = "PLACEHOLDER" // ?

	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	PERCENT  Type = "%"

	EQ  Type = "="
	NEQ Type = "<>"
	LT  Type = "<"
	LTE Type = "<="
	GT  Type = ">"
	GTE Type = ">="

	COMMA     Type = ","
	SEMICOLON Type = ";"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"
	DOT       Type = "."
	HASH      Type = "#" // point-literal delimiter contributed by SPATIALSELECT
	DOLLAR    Type = "$" // item-getter key, fused with its following word by the lexer

	// Base keywords.
	SELECT Type = "SELECT"
	FROM   Type = "FROM"
	WHERE  Type = "WHERE"
	GROUP  Type = "GROUP"
	BY     Type = "BY"
	ORDER  Type = "ORDER"
	ASC    Type = "ASC"
	DESC   Type = "DESC"
	LIMIT  Type = "LIMIT"
	OFFSET Type = "OFFSET"
	AS     Type = "AS"

	AND     Type = "AND"
	OR      Type = "OR"
	NOT     Type = "NOT"
	IN      Type = "IN"
	BETWEEN Type = "BETWEEN"
	LIKE    Type = "LIKE"
	IS      Type = "IS"
	NULL    Type = "NULL"
	TRUE    Type = "TRUE"
	FALSE   Type = "FALSE"

	JOIN  Type = "JOIN"
	INNER Type = "INNER"
	LEFT  Type = "LEFT"
	OUTER Type = "OUTER"
	ON    Type = "ON"
	UNION Type = "UNION"
	ALL   Type = "ALL"

	CASE Type = "CASE"
	WHEN Type = "WHEN"
	THEN Type = "THEN"
	ELSE Type = "ELSE"
	END  Type = "END"
	CAST Type = "CAST"
)

// Token is a lexical token with source position information.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Line, t.Column)
}

// keywords is the base keyword table. Pack registration (sql/registry)
// mutates this same map via RegisterKeyword so extension keywords are
// recognized by every Lexer built after registration; registration happens
// once at startup before any concurrent parsing begins, so this map needs
// no lock of its own.
var keywords = map[string]Type{
	"SELECT": SELECT, "FROM": FROM, "WHERE": WHERE, "GROUP": GROUP, "BY": BY,
	"ORDER": ORDER, "ASC": ASC, "DESC": DESC, "LIMIT": LIMIT, "OFFSET": OFFSET,
	"AS": AS, "AND": AND, "OR": OR, "NOT": NOT, "IN": IN, "BETWEEN": BETWEEN,
	"LIKE": LIKE, "IS": IS, "NULL": NULL, "TRUE": TRUE, "FALSE": FALSE,
	"JOIN": JOIN, "INNER": INNER, "LEFT": LEFT, "OUTER": OUTER, "ON": ON,
	"UNION": UNION, "ALL": ALL, "CASE": CASE, "WHEN": WHEN, "THEN": THEN,
	"ELSE": ELSE, "END": END, "CAST": CAST,
}

// LookupIdent classifies ident as a keyword Type if the (possibly
// extension-augmented) keyword table recognizes its upper-cased form, else
// returns IDENT.
func LookupIdent(upper string) Type {
	if t, ok := keywords[upper]; ok {
		return t
	}
	return IDENT
}

// RegisterKeyword adds upper (already upper-cased by the caller) to the
// keyword table mapped to t, so the lexer classifies it as t rather than
// IDENT from then on. Used by sql/registry when a syntax pack contributes a
// new reserved word (e.g. "SIMSELECT", "INSIDE", "TO"). Re-registering an
// existing word silently overwrites it; sql/registry is responsible for
// warning on that collision, not the lexer.
func RegisterKeyword(upper string, t Type) {
	keywords[upper] = t
}

// RegisterSymbol returns name as a Type so extension Types share this
// package's namespace instead of colliding with a hand-picked string. It
// records nothing: the lexer tokenizes only the punctuation built into this
// package, and a name passed here does not add new punctuation to it.
func RegisterSymbol(name string) Type { return Type(name) }
