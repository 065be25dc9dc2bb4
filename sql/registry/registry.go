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

// Package registry is the extension-pack registration table SPEC_FULL.md
// §4.3 describes: a syntax pack (ext/simselect, ext/spatialselect, or a
// third party's own) bundles its lexer symbols/keywords, SELECT/WHERE
// clause grammar, field types, and resolver/executor hooks into a single
// Pack and hands it to Register once, typically from an init() function so
// loading the pack is a side effect of importing it -- the same shape
// hemanta212-scaf/dialect.go uses for RegisterDialectInstance/GetDialect,
// generalized here to the finer-grained set of hook categories
// original_source/dbsim/extensions/extended_syntax/registry.py's RegEntry
// bundles per syntax (clause_parsers, entry_points, plus the executor/
// resolver maps ExtendedSyntax's subclasses populate via its addExtended*
// classmethods).
package registry

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/wyfunique/dbsim/sql"
	"github.com/wyfunique/dbsim/sql/lexer"
	"github.com/wyfunique/dbsim/sql/parser"
)

// ResolveFunc computes the output schema of an ExtendedNode given its
// (already-resolved) child schema, the hook sql/resolver calls for any
// plan.ExtensionSelection (or other ExtendedNode) whose ExtensionTag it
// does not itself know how to resolve.
type ResolveFunc func(node sql.ExtendedNode, childSchema sql.Schema) (sql.Schema, error)

// ExecFunc builds the RowIter for an ExtendedNode given its already-built
// child iterator, the hook sql/rowexec calls for nodes it does not itself
// know how to compile.
type ExecFunc func(ctx *sql.Context, node sql.ExtendedNode, child sql.RowIter) (sql.RowIter, error)

// PredicateExecFunc evaluates an ExtendedExpression given the already
// evaluated values of its own Children (in Children order), the hook
// sql/rowexec's scalar compiler calls for predicate/value operators it does
// not itself know how to evaluate (e.g. SIMSELECT's vector distance,
// SPATIALSELECT's point-in-circle test). Children arrive pre-evaluated,
// the same way a Function's arguments do, so a pack never needs a row's
// schema to make sense of args -- it only needs to know its own operator's
// children shape.
type PredicateExecFunc func(ctx *sql.Context, expr sql.ExtendedExpression, args []interface{}) (interface{}, error)

// Pack bundles everything one syntax extension contributes. Every field is
// optional; a pack that only adds a field type and a predicate executor,
// say, leaves the rest nil/empty.
type Pack struct {
	// Name uniquely identifies the pack ("simselect", "spatialselect", ...).
	// Re-registering the same Name is a no-op (logged), matching
	// registry.py's single isRegInitilized guard generalized to per-pack
	// idempotency since Go packs usually self-register from init().
	Name string

	// Symbols are passed to lexer.RegisterSymbol, which only turns each name
	// into a lexer.Type; the lexer does not learn new punctuation from them
	// and tokenizes only its built-in punctuation.
	Symbols []string
	// Keywords maps a new reserved word (already upper-cased) to the
	// lexer.Type it should tokenize as, passed to lexer.RegisterKeyword.
	Keywords map[string]lexer.Type

	// FieldTypes lists new sql.FieldType values the pack introduces (e.g.
	// "VECTOR", "POINT"), appended to the registry's reported field-type
	// set.
	FieldTypes []sql.FieldType

	// SelectClauseTrigger/SelectClauseParse together override the SELECT
	// item-list grammar when the trigger fires; both must be set together
	// or both left nil.
	SelectClauseTrigger parser.TriggerFunc
	SelectClauseParse   parser.SelectClauseParseFunc

	// WhereClauseTrigger/WhereClauseParse together override the WHERE
	// predicate grammar when the trigger fires.
	WhereClauseTrigger parser.TriggerFunc
	WhereClauseParse   parser.WhereClauseParseFunc

	// Resolvers/Executors/PredicateExecutors are keyed by the
	// ExtensionTag() a pack's own Node/Expression variants report, so
	// sql/resolver, sql/rowexec and its scalar compiler can dispatch to
	// them without a type switch that would otherwise have to import every
	// pack.
	Resolvers          map[string]ResolveFunc
	Executors          map[string]ExecFunc
	PredicateExecutors map[string]PredicateExecFunc

	// Init, if set, runs exactly once, after every other field of the pack
	// has taken effect -- the equivalent of entry_points in registry.py,
	// for any pack that needs to do more at load time than populate the
	// tables above (e.g. wiring an adapter-level data type converter).
	Init func()
}

// Registry is the process-wide table of loaded packs. The zero value is
// not usable; construct one with New (tests do, to get isolation from the
// package-level Default instance other tests/extensions mutate).
type Registry struct {
	mu         sync.Mutex
	order      []string
	packs      map[string]*Pack
	fieldTypes []sql.FieldType
}

// New builds an empty Registry seeded with sql.BaseFieldTypes.
func New() *Registry {
	return &Registry{
		packs:      make(map[string]*Pack),
		fieldTypes: append([]sql.FieldType(nil), sql.BaseFieldTypes...),
	}
}

// Default is the process-wide registry every pack's init() registers
// against and every sql/resolver, sql/rowexec call site consults.
var Default = New()

// Register loads pack into r: its symbols are passed to lexer.RegisterSymbol
// (which records nothing), its keywords go into sql/lexer's global keyword
// table (with a warning when a word is already a keyword), its clause hooks
// go into sql/parser's global tables, its
// field types are appended to r's reported set, and finally its Init (if
// any) runs. A pack whose Name is already registered is skipped with a
// warning instead of being loaded a second time -- re-registering symbols/
// keywords would be harmless (both calls are idempotent-by-value) but
// running Init twice might not be, so the guard is unconditional per pack.
func (r *Registry) Register(pack *Pack) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[pack.Name]; exists {
		logrus.Warnf("registry: syntax pack %q already registered, ignoring re-registration", pack.Name)
		return
	}

	for _, sym := range pack.Symbols {
		lexer.RegisterSymbol(sym)
	}
	for word, t := range pack.Keywords {
		if existing := lexer.LookupIdent(word); existing != lexer.IDENT {
			logrus.Warnf("registry: syntax pack %q re-registers keyword %q (was %s), overwriting", pack.Name, word, existing)
		}
		lexer.RegisterKeyword(word, t)
	}
	r.fieldTypes = append(r.fieldTypes, pack.FieldTypes...)

	if pack.SelectClauseTrigger != nil && pack.SelectClauseParse != nil {
		parser.RegisterSelectClauseHook(pack.Name, pack.SelectClauseTrigger, pack.SelectClauseParse)
	}
	if pack.WhereClauseTrigger != nil && pack.WhereClauseParse != nil {
		parser.RegisterWhereClauseHook(pack.Name, pack.WhereClauseTrigger, pack.WhereClauseParse)
	}

	r.packs[pack.Name] = pack
	r.order = append(r.order, pack.Name)

	logrus.Infof("registry: loaded syntax pack %q", pack.Name)

	if pack.Init != nil {
		pack.Init()
	}
}

// Register loads pack into the Default registry.
func Register(pack *Pack) { Default.Register(pack) }

// FieldTypes returns every field type registered so far, base types first
// in their declared order followed by pack-contributed types in
// registration order.
func (r *Registry) FieldTypes() []sql.FieldType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sql.FieldType, len(r.fieldTypes))
	copy(out, r.fieldTypes)
	return out
}

// FieldTypes returns the Default registry's field types.
func FieldTypes() []sql.FieldType { return Default.FieldTypes() }

// Registered lists the names of every pack loaded into r, in registration
// order.
func (r *Registry) Registered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Registered lists the names of every pack loaded into the Default
// registry.
func Registered() []string { return Default.Registered() }

// Resolver looks up the schema resolver registered for tag across every
// loaded pack, in registration order, returning the first match --
// duplicate tags across two packs is a pack-authoring bug, not something
// Register validates, since tags are free-form strings only the packs
// themselves agree on.
func (r *Registry) Resolver(tag string) (ResolveFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		if fn, ok := r.packs[name].Resolvers[tag]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Resolver looks up tag's schema resolver in the Default registry.
func Resolver(tag string) (ResolveFunc, bool) { return Default.Resolver(tag) }

// Executor looks up the row-iterator builder registered for tag.
func (r *Registry) Executor(tag string) (ExecFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		if fn, ok := r.packs[name].Executors[tag]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Executor looks up tag's row-iterator builder in the Default registry.
func Executor(tag string) (ExecFunc, bool) { return Default.Executor(tag) }

// PredicateExecutor looks up the scalar evaluator registered for tag.
func (r *Registry) PredicateExecutor(tag string) (PredicateExecFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range r.order {
		if fn, ok := r.packs[name].PredicateExecutors[tag]; ok {
			return fn, true
		}
	}
	return nil, false
}

// PredicateExecutor looks up tag's scalar evaluator in the Default
// registry.
func PredicateExecutor(tag string) (PredicateExecFunc, bool) { return Default.PredicateExecutor(tag) }

// ErrUnknownExtension is returned by sql/resolver and sql/rowexec when an
// ExtendedNode/ExtendedExpression's tag has no registered handler -- most
// often because the owning pack was never imported.
func ErrUnknownExtension(tag string) error {
	return fmt.Errorf("registry: no handler registered for extension tag %q (is its syntax pack imported?)", tag)
}
