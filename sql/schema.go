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

package sql

import (
	"strings"

	"gopkg.in/yaml.v2"
)

// Schema is an ordered, immutable sequence of Fields. Every operation that
// appears to "modify" a Schema (New, WithSchemaName, ...) returns a fresh copy; the
// receiver is never mutated.
type Schema struct {
	fields []Field
}

// NewSchema builds a Schema from an ordered field list.
func NewSchema(fields ...Field) Schema {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Schema{fields: cp}
}

// Fields returns the ordered field list. Callers must not mutate the
// returned slice; it aliases the Schema's backing array.
func (s Schema) Fields() []Field {
	return s.fields
}

// Len returns the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// At returns the field at position i.
func (s Schema) At(i int) Field {
	return s.fields[i]
}

// New returns a copy of s with fields overridden via fn, mirroring the
// original's `schema.new(...)` copy-with-overrides idiom.
func (s Schema) New(fn func([]Field) []Field) Schema {
	return Schema{fields: fn(append([]Field(nil), s.fields...))}
}

// FieldPosition returns the zero-based position of the field with the given
// dot-qualified path. Fails with ErrFieldNotFound if no field matches, or
// ErrAmbiguousField if more than one does (e.g. after an unaliased join of
// two relations sharing a column name).
func (s Schema) FieldPosition(path string) (int, error) {
	found := -1
	for i, f := range s.fields {
		if matchesPath(f, path) {
			if found != -1 {
				return -1, ErrAmbiguousField.New(path)
			}
			found = i
		}
	}
	if found == -1 {
		return -1, ErrFieldNotFound.New(path)
	}
	return found, nil
}

// matchesPath reports whether field f is addressed by path. An unqualified
// path ("col") matches any field named "col" regardless of SchemaName; a
// qualified path ("t.col") matches only a field whose own Path() is exactly
// that string.
func matchesPath(f Field, path string) bool {
	if strings.Contains(path, ".") {
		return f.Path() == path
	}
	return f.Name == path
}

// HasPath reports whether path resolves unambiguously in s.
func (s Schema) HasPath(path string) bool {
	_, err := s.FieldPosition(path)
	return err == nil
}

// Concat returns a new Schema with the fields of s followed by the fields of
// other, used by Join/LeftJoin schema derivation (SPEC_FULL.md §4.4).
func (s Schema) Concat(other Schema) Schema {
	out := make([]Field, 0, len(s.fields)+len(other.fields))
	out = append(out, s.fields...)
	out = append(out, other.fields...)
	return Schema{fields: out}
}

// WithSchemaName returns a copy of s with every field's SchemaName
// re-stamped to name, used by AliasOp schema derivation.
func (s Schema) WithSchemaName(name string) Schema {
	return s.New(func(fields []Field) []Field {
		for i := range fields {
			fields[i] = fields[i].WithSchemaName(name)
		}
		return fields
	})
}

// FilterBySchemaName returns only the fields qualified by schemaName,
// used by "table.*" select-all expansion.
func (s Schema) FilterBySchemaName(schemaName string) Schema {
	if schemaName == "" {
		return s
	}
	out := make([]Field, 0, len(s.fields))
	for _, f := range s.fields {
		if f.SchemaName == schemaName {
			out = append(out, f)
		}
	}
	return Schema{fields: out}
}

// Equal compares two schemas field by field, in order.
func (s Schema) Equal(other Schema) bool {
	if len(s.fields) != len(other.fields) {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Equal(other.fields[i]) {
			return false
		}
	}
	return true
}

// describedField is the YAML-friendly projection of a Field that Describe
// dumps: NestedFields is flattened recursively rather than round-tripping
// through Field's own zero-value FieldMode/FieldType, so an empty schema
// still produces a minimal, readable document.
type describedField struct {
	Name         string           `yaml:"name"`
	Type         string           `yaml:"type"`
	Mode         string           `yaml:"mode"`
	SchemaName   string           `yaml:"schema,omitempty"`
	NestedFields []describedField `yaml:"fields,omitempty"`
}

func describe(f Field) describedField {
	d := describedField{
		Name:       f.Name,
		Type:       f.Type.String(),
		Mode:       f.Mode.String(),
		SchemaName: f.SchemaName,
	}
	for _, nested := range f.NestedFields {
		d.NestedFields = append(d.NestedFields, describe(nested))
	}
	return d
}

// Describe renders s as a human-diffable YAML document, used by the CLI's
// -describe flag and by tests that want a readable snapshot of a
// resolved schema rather than asserting against Field literals directly.
func (s Schema) Describe() (string, error) {
	fields := make([]describedField, len(s.fields))
	for i, f := range s.fields {
		fields[i] = describe(f)
	}
	out, err := yaml.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
