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

// FieldMode controls how a Field's value participates in row encoding.
type FieldMode int

const (
	// Required fields are always present and non-null.
	Required FieldMode = iota
	// Nullable fields default to nil when absent.
	Nullable
	// Repeated fields default to an empty tuple when absent.
	Repeated
)

func (m FieldMode) String() string {
	switch m {
	case Required:
		return "REQUIRED"
	case Nullable:
		return "NULLABLE"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// Field describes one column of a Schema.
type Field struct {
	Name          string
	Type          FieldType
	Mode          FieldMode
	NestedFields  []Field
	SchemaName    string // qualifying relation/table name, empty if unqualified
}

// Path returns the dot-qualified path used for lookups: "schema.name" when
// SchemaName is set, else just "name".
func (f Field) Path() string {
	if f.SchemaName == "" {
		return f.Name
	}
	return f.SchemaName + "." + f.Name
}

// The With* methods below each return a copy of f with one attribute set to
// the given value, a zero value included (WithSchemaName("") clears the
// qualifier).
func (f Field) WithType(t FieldType) Field {
	f.Type = t
	return f
}

func (f Field) WithSchemaName(name string) Field {
	f.SchemaName = name
	return f
}

func (f Field) WithName(name string) Field {
	f.Name = name
	return f
}

func (f Field) WithMode(m FieldMode) Field {
	f.Mode = m
	return f
}

// Equal compares two fields by value, including SchemaName.
func (f Field) Equal(other Field) bool {
	if f.Name != other.Name || f.Type != other.Type || f.Mode != other.Mode || f.SchemaName != other.SchemaName {
		return false
	}
	if len(f.NestedFields) != len(other.NestedFields) {
		return false
	}
	for i := range f.NestedFields {
		if !f.NestedFields[i].Equal(other.NestedFields[i]) {
			return false
		}
	}
	return true
}
