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

// FieldType is an open enumeration of scalar/record kinds a Field may carry.
// The base set below is always present; syntax packs widen it (e.g. VECTOR,
// POINT, CIRCLE) by registering additional named values with a
// *registry.Registry at extension-load time (sql/registry), rather than by
// mutating a closed Go enum -- the open-endedness comes from FieldType being
// a plain string identifier instead of a fixed integer const block, per the
// "open enumeration" redesign in SPEC_FULL.md.
type FieldType string

// Base field types, always available with no extension pack loaded.
const (
	Integer  FieldType = "INTEGER"
	Float    FieldType = "FLOAT"
	String   FieldType = "STRING"
	Boolean  FieldType = "BOOLEAN"
	Date     FieldType = "DATE"
	DateTime FieldType = "DATETIME"
	Time     FieldType = "TIME"
	Record   FieldType = "RECORD"
	Null     FieldType = "NULL"
)

// BaseFieldTypes lists the always-registered field types, used to
// default-populate a new extension registry.
var BaseFieldTypes = []FieldType{Integer, Float, String, Boolean, Date, DateTime, Time, Record, Null}

// Numeric reports whether t is a type for which arithmetic is defined.
func (t FieldType) Numeric() bool {
	return t == Integer || t == Float
}

func (t FieldType) String() string {
	return string(t)
}
